package input

import (
	"github.com/gdamore/tcell/v2"
)

// Keymap maps keys to actions.
type Keymap map[tcell.Key]Action

// ModKeymap maps an exact modifier combination to its keymap.
type ModKeymap map[tcell.ModMask]Keymap

// InputProcessor translates tcell key events into ActionEvents. The current
// input mode is not considered here.
type InputProcessor struct {
	keymap     Keymap
	runeKeymap map[rune]Action
	modKeymap  ModKeymap
}

// NewInputProcessor creates a processor with the default bindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:     make(Keymap),
		runeKeymap: make(map[rune]Action),
		modKeymap:  make(ModKeymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	p.keymap[tcell.KeyUp] = ActionMoveUp
	p.keymap[tcell.KeyDown] = ActionMoveDown
	p.keymap[tcell.KeyLeft] = ActionMoveLeft
	p.keymap[tcell.KeyRight] = ActionMoveRight
	p.keymap[tcell.KeyPgUp] = ActionMovePageUp
	p.keymap[tcell.KeyPgDn] = ActionMovePageDown
	p.keymap[tcell.KeyHome] = ActionMoveHome
	p.keymap[tcell.KeyEnd] = ActionMoveEnd
	p.keymap[tcell.KeyEnter] = ActionInsertNewLine
	p.keymap[tcell.KeyTab] = ActionInsertTab
	p.keymap[tcell.KeyBackspace] = ActionDeleteCharBackward
	p.keymap[tcell.KeyBackspace2] = ActionDeleteCharBackward
	p.keymap[tcell.KeyDelete] = ActionDeleteCharForward
	p.keymap[tcell.KeyEscape] = ActionQuit

	// Ctrl+letter arrives as its own key code.
	p.keymap[tcell.KeyCtrlC] = ActionQuit
	p.keymap[tcell.KeyCtrlQ] = ActionForceQuit
	p.keymap[tcell.KeyCtrlS] = ActionSave
	p.keymap[tcell.KeyCtrlK] = ActionDeleteLine
	p.keymap[tcell.KeyCtrlN] = ActionNextBuffer
	p.keymap[tcell.KeyCtrlP] = ActionPrevBuffer

	p.modKeymap[tcell.ModAlt] = Keymap{
		tcell.KeyLeft:  ActionStepBack,
		tcell.KeyRight: ActionStepForward,
	}
	p.modKeymap[tcell.ModAlt|tcell.ModShift] = Keymap{
		tcell.KeyLeft:  ActionStepBackInFile,
		tcell.KeyRight: ActionStepForwardInFile,
	}
	p.modKeymap[tcell.ModCtrl|tcell.ModAlt] = Keymap{
		tcell.KeyLeft:  ActionStepBackOtherFile,
		tcell.KeyRight: ActionStepForwardOtherFile,
	}

	p.runeKeymap[':'] = ActionEnterCommandMode
}

// Bind maps key with exactly the modifiers mod to action.
func (p *InputProcessor) Bind(mod tcell.ModMask, key tcell.Key, action Action) {
	if mod == tcell.ModNone {
		p.keymap[key] = action
		return
	}
	if p.modKeymap[mod] == nil {
		p.modKeymap[mod] = make(Keymap)
	}
	p.modKeymap[mod][key] = action
}

// ProcessEvent returns the action bound to ev.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key, mod := ev.Key(), ev.Modifiers()

	if mod != tcell.ModNone {
		if action, ok := p.modKeymap[mod][key]; ok {
			return ActionEvent{Action: action}
		}
	}

	// Ctrl+letter keys already carry the Ctrl modifier in the key code.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		mod &^= tcell.ModCtrl
	}
	if mod == tcell.ModNone || mod == tcell.ModShift {
		if action, ok := p.keymap[key]; ok {
			return ActionEvent{Action: action}
		}
	}

	if key == tcell.KeyRune && (mod == tcell.ModNone || mod == tcell.ModShift) {
		r := ev.Rune()
		if action, ok := p.runeKeymap[r]; ok {
			return ActionEvent{Action: action, Rune: r}
		}
		return ActionEvent{Action: ActionInsertRune, Rune: r}
	}
	return ActionEvent{Action: ActionUnknown}
}
