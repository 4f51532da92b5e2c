package modehandler

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/footsteps/internal/core"
	"github.com/bethropolis/footsteps/internal/event"
	"github.com/bethropolis/footsteps/internal/input"
	"github.com/bethropolis/footsteps/internal/logger"
	"github.com/bethropolis/footsteps/internal/plugin"
	"github.com/bethropolis/footsteps/internal/statusbar"
)

// ErrUnknownCommand is returned for a command name nobody registered.
var ErrUnknownCommand = errors.New("unknown command")

// InputMode is the state that decides how keys are interpreted.
type InputMode int

const (
	ModeNormal InputMode = iota
	ModeCommand
)

func (m InputMode) String() string {
	if m == ModeCommand {
		return "COMMAND"
	}
	return "NORMAL"
}

// stepCommands binds the time-travel keys to the commands that implement them.
var stepCommands = map[input.Action]string{
	input.ActionStepBack:             "fs-back",
	input.ActionStepForward:          "fs-forward",
	input.ActionStepBackInFile:       "fs-back-file",
	input.ActionStepForwardInFile:    "fs-forward-file",
	input.ActionStepBackOtherFile:    "fs-back-other",
	input.ActionStepForwardOtherFile: "fs-forward-other",
}

// ModeHandler owns the input mode and the command registry and applies
// key actions to the editor.
type ModeHandler struct {
	editor         *core.Editor
	inputProcessor *input.InputProcessor
	eventManager   *event.Manager
	statusBar      *statusbar.StatusBar
	quit           func()
	tabWidth       int

	currentMode      InputMode
	cmdBuffer        []rune
	commands         map[string]plugin.CommandFunc
	forceQuitPending bool
}

// Config holds the dependencies of a ModeHandler.
type Config struct {
	Editor         *core.Editor
	InputProcessor *input.InputProcessor
	EventManager   *event.Manager
	StatusBar      *statusbar.StatusBar
	Quit           func()
	TabWidth       int
}

// New creates a ModeHandler. It panics on missing dependencies.
func New(cfg Config) *ModeHandler {
	if cfg.Editor == nil || cfg.InputProcessor == nil || cfg.EventManager == nil || cfg.StatusBar == nil || cfg.Quit == nil {
		panic("modehandler.New: missing required dependencies in Config")
	}
	if cfg.TabWidth <= 0 {
		cfg.TabWidth = 4
	}
	return &ModeHandler{
		editor:         cfg.Editor,
		inputProcessor: cfg.InputProcessor,
		eventManager:   cfg.EventManager,
		statusBar:      cfg.StatusBar,
		quit:           cfg.Quit,
		tabWidth:       cfg.TabWidth,
		currentMode:    ModeNormal,
		commands:       make(map[string]plugin.CommandFunc),
	}
}

// HandleKeyEvent applies a key press and reports whether a redraw is needed.
func (mh *ModeHandler) HandleKeyEvent(ev *tcell.EventKey) bool {
	mh.eventManager.Dispatch(event.TypeKeyPressed, event.KeyPressedData{KeyEvent: ev})

	actionEvent := mh.inputProcessor.ProcessEvent(ev)
	switch mh.currentMode {
	case ModeCommand:
		return mh.handleActionCommand(actionEvent)
	default:
		return mh.handleActionNormal(actionEvent)
	}
}

// handleActionNormal applies an action to the editor.
func (mh *ModeHandler) handleActionNormal(actionEvent input.ActionEvent) bool {
	action := actionEvent.Action
	if name, ok := stepCommands[action]; ok {
		mh.runCommand(name, nil)
		mh.forceQuitPending = false
		return true
	}

	var err error
	switch action {
	case input.ActionEnterCommandMode:
		mh.currentMode = ModeCommand
		mh.cmdBuffer = mh.cmdBuffer[:0]
		mh.statusBar.SetTemporaryMessage(":")
		logger.DebugTagf("mode", "Entering command mode")

	case input.ActionQuit:
		if mh.editor.IsModified() && !mh.forceQuitPending {
			mh.statusBar.SetTemporaryMessage("Unsaved changes! Press ESC again or Ctrl+Q to force quit.")
			mh.forceQuitPending = true
			return true
		}
		mh.quit()
		return false
	case input.ActionForceQuit:
		mh.quit()
		return false

	case input.ActionSave:
		if err = mh.editor.Save(); err == nil {
			mh.statusBar.SetTemporaryMessage("Saved %s", mh.editor.ActiveFile())
		}

	case input.ActionMoveUp:
		mh.editor.MoveCursor(-1, 0)
	case input.ActionMoveDown:
		mh.editor.MoveCursor(1, 0)
	case input.ActionMoveLeft:
		mh.editor.MoveCursor(0, -1)
	case input.ActionMoveRight:
		mh.editor.MoveCursor(0, 1)
	case input.ActionMovePageUp:
		mh.editor.PageMove(-1)
	case input.ActionMovePageDown:
		mh.editor.PageMove(1)
	case input.ActionMoveHome:
		mh.editor.Home()
	case input.ActionMoveEnd:
		mh.editor.End()

	case input.ActionInsertRune:
		err = mh.editor.InsertRune(actionEvent.Rune)
	case input.ActionInsertNewLine:
		err = mh.editor.InsertNewLine()
	case input.ActionInsertTab:
		err = mh.editor.InsertTab(mh.tabWidth)
	case input.ActionDeleteCharBackward:
		err = mh.editor.DeleteBackward()
	case input.ActionDeleteCharForward:
		err = mh.editor.DeleteForward()
	case input.ActionDeleteLine:
		err = mh.editor.DeleteLine()

	case input.ActionNextBuffer, input.ActionPrevBuffer:
		n := len(mh.editor.Documents())
		if n < 2 {
			return false
		}
		step := 1
		if action == input.ActionPrevBuffer {
			step = n - 1
		}
		err = mh.editor.SwitchTo((mh.editor.ActiveIndex() + step) % n)

	default:
		return false
	}

	if err != nil {
		logger.DebugTagf("mode", "action %d failed: %v", action, err)
		mh.statusBar.SetTemporaryMessage("Error: %v", err)
	}
	mh.forceQuitPending = false
	return true
}

// RegisterCommand adds a command to the registry.
func (mh *ModeHandler) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	if name == "" || strings.ContainsAny(name, " \t") {
		return fmt.Errorf("invalid command name %q", name)
	}
	if _, exists := mh.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	mh.commands[name] = cmdFunc
	logger.DebugTagf("mode", "Registered command ':%s'", name)
	return nil
}

// SetTabWidth changes how many spaces a tab inserts.
func (mh *ModeHandler) SetTabWidth(width int) {
	if width > 0 {
		mh.tabWidth = width
	}
}

// GetCurrentMode returns the current input mode.
func (mh *ModeHandler) GetCurrentMode() InputMode {
	return mh.currentMode
}

// GetCommandBuffer returns the command line being typed.
func (mh *ModeHandler) GetCommandBuffer() string {
	if mh.currentMode == ModeCommand {
		return string(mh.cmdBuffer)
	}
	return ""
}
