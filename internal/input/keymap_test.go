package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestProcessEvent(t *testing.T) {
	p := NewInputProcessor()

	tests := []struct {
		name     string
		key      tcell.Key
		r        rune
		mod      tcell.ModMask
		want     Action
		wantRune rune
	}{
		{"arrow", tcell.KeyUp, 0, tcell.ModNone, ActionMoveUp, 0},
		{"shift arrow", tcell.KeyLeft, 0, tcell.ModShift, ActionMoveLeft, 0},
		{"alt left", tcell.KeyLeft, 0, tcell.ModAlt, ActionStepBack, 0},
		{"alt right", tcell.KeyRight, 0, tcell.ModAlt, ActionStepForward, 0},
		{"alt shift left", tcell.KeyLeft, 0, tcell.ModAlt | tcell.ModShift, ActionStepBackInFile, 0},
		{"alt shift right", tcell.KeyRight, 0, tcell.ModAlt | tcell.ModShift, ActionStepForwardInFile, 0},
		{"ctrl alt left", tcell.KeyLeft, 0, tcell.ModCtrl | tcell.ModAlt, ActionStepBackOtherFile, 0},
		{"ctrl alt right", tcell.KeyRight, 0, tcell.ModCtrl | tcell.ModAlt, ActionStepForwardOtherFile, 0},
		{"ctrl s", tcell.KeyCtrlS, 0, tcell.ModCtrl, ActionSave, 0},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone, ActionInsertNewLine, 0},
		{"colon", tcell.KeyRune, ':', tcell.ModNone, ActionEnterCommandMode, ':'},
		{"rune", tcell.KeyRune, 'a', tcell.ModNone, ActionInsertRune, 'a'},
		{"shifted rune", tcell.KeyRune, 'A', tcell.ModShift, ActionInsertRune, 'A'},
		{"alt rune", tcell.KeyRune, 'a', tcell.ModAlt, ActionUnknown, 0},
		{"ctrl up", tcell.KeyUp, 0, tcell.ModCtrl, ActionUnknown, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.ProcessEvent(tcell.NewEventKey(tt.key, tt.r, tt.mod))
			if got.Action != tt.want {
				t.Errorf("expected action %d, got %d", tt.want, got.Action)
			}
			if got.Rune != tt.wantRune {
				t.Errorf("expected rune %q, got %q", tt.wantRune, got.Rune)
			}
		})
	}
}

func TestBind(t *testing.T) {
	p := NewInputProcessor()
	p.Bind(tcell.ModAlt, tcell.KeyUp, ActionStepBack)
	p.Bind(tcell.ModNone, tcell.KeyF2, ActionSave)

	if got := p.ProcessEvent(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModAlt)); got.Action != ActionStepBack {
		t.Errorf("expected ActionStepBack, got %d", got.Action)
	}
	if got := p.ProcessEvent(tcell.NewEventKey(tcell.KeyF2, 0, tcell.ModNone)); got.Action != ActionSave {
		t.Errorf("expected ActionSave, got %d", got.Action)
	}
}
