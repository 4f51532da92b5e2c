package modehandler

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/footsteps/internal/core"
	"github.com/bethropolis/footsteps/internal/event"
	"github.com/bethropolis/footsteps/internal/input"
	"github.com/bethropolis/footsteps/internal/statusbar"
	"github.com/bethropolis/footsteps/internal/types"
)

type harness struct {
	mh     *ModeHandler
	editor *core.Editor
	quits  int
}

func newHarness(t *testing.T, content string) *harness {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	h := &harness{editor: core.NewEditor()}
	em := event.NewManager()
	h.editor.SetEventManager(em)
	h.editor.SetViewSize(80, 24)
	if _, err := h.editor.OpenFile(path); err != nil {
		t.Fatal(err)
	}
	h.mh = New(Config{
		Editor:         h.editor,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   em,
		StatusBar:      statusbar.New(time.Minute),
		Quit:           func() { h.quits++ },
	})
	return h
}

func (h *harness) key(k tcell.Key, r rune, mod tcell.ModMask) bool {
	return h.mh.HandleKeyEvent(tcell.NewEventKey(k, r, mod))
}

func (h *harness) typeString(s string) {
	for _, r := range s {
		h.key(tcell.KeyRune, r, tcell.ModNone)
	}
}

func TestNormalModeEditing(t *testing.T) {
	h := newHarness(t, "abc\n")
	h.typeString("xy")
	h.key(tcell.KeyEnter, 0, tcell.ModNone)
	h.key(tcell.KeyBackspace2, 0, tcell.ModNone)

	line, _ := h.editor.GetBuffer().Line(0)
	if string(line) != "xyabc" {
		t.Errorf("expected 'xyabc', got %q", line)
	}
	if got := h.editor.GetCursor(); got != (types.Position{Line: 0, Col: 2}) {
		t.Errorf("expected cursor 0:2, got %v", got)
	}
}

func TestCommandMode(t *testing.T) {
	h := newHarness(t, "abc\n")
	var gotArgs []string
	if err := h.mh.RegisterCommand("echo", func(args []string) error {
		gotArgs = args
		return nil
	}); err != nil {
		t.Fatal(err)
	}

	h.key(tcell.KeyRune, ':', tcell.ModNone)
	if h.mh.GetCurrentMode() != ModeCommand {
		t.Fatalf("expected command mode")
	}
	h.typeString("echo a:b")
	if got := h.mh.GetCommandBuffer(); got != "echo a:b" {
		t.Errorf("expected command buffer 'echo a:b', got %q", got)
	}
	h.key(tcell.KeyEnter, 0, tcell.ModNone)

	if h.mh.GetCurrentMode() != ModeNormal {
		t.Errorf("expected normal mode after executing")
	}
	if len(gotArgs) != 1 || gotArgs[0] != "a:b" {
		t.Errorf("expected args [a:b], got %v", gotArgs)
	}
	line, _ := h.editor.GetBuffer().Line(0)
	if string(line) != "abc" {
		t.Errorf("expected the buffer to be untouched, got %q", line)
	}
}

func TestCommandModeBackspaceAndEscape(t *testing.T) {
	h := newHarness(t, "")
	h.key(tcell.KeyRune, ':', tcell.ModNone)
	h.typeString("é")
	h.key(tcell.KeyBackspace2, 0, tcell.ModNone)
	if got := h.mh.GetCommandBuffer(); got != "" {
		t.Errorf("expected an empty command buffer, got %q", got)
	}
	h.key(tcell.KeyBackspace2, 0, tcell.ModNone)
	if h.mh.GetCurrentMode() != ModeNormal {
		t.Errorf("expected backspace on an empty line to leave command mode")
	}

	h.key(tcell.KeyRune, ':', tcell.ModNone)
	h.typeString("q")
	h.key(tcell.KeyEscape, 0, tcell.ModNone)
	if h.mh.GetCurrentMode() != ModeNormal || h.quits != 0 {
		t.Errorf("expected escape to cancel without quitting")
	}
}

func TestExecuteCommandErrors(t *testing.T) {
	h := newHarness(t, "")
	if err := h.mh.ExecuteCommand("nope"); !errors.Is(err, ErrUnknownCommand) {
		t.Errorf("expected ErrUnknownCommand, got %v", err)
	}
	boom := errors.New("boom")
	_ = h.mh.RegisterCommand("fail", func([]string) error { return boom })
	if err := h.mh.ExecuteCommand("fail"); !errors.Is(err, boom) {
		t.Errorf("expected wrapped boom, got %v", err)
	}
	if err := h.mh.RegisterCommand("fail", func([]string) error { return nil }); err == nil {
		t.Errorf("expected duplicate registration to fail")
	}
	if err := h.mh.RegisterCommand("two words", func([]string) error { return nil }); err == nil {
		t.Errorf("expected a name with spaces to be rejected")
	}
}

func TestStepKeysRunCommands(t *testing.T) {
	h := newHarness(t, "")
	var ran []string
	for _, name := range []string{"fs-back", "fs-forward", "fs-back-file", "fs-forward-file", "fs-back-other", "fs-forward-other"} {
		name := name
		_ = h.mh.RegisterCommand(name, func([]string) error {
			ran = append(ran, name)
			return nil
		})
	}

	h.key(tcell.KeyLeft, 0, tcell.ModAlt)
	h.key(tcell.KeyRight, 0, tcell.ModAlt)
	h.key(tcell.KeyLeft, 0, tcell.ModAlt|tcell.ModShift)
	h.key(tcell.KeyRight, 0, tcell.ModAlt|tcell.ModShift)
	h.key(tcell.KeyLeft, 0, tcell.ModCtrl|tcell.ModAlt)
	h.key(tcell.KeyRight, 0, tcell.ModCtrl|tcell.ModAlt)

	want := []string{"fs-back", "fs-forward", "fs-back-file", "fs-forward-file", "fs-back-other", "fs-forward-other"}
	if len(ran) != len(want) {
		t.Fatalf("expected %v, got %v", want, ran)
	}
	for i := range want {
		if ran[i] != want[i] {
			t.Errorf("expected %s at %d, got %s", want[i], i, ran[i])
		}
	}
}

func TestQuitRequiresConfirmationWhenModified(t *testing.T) {
	h := newHarness(t, "abc")
	h.key(tcell.KeyEscape, 0, tcell.ModNone)
	if h.quits != 1 {
		t.Fatalf("expected an unmodified editor to quit at once")
	}

	h = newHarness(t, "abc")
	h.typeString("x")
	h.key(tcell.KeyEscape, 0, tcell.ModNone)
	if h.quits != 0 {
		t.Fatalf("expected the first escape to warn")
	}
	h.key(tcell.KeyEscape, 0, tcell.ModNone)
	if h.quits != 1 {
		t.Errorf("expected the second escape to quit")
	}
}
