package footsteps

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/footsteps/internal/config"
	"github.com/bethropolis/footsteps/internal/event"
	history "github.com/bethropolis/footsteps/internal/footsteps"
	"github.com/bethropolis/footsteps/internal/plugin"
	"github.com/bethropolis/footsteps/internal/types"
)

// fakeEditor is an in-memory plugin.EditorAPI.
type fakeEditor struct {
	cfg        *config.Config
	events     *event.Manager
	files      map[string][]string
	active     string
	cursor     types.Position
	commands   map[string]plugin.CommandFunc
	decorator  plugin.LineDecorator
	status     string
	indicators map[string]string
	redraws    int
	footsteps  []event.FootstepsChangedData
}

func newFakeEditor() *fakeEditor {
	return &fakeEditor{
		cfg:        config.NewDefaultConfig(),
		events:     event.NewManager(),
		files:      make(map[string][]string),
		commands:   make(map[string]plugin.CommandFunc),
		indicators: make(map[string]string),
	}
}

func (f *fakeEditor) ActiveFile() string { return f.active }

func (f *fakeEditor) GetBufferLine(path string, line int) ([]byte, error) {
	lines, ok := f.files[path]
	if !ok || line < 0 || line >= len(lines) {
		return nil, errors.New("out of range")
	}
	return []byte(lines[line]), nil
}

func (f *fakeEditor) GetBufferLineCount(path string) int { return len(f.files[path]) }

func (f *fakeEditor) GetBufferBytes(path string) []byte {
	lines, ok := f.files[path]
	if !ok {
		return nil
	}
	return []byte(strings.Join(lines, "\n"))
}

func (f *fakeEditor) GetCursor() types.Position { return f.cursor }

func (f *fakeEditor) JumpTo(path string, pos types.Position) error {
	if _, ok := f.files[path]; !ok {
		return errors.New("no such file")
	}
	f.active, f.cursor = path, pos
	return nil
}

func (f *fakeEditor) DispatchEvent(t event.Type, data interface{}) {
	if d, ok := data.(event.FootstepsChangedData); ok {
		f.footsteps = append(f.footsteps, d)
	}
	f.events.Dispatch(t, data)
}

func (f *fakeEditor) SubscribeEvent(t event.Type, h event.Handler) { f.events.Subscribe(t, h) }

func (f *fakeEditor) RegisterCommand(name string, fn plugin.CommandFunc) error {
	if _, ok := f.commands[name]; ok {
		return errors.New("duplicate")
	}
	f.commands[name] = fn
	return nil
}

func (f *fakeEditor) SetStatusMessage(format string, args ...interface{}) {
	f.status = fmt.Sprintf(format, args...)
}

func (f *fakeEditor) SetStatusIndicator(name, text string) { f.indicators[name] = text }

func (f *fakeEditor) GetThemeStyle(name string) tcell.Style {
	return tcell.StyleDefault.Background(tcell.NewHexColor(0x000000))
}

func (f *fakeEditor) RegisterDecorator(d plugin.LineDecorator) { f.decorator = d }
func (f *fakeEditor) RequestRedraw()                           { f.redraws++ }
func (f *fakeEditor) GetConfig() *config.Config                { return f.cfg }

func (f *fakeEditor) run(t *testing.T, name string, args ...string) {
	t.Helper()
	fn, ok := f.commands[name]
	if !ok {
		t.Fatalf("command %s not registered", name)
	}
	if err := fn(args); err != nil {
		t.Fatalf("%s: unexpected error: %v", name, err)
	}
}

// typeAt reports typing one character at the start of line in path.
func (f *fakeEditor) typeAt(path string, line int) {
	f.active = path
	pos := types.Position{Line: line, Col: 0}
	f.DispatchEvent(event.TypeTextChanged, event.TextChangedData{
		FilePath: path,
		Changes:  []types.ContentChange{{Start: pos, End: pos, Text: "x"}},
	})
}

func setup(t *testing.T) (*fakeEditor, *Footsteps) {
	t.Helper()
	f := newFakeEditor()
	f.files["a.go"] = []string{"package a", "", "func A() {", "\tx := 1", "}", "", "", ""}
	f.files["b.go"] = []string{"package b", "", "", "", "", "", ""}
	p := New()
	if err := p.Initialize(f); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return f, p
}

func TestInitializeRegistersEverything(t *testing.T) {
	f, p := setup(t)
	for _, name := range []string{
		"fs-back", "fs-forward", "fs-back-file", "fs-forward-file",
		"fs-back-other", "fs-forward-other", "fs-clear", "fs-clear-all",
		"fs-toggle", "fs-list", "fs-yank",
	} {
		if _, ok := f.commands[name]; !ok {
			t.Errorf("expected command %s to be registered", name)
		}
	}
	if f.decorator != p {
		t.Errorf("expected the plugin to register itself as decorator")
	}
}

func TestEditsAreRecordedAndHighlighted(t *testing.T) {
	f, p := setup(t)
	f.typeAt("a.go", 3)

	if p.Tracker().Len() != 1 {
		t.Fatalf("expected 1 chunk, got %d", p.Tracker().Len())
	}
	if got := f.indicators[indicatorName]; got != "steps 1/1" {
		t.Errorf("expected indicator 'steps 1/1', got %q", got)
	}
	if len(f.footsteps) != 1 || f.footsteps[0].Count != 1 {
		t.Errorf("expected one FootstepsChanged with count 1, got %+v", f.footsteps)
	}

	styles := p.LineStyles("a.go", types.Position{Line: 0})
	if _, ok := styles[3]; !ok || len(styles) != 1 {
		t.Errorf("expected a highlight on line 3 only, got %v", styles)
	}
	if styles := p.LineStyles("b.go", types.Position{}); len(styles) != 0 {
		t.Errorf("expected no highlights in b.go, got %v", styles)
	}
}

func TestClickIsRecorded(t *testing.T) {
	f, p := setup(t)
	f.DispatchEvent(event.TypeCursorClicked, event.CursorClickedData{
		FilePath: "a.go", Position: types.Position{Line: 2, Col: 1}, LineLength: 10,
	})
	chunks := p.Tracker().Chunks()
	if len(chunks) != 1 || chunks[0].LastPosition != (types.Position{Line: 2, Col: 10}) {
		t.Errorf("expected a chunk ending at 2:10, got %v", chunks)
	}
}

func TestTimeTravelCommands(t *testing.T) {
	f, _ := setup(t)
	f.typeAt("a.go", 1)
	f.typeAt("b.go", 5)
	f.typeAt("b.go", 0)

	tests := []struct {
		command  string
		args     []string
		wantFile string
		wantLine int
	}{
		{"fs-back", nil, "b.go", 5},
		{"fs-back", nil, "a.go", 1},
		{"fs-back", nil, "a.go", 1},
		{"fs-forward", []string{"2"}, "b.go", 0},
		{"fs-back-other", nil, "a.go", 1},
		{"fs-forward-file", nil, "a.go", 1},
		{"fs-forward-other", nil, "b.go", 5},
		{"fs-forward-file", nil, "b.go", 0},
	}
	for _, tt := range tests {
		f.run(t, tt.command, tt.args...)
		if f.active != tt.wantFile || f.cursor.Line != tt.wantLine {
			t.Errorf("%s %v: expected %s:%d, got %s:%d", tt.command, tt.args, tt.wantFile, tt.wantLine, f.active, f.cursor.Line)
		}
	}
}

func TestTimeTravelEmptyHistory(t *testing.T) {
	f, _ := setup(t)
	f.active = "a.go"
	f.run(t, "fs-back")
	if f.status != "No footsteps (any)" {
		t.Errorf("expected 'No footsteps (any)', got %q", f.status)
	}
	if f.cursor != (types.Position{}) {
		t.Errorf("expected the cursor not to move, got %v", f.cursor)
	}
}

func TestTimeTravelBadCount(t *testing.T) {
	f, _ := setup(t)
	if err := f.commands["fs-back"]([]string{"zero"}); err == nil {
		t.Errorf("expected an error for a non-numeric count")
	}
}

func TestClearCommands(t *testing.T) {
	f, p := setup(t)
	f.typeAt("a.go", 1)
	f.typeAt("b.go", 2)

	f.active = "b.go"
	f.run(t, "fs-clear")
	if p.Tracker().Len() != 1 || len(p.Tracker().ChunksInFile("b.go")) != 0 {
		t.Errorf("expected only a.go to remain, got %v", p.Tracker().Chunks())
	}
	f.run(t, "fs-clear-all")
	if p.Tracker().Len() != 0 {
		t.Errorf("expected an empty history")
	}
	if got := f.indicators[indicatorName]; got != "" {
		t.Errorf("expected the indicator to be cleared, got %q", got)
	}
}

func TestClearOnSave(t *testing.T) {
	tests := []struct {
		name        string
		clearOnSave bool
		want        int
	}{
		{"enabled", true, 1},
		{"disabled", false, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFakeEditor()
			f.files["a.go"] = []string{"", "", ""}
			f.files["b.go"] = []string{"", "", ""}
			f.cfg.Footsteps.ClearOnSave = tt.clearOnSave
			p := New()
			if err := p.Initialize(f); err != nil {
				t.Fatal(err)
			}
			f.typeAt("a.go", 0)
			f.typeAt("b.go", 0)
			f.DispatchEvent(event.TypeBufferSaved, event.BufferSavedData{FilePath: "a.go"})
			if got := p.Tracker().Len(); got != tt.want {
				t.Errorf("expected %d chunks, got %d", tt.want, got)
			}
		})
	}
}

func TestToggle(t *testing.T) {
	f, p := setup(t)
	f.typeAt("a.go", 3)

	f.run(t, "fs-toggle")
	if styles := p.LineStyles("a.go", types.Position{}); styles != nil {
		t.Errorf("expected no highlights after toggling off, got %v", styles)
	}
	f.run(t, "fs-toggle")
	if styles := p.LineStyles("a.go", types.Position{}); len(styles) != 1 {
		t.Errorf("expected highlights after toggling on, got %v", styles)
	}
}

func TestConfigReload(t *testing.T) {
	f, p := setup(t)
	f.typeAt("a.go", 1)
	f.typeAt("a.go", 5)
	f.typeAt("b.go", 3)

	cfg := config.NewDefaultConfig()
	cfg.Footsteps.MaxChunksToRemember = 2
	cfg.Footsteps.HighlightChanges = false
	f.DispatchEvent(event.TypeConfigReloaded, event.ConfigReloadedData{Config: cfg})

	if got := p.Tracker().Len(); got != 2 {
		t.Errorf("expected capacity 2 to evict, got %d chunks", got)
	}
	if styles := p.LineStyles("a.go", types.Position{}); styles != nil {
		t.Errorf("expected highlighting to be off, got %v", styles)
	}

	cfg = config.NewDefaultConfig()
	cfg.Footsteps.HighlightColor = "not a colour"
	f.DispatchEvent(event.TypeConfigReloaded, event.ConfigReloadedData{Config: cfg})
	if !strings.HasPrefix(f.status, "footsteps:") {
		t.Errorf("expected a status message about the colour, got %q", f.status)
	}
	if styles := p.LineStyles("a.go", types.Position{}); len(styles) == 0 {
		t.Errorf("expected the previous palette to be kept")
	}
}

func TestMinDistanceRedraw(t *testing.T) {
	f, _ := setup(t)
	before := f.redraws
	f.DispatchEvent(event.TypeCursorMoved, event.CursorMovedData{FilePath: "a.go"})
	if f.redraws != before {
		t.Errorf("expected no redraw when highlights do not depend on the cursor")
	}

	cfg := config.NewDefaultConfig()
	cfg.Footsteps.MinDistanceFromCursor = 2
	f.DispatchEvent(event.TypeConfigReloaded, event.ConfigReloadedData{Config: cfg})
	before = f.redraws
	f.DispatchEvent(event.TypeCursorMoved, event.CursorMovedData{FilePath: "a.go"})
	if f.redraws != before+1 {
		t.Errorf("expected a redraw on cursor move")
	}
}

func TestYank(t *testing.T) {
	f, p := setup(t)
	var copied string
	p.copy = func(s string) error {
		copied = s
		return nil
	}

	f.run(t, "fs-yank")
	if copied != "" || f.status != "No footsteps" {
		t.Errorf("expected nothing copied from an empty history, got %q", copied)
	}

	f.typeAt("a.go", 3)
	f.run(t, "fs-yank")
	if copied != "a.go:4:3" {
		t.Errorf("expected a.go:4:3, got %q", copied)
	}

	cfg := config.NewDefaultConfig()
	cfg.Editor.SystemClipboard = false
	f.DispatchEvent(event.TypeConfigReloaded, event.ConfigReloadedData{Config: cfg})
	copied = ""
	f.run(t, "fs-yank")
	if copied != "" {
		t.Errorf("expected no clipboard write when disabled, got %q", copied)
	}
	if f.status != "a.go:4:3 (system clipboard disabled)" {
		t.Errorf("expected location in status, got %q", f.status)
	}
}

func TestListing(t *testing.T) {
	f, p := setup(t)
	f.typeAt("b.go", 4)
	f.typeAt("a.go", 3)

	entries := p.Listing(context.Background())
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if got := entries[0].String(); got != "1* a.go:4 A" {
		t.Errorf("expected '1* a.go:4 A', got %q", got)
	}
	if got := entries[1].String(); got != "2 b.go:5" {
		t.Errorf("expected '2 b.go:5', got %q", got)
	}

	f.run(t, "fs-list")
	if f.status != "1* a.go:4 A  2 b.go:5" {
		t.Errorf("unexpected listing %q", f.status)
	}
}

func TestToEdits(t *testing.T) {
	changes := []types.ContentChange{
		{Start: types.Position{Line: 1, Col: 2}, End: types.Position{Line: 3, Col: 4}, RangeLength: 9, Text: ""},
		{Start: types.Position{Line: 5}, End: types.Position{Line: 5}, Text: "a\nb"},
	}
	want := []history.Edit{
		{StartLine: 1, EndLine: 3, EndCol: 4, HadDeletion: true},
		{StartLine: 5, EndLine: 5, EndCol: 0, Text: "a\nb"},
	}
	if got := toEdits(changes); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}
