package commands

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/bethropolis/footsteps/internal/plugin"
	"github.com/bethropolis/footsteps/internal/theme"
)

// fakeAPI implements the parts of plugin.EditorAPI the commands use.
type fakeAPI struct {
	plugin.EditorAPI
	active   string
	commands map[string]plugin.CommandFunc
	status   string
}

func (f *fakeAPI) ActiveFile() string { return f.active }

func (f *fakeAPI) RegisterCommand(name string, fn plugin.CommandFunc) error {
	f.commands[name] = fn
	return nil
}

func (f *fakeAPI) SetStatusMessage(format string, args ...interface{}) {
	f.status = fmt.Sprintf(format, args...)
}

type fakeApp struct {
	saved    int
	quit     []bool
	opened   []string
	switched int
	names    []string
	saveErr  error
}

func (a *fakeApp) SaveBuffer() error { a.saved++; return a.saveErr }
func (a *fakeApp) RequestQuit(force bool) error {
	a.quit = append(a.quit, force)
	return nil
}
func (a *fakeApp) OpenFile(path string) error   { a.opened = append(a.opened, path); return nil }
func (a *fakeApp) SwitchBuffer(index int) error { a.switched = index; return nil }
func (a *fakeApp) BufferNames() []string        { return a.names }

func setup(t *testing.T) (*fakeAPI, *fakeApp, *theme.Manager) {
	t.Helper()
	api := &fakeAPI{active: "/src/b.go", commands: make(map[string]plugin.CommandFunc)}
	app := &fakeApp{names: []string{"/src/a.go", "/src/b.go"}, switched: -1}
	themes := theme.NewManager()
	if err := RegisterAppCommands(api, app, themeAdapter{themes}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return api, app, themes
}

type themeAdapter struct{ m *theme.Manager }

func (a themeAdapter) GetTheme() *theme.Theme     { return a.m.Current() }
func (a themeAdapter) SetTheme(name string) error { return a.m.SetTheme(name) }
func (a themeAdapter) ListThemes() []string       { return a.m.Names() }

func run(t *testing.T, api *fakeAPI, line string) error {
	t.Helper()
	parts := strings.Fields(line)
	fn, ok := api.commands[parts[0]]
	if !ok {
		t.Fatalf("command %s not registered", parts[0])
	}
	return fn(parts[1:])
}

func TestFileCommands(t *testing.T) {
	api, app, _ := setup(t)

	if err := run(t, api, "w"); err != nil || app.saved != 1 {
		t.Errorf("expected one save, got %d (%v)", app.saved, err)
	}
	if api.status != "Saved /src/b.go" {
		t.Errorf("unexpected status %q", api.status)
	}
	_ = run(t, api, "q")
	_ = run(t, api, "q!")
	_ = run(t, api, "wq")
	if len(app.quit) != 3 || app.quit[0] || !app.quit[1] || app.quit[2] {
		t.Errorf("expected quit requests [false true false], got %v", app.quit)
	}
	if err := run(t, api, "e other.go"); err != nil || len(app.opened) != 1 || app.opened[0] != "other.go" {
		t.Errorf("expected other.go to be opened, got %v (%v)", app.opened, err)
	}
	if err := api.commands["e"](nil); err == nil {
		t.Errorf("expected e without a file to fail")
	}
}

func TestWriteQuitStopsOnSaveError(t *testing.T) {
	api, app, _ := setup(t)
	app.saveErr = errors.New("disk full")
	if err := run(t, api, "wq"); err == nil {
		t.Errorf("expected the save error")
	}
	if len(app.quit) != 0 {
		t.Errorf("expected no quit after a failed save")
	}
}

func TestBufferCommand(t *testing.T) {
	api, app, _ := setup(t)

	if err := run(t, api, "b"); err != nil {
		t.Fatal(err)
	}
	if api.status != "1 a.go  2* b.go" {
		t.Errorf("unexpected listing %q", api.status)
	}
	if err := run(t, api, "b 1"); err != nil || app.switched != 0 {
		t.Errorf("expected switch to 0, got %d (%v)", app.switched, err)
	}
	for _, bad := range []string{"b 0", "b 3", "b x"} {
		if err := run(t, api, bad); err == nil {
			t.Errorf("expected %q to fail", bad)
		}
	}
}

func TestThemeCommands(t *testing.T) {
	api, _, themes := setup(t)

	_ = run(t, api, "theme")
	if api.status != "Current theme: Trail Dark" {
		t.Errorf("unexpected status %q", api.status)
	}
	if err := run(t, api, "theme trail dark"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := run(t, api, "theme missing"); err == nil || !strings.Contains(err.Error(), "Trail Dark") {
		t.Errorf("expected an error listing the themes, got %v", err)
	}
	_ = run(t, api, "themes")
	if api.status != "Available themes: "+strings.Join(themes.Names(), ", ") {
		t.Errorf("unexpected status %q", api.status)
	}
}
