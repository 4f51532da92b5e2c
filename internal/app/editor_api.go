package app

import (
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/footsteps/internal/commands"
	"github.com/bethropolis/footsteps/internal/config"
	"github.com/bethropolis/footsteps/internal/event"
	"github.com/bethropolis/footsteps/internal/logger"
	"github.com/bethropolis/footsteps/internal/plugin"
	"github.com/bethropolis/footsteps/internal/theme"
	"github.com/bethropolis/footsteps/internal/types"
)

var (
	_ plugin.EditorAPI  = (*appEditorAPI)(nil)
	_ commands.AppAPI   = (*appEditorAPI)(nil)
	_ commands.ThemeAPI = (*appEditorAPI)(nil)
)

var (
	errUnsavedChanges = errors.New("no write since last change (use :q! to discard)")
	errNotOpen        = errors.New("document not open")
)

// appEditorAPI is the view of the application given to plugins and the
// built-in commands.
type appEditorAPI struct {
	app *App
}

func newEditorAPI(app *App) *appEditorAPI {
	return &appEditorAPI{app: app}
}

// --- Documents ---

func (api *appEditorAPI) ActiveFile() string {
	return api.app.editor.ActiveFile()
}

func (api *appEditorAPI) GetBufferLine(path string, line int) ([]byte, error) {
	doc, ok := api.app.editor.Document(path)
	if !ok {
		return nil, fmt.Errorf("%s: %w", path, errNotOpen)
	}
	return doc.Buffer.Line(line)
}

// GetBufferLineCount returns 0 for a document that is not open.
func (api *appEditorAPI) GetBufferLineCount(path string) int {
	if doc, ok := api.app.editor.Document(path); ok {
		return doc.Buffer.LineCount()
	}
	return 0
}

func (api *appEditorAPI) GetBufferBytes(path string) []byte {
	if doc, ok := api.app.editor.Document(path); ok {
		return doc.Buffer.Bytes()
	}
	return nil
}

// --- Cursor ---

func (api *appEditorAPI) GetCursor() types.Position {
	return api.app.editor.GetCursor()
}

func (api *appEditorAPI) JumpTo(path string, pos types.Position) error {
	if err := api.app.editor.JumpTo(path, pos); err != nil {
		return err
	}
	api.app.RequestRedraw()
	return nil
}

// --- Event bus ---

func (api *appEditorAPI) DispatchEvent(eventType event.Type, data interface{}) {
	api.app.eventManager.Dispatch(eventType, data)
}

func (api *appEditorAPI) SubscribeEvent(eventType event.Type, handler event.Handler) {
	api.app.eventManager.Subscribe(eventType, handler)
}

// --- Commands ---

func (api *appEditorAPI) RegisterCommand(name string, cmdFunc plugin.CommandFunc) error {
	return api.app.modeHandler.RegisterCommand(name, cmdFunc)
}

// --- Status bar ---

func (api *appEditorAPI) SetStatusMessage(format string, args ...interface{}) {
	api.app.SetStatusMessage(format, args...)
}

func (api *appEditorAPI) SetStatusIndicator(name, text string) {
	api.app.statusBar.SetIndicator(name, text)
	api.app.RequestRedraw()
}

// --- Rendering ---

func (api *appEditorAPI) GetThemeStyle(styleName string) tcell.Style {
	return api.app.themeManager.Current().GetStyle(styleName)
}

func (api *appEditorAPI) RegisterDecorator(d plugin.LineDecorator) {
	api.app.decorators = append(api.app.decorators, d)
}

func (api *appEditorAPI) RequestRedraw() {
	api.app.RequestRedraw()
}

// --- Configuration ---

func (api *appEditorAPI) GetConfig() *config.Config {
	return api.app.cfg
}

// --- Application commands ---

func (api *appEditorAPI) SaveBuffer() error {
	return api.app.editor.Save()
}

// RequestQuit quits unless there are unsaved changes and force is false.
func (api *appEditorAPI) RequestQuit(force bool) error {
	if !force && api.app.editor.IsModified() {
		return errUnsavedChanges
	}
	logger.Debugf("Quit requested (force=%t)", force)
	api.app.requestQuit()
	return nil
}

func (api *appEditorAPI) OpenFile(path string) error {
	if _, err := api.app.editor.OpenFile(path); err != nil {
		return err
	}
	api.app.RequestRedraw()
	return nil
}

func (api *appEditorAPI) SwitchBuffer(index int) error {
	return api.app.editor.SwitchTo(index)
}

func (api *appEditorAPI) BufferNames() []string {
	docs := api.app.editor.Documents()
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Path()
	}
	return names
}

// --- Themes ---

func (api *appEditorAPI) GetTheme() *theme.Theme {
	return api.app.themeManager.Current()
}

func (api *appEditorAPI) SetTheme(name string) error {
	return api.app.SetTheme(name)
}

func (api *appEditorAPI) ListThemes() []string {
	return api.app.themeManager.Names()
}
