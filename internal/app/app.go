package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/footsteps/internal/buffer"
	"github.com/bethropolis/footsteps/internal/commands"
	"github.com/bethropolis/footsteps/internal/config"
	"github.com/bethropolis/footsteps/internal/core"
	"github.com/bethropolis/footsteps/internal/event"
	"github.com/bethropolis/footsteps/internal/input"
	"github.com/bethropolis/footsteps/internal/logger"
	"github.com/bethropolis/footsteps/internal/modehandler"
	"github.com/bethropolis/footsteps/internal/plugin"
	"github.com/bethropolis/footsteps/internal/statusbar"
	"github.com/bethropolis/footsteps/internal/theme"
	"github.com/bethropolis/footsteps/internal/tui"
)

const welcomeMessage = "footsteps - Alt+Left/Right steps through edits | :fs-list | Ctrl+C quit"

// App owns the editor components and runs the event loop. Everything that
// touches editor state runs on the goroutine that called Run; other
// goroutines only post events to the screen queue.
type App struct {
	cfg        *config.Config
	flags      *config.Flags
	configPath string

	tuiManager    *tui.TUI
	editor        *core.Editor
	statusBar     *statusbar.StatusBar
	eventManager  *event.Manager
	pluginManager *plugin.Manager
	modeHandler   *modehandler.ModeHandler
	themeManager  *theme.Manager
	editorAPI     *appEditorAPI
	decorators    []plugin.LineDecorator
	watcher       *config.Watcher

	quit        chan struct{}
	quitOnce    sync.Once
	needsRedraw bool
	buttonDown  bool
	expiry      *time.Timer
}

// NewApp opens the terminal and builds the editor for files. configPath is
// the file watched for live reloads; empty means the default location.
func NewApp(cfg *config.Config, configPath string, flags *config.Flags, files []string) (*App, error) {
	themes := loadThemes(configPath)
	if cfg.Editor.Theme != "" {
		if err := themes.SetTheme(cfg.Editor.Theme); err != nil {
			logger.Warnf("Theme %q: %v", cfg.Editor.Theme, err)
		}
	}

	t, err := tui.New(themes.Current())
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}
	a, err := newApp(t, themes, cfg, files)
	if err != nil {
		t.Close()
		return nil, err
	}
	a.configPath = configPath
	a.flags = flags
	return a, nil
}

// loadThemes reads the theme files next to the config file.
func loadThemes(configPath string) *theme.Manager {
	themes := theme.NewManager()
	path, err := config.ResolvePath(configPath)
	if err != nil {
		logger.DebugTagf("theme", "No config directory for themes: %v", err)
		return themes
	}
	dir := filepath.Join(filepath.Dir(path), config.ThemesDirName)
	n, err := themes.LoadDir(dir)
	if err != nil {
		logger.Warnf("Loading themes from %s: %v", dir, err)
	}
	logger.DebugTagf("theme", "Loaded %d theme(s) from %s", n, dir)
	return themes
}

// newApp wires the components around an existing screen.
func newApp(t *tui.TUI, themes *theme.Manager, cfg *config.Config, files []string) (*App, error) {
	eventManager := event.NewManager()
	editor := core.NewEditor()
	editor.SetEventManager(eventManager)
	editor.ScrollOff = cfg.Editor.ScrollOff

	a := &App{
		cfg:           cfg,
		tuiManager:    t,
		editor:        editor,
		statusBar:     statusbar.New(config.MessageTimeout),
		eventManager:  eventManager,
		pluginManager: plugin.NewManager(),
		themeManager:  themes,
		quit:          make(chan struct{}),
	}
	a.modeHandler = modehandler.New(modehandler.Config{
		Editor:         editor,
		InputProcessor: input.NewInputProcessor(),
		EventManager:   eventManager,
		StatusBar:      a.statusBar,
		Quit:           a.requestQuit,
		TabWidth:       cfg.Editor.TabWidth,
	})
	a.editorAPI = newEditorAPI(a)

	// The app's own handlers run before any plugin's.
	a.subscribeEvents()

	if err := commands.RegisterAppCommands(a.editorAPI, a.editorAPI, a.editorAPI); err != nil {
		return nil, fmt.Errorf("registering commands: %w", err)
	}
	if err := registerPlugins(a.pluginManager); err != nil {
		logger.Warnf("Plugin registration: %v", err)
	}
	if err := a.pluginManager.InitializePlugins(a.editorAPI); err != nil {
		logger.Warnf("Plugin initialization: %v", err)
	}

	if err := a.openFiles(files); err != nil {
		return nil, err
	}
	a.layout()
	a.needsRedraw = true
	return a, nil
}

// openFiles opens files in order and activates the first. With no files an
// unnamed buffer is created.
func (a *App) openFiles(files []string) error {
	var errs []error
	for _, f := range files {
		if _, err := a.editor.OpenFile(f); err != nil {
			errs = append(errs, err)
		}
	}
	if len(a.editor.Documents()) == 0 {
		if len(errs) > 0 {
			return errors.Join(errs...)
		}
		a.editor.AddBuffer(buffer.NewSliceBuffer())
		return nil
	}
	for _, err := range errs {
		logger.Warnf("Opening file: %v", err)
	}
	return a.editor.SwitchTo(0)
}

// Run processes screen events until quit is requested.
func (a *App) Run() error {
	defer a.tuiManager.Close()
	defer a.pluginManager.ShutdownPlugins()

	a.startWatcher()
	defer a.stopWatcher()

	a.expiry = time.AfterFunc(time.Hour, func() { a.post(messageExpired{}) })
	a.expiry.Stop()
	defer a.expiry.Stop()

	a.eventManager.Dispatch(event.TypeAppReady, event.AppReadyData{})
	a.statusBar.SetTemporaryMessage(welcomeMessage)
	a.draw()
	a.armMessageExpiry()

	for {
		select {
		case <-a.quit:
			a.eventManager.Dispatch(event.TypeAppQuit, event.AppQuitData{})
			if a.editor.IsModified() {
				logger.Warnf("Exited with unsaved changes")
			}
			logger.Infof("Exiting application")
			return nil
		default:
		}

		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return nil
		}
		a.handleEvent(ev)
		if a.needsRedraw {
			a.draw()
			if _, tick := interruptData(ev).(messageExpired); !tick {
				a.armMessageExpiry()
			}
		}
	}
}

// armMessageExpiry schedules a redraw for when the current status message
// runs out.
func (a *App) armMessageExpiry() {
	a.expiry.Reset(a.statusBar.Timeout() + 50*time.Millisecond)
}

// requestQuit stops the event loop. Safe to call more than once and from
// any goroutine.
func (a *App) requestQuit() {
	a.quitOnce.Do(func() {
		close(a.quit)
		a.post(wakeUp{})
	})
}

// post queues data for the event loop.
func (a *App) post(data interface{}) {
	if err := a.tuiManager.PostEvent(tcell.NewEventInterrupt(data)); err != nil {
		logger.DebugTagf("app", "Dropped %T: %v", data, err)
	}
}

// RequestRedraw marks the screen as stale.
func (a *App) RequestRedraw() {
	a.needsRedraw = true
}

// SetStatusMessage shows a temporary status message.
func (a *App) SetStatusMessage(format string, args ...interface{}) {
	a.statusBar.SetTemporaryMessage(format, args...)
	a.needsRedraw = true
}

// SetTheme activates the named theme. Plugins are sent the current
// configuration again so that colours derived from the theme are rebuilt.
func (a *App) SetTheme(name string) error {
	if err := a.themeManager.SetTheme(name); err != nil {
		return err
	}
	a.tuiManager.SetTheme(a.themeManager.Current())
	a.eventManager.Dispatch(event.TypeConfigReloaded, event.ConfigReloadedData{Config: a.cfg})
	a.needsRedraw = true
	return nil
}

// Editor returns the editor core.
func (a *App) Editor() *core.Editor {
	return a.editor
}

// ModeHandler returns the input mode handler.
func (a *App) ModeHandler() *modehandler.ModeHandler {
	return a.modeHandler
}
