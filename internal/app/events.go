package app

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/footsteps/internal/config"
	"github.com/bethropolis/footsteps/internal/event"
	"github.com/bethropolis/footsteps/internal/logger"
	"github.com/bethropolis/footsteps/internal/tui"
)

const wheelLines = 3

// Payloads of interrupt events posted to the loop by other goroutines.
type (
	configLoaded   struct{ cfg *config.Config }
	messageExpired struct{}
	wakeUp         struct{}
)

func interruptData(ev tcell.Event) interface{} {
	if in, ok := ev.(*tcell.EventInterrupt); ok {
		return in.Data()
	}
	return nil
}

// handleEvent applies one screen event.
func (a *App) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.tuiManager.Sync()
		a.needsRedraw = true
	case *tcell.EventKey:
		if a.modeHandler.HandleKeyEvent(ev) {
			a.needsRedraw = true
		}
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventInterrupt:
		a.handleInterrupt(ev)
	}
}

// handleMouse turns a left button press into a click and the wheel into
// cursor movement. Drags and releases are ignored.
func (a *App) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	down := buttons&tcell.Button1 != 0
	pressed := down && !a.buttonDown
	a.buttonDown = down

	switch {
	case buttons&tcell.WheelUp != 0:
		a.editor.MoveCursor(-wheelLines, 0)
	case buttons&tcell.WheelDown != 0:
		a.editor.MoveCursor(wheelLines, 0)
	case pressed:
		x, y := ev.Position()
		pos, ok := tui.ScreenToBuffer(a.tuiManager, a.editor.ActiveDocument(), a.editor.ViewHeight(), x, y)
		if !ok {
			return
		}
		a.editor.Click(pos)
	default:
		return
	}
	a.needsRedraw = true
}

func (a *App) handleInterrupt(ev *tcell.EventInterrupt) {
	switch data := ev.Data().(type) {
	case configLoaded:
		a.eventManager.Dispatch(event.TypeConfigReloaded, event.ConfigReloadedData{Config: data.cfg})
		a.statusBar.SetTemporaryMessage("Configuration reloaded")
		a.needsRedraw = true
	case messageExpired:
		a.needsRedraw = true
	}
}

func (a *App) subscribeEvents() {
	a.eventManager.Subscribe(event.TypeCursorMoved, a.handleCursorMoved)
	a.eventManager.Subscribe(event.TypeTextChanged, a.handleRedraw)
	a.eventManager.Subscribe(event.TypeActiveBufferChanged, a.handleRedraw)
	a.eventManager.Subscribe(event.TypeBufferSaved, a.handleRedraw)
	a.eventManager.Subscribe(event.TypeConfigReloaded, a.handleConfigReloaded)
}

func (a *App) handleCursorMoved(e event.Event) bool {
	if data, ok := e.Data.(event.CursorMovedData); ok {
		a.statusBar.SetCursorInfo(data.NewPosition)
	}
	return false
}

func (a *App) handleRedraw(e event.Event) bool {
	a.needsRedraw = true
	return false
}

// handleConfigReloaded applies the editor settings of a new configuration.
func (a *App) handleConfigReloaded(e event.Event) bool {
	data, ok := e.Data.(event.ConfigReloadedData)
	if !ok {
		return false
	}
	cfg, ok := data.Config.(*config.Config)
	if !ok || cfg == nil {
		return false
	}

	a.cfg = cfg
	a.editor.ScrollOff = cfg.Editor.ScrollOff
	a.modeHandler.SetTabWidth(cfg.Editor.TabWidth)
	if cfg.Editor.Theme != "" && !strings.EqualFold(cfg.Editor.Theme, a.themeManager.Current().Name) {
		if err := a.themeManager.SetTheme(cfg.Editor.Theme); err != nil {
			logger.Warnf("Theme %q: %v", cfg.Editor.Theme, err)
		} else {
			a.tuiManager.SetTheme(a.themeManager.Current())
		}
	}
	a.needsRedraw = true
	return false
}

// startWatcher reloads the configuration when its file changes. The
// watcher's goroutine only hands the result to the loop.
func (a *App) startWatcher() {
	w, err := config.NewWatcher(a.configPath, a.flags, func(cfg *config.Config) {
		a.post(configLoaded{cfg: cfg})
	})
	if err != nil {
		logger.Warnf("Config file will not be watched: %v", err)
		return
	}
	a.watcher = w
}

func (a *App) stopWatcher() {
	if a.watcher == nil {
		return
	}
	if err := a.watcher.Close(); err != nil {
		logger.Warnf("Closing config watcher: %v", err)
	}
}
