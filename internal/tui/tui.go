package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/footsteps/internal/theme"
)

// TUI manages the terminal screen using tcell.
type TUI struct {
	screen tcell.Screen
}

// New creates and initialises a terminal screen with mouse reporting on.
func New(th *theme.Theme) (*TUI, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create tcell screen: %w", err)
	}
	if err := s.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize tcell screen: %w", err)
	}
	return NewWithScreen(s, th), nil
}

// NewWithScreen wraps an initialised screen.
func NewWithScreen(s tcell.Screen, th *theme.Theme) *TUI {
	s.SetStyle(th.GetStyle("Default"))
	s.EnableMouse(tcell.MouseButtonEvents)
	return &TUI{screen: s}
}

// SetTheme changes the screen's base style.
func (t *TUI) SetTheme(th *theme.Theme) {
	t.screen.SetStyle(th.GetStyle("Default"))
}

// Close finalizes the screen.
func (t *TUI) Close() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// PollEvent waits for the next event. It returns nil after Close.
func (t *TUI) PollEvent() tcell.Event {
	return t.screen.PollEvent()
}

// PostEvent queues an event for PollEvent. It is safe to call from any goroutine.
func (t *TUI) PostEvent(ev tcell.Event) error {
	return t.screen.PostEvent(ev)
}

// Clear clears the entire screen.
func (t *TUI) Clear() {
	t.screen.Clear()
}

// Show makes the changes visible.
func (t *TUI) Show() {
	t.screen.Show()
}

// Sync redraws the whole terminal, e.g. after a resize.
func (t *TUI) Sync() {
	t.screen.Sync()
}

// Size returns the width and height of the screen.
func (t *TUI) Size() (int, int) {
	return t.screen.Size()
}

// GetScreen returns the underlying screen.
func (t *TUI) GetScreen() tcell.Screen {
	return t.screen
}
