package statusbar

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/footsteps/internal/config"
	"github.com/bethropolis/footsteps/internal/theme"
	"github.com/bethropolis/footsteps/internal/types"
)

// StatusBar is the bottom line of the screen: file, cursor, plugin
// indicators and temporary messages.
type StatusBar struct {
	mu sync.RWMutex

	filePath   string
	isModified bool
	cursorPos  types.Position
	editorMode string
	indicators map[string]string

	timeout         time.Duration
	tempMessage     string
	tempMessageTime time.Time
	now             func() time.Time
}

// New creates a status bar whose messages last timeout.
func New(timeout time.Duration) *StatusBar {
	if timeout <= 0 {
		timeout = config.MessageTimeout
	}
	return &StatusBar{
		indicators: make(map[string]string),
		timeout:    timeout,
		now:        time.Now,
	}
}

// SetFileInfo updates the file path and modified flag.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCursorInfo updates the cursor position shown.
func (sb *StatusBar) SetCursorInfo(pos types.Position) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursorPos = pos
}

// SetEditorMode updates the displayed editor mode.
func (sb *StatusBar) SetEditorMode(mode string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.editorMode = mode
}

// SetIndicator shows text in the indicator slot name. Empty text removes it.
func (sb *StatusBar) SetIndicator(name, text string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	if text == "" {
		delete(sb.indicators, name)
		return
	}
	sb.indicators[name] = text
}

// SetTemporaryMessage displays a message until the timeout passes.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears the temporary message.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

// Timeout returns how long temporary messages stay visible.
func (sb *StatusBar) Timeout() time.Duration {
	return sb.timeout
}

// message returns the active temporary message, expiring it if needed.
// The caller holds the write lock.
func (sb *StatusBar) message() (string, bool) {
	if sb.tempMessageTime.IsZero() {
		return "", false
	}
	if sb.now().Sub(sb.tempMessageTime) > sb.timeout {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
		return "", false
	}
	return sb.tempMessage, true
}

// left and right build the default status line halves. The caller holds the lock.
func (sb *StatusBar) left() string {
	path := sb.filePath
	if path == "" {
		path = "[No Name]"
	}
	if sb.isModified {
		path += " [+]"
	}
	if sb.editorMode != "" {
		path = sb.editorMode + "  " + path
	}
	return path
}

func (sb *StatusBar) right() string {
	names := make([]string, 0, len(sb.indicators))
	for name := range sb.indicators {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names)+1)
	for _, name := range names {
		parts = append(parts, sb.indicators[name])
	}
	parts = append(parts, fmt.Sprintf("Ln %d, Col %d", sb.cursorPos.Line+1, sb.cursorPos.Col+1))
	return strings.Join(parts, "  ")
}

// Draw renders the status bar on the last row of the screen.
func (sb *StatusBar) Draw(screen tcell.Screen, width, height int, th *theme.Theme) {
	if height <= 0 || width <= 0 {
		return
	}
	y := height - 1

	sb.mu.Lock()
	msg, hasMsg := sb.message()
	modified := sb.isModified
	left, right := sb.left(), sb.right()
	sb.mu.Unlock()

	base := th.GetStyle("StatusBar")
	fill(screen, y, width, base)

	if hasMsg {
		style := th.GetStyle("StatusBarMessage")
		if strings.HasPrefix(msg, ":") {
			style = th.GetStyle("StatusBarCommand")
		}
		drawText(screen, 0, y, runewidth.Truncate(msg, width, "…"), style)
		return
	}

	rightWidth := runewidth.StringWidth(right)
	if rightWidth+1 >= width {
		drawText(screen, 0, y, runewidth.Truncate(right, width, "…"), th.GetStyle("StatusBarSteps"))
		return
	}
	leftStyle := base
	if modified {
		leftStyle = th.GetStyle("StatusBarModified")
	}
	drawText(screen, 0, y, runewidth.Truncate(left, width-rightWidth-1, "…"), leftStyle)
	drawText(screen, width-rightWidth, y, right, th.GetStyle("StatusBarSteps"))
}

func fill(screen tcell.Screen, y, width int, style tcell.Style) {
	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, style)
	}
}

// drawText draws s from x by grapheme cluster and returns the column after it.
func drawText(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	gr := uniseg.NewGraphemes(s)
	for gr.Next() {
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], style)
		x += gr.Width()
	}
	return x
}
