package plugin

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/footsteps/internal/config"
	"github.com/bethropolis/footsteps/internal/event"
	"github.com/bethropolis/footsteps/internal/types"
)

// CommandFunc is a command registered by a plugin. It receives the words
// typed after the command name.
type CommandFunc func(args []string) error

// LineDecorator supplies background styles for lines of a document. The
// renderer calls it once per frame for the active document.
type LineDecorator interface {
	LineStyles(path string, cursor types.Position) map[int]tcell.Style
}

// EditorAPI is the part of the editor plugins may use.
type EditorAPI interface {
	// Documents
	ActiveFile() string
	GetBufferLine(path string, line int) ([]byte, error)
	GetBufferLineCount(path string) int
	GetBufferBytes(path string) []byte

	// Cursor
	GetCursor() types.Position
	JumpTo(path string, pos types.Position) error

	// Event bus
	DispatchEvent(eventType event.Type, data interface{})
	SubscribeEvent(eventType event.Type, handler event.Handler)

	// Commands
	RegisterCommand(name string, cmdFunc CommandFunc) error

	// Status bar
	SetStatusMessage(format string, args ...interface{})
	SetStatusIndicator(name, text string)

	// Rendering
	GetThemeStyle(styleName string) tcell.Style
	RegisterDecorator(d LineDecorator)
	RequestRedraw()

	// Configuration
	GetConfig() *config.Config
}

// Plugin is implemented by every plugin.
type Plugin interface {
	// Name returns the unique name of the plugin.
	Name() string

	// Initialize is called once at startup. Plugins subscribe to events and
	// register commands here.
	Initialize(api EditorAPI) error

	// Shutdown is called once when the editor is closing.
	Shutdown() error
}
