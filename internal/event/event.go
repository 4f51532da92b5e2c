package event

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/footsteps/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Buffer events
	TypeTextChanged         // Text was inserted or deleted in a buffer
	TypeBufferLoaded        // A buffer was opened from disk
	TypeBufferSaved         // A buffer was written to disk
	TypeActiveBufferChanged // Another buffer became the active one

	// Cursor events
	TypeCursorMoved   // The cursor moved for any reason
	TypeCursorClicked // The user deliberately placed the cursor with the mouse

	// Input
	TypeKeyPressed

	// Application
	TypeConfigReloaded   // The config file changed and was re-read
	TypeFootstepsChanged // The edit history changed; decorations are stale
	TypeAppReady
	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeUnknown:             "Unknown",
	TypeTextChanged:         "TextChanged",
	TypeBufferLoaded:        "BufferLoaded",
	TypeBufferSaved:         "BufferSaved",
	TypeActiveBufferChanged: "ActiveBufferChanged",
	TypeCursorMoved:         "CursorMoved",
	TypeCursorClicked:       "CursorClicked",
	TypeKeyPressed:          "KeyPressed",
	TypeConfigReloaded:      "ConfigReloaded",
	TypeFootstepsChanged:    "FootstepsChanged",
	TypeAppReady:            "AppReady",
	TypeAppQuit:             "AppQuit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// TextChangedData carries the changes of one edit, in the order applied.
type TextChangedData struct {
	FilePath string
	Changes  []types.ContentChange
}

// BufferLoadedData contains info about the loaded buffer.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	FilePath string
}

// ActiveBufferChangedData names the new and previous active buffers.
type ActiveBufferChangedData struct {
	FilePath     string
	PreviousPath string
}

// CursorMovedData contains the new cursor position.
type CursorMovedData struct {
	FilePath    string
	NewPosition types.Position
}

// CursorClickedData describes a mouse click that placed the cursor.
type CursorClickedData struct {
	FilePath   string
	Position   types.Position
	LineLength int
}

// KeyPressedData contains the raw tcell key event.
type KeyPressedData struct {
	KeyEvent *tcell.EventKey
}

// ConfigReloadedData carries the new configuration. Config is a *config.Config;
// it is untyped here to keep this package free of the config dependency.
type ConfigReloadedData struct {
	Config interface{}
}

// FootstepsChangedData reports the history size after a change.
type FootstepsChangedData struct {
	Count  int
	Cursor int
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
