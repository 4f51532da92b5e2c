package core

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/bethropolis/footsteps/internal/buffer"
	"github.com/bethropolis/footsteps/internal/config"
	"github.com/bethropolis/footsteps/internal/event"
	"github.com/bethropolis/footsteps/internal/logger"
	"github.com/bethropolis/footsteps/internal/types"
)

// ErrNoDocument is returned when an operation needs an open document.
var ErrNoDocument = errors.New("no document open")

// Document is an open buffer together with its cursor and scroll position.
type Document struct {
	Buffer    buffer.Buffer
	Cursor    types.Position
	ViewportY int // Top visible line index
	ViewportX int // Leftmost visible visual column
}

// Path returns the document's file path.
func (d *Document) Path() string {
	return d.Buffer.FilePath()
}

// Editor holds the open documents and applies edits and cursor movement to
// the active one, announcing each change on the event bus.
type Editor struct {
	docs   []*Document
	active int

	viewWidth  int
	viewHeight int
	ScrollOff  int

	eventManager *event.Manager
}

// NewEditor creates an editor with no documents.
func NewEditor() *Editor {
	return &Editor{
		active:    -1,
		ScrollOff: config.DefaultScrollOff,
	}
}

// SetEventManager sets the event manager for dispatching events.
func (e *Editor) SetEventManager(mgr *event.Manager) {
	e.eventManager = mgr
}

func (e *Editor) dispatch(t event.Type, data interface{}) {
	if e.eventManager != nil {
		e.eventManager.Dispatch(t, data)
	}
}

// OpenFile loads path, or switches to it if it is already open, and makes it
// the active document.
func (e *Editor) OpenFile(path string) (*Document, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if i := e.indexOf(abs); i >= 0 {
		e.activate(i)
		return e.docs[i], nil
	}

	buf := buffer.NewSliceBuffer()
	if err := buf.Load(abs); err != nil {
		return nil, err
	}
	return e.AddBuffer(buf), nil
}

// AddBuffer adds an already loaded buffer and makes it active.
func (e *Editor) AddBuffer(buf buffer.Buffer) *Document {
	doc := &Document{Buffer: buf}
	e.docs = append(e.docs, doc)
	logger.DebugTagf("core", "Opened %s (%d lines)", buf.FilePath(), buf.LineCount())
	e.dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: buf.FilePath()})
	e.activate(len(e.docs) - 1)
	return doc
}

func (e *Editor) indexOf(path string) int {
	for i, d := range e.docs {
		if d.Path() == path {
			return i
		}
	}
	return -1
}

func (e *Editor) activate(i int) {
	if i == e.active {
		return
	}
	prev := e.ActiveFile()
	e.active = i
	e.ScrollToCursor()
	e.dispatch(event.TypeActiveBufferChanged, event.ActiveBufferChangedData{
		FilePath:     e.ActiveFile(),
		PreviousPath: prev,
	})
}

// SwitchTo makes the document at index i active.
func (e *Editor) SwitchTo(i int) error {
	if i < 0 || i >= len(e.docs) {
		return fmt.Errorf("no buffer %d (have %d)", i+1, len(e.docs))
	}
	e.activate(i)
	return nil
}

// Documents returns the open documents in the order they were opened.
func (e *Editor) Documents() []*Document {
	return e.docs
}

// Document returns the document for path, if it is open.
func (e *Editor) Document(path string) (*Document, bool) {
	if i := e.indexOf(path); i >= 0 {
		return e.docs[i], true
	}
	return nil, false
}

// ActiveDocument returns the active document, or nil.
func (e *Editor) ActiveDocument() *Document {
	if e.active < 0 || e.active >= len(e.docs) {
		return nil
	}
	return e.docs[e.active]
}

// ActiveIndex returns the index of the active document, or -1.
func (e *Editor) ActiveIndex() int {
	return e.active
}

// ActiveFile returns the path of the active document, or "".
func (e *Editor) ActiveFile() string {
	if d := e.ActiveDocument(); d != nil {
		return d.Path()
	}
	return ""
}

// GetBuffer returns the active buffer, or nil.
func (e *Editor) GetBuffer() buffer.Buffer {
	if d := e.ActiveDocument(); d != nil {
		return d.Buffer
	}
	return nil
}

// GetCursor returns the cursor of the active document.
func (e *Editor) GetCursor() types.Position {
	if d := e.ActiveDocument(); d != nil {
		return d.Cursor
	}
	return types.Position{}
}

// GetViewport returns the active document's top line and left column.
func (e *Editor) GetViewport() (int, int) {
	if d := e.ActiveDocument(); d != nil {
		return d.ViewportY, d.ViewportX
	}
	return 0, 0
}

// ViewHeight returns the number of text rows available.
func (e *Editor) ViewHeight() int {
	return e.viewHeight
}

// SetViewSize updates the cached view dimensions. Called on resize.
func (e *Editor) SetViewSize(width, height int) {
	e.viewWidth = width
	if height > config.StatusBarHeight {
		e.viewHeight = height - config.StatusBarHeight
	} else {
		e.viewHeight = 0
	}
	e.ScrollToCursor()
}

// JumpTo opens path if needed and places the cursor at pos.
func (e *Editor) JumpTo(path string, pos types.Position) error {
	if path != e.ActiveFile() {
		if _, err := e.OpenFile(path); err != nil {
			return err
		}
	}
	e.SetCursor(pos)
	return nil
}

// Save writes the active document to disk.
func (e *Editor) Save() error {
	d := e.ActiveDocument()
	if d == nil {
		return ErrNoDocument
	}
	if err := d.Buffer.Save(""); err != nil {
		return err
	}
	logger.Infof("Saved %s", d.Path())
	e.dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: d.Path()})
	return nil
}

// IsModified reports whether any open document has unsaved changes.
func (e *Editor) IsModified() bool {
	for _, d := range e.docs {
		if d.Buffer.IsModified() {
			return true
		}
	}
	return false
}
