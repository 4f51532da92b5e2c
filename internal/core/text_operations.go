package core

import (
	"fmt"
	"unicode/utf8"

	"github.com/bethropolis/footsteps/internal/event"
	"github.com/bethropolis/footsteps/internal/types"
)

func (e *Editor) changed(d *Document, change types.ContentChange) {
	e.ScrollToCursor()
	e.dispatch(event.TypeTextChanged, event.TextChangedData{
		FilePath: d.Path(),
		Changes:  []types.ContentChange{change},
	})
	e.dispatch(event.TypeCursorMoved, event.CursorMovedData{FilePath: d.Path(), NewPosition: d.Cursor})
}

// InsertText inserts text at the cursor and moves the cursor past it.
func (e *Editor) InsertText(text string) error {
	d := e.ActiveDocument()
	if d == nil {
		return ErrNoDocument
	}
	if text == "" {
		return nil
	}
	change, err := d.Buffer.Insert(d.Cursor, []byte(text))
	if err != nil {
		return fmt.Errorf("buffer insert failed: %w", err)
	}

	d.Cursor = change.Start
	for _, r := range text {
		if r == '\n' {
			d.Cursor.Line++
			d.Cursor.Col = 0
		} else {
			d.Cursor.Col++
		}
	}
	e.changed(d, change)
	return nil
}

// InsertRune inserts a single rune at the cursor.
func (e *Editor) InsertRune(r rune) error {
	buf := make([]byte, utf8.RuneLen(r))
	utf8.EncodeRune(buf, r)
	return e.InsertText(string(buf))
}

// InsertNewLine splits the line at the cursor.
func (e *Editor) InsertNewLine() error {
	return e.InsertRune('\n')
}

// InsertTab inserts spaces up to the next tab stop.
func (e *Editor) InsertTab(width int) error {
	if width <= 0 {
		width = 1
	}
	n := width - e.GetCursor().Col%width
	spaces := make([]byte, n)
	for i := range spaces {
		spaces[i] = ' '
	}
	return e.InsertText(string(spaces))
}

// DeleteRange removes the text between two positions.
func (e *Editor) DeleteRange(start, end types.Position) error {
	d := e.ActiveDocument()
	if d == nil {
		return ErrNoDocument
	}
	change, err := d.Buffer.Delete(start, end)
	if err != nil {
		return fmt.Errorf("buffer delete failed: %w", err)
	}
	if change.RangeLength == 0 {
		return nil
	}
	d.Cursor = change.Start
	e.changed(d, change)
	return nil
}

// DeleteBackward removes the rune before the cursor, joining lines at the
// start of a line.
func (e *Editor) DeleteBackward() error {
	d := e.ActiveDocument()
	if d == nil {
		return ErrNoDocument
	}
	start := d.Cursor
	switch {
	case start.Col > 0:
		start.Col--
	case start.Line > 0:
		start.Line--
		start.Col = d.Buffer.LineLength(start.Line)
	default:
		return nil
	}
	return e.DeleteRange(start, d.Cursor)
}

// DeleteForward removes the rune under the cursor, joining the next line at
// the end of a line.
func (e *Editor) DeleteForward() error {
	d := e.ActiveDocument()
	if d == nil {
		return ErrNoDocument
	}
	end := d.Cursor
	switch {
	case end.Col < d.Buffer.LineLength(end.Line):
		end.Col++
	case end.Line < d.Buffer.LineCount()-1:
		end.Line++
		end.Col = 0
	default:
		return nil
	}
	return e.DeleteRange(d.Cursor, end)
}

// DeleteLine removes the cursor's line entirely.
func (e *Editor) DeleteLine() error {
	d := e.ActiveDocument()
	if d == nil {
		return ErrNoDocument
	}
	line := d.Cursor.Line
	count := d.Buffer.LineCount()
	switch {
	case count == 1:
		return e.DeleteRange(types.Position{}, types.Position{Col: d.Buffer.LineLength(0)})
	case line < count-1:
		return e.DeleteRange(types.Position{Line: line}, types.Position{Line: line + 1})
	default:
		prev := line - 1
		return e.DeleteRange(
			types.Position{Line: prev, Col: d.Buffer.LineLength(prev)},
			types.Position{Line: line, Col: d.Buffer.LineLength(line)},
		)
	}
}
