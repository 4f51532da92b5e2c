package core

import (
	"github.com/rivo/uniseg"

	"github.com/bethropolis/footsteps/internal/event"
	"github.com/bethropolis/footsteps/internal/types"
	"github.com/bethropolis/footsteps/internal/utils"
)

// clampPosition moves pos onto an existing line and column of d.
func clampPosition(d *Document, pos types.Position) types.Position {
	pos.Line = utils.Clamp(pos.Line, 0, d.Buffer.LineCount()-1)
	pos.Col = utils.Clamp(pos.Col, 0, d.Buffer.LineLength(pos.Line))
	return pos
}

func (e *Editor) moved(d *Document) {
	e.ScrollToCursor()
	e.dispatch(event.TypeCursorMoved, event.CursorMovedData{FilePath: d.Path(), NewPosition: d.Cursor})
}

// SetCursor places the cursor at pos, clamped to the document.
func (e *Editor) SetCursor(pos types.Position) {
	d := e.ActiveDocument()
	if d == nil {
		return
	}
	d.Cursor = clampPosition(d, pos)
	e.moved(d)
}

// Click places the cursor where the user clicked and reports the click, so
// that deliberate cursor placement is recorded as activity.
func (e *Editor) Click(pos types.Position) {
	d := e.ActiveDocument()
	if d == nil {
		return
	}
	d.Cursor = clampPosition(d, pos)
	e.moved(d)
	e.dispatch(event.TypeCursorClicked, event.CursorClickedData{
		FilePath:   d.Path(),
		Position:   d.Cursor,
		LineLength: d.Buffer.LineLength(d.Cursor.Line),
	})
}

// MoveCursor moves the cursor by the given deltas. Horizontal moves wrap
// across line ends.
func (e *Editor) MoveCursor(deltaLine, deltaCol int) {
	d := e.ActiveDocument()
	if d == nil {
		return
	}
	cur := d.Cursor
	lineCount := d.Buffer.LineCount()

	if deltaLine == 0 {
		switch {
		case deltaCol > 0 && cur.Col >= d.Buffer.LineLength(cur.Line) && cur.Line < lineCount-1:
			d.Cursor = types.Position{Line: cur.Line + 1}
			e.moved(d)
			return
		case deltaCol < 0 && cur.Col <= 0 && cur.Line > 0:
			d.Cursor = types.Position{Line: cur.Line - 1, Col: d.Buffer.LineLength(cur.Line - 1)}
			e.moved(d)
			return
		}
	}

	d.Cursor = clampPosition(d, types.Position{Line: cur.Line + deltaLine, Col: cur.Col + deltaCol})
	e.moved(d)
}

// Home moves the cursor to the beginning of the line.
func (e *Editor) Home() {
	if d := e.ActiveDocument(); d != nil {
		d.Cursor.Col = 0
		e.moved(d)
	}
}

// End moves the cursor past the last rune of the line.
func (e *Editor) End() {
	if d := e.ActiveDocument(); d != nil {
		d.Cursor.Col = d.Buffer.LineLength(d.Cursor.Line)
		e.moved(d)
	}
}

// PageMove moves the cursor and viewport by whole pages.
func (e *Editor) PageMove(deltaPages int) {
	d := e.ActiveDocument()
	if d == nil || e.viewHeight <= 0 {
		return
	}
	lineCount := d.Buffer.LineCount()
	d.Cursor = clampPosition(d, types.Position{Line: d.Cursor.Line + e.viewHeight*deltaPages, Col: d.Cursor.Col})
	maxViewportY := lineCount - e.viewHeight
	if maxViewportY < 0 {
		maxViewportY = 0
	}
	d.ViewportY = utils.Clamp(d.ViewportY+e.viewHeight*deltaPages, 0, maxViewportY)
	e.moved(d)
}

// CellWidth returns the screen cells used by a grapheme cluster that uniseg
// measured as width. Control characters such as tab take one cell.
func CellWidth(width int) int {
	if width < 1 {
		return 1
	}
	return width
}

// VisualColumn returns the screen column of rune index col within line,
// accounting for wide characters and grapheme clusters.
func VisualColumn(line []byte, col int) int {
	if col <= 0 {
		return 0
	}
	width, runes := 0, 0
	gr := uniseg.NewGraphemes(string(line))
	for gr.Next() && runes < col {
		width += CellWidth(gr.Width())
		runes += len(gr.Runes())
	}
	return width
}

// RuneIndexAt returns the rune index of the cluster covering screen column
// visualCol, or the line length past the end.
func RuneIndexAt(line []byte, visualCol int) int {
	width, runes := 0, 0
	gr := uniseg.NewGraphemes(string(line))
	for gr.Next() {
		w := CellWidth(gr.Width())
		if visualCol < width+w {
			return runes
		}
		width += w
		runes += len(gr.Runes())
	}
	return runes
}

// ScrollToCursor adjusts the viewport so that the cursor stays visible with
// ScrollOff lines of context.
func (e *Editor) ScrollToCursor() {
	d := e.ActiveDocument()
	if d == nil || e.viewHeight <= 0 || e.viewWidth <= 0 {
		return
	}

	off := e.ScrollOff
	if off*2 >= e.viewHeight {
		off = (e.viewHeight - 1) / 2
	}

	if d.Cursor.Line < d.ViewportY+off {
		d.ViewportY = d.Cursor.Line - off
	} else if d.Cursor.Line >= d.ViewportY+e.viewHeight-off {
		d.ViewportY = d.Cursor.Line - e.viewHeight + 1 + off
	}

	visualCol := 0
	if line, err := d.Buffer.Line(d.Cursor.Line); err == nil {
		visualCol = VisualColumn(line, d.Cursor.Col)
	}
	if visualCol < d.ViewportX {
		d.ViewportX = visualCol
	} else if visualCol >= d.ViewportX+e.viewWidth {
		d.ViewportX = visualCol - e.viewWidth + 1
	}

	if d.ViewportY < 0 {
		d.ViewportY = 0
	}
	if d.ViewportX < 0 {
		d.ViewportX = 0
	}
}
