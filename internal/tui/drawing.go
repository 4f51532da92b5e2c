package tui

import (
	"fmt"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/footsteps/internal/core"
	"github.com/bethropolis/footsteps/internal/theme"
	"github.com/bethropolis/footsteps/internal/types"
)

const gutterPadding = 1

// GutterWidth returns the width of the line number column, or 0 when the
// screen is too narrow for it.
func GutterWidth(lineCount, width int) int {
	if lineCount < 1 {
		lineCount = 1
	}
	w := len(strconv.Itoa(lineCount)) + gutterPadding
	if w >= width {
		return 0
	}
	return w
}

// View is what DrawBuffer needs to know about the visible document.
type View struct {
	Doc        *core.Document
	Height     int                 // text rows
	LineStyles map[int]tcell.Style // whole-line backgrounds by buffer line
}

// DrawBuffer draws the visible part of the document with its line numbers.
// Lines with an entry in LineStyles are drawn in that style across the
// whole text area.
func DrawBuffer(t *TUI, v View, th *theme.Theme) {
	width, _ := t.Size()
	if v.Doc == nil || v.Height <= 0 || width <= 0 {
		return
	}

	defaultStyle := th.GetStyle("Default")
	lineNumberStyle := th.GetStyle("LineNumber")
	currentNumberStyle := th.GetStyle("LineNumberCurrent")

	buf := v.Doc.Buffer
	lineCount := buf.LineCount()
	gutter := GutterWidth(lineCount, width)
	digits := gutter - gutterPadding
	viewX := v.Doc.ViewportX

	for screenY := 0; screenY < v.Height; screenY++ {
		lineIdx := v.Doc.ViewportY + screenY

		rowStyle, decorated := v.LineStyles[lineIdx]
		if !decorated {
			rowStyle = defaultStyle
		}
		for x := 0; x < width; x++ {
			style := rowStyle
			if x < gutter {
				style = defaultStyle
			}
			t.screen.SetContent(x, screenY, ' ', nil, style)
		}

		if lineIdx < 0 || lineIdx >= lineCount {
			continue
		}

		if gutter > 0 {
			numStyle := lineNumberStyle
			if lineIdx == v.Doc.Cursor.Line {
				numStyle = currentNumberStyle
			}
			for i, r := range fmt.Sprintf("%*d", digits, lineIdx+1) {
				t.screen.SetContent(i, screenY, r, nil, numStyle)
			}
		}

		line, err := buf.Line(lineIdx)
		if err != nil {
			continue
		}
		drawLine(t.screen, line, screenY, gutter, viewX, width, rowStyle)
	}
}

// drawLine draws one buffer line starting at visual column viewX.
func drawLine(s tcell.Screen, line []byte, y, gutter, viewX, width int, style tcell.Style) {
	visual := 0
	gr := uniseg.NewGraphemes(string(line))
	for gr.Next() {
		w := core.CellWidth(gr.Width())
		x := visual - viewX + gutter
		visual += w
		if x < gutter {
			continue
		}
		if x >= width {
			break
		}

		runes := gr.Runes()
		if runes[0] == '\t' {
			s.SetContent(x, y, ' ', nil, style)
			continue
		}
		s.SetContent(x, y, runes[0], runes[1:], style)
	}
}

// DrawCursor places the terminal cursor, hiding it when it is off screen.
func DrawCursor(t *TUI, doc *core.Document, viewHeight int) {
	if doc == nil {
		t.screen.HideCursor()
		return
	}
	width, _ := t.Size()
	gutter := GutterWidth(doc.Buffer.LineCount(), width)

	col := 0
	if line, err := doc.Buffer.Line(doc.Cursor.Line); err == nil {
		col = core.VisualColumn(line, doc.Cursor.Col)
	}
	x := col - doc.ViewportX + gutter
	y := doc.Cursor.Line - doc.ViewportY

	if x < gutter || x >= width || y < 0 || y >= viewHeight {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(x, y)
}

// ScreenToBuffer converts a screen cell to a buffer position in doc. It
// returns false for cells outside the text area.
func ScreenToBuffer(t *TUI, doc *core.Document, viewHeight, x, y int) (types.Position, bool) {
	if doc == nil || y < 0 || y >= viewHeight {
		return types.Position{}, false
	}
	width, _ := t.Size()
	gutter := GutterWidth(doc.Buffer.LineCount(), width)
	if x < gutter {
		x = gutter
	}

	lineIdx := doc.ViewportY + y
	if lineIdx >= doc.Buffer.LineCount() {
		lineIdx = doc.Buffer.LineCount() - 1
	}
	line, err := doc.Buffer.Line(lineIdx)
	if err != nil {
		return types.Position{}, false
	}
	return types.Position{Line: lineIdx, Col: core.RuneIndexAt(line, x-gutter+doc.ViewportX)}, true
}
