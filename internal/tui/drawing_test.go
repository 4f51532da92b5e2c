package tui

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/footsteps/internal/buffer"
	"github.com/bethropolis/footsteps/internal/core"
	"github.com/bethropolis/footsteps/internal/theme"
	"github.com/bethropolis/footsteps/internal/types"
)

func newTestTUI(t *testing.T, width, height int) (*TUI, tcell.SimulationScreen) {
	t.Helper()
	s := tcell.NewSimulationScreen("")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(width, height)
	th := theme.TrailDark
	tu := NewWithScreen(s, &th)
	t.Cleanup(tu.Close)
	return tu, s
}

func cellAt(s tcell.SimulationScreen, x, y int) tcell.SimCell {
	cells, width, _ := s.GetContents()
	return cells[y*width+x]
}

func rowText(s tcell.SimulationScreen, y int) string {
	cells, width, _ := s.GetContents()
	var b strings.Builder
	for x := 0; x < width; x++ {
		if r := cells[y*width+x].Runes; len(r) > 0 {
			b.WriteString(string(r))
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func TestGutterWidth(t *testing.T) {
	tests := []struct {
		lines, width, want int
	}{
		{0, 80, 2},
		{9, 80, 2},
		{10, 80, 3},
		{1000, 80, 5},
		{1000, 5, 0},
	}
	for _, tt := range tests {
		if got := GutterWidth(tt.lines, tt.width); got != tt.want {
			t.Errorf("GutterWidth(%d, %d): expected %d, got %d", tt.lines, tt.width, tt.want, got)
		}
	}
}

func TestDrawBufferWithLineStyles(t *testing.T) {
	tu, s := newTestTUI(t, 20, 4)
	doc := &core.Document{Buffer: buffer.NewSliceBufferFromString("one\ntwo\nthree")}
	th := theme.TrailDark
	mark := tcell.StyleDefault.Background(tcell.NewHexColor(0x804020))

	DrawBuffer(tu, View{Doc: doc, Height: 3, LineStyles: map[int]tcell.Style{1: mark}}, &th)
	tu.Show()

	if got := rowText(s, 0); got != "1 one" {
		t.Errorf("expected '1 one', got %q", got)
	}
	if got := rowText(s, 2); got != "3 three" {
		t.Errorf("expected '3 three', got %q", got)
	}

	_, bg, _ := cellAt(s, 2, 1).Style.Decompose()
	if bg != tcell.NewHexColor(0x804020) {
		t.Errorf("expected decorated text background, got %v", bg)
	}
	_, bg, _ = cellAt(s, 15, 1).Style.Decompose()
	if bg != tcell.NewHexColor(0x804020) {
		t.Errorf("expected the decoration to span the row, got %v", bg)
	}
	_, bg, _ = cellAt(s, 0, 1).Style.Decompose()
	if bg == tcell.NewHexColor(0x804020) {
		t.Errorf("expected the gutter to stay undecorated")
	}
	_, bg, _ = cellAt(s, 2, 0).Style.Decompose()
	if bg != th.Background() {
		t.Errorf("expected an undecorated line to use the theme background, got %v", bg)
	}
}

func TestDrawBufferHorizontalScroll(t *testing.T) {
	tu, s := newTestTUI(t, 6, 2)
	doc := &core.Document{Buffer: buffer.NewSliceBufferFromString("abcdefgh"), ViewportX: 3}
	th := theme.TrailDark

	DrawBuffer(tu, View{Doc: doc, Height: 1}, &th)
	tu.Show()
	if got := rowText(s, 0); got != "1 defg" {
		t.Errorf("expected '1 defg', got %q", got)
	}
}

func TestScreenToBufferAndCursor(t *testing.T) {
	tu, s := newTestTUI(t, 20, 5)
	doc := &core.Document{Buffer: buffer.NewSliceBufferFromString("a世b\nxyz")}

	tests := []struct {
		x, y int
		want types.Position
		ok   bool
	}{
		{2, 0, types.Position{Line: 0, Col: 0}, true},
		{4, 0, types.Position{Line: 0, Col: 1}, true},
		{5, 0, types.Position{Line: 0, Col: 2}, true},
		{0, 1, types.Position{Line: 1, Col: 0}, true},
		{15, 1, types.Position{Line: 1, Col: 3}, true},
		{3, 3, types.Position{Line: 1, Col: 1}, true},
		{3, 4, types.Position{}, false},
	}
	for _, tt := range tests {
		got, ok := ScreenToBuffer(tu, doc, 4, tt.x, tt.y)
		if ok != tt.ok || got != tt.want {
			t.Errorf("(%d,%d): expected %v/%t, got %v/%t", tt.x, tt.y, tt.want, tt.ok, got, ok)
		}
	}

	doc.Cursor = types.Position{Line: 0, Col: 2}
	DrawCursor(tu, doc, 4)
	tu.Show()
	x, y, visible := s.GetCursor()
	if !visible || x != 5 || y != 0 {
		t.Errorf("expected cursor at (5,0), got (%d,%d) visible=%t", x, y, visible)
	}
}
