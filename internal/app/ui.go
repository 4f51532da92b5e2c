package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/footsteps/internal/logger"
	"github.com/bethropolis/footsteps/internal/modehandler"
	"github.com/bethropolis/footsteps/internal/tui"
)

// layout gives the editor the text area left after the gutter and status bar.
func (a *App) layout() {
	width, height := a.tuiManager.Size()
	gutter := 0
	if buf := a.editor.GetBuffer(); buf != nil {
		gutter = tui.GutterWidth(buf.LineCount(), width)
	}
	a.editor.SetViewSize(width-gutter, height)
}

// draw redraws the whole screen.
func (a *App) draw() {
	a.needsRedraw = false
	a.layout()
	a.updateStatusBarContent()

	th := a.themeManager.Current()
	width, height := a.tuiManager.Size()
	doc := a.editor.ActiveDocument()
	viewHeight := a.editor.ViewHeight()

	logger.DebugTagf("draw", "Screen %dx%d, view height %d", width, height, viewHeight)

	a.tuiManager.Clear()
	tui.DrawBuffer(a.tuiManager, tui.View{
		Doc:        doc,
		Height:     viewHeight,
		LineStyles: a.lineStyles(),
	}, th)
	a.statusBar.Draw(a.tuiManager.GetScreen(), width, height, th)
	tui.DrawCursor(a.tuiManager, doc, viewHeight)
	a.tuiManager.Show()
}

// lineStyles merges the decorations of every decorator for the active
// document. Later decorators win on the same line.
func (a *App) lineStyles() map[int]tcell.Style {
	path := a.editor.ActiveFile()
	if path == "" || len(a.decorators) == 0 {
		return nil
	}
	cursor := a.editor.GetCursor()
	var merged map[int]tcell.Style
	for _, d := range a.decorators {
		styles := d.LineStyles(path, cursor)
		if len(styles) == 0 {
			continue
		}
		if merged == nil {
			merged = make(map[int]tcell.Style, len(styles))
		}
		for line, style := range styles {
			merged[line] = style
		}
	}
	return merged
}

// updateStatusBarContent pushes the editor state to the status bar.
func (a *App) updateStatusBarContent() {
	if buf := a.editor.GetBuffer(); buf != nil {
		a.statusBar.SetFileInfo(buf.FilePath(), buf.IsModified())
	}
	a.statusBar.SetCursorInfo(a.editor.GetCursor())
	mode := a.modeHandler.GetCurrentMode()
	a.statusBar.SetEditorMode(mode.String())

	// Keep the command line visible however long the user pauses.
	if mode == modehandler.ModeCommand {
		a.statusBar.SetTemporaryMessage(":%s", a.modeHandler.GetCommandBuffer())
	}
}
