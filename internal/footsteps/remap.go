package footsteps

import "strings"

// Edit describes one text change in pre-edit coordinates.
type Edit struct {
	// StartLine is the first line of the replaced range.
	StartLine int

	// EndLine is the last line of the replaced range.
	EndLine int

	// EndCol is the column where the replaced range ended.
	EndCol int

	// Text is the inserted text. Empty for a pure deletion.
	Text string

	// HadDeletion is true when the replaced range was non-empty.
	HadDeletion bool
}

// InsertedLines returns the number of line breaks in the inserted text.
func (e Edit) InsertedLines() int {
	return strings.Count(e.Text, "\n")
}

// DeletedLines returns the number of line breaks removed by the edit.
func (e Edit) DeletedLines() int {
	if !e.HadDeletion {
		return 0
	}
	return e.EndLine - e.StartLine
}

// LineDelta is the net number of lines the edit adds to the document.
// Lines after StartLine move by this amount.
func (e Edit) LineDelta() int {
	return e.InsertedLines() - e.DeletedLines()
}

func (e Edit) valid() bool {
	return e.StartLine >= 0 && e.EndLine >= e.StartLine
}

// blank reports whether the edit inserts only spaces and newlines, or
// nothing. Tabs count as content.
func (e Edit) blank() bool {
	return strings.Trim(e.Text, " \n") == ""
}

// shiftLine moves a single line number across the edit. Lines that were
// inside a deleted range fold onto StartLine.
func (e Edit) shiftLine(line int) int {
	if line <= e.StartLine {
		return line
	}
	line += e.LineDelta()
	if line < e.StartLine {
		return e.StartLine
	}
	return line
}

// touched returns the post-edit lines covered by the edit, at least one.
func (e Edit) touched() LineSet {
	count := (e.EndLine - e.StartLine + 1) + e.InsertedLines() - e.DeletedLines()
	if count < 1 {
		count = 1
	}
	return LineRange(e.StartLine, count)
}

// Remap returns the chunk with its lines and last position moved across the
// edits, applied in order. Malformed edits are ignored, and a chunk whose
// lines are out of order is returned unchanged.
func Remap(c Chunk, edits []Edit) Chunk {
	c = c.clone()
	for _, e := range edits {
		if !e.valid() || !c.Lines.consistent() {
			continue
		}
		if e.LineDelta() == 0 {
			continue
		}
		c.LastPosition.Line = e.shiftLine(c.LastPosition.Line)
		shifted := make([]int, len(c.Lines))
		for i, l := range c.Lines {
			shifted[i] = e.shiftLine(l)
		}
		c.Lines = NewLineSet(shifted...)
	}
	return c
}

// editedLines collects the lines touched by a batch of edits and the last
// line that was newly added to the result.
func editedLines(edits []Edit) (LineSet, int) {
	var (
		lines []int
		last  int
	)
	seen := make(map[int]struct{})
	for _, e := range edits {
		if !e.valid() {
			continue
		}
		for _, l := range e.touched() {
			if _, ok := seen[l]; ok {
				continue
			}
			seen[l] = struct{}{}
			lines = append(lines, l)
			last = l
		}
	}
	return NewLineSet(lines...), last
}
