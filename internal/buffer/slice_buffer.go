package buffer

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/bethropolis/footsteps/internal/types"
	"github.com/bethropolis/footsteps/internal/utils"
)

// SliceBuffer stores a document as a slice of lines without their newlines.
type SliceBuffer struct {
	lines    [][]byte
	filePath string
	modified bool
}

// NewSliceBuffer creates a buffer holding a single empty line.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{lines: [][]byte{{}}}
}

// NewSliceBufferFromString creates an unnamed buffer with the given content.
func NewSliceBufferFromString(content string) *SliceBuffer {
	sb := NewSliceBuffer()
	sb.setContent([]byte(content))
	return sb
}

func (sb *SliceBuffer) setContent(content []byte) {
	parts := bytes.Split(content, []byte("\n"))
	sb.lines = make([][]byte, len(parts))
	for i, p := range parts {
		sb.lines[i] = append([]byte(nil), bytes.TrimSuffix(p, []byte("\r"))...)
	}
}

// Load reads a file into the buffer, replacing its content. A file that does
// not exist yet gives an empty buffer bound to filePath.
func (sb *SliceBuffer) Load(filePath string) error {
	sb.modified = false
	sb.filePath = filePath

	file, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.lines = [][]byte{{}}
			return nil
		}
		return fmt.Errorf("failed to open file '%s': %w", filePath, err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var lines [][]byte
	for scanner.Scan() {
		lines = append(lines, append([]byte(nil), scanner.Bytes()...))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading file '%s': %w", filePath, err)
	}
	if len(lines) == 0 {
		lines = [][]byte{{}}
	}
	sb.lines = lines
	return nil
}

// Lines returns the underlying lines. Callers must not modify them.
func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

// LineCount returns the number of lines, at least one.
func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

// Line returns the content of line index.
func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("%w: %d (0-%d)", ErrLineOutOfRange, index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// LineLength returns the rune count of line index, or 0 if it does not exist.
func (sb *SliceBuffer) LineLength(index int) int {
	if index < 0 || index >= len(sb.lines) {
		return 0
	}
	return utf8.RuneCount(sb.lines[index])
}

// Bytes joins the lines with newlines.
func (sb *SliceBuffer) Bytes() []byte {
	return bytes.Join(sb.lines, []byte("\n"))
}

// Save writes the buffer to filePath, or to its own path if filePath is empty.
func (sb *SliceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" {
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	content := append(sb.Bytes(), '\n')
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}
	sb.filePath = path
	sb.modified = false
	return nil
}

// IsModified returns true if the buffer has unsaved changes.
func (sb *SliceBuffer) IsModified() bool {
	return sb.modified
}

// FilePath returns the path the buffer is bound to.
func (sb *SliceBuffer) FilePath() string {
	return sb.filePath
}

// clamp moves pos inside the buffer and returns its byte offset on the line.
func (sb *SliceBuffer) clamp(pos types.Position) (types.Position, int) {
	pos.Line = utils.Clamp(pos.Line, 0, len(sb.lines)-1)
	line := sb.lines[pos.Line]
	pos.Col = utils.Clamp(pos.Col, 0, utf8.RuneCount(line))
	return pos, utils.RuneIndexToByteOffset(line, pos.Col)
}

// Insert inserts text at pos, which is clamped into the buffer. Text may
// span several lines.
func (sb *SliceBuffer) Insert(pos types.Position, text []byte) (types.ContentChange, error) {
	at, offset := sb.clamp(pos)
	change := types.ContentChange{Start: at, End: at, Text: string(text)}
	if len(text) == 0 {
		return change, nil
	}
	sb.modified = true

	current := sb.lines[at.Line]
	tail := append([]byte(nil), current[offset:]...)
	parts := bytes.Split(text, []byte("\n"))

	head := append(append([]byte(nil), current[:offset]...), parts[0]...)
	if len(parts) == 1 {
		sb.lines[at.Line] = append(head, tail...)
		return change, nil
	}

	inserted := make([][]byte, 0, len(parts))
	inserted = append(inserted, head)
	for _, p := range parts[1 : len(parts)-1] {
		inserted = append(inserted, append([]byte(nil), p...))
	}
	last := append(append([]byte(nil), parts[len(parts)-1]...), tail...)
	inserted = append(inserted, last)

	lines := make([][]byte, 0, len(sb.lines)+len(parts)-1)
	lines = append(lines, sb.lines[:at.Line]...)
	lines = append(lines, inserted...)
	lines = append(lines, sb.lines[at.Line+1:]...)
	sb.lines = lines
	return change, nil
}

// Delete removes the text from start (inclusive) to end (exclusive). The
// positions are ordered and clamped first.
func (sb *SliceBuffer) Delete(start, end types.Position) (types.ContentChange, error) {
	if end.Before(start) {
		start, end = end, start
	}
	from, fromOff := sb.clamp(start)
	to, toOff := sb.clamp(end)
	change := types.ContentChange{Start: from, End: to}
	if from == to {
		return change, nil
	}

	change.RangeLength = sb.runesBetween(from, to)
	sb.modified = true

	merged := append(append([]byte(nil), sb.lines[from.Line][:fromOff]...), sb.lines[to.Line][toOff:]...)
	lines := make([][]byte, 0, len(sb.lines)-(to.Line-from.Line))
	lines = append(lines, sb.lines[:from.Line]...)
	lines = append(lines, merged)
	lines = append(lines, sb.lines[to.Line+1:]...)
	sb.lines = lines
	return change, nil
}

// runesBetween counts the runes in [from, to), newlines included.
func (sb *SliceBuffer) runesBetween(from, to types.Position) int {
	if from.Line == to.Line {
		return to.Col - from.Col
	}
	n := utf8.RuneCount(sb.lines[from.Line]) - from.Col + 1
	for l := from.Line + 1; l < to.Line; l++ {
		n += utf8.RuneCount(sb.lines[l]) + 1
	}
	return n + to.Col
}

var _ Buffer = (*SliceBuffer)(nil)
