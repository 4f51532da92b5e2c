package footsteps

import (
	"fmt"

	"github.com/bethropolis/footsteps/internal/types"
)

// Chunk is one remembered group of nearby edited lines within a single file.
type Chunk struct {
	// FileID identifies the document, typically its absolute path.
	FileID string

	// Lines touched by the chunk. Never empty while the chunk is stored.
	Lines LineSet

	// LastPosition is where the cursor was after the most recent edit that
	// contributed to the chunk. Col is not checked against the line length,
	// and after coalescing Line may lie outside Lines.
	LastPosition types.Position
}

// Covers reports whether line lies between the chunk's first and last line.
func (c Chunk) Covers(line int) bool {
	return len(c.Lines) > 0 && line >= c.Lines.Min() && line <= c.Lines.Max()
}

func (c Chunk) clone() Chunk {
	c.Lines = c.Lines.Clone()
	return c
}

// String returns a short human-readable form used in logs.
func (c Chunk) String() string {
	return fmt.Sprintf("%s[%s]@%d:%d", c.FileID, c.Lines, c.LastPosition.Line, c.LastPosition.Col)
}
