// Package decorate turns the edit history of a document into per-line
// highlights that fade with age.
package decorate

import (
	"bytes"

	"github.com/bethropolis/footsteps/internal/footsteps"
	"github.com/bethropolis/footsteps/internal/types"
)

// Options controls which lines are highlighted and how strongly.
type Options struct {
	// MaxOpacity is the opacity of the most recent chunk, in [0, 1].
	MaxOpacity float64
	// Levels is how many chunks get a highlight; older ones get none.
	Levels int
	// MinDistance hides lines closer than this to the cursor. Zero hides nothing.
	MinDistance int
	// HighlightEmptyLines also highlights lines holding only whitespace.
	HighlightEmptyLines bool
	// HighlightFocusedChunk keeps the chunk around the cursor highlighted.
	HighlightFocusedChunk bool
}

// LineSource gives read access to document lines. buffer.Buffer satisfies it.
type LineSource interface {
	Line(index int) ([]byte, error)
}

// Decoration is the highlight of one line.
type Decoration struct {
	Line    int
	Rank    int
	Opacity float64
}

// Opacity returns the opacity for the chunk at rank, fading linearly from
// max at rank 0 to nothing at rank levels.
func Opacity(rank, levels int, max float64) float64 {
	if levels <= 0 || rank < 0 || rank >= levels {
		return 0
	}
	return max * (1 - float64(rank)/float64(levels))
}

// Project computes the decorations for one document. chunks are that
// document's chunks, most recent first. A line covered by several chunks
// takes the most recent one.
func Project(chunks []footsteps.Chunk, cursor types.Position, lines LineSource, opts Options) []Decoration {
	var out []Decoration
	seen := make(map[int]struct{})

	for rank, c := range chunks {
		if rank >= opts.Levels {
			break
		}
		if !opts.HighlightFocusedChunk && c.Covers(cursor.Line) {
			continue
		}
		opacity := Opacity(rank, opts.Levels, opts.MaxOpacity)

		for _, line := range c.Lines {
			if _, dup := seen[line]; dup {
				continue
			}
			if opts.MinDistance > 0 && abs(line-cursor.Line) < opts.MinDistance {
				continue
			}
			content, err := lines.Line(line)
			if err != nil {
				continue
			}
			if !opts.HighlightEmptyLines && len(bytes.TrimSpace(content)) == 0 {
				continue
			}
			seen[line] = struct{}{}
			out = append(out, Decoration{Line: line, Rank: rank, Opacity: opacity})
		}
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
