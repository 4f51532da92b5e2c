package footsteps

import (
	"fmt"
	"sort"

	"github.com/bethropolis/footsteps/internal/types"
)

// Restriction limits which chunks time travel may visit.
type Restriction int

const (
	// RestrictAny visits every chunk.
	RestrictAny Restriction = iota
	// RestrictWithinFile visits only chunks of the active file.
	RestrictWithinFile
	// RestrictAcrossFiles visits only chunks of other files.
	RestrictAcrossFiles
)

func (r Restriction) String() string {
	switch r {
	case RestrictAny:
		return "any"
	case RestrictWithinFile:
		return "within-file"
	case RestrictAcrossFiles:
		return "across-files"
	default:
		return fmt.Sprintf("Restriction(%d)", int(r))
	}
}

// ParseRestriction converts "any", "within-file" or "across-files".
func ParseRestriction(s string) (Restriction, error) {
	switch s {
	case "", "any":
		return RestrictAny, nil
	case "within-file":
		return RestrictWithinFile, nil
	case "across-files":
		return RestrictAcrossFiles, nil
	}
	return RestrictAny, fmt.Errorf("unknown restriction %q", s)
}

func (r Restriction) allows(c Chunk, activeFile string) bool {
	switch r {
	case RestrictWithinFile:
		return activeFile != "" && c.FileID == activeFile
	case RestrictAcrossFiles:
		return activeFile != "" && c.FileID != activeFile
	default:
		return true
	}
}

// Locator is the place the host should open after a time-travel step.
type Locator struct {
	FileID string
	Line   int
	Col    int
}

// Position returns the line and column of the locator.
func (l Locator) Position() types.Position {
	return types.Position{Line: l.Line, Col: l.Col}
}

// String formats the locator as "file:line:col" with one-based numbers.
func (l Locator) String() string {
	return fmt.Sprintf("%s:%d:%d", l.FileID, l.Line+1, l.Col+1)
}

// view returns the full-list indices of the chunks r allows, ascending.
func (s *Store) view(r Restriction, activeFile string) []int {
	var idx []int
	for i, c := range s.chunks {
		if r.allows(c, activeFile) {
			idx = append(idx, i)
		}
	}
	return idx
}

// TimeTravel moves the cursor diff steps through the chunks r allows.
// Positive diff goes toward older chunks, negative toward newer ones, and the
// step is clamped to the ends of the view. When the chunk under the cursor
// is outside the view, the cursor counts as sitting between its neighbours.
// It returns false and leaves the cursor alone if no chunk is eligible.
func (s *Store) TimeTravel(diff int, r Restriction, activeFile string) (Locator, bool) {
	view := s.view(r, activeFile)
	if len(view) == 0 {
		return Locator{}, false
	}

	pos := sort.SearchInts(view, s.cursor)
	var target int
	switch {
	case pos < len(view) && view[pos] == s.cursor:
		target = pos + diff
	case diff > 0:
		target = pos + diff - 1
	default:
		target = pos + diff
	}
	if target < 0 {
		target = 0
	}
	if target > len(view)-1 {
		target = len(view) - 1
	}

	s.cursor = view[target]
	return s.chunks[s.cursor].Locator(), true
}

// Locator returns where time travel to c lands: just past its last position.
func (c Chunk) Locator() Locator {
	return Locator{
		FileID: c.FileID,
		Line:   c.LastPosition.Line,
		Col:    c.LastPosition.Col + 1,
	}
}
