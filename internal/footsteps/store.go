package footsteps

import "github.com/bethropolis/footsteps/internal/types"

const (
	// DefaultCapacity is the number of chunks kept when none is configured.
	DefaultCapacity = 10
	// DefaultMergeWindow is how many recent chunks are searched for a merge.
	DefaultMergeWindow = 6
)

// Store is the bounded, most-recent-first list of chunks together with the
// navigation cursor. It is not safe for concurrent use.
type Store struct {
	chunks      []Chunk
	capacity    int
	mergeWindow int
	cursor      int
}

// NewStore creates an empty store. Non-positive limits fall back to the
// defaults.
func NewStore(capacity, mergeWindow int) *Store {
	s := &Store{}
	s.SetLimits(capacity, mergeWindow)
	return s
}

// SetLimits changes capacity and merge window, evicting the oldest chunks if
// the store is now over capacity.
func (s *Store) SetLimits(capacity, mergeWindow int) {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if mergeWindow <= 0 {
		mergeWindow = DefaultMergeWindow
	}
	s.capacity = capacity
	s.mergeWindow = mergeWindow
	s.truncate()
}

// Capacity returns the maximum number of chunks kept.
func (s *Store) Capacity() int { return s.capacity }

// MergeWindow returns how many recent chunks are considered for merging.
func (s *Store) MergeWindow() int { return s.mergeWindow }

// Len returns the number of stored chunks.
func (s *Store) Len() int { return len(s.chunks) }

// Cursor returns the navigation cursor, an index into the full list.
func (s *Store) Cursor() int { return s.cursor }

// At returns a copy of the chunk at index i.
func (s *Store) At(i int) (Chunk, bool) {
	if i < 0 || i >= len(s.chunks) {
		return Chunk{}, false
	}
	return s.chunks[i].clone(), true
}

// Chunks returns a copy of every chunk, most recent first.
func (s *Store) Chunks() []Chunk {
	out := make([]Chunk, len(s.chunks))
	for i, c := range s.chunks {
		out[i] = c.clone()
	}
	return out
}

// ChunksInFile returns copies of the chunks of one file, most recent first.
func (s *Store) ChunksInFile(fileID string) []Chunk {
	var out []Chunk
	for _, c := range s.chunks {
		if c.FileID == fileID {
			out = append(out, c.clone())
		}
	}
	return out
}

// Insert records lines of fileID as the most recent activity. If one of the
// first MergeWindow chunks of the same file touches the lines, it absorbs
// them and moves to the front; otherwise a new chunk is prepended. Insert
// reports whether an existing chunk was merged. Empty line sets are ignored.
func (s *Store) Insert(fileID string, lines LineSet, pos types.Position) bool {
	if lines.IsEmpty() {
		return false
	}
	s.cursor = 0

	if i := s.mergeTarget(fileID, lines); i >= 0 {
		merged := s.chunks[i]
		merged.Lines = merged.Lines.Union(lines)
		merged.LastPosition = pos
		copy(s.chunks[1:i+1], s.chunks[:i])
		s.chunks[0] = merged
		return true
	}

	c := Chunk{FileID: fileID, Lines: lines.Clone(), LastPosition: pos}
	s.chunks = append([]Chunk{c}, s.chunks...)
	s.truncate()
	return false
}

func (s *Store) mergeTarget(fileID string, lines LineSet) int {
	limit := s.mergeWindow
	if limit > len(s.chunks) {
		limit = len(s.chunks)
	}
	for i := 0; i < limit; i++ {
		c := s.chunks[i]
		if c.FileID == fileID && c.Lines.Touches(lines) {
			return i
		}
	}
	return -1
}

// Remap moves every chunk of fileID across the edits and returns how many
// chunks were visited.
func (s *Store) Remap(fileID string, edits []Edit) int {
	n := 0
	for i, c := range s.chunks {
		if c.FileID != fileID {
			continue
		}
		s.chunks[i] = Remap(c, edits)
		n++
	}
	return n
}

// ClearFile removes every chunk of fileID and resets the cursor. It returns
// the number of chunks removed.
func (s *Store) ClearFile(fileID string) int {
	kept := s.chunks[:0]
	for _, c := range s.chunks {
		if c.FileID != fileID {
			kept = append(kept, c)
		}
	}
	removed := len(s.chunks) - len(kept)
	for i := len(kept); i < len(s.chunks); i++ {
		s.chunks[i] = Chunk{}
	}
	s.chunks = kept
	s.cursor = 0
	return removed
}

// ClearAll empties the store and resets the cursor.
func (s *Store) ClearAll() int {
	n := len(s.chunks)
	s.chunks = nil
	s.cursor = 0
	return n
}

func (s *Store) truncate() {
	if len(s.chunks) > s.capacity {
		for i := s.capacity; i < len(s.chunks); i++ {
			s.chunks[i] = Chunk{}
		}
		s.chunks = s.chunks[:s.capacity]
	}
	if s.cursor >= len(s.chunks) {
		s.cursor = 0
	}
}
