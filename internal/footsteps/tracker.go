package footsteps

import (
	"sync"

	"github.com/bethropolis/footsteps/internal/logger"
	"github.com/bethropolis/footsteps/internal/types"
)

const logTag = "footsteps"

// Tracker is the concurrency-safe entry point used by hosts. It remaps and
// records edits, handles cursor clicks and navigates the history.
type Tracker struct {
	mu          sync.Mutex
	store       *Store
	capacity    int
	mergeWindow int
	ignoreBlank bool
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithCapacity sets how many chunks are remembered.
func WithCapacity(n int) Option {
	return func(t *Tracker) { t.capacity = n }
}

// WithMergeWindow sets how many recent chunks are searched for a merge.
func WithMergeWindow(n int) Option {
	return func(t *Tracker) { t.mergeWindow = n }
}

// WithBlankEditsIgnored controls whether whitespace-only edits are recorded.
// They are always used to remap existing chunks.
func WithBlankEditsIgnored(ignore bool) Option {
	return func(t *Tracker) { t.ignoreBlank = ignore }
}

// New creates a Tracker with default limits and blank edits ignored.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		capacity:    DefaultCapacity,
		mergeWindow: DefaultMergeWindow,
		ignoreBlank: true,
	}
	for _, opt := range opts {
		opt(t)
	}
	t.store = NewStore(t.capacity, t.mergeWindow)
	return t
}

// ReportEdit remaps the chunks of fileID across the batch and then records
// the lines it touched. It reports whether a chunk was recorded; batches
// whose first edit is blank are remapped only, when blank edits are ignored.
func (t *Tracker) ReportEdit(fileID string, edits []Edit) bool {
	if len(edits) == 0 {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.store.Remap(fileID, edits)

	if t.ignoreBlank && edits[0].blank() {
		logger.DebugTagf(logTag, "skipping blank edit in %s at line %d", fileID, edits[0].StartLine)
		return false
	}

	lines, last := editedLines(edits)
	if lines.IsEmpty() {
		return false
	}
	pos := types.Position{Line: last, Col: edits[len(edits)-1].EndCol + 1}
	merged := t.store.Insert(fileID, lines, pos)
	logger.DebugTagf(logTag, "recorded %s lines %s (merged=%t, chunks=%d)", fileID, lines, merged, t.store.Len())
	return true
}

// ReportCursorClick records a click on line as activity, placing the last
// position at the end of the line.
func (t *Tracker) ReportCursorClick(fileID string, line, lineLength int) {
	if line < 0 {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.store.Insert(fileID, NewLineSet(line), types.Position{Line: line, Col: lineLength})
}

// TimeTravel moves through the history; see Store.TimeTravel.
func (t *Tracker) TimeTravel(diff int, r Restriction, activeFile string) (Locator, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	loc, ok := t.store.TimeTravel(diff, r, activeFile)
	if ok {
		logger.DebugTagf(logTag, "time travel %+d (%s) -> %s", diff, r, loc)
	}
	return loc, ok
}

// Current returns the locator of the chunk under the cursor.
func (t *Tracker) Current() (Locator, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	c, ok := t.store.At(t.store.Cursor())
	if !ok {
		return Locator{}, false
	}
	return c.Locator(), true
}

// ClearFile forgets every chunk of fileID.
func (t *Tracker) ClearFile(fileID string) int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.ClearFile(fileID)
}

// ClearAll forgets the whole history.
func (t *Tracker) ClearAll() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.ClearAll()
}

// Configure applies new limits. Chunks beyond the new capacity are evicted.
func (t *Tracker) Configure(capacity, mergeWindow int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.store.SetLimits(capacity, mergeWindow)
}

// SetBlankEditsIgnored changes whether blank edits are recorded.
func (t *Tracker) SetBlankEditsIgnored(ignore bool) {
	t.mu.Lock()
	t.ignoreBlank = ignore
	t.mu.Unlock()
}

// Chunks returns a snapshot of the history, most recent first.
func (t *Tracker) Chunks() []Chunk {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.Chunks()
}

// ChunksInFile returns a snapshot of one file's chunks, most recent first.
func (t *Tracker) ChunksInFile(fileID string) []Chunk {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.ChunksInFile(fileID)
}

// Cursor returns the navigation cursor.
func (t *Tracker) Cursor() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.Cursor()
}

// Len returns the number of chunks in the history.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.store.Len()
}
