package decorate

import (
	"math"
	"testing"

	"github.com/bethropolis/footsteps/internal/buffer"
	"github.com/bethropolis/footsteps/internal/footsteps"
	"github.com/bethropolis/footsteps/internal/types"
)

func doc() *buffer.SliceBuffer {
	return buffer.NewSliceBufferFromString("l0\nl1\n   \nl3\nl4\nl5\nl6\nl7\nl8\nl9")
}

func chunk(lines ...int) footsteps.Chunk {
	return footsteps.Chunk{FileID: "a.go", Lines: footsteps.NewLineSet(lines...)}
}

func defaults() Options {
	return Options{MaxOpacity: 0.6, Levels: 6, HighlightEmptyLines: true, HighlightFocusedChunk: true}
}

func byLine(ds []Decoration) map[int]Decoration {
	m := make(map[int]Decoration, len(ds))
	for _, d := range ds {
		m[d.Line] = d
	}
	return m
}

func TestOpacity(t *testing.T) {
	tests := []struct {
		rank, levels int
		want         float64
	}{
		{0, 6, 0.6},
		{3, 6, 0.3},
		{5, 6, 0.1},
		{6, 6, 0},
		{0, 0, 0},
	}
	for _, tt := range tests {
		if got := Opacity(tt.rank, tt.levels, 0.6); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Opacity(%d, %d): expected %v, got %v", tt.rank, tt.levels, tt.want, got)
		}
	}
}

func TestProjectRanksByRecency(t *testing.T) {
	chunks := []footsteps.Chunk{chunk(8), chunk(4, 5), chunk(0)}
	got := byLine(Project(chunks, types.Position{Line: 9}, doc(), defaults()))

	if len(got) != 4 {
		t.Fatalf("expected 4 decorated lines, got %d", len(got))
	}
	if got[8].Rank != 0 || got[4].Rank != 1 || got[5].Rank != 1 || got[0].Rank != 2 {
		t.Errorf("unexpected ranks %+v", got)
	}
	if !(got[8].Opacity > got[4].Opacity && got[4].Opacity > got[0].Opacity) {
		t.Errorf("expected opacity to fade with age: %+v", got)
	}
}

func TestProjectLevelsLimit(t *testing.T) {
	opts := defaults()
	opts.Levels = 2
	chunks := []footsteps.Chunk{chunk(1), chunk(4), chunk(7)}
	got := byLine(Project(chunks, types.Position{}, doc(), opts))
	if _, ok := got[7]; ok {
		t.Errorf("expected third chunk to be beyond the highlight levels")
	}
	if len(got) != 2 {
		t.Errorf("expected 2 lines, got %d", len(got))
	}
}

func TestProjectMinDistance(t *testing.T) {
	opts := defaults()
	opts.MinDistance = 2
	chunks := []footsteps.Chunk{chunk(3, 4, 5, 6, 7)}
	got := byLine(Project(chunks, types.Position{Line: 5}, doc(), opts))
	for _, l := range []int{4, 5, 6} {
		if _, ok := got[l]; ok {
			t.Errorf("expected line %d near the cursor to be hidden", l)
		}
	}
	for _, l := range []int{3, 7} {
		if _, ok := got[l]; !ok {
			t.Errorf("expected line %d at distance 2 to stay", l)
		}
	}
}

func TestProjectZeroMinDistanceHidesNothing(t *testing.T) {
	got := Project([]footsteps.Chunk{chunk(5)}, types.Position{Line: 5}, doc(), defaults())
	if len(got) != 1 {
		t.Errorf("expected the cursor line to stay highlighted, got %v", got)
	}
}

func TestProjectEmptyLines(t *testing.T) {
	opts := defaults()
	opts.HighlightEmptyLines = false
	got := byLine(Project([]footsteps.Chunk{chunk(1, 2, 3)}, types.Position{}, doc(), opts))
	if _, ok := got[2]; ok {
		t.Errorf("expected whitespace-only line to be skipped")
	}
	if len(got) != 2 {
		t.Errorf("expected 2 lines, got %d", len(got))
	}
}

func TestProjectFocusedChunk(t *testing.T) {
	opts := defaults()
	opts.HighlightFocusedChunk = false
	chunks := []footsteps.Chunk{chunk(3, 6), chunk(9)}
	got := byLine(Project(chunks, types.Position{Line: 4}, doc(), opts))
	if _, ok := got[3]; ok {
		t.Errorf("expected chunk spanning the cursor to be skipped")
	}
	if d, ok := got[9]; !ok || d.Rank != 1 {
		t.Errorf("expected other chunk to keep its rank 1, got %+v", got)
	}
}

func TestProjectSkipsLinesOutsideDocument(t *testing.T) {
	got := Project([]footsteps.Chunk{chunk(2, 40)}, types.Position{}, doc(), defaults())
	if len(got) != 1 || got[0].Line != 2 {
		t.Errorf("expected only line 2, got %v", got)
	}
}

func TestProjectDuplicateLineKeepsNewest(t *testing.T) {
	got := Project([]footsteps.Chunk{chunk(4), chunk(4, 8)}, types.Position{}, doc(), defaults())
	m := byLine(got)
	if len(got) != 2 || m[4].Rank != 0 {
		t.Errorf("expected line 4 once with rank 0, got %v", got)
	}
}
