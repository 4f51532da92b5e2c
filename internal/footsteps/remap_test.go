package footsteps

import (
	"reflect"
	"testing"

	"github.com/bethropolis/footsteps/internal/types"
)

func chunkAt(file string, lastLine int, lines ...int) Chunk {
	return Chunk{FileID: file, Lines: NewLineSet(lines...), LastPosition: types.Position{Line: lastLine, Col: 4}}
}

func TestRemapInsertionBelowStart(t *testing.T) {
	c := chunkAt("a.go", 10, 10)
	got := Remap(c, []Edit{{StartLine: 5, EndLine: 5, EndCol: 0, Text: "one\ntwo\n"}})
	if !reflect.DeepEqual(got.Lines, LineSet{12}) {
		t.Errorf("expected lines [12], got %v", got.Lines)
	}
	if got.LastPosition.Line != 12 {
		t.Errorf("expected last line 12, got %d", got.LastPosition.Line)
	}
	if got.LastPosition.Col != 4 {
		t.Errorf("expected column untouched, got %d", got.LastPosition.Col)
	}
}

func TestRemapDeletion(t *testing.T) {
	c := chunkAt("a.go", 10, 10)
	got := Remap(c, []Edit{{StartLine: 3, EndLine: 6, EndCol: 2, HadDeletion: true}})
	if !reflect.DeepEqual(got.Lines, LineSet{7}) {
		t.Errorf("expected lines [7], got %v", got.Lines)
	}
	if got.LastPosition.Line != 7 {
		t.Errorf("expected last line 7, got %d", got.LastPosition.Line)
	}
}

func TestRemapLeavesLinesAtOrAboveStart(t *testing.T) {
	c := chunkAt("a.go", 5, 2, 5)
	got := Remap(c, []Edit{{StartLine: 5, EndLine: 5, Text: "\n\n\n"}})
	if !reflect.DeepEqual(got.Lines, LineSet{2, 5}) {
		t.Errorf("expected lines [2 5], got %v", got.Lines)
	}
	if got.LastPosition.Line != 5 {
		t.Errorf("expected last line 5, got %d", got.LastPosition.Line)
	}
}

func TestRemapFoldsDeletedLinesOntoStart(t *testing.T) {
	c := chunkAt("a.go", 8, 4, 5, 8, 12)
	got := Remap(c, []Edit{{StartLine: 3, EndLine: 9, HadDeletion: true}})
	// 4, 5 and 8 were inside the deleted range.
	want := LineSet{3, 6}
	if !reflect.DeepEqual(got.Lines, want) {
		t.Errorf("expected %v, got %v", want, got.Lines)
	}
	if got.LastPosition.Line != 3 {
		t.Errorf("expected last line 3, got %d", got.LastPosition.Line)
	}
}

func TestRemapBatchFoldsInOrder(t *testing.T) {
	c := chunkAt("a.go", 20, 20)
	edits := []Edit{
		{StartLine: 2, EndLine: 2, Text: "x\n"},                   // 20 -> 21
		{StartLine: 10, EndLine: 13, HadDeletion: true},           // 21 -> 18
		{StartLine: 30, EndLine: 30, Text: "\n\n\n\n\n\n\n\n\n\n"}, // below the chunk
	}
	got := Remap(c, edits)
	if !reflect.DeepEqual(got.Lines, LineSet{18}) {
		t.Errorf("expected lines [18], got %v", got.Lines)
	}
}

func TestRemapSkipsMalformedEdits(t *testing.T) {
	c := chunkAt("a.go", 10, 10)
	edits := []Edit{
		{StartLine: 6, EndLine: 4, Text: "\n"},
		{StartLine: -1, EndLine: 0, Text: "\n"},
	}
	got := Remap(c, edits)
	if !reflect.DeepEqual(got.Lines, LineSet{10}) {
		t.Errorf("expected lines [10], got %v", got.Lines)
	}
}

func TestRemapSkipsInconsistentChunk(t *testing.T) {
	c := Chunk{FileID: "a.go", Lines: LineSet{9, 3}, LastPosition: types.Position{Line: 9}}
	got := Remap(c, []Edit{{StartLine: 0, EndLine: 0, Text: "\n"}})
	if !reflect.DeepEqual(got.Lines, LineSet{9, 3}) {
		t.Errorf("expected inconsistent chunk unchanged, got %v", got.Lines)
	}
}

func TestRemapDoesNotModifyInput(t *testing.T) {
	c := chunkAt("a.go", 10, 10, 11)
	Remap(c, []Edit{{StartLine: 0, EndLine: 0, Text: "\n"}})
	if !reflect.DeepEqual(c.Lines, LineSet{10, 11}) {
		t.Errorf("input chunk was modified: %v", c.Lines)
	}
}

func TestEditTouched(t *testing.T) {
	tests := []struct {
		name string
		edit Edit
		want LineSet
	}{
		{"single char", Edit{StartLine: 4, EndLine: 4, Text: "a"}, LineSet{4}},
		{"two new lines", Edit{StartLine: 4, EndLine: 4, Text: "a\nb\n"}, LineSet{4, 5, 6}},
		{"replace three lines with one", Edit{StartLine: 4, EndLine: 6, Text: "x", HadDeletion: true}, LineSet{4}},
		{"delete many lines", Edit{StartLine: 4, EndLine: 9, HadDeletion: true}, LineSet{4}},
		{"multi line replace", Edit{StartLine: 2, EndLine: 3, Text: "a\nb\nc", HadDeletion: true}, LineSet{2, 3, 4}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.edit.touched(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestEditedLinesLastAdded(t *testing.T) {
	lines, last := editedLines([]Edit{
		{StartLine: 8, EndLine: 8, Text: "a"},
		{StartLine: 2, EndLine: 2, Text: "b"},
		{StartLine: 8, EndLine: 8, Text: "c"},
	})
	if !reflect.DeepEqual(lines, LineSet{2, 8}) {
		t.Errorf("expected [2 8], got %v", lines)
	}
	if last != 2 {
		t.Errorf("expected last added line 2, got %d", last)
	}
}
