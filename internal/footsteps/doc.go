// Package footsteps records where text was recently edited and keeps those
// locations accurate while the documents keep changing.
//
// The history is an ordered, bounded list of chunks (most recent first).
// Each chunk groups nearby edited lines of one file together with the cursor
// position left behind by the last edit that touched it. New edits that land
// on or next to a recent chunk are coalesced into it instead of creating a
// new entry.
//
// Every reported edit is first folded into the line numbers of all chunks of
// the same file (see [Edit.LineDelta]) and only then recorded, so older
// chunks follow the text they describe as lines are inserted or removed above
// them.
//
// # Usage
//
//	t := footsteps.New(footsteps.WithCapacity(10), footsteps.WithMergeWindow(6))
//
//	t.ReportEdit("/src/main.go", []footsteps.Edit{{StartLine: 4, EndLine: 4, EndCol: 8, Text: "x"}})
//	t.ReportCursorClick("/src/util.go", 12, 30)
//
//	if loc, ok := t.TimeTravel(1, footsteps.RestrictAny, "/src/util.go"); ok {
//	    // open loc.FileID and place the cursor at loc.Line, loc.Col
//	}
//
// # Thread Safety
//
// [Tracker] serialises all operations with a mutex. [Store] and [LineSet]
// are plain values and must not be shared between goroutines without
// external locking. Edits must be reported in the order they were applied to
// the document.
package footsteps
