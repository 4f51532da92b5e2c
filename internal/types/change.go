package types

// ContentChange describes one replacement applied to a document, in the
// coordinates of the document *before* the change.
//
// Start..End is the replaced range, RangeLength the number of runes it
// covered (0 for a pure insertion) and Text the replacement. A deletion has
// an empty Text.
type ContentChange struct {
	Start       Position
	End         Position
	RangeLength int
	Text        string
}

// IsInsertion reports whether the change replaced nothing.
func (c ContentChange) IsInsertion() bool {
	return c.RangeLength == 0
}
