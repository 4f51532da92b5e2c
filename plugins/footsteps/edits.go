package footsteps

import (
	history "github.com/bethropolis/footsteps/internal/footsteps"
	"github.com/bethropolis/footsteps/internal/types"
)

// toEdits converts buffer changes into tracker edits, keeping their order.
func toEdits(changes []types.ContentChange) []history.Edit {
	edits := make([]history.Edit, 0, len(changes))
	for _, c := range changes {
		edits = append(edits, history.Edit{
			StartLine:   c.Start.Line,
			EndLine:     c.End.Line,
			EndCol:      c.End.Col,
			Text:        c.Text,
			HadDeletion: c.RangeLength > 0,
		})
	}
	return edits
}
