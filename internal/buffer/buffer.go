package buffer

import (
	"errors"

	"github.com/bethropolis/footsteps/internal/types"
)

// ErrLineOutOfRange is returned when a line index does not exist.
var ErrLineOutOfRange = errors.New("line index out of range")

// Buffer defines the interface for text buffer operations. Mutations return
// the change they applied, in pre-edit coordinates.
type Buffer interface {
	Load(filePath string) error
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	LineLength(index int) int
	Insert(pos types.Position, text []byte) (types.ContentChange, error)
	Delete(start, end types.Position) (types.ContentChange, error)
	Save(filePath string) error
	Bytes() []byte
	FilePath() string
	IsModified() bool
}
