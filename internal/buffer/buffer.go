// internal/buffer/buffer.go
package buffer

import (
	"errors"

	"github.com/bethropolis/tidemark/internal/types"
)

// ErrOutOfBounds is returned for line indexes outside the buffer.
var ErrOutOfBounds = errors.New("line index out of bounds")

// Buffer defines the interface for text buffer operations.
// Positions use rune columns; EditInfo reports byte offsets for tree-sitter.
type Buffer interface {
	Load(filePath string) error
	Save(filePath string) error
	SetText(text string)
	Text() string
	Bytes() []byte
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	Insert(pos types.Position, text []byte) (types.EditInfo, error)
	Delete(start, end types.Position) (types.EditInfo, error)
	Replace(start, end types.Position, text []byte) (types.EditInfo, error)
	PositionToOffset(pos types.Position) int
	OffsetToPosition(offset int) types.Position
	FilePath() string
	SetFilePath(path string)
	IsModified() bool
	SetModified(modified bool)
}
