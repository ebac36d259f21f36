package types

import (
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
)

// EditInfo describes one buffer edit in the byte offsets and row/column
// points tree-sitter uses. The zero value means nothing changed.
type EditInfo struct {
	StartIndex     uint32
	OldEndIndex    uint32
	NewEndIndex    uint32
	StartPosition  sitter.Point
	OldEndPosition sitter.Point
	NewEndPosition sitter.Point
}

// IsZero reports an edit that changed nothing.
func (e EditInfo) IsZero() bool {
	return e == EditInfo{}
}

// InputEdit converts the edit for sitter.Tree.Edit.
func (e EditInfo) InputEdit() sitter.EditInput {
	return sitter.EditInput{
		StartIndex:  e.StartIndex,
		OldEndIndex: e.OldEndIndex,
		NewEndIndex: e.NewEndIndex,
		StartPoint:  e.StartPosition,
		OldEndPoint: e.OldEndPosition,
		NewEndPoint: e.NewEndPosition,
	}
}

func (e EditInfo) String() string {
	return fmt.Sprintf("bytes %d..%d -> %d..%d", e.StartIndex, e.OldEndIndex, e.StartIndex, e.NewEndIndex)
}
