// Package history provides undo/redo functionality via a change history stack.
package history

import (
	"bytes"
	"unicode/utf8"

	"github.com/bethropolis/tidemark/internal/types"
)

// ActionType indicates what kind of edit a change was.
type ActionType int

const (
	InsertAction ActionType = iota
	DeleteAction
	ReplaceAction // format commands rewrite a span in one step
)

func (a ActionType) String() string {
	switch a {
	case InsertAction:
		return "insert"
	case DeleteAction:
		return "delete"
	}
	return "replace"
}

// Change represents a single, reversible text operation: the text at Start
// that was Removed and the text that was Inserted in its place.
type Change struct {
	Start        types.Position
	Removed      []byte
	Inserted     []byte
	CursorBefore types.Position // Cursor position *before* this change was applied
	CursorAfter  types.Position // Cursor position after it
	AnchorBefore types.Position // Selection anchor before the change (equals CursorBefore when collapsed)
	AnchorAfter  types.Position
}

// Type classifies the change.
func (c Change) Type() ActionType {
	switch {
	case len(c.Removed) == 0:
		return InsertAction
	case len(c.Inserted) == 0:
		return DeleteAction
	}
	return ReplaceAction
}

// EndOf returns the position just after text when it is placed at start.
func EndOf(start types.Position, text []byte) types.Position {
	nl := bytes.LastIndexByte(text, '\n')
	if nl < 0 {
		return types.Position{Line: start.Line, Col: start.Col + utf8.RuneCount(text)}
	}
	return types.Position{
		Line: start.Line + bytes.Count(text, []byte("\n")),
		Col:  utf8.RuneCount(text[nl+1:]),
	}
}
