// Package editor provides the markdown editing surface: one MarkdownEditor
// interface with a line-buffer backend and a bubbles textarea backend.
package editor

import (
	"errors"
	"fmt"

	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/markdown"
	"github.com/bethropolis/tidemark/internal/types"
)

// ErrUnknownBackend is returned by New for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown editor backend")

// ErrUnsupportedText is returned when a backend cannot hold a text without
// altering it.
var ErrUnsupportedText = errors.New("text not supported by editor backend")

// MarkdownEditor is the editing surface the application, commands and
// plugins work against. Selection offsets are rune offsets into Value.
type MarkdownEditor interface {
	Value() string
	SetValue(text string)
	Selection() markdown.Selection
	SetSelection(sel markdown.Selection)
	SelectedText() string
	Cursor() types.Position

	OnChange(fn func(text string))
	OnFocus(fn func())
	OnBlur(fn func())
	Focus()
	Blur()
	Focused() bool

	DispatchFormatCommand(cmd markdown.Command) error
	FormatState() markdown.FormatState

	InsertText(text string)
	DeleteBackward()
	DeleteForward()
	MoveCursor(dLine, dCol int, extend bool)
	MoveToLineStart(extend bool)
	MoveToLineEnd(extend bool)
	Undo() bool
	Redo() bool

	Load(path string) error
	Save(path string) error
	FilePath() string
	IsModified() bool

	Backend() string
}

// Options configure a new editor.
type Options struct {
	Backend    string           // config.BackendBuffer (default) or config.BackendTextarea
	Engine     *markdown.Engine // nil uses markdown.New(markdown.DefaultOptions())
	Events     *event.Manager   // optional
	MaxHistory int              // undo depth, 0 for the backend default
}

// New creates an editor with the configured backend.
func New(opts Options) (MarkdownEditor, error) {
	if opts.Engine == nil {
		opts.Engine = markdown.New(markdown.DefaultOptions())
	}
	switch opts.Backend {
	case "", config.BackendBuffer:
		return NewBufferEditor(opts), nil
	case config.BackendTextarea:
		return NewTextareaEditor(opts), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, opts.Backend)
}
