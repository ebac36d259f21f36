// internal/markdown/engine.go
package markdown

import (
	"errors"
	"fmt"
)

// DefaultLinkPlaceholder is the URL written by InsertLink.
const DefaultLinkPlaceholder = "http://"

// ErrUnknownCommand is returned by Apply for identifiers it does not know.
var ErrUnknownCommand = errors.New("unknown format command")

// Options tune engine behavior. The zero value is usable.
type Options struct {
	// EmptyPairToggle makes a collapsed inline toggle remove an empty marker
	// pair around the cursor instead of nesting another one inside it.
	EmptyPairToggle bool
	// LinkPlaceholder is the URL inserted by InsertLink.
	LinkPlaceholder string
	// ReplaceHeadingMarker makes a collapsed heading command rewrite the
	// cursor line's "#" marker instead of inserting the prefix at the cursor.
	ReplaceHeadingMarker bool
}

// DefaultOptions returns the stock engine configuration.
func DefaultOptions() Options {
	return Options{
		EmptyPairToggle: false,
		LinkPlaceholder: DefaultLinkPlaceholder,
	}
}

// opts returns the engine options with defaults filled in. A nil engine
// uses DefaultOptions.
func (e *Engine) opts() Options {
	if e == nil {
		return DefaultOptions()
	}
	o := e.options
	if o.LinkPlaceholder == "" {
		o.LinkPlaceholder = DefaultLinkPlaceholder
	}
	return o
}

// Handler computes one format command.
type Handler func(text string, sel Selection) Result

// Engine computes formatting edits on plain markdown text. It keeps no
// editing state between calls; every operation takes the buffer and selection
// and returns the new buffer and selection. Commands are dispatched through a
// per-engine handler table.
type Engine struct {
	options  Options
	handlers map[Command]Handler
}

// New creates an engine with the given options and the built-in commands.
func New(opts Options) *Engine {
	e := &Engine{options: opts}
	e.handlers = e.builtinHandlers()
	return e
}

// Register installs or replaces the handler for cmd.
func (e *Engine) Register(cmd Command, h Handler) {
	if e.handlers == nil {
		e.handlers = e.builtinHandlers()
	}
	e.handlers[cmd] = h
}

// Command identifies a toolbar format operation.
type Command string

const (
	CommandBold           Command = "bold"
	CommandItalic         Command = "italic"
	CommandStrikethrough  Command = "strikethrough"
	CommandCode           Command = "code"
	CommandH1             Command = "h1"
	CommandH2             Command = "h2"
	CommandH3             Command = "h3"
	CommandParagraph      Command = "paragraph"
	CommandQuote          Command = "quote"
	CommandUnorderedList  Command = "unordered-list"
	CommandCheckList      Command = "check-list"
	CommandOrderedList    Command = "ordered-list"
	CommandCodeBlock      Command = "code-block"
	CommandTable          Command = "table"
	CommandLink           Command = "link"
	CommandHorizontalRule Command = "horizontal-rule"
)

var allCommands = []Command{
	CommandBold, CommandItalic, CommandStrikethrough, CommandCode,
	CommandH1, CommandH2, CommandH3, CommandParagraph,
	CommandQuote, CommandUnorderedList, CommandCheckList, CommandOrderedList,
	CommandCodeBlock, CommandTable, CommandLink, CommandHorizontalRule,
}

// Commands lists every command Apply understands, in toolbar order.
func Commands() []Command {
	out := make([]Command, len(allCommands))
	copy(out, allCommands)
	return out
}

// ParseCommand looks up a command by its identifier.
func ParseCommand(name string) (Command, bool) {
	for _, c := range allCommands {
		if string(c) == name {
			return c, true
		}
	}
	return "", false
}

// HeadingBlockType returns the block type a heading command produces.
func (c Command) HeadingBlockType() (BlockType, bool) {
	switch c {
	case CommandH1:
		return BlockH1, true
	case CommandH2:
		return BlockH2, true
	case CommandH3:
		return BlockH3, true
	case CommandParagraph:
		return BlockParagraph, true
	}
	return BlockUnknown, false
}

func (e *Engine) builtinHandlers() map[Command]Handler {
	inline := func(marker string) Handler {
		return func(text string, sel Selection) Result {
			return e.FormatInline(text, sel, marker, marker)
		}
	}
	heading := func(bt BlockType) Handler {
		return func(text string, sel Selection) Result {
			return e.FormatHeading(text, sel, bt)
		}
	}
	prefix := func(p string) Handler {
		return func(text string, sel Selection) Result {
			return e.InsertAtLineStart(text, sel, p)
		}
	}
	return map[Command]Handler{
		CommandBold:           inline(MarkerBold),
		CommandItalic:         inline(MarkerItalic),
		CommandStrikethrough:  inline(MarkerStrikethrough),
		CommandCode:           e.InsertInlineCode,
		CommandH1:             heading(BlockH1),
		CommandH2:             heading(BlockH2),
		CommandH3:             heading(BlockH3),
		CommandParagraph:      heading(BlockParagraph),
		CommandQuote:          e.InsertQuote,
		CommandUnorderedList:  prefix(PrefixUnordered),
		CommandCheckList:      prefix(PrefixCheckList),
		CommandOrderedList:    e.InsertOrderedList,
		CommandCodeBlock:      e.InsertCodeBlock,
		CommandTable:          e.InsertTable,
		CommandLink:           e.InsertLink,
		CommandHorizontalRule: e.InsertHorizontalRule,
	}
}

// Apply runs a command against text and selection.
func (e *Engine) Apply(cmd Command, text string, sel Selection) (Result, error) {
	if e == nil || e.handlers == nil {
		e = New(e.opts())
	}
	h, ok := e.handlers[cmd]
	if !ok {
		return unchanged(text, sel), fmt.Errorf("%w: %q", ErrUnknownCommand, string(cmd))
	}
	return h(text, sel), nil
}
