// internal/markdown/blocks.go
package markdown

import (
	"regexp"
	"strings"
)

const codeFence = "```"

// fencedRe detects a selection that is already one fenced code block.
var fencedRe = regexp.MustCompile("^```(?:\\n)?([\\s\\S]*?)\\n?```$")

// tableSkeleton is the fixed table written by InsertTable.
var tableSkeleton = strings.Join([]string{
	"| Column 1 | Column 2 | Column 3 |",
	"| -------- | -------- | -------- |",
	"| Cell     | Cell     | Cell     |",
}, "\n") + "\n"

// InsertCodeBlock inserts an empty fenced block at a bare cursor, or wraps
// and unwraps the selected text in a fence.
func (e *Engine) InsertCodeBlock(text string, sel Selection) Result {
	start, end := clampRange(text, sel)
	bs, be := byteAt(text, start), byteAt(text, end)

	if start == end {
		out := splice(text, bs, bs, codeFence+"\n\n"+codeFence)
		return cursorAt(text, out, start+runeLen(codeFence)+1)
	}

	selected := text[bs:be]
	var repl string
	if m := fencedRe.FindStringSubmatch(selected); m != nil {
		repl = m[1]
	} else {
		repl = codeFence + "\n" + selected + "\n" + codeFence
	}
	return selectSpan(text, splice(text, bs, be, repl), start, repl)
}

// InsertLink writes "[label](url)" over the selection. With a label the URL
// placeholder ends up selected, without one the cursor sits in the brackets.
func (e *Engine) InsertLink(text string, sel Selection) Result {
	url := e.opts().LinkPlaceholder
	start, end := clampRange(text, sel)
	bs, be := byteAt(text, start), byteAt(text, end)
	label := text[bs:be]

	out := splice(text, bs, be, "["+label+"]("+url+")")
	if label == "" {
		return cursorAt(text, out, start+1)
	}
	urlStart := start + 1 + runeLen(label) + 2
	return Result{
		Text:      out,
		Selection: Selection{Anchor: urlStart, Focus: urlStart + runeLen(url)},
		Changed:   true,
	}
}

// atLineStart reports whether byte offset b is at column 0.
func atLineStart(text string, b int) bool {
	return b == 0 || text[b-1] == '\n'
}

// InsertTable writes a three column table skeleton. Unless the cursor is at
// the start of a line the table is pushed onto a line of its own. The first
// header cell ends up selected.
func (e *Engine) InsertTable(text string, sel Selection) Result {
	start, end := clampRange(text, sel)
	bs, be := byteAt(text, start), byteAt(text, end)

	lead := ""
	if !atLineStart(text, bs) {
		lead = "\n"
	}
	out := splice(text, bs, be, lead+tableSkeleton)
	cell := start + runeLen(lead) + 2
	return Result{
		Text:      out,
		Selection: Selection{Anchor: cell, Focus: cell + runeLen("Column 1")},
		Changed:   true,
	}
}

// InsertHorizontalRule writes "---". The rule gets an extra leading newline
// unless the cursor is at the start of an empty line.
func (e *Engine) InsertHorizontalRule(text string, sel Selection) Result {
	start, end := clampRange(text, sel)
	bs, be := byteAt(text, start), byteAt(text, end)

	ins := "---\n"
	if ls, le := lineBounds(text, bs); !(bs == ls && ls == le) {
		ins = "\n" + ins
	}
	out := splice(text, bs, be, ins)
	return cursorAt(text, out, start+runeLen(ins))
}

// InsertQuote is the toolbar quote button. On an empty line, or at the very
// start of the buffer, it writes a bare "> "; everywhere else it toggles the
// quote marker like InsertAtLineStart.
func (e *Engine) InsertQuote(text string, sel Selection) Result {
	if sel.IsCollapsed() {
		cursor := clampOffset(text, sel.Focus)
		b := byteAt(text, cursor)
		if ls, le := lineBounds(text, b); cursor == 0 || ls == le {
			out := splice(text, b, b, PrefixQuote)
			return cursorAt(text, out, cursor+runeLen(PrefixQuote))
		}
	}
	return e.InsertAtLineStart(text, sel, PrefixQuote)
}
