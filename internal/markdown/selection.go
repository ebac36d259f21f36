// internal/markdown/selection.go
package markdown

import (
	"unicode/utf8"

	"github.com/bethropolis/tidemark/internal/utils"
)

// Selection is an anchor/focus pair of rune offsets into a buffer.
// Anchor is where the selection started, Focus is where the cursor is.
type Selection struct {
	Anchor int
	Focus  int
}

// Cursor returns a collapsed selection at the given rune offset.
func Cursor(offset int) Selection {
	return Selection{Anchor: offset, Focus: offset}
}

// IsCollapsed reports whether the selection is just a cursor.
func (s Selection) IsCollapsed() bool {
	return s.Anchor == s.Focus
}

// Range returns the selection ordered as [start, end).
func (s Selection) Range() (start, end int) {
	if s.Anchor <= s.Focus {
		return s.Anchor, s.Focus
	}
	return s.Focus, s.Anchor
}

// Result is what every mutating engine operation returns.
type Result struct {
	Text      string
	Selection Selection
	// BlockType is only set by heading operations.
	BlockType BlockType
	Changed   bool
}

func unchanged(text string, sel Selection) Result {
	return Result{Text: text, Selection: sel}
}

// runeLen counts runes, which is the unit selections are measured in.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// clampOffset keeps a rune offset inside [0, runeLen(text)].
func clampOffset(text string, off int) int {
	if off < 0 {
		return 0
	}
	if n := runeLen(text); off > n {
		return n
	}
	return off
}

// clampRange normalizes and clamps a selection against text.
func clampRange(text string, sel Selection) (start, end int) {
	start, end = sel.Range()
	return clampOffset(text, start), clampOffset(text, end)
}

// byteAt converts a (clamped) rune offset to a byte offset into text.
func byteAt(text string, off int) int {
	b := utils.ByteOffset(text, off)
	if b < 0 {
		return len(text)
	}
	return b
}

// lineBounds returns the byte bounds [start, end) of the line containing byte
// offset b. end never includes the trailing newline.
func lineBounds(text string, b int) (start, end int) {
	start = b
	for start > 0 && text[start-1] != '\n' {
		start--
	}
	end = b
	for end < len(text) && text[end] != '\n' {
		end++
	}
	return start, end
}

// linesSpan expands the byte range [bs, be) to whole lines. A selection that
// ends at column 0 of a following line does not pull that line in.
func linesSpan(text string, bs, be int) (start, end int) {
	if be > bs && text[be-1] == '\n' {
		be--
	}
	start, _ = lineBounds(text, bs)
	_, end = lineBounds(text, be)
	return start, end
}

// splice replaces text[bs:be] with repl and returns the new text.
func splice(text string, bs, be int, repl string) string {
	return text[:bs] + repl + text[be:]
}

// selectSpan builds the result for a replacement that should stay selected.
func selectSpan(original, text string, startRune int, repl string) Result {
	return Result{
		Text:      text,
		Selection: Selection{Anchor: startRune, Focus: startRune + runeLen(repl)},
		Changed:   text != original,
	}
}

// cursorAt builds the result for an edit that leaves a collapsed cursor.
func cursorAt(original, text string, off int) Result {
	return Result{
		Text:      text,
		Selection: Cursor(off),
		Changed:   text != original,
	}
}
