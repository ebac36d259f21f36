// internal/markdown/heading.go
package markdown

import "strings"

// setHeading replaces any existing "#" marker on the line with prefix.
func setHeading(line, prefix string) string {
	return prefix + headingMarkRe.ReplaceAllString(line, "")
}

// FormatHeading turns the selected lines (or the cursor's line) into the
// requested block type. Unknown types behave like paragraph.
//
// A bare cursor asking for a paragraph changes nothing. Any other type
// inserts its prefix at the cursor, or with ReplaceHeadingMarker rewrites
// the cursor line's marker. Ranges rewrite every covered line, blank ones
// included.
func (e *Engine) FormatHeading(text string, sel Selection, bt BlockType) Result {
	if ParseBlockType(string(bt)) == BlockUnknown {
		bt = BlockParagraph
	}
	prefix := bt.Prefix()

	if sel.IsCollapsed() {
		cursor := clampOffset(text, sel.Focus)
		b := byteAt(text, cursor)
		ls, le := lineBounds(text, b)
		if bt == BlockParagraph {
			res := unchanged(text, sel)
			res.BlockType = DetectBlockType(text[ls:le])
			return res
		}

		if !e.opts().ReplaceHeadingMarker {
			out := splice(text, b, b, prefix)
			res := cursorAt(text, out, cursor+runeLen(prefix))
			res.BlockType = bt
			return res
		}

		line := text[ls:le]
		repl := setHeading(line, prefix)
		out := splice(text, ls, le, repl)

		lineStart := cursor - runeLen(text[ls:b])
		newCursor := cursor + runeLen(repl) - runeLen(line)
		if floor := lineStart + runeLen(prefix); newCursor < floor {
			newCursor = floor
		}
		res := cursorAt(text, out, newCursor)
		res.BlockType = bt
		return res
	}

	res := mapSelectedLines(text, sel, func(line string) string {
		return setHeading(line, prefix)
	})
	res.BlockType = bt
	return res
}

// CurrentBlockType reports the block type of the line holding the focus.
func CurrentBlockType(text string, sel Selection) BlockType {
	b := byteAt(text, clampOffset(text, sel.Focus))
	ls, le := lineBounds(text, b)
	return DetectBlockType(strings.TrimRight(text[ls:le], "\r"))
}
