// internal/markdown/lines.go
package markdown

import (
	"strconv"
	"strings"
)

// hasLinePrefix reports whether the line already carries prefix, using the
// classifier that belongs to that prefix.
func hasLinePrefix(line, prefix string) bool {
	switch prefix {
	case PrefixUnordered:
		return IsUnorderedListLine(line)
	case PrefixCheckList:
		return IsCheckListLine(line)
	case PrefixQuote:
		return IsQuoteLine(line)
	case PrefixOrdered:
		return IsOrderedListLine(line)
	}
	_, rest := splitIndent(line)
	return strings.HasPrefix(rest, prefix)
}

// stripLinePrefix removes prefix from a line hasLinePrefix accepted,
// keeping the indentation.
func stripLinePrefix(line, prefix string) string {
	indent, rest := splitIndent(line)
	switch prefix {
	case PrefixCheckList:
		return indent + checkMarkerRe.ReplaceAllString(rest, "")
	case PrefixOrdered:
		return indent + orderedMarkerRe.ReplaceAllString(rest, "")
	}
	return indent + strings.TrimPrefix(rest, prefix)
}

// togglePrefixLine adds or removes prefix on a single line.
func togglePrefixLine(line, prefix string) string {
	if hasLinePrefix(line, prefix) {
		return stripLinePrefix(line, prefix)
	}
	indent, rest := splitIndent(line)
	return indent + prefix + rest
}

// InsertAtLineStart toggles a line prefix ("- ", "- [ ] ", "> ").
//
// With a range selected every non-blank line covered by it is toggled on its
// own. With a bare cursor only the cursor's line is toggled and the cursor
// follows the text it was on.
func (e *Engine) InsertAtLineStart(text string, sel Selection, prefix string) Result {
	if prefix == "" {
		return unchanged(text, sel)
	}
	if sel.IsCollapsed() {
		return toggleCursorLine(text, sel.Focus, func(line string) string {
			return togglePrefixLine(line, prefix)
		}, prefix)
	}
	return mapSelectedLines(text, sel, func(line string) string {
		if isBlank(line) {
			return line
		}
		return togglePrefixLine(line, prefix)
	})
}

// toggleCursorLine rewrites the line holding cursor with fn. A cursor that
// does not point into the buffer gets the bare fallback text inserted at the
// nearest valid offset instead.
func toggleCursorLine(text string, cursor int, fn func(string) string, fallback string) Result {
	if cursor < 0 || cursor > runeLen(text) {
		off := clampOffset(text, cursor)
		b := byteAt(text, off)
		return cursorAt(text, splice(text, b, b, fallback), off+runeLen(fallback))
	}

	b := byteAt(text, cursor)
	ls, le := lineBounds(text, b)
	line := text[ls:le]
	repl := fn(line)
	out := splice(text, ls, le, repl)

	lineStart := cursor - runeLen(text[ls:b])
	newCursor := cursor + runeLen(repl) - runeLen(line)
	if newCursor < lineStart {
		newCursor = lineStart
	}
	return cursorAt(text, out, newCursor)
}

// mapSelectedLines rewrites every line touched by a non-collapsed selection
// and selects the rewritten block.
func mapSelectedLines(text string, sel Selection, fn func(line string) string) Result {
	start, end := clampRange(text, sel)
	ls, le := linesSpan(text, byteAt(text, start), byteAt(text, end))
	lines := strings.Split(text[ls:le], "\n")
	for i, line := range lines {
		lines[i] = fn(line)
	}
	repl := strings.Join(lines, "\n")
	return selectSpan(text, splice(text, ls, le, repl), runeLen(text[:ls]), repl)
}

// InsertOrderedList numbers the selected non-blank lines 1, 2, 3... When every
// one of them is already numbered the numbers are removed instead.
func (e *Engine) InsertOrderedList(text string, sel Selection) Result {
	if sel.IsCollapsed() {
		return toggleCursorLine(text, sel.Focus, func(line string) string {
			return togglePrefixLine(line, PrefixOrdered)
		}, PrefixOrdered)
	}

	start, end := clampRange(text, sel)
	ls, le := linesSpan(text, byteAt(text, start), byteAt(text, end))
	allNumbered, found := true, false
	for _, line := range strings.Split(text[ls:le], "\n") {
		if isBlank(line) {
			continue
		}
		found = true
		if !IsOrderedListLine(line) {
			allNumbered = false
		}
	}
	if !found {
		return unchanged(text, sel)
	}

	n := 0
	return mapSelectedLines(text, sel, func(line string) string {
		if isBlank(line) {
			return line
		}
		if IsOrderedListLine(line) {
			line = stripLinePrefix(line, PrefixOrdered)
		}
		if allNumbered {
			return line
		}
		n++
		indent, rest := splitIndent(line)
		return indent + strconv.Itoa(n) + ". " + rest
	})
}
