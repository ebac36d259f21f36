// internal/markdown/inline.go
package markdown

import (
	"regexp"
	"strings"
	"sync"

	"github.com/dlclark/regexp2"
)

// Inline markers used by the toolbar commands.
const (
	MarkerBold          = "**"
	MarkerItalic        = "*"
	MarkerStrikethrough = "~~"
	MarkerCode          = "`"
)

// listItemRe splits a line into indentation, an optional list marker, the
// content and trailing whitespace. Only the content takes part in a toggle.
var listItemRe = regexp.MustCompile(`^(\s*)(-\s*\[[\sxX]\]\s+|-\s+|\d+\.\s+)?(.*?)(\s*)$`)

// Single-character emphasis markers double as the bold marker when repeated.
// Content is italic when both its leading and trailing marker runs have length
// one or three, so "**x**" is not italic while "***x***" and "*a **b***" are.
var emphasisPatterns = map[string]*regexp2.Regexp{
	"*": compileEmphasis("*"),
	"_": compileEmphasis("_"),
}

func compileEmphasis(marker string) *regexp2.Regexp {
	m := regexp2.Escape(marker)
	pattern := `^(?:` + m + m + `)?` + m + `(?!` + m + `)[\s\S]+?(?<!` + m + `)` +
		m + `(?:` + m + m + `)?$`
	return regexp2.MustCompile(pattern, regexp2.None)
}

// wrapPatterns caches the ^prefix(.+?)suffix$ detectors by marker pair.
var wrapPatterns sync.Map

func wrapPattern(prefix, suffix string) *regexp.Regexp {
	key := prefix + "\x00" + suffix
	if re, ok := wrapPatterns.Load(key); ok {
		return re.(*regexp.Regexp)
	}
	re := regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `(.+?)` + regexp.QuoteMeta(suffix) + `$`)
	actual, _ := wrapPatterns.LoadOrStore(key, re)
	return actual.(*regexp.Regexp)
}

// isWrapped reports whether the whole content is enclosed by prefix/suffix.
// The anchored lazy match means "**a**b**" is one bold run around "a**b".
func isWrapped(content, prefix, suffix string) bool {
	if prefix == suffix {
		if re, ok := emphasisPatterns[prefix]; ok {
			matched, err := re.MatchString(content)
			return err == nil && matched
		}
	}
	return wrapPattern(prefix, suffix).MatchString(content)
}

// splitListItem returns the parts of a line around its toggleable content.
func splitListItem(line string) (lead, content, trail string) {
	m := listItemRe.FindStringSubmatch(line)
	if m == nil {
		return "", line, ""
	}
	return m[1] + m[2], m[3], m[4]
}

// toggleInlineLine wraps or unwraps one line of a selection.
func toggleInlineLine(line, prefix, suffix string) string {
	if isBlank(line) {
		return line
	}
	lead, content, trail := splitListItem(line)
	if content == "" {
		return line
	}
	if isWrapped(content, prefix, suffix) {
		content = content[len(prefix) : len(content)-len(suffix)]
	} else {
		content = prefix + content + suffix
	}
	return lead + content + trail
}

// FormatInline toggles an inline marker pair over the selection.
//
// A collapsed selection gets an empty pair with the cursor between the
// markers. A range is processed line by line: blank lines are left alone,
// list markers and surrounding whitespace stay outside the markers, and each
// line is unwrapped when already enclosed, wrapped otherwise. An empty suffix
// means the prefix is reused.
func (e *Engine) FormatInline(text string, sel Selection, prefix, suffix string) Result {
	if suffix == "" {
		suffix = prefix
	}
	if prefix == "" {
		return unchanged(text, sel)
	}

	start, end := clampRange(text, sel)
	if start == end {
		return e.insertPair(text, start, prefix, suffix)
	}

	bs, be := byteAt(text, start), byteAt(text, end)
	lines := strings.Split(text[bs:be], "\n")
	for i, line := range lines {
		lines[i] = toggleInlineLine(line, prefix, suffix)
	}
	repl := strings.Join(lines, "\n")
	return selectSpan(text, splice(text, bs, be, repl), start, repl)
}

// insertPair handles the collapsed case of FormatInline.
func (e *Engine) insertPair(text string, cursor int, prefix, suffix string) Result {
	b := byteAt(text, cursor)
	if e.opts().EmptyPairToggle && isEmptyPairAt(text, b, prefix, suffix) {
		out := splice(text, b-len(prefix), b+len(suffix), "")
		return cursorAt(text, out, cursor-runeLen(prefix))
	}
	out := splice(text, b, b, prefix+suffix)
	return cursorAt(text, out, cursor+runeLen(prefix))
}

// isEmptyPairAt reports whether byte offset b sits between an empty
// prefix/suffix pair that is not itself part of a longer marker run.
func isEmptyPairAt(text string, b int, prefix, suffix string) bool {
	ps, se := b-len(prefix), b+len(suffix)
	if ps < 0 || se > len(text) {
		return false
	}
	if text[ps:b] != prefix || text[b:se] != suffix {
		return false
	}
	if ps > 0 && text[ps-1] == prefix[0] {
		return false
	}
	if se < len(text) && text[se] == suffix[len(suffix)-1] {
		return false
	}
	return true
}

// InsertInlineCode toggles backticks. A bare cursor gets an empty pair of backticks
// with the cursor centered.
func (e *Engine) InsertInlineCode(text string, sel Selection) Result {
	start, end := clampRange(text, sel)
	if start != end {
		return e.FormatInline(text, sel, MarkerCode, MarkerCode)
	}
	return e.insertPair(text, start, MarkerCode, MarkerCode)
}
