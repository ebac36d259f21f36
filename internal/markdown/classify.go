// internal/markdown/classify.go
package markdown

import (
	"regexp"
	"strings"
)

// BlockType is the structural kind of the line holding the cursor.
type BlockType string

const (
	BlockUnknown   BlockType = ""
	BlockParagraph BlockType = "paragraph"
	BlockH1        BlockType = "h1"
	BlockH2        BlockType = "h2"
	BlockH3        BlockType = "h3"
)

// ParseBlockType maps a block type name to a BlockType. Anything outside the
// four known names comes back as BlockUnknown.
func ParseBlockType(name string) BlockType {
	switch bt := BlockType(strings.ToLower(strings.TrimSpace(name))); bt {
	case BlockParagraph, BlockH1, BlockH2, BlockH3:
		return bt
	}
	return BlockUnknown
}

// Prefix is the markdown marker written for the block type.
// Paragraph and unknown types have no marker.
func (b BlockType) Prefix() string {
	switch b {
	case BlockH1:
		return "# "
	case BlockH2:
		return "## "
	case BlockH3:
		return "### "
	}
	return ""
}

func (b BlockType) String() string {
	if b == BlockUnknown {
		return "unknown"
	}
	return string(b)
}

// Line prefixes understood by InsertAtLineStart.
const (
	PrefixUnordered = "- "
	PrefixCheckList = "- [ ] "
	PrefixQuote     = "> "
	PrefixOrdered   = "1. "
)

var (
	checkListRe     = regexp.MustCompile(`^\s*-\s*\[[\sx]\]\s+`)
	checkMarkerRe   = regexp.MustCompile(`^-\s*\[[\sx]\]\s+`)
	orderedListRe   = regexp.MustCompile(`^\s*\d+\.\s+`)
	orderedMarkerRe = regexp.MustCompile(`^\d+\.\s*`)
	headingMarkRe   = regexp.MustCompile(`^#{1,6}\s*`)
)

// IsUnorderedListLine reports a plain bullet item. Task items are excluded,
// so a line is never both a bullet and a checklist entry.
func IsUnorderedListLine(line string) bool {
	t := strings.TrimLeft(line, " \t")
	if !strings.HasPrefix(t, "- ") {
		return false
	}
	if strings.HasPrefix(t, "- [ ]") || strings.HasPrefix(t, "- [x]") || strings.HasPrefix(t, "- [X]") {
		return false
	}
	return !IsCheckListLine(line)
}

// IsCheckListLine reports a task list item ("- [ ] foo", "- [x] foo").
func IsCheckListLine(line string) bool {
	return checkListRe.MatchString(line)
}

// IsOrderedListLine reports a numbered item ("3. foo").
func IsOrderedListLine(line string) bool {
	return orderedListRe.MatchString(line)
}

// IsQuoteLine reports a block quote line.
func IsQuoteLine(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " \t"), "> ")
}

// DetectBlockType classifies a single line. Longer heading markers are
// checked first so "### " never reads as "# ".
func DetectBlockType(line string) BlockType {
	t := strings.TrimLeft(line, " \t")
	switch {
	case strings.HasPrefix(t, "### "):
		return BlockH3
	case strings.HasPrefix(t, "## "):
		return BlockH2
	case strings.HasPrefix(t, "# "):
		return BlockH1
	}
	return BlockParagraph
}

// isBlank reports a line with no visible content.
func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// splitIndent separates leading spaces/tabs from the rest of the line.
func splitIndent(line string) (indent, rest string) {
	rest = strings.TrimLeft(line, " \t")
	return line[:len(line)-len(rest)], rest
}
