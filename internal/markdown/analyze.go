// internal/markdown/analyze.go
package markdown

import (
	"regexp"
	"strings"
)

// FormatState is the toolbar view of a selection: which formats apply to all
// of it and which block type it starts in.
type FormatState struct {
	IsBold          bool      `json:"bold"`
	IsItalic        bool      `json:"italic"`
	IsStrikethrough bool      `json:"strikethrough"`
	IsCode          bool      `json:"code"`
	IsUnorderedList bool      `json:"unorderedList"`
	IsOrderedList   bool      `json:"orderedList"`
	IsCheckList     bool      `json:"checkList"`
	IsQuote         bool      `json:"quote"`
	IsCodeBlock     bool      `json:"codeBlock"`
	IsTable         bool      `json:"table"`
	BlockType       BlockType `json:"blockType"`
}

// Active reports whether the given command's toolbar button should be lit.
func (s FormatState) Active(cmd Command) bool {
	switch cmd {
	case CommandBold:
		return s.IsBold
	case CommandItalic:
		return s.IsItalic
	case CommandStrikethrough:
		return s.IsStrikethrough
	case CommandCode:
		return s.IsCode
	case CommandQuote:
		return s.IsQuote
	case CommandUnorderedList:
		return s.IsUnorderedList
	case CommandCheckList:
		return s.IsCheckList
	case CommandOrderedList:
		return s.IsOrderedList
	case CommandCodeBlock:
		return s.IsCodeBlock
	case CommandTable:
		return s.IsTable
	}
	if bt, ok := cmd.HeadingBlockType(); ok {
		return s.BlockType == bt
	}
	return false
}

var fencedBlockRe = regexp.MustCompile("```[\\s\\S]*?```")

// allLines reports whether pred holds for every non-blank line. Text with no
// visible content matches nothing.
func allLines(lines []string, pred func(string) bool) bool {
	found := false
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		if !pred(line) {
			return false
		}
		found = true
	}
	return found
}

// wrappedBy is the analyzer side of toggleInlineLine: the line's content,
// minus list marker and padding, must be enclosed by the marker pair.
func wrappedBy(prefix, suffix string) func(string) bool {
	return func(line string) bool {
		_, content, _ := splitListItem(line)
		return content != "" && isWrapped(content, prefix, suffix)
	}
}

// isTableLine reports a line with more than one non-empty "|" cell.
func isTableLine(line string) bool {
	if !strings.Contains(line, "|") {
		return false
	}
	cells := 0
	for _, part := range strings.Split(line, "|") {
		if strings.TrimSpace(part) != "" {
			cells++
		}
	}
	return cells > 1
}

// Analyze computes the FormatState of a piece of selected text. Inline and
// line formats only count when they cover every non-blank line, so a
// selection holding one bold word among plain ones is not bold.
func Analyze(text string) FormatState {
	lines := strings.Split(text, "\n")
	state := FormatState{
		IsBold:          allLines(lines, wrappedBy(MarkerBold, MarkerBold)),
		IsItalic:        allLines(lines, wrappedBy(MarkerItalic, MarkerItalic)),
		IsStrikethrough: allLines(lines, wrappedBy(MarkerStrikethrough, MarkerStrikethrough)),
		IsCode:          allLines(lines, wrappedBy(MarkerCode, MarkerCode)),
		IsUnorderedList: allLines(lines, IsUnorderedListLine),
		IsOrderedList:   allLines(lines, IsOrderedListLine),
		IsCheckList:     allLines(lines, IsCheckListLine),
		IsQuote:         allLines(lines, IsQuoteLine),
		IsCodeBlock:     fencedBlockRe.MatchString(text),
		BlockType:       DetectBlockType(lines[0]),
	}
	for _, line := range lines {
		if isTableLine(line) {
			state.IsTable = true
			break
		}
	}
	return state
}

// StateAt computes the FormatState for a selection inside the full buffer.
//
// A bare cursor reports the line formats and block type of its line, plus
// whether it sits inside a fenced code block. Inline formats need a range.
// A range is analyzed as selected text, with the block type taken from the
// line where the selection starts.
func (e *Engine) StateAt(text string, sel Selection) FormatState {
	start, end := clampRange(text, sel)
	bs, be := byteAt(text, start), byteAt(text, end)
	ls, le := lineBounds(text, bs)

	if start != end {
		state := Analyze(text[bs:be])
		state.BlockType = DetectBlockType(text[ls:le])
		return state
	}

	line := text[ls:le]
	state := FormatState{
		IsUnorderedList: IsUnorderedListLine(line),
		IsOrderedList:   IsOrderedListLine(line),
		IsCheckList:     IsCheckListLine(line),
		IsQuote:         IsQuoteLine(line),
		IsTable:         isTableLine(line),
		BlockType:       DetectBlockType(line),
	}
	for _, loc := range fencedBlockRe.FindAllStringIndex(text, -1) {
		if bs > loc[0] && bs < loc[1] {
			state.IsCodeBlock = true
			break
		}
	}
	return state
}
