package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/bethropolis/tidemark/internal/markdown"
	"github.com/bethropolis/tidemark/internal/types"
)

// positionForOffset converts a rune offset into a line/column position,
// clamped to the end of value.
func positionForOffset(value string, offset int) types.Position {
	if offset < 0 {
		offset = 0
	}
	line := 0
	for {
		nl := strings.IndexByte(value, '\n')
		if nl < 0 {
			n := utf8.RuneCountInString(value)
			if offset > n {
				offset = n
			}
			return types.Position{Line: line, Col: offset}
		}
		n := utf8.RuneCountInString(value[:nl])
		if offset <= n {
			return types.Position{Line: line, Col: offset}
		}
		offset -= n + 1
		value = value[nl+1:]
		line++
	}
}

// offsetForPosition converts a position into a rune offset. Lines and
// columns past the end are clamped.
func offsetForPosition(value string, pos types.Position) int {
	if pos.Line < 0 {
		return 0
	}
	offset := 0
	for line := 0; ; line++ {
		nl := strings.IndexByte(value, '\n')
		current := value
		if nl >= 0 {
			current = value[:nl]
		}
		n := utf8.RuneCountInString(current)
		if line == pos.Line || nl < 0 {
			col := pos.Col
			if line != pos.Line {
				col = n
			}
			if col < 0 {
				col = 0
			}
			if col > n {
				col = n
			}
			return offset + col
		}
		offset += n + 1
		value = value[nl+1:]
	}
}

// lineLengths returns the rune length of every line of value.
func lineLengths(value string) []int {
	lines := strings.Split(value, "\n")
	lens := make([]int, len(lines))
	for i, line := range lines {
		lens[i] = utf8.RuneCountInString(line)
	}
	return lens
}

// movePosition moves pos by dLine lines and dCol columns. Horizontal moves
// wrap across line ends; vertical moves clamp the column to the target line.
func movePosition(lens []int, pos types.Position, dLine, dCol int) types.Position {
	if len(lens) == 0 {
		return types.Position{}
	}
	clampLine := func(l int) int {
		if l < 0 {
			return 0
		}
		if l >= len(lens) {
			return len(lens) - 1
		}
		return l
	}
	pos.Line = clampLine(pos.Line)

	for ; dCol > 0; dCol-- {
		if pos.Col < lens[pos.Line] {
			pos.Col++
		} else if pos.Line < len(lens)-1 {
			pos.Line++
			pos.Col = 0
		}
	}
	for ; dCol < 0; dCol++ {
		if pos.Col > 0 {
			pos.Col--
		} else if pos.Line > 0 {
			pos.Line--
			pos.Col = lens[pos.Line]
		}
	}

	pos.Line = clampLine(pos.Line + dLine)
	if pos.Col > lens[pos.Line] {
		pos.Col = lens[pos.Line]
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	return pos
}

// lineEdge returns the start or end of pos's line.
func lineEdge(lens []int, pos types.Position, end bool) types.Position {
	if len(lens) == 0 {
		return types.Position{}
	}
	if pos.Line >= len(lens) {
		pos.Line = len(lens) - 1
	}
	if end {
		pos.Col = lens[pos.Line]
	} else {
		pos.Col = 0
	}
	return pos
}

// runeSlice returns value's runes in [start, end).
func runeSlice(value string, start, end int) string {
	b := byteOffset(value, start)
	e := byteOffset(value, end)
	if e < b {
		return ""
	}
	return value[b:e]
}

// byteOffset converts a rune offset into a byte offset, clamped to value.
func byteOffset(value string, runes int) int {
	if runes <= 0 {
		return 0
	}
	for i := range value {
		if runes == 0 {
			return i
		}
		runes--
	}
	return len(value)
}

// clampSelection clamps both ends into value.
func clampSelection(value string, sel markdown.Selection) markdown.Selection {
	n := utf8.RuneCountInString(value)
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		if v > n {
			return n
		}
		return v
	}
	return markdown.Selection{Anchor: clamp(sel.Anchor), Focus: clamp(sel.Focus)}
}

// diffSpan finds the smallest rune range of before that has to be replaced
// to produce after. It returns the replaced range [start, end) in runes and
// the text that goes there.
func diffSpan(before, after string) (start, end int, insert string) {
	p := 0
	for p < len(before) && p < len(after) && before[p] == after[p] {
		p++
	}
	for p > 0 && ((p < len(before) && !utf8.RuneStart(before[p])) || (p < len(after) && !utf8.RuneStart(after[p]))) {
		p--
	}

	s := 0
	for s < len(before)-p && s < len(after)-p && before[len(before)-1-s] == after[len(after)-1-s] {
		s++
	}
	for s > 0 && ((s < len(before) && !utf8.RuneStart(before[len(before)-s])) || (s < len(after) && !utf8.RuneStart(after[len(after)-s]))) {
		s--
	}

	start = utf8.RuneCountInString(before[:p])
	end = start + utf8.RuneCountInString(before[p:len(before)-s])
	return start, end, after[p : len(after)-s]
}
