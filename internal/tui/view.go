package tui

import (
	"github.com/bethropolis/tidemark/internal/markdown"
	"github.com/bethropolis/tidemark/internal/types"
	"github.com/rivo/uniseg"
)

// Rect is a band of full-width screen rows.
type Rect struct {
	Y      int
	Height int
}

// View is the scroll state of the text area.
type View struct {
	TopLine   int // first visible buffer line
	LeftCol   int // first visible visual column
	ScrollOff int
	TabWidth  int
}

// NewView creates a view at the top of the buffer.
func NewView(scrollOff, tabWidth int) *View {
	if tabWidth <= 0 {
		tabWidth = 4
	}
	return &View{ScrollOff: scrollOff, TabWidth: tabWidth}
}

// calculateVisualColumn returns the screen width of the first runeIndex runes
// of line, with tabs advancing to the next tab stop.
func calculateVisualColumn(line string, runeIndex, tabWidth int) int {
	if runeIndex <= 0 {
		return 0
	}
	visualWidth := 0
	currentRuneIndex := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		if currentRuneIndex >= runeIndex {
			break
		}
		runes := gr.Runes()
		visualWidth += clusterWidth(runes, gr.Width(), visualWidth, tabWidth)
		currentRuneIndex += len(runes)
	}
	return visualWidth
}

func clusterWidth(runes []rune, width, visualX, tabWidth int) int {
	if len(runes) == 1 && runes[0] == '\t' && tabWidth > 0 {
		return tabWidth - visualX%tabWidth
	}
	return width
}

// ScrollToCursor adjusts the view so the cursor is visible inside a text
// area of width x height, keeping ScrollOff lines of context.
func (v *View) ScrollToCursor(lines []string, cursor types.Position, width, height int) {
	if height <= 0 || width <= 0 {
		return
	}

	effectiveScrollOff := v.ScrollOff
	if effectiveScrollOff*2 >= height {
		effectiveScrollOff = (height - 1) / 2
	}

	if cursor.Line < v.TopLine+effectiveScrollOff {
		v.TopLine = cursor.Line - effectiveScrollOff
	} else if cursor.Line >= v.TopLine+height-effectiveScrollOff {
		v.TopLine = cursor.Line - height + 1 + effectiveScrollOff
	}

	cursorVisualCol := 0
	if cursor.Line >= 0 && cursor.Line < len(lines) {
		cursorVisualCol = calculateVisualColumn(lines[cursor.Line], cursor.Col, v.TabWidth)
	}
	if cursorVisualCol < v.LeftCol {
		v.LeftCol = cursorVisualCol
	} else if cursorVisualCol >= v.LeftCol+width {
		v.LeftCol = cursorVisualCol - width + 1
	}

	if v.TopLine < 0 {
		v.TopLine = 0
	}
	if v.LeftCol < 0 {
		v.LeftCol = 0
	}
}

// SelectionRange converts a rune-offset selection over lines (joined by
// newlines) into a normalized [start, end) position range. ok is false for
// a collapsed selection.
func SelectionRange(lines []string, sel markdown.Selection) (start, end types.Position, ok bool) {
	from, to := sel.Anchor, sel.Focus
	if from > to {
		from, to = to, from
	}
	if from == to {
		return start, end, false
	}
	return offsetPosition(lines, from), offsetPosition(lines, to), true
}

func offsetPosition(lines []string, offset int) types.Position {
	if offset < 0 {
		offset = 0
	}
	for i, line := range lines {
		n := len([]rune(line))
		if offset <= n || i == len(lines)-1 {
			if offset > n {
				offset = n
			}
			return types.Position{Line: i, Col: offset}
		}
		offset -= n + 1
	}
	return types.Position{}
}
