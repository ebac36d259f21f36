package tui

import (
	"fmt"
	"math"

	"github.com/bethropolis/tidemark/internal/highlighter"
	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/bethropolis/tidemark/internal/types"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Frame is a snapshot of the editor state for one draw.
type Frame struct {
	Lines      []string
	Cursor     types.Position
	SelStart   types.Position
	SelEnd     types.Position
	Selecting  bool
	LineStyles func(line int) []highlighter.StyledRange // may be nil
}

// isPositionWithin checks if pos is within the range [start, end) considering lines and columns.
// Assumes start <= end.
func isPositionWithin(pos, start, end types.Position) bool {
	return !pos.Before(start) && pos.Before(end)
}

// gutterWidth returns the line number column width, or 0 when the screen is
// too narrow to spare it.
func gutterWidth(lineCount, width int) int {
	if lineCount <= 0 {
		lineCount = 1
	}
	maxDigits := int(math.Log10(float64(lineCount))) + 1
	gutter := maxDigits + 1
	if gutter >= width {
		return 0
	}
	return gutter
}

// syntaxStyle returns the style of the last range covering col.
func syntaxStyle(ranges []highlighter.StyledRange, col int, th *theme.Theme, fallback tcell.Style) tcell.Style {
	style := fallback
	for _, r := range ranges {
		if col >= r.StartCol && col < r.EndCol {
			style = th.GetStyle(r.StyleName)
		}
	}
	return style
}

// DrawBuffer draws the visible lines of frame into area.
func DrawBuffer(t *TUI, area Rect, view *View, frame Frame, th *theme.Theme) {
	if th == nil {
		th = theme.Inkwell
	}
	defaultStyle := th.GetStyle(theme.StyleDefault)
	lineNumberStyle := th.GetStyle(theme.StyleLineNumber)
	selectionStyle := th.GetStyle(theme.StyleSelection)

	width, _ := t.Size()
	if area.Height <= 0 || width <= 0 {
		return
	}
	lines := frame.Lines
	gutter := gutterWidth(len(lines), width)
	textAreaWidth := width - gutter
	maxDigits := gutter - 1

	for row := 0; row < area.Height; row++ {
		screenY := area.Y + row
		lineIdx := view.TopLine + row

		for x := 0; x < width; x++ {
			t.screen.SetContent(x, screenY, ' ', nil, defaultStyle)
		}
		if lineIdx < 0 || lineIdx >= len(lines) {
			continue
		}

		if gutter > 0 {
			style := lineNumberStyle
			if frame.Cursor.Line == lineIdx {
				style = style.Bold(true)
			}
			for i, r := range fmt.Sprintf("%*d", maxDigits, lineIdx+1) {
				t.screen.SetContent(i, screenY, r, nil, style)
			}
		}

		var ranges []highlighter.StyledRange
		if frame.LineStyles != nil {
			ranges = frame.LineStyles(lineIdx)
		}

		gr := uniseg.NewGraphemes(lines[lineIdx])
		visualX := 0
		runeIdx := 0
		for gr.Next() {
			runes := gr.Runes()
			cw := clusterWidth(runes, gr.Width(), visualX, view.TabWidth)
			screenX := visualX - view.LeftCol + gutter

			if visualX+cw > view.LeftCol && screenX >= gutter && screenX < width {
				style := syntaxStyle(ranges, runeIdx, th, defaultStyle)
				if frame.Selecting && isPositionWithin(types.Position{Line: lineIdx, Col: runeIdx}, frame.SelStart, frame.SelEnd) {
					style = selectionStyle
				}
				if runes[0] == '\t' {
					for i := 0; i < cw && screenX+i < width; i++ {
						t.screen.SetContent(screenX+i, screenY, ' ', nil, style)
					}
				} else {
					t.screen.SetContent(screenX, screenY, runes[0], runes[1:], style)
					for i := 1; i < cw && screenX+i < width; i++ {
						t.screen.SetContent(screenX+i, screenY, ' ', nil, style)
					}
				}
			}

			visualX += cw
			runeIdx += len(runes)
			if visualX >= view.LeftCol+textAreaWidth {
				break
			}
		}

		// A selected line break shows as one highlighted cell after the text.
		if frame.Selecting && isPositionWithin(types.Position{Line: lineIdx, Col: runeIdx}, frame.SelStart, frame.SelEnd) {
			if x := visualX - view.LeftCol + gutter; x >= gutter && x < width {
				t.screen.SetContent(x, screenY, ' ', nil, selectionStyle)
			}
		}
	}
}

// DrawCursor positions the terminal cursor, hiding it when it is outside
// area.
func DrawCursor(t *TUI, area Rect, view *View, frame Frame) {
	width, _ := t.Size()
	gutter := gutterWidth(len(frame.Lines), width)

	cursorVisualCol := 0
	if frame.Cursor.Line >= 0 && frame.Cursor.Line < len(frame.Lines) {
		cursorVisualCol = calculateVisualColumn(frame.Lines[frame.Cursor.Line], frame.Cursor.Col, view.TabWidth)
	}
	screenX := cursorVisualCol - view.LeftCol + gutter
	row := frame.Cursor.Line - view.TopLine

	if screenX < gutter || screenX >= width || row < 0 || row >= area.Height {
		t.screen.HideCursor()
		return
	}
	t.screen.ShowCursor(screenX, area.Y+row)
}

// DrawPreview draws pre-rendered preview lines starting at line top.
func DrawPreview(t *TUI, area Rect, lines []string, top int, th *theme.Theme) {
	style := th.GetStyle(theme.StylePreview)
	width, _ := t.Size()
	t.screen.HideCursor()
	for row := 0; row < area.Height; row++ {
		screenY := area.Y + row
		for x := 0; x < width; x++ {
			t.screen.SetContent(x, screenY, ' ', nil, style)
		}
		idx := top + row
		if idx < 0 || idx >= len(lines) {
			continue
		}
		gr := uniseg.NewGraphemes(lines[idx])
		x := 0
		for gr.Next() {
			w := gr.Width()
			if x+w > width {
				break
			}
			runes := gr.Runes()
			t.screen.SetContent(x, screenY, runes[0], runes[1:], style)
			x += w
		}
	}
}

// TextAreaWidth returns the columns left for text beside the line number
// gutter.
func TextAreaWidth(lineCount, width int) int {
	return width - gutterWidth(lineCount, width)
}
