package statusbar

import (
	"sync"

	"github.com/bethropolis/tidemark/internal/markdown"
	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/gdamore/tcell/v2"
)

// Indicator is one toolbar button.
type Indicator struct {
	Label   string
	Command markdown.Command
	Active  bool
}

var toolbarButtons = []struct {
	label string
	cmd   markdown.Command
}{
	{"B", markdown.CommandBold},
	{"I", markdown.CommandItalic},
	{"S", markdown.CommandStrikethrough},
	{"`", markdown.CommandCode},
	{"H1", markdown.CommandH1},
	{"H2", markdown.CommandH2},
	{"H3", markdown.CommandH3},
	{">", markdown.CommandQuote},
	{"-", markdown.CommandUnorderedList},
	{"[]", markdown.CommandCheckList},
	{"1.", markdown.CommandOrderedList},
	{"```", markdown.CommandCodeBlock},
	{"tbl", markdown.CommandTable},
}

// Indicators lists the toolbar buttons lit according to state.
func Indicators(state markdown.FormatState) []Indicator {
	out := make([]Indicator, 0, len(toolbarButtons))
	for _, b := range toolbarButtons {
		out = append(out, Indicator{Label: b.label, Command: b.cmd, Active: state.Active(b.cmd)})
	}
	return out
}

// Toolbar shows the format state of the current selection.
type Toolbar struct {
	mu    sync.RWMutex
	state markdown.FormatState
}

// NewToolbar creates a toolbar with nothing active.
func NewToolbar() *Toolbar {
	return &Toolbar{state: markdown.FormatState{BlockType: markdown.BlockParagraph}}
}

// SetState replaces the displayed format state.
func (tb *Toolbar) SetState(state markdown.FormatState) {
	tb.mu.Lock()
	defer tb.mu.Unlock()
	tb.state = state
}

// State returns the displayed format state.
func (tb *Toolbar) State() markdown.FormatState {
	tb.mu.RLock()
	defer tb.mu.RUnlock()
	return tb.state
}

// Draw renders the toolbar on row y.
func (tb *Toolbar) Draw(screen tcell.Screen, y, width int, th *theme.Theme) {
	if width <= 0 || y < 0 {
		return
	}
	base := th.GetStyle(theme.StyleToolbar)
	active := th.GetStyle(theme.StyleToolbarActive)
	x := drawLine(screen, 0, y, width, "", base)
	for _, ind := range Indicators(tb.State()) {
		style := base
		if ind.Active {
			style = active
		}
		x = drawText(screen, x, y, width, " "+ind.Label+" ", style)
		if x >= width {
			return
		}
	}
}
