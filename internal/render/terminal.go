package render

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
)

// StyleAuto picks dark or light from the terminal background. It queries
// the terminal, so the editor preview uses a fixed style instead.
const StyleAuto = "auto"

var (
	renderersMu sync.Mutex
	// keyed by style + wrap width
	renderers = map[string]*glamour.TermRenderer{}
)

func termRenderer(style string, width int) (*glamour.TermRenderer, error) {
	key := style + ":" + strconv.Itoa(width)

	renderersMu.Lock()
	defer renderersMu.Unlock()
	if r := renderers[key]; r != nil {
		return r, nil
	}

	styleOpt := glamour.WithStandardStyle(style)
	if style == StyleAuto || style == "" {
		styleOpt = glamour.WithAutoStyle()
	}
	r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
	if err != nil {
		return nil, fmt.Errorf("glamour renderer %q: %w", style, err)
	}
	renderers[key] = r
	return r, nil
}

// Terminal renders markdown for display in a terminal of the given width.
func Terminal(src, style string, width int) (string, error) {
	if width < 10 {
		width = 10
	}
	r, err := termRenderer(style, width)
	if err != nil {
		return "", err
	}
	out, err := r.Render(src)
	if err != nil {
		return "", fmt.Errorf("render terminal: %w", err)
	}
	return strings.TrimRight(out, "\n"), nil
}
