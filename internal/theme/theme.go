// internal/theme/theme.go
package theme

import (
	"strings"

	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// Style names used by the UI. Syntax captures from the markdown highlighter
// ("text.title", "punctuation.special", ...) are looked up directly.
const (
	StyleDefault           = "Default"
	StyleSelection         = "Selection"
	StyleStatusBar         = "StatusBar"
	StyleStatusBarModified = "StatusBarModified"
	StyleStatusBarMessage  = "StatusBarMessage"
	StyleStatusBarMode     = "StatusBarMode"
	StyleToolbar           = "Toolbar"
	StyleToolbarActive     = "ToolbarActive"
	StylePreview           = "Preview"
	StyleLineNumber        = "LineNumber"
)

// Theme maps style names to tcell styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves name, falling back through its dotted parents
// ("text.title.h1" -> "text.title" -> "text") and then to Default.
func (t *Theme) GetStyle(name string) tcell.Style {
	if t == nil {
		return tcell.StyleDefault
	}
	for key := name; key != ""; {
		if style, ok := t.Styles[key]; ok {
			if key != name {
				logger.DebugTagf("theme", "Theme '%s': Style '%s' not found, using '%s'", t.Name, name, key)
			}
			return style
		}
		dot := strings.LastIndex(key, ".")
		if dot == -1 {
			break
		}
		key = key[:dot]
	}

	if defStyle, ok := t.Styles[StyleDefault]; ok {
		return defStyle
	}
	logger.Warnf("Theme '%s': Style '%s' and 'Default' style not found, using tcell default.", t.Name, name)
	return tcell.StyleDefault
}

// Inkwell is the built-in dark theme.
var Inkwell = newInkwell()

func newInkwell() *Theme {
	background := tcell.NewHexColor(0x2a2f38)
	foreground := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	orange := tcell.NewHexColor(0xd19a66)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	cyan := tcell.NewHexColor(0x56b6c2)
	blue := tcell.NewHexColor(0x61afef)
	magenta := tcell.NewHexColor(0xc678dd)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(foreground)
	bar := tcell.StyleDefault.Background(background).Foreground(foreground)

	return &Theme{
		Name:   "Inkwell",
		IsDark: true,
		Styles: map[string]tcell.Style{
			StyleDefault:           base,
			StyleSelection:         base.Reverse(true),
			StyleStatusBar:         bar,
			StyleStatusBarModified: bar.Foreground(yellow),
			StyleStatusBarMessage:  bar.Bold(true),
			StyleStatusBarMode:     bar.Foreground(green).Bold(true),
			StyleToolbar:           bar.Foreground(muted),
			StyleToolbarActive:     bar.Foreground(blue).Bold(true),
			StylePreview:           base,
			StyleLineNumber:        base.Foreground(muted),

			// markdown captures
			"text.title":            base.Foreground(blue).Bold(true),
			"text.literal":          base.Foreground(green),
			"text.uri":              base.Foreground(cyan).Underline(true),
			"text.reference":        base.Foreground(magenta),
			"text.emphasis":         base.Italic(true),
			"text.strong":           base.Bold(true),
			"text.strike":           base.StrikeThrough(true),
			"punctuation":           base.Foreground(muted),
			"punctuation.special":   base.Foreground(orange),
			"punctuation.delimiter": base.Foreground(muted),
			"string.escape":         base.Foreground(magenta),
			"embedded":              base.Foreground(green),
		},
	}
}
