// internal/theme/loader.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/gdamore/tcell/v2"
)

// TomlStyleDef is one style entry of a theme file. Pointers mark unset
// attributes, which are inherited from the theme's Default style.
type TomlStyleDef struct {
	Fg            *string `toml:"fg"`
	Bg            *string `toml:"bg"`
	Bold          *bool   `toml:"bold"`
	Italic        *bool   `toml:"italic"`
	Underline     *bool   `toml:"underline"`
	Reverse       *bool   `toml:"reverse"`
	StrikeThrough *bool   `toml:"strikethrough"`
}

// TomlTheme is the layout of a theme file.
type TomlTheme struct {
	Name   string                  `toml:"name"`
	IsDark bool                    `toml:"is_dark"`
	Styles map[string]TomlStyleDef `toml:"styles"`
}

// LoadThemeFromFile parses a TOML theme file.
func LoadThemeFromFile(filePath string) (*Theme, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file '%s': %w", filePath, err)
	}
	theme, err := ParseTheme(string(data))
	if err != nil {
		return nil, fmt.Errorf("theme file '%s': %w", filePath, err)
	}
	if theme.Name == "" {
		theme.Name = strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
		logger.Debugf("Theme file '%s' missing 'name', using filename '%s'", filePath, theme.Name)
	}
	return theme, nil
}

// ParseTheme decodes theme TOML. Styles that fail to parse are skipped.
func ParseTheme(data string) (*Theme, error) {
	var tomlTheme TomlTheme
	metadata, err := toml.Decode(data, &tomlTheme)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML theme: %w", err)
	}
	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		logger.Warnf("Theme '%s': Unrecognized keys: %v", tomlTheme.Name, undecoded)
	}

	theme := &Theme{
		Name:   tomlTheme.Name,
		IsDark: tomlTheme.IsDark,
		Styles: make(map[string]tcell.Style, len(tomlTheme.Styles)+1),
	}

	baseStyle := tcell.StyleDefault
	if def, ok := tomlTheme.Styles[StyleDefault]; ok {
		baseStyle, err = convertTomlStyle(def, tcell.StyleDefault)
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse 'Default' style, using tcell default: %v", theme.Name, err)
			baseStyle = tcell.StyleDefault
		}
	}
	theme.Styles[StyleDefault] = baseStyle

	for name, def := range tomlTheme.Styles {
		if name == StyleDefault {
			continue
		}
		style, err := convertTomlStyle(def, baseStyle)
		if err != nil {
			logger.Warnf("Theme '%s': Failed to parse style '%s', skipping: %v", theme.Name, name, err)
			continue
		}
		theme.Styles[name] = style
	}
	return theme, nil
}

func convertTomlStyle(def TomlStyleDef, style tcell.Style) (tcell.Style, error) {
	if def.Fg != nil {
		color, err := parseColorString(*def.Fg)
		if err != nil {
			return style, fmt.Errorf("invalid foreground color '%s': %w", *def.Fg, err)
		}
		style = style.Foreground(color)
	}
	if def.Bg != nil {
		color, err := parseColorString(*def.Bg)
		if err != nil {
			return style, fmt.Errorf("invalid background color '%s': %w", *def.Bg, err)
		}
		style = style.Background(color)
	}
	if def.Bold != nil {
		style = style.Bold(*def.Bold)
	}
	if def.Italic != nil {
		style = style.Italic(*def.Italic)
	}
	if def.Underline != nil {
		style = style.Underline(*def.Underline)
	}
	if def.Reverse != nil {
		style = style.Reverse(*def.Reverse)
	}
	if def.StrikeThrough != nil {
		style = style.StrikeThrough(*def.StrikeThrough)
	}
	return style, nil
}

// parseColorString accepts #rrggbb, W3C color names, "reset" and "default".
func parseColorString(s string) (tcell.Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "reset":
		return tcell.ColorReset, nil
	case "default", "":
		return tcell.ColorDefault, nil
	}
	if strings.HasPrefix(s, "#") && len(s) != 7 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color format '%s', must be #RRGGBB", s)
	}
	color := tcell.GetColor(s)
	if color == tcell.ColorDefault {
		return tcell.ColorDefault, fmt.Errorf("unknown color '%s'", s)
	}
	return color, nil
}
