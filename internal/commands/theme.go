package commands

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tidemark/internal/theme"
)

// ThemeAPI is what the theme commands need from the application.
type ThemeAPI interface {
	GetTheme() *theme.Theme
	SetTheme(name string) error
	ListThemes() []string
	SetStatusMessage(format string, args ...interface{})
}

// RegisterThemeCommands registers ":theme [name]" and ":themes".
func RegisterThemeCommands(reg *Registry, api ThemeAPI) error {
	err := reg.Register("theme", func(args []string) error {
		if len(args) == 0 {
			api.SetStatusMessage("Current theme: %s", api.GetTheme().Name)
			return nil
		}
		name := strings.Join(args, " ")
		if err := api.SetTheme(name); err != nil {
			return fmt.Errorf("theme '%s' not found. Available: %s", name, strings.Join(api.ListThemes(), ", "))
		}
		api.SetStatusMessage("Theme set to: %s", name)
		return nil
	})
	if err != nil {
		return err
	}
	return reg.Register("themes", func(args []string) error {
		api.SetStatusMessage("Available themes: %s", strings.Join(api.ListThemes(), ", "))
		return nil
	})
}
