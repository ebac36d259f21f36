// internal/theme/manager.go
package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/tidemark/internal/logger"
)

// Manager holds loaded themes and the active one.
type Manager struct {
	mutex       sync.RWMutex
	themes      map[string]*Theme // lowercase name -> theme
	activeTheme *Theme
	themesDir   string
}

// NewManager registers the built-in theme and loads every *.toml file in
// themesDir. An empty or missing directory is not an error.
func NewManager(themesDir string) *Manager {
	mgr := &Manager{
		themes:      map[string]*Theme{strings.ToLower(Inkwell.Name): Inkwell},
		activeTheme: Inkwell,
		themesDir:   themesDir,
	}
	if themesDir != "" {
		if err := mgr.LoadThemesFromDir(); err != nil {
			logger.Errorf("Error loading themes from '%s': %v", themesDir, err)
		}
	}
	return mgr
}

// DefaultThemesDir returns <user config dir>/<app>/themes, or "" when the
// config dir cannot be determined.
func DefaultThemesDir(appName string) string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		logger.Warnf("Could not find user config dir: %v. Custom themes disabled.", err)
		return ""
	}
	return filepath.Join(configDir, appName, "themes")
}

// LoadThemesFromDir loads all theme files from the manager's directory.
func (m *Manager) LoadThemesFromDir() error {
	entries, err := os.ReadDir(m.themesDir)
	if os.IsNotExist(err) {
		logger.Debugf("Theme directory '%s' does not exist. No custom themes loaded.", m.themesDir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", m.themesDir, err)
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()
	loaded := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".toml") {
			continue
		}
		path := filepath.Join(m.themesDir, entry.Name())
		theme, err := LoadThemeFromFile(path)
		if err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", path, err)
			continue
		}
		key := strings.ToLower(theme.Name)
		if existing, ok := m.themes[key]; ok {
			logger.Warnf("Theme '%s' from '%s' overrides existing theme '%s'", theme.Name, path, existing.Name)
		}
		m.themes[key] = theme
		loaded++
	}
	logger.Infof("Loaded %d custom themes.", loaded)
	return nil
}

// Current returns the active theme.
func (m *Manager) Current() *Theme {
	m.mutex.RLock()
	defer m.mutex.RUnlock()
	return m.activeTheme
}

// SetTheme activates a theme by name (case-insensitive).
func (m *Manager) SetTheme(name string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	theme, ok := m.themes[strings.ToLower(name)]
	if !ok {
		return fmt.Errorf("theme '%s' not found", name)
	}
	if m.activeTheme != theme {
		m.activeTheme = theme
		logger.Infof("Active theme set to: %s", theme.Name)
	}
	return nil
}

// ListThemes returns the names of all loaded themes, sorted.
func (m *Manager) ListThemes() []string {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	names := make([]string, 0, len(m.themes))
	for _, theme := range m.themes {
		names = append(names, theme.Name)
	}
	sort.Strings(names)
	return names
}
