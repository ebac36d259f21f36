// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/BurntSushi/toml"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/markdown"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger   logger.Config                     `toml:"logger"`
	Editor   EditorConfig                      `toml:"editor"`
	Markdown MarkdownConfig                    `toml:"markdown"`
	Render   RenderConfig                      `toml:"render"`
	Plugins  map[string]map[string]interface{} `toml:"plugins"` // free-form [plugins.<name>] tables
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	TabWidth        int    `toml:"tab_width"`
	ScrollOff       int    `toml:"scroll_off"`
	SystemClipboard bool   `toml:"system_clipboard"`
	StatusBarHeight int    `toml:"status_bar_height"`
	Backend         string `toml:"backend"`    // "buffer" or "textarea"
	LeaderKey       string `toml:"leader_key"` // single character
}

// MarkdownConfig tunes the formatting engine.
type MarkdownConfig struct {
	EmptyPairToggle      bool   `toml:"empty_pair_toggle"`
	LinkPlaceholder      string `toml:"link_placeholder"`
	ReplaceHeadingMarker bool   `toml:"replace_heading_marker"`
}

// RenderConfig controls HTML export and terminal preview.
type RenderConfig struct {
	Style    string `toml:"style"` // glamour style: auto, dark, light, notty...
	WordWrap int    `toml:"word_wrap"`
}

// EngineOptions converts the markdown section into engine options.
func (m MarkdownConfig) EngineOptions() markdown.Options {
	return markdown.Options{
		EmptyPairToggle:      m.EmptyPairToggle,
		LinkPlaceholder:      m.LinkPlaceholder,
		ReplaceHeadingMarker: m.ReplaceHeadingMarker,
	}
}

// Leader returns the leader key as a rune.
func (e EditorConfig) Leader() rune {
	r, _ := utf8.DecodeRuneInString(e.LeaderKey)
	if r == utf8.RuneError {
		r, _ = utf8.DecodeRuneInString(DefaultLeaderKey)
	}
	return r
}

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.Config{
			LogLevel:    "info",
			LogFilePath: "", // resolved by DefaultLogPath in main
		},
		Editor: EditorConfig{
			TabWidth:        DefaultTabWidth,
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
			Backend:         BackendBuffer,
			LeaderKey:       DefaultLeaderKey,
		},
		Markdown: MarkdownConfig{
			EmptyPairToggle: false,
			LinkPlaceholder: markdown.DefaultLinkPlaceholder,
		},
		Render: RenderConfig{
			Style:    DefaultRenderStyle,
			WordWrap: DefaultWordWrap,
		},
		Plugins: map[string]map[string]interface{}{},
	}
}

// DefaultConfigPath is ~/.config/tidemark/config.toml (or the platform equivalent).
func DefaultConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

// DefaultLogPath is the log file used when none is configured.
func DefaultLogPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), DefaultLogFileName)
	}
	return filepath.Join(dir, AppName, DefaultLogFileName)
}

// decodeFile decodes a TOML file over cfg. Keys missing from the file keep
// the values already in cfg. A missing file is not an error.
func decodeFile(filePath string, cfg *Config) ([]string, error) {
	if _, err := os.Stat(filePath); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}

	var undecoded []string
	for _, key := range metadata.Undecoded() {
		// plugin tables are free-form and read by the plugins themselves
		if !strings.HasPrefix(key.String(), "plugins.") {
			undecoded = append(undecoded, key.String())
		}
	}
	return undecoded, nil
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.TabWidth <= 0 {
		c.Editor.TabWidth = defaults.Editor.TabWidth
	}
	if c.Editor.ScrollOff < 0 { // Allow 0
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	switch strings.ToLower(c.Editor.Backend) {
	case BackendBuffer, BackendTextarea:
		c.Editor.Backend = strings.ToLower(c.Editor.Backend)
	default:
		c.Editor.Backend = defaults.Editor.Backend
	}
	if utf8.RuneCountInString(c.Editor.LeaderKey) != 1 {
		c.Editor.LeaderKey = defaults.Editor.LeaderKey
	}

	if c.Logger.LogLevel == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}

	if c.Markdown.LinkPlaceholder == "" {
		c.Markdown.LinkPlaceholder = defaults.Markdown.LinkPlaceholder
	}
	if c.Render.Style == "" {
		c.Render.Style = defaults.Render.Style
	}
	if c.Render.WordWrap <= 0 {
		c.Render.WordWrap = defaults.Render.WordWrap
	}
	if c.Plugins == nil {
		c.Plugins = map[string]map[string]interface{}{}
	}
}

// Load builds a configuration from defaults, the TOML file at configFilePath
// (or the default location when empty) and any flags that were set.
// Unknown keys in the file are returned so the caller can warn about them
// once logging is up.
func Load(configFilePath string, flags *Flags) (*Config, []string, error) {
	cfg := NewDefaultConfig()

	path := configFilePath
	if path == "" {
		path = DefaultConfigPath()
	}

	var undecoded []string
	var err error
	if path != "" {
		undecoded, err = decodeFile(path, cfg)
		if err != nil {
			// Keep going with defaults so the editor still opens
			cfg = NewDefaultConfig()
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}
	cfg.validate()
	return cfg, undecoded, err
}

// PluginValue looks up a key in a [plugins.<name>] table.
func (c *Config) PluginValue(plugin, key string) (interface{}, bool) {
	table, ok := c.Plugins[plugin]
	if !ok {
		return nil, false
	}
	v, ok := table[key]
	return v, ok
}
