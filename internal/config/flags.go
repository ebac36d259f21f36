// internal/config/flags.go
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Flags holds values bound to command-line flags. Only flags the user set
// (pflag's Changed) override the config file.
type Flags struct {
	ConfigFilePath  string
	LogLevel        string
	LogFilePath     string
	TabWidth        int
	ScrollOff       int
	SystemClipboard bool
	Backend         string
	EmptyPairToggle bool

	EnableTags   []string
	DisableTags  []string
	EnablePkgs   []string
	DisablePkgs  []string
	EnableFiles  []string
	DisableFiles []string

	fs *pflag.FlagSet
}

// Bind registers the flags on fs (usually a cobra command's persistent flags).
func (f *Flags) Bind(fs *pflag.FlagSet) {
	f.fs = fs
	fs.StringVar(&f.ConfigFilePath, "config", "", fmt.Sprintf("Path to TOML configuration file (default ~/.config/%s/%s)", AppName, DefaultConfigFileName))
	fs.StringVar(&f.LogLevel, "loglevel", "", "Log level (debug, info, warn, error)")
	fs.StringVar(&f.LogFilePath, "logfile", "", "Path to write log file (use '-' for stderr)")
	fs.IntVar(&f.TabWidth, "tabwidth", DefaultTabWidth, "Number of spaces per tab")
	fs.IntVar(&f.ScrollOff, "scrolloff", DefaultScrollOff, "Lines of context above/below cursor")
	fs.BoolVar(&f.SystemClipboard, "system-clipboard", SystemClipboard, "Use system clipboard instead of internal clipboard")
	fs.StringVar(&f.Backend, "backend", BackendBuffer, "Editor backend (buffer, textarea)")
	fs.BoolVar(&f.EmptyPairToggle, "empty-pair-toggle", false, "Inline toggles at a cursor inside an empty marker pair remove the pair")
	fs.StringSliceVar(&f.EnableTags, "log-tags", nil, "Comma-separated list of tags to enable")
	fs.StringSliceVar(&f.DisableTags, "log-disable-tags", nil, "Comma-separated list of tags to disable")
	fs.StringSliceVar(&f.EnablePkgs, "log-packages", nil, "Comma-separated list of packages to enable")
	fs.StringSliceVar(&f.DisablePkgs, "log-disable-packages", nil, "Comma-separated list of packages to disable")
	fs.StringSliceVar(&f.EnableFiles, "log-files", nil, "Comma-separated list of files to enable")
	fs.StringSliceVar(&f.DisableFiles, "log-disable-files", nil, "Comma-separated list of files to disable")
}

// ApplyOverrides updates cfg with values from flags that were actually set.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	f.fs.Visit(func(fl *pflag.Flag) {
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != "" {
				cfg.Logger.LogLevel = f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = f.LogFilePath
		case "tabwidth":
			if f.TabWidth > 0 {
				cfg.Editor.TabWidth = f.TabWidth
			}
		case "scrolloff":
			if f.ScrollOff >= 0 {
				cfg.Editor.ScrollOff = f.ScrollOff
			}
		case "system-clipboard":
			cfg.Editor.SystemClipboard = f.SystemClipboard
		case "backend":
			cfg.Editor.Backend = f.Backend
		case "empty-pair-toggle":
			cfg.Markdown.EmptyPairToggle = f.EmptyPairToggle
		case "log-tags":
			cfg.Logger.EnabledTags = cleanList(f.EnableTags)
		case "log-disable-tags":
			cfg.Logger.DisabledTags = cleanList(f.DisableTags)
		case "log-packages":
			cfg.Logger.EnabledPackages = cleanList(f.EnablePkgs)
		case "log-disable-packages":
			cfg.Logger.DisabledPackages = cleanList(f.DisablePkgs)
		case "log-files":
			cfg.Logger.EnabledFiles = cleanList(f.EnableFiles)
		case "log-disable-files":
			cfg.Logger.DisabledFiles = cleanList(f.DisableFiles)
		}
	})
}

// cleanList trims entries and drops empty ones.
func cleanList(items []string) []string {
	result := make([]string, 0, len(items))
	for _, item := range items {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
