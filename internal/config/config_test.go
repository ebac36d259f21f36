package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, _, err := Load(filepath.Join(t.TempDir(), "missing.toml"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.TabWidth != DefaultTabWidth || cfg.Editor.Backend != BackendBuffer {
		t.Fatalf("defaults not applied: %+v", cfg.Editor)
	}
	if cfg.Markdown.LinkPlaceholder != "http://" {
		t.Fatalf("link placeholder = %q", cfg.Markdown.LinkPlaceholder)
	}
}

func TestLoadFileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[logger]
level = "debug"
disabled_packages = ["event"]

[editor]
tab_width = 2
backend = "TEXTAREA"
leader_key = ";"

[markdown]
empty_pair_toggle = true
replace_heading_marker = true

[plugins.autosave]
enabled = true
interval = "30s"

[bogus]
key = 1
`)
	cfg, undecoded, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logger.LogLevel != "debug" || len(cfg.Logger.DisabledPackages) != 1 {
		t.Fatalf("logger = %+v", cfg.Logger)
	}
	if cfg.Editor.TabWidth != 2 || cfg.Editor.ScrollOff != DefaultScrollOff {
		t.Fatalf("editor = %+v", cfg.Editor)
	}
	if cfg.Editor.Backend != BackendTextarea || cfg.Editor.Leader() != ';' {
		t.Fatalf("backend/leader = %q %q", cfg.Editor.Backend, cfg.Editor.LeaderKey)
	}
	if !cfg.Markdown.EngineOptions().EmptyPairToggle {
		t.Fatal("empty_pair_toggle not decoded")
	}
	if !cfg.Markdown.EngineOptions().ReplaceHeadingMarker {
		t.Fatal("replace_heading_marker not decoded")
	}
	if v, ok := cfg.PluginValue("autosave", "interval"); !ok || v != "30s" {
		t.Fatalf("plugin value = %v %v", v, ok)
	}
	if len(undecoded) == 0 {
		t.Fatal("expected unknown keys to be reported")
	}
}

func TestLoadIsIndependentPerCall(t *testing.T) {
	cases := []struct {
		body    string
		backend string
		width   int
	}{
		{"[editor]\ntab_width = 2\nbackend = \"textarea\"\n", BackendTextarea, 2},
		{"[editor]\ntab_width = 8\n", BackendBuffer, 8},
	}
	for _, tc := range cases {
		cfg, _, err := Load(writeConfig(t, tc.body), nil)
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		if cfg.Editor.Backend != tc.backend || cfg.Editor.TabWidth != tc.width {
			t.Fatalf("editor = %+v, want backend %q width %d", cfg.Editor, tc.backend, tc.width)
		}
	}
}

func TestLoadInvalidValuesReset(t *testing.T) {
	path := writeConfig(t, `
[editor]
tab_width = -1
backend = "vim"
leader_key = "ab"
`)
	cfg, _, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.TabWidth != DefaultTabWidth || cfg.Editor.Backend != BackendBuffer || cfg.Editor.LeaderKey != DefaultLeaderKey {
		t.Fatalf("invalid values kept: %+v", cfg.Editor)
	}
}

func TestLoadParseError(t *testing.T) {
	path := writeConfig(t, "[editor\ntab_width = ")
	cfg, _, err := Load(path, nil)
	if err == nil {
		t.Fatal("expected parse error")
	}
	if cfg == nil || cfg.Editor.TabWidth != DefaultTabWidth {
		t.Fatal("expected defaults alongside the error")
	}
}

func TestFlagOverrides(t *testing.T) {
	path := writeConfig(t, "[editor]\ntab_width = 2\nscroll_off = 7\n")

	var flags Flags
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bind(fs)
	if err := fs.Parse([]string{"--tabwidth=8", "--log-tags=keys, render", "--backend=textarea"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, _, err := Load(path, &flags)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.TabWidth != 8 {
		t.Fatalf("tab width = %d, want flag value 8", cfg.Editor.TabWidth)
	}
	if cfg.Editor.ScrollOff != 7 {
		t.Fatalf("scroll off = %d, want file value 7", cfg.Editor.ScrollOff)
	}
	if len(cfg.Logger.EnabledTags) != 2 || cfg.Logger.EnabledTags[1] != "render" {
		t.Fatalf("tags = %q", cfg.Logger.EnabledTags)
	}
	if cfg.Editor.Backend != BackendTextarea {
		t.Fatalf("backend = %q", cfg.Editor.Backend)
	}
}
