package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
)

const paperTheme = `
name = "Paper"
is_dark = false

[styles.Default]
fg = "#000000"
bg = "#ffffff"

[styles."text.title"]
fg = "navy"
bold = true

[styles.broken]
fg = "#12"
`

func TestParseTheme(t *testing.T) {
	theme, err := ParseTheme(paperTheme)
	if err != nil {
		t.Fatalf("ParseTheme: %v", err)
	}
	if theme.Name != "Paper" || theme.IsDark {
		t.Fatalf("got name %q dark %v", theme.Name, theme.IsDark)
	}
	fg, bg, attrs := theme.GetStyle("text.title").Decompose()
	if fg != tcell.ColorNavy {
		t.Errorf("title fg = %v, want navy", fg)
	}
	if bg != tcell.NewHexColor(0xffffff) {
		t.Errorf("title bg not inherited from Default: %v", bg)
	}
	if attrs&tcell.AttrBold == 0 {
		t.Errorf("title should be bold")
	}
	if _, ok := theme.Styles["broken"]; ok {
		t.Errorf("invalid style should be skipped")
	}
}

func TestGetStyleFallback(t *testing.T) {
	if got, want := Inkwell.GetStyle("text.title.h1"), Inkwell.Styles["text.title"]; got != want {
		t.Fatalf("dotted fallback failed")
	}
	if got, want := Inkwell.GetStyle("nothing"), Inkwell.Styles[StyleDefault]; got != want {
		t.Fatalf("default fallback failed")
	}
}

func TestManagerLoadsDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "paper.toml"), []byte(paperTheme), 0o644); err != nil {
		t.Fatal(err)
	}
	mgr := NewManager(dir)
	names := mgr.ListThemes()
	if len(names) != 2 || names[0] != "Inkwell" || names[1] != "Paper" {
		t.Fatalf("ListThemes = %v", names)
	}
	if err := mgr.SetTheme("paper"); err != nil {
		t.Fatalf("SetTheme: %v", err)
	}
	if mgr.Current().Name != "Paper" {
		t.Fatalf("current = %s", mgr.Current().Name)
	}
	if err := mgr.SetTheme("missing"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}
