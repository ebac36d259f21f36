package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bethropolis/tidemark/internal/markdown"
)

// run executes the CLI with an isolated config and returns stdout.
func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	rootCmd, c := newRootCmd()
	t.Cleanup(c.close)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetIn(strings.NewReader(stdin))
	cfgPath := filepath.Join(t.TempDir(), "missing.toml")
	rootCmd.SetArgs(append([]string{"--config", cfgPath}, args...))
	err := rootCmd.Execute()
	return out.String(), err
}

func TestApplyStdin(t *testing.T) {
	cases := []struct {
		name string
		in   string
		args []string
		want string
	}{
		{"bold selection", "hello world", []string{"apply", "bold", "--anchor", "0", "--focus", "5"}, "**hello** world"},
		{"heading at line start", "Title", []string{"apply", "h2", "--anchor", "0"}, "## Title"},
		{"heading mid line", "foobar", []string{"apply", "h2", "--anchor", "3"}, "foo## bar"},
		{"quote lines", "a\nb", []string{"apply", "quote", "--anchor", "0", "--focus", "3"}, "> a\n> b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := run(t, tc.in, tc.args...)
			if err != nil {
				t.Fatalf("apply: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestApplyUnknownCommand(t *testing.T) {
	if _, err := run(t, "x", "apply", "underline"); err == nil {
		t.Fatal("expected an error for an unknown command")
	}
}

func TestApplyWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.md")
	if err := os.WriteFile(path, []byte("item"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "", "apply", "unordered-list", path, "--write"); err != nil {
		t.Fatalf("apply --write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "- item" {
		t.Fatalf("file = %q", data)
	}
}

func TestStateJSON(t *testing.T) {
	got, err := run(t, "# Title **bold**", "state", "--anchor", "12", "--json")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	var state markdown.FormatState
	if err := json.Unmarshal([]byte(got), &state); err != nil {
		t.Fatalf("decode %q: %v", got, err)
	}
	if state.BlockType != markdown.BlockH1 {
		t.Fatalf("block type = %q", state.BlockType)
	}
}

func TestStateBadges(t *testing.T) {
	got, err := run(t, "> quoted", "state", "--anchor", "3")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	for _, want := range []string{"H1", "tbl", "block:", "paragraph"} {
		if !strings.Contains(got, want) {
			t.Errorf("output %q missing %q", got, want)
		}
	}
}

func TestRenderHTML(t *testing.T) {
	got, err := run(t, "# Hi\n\n~~gone~~", "render")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(got, "<h1") || !strings.Contains(got, "<del>gone</del>") {
		t.Fatalf("unexpected html: %s", got)
	}
}

func TestCommandsList(t *testing.T) {
	got, err := run(t, "", "commands")
	if err != nil {
		t.Fatalf("commands: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(got), "\n")
	if len(lines) != len(markdown.Commands()) {
		t.Fatalf("got %d lines, want %d", len(lines), len(markdown.Commands()))
	}
	if !strings.HasPrefix(lines[0], "bold") || !strings.Contains(lines[0], "Alt+b") {
		t.Fatalf("first line = %q", lines[0])
	}
}
