package markdown

import (
	"errors"
	"strings"
	"testing"
)

func TestInsertCodeBlock(t *testing.T) {
	e := New(DefaultOptions())

	res := e.InsertCodeBlock("", Cursor(0))
	if res.Text != "```\n\n```" || res.Selection != Cursor(4) {
		t.Fatalf("collapsed = %q %+v", res.Text, res.Selection)
	}

	res = e.InsertCodeBlock("x := 1", selectAll("x := 1"))
	if res.Text != "```\nx := 1\n```" {
		t.Fatalf("wrap = %q", res.Text)
	}
	res = e.InsertCodeBlock(res.Text, res.Selection)
	if res.Text != "x := 1" {
		t.Fatalf("unwrap = %q", res.Text)
	}
}

func TestInsertLink(t *testing.T) {
	e := New(DefaultOptions())

	res := e.InsertLink("see docs", Selection{Anchor: 4, Focus: 8})
	if res.Text != "see [docs](http://)" {
		t.Fatalf("text = %q", res.Text)
	}
	if res.Selection != (Selection{Anchor: 11, Focus: 18}) {
		t.Fatalf("selection = %+v, want url placeholder", res.Selection)
	}

	res = e.InsertLink("", Cursor(0))
	if res.Text != "[](http://)" || res.Selection != Cursor(1) {
		t.Fatalf("empty = %q %+v", res.Text, res.Selection)
	}

	custom := New(Options{LinkPlaceholder: "https://"})
	if res := custom.InsertLink("x", selectAll("x")); res.Text != "[x](https://)" {
		t.Fatalf("custom placeholder = %q", res.Text)
	}
}

func TestInsertTablePlacement(t *testing.T) {
	e := New(DefaultOptions())

	res := e.InsertTable("a\n\nb", Cursor(2))
	want := "a\n" + tableSkeleton + "\nb"
	if res.Text != want {
		t.Fatalf("empty line:\n got %q\nwant %q", res.Text, want)
	}

	res = e.InsertTable("abc", Cursor(3))
	if !strings.HasPrefix(res.Text, "abc\n| Column 1") {
		t.Fatalf("mid line = %q", res.Text)
	}
	if strings.Contains(res.Text, "\n\n") {
		t.Fatalf("mid line produced a blank line: %q", res.Text)
	}
	if res.Selection != (Selection{Anchor: 6, Focus: 14}) {
		t.Fatalf("selection = %+v, want first header cell", res.Selection)
	}
}

func TestInsertHorizontalRule(t *testing.T) {
	e := New(DefaultOptions())

	res := e.InsertHorizontalRule("", Cursor(0))
	if res.Text != "---\n" || res.Selection != Cursor(4) {
		t.Fatalf("empty line = %q %+v", res.Text, res.Selection)
	}

	res = e.InsertHorizontalRule("abc", Cursor(3))
	if res.Text != "abc\n---\n" || res.Selection != Cursor(8) {
		t.Fatalf("after text = %q %+v", res.Text, res.Selection)
	}
}

func TestInsertQuote(t *testing.T) {
	e := New(DefaultOptions())

	res := e.InsertQuote("", Cursor(0))
	if res.Text != "> " || res.Selection != Cursor(2) {
		t.Fatalf("empty = %q %+v", res.Text, res.Selection)
	}

	res = e.InsertQuote("foo", Cursor(1))
	if res.Text != "> foo" || res.Selection != Cursor(3) {
		t.Fatalf("line = %q %+v", res.Text, res.Selection)
	}

	res = e.InsertQuote(res.Text, res.Selection)
	if res.Text != "foo" {
		t.Fatalf("toggle off = %q", res.Text)
	}
}

func TestApply(t *testing.T) {
	e := New(DefaultOptions())
	for _, cmd := range Commands() {
		if _, err := e.Apply(cmd, "text", selectAll("text")); err != nil {
			t.Fatalf("Apply(%s) error: %v", cmd, err)
		}
	}

	res, err := e.Apply(CommandH2, "text", Cursor(0))
	if err != nil || res.Text != "## text" || res.BlockType != BlockH2 {
		t.Fatalf("h2 = %q %v %v", res.Text, res.BlockType, err)
	}

	_, err = e.Apply(Command("underline"), "text", Cursor(0))
	if !errors.Is(err, ErrUnknownCommand) {
		t.Fatalf("unknown command error = %v", err)
	}
}

func TestEngineRegister(t *testing.T) {
	e := New(DefaultOptions())
	e.Register(Command("shout"), func(text string, sel Selection) Result {
		out := strings.ToUpper(text)
		return Result{Text: out, Selection: sel, Changed: out != text}
	})
	res, err := e.Apply(Command("shout"), "hey", Cursor(0))
	if err != nil || res.Text != "HEY" {
		t.Fatalf("custom command = %q %v", res.Text, err)
	}

	var zero Engine
	if res, err := zero.Apply(CommandBold, "x", selectAll("x")); err != nil || res.Text != "**x**" {
		t.Fatalf("zero engine = %q %v", res.Text, err)
	}
}

func TestParseCommand(t *testing.T) {
	if cmd, ok := ParseCommand("check-list"); !ok || cmd != CommandCheckList {
		t.Fatalf("ParseCommand(check-list) = %q %v", cmd, ok)
	}
	if _, ok := ParseCommand("nope"); ok {
		t.Fatal("ParseCommand(nope) succeeded")
	}
}

func TestZeroEngine(t *testing.T) {
	var e *Engine
	res := e.InsertLink("x", selectAll("x"))
	if res.Text != "[x](http://)" {
		t.Fatalf("nil engine link = %q", res.Text)
	}
}
