package markdown

import (
	"strings"
	"testing"
)

func TestClassifiers(t *testing.T) {
	cases := []struct {
		line                             string
		unordered, check, ordered, quote bool
	}{
		{"- item", true, false, false, false},
		{"   - nested", true, false, false, false},
		{"- [ ] todo", false, true, false, false},
		{"- [x] done", false, true, false, false},
		{"- [X] done", false, false, false, false},
		{"-[ ] tight", false, true, false, false},
		{"1. first", false, false, true, false},
		{"  12. twelfth", false, false, true, false},
		{"1.5 apples", false, false, false, false},
		{"> quoted", false, false, false, true},
		{">no space", false, false, false, false},
		{"-no space", false, false, false, false},
		{"plain text", false, false, false, false},
		{"", false, false, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.line, func(t *testing.T) {
			if got := IsUnorderedListLine(tc.line); got != tc.unordered {
				t.Errorf("IsUnorderedListLine = %v, want %v", got, tc.unordered)
			}
			if got := IsCheckListLine(tc.line); got != tc.check {
				t.Errorf("IsCheckListLine = %v, want %v", got, tc.check)
			}
			if got := IsOrderedListLine(tc.line); got != tc.ordered {
				t.Errorf("IsOrderedListLine = %v, want %v", got, tc.ordered)
			}
			if got := IsQuoteLine(tc.line); got != tc.quote {
				t.Errorf("IsQuoteLine = %v, want %v", got, tc.quote)
			}
		})
	}
}

func TestCheckListIsNeverUnordered(t *testing.T) {
	lines := []string{
		"- [ ] a", "- [x] a", "  - [ ] nested", "-  [ ] wide", "- [\t] tab", "-[x] tight",
	}
	for _, line := range lines {
		if !IsCheckListLine(line) {
			t.Fatalf("%q: expected checklist line", line)
		}
		if IsUnorderedListLine(line) {
			t.Fatalf("%q: checklist line classified as unordered", line)
		}
	}
}

func TestDetectBlockType(t *testing.T) {
	cases := []struct {
		line string
		want BlockType
	}{
		{"# Title", BlockH1},
		{"## Section", BlockH2},
		{"### Sub", BlockH3},
		{"  ### indented", BlockH3},
		{"#### Deep", BlockParagraph},
		{"#hashtag", BlockParagraph},
		{"plain", BlockParagraph},
		{"", BlockParagraph},
		{"# ", BlockH1},
	}
	for _, tc := range cases {
		if got := DetectBlockType(tc.line); got != tc.want {
			t.Errorf("DetectBlockType(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}

func TestDetectBlockTypeExclusive(t *testing.T) {
	prefixes := map[BlockType]string{BlockH1: "# ", BlockH2: "## ", BlockH3: "### "}
	lines := []string{"# a", "## a", "### a", "#### a", "a", " # a", "##a", "### "}
	for _, line := range lines {
		got := DetectBlockType(line)
		trimmed := strings.TrimLeft(line, " \t")
		matched := BlockParagraph
		for _, bt := range []BlockType{BlockH3, BlockH2, BlockH1} {
			if strings.HasPrefix(trimmed, prefixes[bt]) {
				matched = bt
				break
			}
		}
		if got != matched {
			t.Fatalf("DetectBlockType(%q) = %v, want %v", line, got, matched)
		}
	}
}

func TestInsertAtLineStartCollapsed(t *testing.T) {
	e := New(DefaultOptions())

	res := e.InsertAtLineStart("foo", Cursor(1), PrefixUnordered)
	if res.Text != "- foo" || res.Selection != Cursor(3) {
		t.Fatalf("add = %q %+v", res.Text, res.Selection)
	}
	res = e.InsertAtLineStart(res.Text, res.Selection, PrefixUnordered)
	if res.Text != "foo" || res.Selection != Cursor(1) {
		t.Fatalf("remove = %q %+v", res.Text, res.Selection)
	}

	res = e.InsertAtLineStart("a\nbar\nc", Cursor(3), PrefixQuote)
	if res.Text != "a\n> bar\nc" || res.Selection != Cursor(5) {
		t.Fatalf("middle line = %q %+v", res.Text, res.Selection)
	}

	// Cursor inside the marker being removed stays on the line.
	res = e.InsertAtLineStart("x\n> q", Cursor(3), PrefixQuote)
	if res.Text != "x\nq" || res.Selection != Cursor(2) {
		t.Fatalf("cursor in marker = %q %+v", res.Text, res.Selection)
	}
}

func TestInsertAtLineStartRange(t *testing.T) {
	e := New(DefaultOptions())
	text := "one\n\ntwo\n> three"

	res := e.InsertAtLineStart(text, Selection{Anchor: 1, Focus: 12}, PrefixQuote)
	want := "> one\n\n> two\nthree"
	if res.Text != want {
		t.Fatalf("text = %q, want %q", res.Text, want)
	}
	if res.Selection != selectAll(want) {
		t.Fatalf("selection = %+v, want whole block", res.Selection)
	}
}

func TestInsertAtLineStartCheckList(t *testing.T) {
	e := New(DefaultOptions())
	cases := []struct{ in, want string }{
		{"task", "- [ ] task"},
		{"- [ ] task", "task"},
		{"- [x] done", "done"},
		{"  - [ ] nested", "  nested"},
	}
	for _, tc := range cases {
		res := e.InsertAtLineStart(tc.in, Cursor(0), PrefixCheckList)
		if res.Text != tc.want {
			t.Errorf("check-list(%q) = %q, want %q", tc.in, res.Text, tc.want)
		}
	}
}

func TestInsertAtLineStartNoCrossConversion(t *testing.T) {
	e := New(DefaultOptions())
	res := e.InsertAtLineStart("- item", selectAll("- item"), PrefixQuote)
	if res.Text != "> - item" {
		t.Fatalf("text = %q, want %q", res.Text, "> - item")
	}
}

func TestInsertAtLineStartKeepsBlankLines(t *testing.T) {
	e := New(DefaultOptions())
	text := "a\n\n  \nb\n\t"
	for _, prefix := range []string{PrefixUnordered, PrefixCheckList, PrefixQuote} {
		res := e.InsertAtLineStart(text, selectAll(text), prefix)
		got := strings.Split(res.Text, "\n")
		want := strings.Split(text, "\n")
		for i := range want {
			if isBlank(want[i]) && got[i] != want[i] {
				t.Fatalf("%q: blank line %d = %q, want %q", prefix, i, got[i], want[i])
			}
		}
	}
}

func TestInsertAtLineStartEndsAtLineStart(t *testing.T) {
	e := New(DefaultOptions())
	res := e.InsertAtLineStart("a\nb", Selection{Anchor: 0, Focus: 2}, PrefixUnordered)
	if res.Text != "- a\nb" {
		t.Fatalf("text = %q, want %q", res.Text, "- a\nb")
	}
}

func TestInsertAtLineStartFallback(t *testing.T) {
	e := New(DefaultOptions())
	res := e.InsertAtLineStart("ab", Cursor(10), PrefixUnordered)
	if res.Text != "ab- " || res.Selection != Cursor(4) {
		t.Fatalf("fallback = %q %+v", res.Text, res.Selection)
	}
}

func TestInsertOrderedList(t *testing.T) {
	e := New(DefaultOptions())
	text := "foo\nbar\nbaz"

	res := e.InsertOrderedList(text, selectAll(text))
	if res.Text != "1. foo\n2. bar\n3. baz" {
		t.Fatalf("number = %q", res.Text)
	}
	res = e.InsertOrderedList(res.Text, res.Selection)
	if res.Text != text {
		t.Fatalf("strip = %q, want %q", res.Text, text)
	}
}

func TestInsertOrderedListCases(t *testing.T) {
	e := New(DefaultOptions())
	cases := []struct{ name, in, want string }{
		{"any numbers stripped", "5. a\n9. b", "a\nb"},
		{"mixed renumbers", "1. a\nb", "1. a\n2. b"},
		{"blank lines skipped", "foo\n\nbar", "1. foo\n\n2. bar"},
		{"indent kept", "  a\n  b", "  1. a\n  2. b"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := e.InsertOrderedList(tc.in, selectAll(tc.in))
			if res.Text != tc.want {
				t.Fatalf("text = %q, want %q", res.Text, tc.want)
			}
		})
	}
}

func TestInsertOrderedListCollapsed(t *testing.T) {
	e := New(DefaultOptions())
	res := e.InsertOrderedList("foo", Cursor(0))
	if res.Text != "1. foo" || res.Selection != Cursor(3) {
		t.Fatalf("add = %q %+v", res.Text, res.Selection)
	}
	res = e.InsertOrderedList("7. foo", Cursor(6))
	if res.Text != "foo" || res.Selection != Cursor(3) {
		t.Fatalf("remove = %q %+v", res.Text, res.Selection)
	}
}
