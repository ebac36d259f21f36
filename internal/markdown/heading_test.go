package markdown

import "testing"

func TestFormatHeadingCollapsed(t *testing.T) {
	e := New(DefaultOptions())
	cases := []struct {
		name   string
		text   string
		cursor int
		bt     BlockType
		want   string
		at     int
	}{
		{"empty line", "", 0, BlockH1, "# ", 2},
		{"line start", "title", 0, BlockH2, "## title", 3},
		{"mid line", "foobar", 3, BlockH2, "foo## bar", 6},
		{"existing marker", "# foo", 0, BlockH2, "## # foo", 3},
		{"second line", "a\nb", 2, BlockH3, "a\n### b", 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := e.FormatHeading(tc.text, Cursor(tc.cursor), tc.bt)
			if res.Text != tc.want {
				t.Fatalf("text = %q, want %q", res.Text, tc.want)
			}
			if res.Selection != Cursor(tc.at) {
				t.Fatalf("cursor = %+v, want %d", res.Selection, tc.at)
			}
			if res.BlockType != tc.bt {
				t.Fatalf("block type = %v, want %v", res.BlockType, tc.bt)
			}
		})
	}
}

func TestFormatHeadingReplaceMarker(t *testing.T) {
	e := New(Options{ReplaceHeadingMarker: true})
	cases := []struct {
		name   string
		text   string
		cursor int
		bt     BlockType
		want   string
		at     int
	}{
		{"empty line", "", 0, BlockH1, "# ", 2},
		{"end of line", "title", 5, BlockH2, "## title", 8},
		{"mid line", "foobar", 3, BlockH2, "## foobar", 6},
		{"replace level", "## title", 0, BlockH1, "# title", 2},
		{"second line", "a\nb", 2, BlockH3, "a\n### b", 6},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := e.FormatHeading(tc.text, Cursor(tc.cursor), tc.bt)
			if res.Text != tc.want {
				t.Fatalf("text = %q, want %q", res.Text, tc.want)
			}
			if res.Selection != Cursor(tc.at) {
				t.Fatalf("cursor = %+v, want %d", res.Selection, tc.at)
			}
		})
	}
}

func TestFormatHeadingCollapsedParagraphIsNoop(t *testing.T) {
	e := New(DefaultOptions())
	res := e.FormatHeading("# title", Cursor(3), BlockParagraph)
	if res.Changed || res.Text != "# title" {
		t.Fatalf("paragraph at cursor changed text to %q", res.Text)
	}
	if res.BlockType != BlockH1 {
		t.Fatalf("block type = %v, want h1", res.BlockType)
	}
}

func TestFormatHeadingRange(t *testing.T) {
	e := New(DefaultOptions())

	res := e.FormatHeading("# a\n\nb", selectAll("# a\n\nb"), BlockH3)
	if res.Text != "### a\n### \n### b" {
		t.Fatalf("h3 = %q", res.Text)
	}

	res = e.FormatHeading("# a\n## b", selectAll("# a\n## b"), BlockParagraph)
	if res.Text != "a\nb" || res.BlockType != BlockParagraph {
		t.Fatalf("paragraph = %q %v", res.Text, res.BlockType)
	}
}

func TestFormatHeadingUnknownType(t *testing.T) {
	e := New(DefaultOptions())
	res := e.FormatHeading("## a", selectAll("## a"), BlockType("h9"))
	if res.Text != "a" || res.BlockType != BlockParagraph {
		t.Fatalf("unknown = %q %v", res.Text, res.BlockType)
	}
}

func TestParseBlockType(t *testing.T) {
	cases := map[string]BlockType{
		"h1": BlockH1, "H2": BlockH2, " h3 ": BlockH3, "paragraph": BlockParagraph,
		"h4": BlockUnknown, "": BlockUnknown,
	}
	for in, want := range cases {
		if got := ParseBlockType(in); got != want {
			t.Errorf("ParseBlockType(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestCurrentBlockType(t *testing.T) {
	text := "# one\n## two\nthree"
	if got := CurrentBlockType(text, Cursor(8)); got != BlockH2 {
		t.Fatalf("got %v, want h2", got)
	}
	if got := CurrentBlockType(text, Cursor(len(text))); got != BlockParagraph {
		t.Fatalf("got %v, want paragraph", got)
	}
}
