package editor

import (
	"testing"

	"github.com/bethropolis/tidemark/internal/types"
)

func TestOffsetPositionRoundTrip(t *testing.T) {
	value := "héllo\n\nwörld"
	cases := []struct {
		offset int
		pos    types.Position
	}{
		{0, types.Position{Line: 0, Col: 0}},
		{5, types.Position{Line: 0, Col: 5}},
		{6, types.Position{Line: 1, Col: 0}},
		{7, types.Position{Line: 2, Col: 0}},
		{12, types.Position{Line: 2, Col: 5}},
	}
	for _, c := range cases {
		if got := positionForOffset(value, c.offset); got != c.pos {
			t.Errorf("positionForOffset(%d) = %+v, want %+v", c.offset, got, c.pos)
		}
		if got := offsetForPosition(value, c.pos); got != c.offset {
			t.Errorf("offsetForPosition(%+v) = %d, want %d", c.pos, got, c.offset)
		}
	}
	if got := positionForOffset(value, 99); got != (types.Position{Line: 2, Col: 5}) {
		t.Errorf("past end clamps, got %+v", got)
	}
	if got := offsetForPosition(value, types.Position{Line: 0, Col: 99}); got != 5 {
		t.Errorf("column clamps to line end, got %d", got)
	}
}

func TestMovePosition(t *testing.T) {
	lens := []int{3, 0, 5}
	cases := []struct {
		name        string
		from        types.Position
		dLine, dCol int
		want        types.Position
	}{
		{"right wraps", types.Position{Line: 0, Col: 3}, 0, 1, types.Position{Line: 1, Col: 0}},
		{"left wraps", types.Position{Line: 2, Col: 0}, 0, -1, types.Position{Line: 1, Col: 0}},
		{"down clamps col", types.Position{Line: 2, Col: 4}, -2, 0, types.Position{Line: 0, Col: 3}},
		{"top stays", types.Position{Line: 0, Col: 0}, -1, -1, types.Position{Line: 0, Col: 0}},
		{"bottom stays", types.Position{Line: 2, Col: 5}, 1, 1, types.Position{Line: 2, Col: 5}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := movePosition(lens, c.from, c.dLine, c.dCol); got != c.want {
				t.Fatalf("got %+v, want %+v", got, c.want)
			}
		})
	}
}

func TestDiffSpan(t *testing.T) {
	cases := []struct {
		before, after string
		start, end    int
		insert        string
	}{
		{"hello", "**hello**", 0, 5, "**hello**"},
		{"**hello**", "hello", 0, 9, "hello"},
		{"a b c", "a **b** c", 2, 3, "**b**"},
		{"x\n- a\n", "x\na\n", 2, 4, ""},
		{"héllo", "hello", 1, 2, "e"},
		{"same", "same", 4, 4, ""},
		{"", "- ", 0, 0, "- "},
	}
	for _, c := range cases {
		start, end, insert := diffSpan(c.before, c.after)
		if start != c.start || end != c.end || insert != c.insert {
			t.Errorf("diffSpan(%q, %q) = %d, %d, %q; want %d, %d, %q",
				c.before, c.after, start, end, insert, c.start, c.end, c.insert)
		}
		got := runeSlice(c.before, 0, start) + insert + c.before[byteOffset(c.before, end):]
		if got != c.after {
			t.Errorf("applying diff gave %q, want %q", got, c.after)
		}
	}
}
