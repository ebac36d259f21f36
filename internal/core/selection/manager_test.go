package selection

import (
	"testing"

	"github.com/bethropolis/tidemark/internal/types"
)

type cursorStub struct{ pos types.Position }

func (c *cursorStub) GetCursor() types.Position { return c.pos }

func TestSelectionFollowsCursor(t *testing.T) {
	cur := &cursorStub{pos: types.Position{Line: 1, Col: 4}}
	m := NewManager(cur)

	if m.HasSelection() {
		t.Fatal("new manager has a selection")
	}

	m.StartSelection()
	cur.pos = types.Position{Line: 0, Col: 2}
	start, end, ok := m.GetSelection()
	if !ok {
		t.Fatal("expected a selection after moving the cursor")
	}
	if start != (types.Position{Line: 0, Col: 2}) || end != (types.Position{Line: 1, Col: 4}) {
		t.Fatalf("selection = %v..%v", start, end)
	}
	if m.Anchor() != (types.Position{Line: 1, Col: 4}) {
		t.Fatalf("anchor = %v", m.Anchor())
	}

	// A second start keeps the original anchor.
	m.StartSelection()
	if m.Anchor() != (types.Position{Line: 1, Col: 4}) {
		t.Fatalf("anchor moved to %v", m.Anchor())
	}

	m.ClearSelection()
	if m.HasSelection() || m.Anchor() != cur.pos {
		t.Fatal("ClearSelection left a selection behind")
	}
}

func TestCollapsedAnchor(t *testing.T) {
	cur := &cursorStub{pos: types.Position{Line: 0, Col: 3}}
	m := NewManager(cur)
	m.SetAnchor(cur.pos)
	if _, _, ok := m.GetSelection(); ok {
		t.Fatal("anchor at cursor reported a selection")
	}
	if !m.IsSelecting() {
		t.Fatal("SetAnchor did not enable selecting")
	}
}
