// Package selection tracks the anchor end of a text selection. The other
// end is always the editor's cursor.
package selection

import (
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/types"
)

// EditorInterface defines what the selection manager needs from editor.
type EditorInterface interface {
	GetCursor() types.Position
}

// Manager handles text selection state and logic.
type Manager struct {
	editor    EditorInterface
	selecting bool
	anchor    types.Position
}

// NewManager creates a new selection manager.
func NewManager(editor EditorInterface) *Manager {
	return &Manager{editor: editor}
}

// HasSelection reports a non-empty selection.
func (m *Manager) HasSelection() bool {
	return m.selecting && m.anchor != m.editor.GetCursor()
}

// GetSelection returns the normalized selection range (start <= end).
// ok is false when nothing is selected.
func (m *Manager) GetSelection() (start, end types.Position, ok bool) {
	cursor := m.editor.GetCursor()
	if !m.selecting || m.anchor == cursor {
		return cursor, cursor, false
	}
	start, end = types.Ordered(m.anchor, cursor)
	return start, end, true
}

// Anchor returns the fixed end of the selection, or the cursor when no
// selection is active.
func (m *Manager) Anchor() types.Position {
	if !m.selecting {
		return m.editor.GetCursor()
	}
	return m.anchor
}

// SetAnchor starts (or moves) a selection anchored at pos.
func (m *Manager) SetAnchor(pos types.Position) {
	m.anchor = pos
	m.selecting = true
}

// ClearSelection resets the selection state.
func (m *Manager) ClearSelection() {
	if m.selecting {
		logger.DebugTagf("core", "Selection Manager: Cleared")
	}
	m.selecting = false
}

// StartSelection anchors a selection at the current cursor unless one is
// already active. Call it before moving the cursor on shift+movement.
func (m *Manager) StartSelection() {
	if m.selecting {
		return
	}
	m.SetAnchor(m.editor.GetCursor())
	logger.DebugTagf("core", "Selection Manager: Started at %v", m.anchor)
}

// IsSelecting returns the raw selecting flag state.
func (m *Manager) IsSelecting() bool {
	return m.selecting
}
