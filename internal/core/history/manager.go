package history

import (
	"fmt"
	"sync"

	"github.com/bethropolis/tidemark/internal/buffer"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/types"
)

const DefaultMaxHistory = 100

// EditorInterface defines the methods the history manager needs from the editor.
// Calls happen while the editor holds its own lock, so implementations must
// not lock again.
type EditorInterface interface {
	GetBuffer() buffer.Buffer
	SetSelectionPositions(anchor, cursor types.Position)
}

// Manager handles the undo/redo stack.
type Manager struct {
	editor       EditorInterface
	changes      []Change
	currentIndex int // Index of the *next* change to potentially Redo
	maxHistory   int
	mutex        sync.Mutex
}

// NewManager creates a history manager.
func NewManager(editor EditorInterface, maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		editor:     editor,
		changes:    make([]Change, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// RecordChange adds a new change, clearing any redo history.
func (m *Manager) RecordChange(change Change) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// If current index isn't at the end, truncate the redo history
	if m.currentIndex < len(m.changes) {
		m.changes = m.changes[:m.currentIndex]
	}

	m.changes = append(m.changes, change)

	if len(m.changes) > m.maxHistory {
		// Drop the oldest changes
		m.changes = m.changes[len(m.changes)-m.maxHistory:]
	}
	m.currentIndex = len(m.changes)

	logger.DebugTagf("history", "History: Recorded %v change. Index: %d, Count: %d", change.Type(), m.currentIndex, len(m.changes))
}

// Undo reverts the last recorded change. It returns the buffer edit it
// applied so the caller can notify listeners.
func (m *Manager) Undo() (types.EditInfo, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex <= 0 {
		logger.DebugTagf("history", "History: Nothing to undo.")
		return types.EditInfo{}, false, nil
	}

	change := m.changes[m.currentIndex-1]
	buf := m.editor.GetBuffer()
	info, err := buf.Replace(change.Start, EndOf(change.Start, change.Inserted), change.Removed)
	if err != nil {
		logger.Errorf("History: Error undoing %v change: %v", change.Type(), err)
		return types.EditInfo{}, false, fmt.Errorf("undo failed: %w", err)
	}
	m.currentIndex--

	m.editor.SetSelectionPositions(change.AnchorBefore, change.CursorBefore)
	logger.DebugTagf("history", "History: Undid %v change, index now %d", change.Type(), m.currentIndex)
	return info, true, nil
}

// Redo reapplies the last undone change.
func (m *Manager) Redo() (types.EditInfo, bool, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.currentIndex >= len(m.changes) {
		logger.DebugTagf("history", "History: Nothing to redo. currentIndex=%d, len(changes)=%d", m.currentIndex, len(m.changes))
		return types.EditInfo{}, false, nil
	}

	change := m.changes[m.currentIndex]
	buf := m.editor.GetBuffer()
	info, err := buf.Replace(change.Start, EndOf(change.Start, change.Removed), change.Inserted)
	if err != nil {
		logger.Errorf("History: Error redoing %v change: %v", change.Type(), err)
		return types.EditInfo{}, false, fmt.Errorf("redo failed: %w", err)
	}
	m.currentIndex++

	m.editor.SetSelectionPositions(change.AnchorAfter, change.CursorAfter)
	logger.DebugTagf("history", "History: Redid %v change, index now %d", change.Type(), m.currentIndex)
	return info, true, nil
}

// Clear resets the history stack. Call this on file load.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.changes = m.changes[:0] // keep allocated capacity
	m.currentIndex = 0
	logger.DebugTagf("history", "History: Cleared.")
}

// CanUndo returns true if there are changes that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex > 0
}

// CanRedo returns true if there are changes that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex < len(m.changes)
}
