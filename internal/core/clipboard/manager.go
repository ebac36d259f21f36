// Package clipboard holds yanked text, either in an internal register or on
// the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
	"github.com/bethropolis/tidemark/internal/logger"
)

// System clipboard access, swappable in tests.
var (
	readAll  = clipboard.ReadAll
	writeAll = clipboard.WriteAll
)

// Manager handles clipboard operations
type Manager struct {
	mu       sync.Mutex
	system   bool
	register string
}

// NewManager creates a clipboard manager. With useSystem set, yanks and
// pastes go through the system clipboard and fall back to the internal
// register when it is unavailable.
func NewManager(useSystem bool) *Manager {
	if useSystem && clipboard.Unsupported {
		logger.Warnf("ClipboardManager: System clipboard unsupported, using internal register")
		useSystem = false
	}
	return &Manager{system: useSystem}
}

// Copy stores text. Empty text is ignored.
func (m *Manager) Copy(text string) error {
	if text == "" {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.register = text
	if m.system {
		if err := writeAll(text); err != nil {
			return fmt.Errorf("write system clipboard: %w", err)
		}
	}
	logger.DebugTagf("clipboard", "ClipboardManager: Yanked %d bytes", len(text))
	return nil
}

// Paste returns the current clipboard text.
func (m *Manager) Paste() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.system {
		text, err := readAll()
		if err == nil {
			return text, nil
		}
		logger.Warnf("ClipboardManager: Reading system clipboard failed, using register: %v", err)
	}
	return m.register, nil
}

// UsesSystem reports whether the system clipboard is active.
func (m *Manager) UsesSystem() bool {
	return m.system
}
