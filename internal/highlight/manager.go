// Package highlight runs the markdown highlighter in the background after
// edits and keeps the latest result for drawing.
package highlight

import (
	"context"
	"sync"
	"time"

	"github.com/bethropolis/tidemark/internal/highlighter"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/utils"
)

// DebounceHighlightDuration is how long edits settle before a reparse.
const DebounceHighlightDuration = 65 * time.Millisecond

// Manager handles debounced asynchronous syntax highlighting.
type Manager struct {
	highlighter *highlighter.Highlighter
	source      func() string // current editor text
	appRedraw   func()        // request a redraw once results land

	debouncer utils.Debouncer

	mu     sync.Mutex // protects cancel
	cancel context.CancelFunc

	runMu sync.Mutex // the highlighter is not safe for concurrent use

	resultMu sync.RWMutex
	result   highlighter.HighlightResult
}

// NewManager creates a manager. redraw may be nil.
func NewManager(h *highlighter.Highlighter, source func() string, redraw func()) *Manager {
	if redraw == nil {
		redraw = func() {}
	}
	return &Manager{
		highlighter: h,
		source:      source,
		appRedraw:   redraw,
		result:      make(highlighter.HighlightResult),
	}
}

// Trigger schedules a reparse, cancelling any pending or running one.
func (m *Manager) Trigger() {
	if m == nil || m.highlighter == nil {
		return
	}
	m.mu.Lock()
	if m.cancel != nil {
		m.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.mu.Unlock()

	logger.DebugTagf("highlight", "HighlightingManager: Debounce timer (re)started.")
	m.debouncer.Debounce(DebounceHighlightDuration, func() {
		if err := m.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Warnf("HighlightingManager: Background highlighting failed: %v", err)
		}
	})
}

// Run highlights the current text synchronously and stores the result.
func (m *Manager) Run(ctx context.Context) error {
	if m == nil || m.highlighter == nil {
		return nil
	}
	m.runMu.Lock()
	defer m.runMu.Unlock()

	if err := ctx.Err(); err != nil {
		logger.DebugTagf("highlight", "HighlightingManager: Highlight task cancelled.")
		return err
	}
	result, err := m.highlighter.Highlight(ctx, []byte(m.source()))
	if err != nil {
		return err
	}

	m.resultMu.Lock()
	m.result = result
	m.resultMu.Unlock()

	logger.DebugTagf("highlight", "HighlightingManager: Generated highlights for %d lines.", len(result))
	m.appRedraw()
	return nil
}

// LineStyles returns the styled ranges of one line from the last run.
func (m *Manager) LineStyles(line int) []highlighter.StyledRange {
	if m == nil {
		return nil
	}
	m.resultMu.RLock()
	defer m.resultMu.RUnlock()
	return m.result[line]
}

// Shutdown cancels any pending work.
func (m *Manager) Shutdown() {
	if m == nil {
		return
	}
	m.debouncer.Stop()
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.cancel != nil {
		logger.DebugTagf("highlight", "HighlightingManager: Shutting down, cancelling pending task.")
		m.cancel()
		m.cancel = nil
	}
}
