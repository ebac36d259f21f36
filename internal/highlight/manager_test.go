package highlight

import (
	"context"
	"testing"
	"time"

	"github.com/bethropolis/tidemark/internal/highlighter"
)

func TestRunStoresResult(t *testing.T) {
	h, err := highlighter.New()
	if err != nil {
		t.Fatalf("highlighter.New: %v", err)
	}
	redraws := 0
	m := NewManager(h, func() string { return "## Heading" }, func() { redraws++ })
	if err := m.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(m.LineStyles(0)) == 0 {
		t.Fatalf("expected highlights on line 0")
	}
	if redraws != 1 {
		t.Fatalf("redraws = %d, want 1", redraws)
	}
}

func TestTriggerDebounces(t *testing.T) {
	h, err := highlighter.New()
	if err != nil {
		t.Fatalf("highlighter.New: %v", err)
	}
	done := make(chan struct{}, 4)
	m := NewManager(h, func() string { return "- item" }, func() { done <- struct{}{} })
	for i := 0; i < 3; i++ {
		m.Trigger()
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatalf("highlight never ran")
	}
	if len(m.LineStyles(0)) == 0 {
		t.Fatalf("expected highlights after trigger")
	}
	m.Shutdown()
}

func TestCancelledRunIsSkipped(t *testing.T) {
	h, err := highlighter.New()
	if err != nil {
		t.Fatalf("highlighter.New: %v", err)
	}
	m := NewManager(h, func() string { return "# x" }, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Run(ctx); err == nil {
		t.Fatalf("expected cancellation error")
	}
	if len(m.LineStyles(0)) != 0 {
		t.Fatalf("cancelled run should not store highlights")
	}
}
