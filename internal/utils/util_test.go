package utils

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestByteOffset(t *testing.T) {
	s := "añb"
	cases := []struct{ rune, want int }{
		{0, 0}, {1, 1}, {2, 3}, {3, 4}, {4, -1}, {-2, 0},
	}
	for _, tc := range cases {
		if got := ByteOffset(s, tc.rune); got != tc.want {
			t.Errorf("ByteOffset(%q, %d) = %d, want %d", s, tc.rune, got, tc.want)
		}
		if got := ByteOffset([]byte(s), tc.rune); got != tc.want {
			t.Errorf("ByteOffset([]byte, %d) = %d, want %d", tc.rune, got, tc.want)
		}
	}
}

func TestRuneIndex(t *testing.T) {
	s := []byte("añb")
	cases := []struct{ off, want int }{
		{0, 0}, {1, 1}, {3, 2}, {4, 3}, {10, 3},
	}
	for _, tc := range cases {
		if got := RuneIndex(s, tc.off); got != tc.want {
			t.Errorf("RuneIndex(%d) = %d, want %d", tc.off, got, tc.want)
		}
	}
}

func TestDebouncer(t *testing.T) {
	var d Debouncer
	var calls atomic.Int32
	done := make(chan struct{}, 1)
	for i := 0; i < 5; i++ {
		d.Debounce(20*time.Millisecond, func() {
			calls.Add(1)
			done <- struct{}{}
		})
	}
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("debounced call never ran")
	}
	time.Sleep(40 * time.Millisecond)
	if n := calls.Load(); n != 1 {
		t.Fatalf("ran %d times, want 1", n)
	}

	d.Debounce(time.Hour, func() { t.Error("stopped call ran") })
	if !d.Stop() {
		t.Fatal("Stop() did not report the pending call")
	}
	if d.Stop() {
		t.Fatal("second Stop() reported a pending call")
	}
}
