// Package utils holds rune/byte offset conversions and a debouncer.
package utils

import (
	"sync"
	"time"
)

// ByteOffset returns the byte offset where rune runeIndex of s starts. The
// index just past the last rune maps to len(s), anything further to -1.
func ByteOffset[T ~string | ~[]byte](s T, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	n := 0
	for i := range string(s) {
		if n == runeIndex {
			return i
		}
		n++
	}
	if n == runeIndex {
		return len(s)
	}
	return -1
}

// RuneIndex counts the runes of s that start before byteOffset.
func RuneIndex[T ~string | ~[]byte](s T, byteOffset int) int {
	n := 0
	for i := range string(s) {
		if i >= byteOffset {
			break
		}
		n++
	}
	return n
}

// Debouncer runs only the last of a burst of calls, once the burst has
// been quiet for the given duration.
type Debouncer struct {
	mu    sync.Mutex
	timer *time.Timer
}

// Debounce schedules fn after d, dropping any call still pending.
func (d *Debouncer) Debounce(dur time.Duration, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(dur, func() {
		d.mu.Lock()
		if d.timer == t {
			d.timer = nil
		}
		d.mu.Unlock()
		fn()
	})
	d.timer = t
}

// Stop drops the pending call, if any. It reports whether one was dropped.
func (d *Debouncer) Stop() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer == nil {
		return false
	}
	stopped := d.timer.Stop()
	d.timer = nil
	return stopped
}
