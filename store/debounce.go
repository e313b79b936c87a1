package store

import (
	"sync"
	"time"
)

// Debouncer coalesces bursts of Trigger calls into one invocation of fn
// after a quiet period.
type Debouncer struct {
	mu    sync.Mutex
	d     time.Duration
	fn    func()
	timer *time.Timer
}

func NewDebouncer(d time.Duration, fn func()) *Debouncer {
	return &Debouncer{d: d, fn: fn}
}

func (b *Debouncer) Trigger() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.timer = time.AfterFunc(b.d, func() {
		b.mu.Lock()
		b.timer = nil
		b.mu.Unlock()
		b.fn()
	})
}

// Flush runs fn immediately if a trigger is pending.
func (b *Debouncer) Flush() {
	b.mu.Lock()
	pending := b.timer != nil
	if pending {
		b.timer.Stop()
		b.timer = nil
	}
	b.mu.Unlock()
	if pending {
		b.fn()
	}
}
