package search

import (
	"sync"
	"time"
)

// DefaultDelay is the quiet period after the last keystroke before a
// search is applied.
const DefaultDelay = 400 * time.Millisecond

// Debouncer delivers only the last value pushed within a quiet period.
// Each Push restarts the period; at most one timer is pending.
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	fn      func(string)
	timer   *time.Timer
	gen     uint64
	pending string
	armed   bool
	stopped bool
}

func NewDebouncer(delay time.Duration, fn func(value string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{delay: delay, fn: fn}
}

// Push records value and restarts the quiet period.
func (d *Debouncer) Push(value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.gen++
	d.pending = value
	d.armed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	gen := d.gen
	d.timer = time.AfterFunc(d.delay, func() { d.fire(gen) })
}

// a timer whose generation was superseded by a later Push does nothing
func (d *Debouncer) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || !d.armed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	value := d.pending
	d.armed = false
	d.timer = nil
	d.mu.Unlock()

	d.fn(value)
}

// Flush delivers the pending value immediately, if any.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.stopped || !d.armed {
		d.mu.Unlock()
		return
	}
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.gen++
	value := d.pending
	d.armed = false
	d.mu.Unlock()

	d.fn(value)
}

// Pending reports whether a value is waiting for the quiet period to end.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed
}

// Stop cancels any pending delivery. Later pushes are ignored.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.armed = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
