// Package watcher reloads the event file when it changes on disk.
package watcher

import (
	"sync"
	"time"
)

// DefaultDebounceDuration is the default debounce window. Editors often
// write a file in several steps; one reload per burst is enough.
const DefaultDebounceDuration = 250 * time.Millisecond

// Debouncer runs fire once after a burst of Trigger calls has been quiet for
// the debounce window.
type Debouncer struct {
	window time.Duration
	fire   func()

	mu    sync.Mutex
	timer *time.Timer
	gen   uint64 // bumped by every Trigger and Cancel
	armed bool
}

// NewDebouncer returns a debouncer that calls fire. A zero window means
// DefaultDebounceDuration.
func NewDebouncer(window time.Duration, fire func()) *Debouncer {
	if window <= 0 {
		window = DefaultDebounceDuration
	}
	return &Debouncer{window: window, fire: fire}
}

// Trigger restarts the quiet window.
func (d *Debouncer) Trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	gen := d.gen
	d.armed = true
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() { d.expire(gen) })
}

// expire runs fire unless a later Trigger or Cancel superseded gen. A timer
// that already fired when Stop was called lands here with a stale gen.
func (d *Debouncer) expire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen || !d.armed {
		d.mu.Unlock()
		return
	}
	d.armed = false
	d.timer = nil
	fire := d.fire
	d.mu.Unlock()

	if fire != nil {
		fire()
	}
}

// Cancel drops a pending call.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.gen++
	d.armed = false
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}

// Pending reports whether a call is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.armed
}

// Duration returns the debounce window.
func (d *Debouncer) Duration() time.Duration {
	return d.window
}
