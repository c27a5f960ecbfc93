package search

import (
	"sync"
	"time"
)

// Debouncer delays an action until a quiet interval has passed since the last
// call to Schedule. Only the most recently scheduled action can ever run.
type Debouncer struct {
	quiet time.Duration

	mu       sync.Mutex
	timer    *time.Timer
	gen      uint64 // bumped on every Schedule and Dispose
	disposed bool
}

// NewDebouncer creates a debouncer with the given quiet interval
func NewDebouncer(quiet time.Duration) *Debouncer {
	if quiet < 0 {
		quiet = 0
	}
	return &Debouncer{quiet: quiet}
}

// Quiet returns the configured quiet interval
func (d *Debouncer) Quiet() time.Duration {
	return d.quiet
}

// Schedule replaces any pending action with action, due after the quiet interval
func (d *Debouncer) Schedule(action func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.disposed {
		return
	}

	d.stopLocked()
	d.gen++
	gen := d.gen

	d.timer = time.AfterFunc(d.quiet, func() {
		// A timer that already fired can still lose the race against Stop,
		// so the generation decides whether this action is still current.
		d.mu.Lock()
		if d.disposed || gen != d.gen {
			d.mu.Unlock()
			return
		}
		d.timer = nil
		d.mu.Unlock()

		action()
	})
}

// Pending reports whether an action is waiting for its deadline
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.timer != nil
}

// Cancel drops the pending action, if any. The debouncer stays usable.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopLocked()
	d.gen++
}

// Dispose cancels the pending action and stops accepting new ones
func (d *Debouncer) Dispose() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.disposed {
		return
	}
	d.stopLocked()
	d.gen++
	d.disposed = true
}

func (d *Debouncer) stopLocked() {
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
