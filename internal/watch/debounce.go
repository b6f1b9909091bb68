package watch

import (
	"sync"
	"time"
)

// debouncer delays a callback per key until no new events arrived for the
// settle duration. Rapid successive calls for the same key reset its timer.
type debouncer struct {
	mu       sync.Mutex
	timers   map[string]*time.Timer
	duration time.Duration
}

func newDebouncer(duration time.Duration) *debouncer {
	return &debouncer{
		timers:   make(map[string]*time.Timer),
		duration: duration,
	}
}

// Debounce schedules fn for key, replacing any pending call for that key.
func (d *debouncer) Debounce(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if t, ok := d.timers[key]; ok {
		t.Stop()
	}
	d.timers[key] = time.AfterFunc(d.duration, func() {
		d.mu.Lock()
		delete(d.timers, key)
		d.mu.Unlock()
		fn()
	})
}

// Pending returns the number of scheduled callbacks.
func (d *debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.timers)
}

// CancelAll stops every pending callback.
func (d *debouncer) CancelAll() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for key, t := range d.timers {
		t.Stop()
		delete(d.timers, key)
	}
}
