package fs

import (
	"sync"
	"time"

	"github.com/aretw0/bindery/pkg/core"
)

// debouncer collapses rapid successive events for the same document.
// Editors typically fire several writes per save; only the last one within
// the window is delivered.
type debouncer struct {
	window  time.Duration
	mu      sync.Mutex
	timers  map[string]*time.Timer
	wg      sync.WaitGroup
	stopped bool
}

func newDebouncer(window time.Duration) *debouncer {
	return &debouncer{
		window: window,
		timers: make(map[string]*time.Timer),
	}
}

// add schedules delivery of the event after the debounce window.
// A newer event for the same document resets the timer.
func (d *debouncer) add(e core.Event, deliver func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	key := e.ID
	if timer, ok := d.timers[key]; ok {
		// Stop reports false when the timer already fired; its callback is
		// then parked on d.mu and will run its own Done and detect that it
		// was superseded. Balancing the counter here too would double-count.
		if timer.Stop() {
			d.wg.Done()
		}
		delete(d.timers, key)
	}

	d.wg.Add(1)
	var t *time.Timer
	t = time.AfterFunc(d.window, func() {
		defer d.wg.Done()

		d.mu.Lock()
		superseded := d.timers[key] != t
		if !superseded {
			delete(d.timers, key)
		}
		stopped := d.stopped
		d.mu.Unlock()

		if !superseded && !stopped {
			deliver(e)
		}
	})
	d.timers[key] = t
}

// stopAndWait stops accepting events and waits for in-flight timers.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for key, timer := range d.timers {
		if timer.Stop() {
			d.wg.Done()
		}
		delete(d.timers, key)
	}
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(timeout):
	}
}
