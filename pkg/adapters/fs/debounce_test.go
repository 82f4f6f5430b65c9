package fs

import (
	"sync"
	"testing"
	"time"

	"github.com/aretw0/bindery/pkg/core"
)

func TestDebouncer_CollapsesBurst(t *testing.T) {
	d := newDebouncer(30 * time.Millisecond)

	var mu sync.Mutex
	var delivered []core.Event
	deliver := func(e core.Event) {
		mu.Lock()
		delivered = append(delivered, e)
		mu.Unlock()
	}

	for i := 0; i < 5; i++ {
		d.add(core.Event{ID: "go/a", Type: core.EventModify}, deliver)
		time.Sleep(5 * time.Millisecond)
	}
	d.add(core.Event{ID: "go/b", Type: core.EventCreate}, deliver)

	time.Sleep(100 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(delivered) != 2 {
		t.Fatalf("expected 2 delivered events (one per document), got %d: %+v", len(delivered), delivered)
	}
	seen := map[string]bool{}
	for _, e := range delivered {
		seen[e.ID] = true
	}
	if !seen["go/a"] || !seen["go/b"] {
		t.Errorf("expected one event per document, got %+v", delivered)
	}
}

// TestDebouncer_RescheduleWhileFiring races a reschedule for the same
// document against its already-fired timer callback. The callback is parked
// on the mutex while add runs, so add must not balance the WaitGroup for it
// (the counter would go negative) and the stale event must not be delivered
// as the latest one.
func TestDebouncer_RescheduleWhileFiring(t *testing.T) {
	for i := 0; i < 25; i++ {
		d := newDebouncer(2 * time.Millisecond)

		var mu sync.Mutex
		var delivered []core.Event
		deliver := func(e core.Event) {
			mu.Lock()
			delivered = append(delivered, e)
			mu.Unlock()
		}

		d.add(core.Event{ID: "go/a", Type: core.EventModify, Timestamp: 1}, deliver)

		// Hold the debouncer lock past the window so the fired callback
		// blocks, then let a reschedule and the callback race for it.
		d.mu.Lock()
		time.Sleep(10 * time.Millisecond)
		done := make(chan struct{})
		go func() {
			d.add(core.Event{ID: "go/a", Type: core.EventModify, Timestamp: 2}, deliver)
			close(done)
		}()
		time.Sleep(time.Millisecond)
		d.mu.Unlock()
		<-done

		deadline := time.Now().Add(2 * time.Second)
		for {
			mu.Lock()
			n := len(delivered)
			var last core.Event
			if n > 0 {
				last = delivered[n-1]
			}
			mu.Unlock()
			if n > 0 && last.Timestamp == 2 {
				break
			}
			if time.Now().After(deadline) {
				t.Fatalf("rescheduled event never delivered, got %+v", delivered)
			}
			time.Sleep(2 * time.Millisecond)
		}

		d.stopAndWait(time.Second)
	}
}

func TestDebouncer_StopDropsPending(t *testing.T) {
	d := newDebouncer(50 * time.Millisecond)

	var mu sync.Mutex
	count := 0
	deliver := func(core.Event) {
		mu.Lock()
		count++
		mu.Unlock()
	}

	d.add(core.Event{ID: "go/a"}, deliver)
	d.stopAndWait(time.Second)

	// Events added after stop are ignored.
	d.add(core.Event{ID: "go/b"}, deliver)

	time.Sleep(100 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if count != 0 {
		t.Errorf("expected no deliveries after stop, got %d", count)
	}
}
