// Package lifecycle bridges corpus change events into the generic
// lifecycle event stream, so applications supervising bindery alongside
// other components see one unified feed.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/bindery/pkg/core"
)

type corpusSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source that emits corpus events.
// It bridges the typed bindery event channel to the generic lifecycle Event interface.
func NewSource(events <-chan core.Event) lifecycle.Source {
	return &corpusSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
}

func (s *corpusSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *corpusSource) Start(ctx context.Context) error {
	// The bridge goroutine itself is tracked by lifecycle.Go.
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				// core.Event implements lifecycle.Event (has String())
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}
