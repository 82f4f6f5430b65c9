package core

import (
	"context"

	"github.com/aretw0/lifecycle"
)

// broker decouples event producers from consumers with a buffered channel.
// If the buffer fills up (consumer far behind), the oldest event is dropped
// to keep the producer moving.
type broker struct {
	buffer int
}

func newBroker(buffer int) *broker {
	return &broker{buffer: buffer}
}

// pump copies events from upstream into a buffered downstream channel.
// The goroutine is tracked by lifecycle and exits when ctx is done or
// upstream closes.
func (b *broker) pump(ctx context.Context, upstream <-chan Event) <-chan Event {
	out := make(chan Event, b.buffer)

	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-upstream:
				if !ok {
					return nil
				}
				select {
				case out <- e:
				default:
					// Buffer full. Drop the oldest event to make room.
					select {
					case <-out:
					default:
					}
					select {
					case out <- e:
					default:
					}
				}
			}
		}
	})

	return out
}
