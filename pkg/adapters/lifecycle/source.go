// Package lifecycle bridges note store change events into aretw0/lifecycle.
package lifecycle

import (
	"context"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/jot/pkg/core"
)

// redrawSource turns store events into redraw signals for one note list.
//
// Only events for its key pass. At most one signal is pending: while the
// consumer has not taken it, later changes are folded into it, since a
// redraw reads the whole list anyway.
type redrawSource struct {
	events <-chan core.Event
	key    string
	out    chan lifecycle.Event
}

// NewSource creates a lifecycle.Source emitting the core.Event values of
// events that concern key. An empty key lets every event through.
// The source closes its output when events closes or the context ends.
func NewSource(events <-chan core.Event, key string) lifecycle.Source {
	return &redrawSource{
		events: events,
		key:    key,
		out:    make(chan lifecycle.Event, 1),
	}
}

func (s *redrawSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *redrawSource) Start(ctx context.Context) error {
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
				if s.key != "" && e.Key != s.key {
					continue
				}
				select {
				case s.out <- e:
				default:
					// pending signal already covers this change
				}
			}
		}
	})
	return nil
}
