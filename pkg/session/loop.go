package session

import (
	"context"

	"src.liveui.sh/pkg/input"
)

// Run runs the main loop until ctx is done or events is closed, and returns
// ctx.Err() or nil respectively.
//
// It calls redraw once with the initial Pass, and then once after each batch
// of events: all events already queued are consumed before redrawing.
// Passes with nothing to redraw are skipped. Rebuilds requested with
// RequestRebuild are done between batches.
//
// Run is fully serial: it does not spawn any goroutines, and redraw is always
// called from the goroutine calling Run.
func (s *Session[S]) Run(ctx context.Context, events <-chan input.Event, redraw func(Pass)) error {
	redraw(s.Flush())
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				s.redrawIfNeeded(redraw)
				return nil
			}
			// Consume all events in the channel to minimize redraws.
		consumeAllEvents:
			for {
				s.handle(ev)
				select {
				case ev, ok = <-events:
					if !ok {
						s.redrawIfNeeded(redraw)
						return nil
					}
				default:
					break consumeAllEvents
				}
			}
		case <-s.rebuildCh:
			if src := s.extractRebuildSrc(); src != nil {
				// Errors are logged by Rebuild.
				_ = s.Rebuild(src)
			}
		case <-ctx.Done():
			return ctx.Err()
		}
		s.redrawIfNeeded(redraw)
	}
}

func (s *Session[S]) redrawIfNeeded(redraw func(Pass)) {
	if p := s.Flush(); !p.Empty() || len(p.Actions) > 0 {
		redraw(p)
	}
}
