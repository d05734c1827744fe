// Package trace holds the append-only event log: events packed into
// fixed-size blocks, blocks owned by a pool, and tracks that stitch pool
// blocks into one logical lane of monotonically ordered events.
package trace

import "github.com/grafana/zoomline/pkg/nanos"

// Event is one opaque occurrence on a track: a caller-supplied Kind
// (often an event/span id), a packed start timestamp, and a packed
// duration. Value semantics throughout — events are always copied, never
// referenced, once pushed into a block.
type Event[K any] struct {
	Kind      K
	Timestamp nanos.Packed
	Duration  nanos.Packed
}

// End returns the unpacked time at which the event's duration elapses,
// i.e. Timestamp.Unpack() + Duration.Unpack().
func (e Event[K]) End() nanos.Nanos {
	return e.Timestamp.Unpack() + e.Duration.Unpack()
}
