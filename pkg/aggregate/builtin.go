package aggregate

import "github.com/grafana/zoomline/pkg/trace"

// EventCountOps counts events. Its zero value (0) is the join identity,
// so IsEmpty can simply compare to zero.
func EventCountOps[K any]() Ops[K, int64] {
	return Ops[K, int64]{
		Empty:     func() int64 { return 0 },
		FromEvent: func(trace.Event[K]) int64 { return 1 },
		Join:      func(a, b int64) int64 { return a + b },
		IsEmpty:   func(a int64) bool { return a == 0 },
	}
}

// EventSumOps sums event timestamps. It exists mainly as a monoid
// sentinel for tests — a sum of timestamps has no real-world meaning,
// but it is cheap to check against hand-computed expectations.
func EventSumOps[K any]() Ops[K, uint64] {
	return Ops[K, uint64]{
		Empty:     func() uint64 { return 0 },
		FromEvent: func(ev trace.Event[K]) uint64 { return ev.Timestamp.Unpack() },
		Join:      func(a, b uint64) uint64 { return a + b },
		IsEmpty:   func(a uint64) bool { return a == 0 },
	}
}

// LongestEvent is the longest (by duration) of the events it covers, the
// earliest of them on a tie, or none. A nil pointer is the join identity — this is the
// aggregate the host timeline view queries to pick one representative
// event for a zoomed-out bucket or block.
type LongestEvent[K any] struct {
	Event *trace.Event[K]
}

func longestOf[K any](a, b *trace.Event[K]) *trace.Event[K] {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	case b.Duration.Unpack() > a.Duration.Unpack():
		return b
	default:
		return a
	}
}

// LongestEventOps builds the Ops dictionary for LongestEvent[K].
func LongestEventOps[K any]() Ops[K, LongestEvent[K]] {
	return Ops[K, LongestEvent[K]]{
		Empty: func() LongestEvent[K] { return LongestEvent[K]{} },
		FromEvent: func(ev trace.Event[K]) LongestEvent[K] {
			e := ev
			return LongestEvent[K]{Event: &e}
		},
		Join: func(a, b LongestEvent[K]) LongestEvent[K] {
			return LongestEvent[K]{Event: longestOf(a.Event, b.Event)}
		},
		FromBlock: func(block *trace.Block[K]) LongestEvent[K] {
			events := block.Events()
			if len(events) == 0 {
				return LongestEvent[K]{}
			}
			best := &events[0]
			for i := 1; i < len(events); i++ {
				if events[i].Duration.Unpack() > best.Duration.Unpack() {
					best = &events[i]
				}
			}
			e := *best
			return LongestEvent[K]{Event: &e}
		},
		IsEmpty: func(a LongestEvent[K]) bool { return a.Event == nil },
	}
}
