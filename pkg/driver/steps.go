// Package driver turns a visible time window and a pixel-quantization
// step into a sequence of per-bucket aggregates, by mixing
// interval-forest index jumps over whole blocks with an event-by-event
// scan of the block straddling each bucket boundary.
package driver

import (
	"sort"

	"github.com/grafana/zoomline/pkg/aggregate"
	"github.com/grafana/zoomline/pkg/iforest"
	"github.com/grafana/zoomline/pkg/trace"
)

// Keep decides whether a produced bucket aggregate is emitted, on top of
// whatever GateEmpty already filtered.
type Keep[A any] func(a A) bool

// AlwaysKeep emits every bucket GateEmpty lets through.
func AlwaysKeep[A any](A) bool { return true }

// NonEmpty builds a Keep that also rejects empty aggregates. Redundant
// with GateEmpty(true), but handy when a caller already has a Keep of
// their own and wants the same bypass logic folded in.
func NonEmpty[K any, A any](ops aggregate.Ops[K, A]) Keep[A] {
	return func(a A) bool { return !ops.IsEmpty(a) }
}

// GateEmpty controls whether empty bucket aggregates are suppressed
// before Keep is even consulted. The reference implementation this
// package is ported from always suppressed empty buckets, but callers
// that want a dense bucket grid (one value per step, zero-valued gaps
// included) need to see them — pass gateEmpty = false and a Keep of
// AlwaysKeep for that.
type GateEmpty bool

const (
	// SuppressEmpty drops empty aggregates before Keep runs: the
	// conventional "only emit buckets with real data" mode.
	SuppressEmpty GateEmpty = true
	// EmitEmpty passes every bucket's aggregate to Keep, empty or not.
	EmitEmpty GateEmpty = false
)

func emit[A any](produced A, isEmpty bool, gate GateEmpty, keep Keep[A]) bool {
	if bool(gate) && isEmpty {
		return false
	}
	return keep(produced)
}

// AggregateBySteps walks the bucket grid t0, t0+step, t0+2*step, ...,
// using index to skip whole block ranges that provably lie before the
// next bucket boundary and falling back to an event-by-event scan of the
// block that straddles it. The first value aggregates every event before
// t0; value k (k >= 1) aggregates the events in
// [t0+(k-1)*step, t0+k*step). The run returns at the first event at or
// past a boundary that is itself >= t1, without a trailing flush; if the
// events run out first, the open bucket is flushed as the last value.
//
// step must be >= 1; callers are responsible for that, passing 0 does
// not terminate. t1 <= t0 emits at most the leading flush.
func AggregateBySteps[K any, A any](
	ops aggregate.Ops[K, A],
	pool *trace.Pool[K],
	blockLocations []trace.BlockIndex,
	index *iforest.Index[K, A],
	t0, t1, step uint64,
	gate GateEmpty,
	keep Keep[A],
) []A {
	var out []A

	blockIdx := 0
	target := t0
	combined := ops.Empty()

	for blockIdx < len(blockLocations) {
		// Coarse skip: find the last block whose start_time is still
		// below target, via a lower-bound search over the remaining
		// blocks keyed on start_time.
		remaining := blockLocations[blockIdx:]
		searchResult := sort.Search(len(remaining), func(i int) bool {
			return pool.Block(remaining[i]).StartTime() >= target
		})

		if searchResult > 1 {
			skip := searchResult - 1
			combined = ops.Join(combined, index.RangeQuery(blockIdx, blockIdx+skip))
			blockIdx += skip
		}

		block := pool.Block(blockLocations[blockIdx])
		for _, ev := range block.Events() {
			eventTime := ev.Timestamp.Unpack()

			for eventTime >= target {
				produced := combined
				combined = ops.Empty()
				if emit(produced, ops.IsEmpty(produced), gate, keep) {
					out = append(out, produced)
				}

				if target >= t1 {
					// Matches the reference driver exactly: once the
					// grid runs past the window there is no trailing
					// flush, the run simply ends here.
					return out
				}
				target += step
			}

			combined = ops.Join(combined, ops.FromEvent(ev))
		}

		blockIdx++
	}

	if emit(combined, ops.IsEmpty(combined), gate, keep) {
		out = append(out, combined)
	}

	return out
}

// AggregateByStepsUnindexed has the same contract as AggregateBySteps
// without the coarse index skip: purely event-by-event. It exists to
// validate AggregateBySteps by equality.
func AggregateByStepsUnindexed[K any, A any](
	ops aggregate.Ops[K, A],
	pool *trace.Pool[K],
	blockLocations []trace.BlockIndex,
	t0, t1, step uint64,
	gate GateEmpty,
	keep Keep[A],
) []A {
	var out []A

	target := t0
	combined := ops.Empty()

	for _, blockIdx := range blockLocations {
		block := pool.Block(blockIdx)
		for _, ev := range block.Events() {
			eventTime := ev.Timestamp.Unpack()

			for eventTime >= target {
				produced := combined
				combined = ops.Empty()
				if emit(produced, ops.IsEmpty(produced), gate, keep) {
					out = append(out, produced)
				}

				if target >= t1 {
					return out
				}
				target += step
			}

			combined = ops.Join(combined, ops.FromEvent(ev))
		}
	}

	if emit(combined, ops.IsEmpty(combined), gate, keep) {
		out = append(out, combined)
	}

	return out
}
