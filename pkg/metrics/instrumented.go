package metrics

import (
	"github.com/grafana/zoomline"
	"github.com/grafana/zoomline/pkg/aggregate"
	"github.com/grafana/zoomline/pkg/driver"
	"github.com/grafana/zoomline/pkg/iforest"
	"github.com/grafana/zoomline/pkg/trace"
)

// InstrumentedTrace wraps a Trace, reporting block and track counts to
// the package-level collectors as it is built. It holds no state of its
// own; every method delegates straight to the wrapped Trace.
type InstrumentedTrace[K any] struct {
	*zoomline.Trace[K]
}

// NewInstrumentedTrace returns an empty, instrumented trace.
func NewInstrumentedTrace[K any]() *InstrumentedTrace[K] {
	return &InstrumentedTrace[K]{Trace: zoomline.New[K]()}
}

// NewTrack allocates a track and increments ActiveTracks.
func (t *InstrumentedTrace[K]) NewTrack() *zoomline.TrackInfo[K] {
	ActiveTracks.Inc()
	return t.Trace.NewTrack()
}

// Push appends ev to track, reporting any newly allocated block and any
// newly indexed block to BlocksAllocated and IndexPushes.
func (t *InstrumentedTrace[K]) Push(track *zoomline.TrackInfo[K], ev trace.Event[K]) {
	blocksBefore := len(track.Track.BlockLocations())
	indexedBefore := track.ZoomIndex.NumBlocks()

	t.Trace.Push(track, ev)

	if grew := len(track.Track.BlockLocations()) - blocksBefore; grew > 0 {
		BlocksAllocated.Add(float64(grew))
	}
	if indexed := track.ZoomIndex.NumBlocks() - indexedBefore; indexed > 0 {
		IndexPushes.Add(float64(indexed))
	}
}

// Finalize indexes track's remaining blocks, reporting them to
// IndexPushes.
func (t *InstrumentedTrace[K]) Finalize(track *zoomline.TrackInfo[K]) {
	indexedBefore := track.ZoomIndex.NumBlocks()
	t.Trace.Finalize(track)
	if indexed := track.ZoomIndex.NumBlocks() - indexedBefore; indexed > 0 {
		IndexPushes.Add(float64(indexed))
	}
}

// RangeQuery runs idx.RangeQuery(lo, hi) and reports it to
// RangeQueriesServed.
func RangeQuery[K any, A any](idx *iforest.Index[K, A], lo, hi int) A {
	RangeQueriesServed.Inc()
	return idx.RangeQuery(lo, hi)
}

// AggregateBySteps runs driver.AggregateBySteps and reports the number
// of buckets it produced to BucketsEmitted{driver="indexed"}.
func AggregateBySteps[K any, A any](
	ops aggregate.Ops[K, A],
	pool *trace.Pool[K],
	blockLocations []trace.BlockIndex,
	index *iforest.Index[K, A],
	t0, t1, step uint64,
	gate driver.GateEmpty,
	keep driver.Keep[A],
) []A {
	out := driver.AggregateBySteps(ops, pool, blockLocations, index, t0, t1, step, gate, keep)
	BucketsEmitted.WithLabelValues("indexed").Add(float64(len(out)))
	return out
}

// AggregateByStepsUnindexed runs driver.AggregateByStepsUnindexed and
// reports the number of buckets it produced to
// BucketsEmitted{driver="unindexed"}.
func AggregateByStepsUnindexed[K any, A any](
	ops aggregate.Ops[K, A],
	pool *trace.Pool[K],
	blockLocations []trace.BlockIndex,
	t0, t1, step uint64,
	gate driver.GateEmpty,
	keep driver.Keep[A],
) []A {
	out := driver.AggregateByStepsUnindexed(ops, pool, blockLocations, t0, t1, step, gate, keep)
	BucketsEmitted.WithLabelValues("unindexed").Add(float64(len(out)))
	return out
}
