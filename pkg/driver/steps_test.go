package driver

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grafana/zoomline/pkg/aggregate"
	"github.com/grafana/zoomline/pkg/iforest"
	"github.com/grafana/zoomline/pkg/nanos"
	"github.com/grafana/zoomline/pkg/trace"
)

// S2: a dense bucket grid, zero-valued buckets included.
func TestAggregateByStepsDenseGrid(t *testing.T) {
	pool := trace.NewPool[int]()
	track := trace.NewTrack[int]()
	for _, ts := range []uint64{10, 15, 20, 100, 101, 150, 170} {
		track.Push(pool, trace.Event[int]{Timestamp: nanos.New(ts)})
	}

	ops := aggregate.EventSumOps[int]()
	got := AggregateByStepsUnindexed(ops, pool, track.BlockLocations(), 13, 150, 10, EmitEmpty, AlwaysKeep[uint64])

	want := []uint64{10, 35, 0, 0, 0, 0, 0, 0, 0, 201, 0, 0, 0, 0, 150}
	require.Equal(t, want, got)
}

func TestAggregateByStepsSuppressesEmptyByDefault(t *testing.T) {
	pool := trace.NewPool[int]()
	track := trace.NewTrack[int]()
	for _, ts := range []uint64{10, 15, 20, 100, 101, 150, 170} {
		track.Push(pool, trace.Event[int]{Timestamp: nanos.New(ts)})
	}

	ops := aggregate.EventSumOps[int]()
	got := AggregateByStepsUnindexed(ops, pool, track.BlockLocations(), 13, 150, 10, SuppressEmpty, AlwaysKeep[uint64])

	require.Equal(t, []uint64{10, 35, 201, 150}, got)
}

// S3 / invariant 5: indexed and unindexed drivers agree element-by-element
// over many random windows and step sizes.
func TestPropAggregateByStepsMatchesUnindexed(t *testing.T) {
	pool := trace.NewPool[int]()
	track := trace.NewTrack[int]()
	rng := rand.New(rand.NewSource(4))

	ts := uint64(0)
	for i := 0; i < 325; i++ {
		ts += uint64(rng.Intn(5))
		track.Push(pool, trace.Event[int]{Timestamp: nanos.New(ts)})
	}
	maxTs := ts

	ops := aggregate.EventSumOps[int]()
	index := iforest.Build(ops, track, pool)
	locations := track.BlockLocations()

	for i := 0; i < 100_000; i++ {
		t0 := uint64(rng.Intn(int(maxTs) + 2))
		t1 := t0 + uint64(rng.Intn(int(maxTs)+2))
		step := uint64(rng.Intn(20)) + 1

		indexed := AggregateBySteps(ops, pool, locations, index, t0, t1, step, EmitEmpty, AlwaysKeep[uint64])
		unindexed := AggregateByStepsUnindexed(ops, pool, locations, t0, t1, step, EmitEmpty, AlwaysKeep[uint64])

		require.Equal(t, unindexed, indexed, "t0=%d t1=%d step=%d", t0, t1, step)
	}
}

// Invariant 6: the dense grid emits one bucket per grid point in
// [t0, t1], including the final boundary bucket, and never counts an
// event whose own bucket is reached only by the window's closing return.
func TestPropBucketGrid(t *testing.T) {
	pool := trace.NewPool[int]()
	track := trace.NewTrack[int]()
	for _, ts := range []uint64{3, 3, 3, 50} {
		track.Push(pool, trace.Event[int]{Timestamp: nanos.New(ts)})
	}

	ops := aggregate.EventCountOps[int]()
	got := AggregateByStepsUnindexed(ops, pool, track.BlockLocations(), 0, 50, 10, EmitEmpty, AlwaysKeep[int64])

	require.Equal(t, []int64{0, 3, 0, 0, 0, 0}, got)
}

// t1 <= t0 emits at most one value. Here the only event lies before t0,
// so the stepping loop never runs and the single value comes from the
// trailing flush.
func TestAggregateByStepsEmptyWindowEmitsOnlyTrailingFlush(t *testing.T) {
	pool := trace.NewPool[int]()
	track := trace.NewTrack[int]()
	track.Push(pool, trace.Event[int]{Timestamp: nanos.New(5)})

	ops := aggregate.EventCountOps[int]()
	got := AggregateByStepsUnindexed(ops, pool, track.BlockLocations(), 10, 5, 1, SuppressEmpty, AlwaysKeep[int64])
	require.Equal(t, []int64{1}, got)
}
