package iforest

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/grafana/zoomline/pkg/aggregate"
	"github.com/grafana/zoomline/pkg/nanos"
	"github.com/grafana/zoomline/pkg/trace"
)

func buildTrack(t *testing.T, n int) (*trace.Pool[int], *trace.Track[int]) {
	t.Helper()
	pool := trace.NewPool[int]()
	track := trace.NewTrack[int]()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < n; i++ {
		track.Push(pool, trace.Event[int]{
			Timestamp: nanos.New(uint64(i)),
			Duration:  nanos.New(uint64(rng.Intn(1000))),
		})
	}
	return pool, track
}

func TestLeafPositions(t *testing.T) {
	pool, track := buildTrack(t, 325)
	ops := aggregate.EventCountOps[int]()
	idx := Build(ops, track, pool)

	require.Equal(t, len(track.BlockLocations())*2, len(idx.Values()))
	for i, blockIdx := range track.BlockLocations() {
		want := aggregate.FromBlock(ops, pool.Block(blockIdx))
		require.Equal(t, want, idx.Values()[2*i])
	}
}

func TestRangeQueryEmptyRange(t *testing.T) {
	pool, track := buildTrack(t, 100)
	idx := Build(aggregate.EventCountOps[int](), track, pool)

	for k := 0; k <= idx.NumBlocks(); k++ {
		require.Equal(t, int64(0), idx.RangeQuery(k, k))
	}
}

func TestRangeQueryAssociativity(t *testing.T) {
	pool, track := buildTrack(t, 325)
	ops := aggregate.EventCountOps[int]()
	idx := Build(ops, track, pool)
	n := idx.NumBlocks()

	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 2000; i++ {
		a := rng.Intn(n + 1)
		c := a + rng.Intn(n+1-a)
		b := a + rng.Intn(c-a+1)

		whole := idx.RangeQuery(a, c)
		split := ops.Join(idx.RangeQuery(a, b), idx.RangeQuery(b, c))
		require.Equal(t, whole, split, "a=%d b=%d c=%d", a, b, c)
	}
}

// S1: range_query(lo..hi).count == sum of block lengths in [lo, hi).
func TestPropRangeQueryMatchesBlockLengthSum(t *testing.T) {
	pool, track := buildTrack(t, 325)
	idx := Build(aggregate.EventCountOps[int](), track, pool)
	n := idx.NumBlocks()

	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 100_000; i++ {
		lo := rng.Intn(n + 1)
		hi := lo + rng.Intn(n+1-lo)

		got := idx.RangeQuery(lo, hi)

		var want int64
		for _, blockIdx := range track.BlockLocations()[lo:hi] {
			want += int64(pool.Block(blockIdx).Len())
		}
		require.Equal(t, want, got, "failed for %d..%d", lo, hi)
	}
}

// S4: single block of 16 events at timestamps 0..15.
func TestSingleBlockRangeQuery(t *testing.T) {
	pool := trace.NewPool[int]()
	track := trace.NewTrack[int]()
	for i := 0; i < 16; i++ {
		track.Push(pool, trace.Event[int]{Timestamp: nanos.New(uint64(i))})
	}
	require.Len(t, track.BlockLocations(), 1)

	idx := Build(aggregate.EventCountOps[int](), track, pool)
	require.Equal(t, int64(16), idx.RangeQuery(0, 1))
}

// S5: durations [5, 2, 9, 1, 7] in one block; longest is duration 9.
func TestLongestEventRangeQuery(t *testing.T) {
	pool := trace.NewPool[int]()
	track := trace.NewTrack[int]()
	for i, d := range []uint64{5, 2, 9, 1, 7} {
		track.Push(pool, trace.Event[int]{
			Timestamp: nanos.New(uint64(i)),
			Duration:  nanos.New(d),
		})
	}

	idx := Build(aggregate.LongestEventOps[int](), track, pool)
	got := idx.RangeQuery(0, 1)
	require.NotNil(t, got.Event)
	require.Equal(t, uint64(9), got.Event.Duration.Unpack())
}
