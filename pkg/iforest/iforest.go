// Package iforest implements the interval-forest index: a per-track,
// per-aggregate structure that answers range queries over a track's
// blocks in O(log n), built by appending one leaf per block.
//
//	                #
//	________________|
//	________|_______|   #
//	____|___|___|___|___|
//	0 | 1 | 2 | 3 | 4 | 5 | 6 | 7 | 8 | 9
//
// values interleaves leaves (even positions, one per block) with
// aggregation nodes (odd positions, each summarizing a power-of-two
// span of blocks ending at that leaf). Only the tree's right spine is
// ever materialized; the interior is implicit and reconstructed by the
// query walk.
package iforest

import (
	"github.com/grafana/zoomline/pkg/aggregate"
	"github.com/grafana/zoomline/pkg/trace"
)

// Index is a single growable array of aggregates, indexed in lockstep
// with a track's block sequence.
type Index[K any, A any] struct {
	ops    aggregate.Ops[K, A]
	values []A
}

// New returns an empty index for the given aggregate.
func New[K any, A any](ops aggregate.Ops[K, A]) *Index[K, A] {
	return &Index[K, A]{ops: ops}
}

// Build constructs an index over every block currently recorded by
// track, in order. Equivalent to calling Push once per block.
func Build[K any, A any](ops aggregate.Ops[K, A], track *trace.Track[K], pool *trace.Pool[K]) *Index[K, A] {
	idx := New(ops)
	for _, i := range track.BlockLocations() {
		idx.Push(pool.Block(i))
	}
	return idx
}

// Values exposes the raw interleaved leaf/aggregation-node array, for
// tests that check the layout invariants directly.
func (idx *Index[K, A]) Values() []A {
	return idx.values
}

// NumBlocks returns how many blocks have been pushed.
func (idx *Index[K, A]) NumBlocks() int {
	return len(idx.values) / 2
}

// trailingOnes counts the number of trailing 1 bits in x.
func trailingOnes(x int) int {
	n := 0
	for x&1 == 1 {
		n++
		x >>= 1
	}
	return n
}

// Push appends the aggregate of block to the index. Amortized O(1),
// worst case O(log n).
func (idx *Index[K, A]) Push(block *trace.Block[K]) {
	idx.values = append(idx.values, aggregate.FromBlock(idx.ops, block))

	length := len(idx.values)
	// Every 2 nodes we complete a level-0 aggregation node, every 4 a
	// level-1 node, and so on — which is exactly the number of trailing
	// one bits in the new length.
	levelsToIndex := trailingOnes(length) - 1

	cur := length - 1 // the leaf just pushed
	for level := 0; level < levelsToIndex; level++ {
		prev := cur - (1 << uint(level))
		idx.values[prev] = idx.ops.Join(idx.values[prev], idx.values[cur])
		cur = prev
	}

	// Reserve the next aggregation-node slot. Its value is transiently
	// the leftmost leaf absorbed so far at this level; later pushes
	// overwrite it as they complete higher levels. A query landing on
	// this slot before it is complete still sees the aggregate of every
	// block inserted into its span so far, which is all range_query ever
	// asks for.
	idx.values = append(idx.values, idx.values[length-(1<<uint(levelsToIndex))])
}

func leftChildAt(node, level int) bool {
	return (node>>uint(level))&1 == 0
}

func skip(level int) int {
	return 2 << uint(level)
}

func aggNode(node, level int) int {
	return node + (1 << uint(level)) - 1
}

// Sync pushes every block in blockLocations that is certainly complete
// (every block except the last) and not yet indexed. It is safe to call
// after every single event push: most calls find nothing new to index
// and do O(1) work. The last block is deliberately left out — it may
// still be receiving events — so callers always fall back to an
// event-by-event scan of it, per the bucketed driver's contract.
func (idx *Index[K, A]) Sync(pool *trace.Pool[K], blockLocations []trace.BlockIndex) {
	for idx.NumBlocks() < len(blockLocations)-1 {
		idx.Push(pool.Block(blockLocations[idx.NumBlocks()]))
	}
}

// Finalize pushes every remaining block in blockLocations, including the
// last one. Call this once a track is frozen (no more events will be
// pushed to it) so that range queries can cover the whole track without
// falling back to the driver's event-level scan.
func (idx *Index[K, A]) Finalize(pool *trace.Pool[K], blockLocations []trace.BlockIndex) {
	for idx.NumBlocks() < len(blockLocations) {
		idx.Push(pool.Block(blockLocations[idx.NumBlocks()]))
	}
}

// RangeQuery returns Join of the leaves [lo, hi) in increasing order,
// starting from Empty. hi == lo yields Empty. Preconditions:
// 0 <= lo <= hi <= NumBlocks(); violating them is a programming error.
func (idx *Index[K, A]) RangeQuery(lo, hi int) A {
	if lo < 0 || hi < lo || hi > idx.NumBlocks() {
		panic("iforest: range not inside 0..NumBlocks()")
	}

	start := lo * 2
	end := hi * 2

	combined := idx.ops.Empty()
	for start < end {
		// Find the highest level where we're on the left edge of that
		// level's span and the span still fits within the range.
		upLevel := 1
		for leftChildAt(start, upLevel) && start+skip(upLevel) <= end {
			upLevel++
		}
		level := upLevel - 1

		combined = idx.ops.Join(combined, idx.values[aggNode(start, level)])
		start += skip(level)
	}

	return combined
}
