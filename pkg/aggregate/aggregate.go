// Package aggregate defines the monoid every interval-forest index and
// bucketed driver is built against: an identity value, a per-event lift,
// an associative join, and a bulk fold over a block.
//
// Go methods cannot themselves be generic, so a concrete aggregate (the
// A in Ops[K, A]) cannot implement a from-scratch constructor as an
// ordinary method the way an object-oriented language would. Ops is the
// dictionary of free functions that stands in for that: a tagged value,
// not a subclass, exactly as the aggregates this package builds
// (EventCount, EventSum, LongestEvent) are themselves plain values with
// no behavior of their own.
package aggregate

import "github.com/grafana/zoomline/pkg/trace"

// Ops is the capability set required to index and aggregate events of
// kind K into a value of type A.
//
//   - Empty is the join identity.
//   - FromEvent lifts a single event.
//   - Join combines two aggregates covering disjoint, contiguous ranges;
//     it must be associative but need not be commutative. Every caller in
//     this module composes Join left-to-right (earlier range first), so
//     order-sensitive aggregates (e.g. "first event wins") are safe.
//   - FromBlock is a bulk lift over every event in a block. It defaults
//     to folding Join over FromEvent starting from Empty (see Fold); set
//     it only to override that with something faster.
type Ops[K any, A any] struct {
	Empty     func() A
	FromEvent func(ev trace.Event[K]) A
	Join      func(a, b A) A
	FromBlock func(block *trace.Block[K]) A
	IsEmpty   func(a A) bool
}

// Fold is the default FromBlock: left-fold Join over FromEvent(ev) for
// every event in the block, starting from Empty. Any FromBlock override
// must agree with Fold for every finite block.
func Fold[K any, A any](ops Ops[K, A], block *trace.Block[K]) A {
	acc := ops.Empty()
	for _, ev := range block.Events() {
		acc = ops.Join(acc, ops.FromEvent(ev))
	}
	return acc
}

// FromBlock calls ops.FromBlock if set, else falls back to Fold.
func FromBlock[K any, A any](ops Ops[K, A], block *trace.Block[K]) A {
	if ops.FromBlock != nil {
		return ops.FromBlock(block)
	}
	return Fold(ops, block)
}
