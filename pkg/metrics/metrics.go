// Package metrics exposes Prometheus instrumentation for the core, kept
// entirely outside it: the pool, track, and index types never import
// this package, so a host that doesn't register a collector pays
// nothing and sees no metrics surface at all.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BlocksAllocated counts blocks allocated by pushes through an
	// InstrumentedTrace, across every such trace in this process.
	BlocksAllocated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "zoomline",
		Name:      "blocks_allocated_total",
		Help:      "Total number of blocks allocated from block pools.",
	})

	// IndexPushes counts blocks folded into an InstrumentedTrace's zoom
	// indexes.
	IndexPushes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "zoomline",
		Name:      "index_pushes_total",
		Help:      "Total number of blocks pushed into interval-forest indexes.",
	})

	// RangeQueriesServed counts calls to this package's RangeQuery
	// wrapper.
	RangeQueriesServed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "zoomline",
		Name:      "range_queries_total",
		Help:      "Total number of range queries served by interval-forest indexes.",
	})

	// BucketsEmitted counts aggregate buckets produced by the stepped
	// driver, labeled by whether the indexed or unindexed path ran.
	BucketsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "zoomline",
		Name:      "buckets_emitted_total",
		Help:      "Total number of buckets emitted by aggregate_by_steps.",
	}, []string{"driver"})

	// ActiveTracks reports how many tracks are currently registered
	// with an instrumented trace.
	ActiveTracks = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "zoomline",
		Name:      "active_tracks",
		Help:      "Number of tracks currently held by instrumented traces.",
	})
)
