// Package zoomline ties the block pool, tracks, and per-track indexes
// together into the top-level container a host timeline view holds: one
// pool shared by every track, plus one interval-forest index per track
// kept in lockstep for the aggregate the view actually zooms with
// (LongestEvent).
package zoomline

import (
	"github.com/grafana/zoomline/pkg/aggregate"
	"github.com/grafana/zoomline/pkg/iforest"
	"github.com/grafana/zoomline/pkg/trace"
)

// TrackInfo pairs a raw Track with the zoom index the host view queries
// to pick one representative event per zoomed-out bucket.
type TrackInfo[K any] struct {
	Track     *trace.Track[K]
	ZoomIndex *iforest.Index[K, aggregate.LongestEvent[K]]
}

// Trace owns one block pool and every track built on top of it.
type Trace[K any] struct {
	Pool   *trace.Pool[K]
	Tracks []*TrackInfo[K]
}

// New returns an empty trace.
func New[K any]() *Trace[K] {
	return &Trace[K]{Pool: trace.NewPool[K]()}
}

// NewTrack allocates a new, empty track on this trace's pool and returns
// it along with its (currently empty) zoom index.
func (t *Trace[K]) NewTrack() *TrackInfo[K] {
	info := &TrackInfo[K]{
		Track:     trace.NewTrack[K](),
		ZoomIndex: iforest.New[K](aggregate.LongestEventOps[K]()),
	}
	t.Tracks = append(t.Tracks, info)
	return info
}

// Push appends ev to track and syncs its zoom index over any block that
// just became complete. The zoom index always lags by exactly the
// current (possibly still-open) block — call Finalize once no more
// events will be pushed to cover it too.
func (t *Trace[K]) Push(track *TrackInfo[K], ev trace.Event[K]) {
	track.Track.Push(t.Pool, ev)
	track.ZoomIndex.Sync(t.Pool, track.Track.BlockLocations())
}

// Finalize indexes every remaining block of track, including the
// current open one. Call this once a track will receive no more events,
// before running range queries or bucketed aggregation over its full
// span.
func (t *Trace[K]) Finalize(track *TrackInfo[K]) {
	track.ZoomIndex.Finalize(t.Pool, track.Track.BlockLocations())
}

// BuildIndex constructs a fresh index for any aggregate over track's
// current blocks, for a host that wants more than the zoom index already
// maintained above (e.g. EventCount or EventSum over the same track).
func BuildIndex[K any, A any](ops aggregate.Ops[K, A], pool *trace.Pool[K], track *trace.Track[K]) *iforest.Index[K, A] {
	return iforest.Build(ops, track, pool)
}

// TimeBounds returns [min over tracks of first event timestamp, max over
// tracks of last event timestamp + duration), or false if every track is
// empty.
func (t *Trace[K]) TimeBounds() (start, end uint64, ok bool) {
	haveStart, haveEnd := false, false

	for _, info := range t.Tracks {
		if s, trackOK := info.Track.StartTime(t.Pool); trackOK {
			if !haveStart || s < start {
				start = s
				haveStart = true
			}
		}
		if e, trackOK := info.Track.AfterLastTime(t.Pool); trackOK {
			if !haveEnd || e > end {
				end = e
				haveEnd = true
			}
		}
	}

	return start, end, haveStart && haveEnd
}
