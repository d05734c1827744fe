package trace

// Track is one logical lane of events: an ordered list of block indices
// into a shared Pool. Events within a track are appended in
// monotonically non-decreasing timestamp order — the interval-forest
// index and the bucketed driver both depend on that invariant holding.
type Track[K any] struct {
	blockLocations []BlockIndex
}

// NewTrack returns an empty track.
func NewTrack[K any]() *Track[K] {
	return &Track[K]{}
}

// BlockLocations returns the track's block indices, in push order.
func (t *Track[K]) BlockLocations() []BlockIndex {
	return t.blockLocations
}

// Push records ev on the track, allocating a new block from pool if the
// last block is absent or already full.
func (t *Track[K]) Push(pool *Pool[K], ev Event[K]) {
	last := t.lastBlock(pool)
	pool.Block(last).Push(ev)
}

func (t *Track[K]) lastBlock(pool *Pool[K]) BlockIndex {
	if len(t.blockLocations) == 0 {
		return t.newBlock(pool)
	}
	last := t.blockLocations[len(t.blockLocations)-1]
	if pool.Block(last).IsFull() {
		return t.newBlock(pool)
	}
	return last
}

func (t *Track[K]) newBlock(pool *Pool[K]) BlockIndex {
	i := pool.Alloc()
	t.blockLocations = append(t.blockLocations, i)
	return i
}

// StartTime returns the timestamp of the track's first event, or false
// if the track is empty.
func (t *Track[K]) StartTime(pool *Pool[K]) (uint64, bool) {
	if len(t.blockLocations) == 0 {
		return 0, false
	}
	return pool.Block(t.blockLocations[0]).StartTime(), true
}

// EndTime returns the timestamp of the track's last event, or false if
// the track is empty.
func (t *Track[K]) EndTime(pool *Pool[K]) (uint64, bool) {
	ev, ok := t.lastEvent(pool)
	if !ok {
		return 0, false
	}
	return ev.Timestamp.Unpack(), true
}

// AfterLastTime returns the last event's timestamp plus its duration, or
// false if the track is empty.
func (t *Track[K]) AfterLastTime(pool *Pool[K]) (uint64, bool) {
	ev, ok := t.lastEvent(pool)
	if !ok {
		return 0, false
	}
	return ev.End(), true
}

func (t *Track[K]) lastEvent(pool *Pool[K]) (Event[K], bool) {
	if len(t.blockLocations) == 0 {
		return Event[K]{}, false
	}
	last := t.blockLocations[len(t.blockLocations)-1]
	events := pool.Block(last).Events()
	if len(events) == 0 {
		return Event[K]{}, false
	}
	return events[len(events)-1], true
}

// Events returns, in order, every event pushed to this track so far.
func (t *Track[K]) Events(pool *Pool[K]) []Event[K] {
	out := make([]Event[K], 0, len(t.blockLocations)*EventsPerBlock)
	for _, i := range t.blockLocations {
		out = append(out, pool.Block(i).Events()...)
	}
	return out
}
