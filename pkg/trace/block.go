package trace

// EventsPerBlock is the fixed inline capacity of a Block, chosen to
// amortize the binary search the bucketed driver uses for block skipping
// against the cost of scanning a straddling block event by event.
const EventsPerBlock = 16

// Block holds up to EventsPerBlock events inline, in arrival order.
// Blocks are append-only: once an event is pushed it is never reordered
// or removed, and a block is never emptied.
type Block[K any] struct {
	events [EventsPerBlock]Event[K]
	length int
}

// Len returns the number of events currently stored in the block.
func (b *Block[K]) Len() int {
	return b.length
}

// IsFull reports whether the block has reached its capacity. The block
// is full at length == EventsPerBlock, not at length >= 1 — a prior
// revision of this code treated any non-empty block as full, which would
// have forced a new block on every single push.
func (b *Block[K]) IsFull() bool {
	return b.length == EventsPerBlock
}

// Push appends ev to the block. The caller (Track) must not call Push on
// a full block; this is a programming-error precondition, not a runtime
// error.
func (b *Block[K]) Push(ev Event[K]) {
	if b.IsFull() {
		panic("trace: Push on a full block")
	}
	b.events[b.length] = ev
	b.length++
}

// Events returns the block's events in arrival order. The returned slice
// aliases the block's inline storage and must not be retained past the
// next mutation of the block (there is none, in practice, once the
// block leaves the writer's hands).
func (b *Block[K]) Events() []Event[K] {
	return b.events[:b.length]
}

// StartTime returns the unpacked timestamp of the earliest (index 0)
// event. It is only defined for non-empty blocks; Track never records a
// block index before that block has received its first event.
func (b *Block[K]) StartTime() uint64 {
	return b.events[0].Timestamp.Unpack()
}
