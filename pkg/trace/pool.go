package trace

// BlockIndex addresses a block inside a Pool. Indices are stable for the
// lifetime of the pool: an index always names the same block.
type BlockIndex uint32

// Pool is a densely indexed arena of blocks owned by one Trace. Tracks
// and indexes hold only BlockIndex values, never block pointers, so the
// pool is free to grow its backing slice without invalidating anything a
// Track or IForestIndex holds. A pointer returned by Block may be left
// pointing at the old backing array by a later Alloc.
type Pool[K any] struct {
	blocks []Block[K]
}

// NewPool returns an empty block pool.
func NewPool[K any]() *Pool[K] {
	return &Pool[K]{}
}

// Alloc appends a fresh, empty block and returns its index.
func (p *Pool[K]) Alloc() BlockIndex {
	i := BlockIndex(len(p.blocks))
	p.blocks = append(p.blocks, Block[K]{})
	return i
}

// Block returns a pointer to the block at i, for mutation by its owning
// Track or inspection by any reader.
func (p *Pool[K]) Block(i BlockIndex) *Block[K] {
	return &p.blocks[i]
}

// Len returns the number of blocks ever allocated from this pool.
func (p *Pool[K]) Len() int {
	return len(p.blocks)
}
