package pool

import "sync"

// BufferPool implements a pool of byte slices for efficient memory reuse
type BufferPool struct {
	pool sync.Pool
	size int
}

// NewBufferPool creates a new buffer pool with buffers of the specified capacity
func NewBufferPool(size int) *BufferPool {
	return &BufferPool{
		pool: sync.Pool{
			New: func() interface{} {
				buffer := make([]byte, 0, size)
				return &buffer
			},
		},
		size: size,
	}
}

// Get retrieves a buffer from the pool or creates a new one if none are available
func (bp *BufferPool) Get() *[]byte {
	return bp.pool.Get().(*[]byte)
}

// Put returns a buffer to the pool for reuse
func (bp *BufferPool) Put(buffer *[]byte) {
	// Reset buffer length but keep capacity
	*buffer = (*buffer)[:0]
	bp.pool.Put(buffer)
}

// Size returns the initial capacity of buffers created by the pool
func (bp *BufferPool) Size() int {
	return bp.size
}

// ChunkPool implements a pool of fixed-length byte slices used as read targets
type ChunkPool struct {
	pool      sync.Pool
	chunkSize int
}

// NewChunkPool creates a new chunk pool
func NewChunkPool(chunkSize int) *ChunkPool {
	return &ChunkPool{
		pool: sync.Pool{
			New: func() interface{} {
				chunk := make([]byte, chunkSize)
				return &chunk
			},
		},
		chunkSize: chunkSize,
	}
}

// Get retrieves a chunk from the pool
func (cp *ChunkPool) Get() *[]byte {
	chunk := cp.pool.Get().(*[]byte)
	// Restore full length in case the caller resliced it
	*chunk = (*chunk)[:cp.chunkSize]
	return chunk
}

// Put returns a chunk to the pool
func (cp *ChunkPool) Put(chunk *[]byte) {
	if cap(*chunk) < cp.chunkSize {
		return
	}
	cp.pool.Put(chunk)
}
