package encoding

import (
	"bytes"
	"log/slog"
)

// maxRetainedBytes is the largest buffer the pool keeps. Bigger ones are
// dropped on return so one oversized response cannot pin memory.
const maxRetainedBytes = 1 << 20

// BufferPool manages a bounded pool of byte buffers reused across response
// capture and compression staging.
type BufferPool struct {
	pool chan *bytes.Buffer
	size int
}

// NewBufferPool creates a new buffer pool with the specified capacity
func NewBufferPool(size int) *BufferPool {
	if size <= 0 {
		size = 16
	}

	pool := make(chan *bytes.Buffer, size)
	for i := 0; i < size; i++ {
		pool <- &bytes.Buffer{}
	}

	return &BufferPool{
		pool: pool,
		size: size,
	}
}

// Get retrieves an empty buffer from the pool
func (bp *BufferPool) Get() *bytes.Buffer {
	select {
	case buf := <-bp.pool:
		return buf
	default:
		// Pool exhausted, allocate a fresh buffer
		slog.Debug("Buffer pool exhausted, allocating new buffer")
		return &bytes.Buffer{}
	}
}

// Put returns a buffer to the pool. Callers must not touch the buffer
// afterwards; the bytes it held are reused.
func (bp *BufferPool) Put(buf *bytes.Buffer) {
	if buf == nil || buf.Cap() > maxRetainedBytes {
		return
	}

	buf.Reset()

	select {
	case bp.pool <- buf:
		// Successfully returned to pool
	default:
		// Pool full, discard buffer
	}
}

// Stats returns buffer pool statistics
func (bp *BufferPool) Stats() map[string]interface{} {
	return map[string]interface{}{
		"pool_size": bp.size,
		"available": len(bp.pool),
	}
}

// Global pool shared by the HTTP middleware
var defaultPool = NewBufferPool(32)

// GetBuffer retrieves a buffer from the global pool
func GetBuffer() *bytes.Buffer {
	return defaultPool.Get()
}

// PutBuffer returns a buffer to the global pool
func PutBuffer(buf *bytes.Buffer) {
	defaultPool.Put(buf)
}
