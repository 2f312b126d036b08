package encoding

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferPool_ReturnsResetBuffers(t *testing.T) {
	bp := NewBufferPool(1)

	buf := bp.Get()
	buf.WriteString("stale response body")
	bp.Put(buf)

	reused := bp.Get()
	assert.Zero(t, reused.Len())
}

func TestBufferPool_AllocatesWhenExhausted(t *testing.T) {
	bp := NewBufferPool(2)

	a := bp.Get()
	b := bp.Get()
	c := bp.Get()

	require.NotNil(t, c)
	assert.Zero(t, c.Len())

	bp.Put(a)
	bp.Put(b)
	bp.Put(c)

	// Pool capacity is 2, so the third return is discarded
	assert.Equal(t, 2, bp.Stats()["available"])
}

func TestBufferPool_DiscardsOversizedBuffers(t *testing.T) {
	bp := NewBufferPool(1)

	buf := bp.Get()
	assert.Equal(t, 0, bp.Stats()["available"])

	buf.Grow(maxRetainedBytes + 1)
	bp.Put(buf)

	assert.Equal(t, 0, bp.Stats()["available"])
}

func TestBufferPool_PutNilIsSafe(t *testing.T) {
	bp := NewBufferPool(1)

	assert.NotPanics(t, func() { bp.Put(nil) })
}

func TestBufferPool_DefaultSize(t *testing.T) {
	bp := NewBufferPool(0)

	assert.Equal(t, 16, bp.Stats()["pool_size"])
	assert.Equal(t, 16, bp.Stats()["available"])
}

func TestGlobalBufferHelpers(t *testing.T) {
	buf := GetBuffer()
	require.NotNil(t, buf)

	buf.Write(bytes.Repeat([]byte("x"), 64))
	PutBuffer(buf)
}
