package pool

import (
	"sync"
)

// Buffer sizes used by the chunked codecs.
const (
	ChunkBufferDefaultSize = 1024 * 1024 * 4 // 4MiB, matches the default chunk capacity
	ResultBufferMinSize    = 1024 * 16       // 16KiB
)

type ByteBuffer struct {
	// B is the underlying byte slice.
	B []byte
}

// NewByteBuffer creates a new ByteBuffer with the specified default size.
func NewByteBuffer(defaultSize int) *ByteBuffer {
	return &ByteBuffer{
		B: make([]byte, 0, defaultSize),
	}
}

// Bytes returns the underlying byte slice.
func (bb *ByteBuffer) Bytes() []byte {
	return bb.B
}

// Reset resets the buffer to be empty, but retains the allocated memory for reuse.
func (bb *ByteBuffer) Reset() {
	bb.B = bb.B[:0]
}

// Len returns the length of the buffer.
func (bb *ByteBuffer) Len() int {
	return len(bb.B)
}

// Window returns the first n bytes of the buffer's backing array, ignoring its length.
//
// It is the view the chunked codecs hand to an engine as the drain target:
// every drain overwrites the window from the start.
// Panics if n is negative or greater than the capacity.
func (bb *ByteBuffer) Window(n int) []byte {
	if n < 0 || n > cap(bb.B) {
		panic("Window: invalid size")
	}

	return bb.B[:n]
}

// MustWrite writes data to the buffer, growing it if necessary.
func (bb *ByteBuffer) MustWrite(data []byte) {
	bb.Grow(len(data))
	bb.B = append(bb.B, data...)
}

// Grow grows the buffer to ensure it can hold requiredBytes more bytes without reallocating.
// If the buffer has sufficient capacity, Grow does nothing.
//
// The growth strategy is as follows:
//   - For small buffers (<64KB), grow by ResultBufferMinSize to minimize reallocations.
//   - For larger buffers, grow by 25% of current capacity to balance memory usage and reallocation cost.
func (bb *ByteBuffer) Grow(requiredBytes int) {
	available := cap(bb.B) - len(bb.B)
	if available >= requiredBytes {
		return
	}

	growBy := ResultBufferMinSize
	if cap(bb.B) > 4*ResultBufferMinSize {
		growBy = cap(bb.B) / 4
	}

	if growBy < requiredBytes {
		growBy = requiredBytes
	}

	newBuf := make([]byte, len(bb.B), len(bb.B)+growBy)
	copy(newBuf, bb.B)
	bb.B = newBuf
}

// ByteBufferPool is a pool of fixed-size ByteBuffers.
//
// Every buffer handed out by Get has a capacity of at least the pool size, so
// callers can rely on Window(size) never panicking. Buffers whose capacity
// exceeds maxThreshold are dropped on Put instead of being retained.
type ByteBufferPool struct {
	pool         sync.Pool
	size         int
	maxThreshold int
}

// NewByteBufferPool creates a new ByteBufferPool with buffers of the specified size.
func NewByteBufferPool(size int, maxThreshold int) *ByteBufferPool {
	return &ByteBufferPool{
		pool: sync.Pool{
			New: func() any {
				return NewByteBuffer(size)
			},
		},
		size:         size,
		maxThreshold: maxThreshold,
	}
}

// Get retrieves an empty ByteBuffer from the pool.
func (bbp *ByteBufferPool) Get() *ByteBuffer {
	bb, _ := bbp.pool.Get().(*ByteBuffer)
	if bb == nil || cap(bb.B) < bbp.size {
		return NewByteBuffer(bbp.size)
	}

	bb.Reset()

	return bb
}

// Put returns a ByteBuffer to the pool for reuse.
func (bbp *ByteBufferPool) Put(bb *ByteBuffer) {
	if bb == nil {
		return
	}

	if bbp.maxThreshold > 0 && cap(bb.B) > bbp.maxThreshold {
		return
	}

	bb.Reset()
	bbp.pool.Put(bb)
}

var chunkDefaultPool = NewByteBufferPool(ChunkBufferDefaultSize, ChunkBufferDefaultSize)

// GetChunkBuffer retrieves a scratch buffer of ChunkBufferDefaultSize from the default pool.
func GetChunkBuffer() *ByteBuffer {
	return chunkDefaultPool.Get()
}

// PutChunkBuffer returns a scratch buffer to the default pool.
func PutChunkBuffer(bb *ByteBuffer) {
	chunkDefaultPool.Put(bb)
}
