package compress

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"

	"github.com/arloliu/bagobytes/format"
	"github.com/arloliu/bagobytes/internal/options"
	"github.com/arloliu/bagobytes/internal/pool"
)

// Chunk capacity bounds. The capacity is fixed per codec and never derived
// from the payload size.
const (
	DefaultChunkCapacity = pool.ChunkBufferDefaultSize
	MinChunkCapacity     = 64
	MaxChunkCapacity     = 1024 * 1024 * 256 // 256MiB

	// maxEstimateChunks bounds the up-front result reservation; beyond it the
	// result buffer grows with the output.
	maxEstimateChunks = 4
)

// ChunkedConfig holds the configuration of a ChunkedCodec.
type ChunkedConfig struct {
	chunkCapacity int
	logger        *zap.Logger
}

// CodecOption configures a ChunkedCodec.
type CodecOption = options.Option[*ChunkedConfig]

// WithChunkCapacity sets the size of the intermediate buffer, which is also the
// largest chunk handed to the engine in one round.
func WithChunkCapacity(capacity int) CodecOption {
	return options.New(func(c *ChunkedConfig) error {
		if capacity < MinChunkCapacity || capacity > MaxChunkCapacity {
			return fmt.Errorf("chunk capacity must be between %d and %d, got %d",
				MinChunkCapacity, MaxChunkCapacity, capacity)
		}
		c.chunkCapacity = capacity

		return nil
	})
}

// WithLogger sets the logger used for per-round debug events.
func WithLogger(logger *zap.Logger) CodecOption {
	return options.NoError(func(c *ChunkedConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// Validate implements options.Validator.
func (c *ChunkedConfig) Validate() error {
	if c.chunkCapacity <= 0 {
		return fmt.Errorf("chunk capacity must be positive, got %d", c.chunkCapacity)
	}

	return nil
}

// ChunkedCodec drives a compression engine across an input of any length
// through a fixed-capacity intermediate buffer.
//
// A ChunkedCodec only holds immutable configuration and is safe for concurrent
// use. Every call creates its own engine and takes its own scratch buffer.
type ChunkedCodec struct {
	capacity  int
	scratch   *pool.ByteBufferPool
	logger    *zap.Logger
	newEngine func(format.EngineMode) (Engine, error)
}

var _ Codec = (*ChunkedCodec)(nil)

// NewChunkedCodec creates a codec with DefaultChunkCapacity unless overridden.
//
// Returns an error if an option is invalid.
func NewChunkedCodec(opts ...CodecOption) (*ChunkedCodec, error) {
	config := &ChunkedConfig{
		chunkCapacity: DefaultChunkCapacity,
		logger:        zap.NewNop(),
	}

	if err := options.Apply(config, opts...); err != nil {
		return nil, err
	}

	codec := &ChunkedCodec{
		capacity:  config.chunkCapacity,
		logger:    config.logger,
		newEngine: NewEngine,
	}

	if codec.capacity != pool.ChunkBufferDefaultSize {
		codec.scratch = pool.NewByteBufferPool(codec.capacity, codec.capacity)
	}

	return codec, nil
}

// ChunkCapacity returns the intermediate buffer capacity.
func (c *ChunkedCodec) ChunkCapacity() int {
	return c.capacity
}

// Compress compresses data into a zlib stream at BestCompressionLevel.
//
// Errors are *EngineError values matching ErrEngineInit or ErrCompressionEngine.
// No partial output is returned on failure.
func (c *ChunkedCodec) Compress(data []byte) ([]byte, error) {
	return c.run(format.ModeDeflate, data)
}

// Decompress restores the payload of a zlib stream.
//
// Malformed, truncated or checksum-failing input yields an *EngineError
// matching ErrCorruptStream. No partial output is returned on failure.
func (c *ChunkedCodec) Decompress(data []byte) ([]byte, error) {
	return c.run(format.ModeInflate, data)
}

// run performs one complete operation: feed rounds until the input is
// exhausted, draining the engine after each round, and finish on the last one.
func (c *ChunkedCodec) run(mode format.EngineMode, data []byte) (result []byte, err error) {
	engine, err := c.newEngine(mode)
	if err != nil {
		return nil, err
	}

	defer func() {
		if releaseErr := engine.Release(); releaseErr != nil {
			if err != nil {
				err = multierror.Append(err, releaseErr)
			} else {
				err = releaseErr
			}
			result = nil
		}
	}()

	buf := c.getScratch()
	defer c.putScratch(buf)
	scratch := buf.Window(c.capacity)

	out := pool.NewByteBuffer(c.estimateOutputSize(mode, len(data)))
	remaining := data
	round := 0

	for {
		take := min(len(remaining), c.capacity)
		chunk := remaining[:take]
		remaining = remaining[take:]

		flush := format.FlushContinue
		if len(remaining) == 0 {
			flush = format.FlushFinish
		}

		if err := engine.Feed(chunk, flush); err != nil {
			return nil, err
		}

		status := format.StatusOK
		for {
			var n int
			n, status, err = engine.Drain(scratch)
			if err != nil {
				return nil, err
			}
			out.MustWrite(scratch[:n])

			if n < len(scratch) {
				break
			}
		}

		c.logger.Debug("chunk round complete",
			zap.Stringer("mode", mode),
			zap.Int("round", round),
			zap.Int("input", take),
			zap.Stringer("flush", flush),
			zap.Stringer("status", status),
			zap.Int("output_total", out.Len()),
		)
		round++

		if flush == format.FlushFinish {
			if status != format.StatusStreamEnd {
				return nil, newStreamError(mode, status, errStreamNotFinished)
			}

			return out.Bytes(), nil
		}
	}
}

func (c *ChunkedCodec) getScratch() *pool.ByteBuffer {
	if c.scratch == nil {
		return pool.GetChunkBuffer()
	}

	return c.scratch.Get()
}

func (c *ChunkedCodec) putScratch(bb *pool.ByteBuffer) {
	if c.scratch == nil {
		pool.PutChunkBuffer(bb)
		return
	}

	c.scratch.Put(bb)
}

// estimateOutputSize sizes the result buffer so typical payloads need few
// reallocations, without reserving more than maxEstimateChunks chunks.
func (c *ChunkedCodec) estimateOutputSize(mode format.EngineMode, inputSize int) int {
	estimate := inputSize / 2
	if mode == format.ModeInflate {
		estimate = inputSize * 3
	}

	limit := max(maxEstimateChunks*c.capacity, pool.ResultBufferMinSize)

	return min(max(estimate, pool.ResultBufferMinSize), limit)
}
