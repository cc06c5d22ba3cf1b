package compress

import (
	"fmt"
	"sync"
	"time"

	"github.com/arloliu/bagobytes/format"
)

// Compressor turns a complete payload into a compressed stream.
type Compressor interface {
	// Compress compresses the input data and returns the compressed result.
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	//   - Scratch buffers are reused across calls
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a payload from its compressed stream.
//
// Separate interfaces allow callers that only ever decode to depend on the
// narrower contract.
//
// Example:
//
//	codec, _ := compress.NewChunkedCodec()
//	original, err := codec.Decompress(compressed)
//	if err != nil {
//	    return fmt.Errorf("decompression failed: %w", err)
//	}
type Decompressor interface {
	// Decompress decompresses the input data and returns the original result.
	//
	// Error conditions:
	//   - Returns an error matching ErrCorruptStream if the input is malformed,
	//     truncated or fails its checksum
	//
	// Memory management:
	//   - Returned slice is newly allocated and owned by the caller
	//   - Input slice is not modified
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes one compression operation.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of input data before compression
	OriginalSize int64

	// CompressedSize is the size of data after compression
	CompressedSize int64

	// EncodedSize is the size of the Base64 text produced from the compressed data
	EncodedSize int64

	// Duration is the wall time of the whole operation
	Duration time.Duration
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression.
// Values greater than 1.0 indicate overhead, which is normal for tiny inputs
// because the zlib container alone takes six bytes.
//
// Returns:
//   - float64: Compression ratio (0.0 if original size is zero)
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage.
//
// Returns:
//   - float64: Space savings percentage, negative when the output grew
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// CreateCodec is a factory function that creates a Codec for the specified compression type.
//
// Parameters:
//   - compressionType: Type of compression (only CompressionZlib is supported)
//   - opts: Options applied to the codec
//
// Returns:
//   - Codec: Codec instance for the specified type
//   - error: Invalid compression type or option error
func CreateCodec(compressionType format.CompressionType, opts ...CodecOption) (Codec, error) {
	switch compressionType {
	case format.CompressionZlib:
		return NewChunkedCodec(opts...)
	default:
		return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
	}
}

var (
	defaultCodec     *ChunkedCodec
	defaultCodecOnce sync.Once
)

// GetCodec retrieves the shared built-in Codec for the specified compression type.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if compressionType != format.CompressionZlib {
		return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
	}

	defaultCodecOnce.Do(func() {
		// The default configuration has no options that can fail.
		defaultCodec, _ = NewChunkedCodec()
	})

	return defaultCodec, nil
}
