// Package compress provides the chunked DEFLATE codec behind bagobytes.
//
// The DEFLATE bit stream itself comes from github.com/klauspost/compress; this
// package drives it through a fixed-size intermediate buffer so that scratch
// memory stays bounded no matter how large the payload is.
//
// # Overview
//
// Bagobytes applies a two-stage transformation:
//
//  1. **Compression**: DEFLATE in a zlib container at the best compression level
//  2. **Encoding**: padded standard Base64 (see the encoding package)
//
// This package implements the first stage.
//
// # Architecture
//
// The package defines three layers:
//
//	type Engine interface {
//	    Feed(chunk []byte, flush format.FlushMode) error
//	    Drain(dst []byte) (int, format.Status, error)
//	    Release() error
//	}
//
//	type Codec interface {
//	    Compress(data []byte) ([]byte, error)
//	    Decompress(data []byte) ([]byte, error)
//	}
//
// An Engine is the stateful compressor or decompressor for exactly one payload.
// ChunkedCodec implements Codec on top of it:
//
//	codec, _ := compress.NewChunkedCodec()
//	compressed, _ := codec.Compress(data)
//	original, _ := codec.Decompress(compressed)
//
// # The Chunk Loop
//
// Each operation runs in rounds. A round hands the engine at most ChunkCapacity
// unconsumed input bytes, then drains the engine into the intermediate buffer
// until a drain comes back short, appending each drain to the result. The
// round that consumes the last input byte signals FlushFinish instead of
// FlushContinue, and its last drain must report StatusStreamEnd. Empty input
// is a single finish round, so it still produces the zlib minimum stream.
//
//	round 0: Feed(data[0:C],   continue)  Drain* → out
//	round 1: Feed(data[C:2C],  continue)  Drain* → out
//	round n: Feed(data[nC:],   finish)    Drain* → out, StatusStreamEnd
//
// # Memory Management
//
// The intermediate buffer comes from a sync.Pool and is returned when the
// operation ends. The result grows with the output and is handed to the
// caller, who owns it. Callers that need bounded total memory must split the
// payload themselves.
//
// # Thread Safety
//
// ChunkedCodec is safe for concurrent use. Engines are not; each operation
// creates its own.
//
// # Error Handling
//
// Errors are *EngineError values carrying the engine status:
//   - ErrEngineInit: the engine rejected its configuration
//   - ErrCompressionEngine: the compressor failed mid-stream
//   - ErrCorruptStream: the compressed input is malformed, truncated or fails
//     its Adler-32 checksum
//
// Every operation is all-or-nothing; the engine is released on every path and
// no partial output is returned.
package compress
