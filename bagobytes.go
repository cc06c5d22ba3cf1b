// Package bagobytes turns arbitrary binary payloads into printable text and back.
//
// Encoding is a two-stage pipeline: the payload is compressed into a zlib
// stream at the best compression level, then the compressed bytes are rendered
// as padded standard Base64. Decoding reverses both stages.
//
// # Basic Usage
//
//	text, err := bagobytes.EncodeFile(data)
//	if err != nil {
//	    return err
//	}
//
//	restored, err := bagobytes.DecodeText(text)
//	if errors.Is(err, bagobytes.ErrMalformedInput) {
//	    // text was not valid Base64
//	}
//
// # Package Structure
//
// This package wires the compress and encoding packages together. For finer
// control over the compression stage, such as a custom chunk capacity or a
// logger, pass compress.CodecOption values or use the compress package directly.
//
// # Errors
//
// Errors from both stages propagate unchanged and can be classified with
// errors.Is against the re-exported sentinels:
//   - ErrEngineInit: the compression engine rejected its configuration
//   - ErrCompressionEngine: the engine failed while compressing
//   - ErrCorruptStream: the compressed stream is malformed, truncated or fails its checksum
//   - ErrMalformedInput: the text is not valid padded Base64
//
// All operations are all-or-nothing: on error no partial output is returned.
package bagobytes

import (
	"bytes"
	"errors"
	"time"

	"github.com/arloliu/bagobytes/compress"
	"github.com/arloliu/bagobytes/encoding"
	"github.com/arloliu/bagobytes/format"
)

// Error kinds surfaced by the pipeline.
var (
	ErrEngineInit        = compress.ErrEngineInit
	ErrCompressionEngine = compress.ErrCompressionEngine
	ErrCorruptStream     = compress.ErrCorruptStream
	ErrMalformedInput    = encoding.ErrMalformedInput

	// ErrVerifyMismatch means the decoded text does not reproduce the original payload.
	ErrVerifyMismatch = errors.New("decoded payload does not match original")
)

// EncodeFile compresses data and renders the compressed stream as Base64 text.
//
// The input is not modified. Empty input yields the Base64 rendition of an
// empty zlib stream, never the empty string.
//
// Returns an error matching ErrEngineInit or ErrCompressionEngine if compression fails,
// or an option error if opts are invalid.
func EncodeFile(data []byte, opts ...compress.CodecOption) (string, error) {
	codec, err := codecFor(opts)
	if err != nil {
		return "", err
	}

	compressed, err := codec.Compress(data)
	if err != nil {
		return "", err
	}

	return encoding.EncodeBase64(compressed), nil
}

// EncodeFileWithStats works like EncodeFile and also reports the sizes of every
// stage and the time the whole operation took.
func EncodeFileWithStats(data []byte, opts ...compress.CodecOption) (string, compress.CompressionStats, error) {
	stats := compress.CompressionStats{
		Algorithm:    format.CompressionZlib,
		OriginalSize: int64(len(data)),
	}

	codec, err := codecFor(opts)
	if err != nil {
		return "", stats, err
	}

	start := time.Now()
	compressed, err := codec.Compress(data)
	if err != nil {
		return "", stats, err
	}

	text := encoding.EncodeBase64(compressed)

	stats.CompressedSize = int64(len(compressed))
	stats.EncodedSize = int64(len(text))
	stats.Duration = time.Since(start)

	return text, stats, nil
}

// DecodeText restores the payload from text produced by EncodeFile.
//
// Returns an error matching ErrMalformedInput if text is not valid padded
// Base64, or ErrCorruptStream if the decoded bytes are not a valid zlib stream.
func DecodeText(text string, opts ...compress.CodecOption) ([]byte, error) {
	compressed, err := encoding.DecodeBase64(text)
	if err != nil {
		return nil, err
	}

	codec, err := codecFor(opts)
	if err != nil {
		return nil, err
	}

	return codec.Decompress(compressed)
}

// Verify decodes text and checks that it reproduces data.
//
// The payloads are compared byte for byte. Decoding errors are returned
// unchanged; a successful decode with a different payload yields
// ErrVerifyMismatch.
func Verify(data []byte, text string, opts ...compress.CodecOption) error {
	restored, err := DecodeText(text, opts...)
	if err != nil {
		return err
	}

	if !bytes.Equal(data, restored) {
		return ErrVerifyMismatch
	}

	return nil
}

// codecFor returns the shared default codec when no options are given.
func codecFor(opts []compress.CodecOption) (compress.Codec, error) {
	if len(opts) == 0 {
		return compress.GetCodec(format.CompressionZlib)
	}

	return compress.CreateCodec(format.CompressionZlib, opts...)
}
