// Package selftest checks the codecs against known vectors and round trips.
package selftest

import (
	"bytes"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/arloliu/bagobytes/compress"
	"github.com/arloliu/bagobytes/encoding"
)

// Base64Vector is a known plain/encoded Base64 pair.
type Base64Vector struct {
	Plain   string
	Encoded string
}

// Base64Vectors covers every final quantum length.
var Base64Vectors = []Base64Vector{
	{"Man", "TWFu"},
	{"Ma", "TWE="},
	{"M", "TQ=="},
	{"pleasure.", "cGxlYXN1cmUu"},
	{"leasure.", "bGVhc3VyZS4="},
	{"easure.", "ZWFzdXJlLg=="},
	{"asure.", "YXN1cmUu"},
	{"sure.", "c3VyZS4="},
}

// DeflateSamples are payloads that must survive a compression round trip.
var DeflateSamples = []string{
	"Hello, world!",
	"Hello Hello Hello Hello Hello Hello!",
	"Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor " +
		"incididunt ut labore et dolore magna aliqua. Ut enim ad minim veniam, quis nostrud " +
		"exercitation ullamco laboris nisi ut aliquip ex ea commodo consequat. Duis aute irure " +
		"dolor in reprehenderit in voluptate velit esse cillum dolore eu fugiat nulla pariatur. " +
		"Excepteur sint occaecat cupidatat non proident, sunt in culpa qui officia deserunt " +
		"mollit anim id est laborum.",
}

// Run executes every check with the given codec and reports all failures.
//
// Returns nil when every check passes, otherwise a *multierror.Error.
func Run(codec compress.Codec) error {
	var result *multierror.Error

	for _, v := range Base64Vectors {
		result = multierror.Append(result, checkBase64(v))
	}

	for _, sample := range DeflateSamples {
		result = multierror.Append(result, checkDeflate(codec, []byte(sample)))
	}

	return result.ErrorOrNil()
}

func checkBase64(v Base64Vector) error {
	if got := encoding.EncodeBase64([]byte(v.Plain)); got != v.Encoded {
		return fmt.Errorf("base64 encode %q: got %q, want %q", v.Plain, got, v.Encoded)
	}

	decoded, err := encoding.DecodeBase64(v.Encoded)
	if err != nil {
		return fmt.Errorf("base64 decode %q: %w", v.Encoded, err)
	}

	if string(decoded) != v.Plain {
		return fmt.Errorf("base64 decode %q: got %q, want %q", v.Encoded, decoded, v.Plain)
	}

	return nil
}

func checkDeflate(codec compress.Codec, sample []byte) error {
	compressed, err := codec.Compress(sample)
	if err != nil {
		return fmt.Errorf("deflate %q: %w", sample, err)
	}

	restored, err := codec.Decompress(compressed)
	if err != nil {
		return fmt.Errorf("inflate %q: %w", sample, err)
	}

	if !bytes.Equal(restored, sample) {
		return fmt.Errorf("deflate round trip %q: got %q", sample, restored)
	}

	return nil
}
