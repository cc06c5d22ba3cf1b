// Package hash provides payload fingerprints for logging.
package hash

import "github.com/cespare/xxhash/v2"

// Sum computes the xxHash64 of the given payload.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
