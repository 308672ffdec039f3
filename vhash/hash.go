// Package vhash provides the 64-bit deterministic hashing the symdel
// pipeline uses for deletion variants, plus an identity-keyed map for the
// cached-reference's variant hashmap (whose keys are already hashes, so
// hashing them again would be wasteful and would weaken distribution
// without buying anything).
package vhash

import "github.com/cespare/xxhash/v2"

// seed is mixed into every hash computed by this package so that variants
// produced by different pipelines within the same process run are directly
// comparable. It is fixed at process start; stability across process runs
// is not required (see spec note on hash-collision tolerance).
var seed = [8]byte{0x73, 0x79, 0x6d, 0x64, 0x65, 0x6c, 0x76, 0x31} // "symdelv1"

// Variant hashes the bytes of a deletion variant (or an original string,
// which is the j=0 variant) to a 64-bit value. A rare collision between two
// distinct variants of one origin is tolerated: dedup treats it as a single
// convergence point, and the distance verifier is the final authority, so a
// collision costs at most one wasted candidate.
func Variant(b []byte) uint64 {
	var d xxhash.Digest
	d.Reset()
	d.Write(seed[:])
	d.Write(b)
	return d.Sum64()
}
