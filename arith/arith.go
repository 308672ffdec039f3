// Package arith provides the bounded combinatorial arithmetic the symdel
// pipeline needs to preallocate exact storage up front: nCk and the
// per-string deletion-variant count it's built from.
package arith

// MaxK is the largest max-distance value the rest of the pipeline accepts;
// 255 is reserved as the verifier's "above threshold" sentinel.
const MaxK = 254

// NChooseK returns n choose k computed as the falling product
// (n)(n-1)...(n-k+1) / k!, evaluated left-to-right so every intermediate
// division is exact. Defined for n >= k >= 0; NChooseK(n, 0) == 1 for any
// n >= 0.
//
// No overflow checking is performed. The largest intermediate value is
// min(k, n-k) * NChooseK(n, k), which fits in uint64 for the small
// deletion counts the pipeline uses on short strings; inputs for which it
// does not fit wrap silently.
func NChooseK(n, k int) uint64 {
	if k < 0 || n < k {
		panic("arith: NChooseK requires 0 <= k <= n")
	}
	if k == 0 {
		return 1
	}
	// Choose the smaller of k, n-k to minimize the number of multiply/divide
	// steps; nCk(n, k) == nCk(n, n-k).
	if k > n-k {
		k = n - k
	}
	result := uint64(1)
	for i := 1; i <= k; i++ {
		result = result * uint64(n-k+i) / uint64(i)
	}
	return result
}

// NumDeletionVariants returns the number of distinct-by-construction
// deletion variants (before dedup) of a string of the given length under at
// most maxDeletions single-character deletions: sum over j in
// [0, min(maxDeletions, length)] of NChooseK(length, j).
func NumDeletionVariants(length int, maxDeletions uint8) uint64 {
	limit := int(maxDeletions)
	if limit > length {
		limit = length
	}
	var total uint64
	for j := 0; j <= limit; j++ {
		total += NChooseK(length, j)
	}
	return total
}
