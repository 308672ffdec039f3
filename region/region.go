// Package region implements the disjoint-region allocator: given a vector
// of chunk sizes, preallocate one flat backing slice of their sum and split
// it into non-overlapping sub-slices of those lengths, so that many
// goroutines can fill their own chunk with zero synchronization and zero
// reallocation (spec 4.4).
package region

// Split preallocates a slice of length sum(sizes) and returns that many
// disjoint sub-slices of it, in order, each of the requested length. The
// backing slice is allocated once; callers are responsible for filling
// every element of every chunk before reading any of it -- until then the
// zero-valued elements must be treated as uninitialized.
func Split[T any](sizes []uint64) (chunks [][]T) {
	backing, chunks := SplitWithBacking[T](sizes)
	_ = backing
	return chunks
}

// SplitWithBacking is Split, but also returns the single flat backing slice
// the chunks were carved from -- needed by callers (the variant-index
// pipeline) that sort or scan the whole populated region after the parallel
// fill phase completes.
func SplitWithBacking[T any](sizes []uint64) (backing []T, chunks [][]T) {
	var total uint64
	for _, n := range sizes {
		total += n
	}
	backing = make([]T, total)
	chunks = make([][]T, len(sizes))
	var cursor uint64
	for i, n := range sizes {
		chunks[i] = backing[cursor : cursor+n]
		cursor += n
	}
	return backing, chunks
}

// Spans returns, for the given chunk sizes, the (start, length) offsets
// each chunk would occupy in a single flat slice built the same way Split
// builds one -- used by the cached-reference arenas, which need the
// offsets without necessarily allocating through Split.
type Span struct {
	Start, Len uint64
}

func Spans(sizes []uint64) []Span {
	spans := make([]Span, len(sizes))
	var cursor uint64
	for i, n := range sizes {
		spans[i] = Span{Start: cursor, Len: n}
		cursor += n
	}
	return spans
}
