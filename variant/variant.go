// Package variant enumerates the deletion variants of a single string: all
// substrings reachable by deleting 0..=d characters, one combination of
// deletion positions at a time (spec 4.2).
package variant

// Generator reuses one scratch buffer and one deletion-position buffer
// across all variants and all origin strings, so nothing is allocated per
// variant; a buffer is reallocated only when a longer string or a larger
// deletion count than any seen before arrives.
// It is not safe for concurrent use; the variant-index pipeline gives each
// worker goroutine its own Generator.
type Generator struct {
	scratch []byte
	idxBuf  []int
}

// NewGenerator returns a Generator whose scratch buffer is sized for
// strings up to maxLen bytes. maxLen is advisory: the buffer grows on
// demand if a longer string is generated against.
func NewGenerator(maxLen int) *Generator {
	return &Generator{scratch: make([]byte, maxLen)}
}

// Emit is called once per generated variant (including, for deletions=0,
// the original string itself, emitted first). The byte slice passed to emit
// is only valid for the duration of the call -- it aliases the Generator's
// scratch buffer and is overwritten by the next variant.
type Emit func(variant []byte)

// Generate enumerates every variant of s reachable by deleting 0..=d
// characters, in order of increasing deletion count, and within each
// deletion count in ascending lexicographic order of the deleted position
// set. The j=0 variant (s itself) is always emitted first.
func (g *Generator) Generate(s []byte, d uint8, emit Emit) {
	if cap(g.scratch) < len(s) {
		g.scratch = make([]byte, len(s))
	}
	scratch := g.scratch[:len(s)]
	copy(scratch, s)
	emit(scratch)

	limit := int(d)
	if limit > len(s) {
		limit = len(s)
	}
	for k := 1; k <= limit; k++ {
		g.combinationsOfDeletions(s, k, emit)
	}
}

// combinationsOfDeletions enumerates all k-subsets of positions in
// [0, len(s)) in ascending order, and for each one writes the string with
// those positions removed into g.scratch before invoking emit.
func (g *Generator) combinationsOfDeletions(s []byte, k int, emit Emit) {
	n := len(s)
	if cap(g.idxBuf) < k {
		g.idxBuf = make([]int, k)
	}
	idx := g.idxBuf[:k]
	for i := range idx {
		idx[i] = i
	}

	for {
		g.emitWithDeletionsRemoved(s, idx, emit)

		// Standard combinadic "next combination" advance: find the
		// rightmost index that can still move right, bump it, and reset
		// everything after it to be contiguous.
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}

func (g *Generator) emitWithDeletionsRemoved(s []byte, deletionIdx []int, emit Emit) {
	variantLen := len(s) - len(deletionIdx)
	out := g.scratch[:variantLen]
	w, offset := 0, 0
	for _, pos := range deletionIdx {
		w += copy(out[w:], s[offset:pos])
		offset = pos + 1
	}
	copy(out[w:], s[offset:])
	emit(out)
}
