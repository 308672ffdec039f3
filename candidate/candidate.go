// Package candidate expands convergence groups into the ordered pairs that
// the distance verifier checks: n-choose-2 combinations within one group
// for within-mode, and the cartesian product of a group's query-side and
// reference-side members for cross-mode (spec 4.6).
package candidate

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/cdr3match/symdel/arith"
	"github.com/cdr3match/symdel/region"
	"github.com/cdr3match/symdel/vindex"
)

// Pairs holds the flattened candidate pairs ready for the verifier: Left[i]
// and Right[i] are the i'th pair's origin indices.
type Pairs struct {
	Left  []uint32
	Right []uint32
}

// Len returns the number of candidate pairs.
func (p *Pairs) Len() int {
	return len(p.Left)
}

// ExpandWithin emits, for every group, all i<j pairs among its members
// (n-choose-2), preallocating the exact total with arith.NChooseK before
// any group is visited. Workers fill their groups' chunks concurrently
// (errgroup), since every group's backing region is disjoint.
func ExpandWithin(ctx context.Context, groups []vindex.Group[uint32], workers int) (*Pairs, error) {
	sizes := make([]uint64, len(groups))
	for i, g := range groups {
		sizes[i] = arith.NChooseK(len(g), 2)
	}
	leftBacking, leftChunks := region.SplitWithBacking[uint32](sizes)
	rightBacking, rightChunks := region.SplitWithBacking[uint32](sizes)

	err := fillGroups(ctx, workers, len(groups), func(gi int) {
		g := groups[gi]
		left, right := leftChunks[gi], rightChunks[gi]
		idxs := make([]uint32, len(g))
		for i, r := range g {
			idxs[i] = uint32(r.Idx)
		}
		// Groups built by vindex arrive sorted by origin index (sortRecords's
		// tie-break), but ExpandWithin accepts groups from any caller, so
		// the within-mode invariant i<j is enforced here.
		sortUint32(idxs)
		pos := 0
		for i := 0; i < len(idxs); i++ {
			for j := i + 1; j < len(idxs); j++ {
				left[pos] = idxs[i]
				right[pos] = idxs[j]
				pos++
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return sortDedup(&Pairs{Left: leftBacking, Right: rightBacking}), nil
}

// ExpandCross emits, for every group, the cartesian product of its
// query-side members against its reference-side members, preallocating the
// exact total |Q_g| * |R_g| per group before any group is visited.
func ExpandCross(ctx context.Context, groups []vindex.Group[vindex.TaggedIdx], workers int) (*Pairs, error) {
	sizes := make([]uint64, len(groups))
	qSides := make([][]uint32, len(groups))
	rSides := make([][]uint32, len(groups))
	for i, g := range groups {
		var q, r []uint32
		for _, rec := range g {
			if rec.Idx.IsReference() {
				r = append(r, rec.Idx.Value())
			} else {
				q = append(q, rec.Idx.Value())
			}
		}
		qSides[i], rSides[i] = q, r
		sizes[i] = uint64(len(q)) * uint64(len(r))
	}
	return Cartesian(ctx, qSides, rSides, sizes, workers)
}

// Cartesian emits, for each index i, the cartesian product of qSides[i]
// against rSides[i], preallocated with the caller-supplied exact per-group
// sizes (uint64(len(qSides[i]))*uint64(len(rSides[i]))). Exposed so the
// cached-reference type can build the same shape of pairs from groups it
// assembles itself (a live query group matched against a persisted
// reference span, or two persisted reference spans intersected against
// each other) without going through a []vindex.Group. Workers fill their
// groups' chunks concurrently (errgroup), since every group's backing
// region is disjoint.
func Cartesian(ctx context.Context, qSides, rSides [][]uint32, sizes []uint64, workers int) (*Pairs, error) {
	leftBacking, leftChunks := region.SplitWithBacking[uint32](sizes)
	rightBacking, rightChunks := region.SplitWithBacking[uint32](sizes)

	err := fillGroups(ctx, workers, len(sizes), func(gi int) {
		left, right := leftChunks[gi], rightChunks[gi]
		pos := 0
		for _, qi := range qSides[gi] {
			for _, ri := range rSides[gi] {
				left[pos] = qi
				right[pos] = ri
				pos++
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return sortDedup(&Pairs{Left: leftBacking, Right: rightBacking}), nil
}

// fillGroups fans n independent group-fill jobs out across workers
// goroutines (errgroup), mirroring vindex's parallel fill stage: each
// goroutine owns a contiguous range of group indices and writes only into
// that range's already-disjoint backing chunks, so no further
// synchronization is needed before g.Wait returns.
func fillGroups(ctx context.Context, workers, n int, fillOne func(gi int)) error {
	if n == 0 {
		return nil
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	g, gctx := errgroup.WithContext(ctx)
	per := (n + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * per
		hi := lo + per
		if lo >= n {
			break
		}
		if hi > n {
			hi = n
		}
		g.Go(func() error {
			for gi := lo; gi < hi; gi++ {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				fillOne(gi)
			}
			return nil
		})
	}
	return g.Wait()
}

// sortDedup brings a Pairs into ascending (Left, Right) order and removes
// adjacent duplicates: a pair of strings sharing more than one deletion
// variant is otherwise proposed as a candidate once per shared variant, and
// the spec's completeness invariant requires each true pair to be emitted
// exactly once.
func sortDedup(p *Pairs) *Pairs {
	n := len(p.Left)
	if n == 0 {
		return p
	}
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		oi, oj := order[i], order[j]
		if p.Left[oi] != p.Left[oj] {
			return p.Left[oi] < p.Left[oj]
		}
		return p.Right[oi] < p.Right[oj]
	})
	left := make([]uint32, 0, n)
	right := make([]uint32, 0, n)
	for i, oi := range order {
		if i > 0 {
			prev := order[i-1]
			if p.Left[oi] == p.Left[prev] && p.Right[oi] == p.Right[prev] {
				continue
			}
		}
		left = append(left, p.Left[oi])
		right = append(right, p.Right[oi])
	}
	return &Pairs{Left: left, Right: right}
}

// sortUint32 is a small insertion sort: within-mode group sizes are
// overwhelmingly small (a handful of strings sharing a rare deletion
// variant), so the constant-factor win over a general-purpose sort matters
// more than asymptotic behavior here.
func sortUint32(a []uint32) {
	for i := 1; i < len(a); i++ {
		v := a[i]
		j := i - 1
		for j >= 0 && a[j] > v {
			a[j+1] = a[j]
			j--
		}
		a[j+1] = v
	}
}
