// Package symdel implements the symmetric-deletion nearest-neighbor search:
// given one or two collections of short ASCII strings and a max edit
// distance k, it finds every pair whose Levenshtein distance is <= k
// without computing the full pairwise distance matrix.
package symdel

import (
	"context"
	"runtime"
	"sync/atomic"

	"k8s.io/klog/v2"

	"github.com/cdr3match/symdel/arith"
	"github.com/cdr3match/symdel/candidate"
	"github.com/cdr3match/symdel/result"
	"github.com/cdr3match/symdel/symdelerr"
	"github.com/cdr3match/symdel/vindex"
)

// workers holds the process-wide worker count; 0 means "use
// runtime.GOMAXPROCS(0) at call time". It is set once by SetWorkers, which
// mirrors the spec's "global thread pool is process-wide, configured once
// by the CLI collaborator" contract.
var workers atomic.Int64

// SetWorkers configures the process-wide worker count used by every
// subsequent call into this package. n <= 0 means "one worker per CPU",
// resolved at call time via runtime.GOMAXPROCS(0) rather than pinned here,
// so it tracks GOMAXPROCS changes made after SetWorkers runs. Intended to
// be called once, by the CLI collaborator, before the first request;
// calling it again mid-request is a caller error, not something this
// package detects or guards against.
func SetWorkers(n int) {
	workers.Store(int64(n))
}

func currentWorkers() int {
	n := int(workers.Load())
	if n <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return n
}

func checkMaxDistance(maxDistance uint8) error {
	if maxDistance > arith.MaxK {
		return symdelerr.MaxDistCapped()
	}
	return nil
}

func checkCount(side symdelerr.Side, count int, limit uint64) error {
	if uint64(count) > limit {
		return symdelerr.TooManyStrings(side, count, limit)
	}
	return nil
}

// Within finds every pair (i, j), i<j, in strings with Levenshtein distance
// <= maxDistance. strings holds up to 2^32-1 entries; maxDistance is capped
// at 254 (255 is reserved as the verifier's above-threshold sentinel).
func Within(ctx context.Context, strings [][]byte, maxDistance uint8) (*result.Matrix, error) {
	if err := checkMaxDistance(maxDistance); err != nil {
		return nil, err
	}
	if err := checkCount(symdelerr.SideWithin, len(strings), 1<<32-1); err != nil {
		return nil, err
	}
	w := currentWorkers()
	klog.V(2).Infof("symdel.Within: %d strings, k=%d, workers=%d", len(strings), maxDistance, w)
	if len(strings) < 2 {
		return &result.Matrix{}, nil
	}

	groups, err := vindex.BuildWithin(ctx, strings, maxDistance, w)
	if err != nil {
		return nil, err
	}
	pairs, err := candidate.ExpandWithin(ctx, groups, w)
	if err != nil {
		return nil, err
	}
	dist, err := verify(ctx, pairs.Left, pairs.Right, readerFor(strings), readerFor(strings), maxDistance, w)
	if err != nil {
		return nil, err
	}
	return result.Collect(pairs.Left, pairs.Right, dist, maxDistance), nil
}

// Cross finds every pair (i, j) with query[i] within maxDistance of
// reference[j]. query and reference each hold up to 2^31-1 entries (the
// cross pipeline packs a 1-bit side tag into each 32-bit origin index).
func Cross(ctx context.Context, query, reference [][]byte, maxDistance uint8) (*result.Matrix, error) {
	if err := checkMaxDistance(maxDistance); err != nil {
		return nil, err
	}
	if err := checkCount(symdelerr.SideQuery, len(query), vindex.MaxTaggedValue); err != nil {
		return nil, err
	}
	if err := checkCount(symdelerr.SideReference, len(reference), vindex.MaxTaggedValue); err != nil {
		return nil, err
	}
	w := currentWorkers()
	klog.V(2).Infof("symdel.Cross: %d query, %d reference, k=%d, workers=%d", len(query), len(reference), maxDistance, w)
	if len(query) == 0 || len(reference) == 0 {
		return &result.Matrix{}, nil
	}

	groups, err := vindex.BuildCross(ctx, query, reference, maxDistance, w)
	if err != nil {
		return nil, err
	}
	pairs, err := candidate.ExpandCross(ctx, groups, w)
	if err != nil {
		return nil, err
	}
	dist, err := verify(ctx, pairs.Left, pairs.Right, readerFor(query), readerFor(reference), maxDistance, w)
	if err != nil {
		return nil, err
	}
	return result.Collect(pairs.Left, pairs.Right, dist, maxDistance), nil
}

func readerFor(strings [][]byte) func(uint32) []byte {
	return func(i uint32) []byte {
		return strings[i]
	}
}
