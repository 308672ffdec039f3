package symdel

import (
	"context"

	"github.com/google/uuid"
	"k8s.io/klog/v2"

	"github.com/cdr3match/symdel/candidate"
	"github.com/cdr3match/symdel/region"
	"github.com/cdr3match/symdel/result"
	"github.com/cdr3match/symdel/symdelerr"
	"github.com/cdr3match/symdel/vhash"
	"github.com/cdr3match/symdel/vindex"
)

// CachedRef is a precomputed, immutable symdel index over one string
// collection: the variant-index pipeline runs once at construction time,
// and every later query reuses its hashmap instead of re-deriving the
// reference side's deletion variants (spec 4.9). A CachedRef's lifecycle is
// trivial -- constructing then ready -- with no mutation and no teardown
// beyond normal garbage collection (spec 4.10).
type CachedRef struct {
	id string
	k  uint8

	arena []byte
	spans []region.Span

	idxArena []uint32
	byHash   *vhash.IdentityMap[region.Span]
}

// NewCachedRef builds a CachedRef over reference at construction-time max
// distance k. k becomes the ceiling on every later query against this
// instance.
func NewCachedRef(ctx context.Context, reference [][]byte, k uint8) (*CachedRef, error) {
	if err := checkMaxDistance(k); err != nil {
		return nil, err
	}
	if err := checkCount(symdelerr.SideReference, len(reference), vindex.MaxTaggedValue); err != nil {
		return nil, err
	}
	id := uuid.New().String()
	w := currentWorkers()
	klog.V(2).Infof("symdel.NewCachedRef[%s]: %d reference strings, k=%d, workers=%d", id, len(reference), k, w)

	sizes := make([]uint64, len(reference))
	for i, s := range reference {
		sizes[i] = uint64(len(s))
	}
	arena, chunks := region.SplitWithBacking[byte](sizes)
	for i, s := range reference {
		copy(chunks[i], s)
	}
	spans := region.Spans(sizes)

	groups, err := vindex.BuildAllGroups(ctx, reference, k, w)
	if err != nil {
		return nil, err
	}

	groupSizes := make([]uint64, len(groups))
	for i, g := range groups {
		groupSizes[i] = uint64(len(g))
	}
	idxArena, idxChunks := region.SplitWithBacking[uint32](groupSizes)
	groupSpans := region.Spans(groupSizes)
	byHash := vhash.NewIdentityMap[region.Span](len(groups))
	for gi, g := range groups {
		chunk := idxChunks[gi]
		for i, r := range g {
			chunk[i] = uint32(r.Idx)
		}
		byHash.Set(g[0].Hash, groupSpans[gi])
	}

	return &CachedRef{
		id:       id,
		k:        k,
		arena:    arena,
		spans:    spans,
		idxArena: idxArena,
		byHash:   byHash,
	}, nil
}

func (c *CachedRef) read(i uint32) []byte {
	s := c.spans[i]
	return c.arena[s.Start : s.Start+s.Len]
}

// Within runs a within-query against the cached reference's own collection
// at query-time max distance maxDistance <= the construction k. Every
// hashmap span is a persisted convergence group; spans of length 1 are
// skipped, exactly as the live within-mode pipeline discards singletons,
// the difference being these singletons were already filtered out lazily
// here rather than never having been stored.
func (c *CachedRef) Within(ctx context.Context, maxDistance uint8) (*result.Matrix, error) {
	if maxDistance > c.k {
		return nil, symdelerr.MaxDistTooLargeForCache(maxDistance, c.k)
	}
	w := currentWorkers()

	var groups []vindex.Group[uint32]
	c.byHash.Range(func(_ uint64, span region.Span) {
		if span.Len < 2 {
			return
		}
		idxs := c.idxArena[span.Start : span.Start+span.Len]
		g := make(vindex.Group[uint32], len(idxs))
		for i, v := range idxs {
			g[i] = vindex.Record[uint32]{Idx: v}
		}
		groups = append(groups, g)
	})

	pairs, err := candidate.ExpandWithin(ctx, groups, w)
	if err != nil {
		return nil, err
	}
	dist, err := verify(ctx, pairs.Left, pairs.Right, c.read, c.read, maxDistance, w)
	if err != nil {
		return nil, err
	}
	return result.Collect(pairs.Left, pairs.Right, dist, maxDistance), nil
}

// Cross runs a cross-query: query is a plain, uncached collection, and the
// cached reference plays the reference side. The variant pipeline runs
// only over query; for each of its convergence groups (including
// singletons, since a lone query variant may still hit a persisted
// reference group), the cached hashmap is probed by hash, and a hit
// contributes the cartesian product of the query group against the
// persisted reference span.
func (c *CachedRef) Cross(ctx context.Context, query [][]byte, maxDistance uint8) (*result.Matrix, error) {
	if maxDistance > c.k {
		return nil, symdelerr.MaxDistTooLargeForCache(maxDistance, c.k)
	}
	if err := checkCount(symdelerr.SideQuery, len(query), vindex.MaxTaggedValue); err != nil {
		return nil, err
	}
	w := currentWorkers()
	if len(query) == 0 {
		return &result.Matrix{}, nil
	}

	qGroups, err := vindex.BuildAllGroups(ctx, query, maxDistance, w)
	if err != nil {
		return nil, err
	}

	var qSides, rSides [][]uint32
	var sizes []uint64
	for _, g := range qGroups {
		span, ok := c.byHash.Get(g[0].Hash)
		if !ok {
			continue
		}
		qIdxs := make([]uint32, len(g))
		for i, r := range g {
			qIdxs[i] = uint32(r.Idx)
		}
		rIdxs := c.idxArena[span.Start : span.Start+span.Len]
		qSides = append(qSides, qIdxs)
		rSides = append(rSides, rIdxs)
		sizes = append(sizes, uint64(len(qIdxs))*uint64(len(rIdxs)))
	}

	pairs, err := candidate.Cartesian(ctx, qSides, rSides, sizes, w)
	if err != nil {
		return nil, err
	}
	dist, err := verify(ctx, pairs.Left, pairs.Right, readerFor(query), c.read, maxDistance, w)
	if err != nil {
		return nil, err
	}
	return result.Collect(pairs.Left, pairs.Right, dist, maxDistance), nil
}

// CrossCached runs a cross-query between two cached references with other
// playing the query side and c the reference side, and neither
// regenerating variants: the two hashmaps are intersected by iterating
// whichever is smaller and probing the larger, and every shared variant
// contributes the cartesian product of the two persisted spans.
func (c *CachedRef) CrossCached(ctx context.Context, other *CachedRef, maxDistance uint8) (*result.Matrix, error) {
	if maxDistance > c.k || maxDistance > other.k {
		limit := c.k
		if other.k < limit {
			limit = other.k
		}
		return nil, symdelerr.MaxDistTooLargeForCache(maxDistance, limit)
	}
	w := currentWorkers()

	small, large := other, c
	smallIsQuery := true
	if c.byHash.Len() < other.byHash.Len() {
		small, large = c, other
		smallIsQuery = false
	}

	var qSides, rSides [][]uint32
	var sizes []uint64
	small.byHash.Range(func(hash uint64, smallSpan region.Span) {
		largeSpan, ok := large.byHash.Get(hash)
		if !ok {
			return
		}
		smallIdxs := small.idxArena[smallSpan.Start : smallSpan.Start+smallSpan.Len]
		largeIdxs := large.idxArena[largeSpan.Start : largeSpan.Start+largeSpan.Len]
		qIdxs, rIdxs := largeIdxs, smallIdxs
		if smallIsQuery {
			qIdxs, rIdxs = smallIdxs, largeIdxs
		}
		qSides = append(qSides, qIdxs)
		rSides = append(rSides, rIdxs)
		sizes = append(sizes, uint64(len(qIdxs))*uint64(len(rIdxs)))
	})

	pairs, err := candidate.Cartesian(ctx, qSides, rSides, sizes, w)
	if err != nil {
		return nil, err
	}
	dist, err := verify(ctx, pairs.Left, pairs.Right, other.read, c.read, maxDistance, w)
	if err != nil {
		return nil, err
	}
	return result.Collect(pairs.Left, pairs.Right, dist, maxDistance), nil
}
