package vindex

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/cdr3match/symdel/arith"
	"github.com/cdr3match/symdel/region"
	"github.com/cdr3match/symdel/variant"
	"github.com/cdr3match/symdel/vhash"
)

// Record pairs a variant hash with its origin index. Within-mode pipelines
// instantiate this with I = uint32; cross-mode pipelines instantiate it
// with I = TaggedIdx. ~uint32 lets both share every function below without
// duplication.
type Record[I ~uint32] struct {
	Hash uint64
	Idx  I
}

// Group is a maximal run of Records sharing one Hash after sort+dedup: a
// convergence group (spec 4.5).
type Group[I ~uint32] []Record[I]

// BuildWithin runs the variant-index pipeline over one collection and
// returns every convergence group of size >= 2 (singletons cannot
// contribute a within-mode pair and are discarded immediately, unlike the
// cached-reference path which keeps them for future cross queries).
func BuildWithin(ctx context.Context, strings [][]byte, maxDistance uint8, workers int) ([]Group[uint32], error) {
	records, err := fill(ctx, strings, maxDistance, workers, func(i int) uint32 {
		return uint32(i)
	})
	if err != nil {
		return nil, err
	}
	sortRecords(records)
	return collectGroups(records, func(g Group[uint32]) bool {
		return len(g) >= 2
	}), nil
}

// BuildCross runs the variant-index pipeline over a query collection and a
// reference collection together, tagging each origin index with its side,
// and returns every convergence group that has at least one member on each
// side. query and reference must each fit within MaxTaggedValue entries;
// the caller is responsible for having already checked that.
func BuildCross(ctx context.Context, query, reference [][]byte, maxDistance uint8, workers int) ([]Group[TaggedIdx], error) {
	qRecords, err := fill(ctx, query, maxDistance, workers, func(i int) TaggedIdx {
		return Pack(uint32(i), false)
	})
	if err != nil {
		return nil, err
	}
	rRecords, err := fill(ctx, reference, maxDistance, workers, func(i int) TaggedIdx {
		return Pack(uint32(i), true)
	})
	if err != nil {
		return nil, err
	}
	combined := make([]Record[TaggedIdx], 0, len(qRecords)+len(rRecords))
	combined = append(combined, qRecords...)
	combined = append(combined, rRecords...)
	sortRecords(combined)
	return collectGroups(combined, func(g Group[TaggedIdx]) bool {
		var hasQuery, hasReference bool
		for _, r := range g {
			if r.Idx.IsReference() {
				hasReference = true
			} else {
				hasQuery = true
			}
			if hasQuery && hasReference {
				return true
			}
		}
		return false
	}), nil
}

// BuildAllGroups runs the variant-index pipeline over one collection and
// returns every convergence group, including singletons. The cached
// reference uses this for its reference side (it must keep singleton
// groups alive for future queries) and for the query side of a query
// against a cached reference (a lone query variant may still hit a cached
// group).
func BuildAllGroups(ctx context.Context, strings [][]byte, maxDistance uint8, workers int) ([]Group[uint32], error) {
	records, err := fill(ctx, strings, maxDistance, workers, func(i int) uint32 {
		return uint32(i)
	})
	if err != nil {
		return nil, err
	}
	sortRecords(records)
	return collectGroups(records, func(Group[uint32]) bool { return true }), nil
}

// fill is the shared parallel-fill stage: it presizes one disjoint region
// per input string using the exact deletion-variant count, then fans out
// across workers goroutines (errgroup), each owning a contiguous run of
// strings and its own variant.Generator and hasher scratch so no
// synchronization is needed until every chunk is written.
func fill[I ~uint32](ctx context.Context, strings [][]byte, maxDistance uint8, workers int, tag func(i int) I) ([]Record[I], error) {
	if len(strings) == 0 {
		return nil, nil
	}
	sizes := make([]uint64, len(strings))
	maxLen := 0
	for i, s := range strings {
		sizes[i] = arith.NumDeletionVariants(len(s), maxDistance)
		if len(s) > maxLen {
			maxLen = len(s)
		}
	}
	backing, chunks := region.SplitWithBacking[Record[I]](sizes)

	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(strings) {
		workers = len(strings)
	}
	if workers < 1 {
		workers = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	per := (len(strings) + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * per
		hi := lo + per
		if lo >= len(strings) {
			break
		}
		if hi > len(strings) {
			hi = len(strings)
		}
		g.Go(func() error {
			gen := variant.NewGenerator(maxLen)
			for i := lo; i < hi; i++ {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				idx := tag(i)
				out := chunks[i]
				pos := 0
				gen.Generate(strings[i], maxDistance, func(v []byte) {
					out[pos] = Record[I]{Hash: vhash.Variant(v), Idx: idx}
					pos++
				})
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return backing, nil
}

func sortRecords[I ~uint32](records []Record[I]) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].Hash != records[j].Hash {
			return records[i].Hash < records[j].Hash
		}
		return records[i].Idx < records[j].Idx
	})
}

// collectGroups walks sorted records, splits them into runs of equal hash,
// dedupes adjacent equal (hash, idx) pairs within a run, and keeps only the
// groups that pass keep.
func collectGroups[I ~uint32](records []Record[I], keep func(Group[I]) bool) []Group[I] {
	groups := make([]Group[I], 0)
	n := len(records)
	for i := 0; i < n; {
		j := i + 1
		for j < n && records[j].Hash == records[i].Hash {
			j++
		}
		group := dedupAdjacent(records[i:j])
		if keep(group) {
			groups = append(groups, group)
		}
		i = j
	}
	return groups
}

// dedupAdjacent removes adjacent duplicate (Hash, Idx) records in place,
// returning the shrunk slice. run is already sorted by Idx within its
// shared Hash (sortRecords's tie-break), so duplicates are always adjacent.
func dedupAdjacent[I ~uint32](run []Record[I]) []Record[I] {
	if len(run) <= 1 {
		return run
	}
	w := 1
	for r := 1; r < len(run); r++ {
		if run[r].Idx == run[w-1].Idx {
			continue
		}
		run[w] = run[r]
		w++
	}
	return run[:w]
}
