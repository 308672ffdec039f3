package symdel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/cdr3match/symdel/editdist"
)

// verify runs the bounded Levenshtein verifier over every candidate pair in
// parallel, writing dist[i] = editdist.Distance(left[i], right[i], k) for
// each i, and returns dist; callers pass it on to result.Collect. left and right
// index into readLeft/readRight respectively, which abstract over whether a
// side's bytes come from a plain collection or a cached reference's byte
// arena.
func verify(ctx context.Context, left, right []uint32, readLeft, readRight func(uint32) []byte, maxDistance uint8, workers int) ([]uint8, error) {
	n := len(left)
	dist := make([]uint8, n)
	if n == 0 {
		return dist, nil
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
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			for i := lo; i < hi; i++ {
				dist[i] = editdist.Distance(readLeft(left[i]), readRight(right[i]), maxDistance)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return dist, nil
}
