package candidate

import (
	"context"
	"testing"

	"github.com/cdr3match/symdel/vindex"
)

func TestExpandWithinProducesOrderedCombinations(t *testing.T) {
	groups := []vindex.Group[uint32]{
		{{Hash: 1, Idx: 2}, {Hash: 1, Idx: 0}, {Hash: 1, Idx: 1}},
	}
	pairs, err := ExpandWithin(context.Background(), groups, 2)
	if err != nil {
		t.Fatalf("ExpandWithin: %v", err)
	}
	if pairs.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", pairs.Len())
	}
	want := [][2]uint32{{0, 1}, {0, 2}, {1, 2}}
	for i, w := range want {
		if pairs.Left[i] != w[0] || pairs.Right[i] != w[1] {
			t.Errorf("pair %d = (%d,%d), want (%d,%d)", i, pairs.Left[i], pairs.Right[i], w[0], w[1])
		}
	}
}

func TestExpandWithinEmptyGroups(t *testing.T) {
	pairs, err := ExpandWithin(context.Background(), nil, 2)
	if err != nil {
		t.Fatalf("ExpandWithin: %v", err)
	}
	if pairs.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", pairs.Len())
	}
}

func TestExpandCrossCartesianProduct(t *testing.T) {
	groups := []vindex.Group[vindex.TaggedIdx]{
		{
			{Hash: 5, Idx: vindex.Pack(0, false)},
			{Hash: 5, Idx: vindex.Pack(1, false)},
			{Hash: 5, Idx: vindex.Pack(0, true)},
		},
	}
	pairs, err := ExpandCross(context.Background(), groups, 2)
	if err != nil {
		t.Fatalf("ExpandCross: %v", err)
	}
	if pairs.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", pairs.Len())
	}
	seen := map[[2]uint32]bool{}
	for i := 0; i < pairs.Len(); i++ {
		seen[[2]uint32{pairs.Left[i], pairs.Right[i]}] = true
	}
	if !seen[[2]uint32{0, 0}] || !seen[[2]uint32{1, 0}] {
		t.Errorf("missing expected cross pairs, got %v", seen)
	}
}

func TestExpandCrossGroupMissingOneSideYieldsNoPairs(t *testing.T) {
	groups := []vindex.Group[vindex.TaggedIdx]{
		{
			{Hash: 5, Idx: vindex.Pack(0, false)},
			{Hash: 5, Idx: vindex.Pack(1, false)},
		},
	}
	pairs, err := ExpandCross(context.Background(), groups, 2)
	if err != nil {
		t.Fatalf("ExpandCross: %v", err)
	}
	if pairs.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", pairs.Len())
	}
}

// TestExpandWithinManyGroupsExercisesWorkerFanout pushes group count above
// the worker count so fillGroups actually splits work across more than one
// goroutine, not just the workers<=1 fallback path.
func TestExpandWithinManyGroupsExercisesWorkerFanout(t *testing.T) {
	groups := make([]vindex.Group[uint32], 40)
	for i := range groups {
		base := uint32(i * 3)
		groups[i] = vindex.Group[uint32]{
			{Hash: uint64(i), Idx: base},
			{Hash: uint64(i), Idx: base + 1},
			{Hash: uint64(i), Idx: base + 2},
		}
	}
	pairs, err := ExpandWithin(context.Background(), groups, 8)
	if err != nil {
		t.Fatalf("ExpandWithin: %v", err)
	}
	if pairs.Len() != 40*3 {
		t.Fatalf("Len() = %d, want %d", pairs.Len(), 40*3)
	}
	for i := 1; i < pairs.Len(); i++ {
		if pairs.Left[i-1] > pairs.Left[i] ||
			(pairs.Left[i-1] == pairs.Left[i] && pairs.Right[i-1] >= pairs.Right[i]) {
			t.Fatalf("not strictly ascending at %d", i)
		}
	}
}
