package arith

import "testing"

func TestNChooseK(t *testing.T) {
	cases := []struct {
		n, k int
		want uint64
	}{
		{0, 0, 1},
		{5, 0, 1},
		{5, 1, 5},
		{5, 2, 10},
		{5, 5, 1},
		{10, 3, 120},
		{20, 10, 184756},
	}
	for _, c := range cases {
		got := NChooseK(c.n, c.k)
		if got != c.want {
			t.Errorf("NChooseK(%d, %d) = %d, want %d", c.n, c.k, got, c.want)
		}
	}
}

func TestNChooseKPanicsOnKGreaterThanN(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for k > n")
		}
	}()
	NChooseK(2, 3)
}

func TestNumDeletionVariants(t *testing.T) {
	// "fizz" len 4, k=1: nCk(4,0)+nCk(4,1) = 1+4 = 5
	if got := NumDeletionVariants(4, 1); got != 5 {
		t.Errorf("NumDeletionVariants(4, 1) = %d, want 5", got)
	}
	// k bigger than length clamps to length.
	if got := NumDeletionVariants(2, 5); got != NumDeletionVariants(2, 2) {
		t.Errorf("NumDeletionVariants(2, 5) = %d, want %d", got, NumDeletionVariants(2, 2))
	}
	// empty string: only the empty variant itself.
	if got := NumDeletionVariants(0, 3); got != 1 {
		t.Errorf("NumDeletionVariants(0, 3) = %d, want 1", got)
	}
}
