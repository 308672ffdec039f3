package vhash

import "testing"

func TestVariantDeterministic(t *testing.T) {
	a := Variant([]byte("fizz"))
	b := Variant([]byte("fizz"))
	if a != b {
		t.Fatalf("Variant not deterministic: %d != %d", a, b)
	}
	c := Variant([]byte("fuzz"))
	if a == c {
		t.Fatalf("different inputs hashed to the same value (astronomically unlikely, check the seeding)")
	}
}

func TestIdentityMapSetGet(t *testing.T) {
	m := NewIdentityMap[int](16)
	for i := 0; i < 16; i++ {
		m.Set(uint64(i)*97+3, i)
	}
	for i := 0; i < 16; i++ {
		v, ok := m.Get(uint64(i)*97 + 3)
		if !ok || v != i {
			t.Fatalf("Get(%d) = %d, %v; want %d, true", i, v, ok, i)
		}
	}
	if _, ok := m.Get(999999); ok {
		t.Fatalf("Get on missing key returned ok=true")
	}
	if m.Len() != 16 {
		t.Fatalf("Len() = %d, want 16", m.Len())
	}
}

func TestIdentityMapOverwrite(t *testing.T) {
	m := NewIdentityMap[string](4)
	m.Set(1, "a")
	m.Set(1, "b")
	v, ok := m.Get(1)
	if !ok || v != "b" {
		t.Fatalf("Get(1) = %q, %v; want %q, true", v, ok, "b")
	}
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 after overwrite", m.Len())
	}
}

func TestIdentityMapRange(t *testing.T) {
	m := NewIdentityMap[int](8)
	want := map[uint64]int{10: 1, 20: 2, 30: 3}
	for k, v := range want {
		m.Set(k, v)
	}
	got := map[uint64]int{}
	m.Range(func(k uint64, v int) { got[k] = v })
	if len(got) != len(want) {
		t.Fatalf("Range visited %d entries, want %d", len(got), len(want))
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("Range: key %d = %d, want %d", k, got[k], v)
		}
	}
}
