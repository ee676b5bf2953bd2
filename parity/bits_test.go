package parity

import "testing"

func TestXorSelfInverse(t *testing.T) {
	a := New(8)
	a.Set(1)
	a.Set(4)
	b := New(8)
	b.Set(4)
	b.Set(6)

	x := a.Xor(b)
	back := x.Xor(b)
	if !back.Equal(a) {
		t.Fatalf("xor is not self-inverse: got %v want %v", back, a)
	}
}

func TestConstIndexAndClear(t *testing.T) {
	b := New(5)
	b.Set(b.ConstIndex())
	if b.IsZero() {
		t.Fatal("expected non-zero after setting const bit")
	}
	b.ClearAll()
	if !b.IsZero() {
		t.Fatal("expected zero after ClearAll")
	}
}

func TestCloneIndependence(t *testing.T) {
	a := New(4)
	a.Set(2)
	c := a.Clone()
	c.Set(0)
	if a.Test(0) {
		t.Fatal("clone mutation leaked into original")
	}
}

func TestSubsetOf(t *testing.T) {
	mask := New(5)
	mask.Set(0)
	mask.Set(1)

	live := New(5)
	live.Set(1)
	if !live.SubsetOf(mask) {
		t.Fatal("expected live to be a subset of mask")
	}

	notLive := New(5)
	notLive.Set(2)
	if notLive.SubsetOf(mask) {
		t.Fatal("expected notLive not to be a subset of mask")
	}
}
