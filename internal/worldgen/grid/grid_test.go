package grid

import "testing"

func TestWrapX(t *testing.T) {
	cases := []struct{ x, w, want int }{
		{0, 10, 0},
		{10, 10, 0},
		{-1, 10, 9},
		{-11, 10, 9},
		{25, 10, 5},
	}
	for _, c := range cases {
		if got := WrapX(c.x, c.w); got != c.want {
			t.Errorf("WrapX(%d,%d) = %d, want %d", c.x, c.w, got, c.want)
		}
	}
}

func TestAtSetSeam(t *testing.T) {
	g := New[int](8, 4)
	g.Set(0, 0, 42)
	if got := g.At(8, 0); got != 42 {
		t.Errorf("seam wrap At(8,0) = %d, want 42 (same cell as (0,0))", got)
	}
	if got := g.At(-8, 0); got != 42 {
		t.Errorf("seam wrap At(-8,0) = %d, want 42", got)
	}
}

func TestNeighbors4PoleDrop(t *testing.T) {
	g := New[int](8, 4)
	n := g.Neighbors4(0, 0)
	if len(n) != 3 {
		t.Fatalf("pole row expected 3 neighbors (no north), got %d: %v", len(n), n)
	}
}

func TestNeighbors8WrapsX(t *testing.T) {
	g := New[int](8, 4)
	n := g.Neighbors8(0, 1)
	foundWrap := false
	for _, c := range n {
		if c.X == 7 {
			foundWrap = true
		}
	}
	if !foundWrap {
		t.Errorf("Neighbors8(0,1) should include wrapped x=7 neighbor, got %v", n)
	}
}

func TestWrapDeltaXShorterArc(t *testing.T) {
	if d := WrapDeltaX(1, 9, 10); d != -2 {
		t.Errorf("WrapDeltaX(1,9,10) = %d, want -2 (shorter arc through seam)", d)
	}
	if d := WrapDeltaX(1, 5, 10); d != 4 {
		t.Errorf("WrapDeltaX(1,5,10) = %d, want 4", d)
	}
}
