package grid

import (
	"iter"
	"testing"
)

func countSeq[T any](seq iter.Seq[T]) (n int) {
	for range seq {
		n++
	}
	return
}

func Test_SetGet(t *testing.T) {
	g := New[uint8](4, 3)
	g.Set(3, 2, 1)
	if g.Get(3, 2) != 1 {
		t.Fatalf("expected 1 at 3,2")
	}
	if g.Get(2, 0) != 0 {
		t.Fatalf("expected 0 at 2,0")
	}
	if g.Width() != 4 || g.Height() != 3 {
		t.Fatalf("unexpected size %vx%v", g.Width(), g.Height())
	}
}

func Test_ToggleTwiceIsIdentity(t *testing.T) {
	g := New[uint8](5, 5)
	g.Set(1, 1, 1)
	toggle := func(x, y int) {
		g.Set(x, y, 1-g.Get(x, y))
	}
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			before := g.Get(x, y)
			toggle(x, y)
			toggle(x, y)
			if g.Get(x, y) != before {
				t.Fatalf("toggle twice changed the cell %v,%v", x, y)
			}
		}
	}
}

func Test_SetAllAndCount(t *testing.T) {
	g := New[uint8](3, 2)
	g.SetAll(1)
	if n := g.Count(func(v uint8) bool { return v == 1 }); n != 6 {
		t.Fatalf("expected 6 live cells, got %v", n)
	}
	g.SetAll(0)
	if n := g.Count(func(v uint8) bool { return v == 1 }); n != 0 {
		t.Fatalf("expected 0 live cells, got %v", n)
	}
}

func Test_Neighbours(t *testing.T) {
	g := New[uint8](4, 4)
	tests := []struct {
		name    string
		x, y    int
		bounded int
	}{
		{"top left corner", 0, 0, 3},
		{"top right corner", 3, 0, 3},
		{"bottom left corner", 0, 3, 3},
		{"bottom right corner", 3, 3, 3},
		{"edge", 1, 0, 5},
		{"inner", 1, 1, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if n := countSeq(g.Neighbours(tt.x, tt.y)); n != tt.bounded {
				t.Errorf("bounded: expected %v neighbours, got %v", tt.bounded, n)
			}
			if n := countSeq(g.NeighboursWrapped(tt.x, tt.y)); n != 8 {
				t.Errorf("wrapped: expected 8 neighbours, got %v", n)
			}
		})
	}
}

func Test_NeighboursWrappedValues(t *testing.T) {
	g := New[uint8](5, 5)
	//the opposite corners are adjacent on the torus
	g.Set(4, 4, 1)
	g.Set(4, 0, 1)
	g.Set(0, 4, 1)
	sum := 0
	for v := range g.NeighboursWrapped(0, 0) {
		sum += int(v)
	}
	if sum != 3 {
		t.Fatalf("expected wrapped sum 3, got %v", sum)
	}
	sum = 0
	for v := range g.Neighbours(0, 0) {
		sum += int(v)
	}
	if sum != 0 {
		t.Fatalf("expected bounded sum 0, got %v", sum)
	}
}

func Test_OutOfBoundsPanics(t *testing.T) {
	g := New[uint8](2, 2)
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {2, 0}, {0, 2}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic at %v", c)
				}
			}()
			g.Get(c[0], c[1])
		}()
	}
}

func Test_Clone(t *testing.T) {
	g := New[uint8](2, 2)
	g.Set(0, 1, 1)
	c := g.Clone()
	c.Set(0, 1, 0)
	if g.Get(0, 1) != 1 {
		t.Fatalf("clone shares the data with the source")
	}
}
