package grid

import (
	"fmt"
	"iter"
)

//Grid is the dense 2D cell buffer, stored row by row
//the dimensions are fixed for the grid lifetime
type Grid[T any] struct {
	width  int
	height int
	data   []T
}

//New allocates the grid filled with zero values
func New[T any](width int, height int) *Grid[T] {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("grid: invalid size %vx%v", width, height))
	}
	return &Grid[T]{width: width, height: height, data: make([]T, width*height)}
}

//WithData creates the grid over existing row-major data
func WithData[T any](width int, height int, data []T) *Grid[T] {
	if width <= 0 || height <= 0 || len(data) != width*height {
		panic(fmt.Sprintf("grid: invalid data size: %v, w=%v, h=%v", len(data), width, height))
	}
	return &Grid[T]{width: width, height: height, data: data}
}

func (g *Grid[T]) Width() int {
	return g.width
}

func (g *Grid[T]) Height() int {
	return g.height
}

func (g *Grid[T]) Get(x int, y int) T {
	return g.data[g.index(x, y)]
}

func (g *Grid[T]) Set(x int, y int, v T) {
	g.data[g.index(x, y)] = v
}

//SetAll fills every cell with v
func (g *Grid[T]) SetAll(v T) {
	for i := range g.data {
		g.data[i] = v
	}
}

//Count returns the number of cells matching pred
func (g *Grid[T]) Count(pred func(T) bool) int {
	n := 0
	for _, v := range g.data {
		if pred(v) {
			n++
		}
	}
	return n
}

//Clone returns the deep copy of the grid
func (g *Grid[T]) Clone() *Grid[T] {
	data := make([]T, len(g.data))
	copy(data, g.data)
	return &Grid[T]{width: g.width, height: g.height, data: data}
}

//Neighbours enumerates the values of the adjacent cells with the bounded topology
//cells outside the grid are absent, so the corner cell has 3 neighbours and the edge cell has 5
func (g *Grid[T]) Neighbours(x int, y int) iter.Seq[T] {
	g.index(x, y)
	return func(yield func(T) bool) {
		for dy := -1; dy < 2; dy++ {
			ny := y + dy
			if ny < 0 || ny >= g.height {
				continue
			}
			for dx := -1; dx < 2; dx++ {
				nx := x + dx
				//skip my position and the coordinates outside the area
				if (dx == 0 && dy == 0) || nx < 0 || nx >= g.width {
					continue
				}
				if !yield(g.data[ny*g.width+nx]) {
					return
				}
			}
		}
	}
}

//NeighboursWrapped enumerates the values of the adjacent cells with the toroidal topology
//the coordinates wrap around the edges, every cell always has 8 neighbours
//on grids narrower than 3 cells the same cell may be enumerated more than once
func (g *Grid[T]) NeighboursWrapped(x int, y int) iter.Seq[T] {
	g.index(x, y)
	return func(yield func(T) bool) {
		top := (y + g.height - 1) % g.height
		bottom := (y + 1) % g.height
		left := (x + g.width - 1) % g.width
		right := (x + 1) % g.width
		for _, c := range [8][2]int{
			{left, top}, {left, y}, {left, bottom},
			{x, top}, {x, bottom},
			{right, top}, {right, y}, {right, bottom},
		} {
			if !yield(g.data[c[1]*g.width+c[0]]) {
				return
			}
		}
	}
}

//index converts x,y to the data offset
//the coordinates outside the grid are the programming error, so it panics
func (g *Grid[T]) index(x int, y int) int {
	if x < 0 || x >= g.width {
		panic(fmt.Sprintf("grid: x out of range: w = %v, x = %v", g.width, x))
	}
	if y < 0 || y >= g.height {
		panic(fmt.Sprintf("grid: y out of range: h = %v, y = %v", g.height, y))
	}
	return y*g.width + x
}
