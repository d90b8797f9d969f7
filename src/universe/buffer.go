package universe

import "lifedit/src/grid"

//Buffer owns two grids of the same size playing the "current" and "previous" roles
//Advance exchanges the roles, the cells are never copied
type Buffer[T any] struct {
	bufs [2]*grid.Grid[T]
	cur  int
}

func NewBuffer[T any](width int, height int) *Buffer[T] {
	return &Buffer[T]{bufs: [2]*grid.Grid[T]{grid.New[T](width, height), grid.New[T](width, height)}}
}

//BufferFrom creates the buffer with g as the current grid
func BufferFrom[T any](g *grid.Grid[T]) *Buffer[T] {
	return &Buffer[T]{bufs: [2]*grid.Grid[T]{g, g.Clone()}}
}

func (b *Buffer[T]) Current() *grid.Grid[T] {
	return b.bufs[b.cur]
}

func (b *Buffer[T]) Previous() *grid.Grid[T] {
	return b.bufs[1-b.cur]
}

//Advance swaps current and previous
func (b *Buffer[T]) Advance() {
	b.cur = 1 - b.cur
}
