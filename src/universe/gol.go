package universe

import (
	"time"

	"lifedit/src/grid"
)

//Gol is the Game of Life engine over the double buffer
//the write pass can be redefined by the engine variants, see NewMultithreaded
//Gol is not safe for concurrent use, the owner guards it with a mutex
type Gol struct {
	options Options
	buf     *Buffer[Cell]
	status  Status
	//writePass computes the current buffer from the previous one
	writePass func() (changed bool)
}

//NewSequential creates the engine computing the generation in a single pass
func NewSequential(o *Options) *Gol {
	g := newGol(o)
	g.options.Advanced["engine"] = "sequential"
	g.writePass = func() bool {
		return g.passRows(0, g.options.Height)
	}
	return g
}

func newGol(o *Options) *Gol {
	if o == nil {
		o = &DefaultOptions
	}
	g := &Gol{options: *o}
	g.options.Advanced = map[string]interface{}{
		"Wrap": o.Wrap,
	}
	g.buf = NewBuffer[Cell](o.Width, o.Height)
	return g
}

//Options returns the engine configuration
func (g *Gol) Options() Options {
	return g.options
}

//Grid returns the current generation
//the editor mutates this grid between the generations
func (g *Gol) Grid() *grid.Grid[Cell] {
	return g.buf.Current()
}

//Seed settles the current generation with live cells at x,y coordinates
//coordinates outside the area are skipped
func (g *Gol) Seed(cells [][2]int) {
	cur := g.buf.Current()
	for _, c := range cells {
		if c[0] < 0 || c[1] < 0 || c[0] >= cur.Width() || c[1] >= cur.Height() {
			continue
		}
		cur.Set(c[0], c[1], Alive)
	}
}

//Finished reports whether MaxSteps generations were computed
func (g *Gol) Finished() bool {
	return g.options.MaxSteps != 0 && g.status.IterationNum >= g.options.MaxSteps
}

//Status returns the counters of the last generation and the live cells of the current grid
func (g *Gol) Status() Status {
	st := g.status
	st.LiveCells = g.buf.Current().Count(func(c Cell) bool { return c == Alive })
	st.Finished = g.Finished()
	return st
}

//Step computes one generation: swaps the buffers and writes the new state into the current one
//the previous buffer is read only during the pass
func (g *Gol) Step() {
	start := time.Now()
	g.buf.Advance()
	g.status.Changed = g.writePass()
	g.status.IterationNum++
	g.status.IterationTime = time.Since(start)
}

//passRows writes the next state for the rows [y1, y2) of the current buffer
func (g *Gol) passRows(y1 int, y2 int) (changed bool) {
	prev, cur := g.buf.Previous(), g.buf.Current()
	for y := y1; y < y2; y++ {
		for x := 0; x < prev.Width(); x++ {
			old := prev.Get(x, y)
			next := g.cellNextState(prev, x, y)
			changed = changed || next != old
			cur.Set(x, y, next)
		}
	}
	return
}

//cellNextState calculates the next state for the cell from the previous generation
func (g *Gol) cellNextState(prev *grid.Grid[Cell], x int, y int) Cell {
	neighbours := prev.Neighbours(x, y)
	if g.options.Wrap {
		neighbours = prev.NeighboursWrapped(x, y)
	}
	liveNeighbours := 0
	for c := range neighbours {
		liveNeighbours += int(c)
	}

	if prev.Get(x, y) == Alive {
		if liveNeighbours < 2 || liveNeighbours > 3 {
			return Dead
		}
		return Alive
	}
	if liveNeighbours == 3 {
		return Alive
	}
	return Dead
}
