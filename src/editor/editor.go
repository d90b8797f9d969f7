package editor

import (
	"fmt"
	"iter"
	"math/rand"

	"lifedit/src/grid"
	"lifedit/src/universe"
)

//Point is the cell coordinates
type Point struct {
	X int
	Y int
}

//Kind is the type of the edit action
type Kind int

const (
	MoveCursorBy Kind = iota
	MoveCursorTo
	ToggleCell
	ToggleAt
	Clear
	AddPreset
	Randomize
)

var kindNames = map[Kind]string{
	MoveCursorBy: "moveCursorBy",
	MoveCursorTo: "moveCursorTo",
	ToggleCell:   "toggleCell",
	ToggleAt:     "toggleAt",
	Clear:        "clear",
	AddPreset:    "addPreset",
	Randomize:    "randomize",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

//Action is the grid edit requested by the user
//X, Y are the delta for MoveCursorBy and the position for MoveCursorTo and ToggleAt
type Action struct {
	Kind   Kind
	X      int
	Y      int
	Preset int
}

//PresetLookup returns the preset offsets by the preset index
type PresetLookup func(index int) iter.Seq2[int, int]

//Editor holds the cursor and applies the edit actions to the grid lent by the caller
type Editor struct {
	cursor  Point
	presets PresetLookup
	rand    *rand.Rand
}

func New(presets PresetLookup, seed int64) *Editor {
	return &Editor{presets: presets, rand: rand.New(rand.NewSource(seed))}
}

func (e *Editor) Cursor() Point {
	return e.cursor
}

//Apply dispatches the action to the editor operation
func (e *Editor) Apply(a Action, g *grid.Grid[universe.Cell]) {
	switch a.Kind {
	case MoveCursorBy:
		e.MoveCursorBy(g, a.X, a.Y)
	case MoveCursorTo:
		e.MoveCursorTo(a.X, a.Y)
	case ToggleCell:
		e.ToggleCellAtCursor(g)
	case ToggleAt:
		e.MoveCursorTo(a.X, a.Y)
		e.ToggleCellAt(g, a.X, a.Y)
	case Clear:
		e.ClearAll(g)
	case AddPreset:
		if e.presets != nil {
			e.AddPreset(g, e.presets(a.Preset))
		}
	case Randomize:
		e.Randomize(g)
	}
}

//MoveCursorBy moves the cursor wrapping around the grid edges
func (e *Editor) MoveCursorBy(g *grid.Grid[universe.Cell], dx int, dy int) {
	w, h := g.Width(), g.Height()
	e.cursor.X = ((e.cursor.X+dx)%w + w) % w
	e.cursor.Y = ((e.cursor.Y+dy)%h + h) % h
}

//MoveCursorTo sets the cursor, x,y must be inside the grid
func (e *Editor) MoveCursorTo(x int, y int) {
	e.cursor = Point{x, y}
}

func (e *Editor) ToggleCellAtCursor(g *grid.Grid[universe.Cell]) {
	e.ToggleCellAt(g, e.cursor.X, e.cursor.Y)
}

func (e *Editor) ToggleCellAt(g *grid.Grid[universe.Cell], x int, y int) {
	e.SetCellAt(g, x, y, g.Get(x, y) == universe.Dead)
}

func (e *Editor) SetCellAt(g *grid.Grid[universe.Cell], x int, y int, alive bool) {
	if alive {
		g.Set(x, y, universe.Alive)
	} else {
		g.Set(x, y, universe.Dead)
	}
}

func (e *Editor) ClearAll(g *grid.Grid[universe.Cell]) {
	g.SetAll(universe.Dead)
}

//AddPreset settles the cells at the offsets anchored at the cursor
//the preset wraps around the grid edges
func (e *Editor) AddPreset(g *grid.Grid[universe.Cell], offsets iter.Seq2[int, int]) {
	w, h := g.Width(), g.Height()
	for i, j := range offsets {
		x := ((e.cursor.X+i)%w + w) % w
		y := ((e.cursor.Y+j)%h + h) % h
		e.SetCellAt(g, x, y, true)
	}
}

//Randomize settles the grid with random live cells
func (e *Editor) Randomize(g *grid.Grid[universe.Cell]) {
	w, h := g.Width(), g.Height()
	for i := 0; i < w*h; i++ {
		e.SetCellAt(g, e.rand.Intn(w), e.rand.Intn(h), true)
	}
}
