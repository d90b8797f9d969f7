package presets

import (
	"bytes"
	"embed"
	"fmt"
	"iter"
	"sort"
)

//go:embed shapes/*.txt
var shapes embed.FS

//Preset is the named pattern of live cells
//the offsets are relative to the anchor (the editor cursor)
type Preset struct {
	Index int
	Name  string
	Descr string
	Cells [][2]int //array of [x,y] offsets
}

var presets = map[int]*Preset{}

func init() {
	for _, p := range []struct {
		index int
		name  string
		descr string
		file  string
	}{
		{0, "gliderGun", "Gosper glider gun", "glider_gun.txt"},
		{1, "glider1", "glider moving down-right", "glider_1.txt"},
		{2, "glider2", "glider moving down-left", "glider_2.txt"},
		{3, "glider3", "glider moving up-left", "glider_3.txt"},
		{4, "glider4", "glider moving up-right", "glider_4.txt"},
		{5, "testSample1", "the test sample with 3 stable patterns", "test_sample.txt"},
	} {
		data, err := shapes.ReadFile("shapes/" + p.file)
		if err != nil {
			panic(fmt.Sprintf("presets: %v", err))
		}
		presets[p.index] = &Preset{Index: p.index, Name: p.name, Descr: p.descr, Cells: Parse(data)}
	}
}

//Parse converts the text shape to the cell offsets
//every char except space on the line y at the column x is the live cell x,y
func Parse(data []byte) (cells [][2]int) {
	for y, line := range bytes.Split(data, []byte{'\n'}) {
		for x, c := range line {
			if c != ' ' && c != '\r' {
				cells = append(cells, [2]int{x, y})
			}
		}
	}
	return
}

//Get returns the preset by the index
func Get(index int) (*Preset, bool) {
	p, ok := presets[index]
	return p, ok
}

//ByName returns the preset by the name
func ByName(name string) (*Preset, bool) {
	for _, p := range presets {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

//All returns all presets ordered by the index
func All() []*Preset {
	all := make([]*Preset, 0, len(presets))
	for _, p := range presets {
		all = append(all, p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Index < all[j].Index })
	return all
}

//Offsets enumerates the x,y offsets of the preset, the unknown index gives the empty sequence
func Offsets(index int) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		p, ok := presets[index]
		if !ok {
			return
		}
		for _, c := range p.Cells {
			if !yield(c[0], c[1]) {
				return
			}
		}
	}
}
