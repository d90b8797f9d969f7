package universe

import "sync"

/*
	Engine with multithreaded write pass
	the rows are split into the work areas each of which is computed by individual goroutine
	the goroutines read the previous buffer only and write disjoint rows of the current one
*/

//workArea describe the rows [y1, y2) computed by one worker
type workArea struct {
	y1      int
	y2      int
	changed bool
}

//NewMultithreaded creates the engine computing each generation with o.Workers goroutines
func NewMultithreaded(o *Options) *Gol {
	g := newGol(o)
	workers := g.options.Workers
	if workers < 1 {
		workers = DefWorkers
	}
	height := g.options.Height
	rowsPerWorker := height / workers
	if rowsPerWorker < DefMinRowsPerWorker {
		rowsPerWorker = DefMinRowsPerWorker
	} else if rowsPerWorker*workers < height {
		rowsPerWorker++
	}
	workAreas := make([]workArea, 0, workers)
	for y1 := 0; y1 < height; y1 += rowsPerWorker {
		y2 := y1 + rowsPerWorker
		if y2 > height {
			y2 = height
		}
		workAreas = append(workAreas, workArea{y1: y1, y2: y2})
	}
	g.options.Advanced["engine"] = "multithreaded"
	g.options.Advanced["Workers"] = len(workAreas)
	g.options.Advanced["Rows per worker"] = rowsPerWorker

	g.writePass = func() (changed bool) {
		var waitGroup sync.WaitGroup
		for i := range workAreas {
			wa := &workAreas[i]
			waitGroup.Add(1)
			go func() {
				defer waitGroup.Done()
				wa.changed = g.passRows(wa.y1, wa.y2)
			}()
		}
		waitGroup.Wait()
		for _, wa := range workAreas {
			changed = changed || wa.changed
		}
		return
	}
	return g
}
