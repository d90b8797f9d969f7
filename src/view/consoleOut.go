package view

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/logrusorgru/aurora"

	"lifedit/src/app"
	"lifedit/src/editor"
	"lifedit/src/grid"
	"lifedit/src/universe"
)

//ConsoleOut is the headless backend
//it starts the simulation, prints the progress and quits when the universe is finished, dead or stable
type ConsoleOut struct {
	w           io.Writer
	started     bool
	startTime   time.Time
	registered  bool
	last        universe.Status
	lastPrinted int
}

func NewConsoleOut(w io.Writer) *ConsoleOut {
	return &ConsoleOut{w: w}
}

func (c *ConsoleOut) Poll(state app.State, wait time.Duration) ([]app.Action, error) {
	if !c.started {
		c.started = true
		c.startTime = time.Now()
		if _, err := fmt.Fprintln(c.w, "\nSimulation started..."); err != nil {
			return nil, err
		}
		return []app.Action{app.TogglePause}, nil
	}
	if c.finished() {
		return []app.Action{app.Quit}, c.printResult()
	}
	time.Sleep(wait)
	return nil, nil
}

func (c *ConsoleOut) DrawGame(_ *grid.Grid[universe.Cell], f app.Frame) error {
	if !c.registered {
		c.registered = true
		if err := c.printConfiguration(f.Options); err != nil {
			return err
		}
	}
	c.last = f.Status
	st := f.Status
	if f.State == app.Running && st.IterationNum/10 > c.lastPrinted/10 {
		c.lastPrinted = st.IterationNum
		if _, err := fmt.Fprintf(c.w, "  Iterations done: %v\n", st.IterationNum); err != nil {
			return err
		}
	}
	return nil
}

func (c *ConsoleOut) DrawEditor(g *grid.Grid[universe.Cell], _ editor.Point, f app.Frame) error {
	return c.DrawGame(g, f)
}

//finished reports whether the simulation reached MaxSteps, died out or stopped changing
func (c *ConsoleOut) finished() bool {
	st := c.last
	if st.Finished {
		return true
	}
	return st.IterationNum > 0 && (st.LiveCells == 0 || !st.Changed)
}

func (c *ConsoleOut) printConfiguration(o universe.Options) error {
	if _, err := fmt.Fprintln(c.w, "Running configuration:"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.w, "  Dimension: %v x %v\n", o.Width, o.Height); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.w, "  Interval: %v\n", o.Interval); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(c.w, "  Max iterations: %v steps\n", o.MaxSteps); err != nil {
		return err
	}
	return c.printHashData(o.Advanced)
}

func (c *ConsoleOut) printResult() error {
	totalTime := time.Since(c.startTime).Round(time.Millisecond)
	resultData := map[string]interface{}{
		"Last iteration": c.last.IterationNum,
		"Total time":     totalTime,
		"Live cells":     c.last.LiveCells,
	}
	if _, err := fmt.Fprintln(c.w, aurora.Red("\nFinished:").String()); err != nil {
		return err
	}
	return c.printHashData(resultData)
}

func (c *ConsoleOut) printHashData(d map[string]interface{}) error {
	propNames := make([]string, 0, len(d))
	for k := range d {
		propNames = append(propNames, k)
	}
	sort.Strings(propNames)
	for _, propName := range propNames {
		if _, err := fmt.Fprintf(c.w, "  %s: %v\n", aurora.Green(propName), d[propName]); err != nil {
			return err
		}
	}
	return nil
}
