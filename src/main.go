package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/discard"
	"github.com/apex/log/handlers/text"
	"github.com/integrii/flaggy"

	"lifedit/src/app"
	"lifedit/src/editor"
	"lifedit/src/presets"
	"lifedit/src/universe"
	"lifedit/src/view"
)

var (
	engines = map[string]func(o *universe.Options) *universe.Gol{
		"sequential":    universe.NewSequential,
		"multithreaded": universe.NewMultithreaded,
	}
)

type EnvOptions struct {
	interactive bool
	randomData  bool
	bounded     bool
	engine      string
	preset      string
	logLevel    string
	logFile     string
}

func main() {
	eo, uo := initOptions()
	closeLog, err := initLog(eo)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	err = run(eo, uo)
	closeLog()
	if err != nil {
		log.WithError(err).Error("failed")
		if eo.interactive {
			//the log doesn't reach the terminal in the interactive mode
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func run(eo *EnvOptions, uo *universe.Options) error {
	var backend app.Backend
	if eo.interactive {
		t, err := view.NewViewTerminal()
		if err != nil {
			return err
		}
		defer t.Close()
		//the grid is sized once to the viewing area, resizing is not supported
		w, h := t.FieldSize()
		if uo.Width == 0 {
			uo.Width = w
		}
		if uo.Height == 0 {
			uo.Height = h
		}
		t.Start()
		backend = t
	} else {
		if uo.Width == 0 {
			uo.Width = universe.DefWidth
		}
		if uo.Height == 0 {
			uo.Height = universe.DefHeight
		}
		backend = view.NewConsoleOut(os.Stdout)
	}

	g := engines[eo.engine](uo)
	e := editor.New(presets.Offsets, time.Now().UnixNano())
	if eo.randomData {
		e.Randomize(g.Grid())
	} else if p, ok := presets.ByName(eo.preset); ok {
		g.Seed(p.Cells)
	}

	log.WithFields(log.Fields{
		"engine": eo.engine,
		"width":  uo.Width,
		"height": uo.Height,
		"wrap":   uo.Wrap,
	}).Info("simulation created")

	return app.New(g, e, backend).Run()
}

func initLog(eo *EnvOptions) (closeLog func(), err error) {
	closeLog = func() {}
	level, err := log.ParseLevel(eo.logLevel)
	if err != nil {
		return nil, err
	}
	log.SetLevel(level)

	switch {
	case eo.logFile != "":
		f, err := os.OpenFile(eo.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		closeLog = func() { _ = f.Close() }
		log.SetHandler(text.New(f))
	case eo.interactive:
		//the terminal belongs to the UI
		log.SetHandler(discard.New())
	default:
		log.SetHandler(cli.New(os.Stderr))
	}
	return closeLog, nil
}

func initOptions() (eo *EnvOptions, uo *universe.Options) {

	o := universe.DefaultOptions
	uo = &o
	uo.Width, uo.Height = 0, 0
	engineNames := make([]string, 0, len(engines))
	for k := range engines {
		engineNames = append(engineNames, k)
	}
	sort.Strings(engineNames)
	presetNames := make([]string, 0)
	for _, p := range presets.All() {
		presetNames = append(presetNames, p.Name)
	}
	eo = &EnvOptions{engine: "sequential", preset: "testSample1", logLevel: "info"}
	flaggy.SetName("lifedit")
	flaggy.SetDescription("\"The Life\" game simulation with the live editor")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.Int(&uo.Width, "x", "width", "Width of a simulation field (default: fit the terminal)")
	flaggy.Int(&uo.Height, "y", "height", "Height of a simulation field (default: fit the terminal)")
	flaggy.Duration(&uo.Interval, "i", "interval", "Simulation speed (interval between the steps) in format the number with 'ms' suffix, for example 150ms")
	flaggy.Int(&uo.MaxSteps, "s", "maxSteps", "Limit the simulation to maxSteps, 0 is unlimited")
	flaggy.Bool(&eo.bounded, "b", "bounded", "Don't wrap the field edges (the cells outside the field are dead)")
	flaggy.Int(&uo.Workers, "k", "workers", "Workers of the multithreaded engine")
	flaggy.Bool(&eo.interactive, "n", "interactive", "Start interactive mode")
	flaggy.Bool(&eo.randomData, "r", "random", "Settle with random data")
	flaggy.String(&eo.engine, "e", "engine", "Engine to use ["+strings.Join(engineNames, "|")+"]")
	flaggy.String(&eo.preset, "p", "preset", "Initial pattern ["+strings.Join(presetNames, "|")+"]")
	flaggy.String(&eo.logLevel, "l", "logLevel", "Log level [debug|info|warn|error]")
	flaggy.String(&eo.logFile, "f", "logFile", "Write the log to the file")

	flaggy.Parse()

	uo.Wrap = !eo.bounded

	if _, ok := engines[eo.engine]; !ok {
		flaggy.ShowHelpAndExit("unknown engine")
	}
	if _, ok := presets.ByName(eo.preset); !ok {
		flaggy.ShowHelpAndExit("unknown preset")
	}
	if uo.Width < 0 || uo.Height < 0 {
		flaggy.ShowHelpAndExit("invalid field size")
	}

	return
}
