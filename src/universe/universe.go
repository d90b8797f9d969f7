package universe

import "time"

//Cell is the single cell state, Dead or Alive
type Cell = uint8

const (
	Dead  Cell = 0
	Alive Cell = 1
)

//Options represents the Universe's configurable options
type Options struct {
	Width    int
	Height   int
	Interval time.Duration //delay after each generation, 0 runs at full speed
	MaxSteps int           //generation limit, 0 is unlimited
	Wrap     bool          //toroidal topology instead of the bounded one
	Workers  int           //goroutines computing one generation (multithreaded engine)
	//advanced options (engine specific)
	Advanced map[string]interface{}
}

//Status represents the status of the Universe at concrete moment
type Status struct {
	IterationNum  int
	LiveCells     int
	IterationTime time.Duration
	Changed       bool //the last generation differs from the previous one
	Finished      bool //MaxSteps generations were computed
}

//default options
const (
	DefSimulationInterval = time.Millisecond * 100
	DefMaxSteps           = 1000
	DefWidth              = 40
	DefHeight             = 15
	DefWorkers            = 4
	DefMinRowsPerWorker   = 3 //minimum rows for one worker
)

var DefaultOptions = Options{
	Width:    DefWidth,
	Height:   DefHeight,
	Interval: DefSimulationInterval,
	MaxSteps: DefMaxSteps,
	Wrap:     true,
	Workers:  DefWorkers,
}
