package runner

import (
	"errors"
	"fmt"
)

//Control is the signal sent to the Runner's worker
type Control int

const (
	Finish Control = iota
	Play
	Pause
)

var controlNames = map[Control]string{
	Finish: "finish",
	Play:   "play",
	Pause:  "pause",
}

func (c Control) String() string {
	if s, ok := controlNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Control(%d)", int(c))
}

//ErrFinished is returned when the worker is already gone and the signal could not be delivered
var ErrFinished = errors.New("runner is finished")

//Runner runs the step function repeatedly on its own goroutine while playing
//the runner starts paused, Finish stops it permanently
type Runner struct {
	step    func()
	control *Queue[Control]
	done    chan struct{}
}

//New starts the paused worker goroutine for step
//step is called back-to-back while playing, any delay between the calls belongs to step itself
func New(step func()) *Runner {
	r := &Runner{
		step:    step,
		control: NewQueue[Control](),
		done:    make(chan struct{}),
	}
	go r.mainLoop()
	return r
}

//Start resumes calling the step function
func (r *Runner) Start() error {
	return r.send(Play)
}

//Pause stops calling the step function after the current call is finished
func (r *Runner) Pause() error {
	return r.send(Pause)
}

//Finish stops the worker after the current call is finished
//the runner can't be restarted, the further calls fail with ErrFinished
func (r *Runner) Finish() error {
	if err := r.send(Finish); err != nil {
		return err
	}
	r.control.Close()
	return nil
}

//Done is closed when the worker goroutine exits
func (r *Runner) Done() <-chan struct{} {
	return r.done
}

//Wait blocks until the worker goroutine exits
func (r *Runner) Wait() {
	<-r.done
}

func (r *Runner) send(c Control) error {
	select {
	case <-r.done:
		return ErrFinished
	default:
	}
	if err := r.control.Push(c); err != nil {
		return ErrFinished
	}
	return nil
}

//mainLoop waits for the signal while paused and polls for it before each step while playing
func (r *Runner) mainLoop() {
	defer close(r.done)
	paused := true
	for {
		var c Control
		var ok bool
		if paused {
			c, ok = r.control.Pop()
		} else {
			c, ok = r.control.TryPop(Play)
		}
		if !ok {
			return
		}
		switch c {
		case Finish:
			return
		case Pause:
			paused = true
		case Play:
			paused = false
			r.step()
		}
	}
}
