package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/apex/log"

	"lifedit/src/editor"
	"lifedit/src/grid"
	"lifedit/src/runner"
	"lifedit/src/universe"
)

const (
	DefPollInterval = 20 * time.Millisecond //bounded wait for the user input
	DefEditIdle     = 50 * time.Millisecond //edit worker wait for the next action before it checks the control signals
)

//Action is the decoded user input, AppAction or editor.Action
type Action interface{}

//Frame is what the backend displays besides the grid
type Frame struct {
	State   State
	Status  universe.Status
	Options universe.Options
}

//Backend is the display and the input source
//the Draw functions are called with the grid lock held, they must not keep the grid
type Backend interface {
	//Poll returns the actions decoded for the state, waiting no longer than wait
	Poll(state State, wait time.Duration) ([]Action, error)
	DrawGame(g *grid.Grid[universe.Cell], f Frame) error
	DrawEditor(g *grid.Grid[universe.Cell], cursor editor.Point, f Frame) error
}

//Controller is the background worker control, implemented by runner.Runner
type Controller interface {
	Start() error
	Pause() error
	Finish() error
	Wait()
}

//App is the foreground control loop
//it owns the shared grid and routes the user actions to the game and edit runners
type App struct {
	backend Backend
	state   State
	game    struct {
		*universe.Gol
		sync.Mutex
	}
	editor struct {
		*editor.Editor
		sync.Mutex
	}
	editActions  *runner.Queue[editor.Action]
	gameRunner   Controller
	editRunner   Controller
	pollInterval time.Duration
	editIdle     time.Duration
}

//New creates the application with the paused game and edit runners
func New(g *universe.Gol, e *editor.Editor, b Backend) *App {
	a := newApp(g, e, b)
	a.gameRunner = runner.New(a.gameStep)
	a.editRunner = runner.New(a.editStep)
	return a
}

func newApp(g *universe.Gol, e *editor.Editor, b Backend) *App {
	a := &App{
		backend:      b,
		state:        Paused,
		editActions:  runner.NewQueue[editor.Action](),
		pollInterval: DefPollInterval,
		editIdle:     DefEditIdle,
	}
	a.game.Gol = g
	a.editor.Editor = e
	return a
}

//State returns the current application mode
func (a *App) State() State {
	return a.state
}

//Run is the control loop: polls the input, switches the state, draws the grid
//returns nil on Quit, any failure ends the loop and stops both runners
func (a *App) Run() error {
	log.WithField("state", a.state).Info("control loop started")
	err := a.loop()
	if err != nil {
		a.abort()
	}
	return err
}

func (a *App) loop() error {
	for {
		actions, err := a.backend.Poll(a.state, a.pollInterval)
		if err != nil {
			return fmt.Errorf("failed to poll input: %w", err)
		}
		next := a.state
		for _, action := range actions {
			switch action := action.(type) {
			case AppAction:
				switch {
				case action == Quit:
					log.Info("quit")
					return a.shutdown()
				case action == Step && next == Paused:
					a.stepOnce()
				default:
					next, _ = next.Transition(action)
				}
			case editor.Action:
				//the grid is mutated by the edit runner only
				if next != Editing {
					log.WithField("action", action.Kind).Debug("edit action outside of the edit mode is dropped")
					continue
				}
				if err := a.editActions.Push(action); err != nil {
					return fmt.Errorf("failed to queue edit action: %w", err)
				}
			default:
				log.Warnf("unknown action %T", action)
			}
		}
		if err := a.switchState(next); err != nil {
			return err
		}
		if err := a.draw(); err != nil {
			return err
		}
	}
}

//switchState pauses the runner of the left state and starts the runner of the new one
func (a *App) switchState(next State) error {
	if next == a.state {
		return nil
	}
	log.WithFields(log.Fields{"from": a.state, "to": next}).Debug("state changed")
	switch a.state {
	case Editing:
		if err := a.editRunner.Pause(); err != nil {
			return fmt.Errorf("failed to pause edit runner: %w", err)
		}
	case Running:
		if err := a.gameRunner.Pause(); err != nil {
			return fmt.Errorf("failed to pause game runner: %w", err)
		}
	}
	a.state = next
	switch a.state {
	case Editing:
		if err := a.editRunner.Start(); err != nil {
			return fmt.Errorf("failed to start edit runner: %w", err)
		}
	case Running:
		if err := a.gameRunner.Start(); err != nil {
			return fmt.Errorf("failed to start game runner: %w", err)
		}
	}
	return nil
}

//shutdown finishes both runners and waits until their current step is completed
func (a *App) shutdown() error {
	if err := a.editRunner.Finish(); err != nil {
		return fmt.Errorf("failed to finish edit runner: %w", err)
	}
	if err := a.gameRunner.Finish(); err != nil {
		return fmt.Errorf("failed to finish game runner: %w", err)
	}
	a.editRunner.Wait()
	a.gameRunner.Wait()
	return nil
}

//abort stops the runners after a failure, their errors are already irrelevant
func (a *App) abort() {
	_ = a.editRunner.Finish()
	_ = a.gameRunner.Finish()
	a.editRunner.Wait()
	a.gameRunner.Wait()
}

//draw displays the latest committed grid, the lock is held during the call
func (a *App) draw() error {
	a.game.Lock()
	defer a.game.Unlock()
	f := Frame{State: a.state, Status: a.game.Status(), Options: a.game.Options()}
	if a.state == Editing {
		a.editor.Lock()
		cursor := a.editor.Cursor()
		a.editor.Unlock()
		if err := a.backend.DrawEditor(a.game.Grid(), cursor, f); err != nil {
			return fmt.Errorf("failed to draw editor: %w", err)
		}
		return nil
	}
	if err := a.backend.DrawGame(a.game.Grid(), f); err != nil {
		return fmt.Errorf("failed to draw game: %w", err)
	}
	return nil
}

//stepOnce computes a single generation from the control loop while paused
func (a *App) stepOnce() {
	a.game.Lock()
	defer a.game.Unlock()
	if !a.game.Finished() {
		a.game.Step()
	}
}

//gameStep is the game runner's unit of work
//the interval sleep happens after the lock is released
func (a *App) gameStep() {
	a.game.Lock()
	finished := a.game.Finished()
	if !finished {
		a.game.Step()
	}
	interval := a.game.Options().Interval
	a.game.Unlock()
	if finished && interval < a.editIdle {
		//nothing to compute, don't spin
		interval = a.editIdle
	}
	if interval > 0 {
		time.Sleep(interval)
	}
}

//editStep is the edit runner's unit of work
//it waits for the next action before locking anything
func (a *App) editStep() {
	action, ok := a.editActions.PopTimeout(a.editIdle)
	if !ok {
		return
	}
	a.game.Lock()
	defer a.game.Unlock()
	a.editor.Lock()
	defer a.editor.Unlock()
	a.editor.Apply(action, a.game.Grid())
}
