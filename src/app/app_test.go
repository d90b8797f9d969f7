package app

import (
	"errors"
	"strings"
	"testing"
	"time"

	"lifedit/src/editor"
	"lifedit/src/grid"
	"lifedit/src/presets"
	"lifedit/src/runner"
	"lifedit/src/universe"
)

var errTimeout = errors.New("timeout")

//script step: the actions are returned once until holds
type step struct {
	actions []Action
	until   func(f *fakeBackend) bool
}

type fakeBackend struct {
	script      []step
	states      []State
	draws       int
	editorDraws int
	last        *grid.Grid[universe.Cell]
	cursor      editor.Point
	frame       Frame
	drawErr     error
	deadline    time.Time
}

func newFakeBackend(script ...step) *fakeBackend {
	return &fakeBackend{script: script, deadline: time.Now().Add(5 * time.Second)}
}

func (f *fakeBackend) Poll(state State, wait time.Duration) ([]Action, error) {
	f.states = append(f.states, state)
	if len(f.script) == 0 {
		return []Action{Quit}, nil
	}
	s := f.script[0]
	if s.until != nil && !s.until(f) {
		if time.Now().After(f.deadline) {
			return nil, errTimeout
		}
		time.Sleep(wait)
		return nil, nil
	}
	f.script = f.script[1:]
	return s.actions, nil
}

func (f *fakeBackend) DrawGame(g *grid.Grid[universe.Cell], fr Frame) error {
	if f.drawErr != nil {
		return f.drawErr
	}
	f.draws++
	f.last = g.Clone()
	f.frame = fr
	return nil
}

func (f *fakeBackend) DrawEditor(g *grid.Grid[universe.Cell], cursor editor.Point, fr Frame) error {
	if f.drawErr != nil {
		return f.drawErr
	}
	f.editorDraws++
	f.last = g.Clone()
	f.cursor = cursor
	f.frame = fr
	return nil
}

type fakeController struct {
	starts   int
	pauses   int
	finishes int
	err      error
}

func (c *fakeController) Start() error {
	c.starts++
	return c.err
}

func (c *fakeController) Pause() error {
	c.pauses++
	return c.err
}

func (c *fakeController) Finish() error {
	c.finishes++
	return c.err
}

func (c *fakeController) Wait() {}

func newTestGol(w int, h int, wrap bool) *universe.Gol {
	o := universe.DefaultOptions
	o.Width, o.Height, o.Wrap, o.Interval, o.MaxSteps = w, h, wrap, 0, 0
	return universe.NewSequential(&o)
}

func newFakeApp(b Backend) (*App, *fakeController, *fakeController) {
	a := newApp(newTestGol(10, 10, true), editor.New(presets.Offsets, 1), b)
	gameRunner, editRunner := &fakeController{}, &fakeController{}
	a.gameRunner, a.editRunner = gameRunner, editRunner
	return a, gameRunner, editRunner
}

func Test_Transition(t *testing.T) {
	tests := []struct {
		from   State
		action AppAction
		to     State
		quit   bool
	}{
		{Paused, TogglePause, Running, false},
		{Running, TogglePause, Paused, false},
		{Editing, TogglePause, Editing, false},
		{Paused, EnterEditMode, Editing, false},
		{Running, EnterEditMode, Editing, false},
		{Editing, ExitEditMode, Paused, false},
		{Paused, ExitEditMode, Paused, false},
		{Running, Step, Running, false},
		{Paused, Quit, Paused, true},
		{Running, Quit, Running, true},
		{Editing, Quit, Editing, true},
	}
	for _, tt := range tests {
		to, quit := tt.from.Transition(tt.action)
		if to != tt.to || quit != tt.quit {
			t.Errorf("%v + %v: expected %v (quit %v), got %v (quit %v)", tt.from, tt.action, tt.to, tt.quit, to, quit)
		}
	}
}

func Test_EditModeScenario(t *testing.T) {
	b := newFakeBackend(
		step{actions: []Action{EnterEditMode}},
		step{actions: []Action{ExitEditMode}},
	)
	a, gameRunner, editRunner := newFakeApp(b)
	if err := a.Run(); err != nil {
		t.Fatal(err)
	}
	if a.State() != Paused {
		t.Fatalf("expected paused, got %v", a.State())
	}
	if editRunner.starts != 1 || editRunner.pauses != 1 {
		t.Fatalf("edit runner: expected 1 start and 1 pause, got %v and %v", editRunner.starts, editRunner.pauses)
	}
	if gameRunner.starts != 0 || gameRunner.pauses != 0 {
		t.Fatalf("game runner should not be touched, got %v starts and %v pauses", gameRunner.starts, gameRunner.pauses)
	}
	if editRunner.finishes != 1 || gameRunner.finishes != 1 {
		t.Fatal("expected both runners finished on quit")
	}
	if b.editorDraws == 0 || b.draws == 0 {
		t.Fatalf("expected both game and editor draws, got %v and %v", b.draws, b.editorDraws)
	}
}

func Test_TogglePauseAndEditFromRunning(t *testing.T) {
	b := newFakeBackend(
		step{actions: []Action{TogglePause}},
		step{actions: []Action{TogglePause}},
		step{actions: []Action{TogglePause}},
		step{actions: []Action{EnterEditMode}},
	)
	a, gameRunner, editRunner := newFakeApp(b)
	if err := a.Run(); err != nil {
		t.Fatal(err)
	}
	if gameRunner.starts != 2 || gameRunner.pauses != 2 {
		t.Fatalf("game runner: expected 2 starts and 2 pauses, got %v and %v", gameRunner.starts, gameRunner.pauses)
	}
	if editRunner.starts != 1 || editRunner.pauses != 0 {
		t.Fatalf("edit runner: expected 1 start, got %v starts and %v pauses", editRunner.starts, editRunner.pauses)
	}
	if a.State() != Editing {
		t.Fatalf("expected editing, got %v", a.State())
	}
	want := []State{Paused, Running, Paused, Running, Editing}
	for i, s := range want {
		if b.states[i] != s {
			t.Fatalf("poll %v: expected %v, got %v", i, s, b.states[i])
		}
	}
}

func Test_EditActionsOutsideEditModeDropped(t *testing.T) {
	b := newFakeBackend(
		step{actions: []Action{editor.Action{Kind: editor.ToggleCell}, editor.Action{Kind: editor.Clear}}},
	)
	a, _, _ := newFakeApp(b)
	if err := a.Run(); err != nil {
		t.Fatal(err)
	}
	if n := a.editActions.Len(); n != 0 {
		t.Fatalf("expected no queued edit actions, got %v", n)
	}
}

func Test_EditActionsQueued(t *testing.T) {
	b := newFakeBackend(
		step{actions: []Action{EnterEditMode, editor.Action{Kind: editor.ToggleCell}}},
		step{actions: []Action{editor.Action{Kind: editor.Clear}}},
	)
	a, _, _ := newFakeApp(b)
	if err := a.Run(); err != nil {
		t.Fatal(err)
	}
	//the fake edit runner never consumes the queue
	for _, want := range []editor.Kind{editor.ToggleCell, editor.Clear} {
		got, ok := a.editActions.TryPop(editor.Action{Kind: -1})
		if !ok || got.Kind != want {
			t.Fatalf("expected %v, got %v", want, got.Kind)
		}
	}
}

func Test_StepWhilePaused(t *testing.T) {
	b := newFakeBackend(
		step{actions: []Action{Step}},
		step{actions: []Action{Step}},
	)
	a, gameRunner, _ := newFakeApp(b)
	if err := a.Run(); err != nil {
		t.Fatal(err)
	}
	if n := b.frame.Status.IterationNum; n != 2 {
		t.Fatalf("expected 2 generations, got %v", n)
	}
	if gameRunner.starts != 0 {
		t.Fatal("step must not start the game runner")
	}
}

func Test_DrawErrorEndsLoop(t *testing.T) {
	drawErr := errors.New("backend is gone")
	b := newFakeBackend(step{actions: []Action{EnterEditMode}})
	b.drawErr = drawErr
	a, _, _ := newFakeApp(b)
	err := a.Run()
	if !errors.Is(err, drawErr) {
		t.Fatalf("expected draw error, got %v", err)
	}
	if !strings.Contains(err.Error(), "failed to draw editor") {
		t.Fatalf("expected the editor context, got %v", err)
	}

	b = newFakeBackend(step{})
	b.drawErr = drawErr
	a, _, _ = newFakeApp(b)
	if err := a.Run(); err == nil || !strings.Contains(err.Error(), "failed to draw game") {
		t.Fatalf("expected the game context, got %v", err)
	}
}

func Test_ControlFailureEndsLoop(t *testing.T) {
	b := newFakeBackend(step{actions: []Action{TogglePause}})
	a, gameRunner, _ := newFakeApp(b)
	gameRunner.err = runner.ErrFinished
	err := a.Run()
	if !errors.Is(err, runner.ErrFinished) {
		t.Fatalf("expected ErrFinished, got %v", err)
	}

	b = newFakeBackend()
	a, _, editRunner := newFakeApp(b)
	editRunner.err = runner.ErrFinished
	if err := a.Run(); !errors.Is(err, runner.ErrFinished) {
		t.Fatalf("expected ErrFinished on quit, got %v", err)
	}
}

func Test_EditsAppliedInOrder(t *testing.T) {
	b := newFakeBackend(
		step{actions: []Action{EnterEditMode}},
		step{actions: []Action{
			editor.Action{Kind: editor.MoveCursorBy, X: 1},
			editor.Action{Kind: editor.ToggleCell},
			editor.Action{Kind: editor.MoveCursorBy, X: 1},
			editor.Action{Kind: editor.ToggleCell},
			editor.Action{Kind: editor.MoveCursorBy, Y: 1},
			editor.Action{Kind: editor.ToggleCell},
			editor.Action{Kind: editor.ToggleCell},
			editor.Action{Kind: editor.ToggleAt, X: 7, Y: 7},
		}},
		step{
			actions: []Action{ExitEditMode},
			until: func(f *fakeBackend) bool {
				return f.last != nil && f.last.Get(7, 7) == universe.Alive && f.cursor == editor.Point{X: 7, Y: 7}
			},
		},
	)
	a := New(newTestGol(10, 10, true), editor.New(presets.Offsets, 1), b)
	if err := a.Run(); err != nil {
		t.Fatal(err)
	}
	g := b.last
	for _, c := range [][2]int{{1, 0}, {2, 0}, {7, 7}} {
		if g.Get(c[0], c[1]) != universe.Alive {
			t.Errorf("expected live cell at %v", c)
		}
	}
	if g.Get(2, 1) != universe.Dead {
		t.Error("expected dead cell at 2,1 after two toggles")
	}
	if a.State() != Paused {
		t.Fatalf("expected paused, got %v", a.State())
	}
}

func Test_GameRunnerAdvances(t *testing.T) {
	b := newFakeBackend(
		step{actions: []Action{TogglePause}},
		step{
			actions: []Action{TogglePause},
			until: func(f *fakeBackend) bool {
				return f.frame.Status.IterationNum >= 10
			},
		},
	)
	g := newTestGol(5, 5, false)
	g.Seed([][2]int{{1, 2}, {2, 2}, {3, 2}})
	a := New(g, editor.New(presets.Offsets, 1), b)
	if err := a.Run(); err != nil {
		t.Fatal(err)
	}
	st := g.Status()
	if st.IterationNum < 10 {
		t.Fatalf("expected at least 10 generations, got %v", st.IterationNum)
	}
	if st.LiveCells != 3 {
		t.Fatalf("expected the blinker to keep 3 live cells, got %v", st.LiveCells)
	}
}
