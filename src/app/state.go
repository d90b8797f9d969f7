package app

import "fmt"

//State is the application mode, exactly one is active at a time
type State int

const (
	Paused State = iota
	Running
	Editing
)

var stateNames = map[State]string{
	Paused:  "paused",
	Running: "running",
	Editing: "editing",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("State(%d)", int(s))
}

//AppAction is the user command changing the application mode
type AppAction int

const (
	Quit AppAction = iota
	TogglePause
	EnterEditMode
	ExitEditMode
	Step
)

var appActionNames = map[AppAction]string{
	Quit:          "quit",
	TogglePause:   "togglePause",
	EnterEditMode: "enterEditMode",
	ExitEditMode:  "exitEditMode",
	Step:          "step",
}

func (a AppAction) String() string {
	if n, ok := appActionNames[a]; ok {
		return n
	}
	return fmt.Sprintf("AppAction(%d)", int(a))
}

//Transition returns the state following the action
//quit is true when the application must terminate
func (s State) Transition(a AppAction) (next State, quit bool) {
	switch a {
	case Quit:
		return s, true
	case TogglePause:
		switch s {
		case Paused:
			return Running, false
		case Running:
			return Paused, false
		}
	case EnterEditMode:
		return Editing, false
	case ExitEditMode:
		if s == Editing {
			return Paused, false
		}
	}
	return s, false
}
