package view

import (
	"github.com/jroimartin/gocui"

	"lifedit/src/app"
	"lifedit/src/editor"
)

//Key is the raw input event: the char, the special key or the mouse click at X,Y
type Key struct {
	Ch    rune
	Key   gocui.Key
	Click bool
	X     int
	Y     int
}

//DecodeApp maps the key to the application action for the state
func DecodeApp(state app.State, k Key) (app.AppAction, bool) {
	switch {
	case k.Ch == 'q' || k.Key == gocui.KeyCtrlC:
		return app.Quit, true
	case k.Key == gocui.KeyEnter && state == app.Editing:
		return app.ExitEditMode, true
	case k.Key == gocui.KeyEnter:
		return app.TogglePause, true
	case k.Ch == 'e' && state != app.Editing:
		return app.EnterEditMode, true
	case k.Ch == 'n' && state == app.Paused:
		return app.Step, true
	}
	return 0, false
}

//DecodeEdit maps the key to the edit action
func DecodeEdit(k Key) (editor.Action, bool) {
	if k.Click {
		return editor.Action{Kind: editor.ToggleAt, X: k.X, Y: k.Y}, true
	}
	switch {
	case k.Ch == 'c':
		return editor.Action{Kind: editor.Clear}, true
	case k.Ch == 'w':
		return editor.Action{Kind: editor.Randomize}, true
	case k.Ch == 'i' || k.Key == gocui.KeyArrowUp:
		return editor.Action{Kind: editor.MoveCursorBy, Y: -1}, true
	case k.Ch == 'k' || k.Key == gocui.KeyArrowDown:
		return editor.Action{Kind: editor.MoveCursorBy, Y: 1}, true
	case k.Ch == 'j' || k.Key == gocui.KeyArrowLeft:
		return editor.Action{Kind: editor.MoveCursorBy, X: -1}, true
	case k.Ch == 'l' || k.Key == gocui.KeyArrowRight:
		return editor.Action{Kind: editor.MoveCursorBy, X: 1}, true
	case k.Ch == ' ' || k.Key == gocui.KeySpace:
		return editor.Action{Kind: editor.ToggleCell}, true
	case k.Ch >= '0' && k.Ch <= '9':
		return editor.Action{Kind: editor.AddPreset, Preset: int(k.Ch - '0')}, true
	}
	return editor.Action{}, false
}

//Decode maps the key to the application action, or to the edit action in the edit mode
func Decode(state app.State, k Key) (app.Action, bool) {
	if a, ok := DecodeApp(state, k); ok {
		return a, true
	}
	if state != app.Editing {
		return nil, false
	}
	if a, ok := DecodeEdit(k); ok {
		return a, true
	}
	return nil, false
}
