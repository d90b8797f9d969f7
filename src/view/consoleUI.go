package view

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/apex/log"
	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"lifedit/src/app"
	"lifedit/src/editor"
	"lifedit/src/grid"
	"lifedit/src/runner"
	"lifedit/src/universe"
)

//ErrClosed is returned when the terminal main loop is not running anymore
var ErrClosed = errors.New("terminal is closed")

const (
	leftColumnWidth = 28
	minWindowHeight = 20
)

type keyBindings struct {
	key      interface{}
	name     string
	descr    string
	viewName string
}

//ConsoleUI is the terminal backend
//the key handlers queue the raw keys, Poll decodes them for the current state
type ConsoleUI struct {
	g    *gocui.Gui
	k    []keyBindings
	keys *runner.Queue[Key]

	liveFiller       string
	deadFiller       string
	cursorLiveFiller string
	cursorDeadFiller string

	//the size of the last drawn grid, the clicks outside are ignored
	gridWidth  int
	gridHeight int

	done chan struct{}
	mu   sync.Mutex
	err  error
}

var (
	stateDescr = map[app.State]string{
		app.Paused:  aurora.Colorize("paused", aurora.BlueFg).String(),
		app.Running: aurora.Colorize("running", aurora.CyanFg).String(),
		app.Editing: aurora.Colorize("editing", aurora.YellowFg).String(),
	}
)

func NewViewTerminal() (*ConsoleUI, error) {
	var err error
	t := ConsoleUI{
		keys:             runner.NewQueue[Key](),
		liveFiller:       aurora.Green("█").BgBrightGreen().String(),
		deadFiller:       "░",
		cursorLiveFiller: aurora.BrightYellow("█").BgYellow().String(),
		cursorDeadFiller: aurora.Yellow("▒").String(),
		done:             make(chan struct{}),
	}

	t.g, err = gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("failed to init terminal: %w", err)
	}

	t.g.Mouse = true
	t.k = []keyBindings{
		{gocui.KeyCtrlC, "^C", "Exit", ""},
		{'q', "Q", "Exit", ""},
		{gocui.KeyEnter, "ENTER", "Run/Stop, Done editing", ""},
		{'n', "N", "Next step", ""},
		{'e', "E", "Edit", ""},
		{'i', "IJKL", "Move cursor", ""},
		{'j', "", "", ""},
		{'k', "", "", ""},
		{'l', "", "", ""},
		{gocui.KeyArrowUp, "", "", ""},
		{gocui.KeyArrowDown, "", "", ""},
		{gocui.KeyArrowLeft, "", "", ""},
		{gocui.KeyArrowRight, "", "", ""},
		{gocui.KeySpace, "SPACE", "Toggle", ""},
		{'c', "C", "Clear", ""},
		{'w', "W", "Settle with random", ""},
		{'0', "0-9", "Presets", ""},
		{gocui.MouseLeft, "MOUSE", "Toggle the cell", "battlefield"},
	}
	for r := '1'; r <= '9'; r++ {
		t.k = append(t.k, keyBindings{r, "", "", ""})
	}
	t.g.SetManagerFunc(t.layout)

	if err := t.initKeyBindings(t.k); err != nil {
		t.g.Close()
		return nil, err
	}

	return &t, nil
}

func (t *ConsoleUI) initKeyBindings(k []keyBindings) error {
	for _, kb := range k {
		key := kb.key
		h := func(_ *gocui.Gui, v *gocui.View) error {
			switch key := key.(type) {
			case rune:
				return t.keys.Push(Key{Ch: key})
			case gocui.Key:
				if key == gocui.MouseLeft && v != nil {
					cx, cy := v.Cursor()
					return t.keys.Push(Key{Click: true, X: cx, Y: cy})
				}
				return t.keys.Push(Key{Key: key})
			}
			return nil
		}
		if err := t.g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, h); err != nil {
			return fmt.Errorf("failed to bind %v: %w", kb.name, err)
		}
	}
	return nil
}

//FieldSize returns the battlefield size in cells for the current terminal
func (t *ConsoleUI) FieldSize() (width int, height int) {
	maxX, maxY := t.g.Size()
	width = maxX - 1 - (leftColumnWidth + 1) - 1
	height = maxY - 5 - 3 - 1
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return
}

//Start runs the terminal main loop in the background
func (t *ConsoleUI) Start() {
	go func() {
		defer close(t.done)
		if err := t.g.MainLoop(); err != nil && err != gocui.ErrQuit {
			log.WithError(err).Error("terminal main loop failed")
			t.mu.Lock()
			t.err = err
			t.mu.Unlock()
		}
	}()
}

//Close stops the main loop and restores the terminal
func (t *ConsoleUI) Close() {
	t.g.Update(func(g *gocui.Gui) error {
		return gocui.ErrQuit
	})
	select {
	case <-t.done:
	case <-time.After(time.Second):
		log.Warn("terminal main loop did not stop")
	}
	t.keys.Close()
	t.g.Close()
}

//Poll returns the action decoded from the next key
func (t *ConsoleUI) Poll(state app.State, wait time.Duration) ([]app.Action, error) {
	if err := t.closed(); err != nil {
		return nil, err
	}
	k, ok := t.keys.PopTimeout(wait)
	if !ok {
		return nil, nil
	}
	if k.Click && (k.X >= t.gridWidth || k.Y >= t.gridHeight) {
		return nil, nil
	}
	a, ok := Decode(state, k)
	if !ok {
		return nil, nil
	}
	return []app.Action{a}, nil
}

func (t *ConsoleUI) DrawGame(g *grid.Grid[universe.Cell], f app.Frame) error {
	if err := t.closed(); err != nil {
		return err
	}
	t.render(t.fieldText(g, nil), f, nil)
	return nil
}

func (t *ConsoleUI) DrawEditor(g *grid.Grid[universe.Cell], cursor editor.Point, f app.Frame) error {
	if err := t.closed(); err != nil {
		return err
	}
	t.render(t.fieldText(g, &cursor), f, &cursor)
	return nil
}

func (t *ConsoleUI) closed() error {
	select {
	case <-t.done:
		t.mu.Lock()
		defer t.mu.Unlock()
		if t.err != nil {
			return fmt.Errorf("%w: %v", ErrClosed, t.err)
		}
		return ErrClosed
	default:
		return nil
	}
}

//fieldText renders the grid to the text, it is called with the grid lock held
func (t *ConsoleUI) fieldText(g *grid.Grid[universe.Cell], cursor *editor.Point) string {
	t.gridWidth, t.gridHeight = g.Width(), g.Height()
	var b bytes.Buffer
	for y := 0; y < g.Height(); y++ {
		//line feed char
		if y != 0 {
			b.WriteByte(10)
		}
		for x := 0; x < g.Width(); x++ {
			live := g.Get(x, y) == universe.Alive
			atCursor := cursor != nil && cursor.X == x && cursor.Y == y
			switch {
			case atCursor && live:
				b.WriteString(t.cursorLiveFiller)
			case atCursor:
				b.WriteString(t.cursorDeadFiller)
			case live:
				b.WriteString(t.liveFiller)
			default:
				b.WriteString(t.deadFiller)
			}
		}
	}
	return b.String()
}

//render writes the frame to the views
//it needs to call Update when calls from goroutine
func (t *ConsoleUI) render(field string, f app.Frame, cursor *editor.Point) {
	t.g.Update(func(g *gocui.Gui) error {
		t.renderField(g, field)
		t.renderConfiguration(g, f.Options)
		t.renderStatus(g, f, cursor)
		return nil
	})
}

func (t *ConsoleUI) renderField(g *gocui.Gui, text string) {
	v, e := g.View("battlefield")
	if e != nil {
		//the terminal is too small, the view is deleted
		return
	}
	//the entire field is redrawing at once now
	//this terminal driver allows to redraw only changed chars
	v.Clear()
	_, _ = fmt.Fprint(v, text)
}

func (t *ConsoleUI) renderStatus(g *gocui.Gui, f app.Frame, cursor *editor.Point) {
	s := f.Status
	if v, e := g.View("status"); e == nil {
		v.Clear()
		_, _ = fmt.Fprintln(v, t.renderProp("Step", "%v", s.IterationNum))
		_, _ = fmt.Fprintln(v, t.renderProp("Live Cells", "%v", s.LiveCells))
		_, _ = fmt.Fprintln(v, t.renderProp("Evaluation time", "%v", s.IterationTime.Round(time.Microsecond)))
		mode := stateDescr[f.State]
		if s.Finished {
			mode = aurora.Colorize("finished", aurora.RedFg).String()
		}
		_, _ = fmt.Fprintln(v, t.renderProp("Mode", "%v", mode))
		if cursor != nil {
			_, _ = fmt.Fprintln(v, t.renderProp("Cursor", "%v, %v", cursor.X, cursor.Y))
		}
	}
}

func (t *ConsoleUI) renderConfiguration(g *gocui.Gui, c universe.Options) {
	if v, e := g.View("configuration"); e == nil {
		v.Clear()
		_, _ = fmt.Fprintln(v, t.renderProp("Dimension", "%v x %v", c.Width, c.Height))
		_, _ = fmt.Fprintln(v, t.renderProp("Interval", "%v", c.Interval))
		_, _ = fmt.Fprintln(v, t.renderProp("Iterations", "%v steps", c.MaxSteps))
		_, _ = fmt.Fprintln(v, t.renderProp("Wrap", "%v", c.Wrap))
		_, _ = fmt.Fprintln(v, t.renderProp("Engine", "%v", c.Advanced["engine"]))
	}
}

func (t *ConsoleUI) renderProp(name string, valueformat string, values ...interface{}) string {
	return fmt.Sprintf(" "+aurora.Colorize(name, aurora.GreenFg).String()+": "+valueformat, values...)
}

func (t *ConsoleUI) layout(g *gocui.Gui) error {

	maxX, maxY := g.Size()

	if maxY < minWindowHeight {
		if _, err := t.headerLayout(g, maxY, "Terminal height too small"); err != nil {
			if err != gocui.ErrUnknownView {
				return err
			}
		}
		_ = g.DeleteView("configuration")
		_ = g.DeleteView("status")
		_ = g.DeleteView("battlefield")
		return nil
	}
	if _, err := t.headerLayout(g, 3, "This is \"The Life\" game simulation"); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
	}

	if v, err := g.SetView("configuration", 0, 3, leftColumnWidth, 3+(maxY-5-3)/2); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Configuration"
		v.Frame = true
	}

	if v, err := g.SetView("status", 0, 3+(maxY-5-3)/2+1, leftColumnWidth, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Status"
		v.Frame = true
	}

	if v, err := g.SetView("battlefield", leftColumnWidth+1, 3, maxX-1, maxY-5); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Title = "Battle Field"
		v.Frame = true
	}

	if v, err := g.SetView("help", -1, maxY-5, maxX, maxY-3); err != nil {
		if err != gocui.ErrUnknownView || v == nil {
			return err
		}
		v.Frame = false
		v.Wrap = true
		_, _ = fmt.Fprintln(v, t.helpText())
	}

	return nil
}

func (t *ConsoleUI) helpText() string {
	b := bytes.Buffer{}
	b.WriteString("KEYBINDINGS: ")
	first := true
	for _, k := range t.k {
		if k.name == "" {
			continue
		}
		if !first {
			b.WriteString(", ")
		}
		first = false
		b.WriteString(aurora.Green(k.name).String())
		b.WriteString(": ")
		b.WriteString(k.descr)
	}
	return b.String()
}

func (t *ConsoleUI) headerLayout(g *gocui.Gui, height int, text string) (v *gocui.View, err error) {
	maxX, _ := g.Size()
	if v, err = g.SetView("header", -1, -1, maxX+1, height); err != nil {
		if err == gocui.ErrUnknownView && v != nil {
			v.Frame = false
			v.BgColor = gocui.ColorCyan
			v.FgColor = gocui.ColorBlack
		}
	}
	if v != nil {
		v.Clear()
		pad := 0
		if maxX > len(text) {
			pad = (maxX - len(text)) / 2
		}
		_, _ = fmt.Fprintln(v, strings.Repeat("\n", height/2+1)+strings.Repeat(" ", pad)+text)
	}
	return
}
