package placement

import (
	"errors"
	"fmt"

	"github.com/1broseidon/moves/internal/platform"
)

// ErrNoActiveWindow is returned when nothing has focus.
var ErrNoActiveWindow = errors.New("no active window")

// Result describes an applied placement.
type Result struct {
	Window  platform.WindowID `json:"window"`
	Frame   platform.Rect     `json:"frame"`
	Display string            `json:"display"`
}

// Placer applies actions to the active window.
type Placer struct {
	backend platform.Backend
}

// NewPlacer returns a Placer driving backend.
func NewPlacer(backend platform.Backend) *Placer {
	return &Placer{backend: backend}
}

// Apply places the active window according to a.
func (p *Placer) Apply(a Action) (Result, error) {
	win, err := p.backend.ActiveWindow()
	if err != nil {
		return Result{}, fmt.Errorf("get active window: %w", err)
	}
	if win == 0 {
		return Result{}, ErrNoActiveWindow
	}

	current, err := p.backend.Frame(win)
	if err != nil {
		return Result{}, fmt.Errorf("get window frame: %w", err)
	}

	display, err := p.displayFor(current)
	if err != nil {
		return Result{}, err
	}

	var frame platform.Rect
	if a.Custom != nil {
		frame = a.Custom.Frame(display.Usable, current)
	} else {
		frame, err = TemplateFrame(a.Template, display.Usable, current)
		if err != nil {
			return Result{}, err
		}
	}

	if err := p.backend.MoveResize(win, frame); err != nil {
		return Result{}, fmt.Errorf("move window: %w", err)
	}
	return Result{Window: win, Frame: frame, Display: display.Name}, nil
}

// Template places the active window using the named template.
func (p *Placer) Template(name string) (Result, error) {
	if !IsTemplate(name) {
		return Result{}, fmt.Errorf("unknown template %q", name)
	}
	return p.Apply(Action{Template: Template(name)})
}

// Custom places the active window using c.
func (p *Placer) Custom(c Custom) (Result, error) {
	return p.Apply(Action{Custom: &c})
}

// displayFor picks the display containing the window centre, falling back
// to the active display.
func (p *Placer) displayFor(frame platform.Rect) (platform.Display, error) {
	center := platform.Point{X: frame.X + frame.Width/2, Y: frame.Y + frame.Height/2}
	if displays, err := p.backend.Displays(); err == nil {
		for _, d := range displays {
			if d.Bounds.Contains(center) {
				return d, nil
			}
		}
	}
	d, err := p.backend.ActiveDisplay()
	if err != nil {
		return platform.Display{}, fmt.Errorf("get active display: %w", err)
	}
	return d, nil
}
