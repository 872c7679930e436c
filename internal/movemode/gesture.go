package movemode

import "github.com/1broseidon/moves/internal/platform"

// Window is the handle a gesture manipulates. Implementations talk to the
// window server; the tracker never caches them beyond one gesture.
type Window interface {
	Position() (platform.Point, error)
	SetPosition(platform.Point) error
	Size() (platform.Size, error)
	SetSize(platform.Size) error
}

// Framer is implemented by windows that can take position and size in one
// request. The tracker prefers it so a resize never shows a half-applied
// frame.
type Framer interface {
	SetFrame(platform.Rect) error
}

// Gesture is the snapshot taken when a move or resize starts.
type Gesture struct {
	ID         string
	Intention  Intention
	Window     Window
	StartMouse platform.Point
	StartFrame platform.Rect
	// Corner is set only for closest-corner resizes and stays fixed for the
	// lifetime of the gesture.
	Corner *Corner
	// Last is the most recently applied frame.
	Last platform.Rect
}

// MovedFrame returns the gesture's start frame translated by the cumulative
// pointer offset.
func MovedFrame(g Gesture, mouse platform.Point) platform.Rect {
	d := mouse.Sub(g.StartMouse)
	f := g.StartFrame
	f.X += d.X
	f.Y += d.Y
	return f
}

// ResizedFrame returns the frame produced by dragging to mouse. Without an
// anchored corner the bottom-right edge follows the pointer. With one, the
// anchored corner follows the pointer while the opposite corner stays put.
// Width and height never fall below minSize.
func ResizedFrame(g Gesture, mouse platform.Point, minSize platform.Size) platform.Rect {
	d := mouse.Sub(g.StartMouse)
	start := g.StartFrame
	minW := max(1, minSize.Width)
	minH := max(1, minSize.Height)

	if g.Corner == nil {
		return platform.Rect{
			X:      start.X,
			Y:      start.Y,
			Width:  max(minW, start.Width+d.X),
			Height: max(minH, start.Height+d.Y),
		}
	}

	x, w := resizeAxis(start.X, start.Width, g.Corner.Horizontal, d.X, minW)
	y, h := resizeAxis(start.Y, start.Height, g.Corner.Vertical, d.Y, minH)
	return platform.Rect{X: x, Y: y, Width: w, Height: h}
}

// resizeAxis moves one edge of the span [pos, pos+length) by delta and keeps
// the other edge fixed. If the moving edge crosses the fixed one the span is
// normalised so it still starts at its lower edge.
func resizeAxis(pos, length int, edge AxisEdge, delta, floor int) (int, int) {
	lo, hi := pos, pos+length

	moving, fixed := hi, lo
	if edge == EdgeMin {
		moving, fixed = lo, hi
	}
	moving += delta

	newLo, newHi := min(moving, fixed), max(moving, fixed)
	if newHi-newLo < floor {
		if moving >= fixed {
			newLo, newHi = fixed, fixed+floor
		} else {
			newLo, newHi = fixed-floor, fixed
		}
	}
	return newLo, newHi - newLo
}
