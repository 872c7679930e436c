package movemode

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/1broseidon/moves/internal/platform"
)

// DefaultMinSize is the smallest frame a resize can produce.
var DefaultMinSize = platform.Size{Width: 40, Height: 40}

// Options controls how resize gestures behave.
type Options struct {
	// ResizeFromClosestCorner anchors resizes to the corner nearest the
	// pointer when the gesture starts. When false the bottom-right edge
	// follows the pointer.
	ResizeFromClosestCorner bool
	MinSize                 platform.Size
}

// Tracker turns intention changes and pointer samples into window geometry.
// It holds at most one live gesture.
type Tracker struct {
	mu        sync.Mutex
	opts      Options
	intention Intention
	gesture   *Gesture

	newID func() string
}

// NewTracker creates an idle tracker.
func NewTracker(opts Options) *Tracker {
	return &Tracker{
		opts:  normalizeOptions(opts),
		newID: uuid.NewString,
	}
}

func normalizeOptions(opts Options) Options {
	if opts.MinSize.Width < 1 {
		opts.MinSize.Width = 1
	}
	if opts.MinSize.Height < 1 {
		opts.MinSize.Height = 1
	}
	return opts
}

// SetOptions replaces the options. A live gesture keeps its anchored corner;
// the new minimum size applies from the next pointer sample.
func (t *Tracker) SetOptions(opts Options) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.opts = normalizeOptions(opts)
}

// Intention returns the current intention.
func (t *Tracker) Intention() Intention {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.intention
}

// Gesture returns a copy of the live gesture, if any.
func (t *Tracker) Gesture() (Gesture, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.gesture == nil {
		return Gesture{}, false
	}
	return *t.gesture, true
}

// SetIntention switches the tracker to in. Any live gesture ends. When in is
// move or resize and win is non-nil a new gesture starts from mouse and the
// window's current geometry. A nil win leaves the intention set without a
// gesture, so pointer samples are ignored until the next change.
//
// The returned gesture is nil when none was started. Setting the current
// intention again is a no-op.
func (t *Tracker) SetIntention(in Intention, mouse platform.Point, win Window) (*Gesture, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if in == t.intention {
		return nil, nil
	}

	t.gesture = nil
	t.intention = in

	if !in.Active() || win == nil {
		return nil, nil
	}

	pos, err := win.Position()
	if err != nil {
		return nil, fmt.Errorf("read window position: %w", err)
	}
	size, err := win.Size()
	if err != nil {
		return nil, fmt.Errorf("read window size: %w", err)
	}

	start := platform.Rect{X: pos.X, Y: pos.Y, Width: size.Width, Height: size.Height}
	g := &Gesture{
		ID:         t.newID(),
		Intention:  in,
		Window:     win,
		StartMouse: mouse,
		StartFrame: start,
		Last:       start,
	}
	if in == IntentionResize && t.opts.ResizeFromClosestCorner {
		c := ResolveCorner(start, mouse)
		g.Corner = &c
	}

	t.gesture = g
	out := *g
	return &out, nil
}

// MouseMoved applies the pointer sample to the live gesture. It returns the
// frame that was applied and whether anything was sent to the window.
// Samples that would not change the frame are dropped.
func (t *Tracker) MouseMoved(mouse platform.Point) (platform.Rect, bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	g := t.gesture
	if g == nil {
		return platform.Rect{}, false, nil
	}

	var next platform.Rect
	switch g.Intention {
	case IntentionMove:
		next = MovedFrame(*g, mouse)
	case IntentionResize:
		next = ResizedFrame(*g, mouse, t.opts.MinSize)
	default:
		return platform.Rect{}, false, nil
	}

	if next == g.Last {
		return next, false, nil
	}

	if err := apply(g.Window, g.Last, next); err != nil {
		return platform.Rect{}, false, err
	}
	g.Last = next
	return next, true, nil
}

// apply sends next to win, touching only what changed since prev unless the
// window accepts a whole frame at once.
func apply(win Window, prev, next platform.Rect) error {
	if f, ok := win.(Framer); ok {
		return f.SetFrame(next)
	}
	if next.Origin() != prev.Origin() {
		if err := win.SetPosition(next.Origin()); err != nil {
			return fmt.Errorf("set window position: %w", err)
		}
	}
	if next.Size() != prev.Size() {
		if err := win.SetSize(next.Size()); err != nil {
			return fmt.Errorf("set window size: %w", err)
		}
	}
	return nil
}
