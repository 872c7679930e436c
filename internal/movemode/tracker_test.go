package movemode

import (
	"errors"
	"fmt"
	"testing"

	"github.com/1broseidon/moves/internal/platform"
)

type fakeWindow struct {
	frame     platform.Rect
	positions []platform.Point
	sizes     []platform.Size
	readErr   error
}

func (w *fakeWindow) Position() (platform.Point, error) {
	if w.readErr != nil {
		return platform.Point{}, w.readErr
	}
	return w.frame.Origin(), nil
}

func (w *fakeWindow) Size() (platform.Size, error) {
	if w.readErr != nil {
		return platform.Size{}, w.readErr
	}
	return w.frame.Size(), nil
}

func (w *fakeWindow) SetPosition(p platform.Point) error {
	w.positions = append(w.positions, p)
	w.frame.X, w.frame.Y = p.X, p.Y
	return nil
}

func (w *fakeWindow) SetSize(s platform.Size) error {
	w.sizes = append(w.sizes, s)
	w.frame.Width, w.frame.Height = s.Width, s.Height
	return nil
}

type fakeFramer struct {
	fakeWindow
	frames []platform.Rect
}

func (w *fakeFramer) SetFrame(r platform.Rect) error {
	w.frames = append(w.frames, r)
	w.frame = r
	return nil
}

func newTestTracker(opts Options) *Tracker {
	t := NewTracker(opts)
	n := 0
	t.newID = func() string {
		n++
		return fmt.Sprintf("g%d", n)
	}
	return t
}

func TestTrackerMoveAppliesCumulativeOffset(t *testing.T) {
	tr := newTestTracker(Options{MinSize: DefaultMinSize})
	win := &fakeWindow{frame: platform.Rect{X: 100, Y: 200, Width: 300, Height: 150}}

	g, err := tr.SetIntention(IntentionMove, platform.Point{X: 150, Y: 250}, win)
	if err != nil {
		t.Fatalf("SetIntention: %v", err)
	}
	if g == nil || g.ID != "g1" {
		t.Fatalf("expected gesture g1, got %+v", g)
	}

	for _, p := range []platform.Point{{X: 160, Y: 255}, {X: 200, Y: 240}} {
		if _, _, err := tr.MouseMoved(p); err != nil {
			t.Fatalf("MouseMoved(%+v): %v", p, err)
		}
	}

	want := platform.Rect{X: 150, Y: 190, Width: 300, Height: 150}
	if win.frame != want {
		t.Fatalf("frame = %+v, want %+v", win.frame, want)
	}
	if len(win.sizes) != 0 {
		t.Fatalf("move should never resize, got %v", win.sizes)
	}
}

func TestTrackerClassicResizeFloorsAtMinSize(t *testing.T) {
	tr := newTestTracker(Options{MinSize: platform.Size{Width: 50, Height: 60}})
	win := &fakeWindow{frame: platform.Rect{X: 0, Y: 0, Width: 200, Height: 200}}

	if _, err := tr.SetIntention(IntentionResize, platform.Point{X: 190, Y: 190}, win); err != nil {
		t.Fatalf("SetIntention: %v", err)
	}

	if _, _, err := tr.MouseMoved(platform.Point{X: 220, Y: 170}); err != nil {
		t.Fatalf("MouseMoved: %v", err)
	}
	if got := win.frame.Size(); got != (platform.Size{Width: 230, Height: 180}) {
		t.Fatalf("size = %+v", got)
	}

	if _, _, err := tr.MouseMoved(platform.Point{X: -500, Y: -500}); err != nil {
		t.Fatalf("MouseMoved: %v", err)
	}
	if got := win.frame; got != (platform.Rect{X: 0, Y: 0, Width: 50, Height: 60}) {
		t.Fatalf("frame = %+v, want floored size at the same origin", got)
	}
	if len(win.positions) != 0 {
		t.Fatalf("classic resize should not move the origin, got %v", win.positions)
	}
}

func TestTrackerCornerResizeKeepsOppositeCorner(t *testing.T) {
	tr := newTestTracker(Options{ResizeFromClosestCorner: true, MinSize: platform.Size{Width: 10, Height: 10}})
	win := &fakeFramer{fakeWindow: fakeWindow{frame: platform.Rect{X: 100, Y: 100, Width: 200, Height: 100}}}

	g, err := tr.SetIntention(IntentionResize, platform.Point{X: 105, Y: 105}, win)
	if err != nil {
		t.Fatalf("SetIntention: %v", err)
	}
	if g.Corner == nil || *g.Corner != CornerTopLeft {
		t.Fatalf("expected top-left corner, got %v", g.Corner)
	}

	if _, _, err := tr.MouseMoved(platform.Point{X: 85, Y: 95}); err != nil {
		t.Fatalf("MouseMoved: %v", err)
	}
	want := platform.Rect{X: 80, Y: 90, Width: 220, Height: 110}
	if win.frame != want {
		t.Fatalf("frame = %+v, want %+v", win.frame, want)
	}

	// Dragging the top-left corner past the bottom-right one flips the span
	// around the fixed edge.
	if _, _, err := tr.MouseMoved(platform.Point{X: 405, Y: 305}); err != nil {
		t.Fatalf("MouseMoved: %v", err)
	}
	want = platform.Rect{X: 300, Y: 200, Width: 100, Height: 100}
	if win.frame != want {
		t.Fatalf("frame = %+v, want %+v", win.frame, want)
	}

	// The corner is chosen once per gesture.
	cur, ok := tr.Gesture()
	if !ok || *cur.Corner != CornerTopLeft {
		t.Fatalf("corner changed mid-gesture: %+v", cur.Corner)
	}
	if len(win.positions) != 0 || len(win.sizes) != 0 {
		t.Fatalf("framer windows should only receive SetFrame")
	}
}

func TestTrackerCornerResizeFloorExtendsFromFixedEdge(t *testing.T) {
	tr := newTestTracker(Options{ResizeFromClosestCorner: true, MinSize: platform.Size{Width: 40, Height: 40}})
	win := &fakeWindow{frame: platform.Rect{X: 0, Y: 0, Width: 100, Height: 100}}

	if _, err := tr.SetIntention(IntentionResize, platform.Point{X: 100, Y: 100}, win); err != nil {
		t.Fatalf("SetIntention: %v", err)
	}
	// Bottom-right edge dragged to just past the top-left: the span would be
	// 5px wide, so it grows to the floor on the moving side.
	if _, _, err := tr.MouseMoved(platform.Point{X: 5, Y: 5}); err != nil {
		t.Fatalf("MouseMoved: %v", err)
	}
	want := platform.Rect{X: 0, Y: 0, Width: 40, Height: 40}
	if win.frame != want {
		t.Fatalf("frame = %+v, want %+v", win.frame, want)
	}

	if _, _, err := tr.MouseMoved(platform.Point{X: -5, Y: -5}); err != nil {
		t.Fatalf("MouseMoved: %v", err)
	}
	want = platform.Rect{X: -40, Y: -40, Width: 40, Height: 40}
	if win.frame != want {
		t.Fatalf("frame = %+v, want %+v", win.frame, want)
	}
}

func TestTrackerSameIntentionIsNoop(t *testing.T) {
	tr := newTestTracker(Options{})
	win := &fakeWindow{frame: platform.Rect{Width: 100, Height: 100}}

	if _, err := tr.SetIntention(IntentionMove, platform.Point{}, win); err != nil {
		t.Fatalf("SetIntention: %v", err)
	}
	g, err := tr.SetIntention(IntentionMove, platform.Point{X: 50, Y: 50}, win)
	if err != nil || g != nil {
		t.Fatalf("repeated intention should be a no-op, got %+v, %v", g, err)
	}
	cur, ok := tr.Gesture()
	if !ok || cur.ID != "g1" || cur.StartMouse != (platform.Point{}) {
		t.Fatalf("live gesture replaced: %+v", cur)
	}
}

func TestTrackerNilWindowIgnoresMouse(t *testing.T) {
	tr := newTestTracker(Options{})

	g, err := tr.SetIntention(IntentionMove, platform.Point{}, nil)
	if err != nil || g != nil {
		t.Fatalf("expected no gesture, got %+v, %v", g, err)
	}
	if tr.Intention() != IntentionMove {
		t.Fatalf("intention = %s, want move", tr.Intention())
	}
	if _, applied, err := tr.MouseMoved(platform.Point{X: 10, Y: 10}); applied || err != nil {
		t.Fatalf("mouse move without gesture applied=%v err=%v", applied, err)
	}
}

func TestTrackerIdleEndsGesture(t *testing.T) {
	tr := newTestTracker(Options{})
	win := &fakeWindow{frame: platform.Rect{Width: 100, Height: 100}}

	if _, err := tr.SetIntention(IntentionMove, platform.Point{}, win); err != nil {
		t.Fatalf("SetIntention: %v", err)
	}
	if _, err := tr.SetIntention(IntentionIdle, platform.Point{}, win); err != nil {
		t.Fatalf("SetIntention: %v", err)
	}
	if _, ok := tr.Gesture(); ok {
		t.Fatalf("gesture should end on idle")
	}
	if _, applied, _ := tr.MouseMoved(platform.Point{X: 30, Y: 30}); applied {
		t.Fatalf("idle tracker applied a frame")
	}
	if win.frame.X != 0 || win.frame.Y != 0 {
		t.Fatalf("window moved while idle: %+v", win.frame)
	}
}

func TestTrackerSwitchingModeResnapshots(t *testing.T) {
	tr := newTestTracker(Options{MinSize: platform.Size{Width: 1, Height: 1}})
	win := &fakeWindow{frame: platform.Rect{X: 10, Y: 10, Width: 100, Height: 100}}

	if _, err := tr.SetIntention(IntentionMove, platform.Point{X: 0, Y: 0}, win); err != nil {
		t.Fatalf("SetIntention: %v", err)
	}
	if _, _, err := tr.MouseMoved(platform.Point{X: 20, Y: 20}); err != nil {
		t.Fatalf("MouseMoved: %v", err)
	}

	g, err := tr.SetIntention(IntentionResize, platform.Point{X: 20, Y: 20}, win)
	if err != nil {
		t.Fatalf("SetIntention: %v", err)
	}
	if g.ID != "g2" || g.StartFrame != (platform.Rect{X: 30, Y: 30, Width: 100, Height: 100}) {
		t.Fatalf("resize gesture did not snapshot moved window: %+v", g)
	}

	if _, _, err := tr.MouseMoved(platform.Point{X: 30, Y: 25}); err != nil {
		t.Fatalf("MouseMoved: %v", err)
	}
	want := platform.Rect{X: 30, Y: 30, Width: 110, Height: 105}
	if win.frame != want {
		t.Fatalf("frame = %+v, want %+v", win.frame, want)
	}
}

func TestTrackerDropsUnchangedFrames(t *testing.T) {
	tr := newTestTracker(Options{})
	win := &fakeFramer{fakeWindow: fakeWindow{frame: platform.Rect{Width: 100, Height: 100}}}

	if _, err := tr.SetIntention(IntentionMove, platform.Point{}, win); err != nil {
		t.Fatalf("SetIntention: %v", err)
	}
	if _, applied, _ := tr.MouseMoved(platform.Point{}); applied {
		t.Fatalf("zero offset should not be applied")
	}
	tr.MouseMoved(platform.Point{X: 5})
	tr.MouseMoved(platform.Point{X: 5})
	if len(win.frames) != 1 {
		t.Fatalf("expected 1 applied frame, got %d", len(win.frames))
	}
}

func TestTrackerSnapshotError(t *testing.T) {
	tr := newTestTracker(Options{})
	boom := errors.New("gone")
	win := &fakeWindow{readErr: boom}

	if _, err := tr.SetIntention(IntentionMove, platform.Point{}, win); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped read error, got %v", err)
	}
	if _, ok := tr.Gesture(); ok {
		t.Fatalf("failed snapshot must not leave a gesture")
	}
	if tr.Intention() != IntentionMove {
		t.Fatalf("intention should still change")
	}
}

func TestNewTrackerFloorsMinSize(t *testing.T) {
	tr := newTestTracker(Options{MinSize: platform.Size{Width: -3, Height: 0}})
	win := &fakeWindow{frame: platform.Rect{Width: 10, Height: 10}}
	if _, err := tr.SetIntention(IntentionResize, platform.Point{}, win); err != nil {
		t.Fatalf("SetIntention: %v", err)
	}
	tr.MouseMoved(platform.Point{X: -100, Y: -100})
	if win.frame.Width != 1 || win.frame.Height != 1 {
		t.Fatalf("size = %dx%d, want 1x1", win.frame.Width, win.frame.Height)
	}
}
