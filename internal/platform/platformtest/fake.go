// Package platformtest provides an in-memory platform.Backend for tests.
package platformtest

import (
	"errors"
	"sync"

	"github.com/1broseidon/moves/internal/platform"
)

// ErrNoWindow is returned for unknown window IDs.
var ErrNoWindow = errors.New("no such window")

// Window is one fake client window.
type Window struct {
	ID    platform.WindowID
	Frame platform.Rect
	App   platform.AppInfo
}

// Backend is a fake window system. Windows are stacked in insertion order,
// last on top.
type Backend struct {
	mu        sync.Mutex
	pointer   platform.PointerState
	windows   []*Window
	active    platform.WindowID
	displays  []platform.Display
	moves     []platform.Rect
	activated []platform.WindowID
}

var _ platform.Backend = (*Backend)(nil)

// NewBackend returns a backend with a single 1920x1080 display whose top 30
// pixels are reserved for a panel.
func NewBackend() *Backend {
	return &Backend{
		displays: []platform.Display{{
			ID:     0,
			Name:   "fake-0",
			Bounds: platform.Rect{Width: 1920, Height: 1080},
			Usable: platform.Rect{Y: 30, Width: 1920, Height: 1050},
		}},
	}
}

// SetDisplays replaces the display list.
func (b *Backend) SetDisplays(displays ...platform.Display) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.displays = displays
}

// AddWindow places a window on top of the stack.
func (b *Backend) AddWindow(id platform.WindowID, frame platform.Rect, app platform.AppInfo) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.windows = append(b.windows, &Window{ID: id, Frame: frame, App: app})
}

// SetActive sets the focused window.
func (b *Backend) SetActive(id platform.WindowID) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = id
}

// SetPointer sets the pointer location and modifier state.
func (b *Backend) SetPointer(x, y int, mods uint16) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pointer = platform.PointerState{Location: platform.Point{X: x, Y: y}, Modifiers: mods}
}

// FrameOf returns a window's frame, or false if unknown.
func (b *Backend) FrameOf(id platform.WindowID) (platform.Rect, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w := b.find(id)
	if w == nil {
		return platform.Rect{}, false
	}
	return w.Frame, true
}

// Moves returns every frame passed to MoveResize.
func (b *Backend) Moves() []platform.Rect {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]platform.Rect(nil), b.moves...)
}

// Activated returns every window passed to Activate.
func (b *Backend) Activated() []platform.WindowID {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]platform.WindowID(nil), b.activated...)
}

func (b *Backend) Pointer() (platform.PointerState, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.pointer, nil
}

func (b *Backend) WindowAt(p platform.Point) (platform.WindowID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.windows) - 1; i >= 0; i-- {
		if b.windows[i].Frame.Contains(p) {
			return b.windows[i].ID, nil
		}
	}
	return 0, nil
}

func (b *Backend) ActiveWindow() (platform.WindowID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.active, nil
}

func (b *Backend) ActiveDisplay() (platform.Display, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.displays) == 0 {
		return platform.Display{}, errors.New("no displays")
	}
	return b.displays[0], nil
}

func (b *Backend) Displays() ([]platform.Display, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]platform.Display(nil), b.displays...), nil
}

func (b *Backend) Frame(id platform.WindowID) (platform.Rect, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w := b.find(id)
	if w == nil {
		return platform.Rect{}, ErrNoWindow
	}
	return w.Frame, nil
}

func (b *Backend) MoveResize(id platform.WindowID, bounds platform.Rect) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	w := b.find(id)
	if w == nil {
		return ErrNoWindow
	}
	w.Frame = bounds
	b.moves = append(b.moves, bounds)
	return nil
}

func (b *Backend) Activate(id platform.WindowID) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, w := range b.windows {
		if w.ID != id {
			continue
		}
		b.windows = append(append(b.windows[:i:i], b.windows[i+1:]...), w)
		b.active = id
		b.activated = append(b.activated, id)
		return nil
	}
	return ErrNoWindow
}

func (b *Backend) App(id platform.WindowID) (platform.AppInfo, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	w := b.find(id)
	if w == nil {
		return platform.AppInfo{}, ErrNoWindow
	}
	return w.App, nil
}

func (b *Backend) find(id platform.WindowID) *Window {
	for _, w := range b.windows {
		if w.ID == id {
			return w
		}
	}
	return nil
}
