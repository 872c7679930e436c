package movemode

import "github.com/1broseidon/moves/internal/platform"

// BackendWindow adapts a platform window to the Window handle.
type BackendWindow struct {
	backend platform.Backend
	id      platform.WindowID
}

var (
	_ Window = (*BackendWindow)(nil)
	_ Framer = (*BackendWindow)(nil)
)

// NewBackendWindow returns a handle for window id on backend.
func NewBackendWindow(backend platform.Backend, id platform.WindowID) *BackendWindow {
	return &BackendWindow{backend: backend, id: id}
}

// ID returns the wrapped window ID.
func (w *BackendWindow) ID() platform.WindowID {
	return w.id
}

func (w *BackendWindow) Position() (platform.Point, error) {
	f, err := w.backend.Frame(w.id)
	if err != nil {
		return platform.Point{}, err
	}
	return f.Origin(), nil
}

func (w *BackendWindow) Size() (platform.Size, error) {
	f, err := w.backend.Frame(w.id)
	if err != nil {
		return platform.Size{}, err
	}
	return f.Size(), nil
}

func (w *BackendWindow) SetPosition(p platform.Point) error {
	f, err := w.backend.Frame(w.id)
	if err != nil {
		return err
	}
	f.X, f.Y = p.X, p.Y
	return w.backend.MoveResize(w.id, f)
}

func (w *BackendWindow) SetSize(s platform.Size) error {
	f, err := w.backend.Frame(w.id)
	if err != nil {
		return err
	}
	f.Width, f.Height = s.Width, s.Height
	return w.backend.MoveResize(w.id, f)
}

func (w *BackendWindow) SetFrame(r platform.Rect) error {
	return w.backend.MoveResize(w.id, r)
}
