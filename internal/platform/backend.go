package platform

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Point is a location in root (screen) coordinates.
type Point struct {
	X int
	Y int
}

// Sub returns the offset from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Add returns p shifted by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Size is a width/height pair in pixels.
type Size struct {
	Width  int
	Height int
}

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Origin returns the top-left corner.
func (r Rect) Origin() Point {
	return Point{X: r.X, Y: r.Y}
}

// Size returns the rectangle's dimensions.
func (r Rect) Size() Size {
	return Size{Width: r.Width, Height: r.Height}
}

// Contains reports whether p lies inside r (right/bottom edges exclusive).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Display describes a physical display and its usable work area.
type Display struct {
	ID     int
	Name   string
	Bounds Rect
	Usable Rect
}

// PointerState is a snapshot of the pointer location and held modifiers.
type PointerState struct {
	Location  Point
	Modifiers uint16
}

// AppInfo identifies the application owning a window.
type AppInfo struct {
	Class    string
	Instance string
	PID      int
	Path     string
}

// Backend abstracts window-system operations across platforms.
type Backend interface {
	Pointer() (PointerState, error)
	WindowAt(p Point) (WindowID, error)
	ActiveWindow() (WindowID, error)
	ActiveDisplay() (Display, error)
	Displays() ([]Display, error)
	Frame(windowID WindowID) (Rect, error)
	MoveResize(windowID WindowID, bounds Rect) error
	Activate(windowID WindowID) error
	App(windowID WindowID) (AppInfo, error)
}
