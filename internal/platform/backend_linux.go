//go:build linux

package platform

import (
	"fmt"
	"sort"

	"github.com/1broseidon/moves/internal/x11"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
)

// LinuxBackend wraps an existing X11 connection behind the platform Backend interface.
type LinuxBackend struct {
	conn *x11.Connection
}

var _ Backend = (*LinuxBackend)(nil)

// NewLinuxBackend creates a Linux platform backend from an existing X11 connection.
func NewLinuxBackend(conn *x11.Connection) *LinuxBackend {
	return &LinuxBackend{conn: conn}
}

// NewLinuxBackendFromDisplay creates a new Linux backend by opening a fresh X11 connection.
func NewLinuxBackendFromDisplay() (*LinuxBackend, error) {
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X11: %w", err)
	}
	return &LinuxBackend{conn: conn}, nil
}

// Disconnect closes the underlying X11 connection.
func (b *LinuxBackend) Disconnect() {
	if b != nil && b.conn != nil {
		b.conn.Close()
	}
}

// EventLoop starts the X11 event loop (blocking).
func (b *LinuxBackend) EventLoop() {
	if b != nil && b.conn != nil {
		b.conn.EventLoop()
	}
}

// StopEventLoop makes a running EventLoop return.
func (b *LinuxBackend) StopEventLoop() {
	if b != nil && b.conn != nil {
		b.conn.Quit()
	}
}

// XUtil returns the underlying xgbutil connection for X11-specific operations.
func (b *LinuxBackend) XUtil() *xgbutil.XUtil {
	if b == nil || b.conn == nil {
		return nil
	}
	return b.conn.XUtil
}

// RootWindow returns the X11 root window ID.
func (b *LinuxBackend) RootWindow() xproto.Window {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.Root
}

// Pointer returns the pointer location and the modifier mask held right now.
func (b *LinuxBackend) Pointer() (PointerState, error) {
	conn, err := b.connection()
	if err != nil {
		return PointerState{}, err
	}
	x, y, mask, err := conn.Pointer()
	if err != nil {
		return PointerState{}, err
	}
	return PointerState{Location: Point{X: x, Y: y}, Modifiers: mask}, nil
}

// WindowAt returns the topmost normal client window under p, or 0.
func (b *LinuxBackend) WindowAt(p Point) (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}
	win, err := conn.WindowAt(p.X, p.Y)
	if err != nil {
		return 0, err
	}
	return WindowID(win), nil
}

// ActiveWindow returns the currently active/focused window ID.
func (b *LinuxBackend) ActiveWindow() (WindowID, error) {
	conn, err := b.connection()
	if err != nil {
		return 0, err
	}

	wid, err := conn.GetActiveWindow()
	if err != nil {
		return 0, err
	}
	return WindowID(wid), nil
}

// Displays returns all active displays.
func (b *LinuxBackend) Displays() ([]Display, error) {
	conn, err := b.connection()
	if err != nil {
		return nil, err
	}

	monitors, err := conn.GetMonitors()
	if err != nil {
		return nil, err
	}

	displays := make([]Display, 0, len(monitors))
	for _, m := range monitors {
		displays = append(displays, b.displayFromMonitor(m))
	}

	sort.Slice(displays, func(i, j int) bool {
		return displays[i].ID < displays[j].ID
	})

	return displays, nil
}

// ActiveDisplay returns the display holding the focused window (or pointer).
func (b *LinuxBackend) ActiveDisplay() (Display, error) {
	conn, err := b.connection()
	if err != nil {
		return Display{}, err
	}

	active, err := conn.GetActiveMonitor()
	if err != nil {
		return Display{}, err
	}

	return b.displayFromMonitor(*active), nil
}

// Frame returns the window frame origin and client size.
func (b *LinuxBackend) Frame(windowID WindowID) (Rect, error) {
	conn, err := b.connection()
	if err != nil {
		return Rect{}, err
	}
	g, err := conn.WindowGeometry(xproto.Window(windowID))
	if err != nil {
		return Rect{}, err
	}
	return Rect{X: g.X, Y: g.Y, Width: g.Width, Height: g.Height}, nil
}

// MoveResize moves and resizes a window to the specified bounds.
func (b *LinuxBackend) MoveResize(windowID WindowID, bounds Rect) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}

	return conn.MoveResizeWindow(
		xproto.Window(windowID),
		bounds.X,
		bounds.Y,
		bounds.Width,
		bounds.Height,
	)
}

// Activate focuses and raises a window.
func (b *LinuxBackend) Activate(windowID WindowID) error {
	conn, err := b.connection()
	if err != nil {
		return err
	}
	if err := conn.FocusWindow(xproto.Window(windowID)); err != nil {
		return err
	}
	return conn.RaiseWindow(xproto.Window(windowID))
}

// App identifies the program owning a window.
func (b *LinuxBackend) App(windowID WindowID) (AppInfo, error) {
	conn, err := b.connection()
	if err != nil {
		return AppInfo{}, err
	}
	id := conn.WindowApp(xproto.Window(windowID))
	return AppInfo{
		Class:    id.Class,
		Instance: id.Instance,
		PID:      id.PID,
		Path:     id.Exe,
	}, nil
}

func (b *LinuxBackend) connection() (*x11.Connection, error) {
	if b == nil || b.conn == nil {
		return nil, fmt.Errorf("x11 backend connection is nil")
	}
	return b.conn, nil
}

func (b *LinuxBackend) displayFromMonitor(m x11.Monitor) Display {
	usable := b.conn.WorkArea(m)
	return Display{
		ID:     m.ID,
		Name:   m.Name,
		Bounds: Rect{X: m.X, Y: m.Y, Width: m.Width, Height: m.Height},
		Usable: Rect{X: usable.X, Y: usable.Y, Width: usable.Width, Height: usable.Height},
	}
}

// LockModifiers returns the modifier bits of Caps, Num and Scroll Lock on
// this server.
func (b *LinuxBackend) LockModifiers() uint16 {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.LockModifiers()
}

// ModMaskForKeysym returns the modifier bit keysym is mapped to, or 0.
func (b *LinuxBackend) ModMaskForKeysym(keysym string) uint16 {
	if b == nil || b.conn == nil {
		return 0
	}
	return b.conn.ModMaskForKeysym(keysym)
}
