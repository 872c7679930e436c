package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"
)

// Geometry is a window frame in root coordinates. X/Y refer to the outer
// frame corner (decorations included) and Width/Height to the client area,
// which is what _NET_MOVERESIZE_WINDOW expects with NorthWest gravity.
type Geometry struct {
	X      int
	Y      int
	Width  int
	Height int
}

// MoveResizeWindow moves and resizes a window to the specified geometry
func (c *Connection) MoveResizeWindow(windowID xproto.Window, x, y, width, height int) error {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	// Maximized windows ignore geometry requests on most window managers.
	_ = c.unmaximizeWindow(windowID)

	if err := ewmh.MoveresizeWindow(c.XUtil, windowID, x, y, width, height); err != nil {
		// No EWMH-compliant WM; configure the window directly.
		xwindow.New(c.XUtil, windowID).MoveResize(x, y, width, height)
	}
	return nil
}

// unmaximizeWindow removes maximized state from a window
func (c *Connection) unmaximizeWindow(windowID xproto.Window) error {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return err
	}

	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_MAXIMIZED_HORZ", "_NET_WM_STATE_MAXIMIZED_VERT":
			if err := ewmh.WmStateReq(c.XUtil, windowID, ewmh.StateRemove, state); err != nil {
				return err
			}
		}
	}
	return nil
}

// GetFrameExtents returns the window decoration sizes (if available)
func (c *Connection) GetFrameExtents(windowID xproto.Window) (left, right, top, bottom int, err error) {
	extents, err := ewmh.FrameExtentsGet(c.XUtil, windowID)
	if err != nil {
		// No frame extents available, return zeros
		return 0, 0, 0, 0, nil
	}

	return int(extents.Left), int(extents.Right), int(extents.Top), int(extents.Bottom), nil
}

// WindowGeometry returns the frame origin and client size of a window.
func (c *Connection) WindowGeometry(windowID xproto.Window) (Geometry, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(windowID)).Reply()
	if err != nil {
		return Geometry{}, fmt.Errorf("get geometry of 0x%x: %w", uint32(windowID), err)
	}

	translate, err := xproto.TranslateCoordinates(c.XUtil.Conn(), windowID, c.Root, 0, 0).Reply()
	if err != nil {
		return Geometry{}, fmt.Errorf("translate coordinates of 0x%x: %w", uint32(windowID), err)
	}

	left, _, top, _, _ := c.GetFrameExtents(windowID)

	return Geometry{
		X:      int(translate.DstX) - left,
		Y:      int(translate.DstY) - top,
		Width:  int(geom.Width),
		Height: int(geom.Height),
	}, nil
}

// outerBounds returns the on-screen rectangle covered by the window including
// its decorations.
func (c *Connection) outerBounds(windowID xproto.Window) (Geometry, error) {
	g, err := c.WindowGeometry(windowID)
	if err != nil {
		return Geometry{}, err
	}
	left, right, top, bottom, _ := c.GetFrameExtents(windowID)
	g.Width += left + right
	g.Height += top + bottom
	return g, nil
}

// IsNormalWindow checks if a window is a normal application window
func (c *Connection) IsNormalWindow(windowID xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, windowID)
	if err != nil {
		// If we can't determine type, assume it's normal
		return true
	}

	for _, t := range types {
		switch t {
		case "_NET_WM_WINDOW_TYPE_NORMAL", "_NET_WM_WINDOW_TYPE_DIALOG", "_NET_WM_WINDOW_TYPE_UTILITY":
			return true
		case "_NET_WM_WINDOW_TYPE_DESKTOP",
			"_NET_WM_WINDOW_TYPE_DOCK",
			"_NET_WM_WINDOW_TYPE_SPLASH",
			"_NET_WM_WINDOW_TYPE_NOTIFICATION":
			return false
		}
	}

	return len(types) == 0
}

// isHidden reports minimized or fullscreen windows, which are never dragged.
func (c *Connection) isHidden(windowID xproto.Window) bool {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return false
	}
	for _, state := range states {
		switch state {
		case "_NET_WM_STATE_HIDDEN", "_NET_WM_STATE_FULLSCREEN":
			return true
		}
	}
	return false
}

// WindowAt returns the topmost managed client window whose outer frame
// contains the root point (x, y). It returns 0 when no window matches.
func (c *Connection) WindowAt(x, y int) (xproto.Window, error) {
	clients, err := ewmh.ClientListStackingGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get stacking client list: %w", err)
	}

	currentDesktop, desktopErr := ewmh.CurrentDesktopGet(c.XUtil)

	// Stacking order is bottom-to-top.
	for i := len(clients) - 1; i >= 0; i-- {
		win := clients[i]
		if !c.IsNormalWindow(win) || c.isHidden(win) {
			continue
		}
		if desktopErr == nil {
			desktop, err := ewmh.WmDesktopGet(c.XUtil, win)
			if err == nil && desktop != stickyDesktop && desktop != currentDesktop {
				continue
			}
		}

		b, err := c.outerBounds(win)
		if err != nil {
			continue
		}
		if x >= b.X && x < b.X+b.Width && y >= b.Y && y < b.Y+b.Height {
			return win, nil
		}
	}
	return 0, nil
}

func (c *Connection) GetActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}
