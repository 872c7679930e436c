package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
)

// Monitor represents a physical display
type Monitor struct {
	ID     int
	Name   string
	X      int
	Y      int
	Width  int
	Height int
}

func (m Monitor) contains(x, y int) bool {
	return x >= m.X && x < m.X+m.Width && y >= m.Y && y < m.Y+m.Height
}

// GetMonitors retrieves all active monitors using XRandR
func (c *Connection) GetMonitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		// Disabled CRTC.
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		monitors = append(monitors, Monitor{
			ID:     i,
			Name:   name,
			X:      int(info.X),
			Y:      int(info.Y),
			Width:  int(info.Width),
			Height: int(info.Height),
		})
	}

	if len(monitors) == 0 {
		return c.rootMonitor()
	}
	return monitors, nil
}

// rootMonitor treats the whole root window as one monitor when RandR reports
// nothing usable (e.g. Xvfb without outputs).
func (c *Connection) rootMonitor() ([]Monitor, error) {
	geom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get root geometry: %w", err)
	}
	return []Monitor{{ID: 0, Name: "root", Width: int(geom.Width), Height: int(geom.Height)}}, nil
}

// GetActiveMonitor returns the monitor containing the focused window, falling
// back to the monitor under the pointer and then the first monitor.
func (c *Connection) GetActiveMonitor() (*Monitor, error) {
	monitors, err := c.GetMonitors()
	if err != nil {
		return nil, err
	}
	if len(monitors) == 0 {
		return nil, fmt.Errorf("no monitors found")
	}

	if win, err := ewmh.ActiveWindowGet(c.XUtil); err == nil && win != 0 {
		if g, err := c.WindowGeometry(win); err == nil {
			if mon := monitorContaining(monitors, g.X+g.Width/2, g.Y+g.Height/2); mon != nil {
				return mon, nil
			}
		}
	}

	if x, y, _, err := c.Pointer(); err == nil {
		if mon := monitorContaining(monitors, x, y); mon != nil {
			return mon, nil
		}
	}

	return &monitors[0], nil
}

func monitorContaining(monitors []Monitor, x, y int) *Monitor {
	for i := range monitors {
		if monitors[i].contains(x, y) {
			return &monitors[i]
		}
	}
	return nil
}

// WorkArea returns the part of a monitor not covered by docks and panels.
// Dock struts are preferred; _NET_WORKAREA is the fallback.
func (c *Connection) WorkArea(mon Monitor) Monitor {
	if area, ok := c.applyDockStruts(mon); ok {
		return area
	}

	workArea, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workArea) == 0 {
		return mon
	}

	idx := 0
	if desktop, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(desktop) < len(workArea) {
		idx = int(desktop)
	}
	wa := workArea[idx]

	isect := intersect(
		rect{mon.X, mon.Y, mon.X + mon.Width, mon.Y + mon.Height},
		rect{int(wa.X), int(wa.Y), int(wa.X) + int(wa.Width), int(wa.Y) + int(wa.Height)},
	)
	if isect.empty() {
		return mon
	}
	mon.X, mon.Y = isect.x1, isect.y1
	mon.Width, mon.Height = isect.x2-isect.x1, isect.y2-isect.y1
	return mon
}

// rect is a half-open box [x1,x2) × [y1,y2).
type rect struct {
	x1, y1, x2, y2 int
}

func (r rect) empty() bool {
	return r.x2 <= r.x1 || r.y2 <= r.y1
}

func intersect(a, b rect) rect {
	return rect{
		x1: max(a.x1, b.x1),
		y1: max(a.y1, b.y1),
		x2: min(a.x2, b.x2),
		y2: min(a.y2, b.y2),
	}
}

type dockStruts struct {
	left, right, top, bottom int
}

func (c *Connection) applyDockStruts(mon Monitor) (Monitor, bool) {
	rootGeom, err := xproto.GetGeometry(c.XUtil.Conn(), xproto.Drawable(c.Root)).Reply()
	if err != nil {
		return mon, false
	}
	rootW, rootH := int(rootGeom.Width), int(rootGeom.Height)

	clients, err := ewmh.ClientListGet(c.XUtil)
	if err != nil {
		return mon, false
	}

	var acc dockStruts
	for _, win := range clients {
		if !c.isDock(win) {
			continue
		}
		sp, err := ewmh.WmStrutPartialGet(c.XUtil, win)
		if err != nil {
			// Some docks only set _NET_WM_STRUT (no partial ranges).
			s, err := ewmh.WmStrutGet(c.XUtil, win)
			if err != nil {
				continue
			}
			sp = &ewmh.WmStrutPartial{
				Left: s.Left, Right: s.Right, Top: s.Top, Bottom: s.Bottom,
				LeftEndY: uint(rootH - 1), RightEndY: uint(rootH - 1),
				TopEndX: uint(rootW - 1), BottomEndX: uint(rootW - 1),
			}
		}
		accumulateStruts(mon, rootW, rootH, sp, &acc)
	}

	if acc == (dockStruts{}) {
		return mon, false
	}

	mon.X += acc.left
	mon.Y += acc.top
	mon.Width = max(1, mon.Width-acc.left-acc.right)
	mon.Height = max(1, mon.Height-acc.top-acc.bottom)
	return mon, true
}

func (c *Connection) isDock(win xproto.Window) bool {
	types, err := ewmh.WmWindowTypeGet(c.XUtil, win)
	if err != nil {
		return false
	}
	for _, t := range types {
		if t == "_NET_WM_WINDOW_TYPE_DOCK" {
			return true
		}
	}
	return false
}

func accumulateStruts(mon Monitor, rootW, rootH int, sp *ewmh.WmStrutPartial, acc *dockStruts) {
	m := rect{mon.X, mon.Y, mon.X + mon.Width, mon.Y + mon.Height}

	if sp.Top > 0 {
		if is := intersect(m, rect{int(sp.TopStartX), 0, int(sp.TopEndX) + 1, int(sp.Top)}); !is.empty() {
			acc.top = max(acc.top, is.y2-is.y1)
		}
	}
	if sp.Bottom > 0 {
		if is := intersect(m, rect{int(sp.BottomStartX), rootH - int(sp.Bottom), int(sp.BottomEndX) + 1, rootH}); !is.empty() {
			acc.bottom = max(acc.bottom, is.y2-is.y1)
		}
	}
	if sp.Left > 0 {
		if is := intersect(m, rect{0, int(sp.LeftStartY), int(sp.Left), int(sp.LeftEndY) + 1}); !is.empty() {
			acc.left = max(acc.left, is.x2-is.x1)
		}
	}
	if sp.Right > 0 {
		if is := intersect(m, rect{rootW - int(sp.Right), int(sp.RightStartY), rootW, int(sp.RightEndY) + 1}); !is.empty() {
			acc.right = max(acc.right, is.x2-is.x1)
		}
	}
}
