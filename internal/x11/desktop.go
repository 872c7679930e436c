package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// stickyDesktop is the _NET_WM_DESKTOP value of windows shown on all desktops.
const stickyDesktop = uint(0xFFFFFFFF)

// FocusWindow activates and raises a window using _NET_ACTIVE_WINDOW.
// The client message is built by hand because the xgbutil ewmh helper
// panics on this library version (uint vs int type assertion).
func (c *Connection) FocusWindow(windowID xproto.Window) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len("_NET_ACTIVE_WINDOW")), "_NET_ACTIVE_WINDOW").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern _NET_ACTIVE_WINDOW: %w", err)
	}

	const sourceIndication = 2 // pager/direct action
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   atomReply.Atom,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{sourceIndication, 0, 0, 0, 0}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureRedirect|xproto.EventMaskSubstructureNotify,
		string(ev.Bytes()),
	).Check()
}

// RaiseWindow restacks a window above its siblings. Window managers that
// ignore _NET_ACTIVE_WINDOW from pagers still honour a configure request.
func (c *Connection) RaiseWindow(windowID xproto.Window) error {
	return xproto.ConfigureWindowChecked(
		c.XUtil.Conn(),
		windowID,
		xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove},
	).Check()
}
