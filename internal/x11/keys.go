package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/keybind"
)

// LockModifiers returns the modifier bits bound to CapsLock, NumLock and
// ScrollLock on this server.
func (c *Connection) LockModifiers() uint16 {
	mask := uint16(xproto.ModMaskLock)
	mask |= c.ModMaskForKeysym("Num_Lock")
	mask |= c.ModMaskForKeysym("Scroll_Lock")
	return mask
}

// ModMaskForKeysym returns the modifier bit a keysym is mapped to, or 0.
func (c *Connection) ModMaskForKeysym(keysym string) uint16 {
	for _, keycode := range keybind.StrToKeycodes(c.XUtil, keysym) {
		if mask := keybind.ModGet(c.XUtil, keycode); mask != 0 {
			return mask
		}
	}
	return 0
}
