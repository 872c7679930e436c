package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// Pointer returns the pointer position in root coordinates together with the
// key/button mask currently held.
func (c *Connection) Pointer() (x, y int, mask uint16, err error) {
	reply, err := xproto.QueryPointer(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return 0, 0, 0, fmt.Errorf("query pointer: %w", err)
	}
	return int(reply.RootX), int(reply.RootY), reply.Mask, nil
}
