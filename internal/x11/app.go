package x11

import (
	"strings"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/shirou/gopsutil/v4/process"
)

// AppIdentity describes the program that owns a client window.
type AppIdentity struct {
	Class    string
	Instance string
	PID      int
	Exe      string
}

// WindowApp resolves WM_CLASS and, when _NET_WM_PID is set, the executable
// path of the owning process. Missing properties leave fields empty.
func (c *Connection) WindowApp(windowID xproto.Window) AppIdentity {
	var id AppIdentity

	if wmClass, err := icccm.WmClassGet(c.XUtil, windowID); err == nil {
		id.Class = strings.TrimSpace(wmClass.Class)
		id.Instance = strings.TrimSpace(wmClass.Instance)
	}

	pid, err := ewmh.WmPidGet(c.XUtil, windowID)
	if err != nil || pid == 0 {
		return id
	}
	id.PID = int(pid)

	proc, err := process.NewProcess(int32(pid))
	if err != nil {
		return id
	}
	if exe, err := proc.Exe(); err == nil {
		id.Exe = exe
	}
	return id
}
