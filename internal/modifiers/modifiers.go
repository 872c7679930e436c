// Package modifiers maps held X11 modifier keys to a move/resize intention.
package modifiers

import (
	"fmt"
	"sort"
	"strings"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/1broseidon/moves/internal/movemode"
)

// Mask is an X11 key-button modifier mask restricted to the eight modifier
// bits.
type Mask uint16

const (
	Shift   = Mask(xproto.ModMaskShift)
	Lock    = Mask(xproto.ModMaskLock)
	Control = Mask(xproto.ModMaskControl)
	Mod1    = Mask(xproto.ModMask1)
	Mod2    = Mask(xproto.ModMask2)
	Mod3    = Mask(xproto.ModMask3)
	Mod4    = Mask(xproto.ModMask4)
	Mod5    = Mask(xproto.ModMask5)

	// keyMask covers the modifier bits; pointer button bits sit above it.
	keyMask = Shift | Lock | Control | Mod1 | Mod2 | Mod3 | Mod4 | Mod5
)

// DefaultLocks are the lock modifiers on a stock X server: CapsLock and
// NumLock (Mod2).
const DefaultLocks = Lock | Mod2

var names = map[string]Mask{
	"shift":   Shift,
	"lock":    Lock,
	"ctrl":    Control,
	"control": Control,
	"alt":     Mod1,
	"mod1":    Mod1,
	"mod2":    Mod2,
	"mod3":    Mod3,
	"super":   Mod4,
	"mod4":    Mod4,
	"win":     Mod4,
	"mod5":    Mod5,
}

var canonical = []struct {
	mask Mask
	name string
}{
	{Control, "ctrl"},
	{Mod1, "alt"},
	{Shift, "shift"},
	{Mod4, "super"},
	{Lock, "lock"},
	{Mod2, "mod2"},
	{Mod3, "mod3"},
	{Mod5, "mod5"},
}

// Parse converts modifier names such as "ctrl", "alt", "super" or the X11
// names "Control" and "Mod1".."Mod5" into a mask. Names are case-insensitive.
func Parse(list []string) (Mask, error) {
	var m Mask
	for _, raw := range list {
		name := strings.ToLower(strings.TrimSpace(raw))
		bit, ok := names[name]
		if !ok {
			return 0, fmt.Errorf("unknown modifier %q", raw)
		}
		m |= bit
	}
	return m, nil
}

// Names returns the canonical names of the modifiers in m.
func (m Mask) Names() []string {
	var out []string
	for _, c := range canonical {
		if m&c.mask != 0 {
			out = append(out, c.name)
		}
	}
	return out
}

// String joins the modifier names with "+".
func (m Mask) String() string {
	if m == 0 {
		return "none"
	}
	return strings.Join(m.Names(), "+")
}

// KnownNames lists every accepted modifier name, sorted.
func KnownNames() []string {
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Resolver decides the intention for a modifier state. The resize set is
// checked first; an empty set disables its mode.
type Resolver struct {
	Move   Mask
	Resize Mask
	// Locks are stripped from the state before matching.
	Locks Mask
}

// Intention returns the intention for the raw pointer state. Only an exact
// match of the held modifiers counts.
func (r Resolver) Intention(state uint16) movemode.Intention {
	held := Mask(state) & keyMask &^ r.Locks
	if held == 0 {
		return movemode.IntentionIdle
	}
	if r.Resize != 0 && held == r.Resize&^r.Locks {
		return movemode.IntentionResize
	}
	if r.Move != 0 && held == r.Move&^r.Locks {
		return movemode.IntentionMove
	}
	return movemode.IntentionIdle
}
