package hotkeys

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"sort"
	"sync"

	"github.com/1broseidon/moves/internal/config"
	"github.com/1broseidon/moves/internal/placement"
	"github.com/1broseidon/moves/internal/platform"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/xevent"
)

// Toggler flips modifier drags on and off.
type Toggler interface {
	Toggle() bool
}

// Placer snaps the active window to a template.
type Placer interface {
	Template(name string) (placement.Result, error)
}

// x11Accessor is an optional interface for backends that expose X11 internals.
type x11Accessor interface {
	XUtil() *xgbutil.XUtil
	RootWindow() xproto.Window
	ModMaskForKeysym(keysym string) uint16
}

// Binding is one global shortcut.
type Binding struct {
	Keys   string
	Name   string
	Action func()
}

// Handler manages global keyboard shortcuts
type Handler struct {
	xu      *xgbutil.XUtil
	root    xproto.Window
	toggler Toggler
	placer  Placer
	spawn   func(args ...string) error

	mu    sync.Mutex
	bound []string
}

var ignoreModsOnce sync.Once

// NewHandler creates a new hotkey handler.
func NewHandler(backend platform.Backend, toggler Toggler, placer Placer) *Handler {
	var xu *xgbutil.XUtil
	var root xproto.Window
	if accessor, ok := backend.(x11Accessor); ok {
		xu = accessor.XUtil()
		root = accessor.RootWindow()
		ignoreModsOnce.Do(func() {
			xevent.IgnoreMods = ignoreMasks(
				uint16(xproto.ModMaskLock),
				accessor.ModMaskForKeysym("Num_Lock"),
				accessor.ModMaskForKeysym("Scroll_Lock"),
			)
		})
	}

	return &Handler{
		xu:      xu,
		root:    root,
		toggler: toggler,
		placer:  placer,
	}
}

// Bindings returns the shortcuts cfg asks for: toggle, picker, then
// templates in key order.
func (h *Handler) Bindings(cfg *config.Config) []Binding {
	var out []Binding
	if cfg.ToggleHotkey != "" {
		out = append(out, Binding{
			Keys: cfg.ToggleHotkey,
			Name: "toggle",
			Action: func() {
				enabled := h.toggler.Toggle()
				log.Printf("Toggle hotkey: enabled=%t", enabled)
			},
		})
	}

	if cfg.PickerHotkey != "" {
		out = append(out, Binding{
			Keys: cfg.PickerHotkey,
			Name: "picker",
			Action: func() {
				spawn := h.spawn
				if spawn == nil {
					spawn = spawnSelf
				}
				if err := spawn("pick"); err != nil {
					log.Printf("Picker: failed to launch: %v", err)
				}
			},
		})
	}

	keys := make([]string, 0, len(cfg.TemplateHotkeys))
	for k := range cfg.TemplateHotkeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		name := cfg.TemplateHotkeys[k]
		if name == "" {
			continue
		}
		out = append(out, Binding{
			Keys: k,
			Name: name,
			Action: func() {
				res, err := h.placer.Template(name)
				if err != nil {
					log.Printf("Template %s failed: %v", name, err)
					return
				}
				log.Printf("Placed window 0x%x with %s", uint32(res.Window), name)
			},
		})
	}
	return out
}

// Register grabs every shortcut in cfg. Bindings that fail are logged and
// skipped.
func (h *Handler) Register(cfg *config.Config) error {
	if h.xu == nil {
		return fmt.Errorf("hotkeys need an X11 backend")
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for _, b := range h.Bindings(cfg) {
		if err := h.RegisterFunc(b.Keys, b.Action); err != nil {
			log.Printf("Failed to register hotkey %s (%s): %v", b.Keys, b.Name, err)
			continue
		}
		h.bound = append(h.bound, b.Keys)
		log.Printf("Registered hotkey %s -> %s", b.Keys, b.Name)
	}
	return nil
}

// Reload drops every grab on the root window and registers cfg again.
func (h *Handler) Reload(cfg *config.Config) error {
	if h.xu == nil {
		return fmt.Errorf("hotkeys need an X11 backend")
	}

	h.mu.Lock()
	keybind.Detach(h.xu, h.root)
	h.bound = nil
	h.mu.Unlock()

	return h.Register(cfg)
}

// Bound returns the key sequences currently grabbed.
func (h *Handler) Bound() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.bound...)
}

// RegisterFunc registers an arbitrary hotkey callback.
func (h *Handler) RegisterFunc(keySequence string, callback func()) error {
	return keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
		callback()
	}).Connect(h.xu, h.root, keySequence, true)
}

// spawnSelf runs this executable with args in the background. The picker
// blocks on the launcher, so it cannot run on the X event loop.
func spawnSelf(args ...string) error {
	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("find executable: %w", err)
	}
	cmd := exec.Command(exe, args...)
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return err
	}
	go cmd.Wait()
	return nil
}

// ignoreMasks returns every combination of the lock modifiers, including no
// lock at all, so grabs fire regardless of Caps/Num/Scroll Lock state.
func ignoreMasks(caps, numLock, scrollLock uint16) []uint16 {
	unique := make(map[uint16]struct{})
	add := func(mask uint16) {
		unique[mask] = struct{}{}
	}

	add(0)
	base := []uint16{caps}
	if numLock != 0 && numLock != caps {
		base = append(base, numLock)
	}
	if scrollLock != 0 && scrollLock != caps && scrollLock != numLock {
		base = append(base, scrollLock)
	}

	for subset := 1; subset < (1 << len(base)); subset++ {
		var mask uint16
		for bit := range base {
			if subset&(1<<bit) != 0 {
				mask |= base[bit]
			}
		}
		add(mask)
	}

	ignore := make([]uint16, 0, len(unique))
	for mask := range unique {
		ignore = append(ignore, mask)
	}
	sort.Slice(ignore, func(i, j int) bool { return ignore[i] < ignore[j] })
	return ignore
}
