package daemon

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/1broseidon/moves/internal/config"
	"github.com/1broseidon/moves/internal/modifiers"
	"github.com/1broseidon/moves/internal/movemode"
	"github.com/1broseidon/moves/internal/platform"
)

// WatcherConfig holds the runtime dependencies of a Watcher.
type WatcherConfig struct {
	Logger *slog.Logger
	// Locks are the lock modifier bits of the running X server. Zero means
	// modifiers.DefaultLocks.
	Locks modifiers.Mask
}

// Watcher samples the pointer, derives the intention from the held
// modifiers and drives a movemode.Tracker.
type Watcher struct {
	backend platform.Backend
	tracker *movemode.Tracker
	logger  *slog.Logger
	locks   modifiers.Mask

	mu       sync.Mutex
	cfg      *config.Config
	resolver modifiers.Resolver
	enabled  bool
	window   platform.WindowID
	onChange []func(enabled bool)
}

// NewWatcher creates a watcher for backend using cfg.
func NewWatcher(backend platform.Backend, cfg *config.Config, wc WatcherConfig) *Watcher {
	logger := wc.Logger
	if logger == nil {
		logger = slog.Default()
	}
	locks := wc.Locks
	if locks == 0 {
		locks = modifiers.DefaultLocks
	}

	w := &Watcher{
		backend: backend,
		logger:  logger,
		locks:   locks,
		tracker: movemode.NewTracker(trackerOptions(cfg)),
	}
	w.applyConfigLocked(cfg)
	return w
}

func trackerOptions(cfg *config.Config) movemode.Options {
	return movemode.Options{
		ResizeFromClosestCorner: cfg.ResizeFromClosestCorner,
		MinSize:                 cfg.MinSize(),
	}
}

func (w *Watcher) applyConfigLocked(cfg *config.Config) {
	w.cfg = cfg
	w.enabled = cfg.Enabled
	resolver, err := cfg.Resolver()
	if err != nil {
		w.logger.Error("invalid modifier configuration, dragging disabled", "error", err)
		resolver = modifiers.Resolver{}
	}
	resolver.Locks = w.locks
	w.resolver = resolver
	w.tracker.SetOptions(trackerOptions(cfg))
}

// UpdateConfig swaps in a reloaded configuration. The enabled flag follows
// the new config; a live gesture keeps its anchored corner.
func (w *Watcher) UpdateConfig(cfg *config.Config) {
	w.mu.Lock()
	wasEnabled := w.enabled
	w.applyConfigLocked(cfg)
	enabled := w.enabled
	resolver := w.resolver
	w.mu.Unlock()

	w.logger.Info("watcher config updated",
		"enabled", enabled,
		"move", resolver.Move.String(),
		"resize", resolver.Resize.String(),
		"closest_corner", cfg.ResizeFromClosestCorner)

	if !enabled {
		w.endGesture("disabled")
	}
	if wasEnabled != enabled {
		w.notify(enabled)
	}
}

// Config returns the configuration in use.
func (w *Watcher) Config() *config.Config {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cfg
}

// Enabled reports whether modifier drags are active.
func (w *Watcher) Enabled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.enabled
}

// SetEnabled turns modifier drags on or off. Disabling ends any live gesture
// immediately.
func (w *Watcher) SetEnabled(enabled bool) {
	w.mu.Lock()
	changed := w.enabled != enabled
	w.enabled = enabled
	w.mu.Unlock()

	if !enabled {
		w.endGesture("disabled")
	}
	if changed {
		w.logger.Info("watcher toggled", "enabled", enabled)
		w.notify(enabled)
	}
}

// Toggle flips the enabled state and returns the new value.
func (w *Watcher) Toggle() bool {
	enabled := !w.Enabled()
	w.SetEnabled(enabled)
	return enabled
}

// OnEnabledChange registers fn to run after every enable/disable.
func (w *Watcher) OnEnabledChange(fn func(enabled bool)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onChange = append(w.onChange, fn)
}

func (w *Watcher) notify(enabled bool) {
	w.mu.Lock()
	fns := append([]func(bool){}, w.onChange...)
	w.mu.Unlock()
	for _, fn := range fns {
		fn(enabled)
	}
}

// Status is a snapshot of the watcher state.
type Status struct {
	Enabled   bool
	Intention movemode.Intention
	Resolver  modifiers.Resolver
	Gesture   *GestureStatus
}

// GestureStatus describes the live gesture.
type GestureStatus struct {
	ID     string
	Window platform.WindowID
	Corner string
	Frame  platform.Rect
}

// Status returns the current state.
func (w *Watcher) Status() Status {
	w.mu.Lock()
	st := Status{Enabled: w.enabled, Resolver: w.resolver}
	win := w.window
	w.mu.Unlock()

	st.Intention = w.tracker.Intention()
	if g, ok := w.tracker.Gesture(); ok {
		gs := &GestureStatus{ID: g.ID, Window: win, Frame: g.Last}
		if g.Corner != nil {
			gs.Corner = g.Corner.String()
		}
		st.Gesture = gs
	}
	return st
}

// Run polls until ctx is cancelled. The interval follows poll_interval_ms
// across reloads.
func (w *Watcher) Run(ctx context.Context) {
	interval := w.interval()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.logger.Info("watcher started", "interval", interval)

	for {
		select {
		case <-ctx.Done():
			w.endGesture("shutdown")
			w.logger.Info("watcher stopped")
			return
		case <-ticker.C:
			w.Poll()
			if next := w.interval(); next != interval {
				interval = next
				ticker.Reset(interval)
				w.logger.Debug("watcher interval changed", "interval", interval)
			}
		}
	}
}

func (w *Watcher) interval() time.Duration {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cfg.PollInterval()
}

// Poll takes one pointer sample and applies it.
func (w *Watcher) Poll() {
	// Recover from panics to prevent crashing the daemon
	defer func() {
		if err := recover(); err != nil {
			w.logger.Error("watcher panic recovered", "error", err)
		}
	}()

	w.mu.Lock()
	enabled := w.enabled
	resolver := w.resolver
	w.mu.Unlock()

	if !enabled {
		return
	}

	ptr, err := w.backend.Pointer()
	if err != nil {
		w.logger.Debug("query pointer failed", "error", err)
		return
	}

	intention := resolver.Intention(ptr.Modifiers)
	if intention != w.tracker.Intention() {
		w.changeIntention(intention, ptr.Location)
		return
	}
	if !intention.Active() {
		return
	}

	frame, applied, err := w.tracker.MouseMoved(ptr.Location)
	if err != nil {
		w.logger.Warn("apply frame failed, ending gesture", "error", err)
		w.endGesture("error")
		return
	}
	if applied {
		w.logger.Debug("frame applied", "x", frame.X, "y", frame.Y, "w", frame.Width, "h", frame.Height)
	}
}

func (w *Watcher) changeIntention(in movemode.Intention, mouse platform.Point) {
	if prev, ok := w.tracker.Gesture(); ok {
		w.logger.Debug("gesture ended", "gesture_id", prev.ID, "reason", "intention", "frame", prev.Last)
	}

	var (
		win   movemode.Window
		winID platform.WindowID
	)
	if in.Active() {
		winID = w.acquire(mouse)
		if winID != 0 {
			win = movemode.NewBackendWindow(w.backend, winID)
		}
	}

	// SetEnabled may have run since Poll sampled the flag. Holding mu here
	// orders this start before or after its endGesture.
	w.mu.Lock()
	if !w.enabled {
		w.mu.Unlock()
		return
	}
	g, err := w.tracker.SetIntention(in, mouse, win)
	w.window = 0
	if g != nil {
		w.window = winID
	}
	w.mu.Unlock()

	if err != nil {
		w.logger.Warn("gesture start failed", "intention", in.String(), "window", uint32(winID), "error", err)
		return
	}
	if g == nil {
		w.logger.Debug("intention changed", "intention", in.String())
		return
	}

	attrs := []any{
		"gesture_id", g.ID,
		"intention", in.String(),
		"window", uint32(winID),
		"frame", g.StartFrame,
	}
	if g.Corner != nil {
		attrs = append(attrs, "corner", g.Corner.String())
	}
	w.logger.Info("gesture started", attrs...)
}

// acquire returns the window under mouse that may be dragged, or 0.
func (w *Watcher) acquire(mouse platform.Point) platform.WindowID {
	id, err := w.backend.WindowAt(mouse)
	if err != nil {
		w.logger.Debug("window lookup failed", "error", err)
		return 0
	}
	if id == 0 {
		return 0
	}

	w.mu.Lock()
	cfg := w.cfg
	w.mu.Unlock()

	if len(cfg.ExcludedApps) > 0 {
		app, err := w.backend.App(id)
		if err == nil && cfg.IsExcluded(app) {
			w.logger.Debug("window excluded", "window", uint32(id), "class", app.Class, "path", app.Path)
			return 0
		}
	}

	if cfg.BringToFront {
		if err := w.backend.Activate(id); err != nil {
			w.logger.Warn("bring to front failed", "window", uint32(id), "error", err)
		}
	}
	return id
}

func (w *Watcher) endGesture(reason string) {
	if g, ok := w.tracker.Gesture(); ok {
		w.logger.Debug("gesture ended", "gesture_id", g.ID, "reason", reason, "frame", g.Last)
	}
	if _, err := w.tracker.SetIntention(movemode.IntentionIdle, platform.Point{}, nil); err != nil {
		w.logger.Warn("reset intention failed", "error", err)
	}
	w.mu.Lock()
	w.window = 0
	w.mu.Unlock()
}
