package daemon

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/1broseidon/moves/internal/config"
	"github.com/1broseidon/moves/internal/modifiers"
	"github.com/1broseidon/moves/internal/movemode"
	"github.com/1broseidon/moves/internal/platform"
	"github.com/1broseidon/moves/internal/platform/platformtest"
)

const (
	moveMods   = uint16(modifiers.Control | modifiers.Mod1)
	resizeMods = uint16(modifiers.Control | modifiers.Mod1 | modifiers.Shift)
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestWatcher(t *testing.T, cfg *config.Config) (*Watcher, *platformtest.Backend) {
	t.Helper()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	backend := platformtest.NewBackend()
	backend.AddWindow(1, platform.Rect{X: 100, Y: 100, Width: 400, Height: 300}, platform.AppInfo{Class: "XTerm", Path: "/usr/bin/xterm"})
	w := NewWatcher(backend, cfg, WatcherConfig{Logger: testLogger()})
	return w, backend
}

func TestWatcherMove(t *testing.T) {
	w, backend := newTestWatcher(t, nil)

	backend.SetPointer(200, 200, moveMods)
	w.Poll()
	if got := w.Status().Intention; got != movemode.IntentionMove {
		t.Fatalf("intention = %v, want move", got)
	}

	backend.SetPointer(250, 180, moveMods)
	w.Poll()

	frame, _ := backend.FrameOf(1)
	want := platform.Rect{X: 150, Y: 80, Width: 400, Height: 300}
	if frame != want {
		t.Fatalf("frame = %+v, want %+v", frame, want)
	}

	backend.SetPointer(300, 300, 0)
	w.Poll()
	if st := w.Status(); st.Intention != movemode.IntentionIdle || st.Gesture != nil {
		t.Fatalf("expected idle after release, got %+v", st)
	}

	// Pointer motion without modifiers leaves the window alone.
	backend.SetPointer(400, 400, 0)
	w.Poll()
	if frame, _ := backend.FrameOf(1); frame != want {
		t.Fatalf("frame changed while idle: %+v", frame)
	}
}

func TestWatcherResizeFromClosestCorner(t *testing.T) {
	w, backend := newTestWatcher(t, nil)

	// Near the top-left corner of the window.
	backend.SetPointer(110, 110, resizeMods)
	w.Poll()

	st := w.Status()
	if st.Gesture == nil || st.Gesture.Corner != movemode.CornerTopLeft.String() {
		t.Fatalf("expected top-left gesture, got %+v", st.Gesture)
	}

	backend.SetPointer(90, 80, resizeMods)
	w.Poll()

	frame, _ := backend.FrameOf(1)
	want := platform.Rect{X: 80, Y: 70, Width: 420, Height: 330}
	if frame != want {
		t.Fatalf("frame = %+v, want %+v", frame, want)
	}
}

func TestWatcherLockModifiersIgnored(t *testing.T) {
	w, backend := newTestWatcher(t, nil)

	backend.SetPointer(200, 200, moveMods|uint16(modifiers.Lock|modifiers.Mod2))
	w.Poll()
	if got := w.Status().Intention; got != movemode.IntentionMove {
		t.Fatalf("intention = %v, want move with locks held", got)
	}
}

func TestWatcherNoWindowUnderPointer(t *testing.T) {
	w, backend := newTestWatcher(t, nil)

	backend.SetPointer(1000, 900, moveMods)
	w.Poll()
	st := w.Status()
	if st.Intention != movemode.IntentionMove {
		t.Fatalf("intention = %v, want move", st.Intention)
	}
	if st.Gesture != nil {
		t.Fatalf("expected no gesture over empty desktop")
	}

	// Holding the modifiers over a window later does not pick it up.
	backend.SetPointer(200, 200, moveMods)
	w.Poll()
	if w.Status().Gesture != nil {
		t.Fatalf("window acquired without a new intention")
	}
	if len(backend.Moves()) != 0 {
		t.Fatalf("unexpected moves: %v", backend.Moves())
	}
}

func TestWatcherExcludedApp(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ExcludedApps = []string{"xterm"}
	w, backend := newTestWatcher(t, cfg)

	backend.SetPointer(200, 200, moveMods)
	w.Poll()
	backend.SetPointer(300, 300, moveMods)
	w.Poll()

	if w.Status().Gesture != nil {
		t.Fatalf("excluded window was grabbed")
	}
	if len(backend.Moves()) != 0 {
		t.Fatalf("excluded window moved: %v", backend.Moves())
	}
}

func TestWatcherBringToFront(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.BringToFront = true
	w, backend := newTestWatcher(t, cfg)

	backend.SetPointer(200, 200, moveMods)
	w.Poll()

	activated := backend.Activated()
	if len(activated) != 1 || activated[0] != 1 {
		t.Fatalf("activated = %v, want [1]", activated)
	}
}

func TestWatcherDisableEndsGesture(t *testing.T) {
	w, backend := newTestWatcher(t, nil)

	var notified []bool
	w.OnEnabledChange(func(enabled bool) { notified = append(notified, enabled) })

	backend.SetPointer(200, 200, moveMods)
	w.Poll()
	if w.Status().Gesture == nil {
		t.Fatalf("expected gesture")
	}

	w.SetEnabled(false)
	if st := w.Status(); st.Enabled || st.Gesture != nil || st.Intention != movemode.IntentionIdle {
		t.Fatalf("disable did not reset state: %+v", st)
	}

	backend.SetPointer(260, 260, moveMods)
	w.Poll()
	if len(backend.Moves()) != 0 {
		t.Fatalf("window moved while disabled: %v", backend.Moves())
	}

	if got := w.Toggle(); !got {
		t.Fatalf("Toggle() = false, want true")
	}
	if len(notified) != 2 || notified[0] || !notified[1] {
		t.Fatalf("notifications = %v", notified)
	}
}

func TestWatcherUpdateConfig(t *testing.T) {
	w, backend := newTestWatcher(t, nil)

	cfg := config.DefaultConfig()
	cfg.MoveModifiers = []string{"super"}
	w.UpdateConfig(cfg)

	backend.SetPointer(200, 200, moveMods)
	w.Poll()
	if got := w.Status().Intention; got != movemode.IntentionIdle {
		t.Fatalf("old move set still active: %v", got)
	}

	backend.SetPointer(200, 200, uint16(modifiers.Mod4))
	w.Poll()
	if got := w.Status().Intention; got != movemode.IntentionMove {
		t.Fatalf("intention = %v, want move with super", got)
	}
	if w.Config() != cfg {
		t.Fatalf("Config() did not return the new config")
	}
}

func TestWatcherRunStopsOnCancel(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.PollIntervalMS = 1
	w, backend := newTestWatcher(t, cfg)
	backend.SetPointer(200, 200, moveMods)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for w.Status().Gesture == nil {
		if time.Now().After(deadline) {
			t.Fatal("watcher never started a gesture")
		}
		time.Sleep(time.Millisecond)
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if w.Status().Gesture != nil {
		t.Fatalf("gesture survived shutdown")
	}
}

// disablingBackend turns the watcher off while a gesture is being acquired.
type disablingBackend struct {
	*platformtest.Backend
	watcher *Watcher
}

func (b *disablingBackend) WindowAt(p platform.Point) (platform.WindowID, error) {
	if b.watcher != nil {
		b.watcher.SetEnabled(false)
		b.watcher = nil
	}
	return b.Backend.WindowAt(p)
}

func TestWatcherDisableDuringAcquireStartsNoGesture(t *testing.T) {
	fake := platformtest.NewBackend()
	fake.AddWindow(1, platform.Rect{X: 100, Y: 100, Width: 400, Height: 300}, platform.AppInfo{Class: "XTerm"})
	backend := &disablingBackend{Backend: fake}
	w := NewWatcher(backend, config.DefaultConfig(), WatcherConfig{Logger: testLogger()})
	backend.watcher = w

	fake.SetPointer(200, 200, moveMods)
	w.Poll()

	if st := w.Status(); st.Enabled || st.Gesture != nil {
		t.Fatalf("gesture started after disable: %+v", st)
	}

	// Re-enabling starts from the current pointer, not the stale sample.
	w.SetEnabled(true)
	fake.SetPointer(300, 250, moveMods)
	w.Poll()
	fake.SetPointer(310, 260, moveMods)
	w.Poll()

	frame, _ := fake.FrameOf(1)
	want := platform.Rect{X: 110, Y: 110, Width: 400, Height: 300}
	if frame != want {
		t.Fatalf("frame = %+v, want %+v", frame, want)
	}
}
