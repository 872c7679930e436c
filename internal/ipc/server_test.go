package ipc

import (
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/1broseidon/moves/internal/config"
	"github.com/1broseidon/moves/internal/daemon"
	"github.com/1broseidon/moves/internal/placement"
	"github.com/1broseidon/moves/internal/platform"
	"github.com/1broseidon/moves/internal/platform/platformtest"
)

type testDaemon struct {
	server  *Server
	client  *Client
	backend *platformtest.Backend
	watcher *daemon.Watcher
	reload  chan struct{}
	saved   []*config.Config
}

func startTestDaemon(t *testing.T) *testDaemon {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	cfg := config.DefaultConfig()
	backend := platformtest.NewBackend()
	backend.AddWindow(7, platform.Rect{X: 100, Y: 100, Width: 400, Height: 300}, platform.AppInfo{Class: "Firefox"})
	backend.SetActive(7)

	watcher := daemon.NewWatcher(backend, cfg, daemon.WatcherConfig{
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	reload := make(chan struct{}, 1)

	server, err := NewServer(cfg, watcher, placement.NewPlacer(backend), backend, reload)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	td := &testDaemon{
		server:  server,
		client:  NewClient(),
		backend: backend,
		watcher: watcher,
		reload:  reload,
	}
	server.saveConfig = func(c *config.Config) error {
		td.saved = append(td.saved, c)
		return nil
	}
	if err := server.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	t.Cleanup(server.Stop)
	return td
}

func TestGetStatus(t *testing.T) {
	td := startTestDaemon(t)

	status, err := td.client.GetStatus()
	if err != nil {
		t.Fatalf("GetStatus: %v", err)
	}
	if !status.Enabled || !status.DaemonRunning {
		t.Fatalf("unexpected status: %+v", status)
	}
	if status.Intention != "idle" {
		t.Fatalf("intention = %q, want idle", status.Intention)
	}
	if status.MoveModifiers != "ctrl+alt" || status.ResizeModifiers != "ctrl+alt+shift" {
		t.Fatalf("modifiers = %q / %q", status.MoveModifiers, status.ResizeModifiers)
	}
	if status.Gesture != nil {
		t.Fatalf("unexpected gesture: %+v", status.Gesture)
	}
	if err := td.client.Ping(); err != nil {
		t.Fatalf("Ping: %v", err)
	}
}

func TestSetEnabled(t *testing.T) {
	td := startTestDaemon(t)

	if err := td.client.SetEnabled(false, false); err != nil {
		t.Fatalf("SetEnabled: %v", err)
	}
	if td.watcher.Enabled() {
		t.Fatalf("watcher still enabled")
	}
	if len(td.saved) != 0 {
		t.Fatalf("config saved without persist")
	}

	if err := td.client.SetEnabled(true, true); err != nil {
		t.Fatalf("SetEnabled persist: %v", err)
	}
	if !td.watcher.Enabled() {
		t.Fatalf("watcher not re-enabled")
	}
	if len(td.saved) != 1 || !td.saved[0].Enabled {
		t.Fatalf("saved = %+v", td.saved)
	}
	if td.server.GetConfig() != td.saved[0] {
		t.Fatalf("server config not replaced by persisted config")
	}
}

func TestSetEnabledSaveError(t *testing.T) {
	td := startTestDaemon(t)
	td.server.saveConfig = func(*config.Config) error { return errors.New("read-only") }

	err := td.client.SetEnabled(false, true)
	if err == nil || !strings.Contains(err.Error(), "read-only") {
		t.Fatalf("err = %v, want save failure", err)
	}
	if !td.watcher.Enabled() {
		t.Fatalf("watcher disabled despite failed save")
	}
}

func TestPlaceTemplate(t *testing.T) {
	td := startTestDaemon(t)

	res, err := td.client.PlaceTemplate("left-half")
	if err != nil {
		t.Fatalf("PlaceTemplate: %v", err)
	}
	want := platform.Rect{X: 0, Y: 30, Width: 960, Height: 1050}
	if res.Window != 7 || res.Frame != want {
		t.Fatalf("result = %+v, want window 7 at %+v", res, want)
	}
	if frame, _ := td.backend.FrameOf(7); frame != want {
		t.Fatalf("frame = %+v", frame)
	}

	if _, err := td.client.PlaceTemplate("diagonal"); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}

func TestPlaceCustom(t *testing.T) {
	td := startTestDaemon(t)

	res, err := td.client.PlaceCustom(placement.Custom{
		Position:       placement.PositionCenter,
		AbsoluteWidth:  800,
		AbsoluteHeight: 600,
	})
	if err != nil {
		t.Fatalf("PlaceCustom: %v", err)
	}
	want := platform.Rect{X: 560, Y: 255, Width: 800, Height: 600}
	if res.Frame != want {
		t.Fatalf("frame = %+v, want %+v", res.Frame, want)
	}
}

func TestOpenURL(t *testing.T) {
	td := startTestDaemon(t)

	res, err := td.client.OpenURL("moves://template/maximize")
	if err != nil {
		t.Fatalf("OpenURL: %v", err)
	}
	want := platform.Rect{X: 0, Y: 30, Width: 1920, Height: 1050}
	if res.Frame != want {
		t.Fatalf("frame = %+v, want %+v", res.Frame, want)
	}

	if _, err := td.client.OpenURL("https://example.com"); err == nil {
		t.Fatalf("expected error for foreign scheme")
	}
}

func TestGetMonitors(t *testing.T) {
	td := startTestDaemon(t)

	data, err := td.client.GetMonitors()
	if err != nil {
		t.Fatalf("GetMonitors: %v", err)
	}
	if len(data.Monitors) != 1 {
		t.Fatalf("monitors = %+v", data.Monitors)
	}
	m := data.Monitors[0]
	if m.Width != 1920 || m.Height != 1080 || m.Usable.Y != 30 {
		t.Fatalf("monitor = %+v", m)
	}
}

func TestReload(t *testing.T) {
	td := startTestDaemon(t)

	next := config.DefaultConfig()
	next.BringToFront = true
	td.server.loadConfig = func() (*config.Config, error) { return next, nil }

	if err := td.client.Reload(); err != nil {
		t.Fatalf("Reload: %v", err)
	}
	select {
	case <-td.reload:
	default:
		t.Fatalf("reload channel not signalled")
	}
	if td.server.GetConfig() != next {
		t.Fatalf("server config not swapped")
	}

	td.server.loadConfig = func() (*config.Config, error) { return nil, errors.New("bad yaml") }
	if err := td.client.Reload(); err == nil {
		t.Fatalf("expected reload error")
	}
}

func TestUnknownCommand(t *testing.T) {
	td := startTestDaemon(t)

	_, err := td.client.sendRequest(&Request{Command: "NOPE"})
	if err == nil || !strings.Contains(err.Error(), "Unknown command") {
		t.Fatalf("err = %v", err)
	}
}

func TestClientWithoutDaemon(t *testing.T) {
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	err := NewClient().Ping()
	if err == nil || !strings.Contains(err.Error(), "is the daemon running") {
		t.Fatalf("err = %v", err)
	}
}
