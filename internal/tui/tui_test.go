package tui

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/1broseidon/moves/internal/config"
	"github.com/1broseidon/moves/internal/ipc"
)

type fakeClient struct {
	running bool
	reloads int
}

func (f *fakeClient) GetStatus() (*ipc.StatusData, error) {
	if !f.running {
		return nil, errors.New("not running")
	}
	return &ipc.StatusData{Enabled: true, Intention: "idle", DaemonRunning: true}, nil
}

func (f *fakeClient) Reload() error {
	f.reloads++
	return nil
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(model)
	}
	return m
}

func TestAddExcludeAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	client := &fakeClient{running: true}

	m, err := newModel(path, client)
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	if !m.daemon.connected {
		t.Fatalf("expected daemon connected")
	}

	m = send(t, m,
		tea.WindowSizeMsg{Width: 100, Height: 40},
		keys("2"),
		keys("a"),
		keys("Gimp"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	if m.activeTab != TabExcludes {
		t.Fatalf("active tab = %v", m.activeTab)
	}
	if !reflect.DeepEqual(m.cfg.ExcludedApps, []string{"Gimp"}) {
		t.Fatalf("excluded apps = %v", m.cfg.ExcludedApps)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.saveOverlay.phase != savePreview {
		t.Fatalf("save overlay phase = %v, want preview", m.saveOverlay.phase)
	}

	m = send(t, m, keys("y"))
	if !m.saveOverlay.SaveSucceeded() {
		t.Fatalf("save failed: %v", m.saveOverlay.err)
	}
	if client.reloads != 1 {
		t.Fatalf("reloads = %d, want 1", client.reloads)
	}

	res, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}
	if !reflect.DeepEqual(res.Config.ExcludedApps, []string{"Gimp"}) {
		t.Fatalf("saved excluded apps = %v", res.Config.ExcludedApps)
	}

	// A second save with nothing changed reports it.
	m = send(t, m, keys("z"), tea.KeyMsg{Type: tea.KeyCtrlS})
	if m.saveOverlay.err == nil {
		t.Fatalf("expected no-changes error")
	}
}

func TestSaveWithoutDaemon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	client := &fakeClient{}

	m, err := newModel(path, client)
	if err != nil {
		t.Fatalf("newModel: %v", err)
	}
	m.cfg.BringToFront = true

	m = send(t, m, tea.KeyMsg{Type: tea.KeyCtrlS}, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.saveOverlay.SaveSucceeded() {
		t.Fatalf("save failed: %v", m.saveOverlay.err)
	}
	if client.reloads != 0 {
		t.Fatalf("reload sent to a daemon that is not running")
	}
}

func TestRemoveExclude(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.ExcludedApps = []string{"Gimp", "/usr/bin/blender"}
	tab := NewExcludesTab(cfg)

	tab.addEntry("gimp")
	if len(cfg.ExcludedApps) != 2 {
		t.Fatalf("duplicate entry added: %v", cfg.ExcludedApps)
	}

	tab.removeEntry("Gimp")
	if !reflect.DeepEqual(cfg.ExcludedApps, []string{"/usr/bin/blender"}) {
		t.Fatalf("excluded apps = %v", cfg.ExcludedApps)
	}
}

func TestExcludeKind(t *testing.T) {
	tests := map[string]string{
		"Gimp":             "window class or instance",
		"/usr/bin/blender": "executable path",
		"/opt/games/":      "executables under directory",
	}
	for entry, want := range tests {
		if got := excludeKind(entry); got != want {
			t.Errorf("excludeKind(%q) = %q, want %q", entry, got, want)
		}
	}
}

func TestGeneralApplyForm(t *testing.T) {
	cfg := config.DefaultConfig()
	g := NewGeneralTab(cfg)
	g.loadForm()

	if g.fMove != "ctrl+alt" || g.fResizeMode != resizeClosestCorner {
		t.Fatalf("form not loaded from config: move=%q mode=%q", g.fMove, g.fResizeMode)
	}

	g.fMove = "Super"
	g.fResize = "super+shift"
	g.fResizeMode = resizeBottomRight
	g.fMinWidth = "120"
	g.fMinHeight = "nope"
	g.fPollInterval = "16"
	g.fPickerHotkey = " Mod4-space "
	g.fPicker = "fuzzel"
	g.applyForm()

	if !reflect.DeepEqual(cfg.MoveModifiers, []string{"super"}) {
		t.Fatalf("move modifiers = %v", cfg.MoveModifiers)
	}
	if !reflect.DeepEqual(cfg.ResizeModifiers, []string{"super", "shift"}) {
		t.Fatalf("resize modifiers = %v", cfg.ResizeModifiers)
	}
	if cfg.ResizeFromClosestCorner {
		t.Fatalf("resize mode not applied")
	}
	if cfg.MinWidth != 120 || cfg.MinHeight != config.DefaultMinHeight {
		t.Fatalf("min size = %dx%d", cfg.MinWidth, cfg.MinHeight)
	}
	if cfg.PollIntervalMS != 16 {
		t.Fatalf("poll interval = %d", cfg.PollIntervalMS)
	}
	if cfg.PickerHotkey != "Mod4-space" || cfg.PickerBackend != "fuzzel" {
		t.Fatalf("picker = %q/%q", cfg.PickerHotkey, cfg.PickerBackend)
	}
}

func TestValidateModifierInput(t *testing.T) {
	if err := validateModifierInput("ctrl + alt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateModifierInput(""); err != nil {
		t.Fatalf("empty input should disable the mode: %v", err)
	}
	if err := validateModifierInput("hyper"); err == nil {
		t.Fatalf("expected error for unknown modifier")
	}
}

func TestComputeDiffLines(t *testing.T) {
	a := config.DefaultConfig()
	b := a.Clone()
	if lines := computeDiffLines(a, b); lines != nil {
		t.Fatalf("expected no diff, got %v", lines)
	}

	b.BringToFront = true
	lines := computeDiffLines(a, b)
	var added, removed int
	for _, l := range lines {
		switch l.kind {
		case diffAdded:
			added++
		case diffRemoved:
			removed++
		}
	}
	if added != 1 || removed != 1 {
		t.Fatalf("added=%d removed=%d in %v", added, removed, lines)
	}
}

func TestComputeDiffLinesList(t *testing.T) {
	a := config.DefaultConfig()
	b := a.Clone()
	b.ExcludedApps = append(b.ExcludedApps, "gimp")

	lines := computeDiffLines(a, b)
	if len(lines) == 0 || lines[0].kind != diffContext || lines[0].text != "excluded_apps:" {
		t.Fatalf("expected excluded_apps header, got %v", lines)
	}
	var found bool
	for _, l := range lines {
		if l.kind == diffAdded && l.text == "  - gimp" {
			found = true
		}
	}
	if !found {
		t.Fatalf("missing added entry in %v", lines)
	}
}
