// Package tray shows the status icon with enable/disable, settings and quit
// entries.
package tray

import (
	_ "embed"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/getlantern/systray"
)

//go:embed icon.png
var trayIcon []byte

// Dependencies are the actions the menu triggers.
type Dependencies struct {
	Enabled      func() bool
	OnSetEnabled func(enabled bool)
	OnQuit       func()
}

// Manager owns the tray icon and its menu.
type Manager struct {
	deps     Dependencies
	once     sync.Once
	stopOnce sync.Once
	stop     chan struct{}
	quit     func()

	mu          sync.Mutex
	itemStatus  *systray.MenuItem
	itemEnable  *systray.MenuItem
	itemDisable *systray.MenuItem
	enabled     bool
}

// NewManager creates a manager; nothing is shown until Start.
func NewManager(deps Dependencies) *Manager {
	return &Manager{deps: deps, stop: make(chan struct{}), quit: systray.Quit}
}

// Start shows the icon. It returns immediately.
func (m *Manager) Start() {
	m.once.Do(func() {
		go systray.Run(m.onReady, m.onExit)
	})
}

// Stop removes the icon. It is safe to call more than once and from the
// menu goroutine while the daemon shuts down.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() {
		close(m.stop)
		m.quit()
	})
}

// SetEnabled refreshes the menu after the enabled state changed elsewhere.
func (m *Manager) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
	if m.itemStatus == nil {
		return
	}
	m.itemStatus.SetTitle(statusTitle(enabled))
	if enabled {
		m.itemEnable.Disable()
		m.itemDisable.Enable()
	} else {
		m.itemEnable.Enable()
		m.itemDisable.Disable()
	}
	systray.SetTooltip(statusTitle(enabled))
}

func statusTitle(enabled bool) string {
	if enabled {
		return "Moves: enabled"
	}
	return "Moves: disabled"
}

func (m *Manager) onReady() {
	systray.SetTitle("Moves")
	systray.SetIcon(trayIcon)

	itemStatus := systray.AddMenuItem("Moves", "")
	itemStatus.Disable()
	systray.AddSeparator()
	itemEnable := systray.AddMenuItem("Enable", "Move and resize windows with modifier keys")
	itemDisable := systray.AddMenuItem("Disable", "Ignore modifier drags")
	itemSettings := systray.AddMenuItem("Settings…", "Open settings in a terminal")
	systray.AddSeparator()
	itemQuit := systray.AddMenuItem("Quit", "Stop the daemon")

	m.mu.Lock()
	m.itemStatus, m.itemEnable, m.itemDisable = itemStatus, itemEnable, itemDisable
	m.mu.Unlock()

	enabled := true
	if m.deps.Enabled != nil {
		enabled = m.deps.Enabled()
	}
	m.SetEnabled(enabled)

	go func() {
		for {
			select {
			case <-m.stop:
				return
			case <-itemEnable.ClickedCh:
				if m.deps.OnSetEnabled != nil {
					m.deps.OnSetEnabled(true)
				}
			case <-itemDisable.ClickedCh:
				if m.deps.OnSetEnabled != nil {
					m.deps.OnSetEnabled(false)
				}
			case <-itemSettings.ClickedCh:
				if err := OpenSettings(); err != nil {
					log.Printf("Failed to open settings: %v", err)
				}
			case <-itemQuit.ClickedCh:
				if m.deps.OnQuit != nil {
					m.deps.OnQuit()
				}
				m.Stop()
				return
			}
		}
	}()
}

func (m *Manager) onExit() {}

// fallbackTerminals are tried in order when $TERMINAL is unset.
var fallbackTerminals = []string{"x-terminal-emulator", "gnome-terminal", "konsole", "alacritty", "kitty", "xterm"}

// OpenSettings starts `moves tui` in a terminal emulator.
func OpenSettings() error {
	exe, err := os.Executable()
	if err != nil {
		exe = "moves"
	}
	args, err := settingsCommand(os.Getenv("TERMINAL"), exe, exec.LookPath)
	if err != nil {
		return err
	}
	cmd := exec.Command(args[0], args[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start %s: %w", args[0], err)
	}
	go cmd.Wait()
	return nil
}

// settingsCommand builds the argv that opens the TUI. $TERMINAL may carry
// its own flags.
func settingsCommand(terminal, exe string, lookPath func(string) (string, error)) ([]string, error) {
	var term []string
	if fields := strings.Fields(terminal); len(fields) > 0 {
		term = fields
	} else {
		for _, candidate := range fallbackTerminals {
			if _, err := lookPath(candidate); err == nil {
				term = []string{candidate}
				break
			}
		}
	}
	if len(term) == 0 {
		return nil, fmt.Errorf("no terminal emulator found; set $TERMINAL")
	}

	sep := "-e"
	if strings.HasSuffix(term[0], "gnome-terminal") {
		sep = "--"
	}
	return append(term, sep, exe, "tui"), nil
}
