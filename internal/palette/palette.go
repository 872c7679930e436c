// Package palette shows the placement templates in an external launcher
// (rofi, fuzzel, wofi or dmenu) and returns the one the user picked.
package palette

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrCancelled is returned when the user closes the launcher without picking.
var ErrCancelled = errors.New("palette cancelled")

// Item is one row in the launcher.
type Item struct {
	Label    string // Display text
	Action   string // Returned on selection
	Icon     string // Icon name for launchers that show icons
	Meta     string // Hidden search keywords (rofi meta field)
	IsHeader bool   // Non-selectable section header
	IsActive bool   // Highlighted and preselected
}

// Capabilities describes what a launcher supports.
type Capabilities struct {
	Icons         bool
	Markup        bool
	NonSelectable bool
	IndexOutput   bool // Prints the row index instead of its text
}

// Backend shows items and returns the one selected.
type Backend interface {
	Show(prompt string, items []Item) (Item, error)
	Capabilities() Capabilities
}

// Names lists the launchers in detection order.
var Names = []string{"rofi", "fuzzel", "wofi", "dmenu"}

// DetectBackend returns the first launcher found in PATH.
func DetectBackend(lookPath func(string) (string, error)) (string, error) {
	for _, name := range Names {
		if _, err := lookPath(name); err == nil {
			return name, nil
		}
	}
	return "", fmt.Errorf("no launcher found in PATH (looked for: %s)", strings.Join(Names, ", "))
}

// NewBackend creates a backend by name. "auto" or "" picks the first
// launcher installed.
func NewBackend(name string) (Backend, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "auto" {
		detected, err := DetectBackend(exec.LookPath)
		if err != nil {
			return nil, err
		}
		name = detected
	}

	b, ok := newLauncher(name)
	if !ok {
		return nil, fmt.Errorf("unknown picker backend: %q (expected: auto, %s)", name, strings.Join(Names, ", "))
	}
	if _, err := exec.LookPath(b.command); err != nil {
		return nil, fmt.Errorf("picker backend %q not found in PATH", name)
	}
	return b, nil
}
