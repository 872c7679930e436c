package palette

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strconv"
	"strings"
)

type launcherKind int

const (
	kindRofi launcherKind = iota
	kindFuzzel
	kindWofi
	kindDmenu
)

// launcher drives any dmenu-style program: items on stdin, selection on stdout.
type launcher struct {
	command string
	kind    launcherKind
	caps    Capabilities

	run func(name string, args []string, stdin string) (string, error)
}

func newLauncher(name string) (*launcher, bool) {
	l := &launcher{command: name, run: runCommand}
	switch name {
	case "rofi":
		l.kind = kindRofi
		l.caps = Capabilities{Icons: true, Markup: true, NonSelectable: true, IndexOutput: true}
	case "fuzzel":
		l.kind = kindFuzzel
		l.caps = Capabilities{Icons: true, IndexOutput: true}
	case "wofi":
		l.kind = kindWofi
		l.caps = Capabilities{Icons: true, Markup: true}
	case "dmenu":
		l.kind = kindDmenu
	default:
		return nil, false
	}
	return l, true
}

func (l *launcher) Capabilities() Capabilities {
	return l.caps
}

func (l *launcher) Show(prompt string, items []Item) (Item, error) {
	if len(items) == 0 {
		return Item{}, fmt.Errorf("palette: no items to show")
	}

	display := make([]Item, len(items))
	copy(display, items)

	input, selected := l.formatInput(display)
	out, err := l.run(l.command, l.buildArgs(prompt, selected), input)
	selection := strings.TrimSpace(out)
	if err != nil {
		if selection == "" && isCancelExit(err) {
			return Item{}, ErrCancelled
		}
		return Item{}, err
	}
	if selection == "" {
		return Item{}, ErrCancelled
	}
	return l.parseSelection(selection, display)
}

func runCommand(name string, args []string, stdin string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(stdin)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && isCancelExit(err) {
			return string(out), err
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return string(out), fmt.Errorf("%s failed: %s", name, msg)
		}
		return string(out), fmt.Errorf("%s failed: %w", name, err)
	}
	return string(out), nil
}

func (l *launcher) buildArgs(prompt string, selectedRow int) []string {
	var args []string

	switch l.kind {
	case kindRofi:
		args = []string{"-dmenu", "-i", "-format", "i", "-no-custom", "-markup-rows", "-show-icons"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
		if selectedRow >= 0 {
			args = append(args, "-selected-row", strconv.Itoa(selectedRow))
		}

	case kindFuzzel:
		args = []string{"--dmenu", "--index"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}

	case kindWofi:
		args = []string{"--dmenu", "--allow-markup", "--allow-images"}
		if prompt != "" {
			args = append(args, "--prompt", prompt)
		}

	case kindDmenu:
		args = []string{"-i"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
	}
	return args
}

// formatInput renders the rows and returns the index to preselect, or -1.
// Launchers without row state skip headers entirely.
func (l *launcher) formatInput(items []Item) (string, int) {
	lines := make([]string, 0, len(items))
	selected := -1
	firstSelectable := -1

	for i, item := range items {
		lines = append(lines, l.formatItem(item))
		if item.IsHeader {
			continue
		}
		if firstSelectable == -1 {
			firstSelectable = i
		}
		if item.IsActive && selected == -1 {
			selected = i
		}
	}
	if selected == -1 {
		selected = firstSelectable
	}
	return strings.Join(lines, "\n"), selected
}

func (l *launcher) formatItem(item Item) string {
	display := sanitizeLabel(item.Label)
	if l.caps.Markup {
		display = html.EscapeString(display)
		if item.IsHeader {
			display = "<b>" + display + "</b>"
		}
	}

	// Rofi row properties: a single NUL, then key\x1fvalue pairs joined by \x1f.
	if l.kind != kindRofi {
		return display
	}

	var attrs []string
	if item.IsHeader {
		attrs = append(attrs, "nonselectable", "true")
	}
	if item.Icon != "" {
		attrs = append(attrs, "icon", sanitizeRofiField(item.Icon))
	}
	if item.Meta != "" {
		attrs = append(attrs, "meta", sanitizeRofiField(item.Meta))
	}
	if len(attrs) == 0 {
		return display
	}
	return display + "\x00" + strings.Join(attrs, "\x1f")
}

func (l *launcher) parseSelection(selection string, items []Item) (Item, error) {
	if l.caps.IndexOutput {
		if idx, err := strconv.Atoi(selection); err == nil {
			if idx < 0 || idx >= len(items) {
				return Item{}, fmt.Errorf("palette: index %d out of range", idx)
			}
			return items[idx], nil
		}
	}
	for _, item := range items {
		if sanitizeLabel(item.Label) == selection {
			return item, nil
		}
	}
	return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
}

func sanitizeLabel(label string) string {
	label = strings.ReplaceAll(label, "\r", " ")
	label = strings.ReplaceAll(label, "\n", " ")
	return strings.TrimSpace(label)
}

func sanitizeRofiField(value string) string {
	value = strings.ReplaceAll(value, "\x00", " ")
	value = strings.ReplaceAll(value, "\x1f", " ")
	return sanitizeLabel(value)
}

func isCancelExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	// 1 is "no selection" for all four launchers, 130 is Ctrl+C.
	switch exitErr.ExitCode() {
	case 1, 130:
		return true
	default:
		return false
	}
}
