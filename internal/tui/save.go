package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/moves/internal/config"
)

type savePhase int

const (
	saveHidden  savePhase = iota
	savePreview           // showing diff, awaiting confirm
	saveResult            // showing outcome message
)

type diffKind int

const (
	diffContext diffKind = iota
	diffRemoved
	diffAdded
)

type diffLine struct {
	kind diffKind
	text string
}

// SaveOverlay manages the config save diff preview and confirmation workflow.
type SaveOverlay struct {
	phase        savePhase
	diffLines    []diffLine
	err          error
	reloaded     bool
	scrollOffset int
}

// Active reports whether the overlay is visible.
func (s SaveOverlay) Active() bool {
	return s.phase != saveHidden
}

// Show computes the diff and opens the preview overlay.
func (s *SaveOverlay) Show(original, current *config.Config) {
	s.err = nil
	s.reloaded = false
	s.scrollOffset = 0

	lines := computeDiffLines(original, current)
	if len(lines) == 0 {
		s.phase = saveResult
		s.err = fmt.Errorf("no changes to save")
		return
	}
	s.diffLines = lines
	s.phase = savePreview
}

// SaveSucceeded reports whether the last save completed without error.
func (s SaveOverlay) SaveSucceeded() bool {
	return s.phase == saveResult && s.err == nil
}

// Update handles input while the overlay is active.
func (s SaveOverlay) Update(msg tea.Msg, cfg *config.Config, path string, client daemonClient, connected bool) SaveOverlay {
	switch s.phase {
	case savePreview:
		if km, ok := msg.(tea.KeyMsg); ok {
			switch km.String() {
			case "esc":
				s.phase = saveHidden
			case "enter", "y":
				s.err = saveConfig(cfg, path)
				if s.err == nil && connected && client != nil {
					s.reloaded = client.Reload() == nil
				}
				s.phase = saveResult
			case "up", "k":
				if s.scrollOffset > 0 {
					s.scrollOffset--
				}
			case "down", "j":
				s.scrollOffset++
			}
		}
	case saveResult:
		if _, ok := msg.(tea.KeyMsg); ok {
			s.phase = saveHidden
		}
	}
	return s
}

// View renders the overlay for the given content area dimensions.
func (s SaveOverlay) View(width, height int) string {
	switch s.phase {
	case savePreview:
		return s.viewPreview(width, height)
	case saveResult:
		return s.viewResult(width, height)
	}
	return ""
}

func (s SaveOverlay) viewPreview(areaW, areaH int) string {
	boxW := areaW - 8
	if boxW > 80 {
		boxW = 80
	}
	if boxW < 30 {
		boxW = 30
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	addStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	rmStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	ctxStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	footStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	title := titleStyle.Render("Save Config: Pending Changes")

	// Visible diff area height: total minus title, blank lines, footer, border, padding
	diffH := areaH - 10
	if diffH < 3 {
		diffH = 3
	}

	// Clamp scroll offset
	maxScroll := len(s.diffLines) - diffH
	if maxScroll < 0 {
		maxScroll = 0
	}
	off := s.scrollOffset
	if off > maxScroll {
		off = maxScroll
	}

	innerW := boxW - 6 // account for border + padding
	if innerW < 10 {
		innerW = 10
	}

	end := off + diffH
	if end > len(s.diffLines) {
		end = len(s.diffLines)
	}

	var lines []string
	for _, dl := range s.diffLines[off:end] {
		t := dl.text
		if len(t) > innerW-2 {
			t = t[:innerW-2]
		}
		switch dl.kind {
		case diffAdded:
			lines = append(lines, addStyle.Render("+ "+t))
		case diffRemoved:
			lines = append(lines, rmStyle.Render("- "+t))
		default:
			lines = append(lines, ctxStyle.Render("  "+t))
		}
	}

	diff := strings.Join(lines, "\n")
	footer := footStyle.Render("enter: save  esc: cancel  j/k: scroll")
	content := title + "\n\n" + diff + "\n\n" + footer

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(boxW).
		Render(content)

	return lipgloss.Place(areaW, areaH, lipgloss.Center, lipgloss.Center, box)
}

func (s SaveOverlay) viewResult(areaW, areaH int) string {
	boxW := areaW - 8
	if boxW > 60 {
		boxW = 60
	}
	if boxW < 30 {
		boxW = 30
	}

	var msg string
	if s.err != nil {
		errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
		msg = errStyle.Render("Error: " + s.err.Error())
	} else {
		okStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
		msg = okStyle.Render("Config saved successfully")
		if s.reloaded {
			msg += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Render("Daemon reloaded")
		}
	}

	footer := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("press any key to dismiss")
	content := msg + "\n\n" + footer

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(boxW).
		Render(content)

	return lipgloss.Place(areaW, areaH, lipgloss.Center, lipgloss.Center, box)
}

// computeDiffLines compares the two configs one top-level key at a time.
// Scalars show as a removed/added pair; lists and maps are printed in full
// under their key.
func computeDiffLines(original, current *config.Config) []diffLine {
	if original == nil || current == nil {
		return nil
	}
	before, err := topLevelYAML(original)
	if err != nil {
		return nil
	}
	after, err := topLevelYAML(current)
	if err != nil {
		return nil
	}

	keys := after.keys
	for _, key := range before.keys {
		if _, ok := after.values[key]; !ok {
			keys = append(keys, key)
		}
	}

	var lines []diffLine
	for _, key := range keys {
		a, b := before.values[key], after.values[key]
		if a.text == b.text {
			continue
		}
		if a.scalar && b.scalar && a.text != "" && b.text != "" {
			lines = append(lines,
				diffLine{kind: diffRemoved, text: key + ": " + a.text},
				diffLine{kind: diffAdded, text: key + ": " + b.text})
			continue
		}
		lines = append(lines, diffLine{kind: diffContext, text: key + ":"})
		lines = appendBlock(lines, diffRemoved, a.text)
		lines = appendBlock(lines, diffAdded, b.text)
	}
	return lines
}

type yamlValue struct {
	text   string
	scalar bool
}

type yamlFields struct {
	keys   []string
	values map[string]yamlValue
}

func topLevelYAML(cfg *config.Config) (yamlFields, error) {
	var doc yaml.Node
	if err := doc.Encode(cfg); err != nil {
		return yamlFields{}, err
	}
	out := yamlFields{values: make(map[string]yamlValue)}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		key, val := doc.Content[i].Value, doc.Content[i+1]
		data, err := yaml.Marshal(val)
		if err != nil {
			return yamlFields{}, err
		}
		out.keys = append(out.keys, key)
		out.values[key] = yamlValue{
			text:   strings.TrimSpace(string(data)),
			scalar: val.Kind == yaml.ScalarNode,
		}
	}
	return out, nil
}

func appendBlock(lines []diffLine, kind diffKind, text string) []diffLine {
	if text == "" {
		return lines
	}
	for _, l := range strings.Split(text, "\n") {
		lines = append(lines, diffLine{kind: kind, text: "  " + l})
	}
	return lines
}

func saveConfig(cfg *config.Config, path string) error {
	if path == "" {
		return cfg.Save()
	}
	return cfg.SaveTo(path)
}
