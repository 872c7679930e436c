package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/moves/internal/config"
)

// excludeItem is a list item representing one excluded_apps entry.
type excludeItem struct {
	entry string
}

func (i excludeItem) Title() string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("⊘") + " " + i.entry
}

func (i excludeItem) Description() string {
	return excludeKind(i.entry)
}

func (i excludeItem) FilterValue() string { return i.entry }

func excludeKind(entry string) string {
	switch {
	case strings.HasPrefix(entry, "/") && strings.HasSuffix(entry, "/"):
		return "executables under directory"
	case strings.HasPrefix(entry, "/"):
		return "executable path"
	default:
		return "window class or instance"
	}
}

// ExcludesTab is the sub-model for the Excluded Apps tab.
type ExcludesTab struct {
	list   list.Model
	cfg    *config.Config
	width  int
	height int

	// Add mode
	adding    bool
	textInput textinput.Model
}

// NewExcludesTab creates a new ExcludesTab from the loaded config.
func NewExcludesTab(cfg *config.Config) ExcludesTab {
	items := buildExcludeItems(cfg)

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("15")).
		BorderForeground(lipgloss.Color("62"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("250")).
		BorderForeground(lipgloss.Color("62"))

	l := list.New(items, delegate, 0, 0)
	l.Title = "Excluded Apps"
	l.Styles.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15")).
		Background(lipgloss.Color("62")).
		Padding(0, 1)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.KeyMap.Quit.SetEnabled(false)

	ti := textinput.New()
	ti.Placeholder = "e.g. Gimp, /usr/bin/blender, /opt/games/"
	ti.CharLimit = 256

	return ExcludesTab{
		list:      l,
		cfg:       cfg,
		textInput: ti,
	}
}

// Update handles messages for the excludes tab.
func (t ExcludesTab) Update(msg tea.Msg) (ExcludesTab, tea.Cmd) {
	if t.adding {
		return t.updateAdding(msg)
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.height = msg.Height
		t.list.SetSize(t.listWidth(), t.height)
		return t, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "a":
			t.adding = true
			t.textInput.Reset()
			t.textInput.Focus()
			return t, textinput.Blink
		case "x", "delete":
			if item, ok := t.list.SelectedItem().(excludeItem); ok {
				t.removeEntry(item.entry)
				t.list.SetItems(buildExcludeItems(t.cfg))
			}
			return t, nil
		}
	}

	var cmd tea.Cmd
	t.list, cmd = t.list.Update(msg)
	return t, cmd
}

func (t ExcludesTab) updateAdding(msg tea.Msg) (ExcludesTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			value := strings.TrimSpace(t.textInput.Value())
			if value != "" {
				t.addEntry(value)
				t.list.SetItems(buildExcludeItems(t.cfg))
			}
			t.adding = false
			t.textInput.Blur()
			return t, nil
		case "esc":
			t.adding = false
			t.textInput.Blur()
			return t, nil
		}
	case tea.WindowSizeMsg:
		t.width = msg.Width
		t.height = msg.Height
		return t, nil
	}

	var cmd tea.Cmd
	t.textInput, cmd = t.textInput.Update(msg)
	return t, cmd
}

func (t ExcludesTab) listWidth() int {
	w := t.width * 2 / 5
	if w < 20 {
		w = 20
	}
	return w
}

func (t *ExcludesTab) addEntry(entry string) {
	if t.cfg == nil {
		return
	}
	for _, existing := range t.cfg.ExcludedApps {
		if strings.EqualFold(existing, entry) {
			return
		}
	}
	t.cfg.ExcludedApps = append(t.cfg.ExcludedApps, entry)
}

func (t *ExcludesTab) removeEntry(entry string) {
	if t.cfg == nil {
		return
	}
	for i, existing := range t.cfg.ExcludedApps {
		if existing == entry {
			t.cfg.ExcludedApps = append(t.cfg.ExcludedApps[:i:i], t.cfg.ExcludedApps[i+1:]...)
			return
		}
	}
}

// View implements tea.Model.
func (t ExcludesTab) View() string {
	if t.width == 0 || t.height == 0 {
		return ""
	}

	leftWidth := t.listWidth()
	rightWidth := t.width - leftWidth
	if rightWidth < 10 {
		rightWidth = 10
	}

	var leftContent string
	if t.adding {
		inputStyle := lipgloss.NewStyle().Padding(0, 1).Width(leftWidth)
		prompt := lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")).
			Bold(true).
			Render("Exclude app:") + "\n" +
			t.textInput.View() + "\n" +
			lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render("enter: confirm  esc: cancel")
		inputBlock := inputStyle.Render(prompt)
		listHeight := t.height - lipgloss.Height(inputBlock)
		if listHeight < 1 {
			listHeight = 1
		}
		t.list.SetSize(leftWidth, listHeight)
		leftContent = inputBlock + "\n" + t.list.View()
	} else {
		leftContent = t.list.View()
	}

	left := lipgloss.NewStyle().
		Width(leftWidth).
		Height(t.height).
		Render(leftContent)

	right := renderExcludeHelp(t.list.SelectedItem(), rightWidth, t.height)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func buildExcludeItems(cfg *config.Config) []list.Item {
	if cfg == nil {
		return nil
	}
	items := make([]list.Item, 0, len(cfg.ExcludedApps))
	for _, entry := range cfg.ExcludedApps {
		items = append(items, excludeItem{entry: entry})
	}
	return items
}

// renderExcludeHelp renders the right-side pane explaining the selected entry.
func renderExcludeHelp(selected list.Item, width, height int) string {
	var b strings.Builder

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

	if item, ok := selected.(excludeItem); ok {
		b.WriteString(titleStyle.Render(item.entry))
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("matches " + excludeKind(item.entry)))
		b.WriteString("\n\n")
	} else {
		b.WriteString(dimStyle.Render("No apps excluded"))
		b.WriteString("\n\n")
	}

	b.WriteString(dimStyle.Render("Windows of excluded apps are never moved or resized."))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Entries starting with / match the executable path;"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("a trailing / matches everything under a directory."))
	b.WriteString("\n\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	b.WriteString(helpStyle.Render("a: add  x: remove"))

	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		BorderStyle(lipgloss.NormalBorder()).
		BorderLeft(true).
		BorderForeground(lipgloss.Color("236"))

	return style.Render(b.String())
}
