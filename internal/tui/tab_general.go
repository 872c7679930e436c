package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/moves/internal/config"
	"github.com/1broseidon/moves/internal/modifiers"
)

const (
	resizeClosestCorner = "closest_corner"
	resizeBottomRight   = "bottom_right"
)

// GeneralTab is the sub-model for the General settings tab.
type GeneralTab struct {
	cfg *config.Config

	// Display dimensions
	width  int
	height int

	// Edit mode
	editing bool
	form    *huh.Form

	// Form-bound values (strings for huh, converted on submit)
	fEnabled      bool
	fMove         string
	fResize       string
	fResizeMode   string
	fBringToFront bool
	fMinWidth     string
	fMinHeight    string
	fPollInterval string
	fToggleHotkey string
	fPickerHotkey string
	fPicker       string
	fShowInTray   bool
	fLogLevel     string
}

// NewGeneralTab creates a GeneralTab from the loaded config.
func NewGeneralTab(cfg *config.Config) GeneralTab {
	return GeneralTab{cfg: cfg}
}

// Update implements tea.Model.
func (g GeneralTab) Update(msg tea.Msg) (GeneralTab, tea.Cmd) {
	if g.editing {
		return g.updateEditing(msg)
	}
	return g.updateDisplay(msg)
}

func (g GeneralTab) updateDisplay(msg tea.Msg) (GeneralTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "e" {
			g.startEditing()
			return g, g.form.Init()
		}
	case tea.WindowSizeMsg:
		g.width = msg.Width
		g.height = msg.Height
	}
	return g, nil
}

func (g GeneralTab) updateEditing(msg tea.Msg) (GeneralTab, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			g.editing = false
			g.form = nil
			return g, nil
		}
	case tea.WindowSizeMsg:
		g.width = msg.Width
		g.height = msg.Height
	}

	form, cmd := g.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		g.form = f
	}

	if g.form.State == huh.StateCompleted {
		g.applyForm()
		g.editing = false
		g.form = nil
		return g, nil
	}

	return g, cmd
}

// loadForm copies the config into the form-bound fields.
func (g *GeneralTab) loadForm() {
	cfg := g.cfg
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	g.fEnabled = cfg.Enabled
	g.fMove = strings.Join(cfg.MoveModifiers, "+")
	g.fResize = strings.Join(cfg.ResizeModifiers, "+")
	g.fResizeMode = resizeBottomRight
	if cfg.ResizeFromClosestCorner {
		g.fResizeMode = resizeClosestCorner
	}
	g.fBringToFront = cfg.BringToFront
	g.fMinWidth = strconv.Itoa(cfg.MinWidth)
	g.fMinHeight = strconv.Itoa(cfg.MinHeight)
	g.fPollInterval = strconv.Itoa(cfg.PollIntervalMS)
	g.fToggleHotkey = cfg.ToggleHotkey
	g.fPickerHotkey = cfg.PickerHotkey
	g.fPicker = cfg.PickerBackend
	g.fShowInTray = cfg.ShowInTray
	g.fLogLevel = cfg.LogLevel
}

func (g *GeneralTab) startEditing() {
	g.loadForm()

	w := g.width - 4
	if w < 40 {
		w = 40
	}

	g.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Key("enabled").
				Title("Enabled").
				Description("Move and resize windows with modifier keys").
				Value(&g.fEnabled),

			huh.NewInput().
				Key("move_modifiers").
				Title("Move Modifiers").
				Description("Hold these and move the mouse to drag a window (e.g. ctrl+alt)").
				Validate(validateModifierInput).
				Value(&g.fMove),

			huh.NewInput().
				Key("resize_modifiers").
				Title("Resize Modifiers").
				Description("Hold these and move the mouse to resize a window").
				Validate(validateModifierInput).
				Value(&g.fResize),

			huh.NewSelect[string]().
				Key("resize_mode").
				Title("Resize From").
				Options(
					huh.NewOption("Closest corner", resizeClosestCorner),
					huh.NewOption("Bottom-right corner", resizeBottomRight),
				).
				Value(&g.fResizeMode),

			huh.NewConfirm().
				Key("bring_to_front").
				Title("Bring To Front").
				Description("Raise and focus the window when a drag starts").
				Value(&g.fBringToFront),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("min_width").
				Title("Minimum Width").
				Validate(validatePositiveInt).
				Value(&g.fMinWidth),
			huh.NewInput().
				Key("min_height").
				Title("Minimum Height").
				Validate(validatePositiveInt).
				Value(&g.fMinHeight),
			huh.NewInput().
				Key("poll_interval_ms").
				Title("Poll Interval (ms)").
				Validate(validatePositiveInt).
				Value(&g.fPollInterval),
			huh.NewInput().
				Key("toggle_hotkey").
				Title("Toggle Hotkey").
				Description("X11 keybinding that enables/disables drags (empty: none)").
				Value(&g.fToggleHotkey),
			huh.NewInput().
				Key("picker_hotkey").
				Title("Picker Hotkey").
				Description("X11 keybinding that opens the template picker (empty: none)").
				Value(&g.fPickerHotkey),
			huh.NewSelect[string]().
				Key("picker_backend").
				Title("Picker Launcher").
				Options(huh.NewOptions("auto", "rofi", "fuzzel", "wofi", "dmenu")...).
				Value(&g.fPicker),
			huh.NewConfirm().
				Key("show_in_tray").
				Title("Show In Tray").
				Value(&g.fShowInTray),
			huh.NewSelect[string]().
				Key("log_level").
				Title("Log Level").
				Options(huh.NewOptions("debug", "info", "warning", "error")...).
				Value(&g.fLogLevel),
		),
	).WithWidth(w).WithShowHelp(true).WithShowErrors(true)

	g.editing = true
}

func validateModifierInput(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	_, err := modifiers.Parse(splitModifierInput(s))
	return err
}

func validatePositiveInt(s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 1 {
		return fmt.Errorf("enter a whole number of at least 1")
	}
	return nil
}

func splitModifierInput(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool {
		return r == '+' || r == ',' || r == ' '
	}) {
		out = append(out, strings.ToLower(part))
	}
	return out
}

// applyForm writes the form-bound fields back into the config. Values that
// do not parse are left unchanged.
func (g *GeneralTab) applyForm() {
	if g.cfg == nil {
		return
	}

	g.cfg.Enabled = g.fEnabled
	if validateModifierInput(g.fMove) == nil {
		g.cfg.MoveModifiers = splitModifierInput(g.fMove)
	}
	if validateModifierInput(g.fResize) == nil {
		g.cfg.ResizeModifiers = splitModifierInput(g.fResize)
	}
	g.cfg.ResizeFromClosestCorner = g.fResizeMode == resizeClosestCorner
	g.cfg.BringToFront = g.fBringToFront
	if v, err := strconv.Atoi(strings.TrimSpace(g.fMinWidth)); err == nil && v >= 1 {
		g.cfg.MinWidth = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(g.fMinHeight)); err == nil && v >= 1 {
		g.cfg.MinHeight = v
	}
	if v, err := strconv.Atoi(strings.TrimSpace(g.fPollInterval)); err == nil && v >= 1 {
		g.cfg.PollIntervalMS = v
	}
	g.cfg.ToggleHotkey = strings.TrimSpace(g.fToggleHotkey)
	g.cfg.PickerHotkey = strings.TrimSpace(g.fPickerHotkey)
	if g.fPicker != "" {
		g.cfg.PickerBackend = g.fPicker
	}
	g.cfg.ShowInTray = g.fShowInTray
	if g.fLogLevel != "" {
		g.cfg.LogLevel = g.fLogLevel
	}
}

// View implements tea.Model.
func (g GeneralTab) View() string {
	if g.editing && g.form != nil {
		return g.viewEditing()
	}
	return g.viewDisplay()
}

func (g GeneralTab) viewDisplay() string {
	cfg := g.cfg
	if cfg == nil {
		style := lipgloss.NewStyle().
			Width(g.width).
			Height(g.height).
			Foreground(lipgloss.Color("241")).
			Align(lipgloss.Center, lipgloss.Center)
		return style.Render("No config loaded")
	}

	labelStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("250")).
		Width(22).
		Align(lipgloss.Right).
		PaddingRight(2)

	valueStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("15")).
		Bold(true)

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}

	resizeMode := "bottom-right corner"
	if cfg.ResizeFromClosestCorner {
		resizeMode = "closest corner"
	}

	lines := []string{
		"",
		row("Enabled", yesNo(cfg.Enabled)),
		row("Move Modifiers", displayOrDefault(strings.Join(cfg.MoveModifiers, "+"), "(off)")),
		row("Resize Modifiers", displayOrDefault(strings.Join(cfg.ResizeModifiers, "+"), "(off)")),
		row("Resize From", resizeMode),
		row("Bring To Front", yesNo(cfg.BringToFront)),
		"",
		row("Minimum Size", fmt.Sprintf("%dx%d", cfg.MinWidth, cfg.MinHeight)),
		row("Poll Interval", fmt.Sprintf("%dms", cfg.PollIntervalMS)),
		"",
		row("Toggle Hotkey", displayOrDefault(cfg.ToggleHotkey, "(none)")),
		row("Template Hotkeys", strconv.Itoa(len(cfg.TemplateHotkeys))),
		row("Picker Hotkey", displayOrDefault(cfg.PickerHotkey, "(none)")),
		row("Picker Launcher", cfg.PickerBackend),
		row("Show In Tray", yesNo(cfg.ShowInTray)),
		row("Log Level", cfg.LogLevel),
		"",
		dimStyle.Render("  Press 'e' to edit settings"),
	}

	content := strings.Join(lines, "\n")

	contentStyle := lipgloss.NewStyle().
		Width(g.width).
		Height(g.height).
		Padding(1, 2)

	return contentStyle.Render(content)
}

func (g GeneralTab) viewEditing() string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Render("Editing General Settings") +
		lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Render("  (esc to cancel)")

	formView := g.form.View()

	content := header + "\n\n" + formView

	style := lipgloss.NewStyle().
		Width(g.width).
		Height(g.height).
		Padding(1, 2)

	return style.Render(content)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func displayOrDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
