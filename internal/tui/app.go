package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/moves/internal/config"
	"github.com/1broseidon/moves/internal/ipc"
)

// daemonClient is the part of the IPC client the TUI uses.
type daemonClient interface {
	GetStatus() (*ipc.StatusData, error)
	Reload() error
}

func newDaemonClient() daemonClient {
	return ipc.NewClient()
}

type daemonState struct {
	connected bool
	enabled   bool
	intention string
}

// model is the root bubbletea model for the TUI.
type model struct {
	configPath string
	cfg        *config.Config
	client     daemonClient

	// Tab navigation
	activeTab Tab

	// Sub-models
	generalTab  GeneralTab
	excludesTab ExcludesTab

	// Save overlay
	originalConfig *config.Config
	saveOverlay    SaveOverlay

	daemon daemonState

	// Terminal dimensions
	width  int
	height int
}

func newModel(configPath string, client daemonClient) (model, error) {
	var (
		res *config.LoadResult
		err error
	)
	if configPath == "" {
		res, err = config.LoadWithSources()
	} else {
		res, err = config.LoadFromPath(configPath)
	}
	if err != nil {
		return model{}, fmt.Errorf("load config: %w", err)
	}

	m := model{
		configPath:     res.Path,
		cfg:            res.Config,
		client:         client,
		activeTab:      TabGeneral,
		originalConfig: res.Config.Clone(),
	}
	m.refreshDaemonStatus()

	m.generalTab = NewGeneralTab(m.cfg)
	m.excludesTab = NewExcludesTab(m.cfg)
	return m, nil
}

func (m *model) refreshDaemonStatus() {
	if m.client == nil {
		m.daemon = daemonState{}
		return
	}
	st, err := m.client.GetStatus()
	if err != nil {
		m.daemon = daemonState{}
		return
	}
	m.daemon = daemonState{
		connected: true,
		enabled:   st.Enabled,
		intention: st.Intention,
	}
}

// contentHeight returns the height available for tab content.
func (m model) contentHeight() int {
	// Approximate: status bar (1) + tab bar (2 with margin) + help bar (1) = 4 lines
	h := m.height - 4
	if h < 1 {
		h = 1
	}
	return h
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

func (m *model) resize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	subMsg := tea.WindowSizeMsg{Width: m.width, Height: m.contentHeight()}
	m.generalTab, _ = m.generalTab.Update(subMsg)
	m.excludesTab, _ = m.excludesTab.Update(subMsg)
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Save overlay captures all input when active
	if m.saveOverlay.Active() {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			prevPhase := m.saveOverlay.phase
			m.saveOverlay = m.saveOverlay.Update(msg, m.cfg, m.configPath, m.client, m.daemon.connected)
			// After successful save, update the original snapshot
			if prevPhase == savePreview && m.saveOverlay.SaveSucceeded() {
				m.originalConfig = m.cfg.Clone()
				m.refreshDaemonStatus()
			}
		case tea.WindowSizeMsg:
			m.resize(msg)
		}
		return m, nil
	}

	// ctrl+s triggers save overlay from any context (including form editing)
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+s" {
		m.saveOverlay.Show(m.originalConfig, m.cfg)
		return m, nil
	}

	// When a sub-model captures input, delegate all messages to it
	// (the form/input consumes keys; only ctrl+c escapes to quit)
	capturing := (m.activeTab == TabGeneral && m.generalTab.editing) ||
		(m.activeTab == TabExcludes && m.excludesTab.adding)
	if capturing {
		switch msg := msg.(type) {
		case tea.KeyMsg:
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
		case tea.WindowSizeMsg:
			m.resize(msg)
			return m, nil
		}
		var cmd tea.Cmd
		switch m.activeTab {
		case TabGeneral:
			m.generalTab, cmd = m.generalTab.Update(msg)
		case TabExcludes:
			m.excludesTab, cmd = m.excludesTab.Update(msg)
		}
		return m, cmd
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "tab":
			m.activeTab = (m.activeTab + 1) % tabCount
			return m, nil
		case "shift+tab":
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			return m, nil
		case "1":
			m.activeTab = TabGeneral
			return m, nil
		case "2":
			m.activeTab = TabExcludes
			return m, nil
		case "r":
			m.refreshDaemonStatus()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.resize(msg)
		return m, nil
	}

	// Delegate to active tab's sub-model
	var cmd tea.Cmd
	switch m.activeTab {
	case TabGeneral:
		m.generalTab, cmd = m.generalTab.Update(msg)
	case TabExcludes:
		m.excludesTab, cmd = m.excludesTab.Update(msg)
	}
	return m, cmd
}

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	statusBar := renderStatusBar(m.daemon, m.width)
	tabBar := renderTabBar(m.activeTab, m.width)
	helpBar := renderHelpBar(m.width)

	usedHeight := lipgloss.Height(statusBar) + lipgloss.Height(tabBar) + lipgloss.Height(helpBar)
	contentHeight := m.height - usedHeight
	if contentHeight < 1 {
		contentHeight = 1
	}

	var content string
	if m.saveOverlay.Active() {
		content = m.saveOverlay.View(m.width, contentHeight)
	} else {
		switch m.activeTab {
		case TabGeneral:
			content = m.generalTab.View()
		case TabExcludes:
			content = m.excludesTab.View()
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		statusBar,
		tabBar,
		content,
		helpBar,
	)
}
