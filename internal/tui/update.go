package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"go.uber.org/zap"

	"github.com/nizram/ping-monitor/internal/config"
	"github.com/nizram/ping-monitor/internal/domain"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = size.Width
		m.height = size.Height
		return m, nil
	}

	if m.showForm && m.form != nil {
		return m.updateForm(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tickMsg:
		m.rows = m.engine.List()
		m.clampSelection()
		return m, doTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showDetail {
		switch msg.String() {
		case "ctrl+c", "q":
			m.quitting = true
			return m, tea.Quit
		case "esc", "enter":
			m.showDetail = false
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true
		return m, tea.Quit

	case "up", "k":
		m.moveSelection(-1)

	case "down", "j":
		m.moveSelection(1)

	case "enter":
		if len(m.rows) > 0 {
			m.showDetail = true
		}

	case "a":
		m.initAddTargetForm()
		return m, m.form.Init()

	case "d":
		m.removeSelected()
	}

	return m, nil
}

// updateForm routes messages to the add-target form while it is open.
func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.closeForm()
		return m, nil
	}

	f, cmd := m.form.Update(msg)
	if form, ok := f.(*huh.Form); ok {
		m.form = form
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.addFromForm()
		m.closeForm()
	case huh.StateAborted:
		m.closeForm()
	}

	return m, cmd
}

func (m *Model) initAddTargetForm() {
	m.errMsg = ""
	m.formData = &formData{Protocol: "ping", Enabled: true}
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Description("Shown in the dashboard").
				Placeholder("Google DNS").
				Value(&m.formData.Name),
			huh.NewInput().
				Title("Host").
				Description("IP address or hostname").
				Placeholder("8.8.8.8").
				Value(&m.formData.Host),
			huh.NewInput().
				Title("Port").
				Description("Leave blank for the protocol default").
				Placeholder("53").
				Value(&m.formData.Port),
			huh.NewSelect[string]().
				Title("Protocol").
				Options(
					huh.NewOption("ping", "ping"),
					huh.NewOption("tcp", "tcp"),
					huh.NewOption("udp", "udp"),
				).
				Value(&m.formData.Protocol),
			huh.NewConfirm().
				Title("Start checking right away?").
				Affirmative("Yes").
				Negative("No").
				Value(&m.formData.Enabled),
		),
	).
		WithTheme(huh.ThemeCatppuccin()).
		WithWidth(60).
		WithShowHelp(true)
	m.showForm = true
}

func (m *Model) closeForm() {
	m.showForm = false
	m.form = nil
	m.formData = nil
}

// addFromForm turns the submitted form into a target and registers it with
// the config first, then the engine. A target the engine rejects is rolled
// back out of the config so the two stay in step.
func (m *Model) addFromForm() {
	d := m.formData

	var port uint16
	if s := strings.TrimSpace(d.Port); s != "" {
		n, err := strconv.ParseUint(s, 10, 16)
		if err != nil {
			m.errMsg = fmt.Sprintf("bad port %q", s)
			return
		}
		port = uint16(n)
	}

	proto, err := domain.ParseProtocol(d.Protocol)
	if err != nil {
		m.errMsg = err.Error()
		return
	}

	t := domain.Target{
		Name:     strings.TrimSpace(d.Name),
		Host:     strings.TrimSpace(d.Host),
		Port:     port,
		Protocol: proto,
		Enabled:  d.Enabled,
	}
	if t.Name == "" {
		m.errMsg = "name is required"
		return
	}

	if err := m.cfg.AddTarget(t); err != nil {
		m.errMsg = err.Error()
		return
	}
	if _, err := m.engine.Add(t); err != nil {
		_ = m.cfg.RemoveTarget(t.Name)
		m.errMsg = err.Error()
		return
	}
	m.saveConfig()

	m.rows = m.engine.List()
	m.clampSelection()
	m.logger.Info("target_added_from_ui",
		zap.String("name", t.Name),
		zap.String("host", t.Host),
	)
}

// removeSelected drops the highlighted target from the engine and the config.
func (m *Model) removeSelected() {
	if len(m.rows) == 0 {
		return
	}
	st := m.rows[m.selected]

	m.engine.Remove(st.ID)
	if err := m.cfg.RemoveTarget(st.Target.Name); err == nil {
		m.saveConfig()
	}

	m.rows = m.engine.List()
	m.clampSelection()
	m.logger.Info("target_removed_from_ui",
		zap.String("target_id", string(st.ID)),
		zap.String("name", st.Target.Name),
	)
}

// saveConfig persists the target list. The engine already holds the change,
// so a failed write only costs persistence, not monitoring.
func (m *Model) saveConfig() {
	if err := config.SaveConfig(m.cfg); err != nil {
		m.logger.Warn("config_save_failed", zap.Error(err))
		m.errMsg = "config not saved: " + err.Error()
	}
}

func (m *Model) moveSelection(delta int) {
	if len(m.rows) == 0 {
		m.selected = 0
		return
	}
	m.selected += delta
	if m.selected < 0 {
		m.selected = len(m.rows) - 1
	} else if m.selected >= len(m.rows) {
		m.selected = 0
	}
}

func (m *Model) clampSelection() {
	if len(m.rows) == 0 {
		m.selected = 0
		return
	}
	if m.selected >= len(m.rows) {
		m.selected = len(m.rows) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}
