package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/nizram/ping-monitor/internal/config"
	"github.com/nizram/ping-monitor/internal/domain"
	"github.com/nizram/ping-monitor/internal/monitor"
)

// Model is the dashboard state. It owns no monitoring state of its own;
// every tick it pulls fresh status copies from the engine.
type Model struct {
	engine *monitor.Engine
	cfg    *config.Config
	logger *zap.Logger

	rows     []domain.Status
	width    int
	height   int
	selected int

	showDetail bool
	quitting   bool
	errMsg     string

	spin spinner.Model

	form     *huh.Form
	showForm bool
	formData *formData
}

// formData backs the add-target form fields.
type formData struct {
	Name     string
	Host     string
	Port     string
	Protocol string
	Enabled  bool
}

func NewModel(eng *monitor.Engine, cfg *config.Config, logger *zap.Logger) Model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(colorPending)
	return Model{
		engine: eng,
		cfg:    cfg,
		logger: logger,
		rows:   eng.List(),
		spin:   s,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.spin.Tick,
		doTick(),
	)
}

// tickMsg drives the 1Hz refresh of the status table.
type tickMsg time.Time

func doTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
