// Package tui provides the interactive day view.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/lienzo/internal/config"
	"github.com/javiermolinar/lienzo/internal/event"
	"github.com/javiermolinar/lienzo/internal/layout"
)

// Model is the day view model.
type Model struct {
	// Dependencies
	repo   event.Repository
	config *config.Config

	styles *Styles

	// State
	date       time.Time // day being shown (midnight)
	positioned []layout.Positioned
	skipped    []event.Skipped
	topRow     int // first visible grid row
	loading    bool
	err        error

	spinner spinner.Model

	// Terminal size
	width  int
	height int
}

// NewModel creates a day view model focused on the given date.
func NewModel(repo event.Repository, cfg *config.Config, date time.Time) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		repo:    repo,
		config:  cfg,
		styles:  NewStyles(),
		date:    date,
		topRow:  startHour(cfg) * cfg.UI.RowsPerHour,
		loading: true,
		spinner: sp,
		width:   80,
		height:  24,
	}
}

// Init loads the initial day.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, LoadDay(m.repo, m.config, m.date))
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case DayLoadedMsg:
		m.date = msg.Date
		m.positioned = msg.Positioned
		m.skipped = msg.Skipped
		m.loading = false
		m.err = nil
		return m, nil

	case ErrMsg:
		m.err = msg.Err
		m.loading = false
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "h", "left":
		return m.gotoDay(m.date.AddDate(0, 0, -1))

	case "l", "right":
		return m.gotoDay(m.date.AddDate(0, 0, 1))

	case "t":
		return m.gotoDay(time.Now())

	case "r":
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, LoadDay(m.repo, m.config, m.date))

	case "j", "down":
		if m.topRow < 24*m.config.UI.RowsPerHour-m.gridHeight() {
			m.topRow++
		}
		return m, nil

	case "k", "up":
		if m.topRow > 0 {
			m.topRow--
		}
		return m, nil

	case "g":
		m.topRow = 0
		return m, nil
	}

	return m, nil
}

func (m Model) gotoDay(date time.Time) (tea.Model, tea.Cmd) {
	m.loading = true
	m.topRow = startHour(m.config) * m.config.UI.RowsPerHour
	return m, tea.Batch(m.spinner.Tick, LoadDay(m.repo, m.config, date))
}

// gridHeight is the number of grid rows that fit below the header and
// above the status bar.
func (m Model) gridHeight() int {
	h := m.height - 3
	if h < 5 {
		h = 5
	}
	return h
}

// startHour reads the configured first visible hour.
func startHour(cfg *config.Config) int {
	t := cfg.Calendar.DayStart
	if len(t) < 2 {
		return 0
	}
	return int(t[0]-'0')*10 + int(t[1]-'0')
}

// Run starts the day view focused on today.
func Run(repo event.Repository, cfg *config.Config) error {
	m := NewModel(repo, cfg, time.Now())
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
