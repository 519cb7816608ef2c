package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/lienzo/internal/dateutil"
	"github.com/javiermolinar/lienzo/internal/layout"
)

const gutterWidth = 6

// View renders the day view.
func (m Model) View() string {
	var sections []string

	sections = append(sections, m.renderHeader())

	switch {
	case m.loading:
		sections = append(sections, fmt.Sprintf("\n  %s loading…", m.spinner.View()))
	case m.err != nil:
		sections = append(sections, m.styles.Warning.Render(fmt.Sprintf("\n  error: %v", m.err)))
	default:
		sections = append(sections, m.renderGrid())
	}

	sections = append(sections, m.renderStatus())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader() string {
	title := m.date.Format("Monday, January 2 2006")
	header := m.styles.Header.Render(title)
	if len(m.skipped) > 0 {
		header += m.styles.Warning.Render(fmt.Sprintf("  (%d skipped)", len(m.skipped)))
	}
	return header
}

func (m Model) renderGrid() string {
	rowsPerHour := m.config.UI.RowsPerHour
	lanes := layout.MaxColumns(m.positioned)
	if lanes == 0 {
		return m.styles.Empty.Render("\n  (no events today)")
	}

	laneWidth := (m.width - gutterWidth - (lanes - 1)) / lanes
	if laneWidth < 6 {
		laneWidth = 6
	}

	nowRow := -1
	now := time.Now()
	if dateutil.SameDay(now, m.date) {
		nowRow = (now.Hour()*60 + now.Minute()) * rowsPerHour / 60
	}

	var lines []string
	maxRow := 24 * rowsPerHour
	for row := m.topRow; row < m.topRow+m.gridHeight() && row < maxRow; row++ {
		var cells []string
		cells = append(cells, m.renderGutter(row, rowsPerHour, nowRow))

		for lane := 0; lane < lanes; lane++ {
			cells = append(cells, m.renderCell(row, lane, laneWidth))
		}

		lines = append(lines, strings.Join(cells, " "))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderGutter(row, rowsPerHour, nowRow int) string {
	if row == nowRow {
		return m.styles.NowLine.Render(fmt.Sprintf("%02d:%02d▸",
			row/rowsPerHour, row%rowsPerHour*60/rowsPerHour))
	}
	if row%rowsPerHour == 0 {
		return m.styles.Gutter.Render(fmt.Sprintf("%02d:00 ", row/rowsPerHour))
	}
	return strings.Repeat(" ", gutterWidth)
}

func (m Model) renderCell(row, lane, width int) string {
	for _, p := range m.positioned {
		if p.Column != lane {
			continue
		}
		top := int(math.Round(p.Top))
		span := int(math.Round(p.Height))
		if span < 1 {
			span = 1
		}
		if row < top || row >= top+span {
			continue
		}

		text := ""
		if row == top {
			text = " " + p.Event.Raw.Title
		} else if row == top+1 && p.Event.Raw.Location != "" {
			text = " @ " + p.Event.Raw.Location
		}
		text = ansi.Truncate(text, width, "…")
		text += strings.Repeat(" ", width-ansi.StringWidth(text))
		return m.styles.Lane(lane).Render(text)
	}
	return strings.Repeat(" ", width)
}

func (m Model) renderStatus() string {
	help := "h/l:day  t:today  j/k:scroll  r:reload  q:quit"
	left := fmt.Sprintf(" %d events", len(m.positioned))
	if lanes := layout.MaxColumns(m.positioned); lanes > 1 {
		left += fmt.Sprintf("  %d-wide overlap", lanes)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(help)
	if gap < 1 {
		gap = 1
	}
	return m.styles.Status.Render(left + strings.Repeat(" ", gap) + help)
}
