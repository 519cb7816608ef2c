package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/lienzo/internal/config"
	"github.com/javiermolinar/lienzo/internal/dateutil"
	"github.com/javiermolinar/lienzo/internal/event"
	"github.com/javiermolinar/lienzo/internal/layout"
)

// DayLoadedMsg is sent when a day's layout is ready.
type DayLoadedMsg struct {
	Date       time.Time
	Positioned []layout.Positioned
	Skipped    []event.Skipped
}

// ErrMsg is sent when loading fails.
type ErrMsg struct {
	Err error
}

// LoadDay loads one day's events and computes its layout. The engine is
// scaled to terminal rows so Top and Height map directly onto grid lines.
func LoadDay(repo event.Repository, cfg *config.Config, date time.Time) tea.Cmd {
	return func() tea.Msg {
		day := dateutil.TruncateToDay(date)

		raws, err := repo.ListEventsByDateRange(context.Background(), day, day)
		if err != nil {
			return ErrMsg{Err: err}
		}

		lcfg := cfg.LayoutConfig()
		events, skipped := event.Normalize(deref(raws), lcfg.DefaultDuration())

		lcfg.PixelsPerHour = cfg.UI.RowsPerHour
		lcfg.MinimumHeightPx = 1

		return DayLoadedMsg{
			Date:       day,
			Positioned: layout.Day(events, layout.DayWindow(day), lcfg),
			Skipped:    skipped,
		}
	}
}

func deref(raws []*event.Raw) []event.Raw {
	out := make([]event.Raw, len(raws))
	for i, r := range raws {
		out[i] = *r
	}
	return out
}
