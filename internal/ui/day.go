package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/javiermolinar/lienzo/internal/dateutil"
	"github.com/javiermolinar/lienzo/internal/event"
	"github.com/javiermolinar/lienzo/internal/layout"
)

func (a *App) dayCmd() *cobra.Command {
	var (
		showPixels bool
		copyOutput bool
	)

	cmd := &cobra.Command{
		Use:   "day [date]",
		Short: "Show the packed layout for one day",
		Long: `Show the column-packed layout for a single day.

The date can be absolute (YYYY-MM-DD) or relative (today, yesterday,
tomorrow, a weekday name). Without a date, today is shown.

By default the layout is drawn as a terminal grid. With --pixels the
raw engine output is printed instead: top and height in pixels plus
each event's column assignment.`,
		Example: `  lienzo day
  lienzo day tomorrow
  lienzo day 2025-03-14 --pixels`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			date, err := dateutil.ParseRelativeDate(arg, time.Now())
			if err != nil {
				return err
			}

			positioned, skipped, err := a.layoutForDay(date, showPixels)
			if err != nil {
				return err
			}

			fmt.Println(formatHeader(date.Format("Monday, January 2 2006")))

			if len(positioned) == 0 {
				fmt.Println(formatMuted("(no events)"))
			} else if showPixels {
				printPixels(positioned)
			} else {
				lines := RenderDayGrid(positioned, GridOpts{
					RowsPerHour: a.config.UI.RowsPerHour,
					Width:       termWidth(),
					StartHour:   hourOf(a.config.Calendar.DayStart),
					EndHour:     hourOf(a.config.Calendar.DayEnd),
				})
				out := strings.Join(lines, "\n")
				fmt.Println(out)

				if copyOutput {
					if err := clipboard.WriteAll(out); err != nil {
						return fmt.Errorf("copying layout: %w", err)
					}
					fmt.Println(formatMuted("(copied to clipboard)"))
				}
			}

			printSkipped(skipped)
			return nil
		},
	}

	cmd.Flags().BoolVar(&showPixels, "pixels", false, "Print raw pixel offsets instead of the grid")
	cmd.Flags().BoolVar(&copyOutput, "copy", false, "Copy the rendered grid to the clipboard")

	return cmd
}

// layoutForDay loads, normalizes, and lays out one day's events.
// For grid rendering the engine is scaled to terminal rows; --pixels
// keeps the configured pixel scale.
func (a *App) layoutForDay(date time.Time, pixels bool) ([]layout.Positioned, []event.Skipped, error) {
	day := dateutil.TruncateToDay(date)
	raws, err := a.repo.ListEventsByDateRange(context.Background(), day, day)
	if err != nil {
		return nil, nil, fmt.Errorf("listing events: %w", err)
	}

	cfg := a.config.LayoutConfig()
	events, skipped := event.Normalize(values(raws), cfg.DefaultDuration())

	if !pixels {
		// Terminal rows stand in for pixels: one row per grid slot.
		cfg.PixelsPerHour = a.config.UI.RowsPerHour
		cfg.MinimumHeightPx = 1
	}

	return layout.Day(events, layout.DayWindow(day), cfg), skipped, nil
}

func printPixels(positioned []layout.Positioned) {
	fmt.Printf("  %-5s %-13s %8s %8s  %-7s %s\n",
		"id", "time", "top", "height", "lane", "title")
	for _, p := range positioned {
		fmt.Printf("  %-5s %s-%s %8.1f %8.1f  %-7s %s\n",
			p.Event.Raw.ID,
			p.Event.Start.Format("15:04"),
			p.EffectiveEnd.Format("15:04"),
			p.Top,
			p.Height,
			fmt.Sprintf("%d/%d", p.Column+1, p.TotalColumns),
			formatEvent(p.Event.Raw.Title),
		)
	}
}

func printSkipped(skipped []event.Skipped) {
	for _, s := range skipped {
		fmt.Println(formatWarn(fmt.Sprintf("  ! skipped event %s: %v", s.ID, s.Reason)))
	}
}

// hourOf extracts the hour from an "HH:MM" config value.
func hourOf(t string) int {
	if len(t) < 2 {
		return 0
	}
	return int(t[0]-'0')*10 + int(t[1]-'0')
}

func values(raws []*event.Raw) []event.Raw {
	out := make([]event.Raw, len(raws))
	for i, r := range raws {
		out[i] = *r
	}
	return out
}
