package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/lienzo/internal/dateutil"
	"github.com/javiermolinar/lienzo/internal/event"
	"github.com/javiermolinar/lienzo/internal/layout"
)

func (a *App) weekCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "week [date]",
		Short: "Summarize the week containing a date",
		Long: `Summarize the Monday-to-Sunday week containing the given date
(default: today). For each day: event count, busiest overlap width,
and a bar proportional to scheduled time.`,
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

			monday, sunday := dateutil.WeekRange(date)
			raws, err := a.repo.ListEventsByDateRange(context.Background(), monday, sunday)
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			cfg := a.config.LayoutConfig()
			events, skipped := event.Normalize(values(raws), cfg.DefaultDuration())
			buckets := event.BucketByDay(events)

			fmt.Println(formatHeader(fmt.Sprintf("Week of %s", monday.Format("January 2, 2006"))))

			for i := 0; i < 7; i++ {
				day := monday.AddDate(0, 0, i)
				key := dateutil.DayKey(day)
				bucket := buckets[key]

				positioned := layout.Day(bucket, layout.DayWindow(day), cfg)

				label := day.Format("Mon 02")
				if len(positioned) == 0 {
					fmt.Printf("  %s  %s\n", label, formatMuted("—"))
					continue
				}

				scheduled := time.Duration(0)
				for _, p := range positioned {
					scheduled += p.EffectiveEnd.Sub(p.Event.Start)
				}

				lanes := layout.MaxColumns(positioned)
				laneNote := ""
				if lanes > 1 {
					laneNote = formatWarn(fmt.Sprintf("  %d-wide overlap", lanes))
				}

				fmt.Printf("  %s  %s  %s%s\n",
					label,
					hoursBar(scheduled),
					formatStats(fmt.Sprintf("%d events, %s", len(positioned), formatDuration(scheduled))),
					laneNote,
				)
			}

			printSkipped(skipped)
			return nil
		},
	}

	return cmd
}

// hoursBar draws one block per scheduled hour, capped at 16.
func hoursBar(d time.Duration) string {
	blocks := int(d.Hours())
	if blocks > 16 {
		blocks = 16
	}
	if blocks < 1 {
		blocks = 1
	}
	return strings.Repeat("█", blocks) + strings.Repeat("░", 16-blocks)
}

func formatDuration(d time.Duration) string {
	minutes := int(d.Minutes())
	hours := minutes / 60
	mins := minutes % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%dm", mins)
	case mins == 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dh%dm", hours, mins)
	}
}
