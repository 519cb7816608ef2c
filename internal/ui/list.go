package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/lienzo/internal/dateutil"
	"github.com/javiermolinar/lienzo/internal/event"
)

func (a *App) listCmd() *cobra.Command {
	var (
		startDate string
		endDate   string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List events in a date range",
		Long: `List all events whose start day falls within a date range.

If no dates are specified, lists today's events.
If only --start is specified, lists events for that single day.
If both --start and --end are specified, lists events in that range (inclusive).`,
		Example: `  lienzo list
  lienzo list --start=2025-01-15
  lienzo list --start=2025-01-15 --end=2025-01-20`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			dateRange, err := dateutil.NewDateRange(startDate, endDate)
			if err != nil {
				return err
			}

			raws, err := a.repo.ListEventsByDateRange(context.Background(), dateRange.Start, dateRange.End)
			if err != nil {
				return fmt.Errorf("listing events: %w", err)
			}

			if len(raws) == 0 {
				fmt.Println("No events found in the specified date range.")
				return nil
			}

			events, skipped := event.Normalize(values(raws), a.config.LayoutConfig().DefaultDuration())
			buckets := event.BucketByDay(events)

			for _, key := range event.DayKeys(buckets) {
				fmt.Printf("%s\n", formatHeader(fmt.Sprintf("=== %s ===", key)))
				for _, e := range buckets[key] {
					line := fmt.Sprintf("  #%s  %s-%s  %s",
						e.Raw.ID,
						e.Start.Format("15:04"),
						e.End.Format("15:04"),
						e.Raw.Title,
					)
					if e.Raw.Location != "" {
						line += formatMuted(" @ " + e.Raw.Location)
					}
					if e.Raw.Source != "" && e.Raw.Source != "manual" {
						line += formatMuted(fmt.Sprintf(" [%s]", e.Raw.Source))
					}
					fmt.Println(line)
				}
			}

			printSkipped(skipped)
			return nil
		},
	}

	cmd.Flags().StringVar(&startDate, "start", "", "Start date (YYYY-MM-DD, defaults to today)")
	cmd.Flags().StringVar(&endDate, "end", "", "End date (YYYY-MM-DD, defaults to start date)")

	return cmd
}
