package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/lienzo/internal/dateutil"
	"github.com/javiermolinar/lienzo/internal/ics"
)

func (a *App) importCmd() *cobra.Command {
	var (
		fromDate string
		toDate   string
	)

	cmd := &cobra.Command{
		Use:   "import [feed...]",
		Short: "Import events from ICS feeds",
		Long: `Import events from one or more ICS feeds (URLs or file paths)
into the local store. Without arguments, the feeds configured under
[calendar] are imported.

Recurring events are expanded into concrete occurrences within the
import window. Re-importing a feed updates events in place rather than
duplicating them.`,
		Example: `  lienzo import
  lienzo import https://example.com/team.ics
  lienzo import ./holidays.ics --from 2025-01-01 --to 2025-12-31`,
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			feeds := args
			if len(feeds) == 0 {
				feeds = a.config.Calendar.Feeds
			}
			if len(feeds) == 0 {
				return fmt.Errorf("no feeds given and none configured")
			}

			rangeStart, rangeEnd, err := importWindow(fromDate, toDate)
			if err != nil {
				return err
			}

			ctx := context.Background()
			fetcher := ics.NewFetcher()
			total := 0

			for _, feed := range feeds {
				count, malformed, err := importFeed(ctx, a, fetcher, feed, rangeStart, rangeEnd)
				if err != nil {
					fmt.Println(formatWarn(fmt.Sprintf("  ! %s: %v", feed, err)))
					continue
				}
				total += count
				line := fmt.Sprintf("  %s: %d events", feed, count)
				if malformed > 0 {
					line += formatWarn(fmt.Sprintf(" (%d malformed entries skipped)", malformed))
				}
				fmt.Println(line)
			}

			fmt.Printf("Imported %s\n", formatStats(fmt.Sprintf("%d events", total)))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromDate, "from", "", "Start of the import window (YYYY-MM-DD, default 30 days ago)")
	cmd.Flags().StringVar(&toDate, "to", "", "End of the import window (YYYY-MM-DD, default one year ahead)")

	return cmd
}

func importFeed(ctx context.Context, a *App, fetcher *ics.Fetcher, feed string, rangeStart, rangeEnd time.Time) (int, int, error) {
	body, err := fetcher.Fetch(ctx, feed)
	if err != nil {
		return 0, 0, err
	}

	entries, malformed, err := ics.Parse(body)
	if err != nil {
		return 0, malformed, err
	}

	raws := ics.Expand(entries, rangeStart, rangeEnd, feed)
	if len(raws) == 0 {
		return 0, malformed, nil
	}

	if err := a.repo.CreateEvents(ctx, raws); err != nil {
		return 0, malformed, fmt.Errorf("storing events: %w", err)
	}
	return len(raws), malformed, nil
}

// importWindow resolves the expansion range: [today-30d, today+1y) by default.
func importWindow(fromDate, toDate string) (time.Time, time.Time, error) {
	today := dateutil.TruncateToDay(time.Now())

	start := today.AddDate(0, 0, -30)
	if fromDate != "" {
		parsed, err := dateutil.ParseDate(fromDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--from: %w", err)
		}
		start = parsed
	}

	end := today.AddDate(1, 0, 0)
	if toDate != "" {
		parsed, err := dateutil.ParseDate(toDate)
		if err != nil {
			return time.Time{}, time.Time{}, fmt.Errorf("--to: %w", err)
		}
		end = parsed.AddDate(0, 0, 1) // inclusive end date
	}

	if !end.After(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("--to must be after --from")
	}
	return start, end, nil
}
