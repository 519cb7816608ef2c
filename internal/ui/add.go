package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/lienzo/internal/event"
)

func (a *App) addCmd() *cobra.Command {
	var (
		start    string
		end      string
		location string
	)

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add an event to the calendar",
		Long: `Add a new event to the local store.

The start timestamp is required and must be a date-time like
"2025-03-14 09:30" or RFC3339. The end is optional; without one the
event gets the configured default duration when laid out.`,
		Example: `  lienzo add "Standup" --start "2025-03-14 09:30" --end "2025-03-14 09:45"
  lienzo add "Conference" --start 2025-03-14`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}

			title := args[0]
			if title == "" {
				return event.ErrEmptyTitle
			}

			// Reject unparsable starts here; the store's day bucketing
			// needs a real instant.
			if _, err := event.ParseTimestamp(start); err != nil {
				return fmt.Errorf("start: %w", err)
			}
			if end != "" {
				if _, err := event.ParseTimestamp(end); err != nil {
					return fmt.Errorf("end: %w", err)
				}
			}

			raw := &event.Raw{
				Title:    title,
				Location: location,
				Start:    start,
				End:      end,
			}
			if err := a.repo.CreateEvent(context.Background(), raw); err != nil {
				return fmt.Errorf("creating event: %w", err)
			}

			fmt.Printf("Added event #%s: %s\n", raw.ID, title)
			if end == "" {
				fmt.Println(formatMuted(fmt.Sprintf("  (no end given; layout will use the default %d minutes)",
					a.config.Layout.DefaultDurationMinutes)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&start, "start", "", "Start timestamp (required)")
	cmd.Flags().StringVar(&end, "end", "", "End timestamp (optional)")
	cmd.Flags().StringVar(&location, "location", "", "Event location (optional)")
	_ = cmd.MarkFlagRequired("start")

	return cmd
}

func (a *App) deleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an event by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureRepo(); err != nil {
				return err
			}
			if err := a.repo.DeleteEvent(context.Background(), args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted event #%s\n", args[0])
			return nil
		},
	}
}
