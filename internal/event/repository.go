package event

import (
	"context"
	"time"
)

// Repository defines the storage interface for events.
type Repository interface {
	// CreateEvent adds a new event to the repository and assigns its ID.
	CreateEvent(ctx context.Context, raw *Raw) error

	// CreateEvents adds multiple events in a single transaction. Records
	// carrying a UID replace any existing row with the same UID, so
	// re-importing a feed does not duplicate events.
	CreateEvents(ctx context.Context, raws []*Raw) error

	// GetEvent retrieves an event by ID. Returns ErrEventNotFound if no
	// such event exists.
	GetEvent(ctx context.Context, id string) (*Raw, error)

	// DeleteEvent removes an event by ID.
	DeleteEvent(ctx context.Context, id string) error

	// ListEventsByDateRange returns all events whose start day falls
	// within the date range (inclusive), ordered by day and start.
	ListEventsByDateRange(ctx context.Context, start, end time.Time) ([]*Raw, error)

	// Close releases any resources held by the repository.
	Close() error
}
