// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/javiermolinar/lienzo/internal/dateutil"
	"github.com/javiermolinar/lienzo/internal/event"
)

// SQLite implements event.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// CreateEvent adds a new event to the repository and assigns its ID.
// The start timestamp must be parsable so the event can be bucketed by day.
func (s *SQLite) CreateEvent(ctx context.Context, raw *event.Raw) error {
	day, err := startDay(raw)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO events (uid, title, location, starts_at, ends_at, day, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.ExecContext(ctx, query,
		nullable(raw.UID),
		raw.Title,
		raw.Location,
		raw.Start,
		raw.End,
		day,
		sourceOrManual(raw.Source),
		time.Now().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	raw.ID = strconv.FormatInt(id, 10)

	return nil
}

// CreateEvents adds multiple events in a single transaction. Records with
// a UID upsert on it, so re-importing a feed replaces rather than duplicates.
func (s *SQLite) CreateEvents(ctx context.Context, raws []*event.Raw) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO events (uid, title, location, starts_at, ends_at, day, source, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(uid) DO UPDATE SET
			title = excluded.title,
			location = excluded.location,
			starts_at = excluded.starts_at,
			ends_at = excluded.ends_at,
			day = excluded.day,
			source = excluded.source
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().Format(time.RFC3339)
	for _, raw := range raws {
		day, err := startDay(raw)
		if err != nil {
			return err
		}

		result, err := stmt.ExecContext(ctx,
			nullable(raw.UID),
			raw.Title,
			raw.Location,
			raw.Start,
			raw.End,
			day,
			sourceOrManual(raw.Source),
			now,
		)
		if err != nil {
			return fmt.Errorf("inserting event %q: %w", raw.Title, err)
		}

		if id, err := result.LastInsertId(); err == nil {
			raw.ID = strconv.FormatInt(id, 10)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetEvent retrieves an event by ID.
func (s *SQLite) GetEvent(ctx context.Context, id string) (*event.Raw, error) {
	rowID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, uid, title, location, starts_at, ends_at, source
		FROM events
		WHERE id = ?
	`

	raw, err := scanEvent(s.db.QueryRowContext(ctx, query, rowID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, event.ErrEventNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying event: %w", err)
	}
	return raw, nil
}

// DeleteEvent removes an event by ID.
func (s *SQLite) DeleteEvent(ctx context.Context, id string) error {
	rowID, err := parseID(id)
	if err != nil {
		return err
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, rowID)
	if err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return event.ErrEventNotFound
	}
	return nil
}

// ListEventsByDateRange returns all events whose start day falls within
// the date range (inclusive), ordered by day and start.
func (s *SQLite) ListEventsByDateRange(ctx context.Context, start, end time.Time) ([]*event.Raw, error) {
	query := `
		SELECT id, uid, title, location, starts_at, ends_at, source
		FROM events
		WHERE day >= ? AND day <= ?
		ORDER BY day, starts_at, id
	`

	rows, err := s.db.QueryContext(ctx, query,
		start.Format("2006-01-02"), end.Format("2006-01-02"))
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var raws []*event.Raw
	for rows.Next() {
		raw, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		raws = append(raws, raw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}

	return raws, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// scanner covers *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(sc scanner) (*event.Raw, error) {
	var (
		raw      event.Raw
		id       int64
		uid      sql.NullString
		location sql.NullString
		endsAt   sql.NullString
		source   sql.NullString
	)

	if err := sc.Scan(&id, &uid, &raw.Title, &location, &raw.Start, &endsAt, &source); err != nil {
		return nil, err
	}

	raw.ID = strconv.FormatInt(id, 10)
	raw.UID = uid.String
	raw.Location = location.String
	raw.End = endsAt.String
	raw.Source = source.String

	return &raw, nil
}

func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid event id %q: %w", id, event.ErrEventNotFound)
	}
	return n, nil
}

// startDay derives the day bucket column from the raw start timestamp.
func startDay(raw *event.Raw) (string, error) {
	start, err := event.ParseTimestamp(raw.Start)
	if err != nil {
		return "", fmt.Errorf("event %q: %w", raw.Title, err)
	}
	return dateutil.DayKey(start), nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func sourceOrManual(s string) string {
	if s == "" {
		return "manual"
	}
	return s
}
