package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS events (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			uid        TEXT UNIQUE,
			title      TEXT NOT NULL,
			location   TEXT,
			starts_at  TEXT NOT NULL,
			ends_at    TEXT,
			day        DATE NOT NULL,
			source     TEXT DEFAULT 'manual',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_events_day ON events(day);
		CREATE INDEX IF NOT EXISTS idx_events_source ON events(source);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating events table: %w", err)
	}

	return nil
}
