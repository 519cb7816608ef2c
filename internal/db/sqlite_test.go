package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/javiermolinar/lienzo/internal/event"
)

func testRepo(t *testing.T) *SQLite {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("creating test repository: %v", err)
	}
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestCreateAndGetEvent(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	raw := &event.Raw{
		Title:    "Standup",
		Location: "room 2",
		Start:    "2025-03-14T09:00",
		End:      "2025-03-14T09:15",
	}
	if err := repo.CreateEvent(ctx, raw); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if raw.ID == "" {
		t.Fatal("create should assign an ID")
	}

	got, err := repo.GetEvent(ctx, raw.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Title != "Standup" || got.Location != "room 2" {
		t.Errorf("got %q @ %q", got.Title, got.Location)
	}
	if got.Start != raw.Start || got.End != raw.End {
		t.Errorf("timestamps round-tripped as %s / %s", got.Start, got.End)
	}
	if got.Source != "manual" {
		t.Errorf("source = %q, want manual default", got.Source)
	}
}

func TestCreateEventRejectsUnparsableStart(t *testing.T) {
	repo := testRepo(t)

	raw := &event.Raw{Title: "Ghost", Start: "sometime"}
	err := repo.CreateEvent(context.Background(), raw)
	if !errors.Is(err, event.ErrInvalidTimeFormat) {
		t.Errorf("error = %v, want ErrInvalidTimeFormat", err)
	}
}

func TestGetEventNotFound(t *testing.T) {
	repo := testRepo(t)

	if _, err := repo.GetEvent(context.Background(), "999"); !errors.Is(err, event.ErrEventNotFound) {
		t.Errorf("error = %v, want ErrEventNotFound", err)
	}
	if _, err := repo.GetEvent(context.Background(), "abc"); !errors.Is(err, event.ErrEventNotFound) {
		t.Errorf("non-numeric id: error = %v, want ErrEventNotFound", err)
	}
}

func TestDeleteEvent(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	raw := &event.Raw{Title: "Doomed", Start: "2025-03-14T10:00"}
	if err := repo.CreateEvent(ctx, raw); err != nil {
		t.Fatal(err)
	}

	if err := repo.DeleteEvent(ctx, raw.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := repo.GetEvent(ctx, raw.ID); !errors.Is(err, event.ErrEventNotFound) {
		t.Error("event still present after delete")
	}
	if err := repo.DeleteEvent(ctx, raw.ID); !errors.Is(err, event.ErrEventNotFound) {
		t.Errorf("second delete: error = %v, want ErrEventNotFound", err)
	}
}

func TestCreateEventsUpsertsByUID(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	first := []*event.Raw{
		{UID: "feed-1", Title: "Planning", Start: "2025-03-14T10:00", Source: "work.ics"},
		{UID: "feed-2", Title: "Review", Start: "2025-03-14T14:00", Source: "work.ics"},
	}
	if err := repo.CreateEvents(ctx, first); err != nil {
		t.Fatalf("first import failed: %v", err)
	}

	// Re-import with one event moved; it must replace, not duplicate.
	second := []*event.Raw{
		{UID: "feed-1", Title: "Planning (moved)", Start: "2025-03-14T11:00", Source: "work.ics"},
	}
	if err := repo.CreateEvents(ctx, second); err != nil {
		t.Fatalf("second import failed: %v", err)
	}

	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
	raws, err := repo.ListEventsByDateRange(ctx, day, day)
	if err != nil {
		t.Fatal(err)
	}
	if len(raws) != 2 {
		t.Fatalf("got %d events, want 2 after upsert", len(raws))
	}

	var moved *event.Raw
	for _, r := range raws {
		if r.UID == "feed-1" {
			moved = r
		}
	}
	if moved == nil {
		t.Fatal("upserted event missing")
	}
	if moved.Title != "Planning (moved)" || moved.Start != "2025-03-14T11:00" {
		t.Errorf("upsert kept stale data: %q at %s", moved.Title, moved.Start)
	}
}

func TestCreateEventsEmptyUIDsDoNotCollide(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	raws := []*event.Raw{
		{Title: "One", Start: "2025-03-14T09:00"},
		{Title: "Two", Start: "2025-03-14T10:00"},
	}
	if err := repo.CreateEvents(ctx, raws); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
	got, err := repo.ListEventsByDateRange(ctx, day, day)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Errorf("got %d events, want 2: empty UIDs must not upsert each other", len(got))
	}
}

func TestListEventsByDateRange(t *testing.T) {
	repo := testRepo(t)
	ctx := context.Background()

	seed := []*event.Raw{
		{Title: "before", Start: "2025-03-13T09:00"},
		{Title: "friday late", Start: "2025-03-14T16:00"},
		{Title: "friday early", Start: "2025-03-14T08:00"},
		{Title: "saturday", Start: "2025-03-15T09:00"},
		{Title: "after", Start: "2025-03-16T09:00"},
	}
	for _, raw := range seed {
		if err := repo.CreateEvent(ctx, raw); err != nil {
			t.Fatal(err)
		}
	}

	start := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, 3, 15, 0, 0, 0, 0, time.Local)
	raws, err := repo.ListEventsByDateRange(ctx, start, end)
	if err != nil {
		t.Fatal(err)
	}

	want := []string{"friday early", "friday late", "saturday"}
	if len(raws) != len(want) {
		t.Fatalf("got %d events, want %d", len(raws), len(want))
	}
	for i, title := range want {
		if raws[i].Title != title {
			t.Errorf("position %d: got %q, want %q", i, raws[i].Title, title)
		}
	}
}

func TestListEventsByDateRangeEmpty(t *testing.T) {
	repo := testRepo(t)

	day := time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)
	raws, err := repo.ListEventsByDateRange(context.Background(), day, day)
	if err != nil {
		t.Fatal(err)
	}
	if len(raws) != 0 {
		t.Errorf("got %d events from empty database", len(raws))
	}
}
