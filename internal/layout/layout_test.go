package layout

import (
	"testing"
	"time"

	"github.com/javiermolinar/lienzo/internal/event"
)

// day is the fixed date all layout tests run against.
var day = time.Date(2025, 3, 14, 0, 0, 0, 0, time.Local)

// evt builds a normalized event on the test day.
func evt(id string, startHour, startMin, endHour, endMin int) *event.Event {
	return &event.Event{
		Raw:   event.Raw{ID: id, Title: id},
		Start: time.Date(2025, 3, 14, startHour, startMin, 0, 0, time.Local),
		End:   time.Date(2025, 3, 14, endHour, endMin, 0, 0, time.Local),
	}
}

func findByID(t *testing.T, positioned []Positioned, id string) Positioned {
	t.Helper()
	for _, p := range positioned {
		if p.Event.Raw.ID == id {
			return p
		}
	}
	t.Fatalf("event %q not in layout", id)
	return Positioned{}
}

func TestDayIsolatedEvent(t *testing.T) {
	out := Day([]*event.Event{evt("a", 9, 0, 10, 30)}, DayWindow(day), DefaultConfig())

	if len(out) != 1 {
		t.Fatalf("got %d positioned events, want 1", len(out))
	}
	p := out[0]
	if p.Column != 0 || p.TotalColumns != 1 {
		t.Errorf("isolated event got lane %d/%d, want 0/1", p.Column, p.TotalColumns)
	}
	if p.Top != 576 { // 9h * 64px
		t.Errorf("Top = %v, want 576", p.Top)
	}
	if p.Height != 96 { // 1.5h * 64px
		t.Errorf("Height = %v, want 96", p.Height)
	}
}

func TestDayThreeWayOverlap(t *testing.T) {
	// A, B, C pairwise overlap and must occupy three distinct columns.
	out := Day([]*event.Event{
		evt("a", 9, 0, 10, 0),
		evt("b", 9, 30, 10, 30),
		evt("c", 9, 45, 10, 15),
	}, DayWindow(day), DefaultConfig())

	wantColumns := map[string]int{"a": 0, "b": 1, "c": 2}
	for id, want := range wantColumns {
		p := findByID(t, out, id)
		if p.Column != want {
			t.Errorf("event %s: column = %d, want %d", id, p.Column, want)
		}
		if p.TotalColumns != 3 {
			t.Errorf("event %s: totalColumns = %d, want 3", id, p.TotalColumns)
		}
	}
}

func TestDaySequentialEventsFullWidth(t *testing.T) {
	// Back-to-back events do not overlap under the half-open test.
	out := Day([]*event.Event{
		evt("a", 9, 0, 10, 0),
		evt("b", 10, 0, 11, 0),
	}, DayWindow(day), DefaultConfig())

	for _, id := range []string{"a", "b"} {
		p := findByID(t, out, id)
		if p.Column != 0 || p.TotalColumns != 1 {
			t.Errorf("event %s: lane %d/%d, want 0/1", id, p.Column, p.TotalColumns)
		}
	}
}

func TestDayChainedClusterSharesTotal(t *testing.T) {
	// A overlaps B, B overlaps C, A and C do not touch: one connected
	// cluster, one shared total. C may reuse A's freed column.
	out := Day([]*event.Event{
		evt("a", 9, 0, 10, 0),
		evt("b", 9, 30, 11, 0),
		evt("c", 10, 30, 12, 0),
	}, DayWindow(day), DefaultConfig())

	for _, id := range []string{"a", "b", "c"} {
		if got := findByID(t, out, id).TotalColumns; got != 2 {
			t.Errorf("event %s: totalColumns = %d, want 2", id, got)
		}
	}

	if got := findByID(t, out, "c").Column; got != 0 {
		t.Errorf("event c: column = %d, want freed column 0", got)
	}
}

func TestDayBridgedClustersMerge(t *testing.T) {
	// Two separate pairs joined into one cluster by a spanning event.
	out := Day([]*event.Event{
		evt("a1", 9, 0, 10, 0),
		evt("a2", 9, 0, 10, 0),
		evt("b1", 11, 0, 12, 0),
		evt("b2", 11, 0, 12, 0),
		evt("bridge", 9, 30, 11, 30),
	}, DayWindow(day), DefaultConfig())

	bridge := findByID(t, out, "bridge")
	if bridge.Column != 2 {
		t.Errorf("bridge: column = %d, want 2", bridge.Column)
	}
	for _, id := range []string{"a1", "a2", "b1", "b2", "bridge"} {
		if got := findByID(t, out, id).TotalColumns; got != 3 {
			t.Errorf("event %s: totalColumns = %d, want 3", id, got)
		}
	}
}

func TestDayNoCollisionInvariant(t *testing.T) {
	events := []*event.Event{
		evt("a", 8, 0, 9, 30),
		evt("b", 8, 15, 8, 45),
		evt("c", 8, 30, 10, 0),
		evt("d", 9, 0, 9, 15),
		evt("e", 9, 45, 11, 0),
		evt("f", 10, 30, 12, 0),
		evt("g", 13, 0, 14, 0),
	}
	out := Day(events, DayWindow(day), DefaultConfig())

	for i, a := range out {
		for _, b := range out[i+1:] {
			if a.Column != b.Column {
				continue
			}
			if overlaps(a.Event.Start, a.EffectiveEnd, b.Event.Start, b.EffectiveEnd) {
				t.Errorf("events %s and %s share column %d but overlap",
					a.Event.Raw.ID, b.Event.Raw.ID, a.Column)
			}
		}
	}

	for _, p := range out {
		if p.TotalColumns < p.Column+1 {
			t.Errorf("event %s: totalColumns %d < column %d + 1",
				p.Event.Raw.ID, p.TotalColumns, p.Column)
		}
	}
}

func TestDayDeterminism(t *testing.T) {
	events := []*event.Event{
		evt("a", 9, 0, 10, 0),
		evt("b", 9, 0, 10, 0), // same start: input order is the tie-break
		evt("c", 9, 30, 11, 0),
	}

	first := Day(events, DayWindow(day), DefaultConfig())
	second := Day(events, DayWindow(day), DefaultConfig())

	if len(first) != len(second) {
		t.Fatalf("layout lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("position %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}

	// Equal starts keep input order: a before b, so a gets column 0.
	if findByID(t, first, "a").Column != 0 || findByID(t, first, "b").Column != 1 {
		t.Errorf("tie-break broke input order: a=%d b=%d",
			findByID(t, first, "a").Column, findByID(t, first, "b").Column)
	}
}

func TestDayMinimumHeight(t *testing.T) {
	out := Day([]*event.Event{evt("short", 9, 0, 9, 5)}, DayWindow(day), DefaultConfig())

	if got := out[0].Height; got != 32 {
		t.Errorf("5-minute event height = %v, want minimum 32", got)
	}
}

func TestDayMultiDayClamp(t *testing.T) {
	crossing := &event.Event{
		Raw:   event.Raw{ID: "late", Title: "late"},
		Start: time.Date(2025, 3, 14, 22, 0, 0, 0, time.Local),
		End:   time.Date(2025, 3, 15, 2, 0, 0, 0, time.Local),
	}
	w := DayWindow(day)
	out := Day([]*event.Event{crossing}, w, DefaultConfig())

	p := out[0]
	if !p.EffectiveEnd.Equal(w.End) {
		t.Errorf("EffectiveEnd = %v, want window end %v", p.EffectiveEnd, w.End)
	}
	if p.Height != 128 { // 22:00 to midnight is 2h, not 4h
		t.Errorf("Height = %v, want 128", p.Height)
	}
}

func TestDayDegenerateEndClamped(t *testing.T) {
	degenerate := &event.Event{
		Raw:   event.Raw{ID: "zero"},
		Start: time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local),
		End:   time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local),
	}
	w := DayWindow(day)
	out := Day([]*event.Event{degenerate}, w, DefaultConfig())

	if !out[0].EffectiveEnd.Equal(w.End) {
		t.Errorf("zero-length event EffectiveEnd = %v, want window end", out[0].EffectiveEnd)
	}
}

func TestDayEmptyInput(t *testing.T) {
	if out := Day(nil, DayWindow(day), DefaultConfig()); len(out) != 0 {
		t.Errorf("empty input produced %d events", len(out))
	}
}

func TestDayDoesNotReorderInput(t *testing.T) {
	events := []*event.Event{
		evt("late", 15, 0, 16, 0),
		evt("early", 9, 0, 10, 0),
	}
	Day(events, DayWindow(day), DefaultConfig())

	if events[0].Raw.ID != "late" || events[1].Raw.ID != "early" {
		t.Error("Day mutated the caller's slice order")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "defaults", cfg: DefaultConfig(), wantErr: false},
		{name: "zero pixels per hour", cfg: Config{PixelsPerHour: 0, MinimumHeightPx: 32, DefaultDurationMinutes: 60}, wantErr: true},
		{name: "negative minimum height", cfg: Config{PixelsPerHour: 64, MinimumHeightPx: -1, DefaultDurationMinutes: 60}, wantErr: true},
		{name: "zero default duration", cfg: Config{PixelsPerHour: 64, MinimumHeightPx: 32, DefaultDurationMinutes: 0}, wantErr: true},
		{name: "zero minimum height ok", cfg: Config{PixelsPerHour: 64, MinimumHeightPx: 0, DefaultDurationMinutes: 60}, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDayWindow(t *testing.T) {
	w := DayWindow(time.Date(2025, 3, 14, 17, 45, 0, 0, time.Local))

	if !w.Start.Equal(day) {
		t.Errorf("window start = %v, want midnight %v", w.Start, day)
	}
	if !w.End.Equal(day.AddDate(0, 0, 1)) {
		t.Errorf("window end = %v, want next midnight", w.End)
	}
}

func TestWindowForKey(t *testing.T) {
	w, err := WindowForKey("2025-03-14")
	if err != nil {
		t.Fatalf("WindowForKey returned error: %v", err)
	}
	if w.Start.Format("2006-01-02") != "2025-03-14" {
		t.Errorf("window start = %v", w.Start)
	}

	if _, err := WindowForKey("not-a-date"); err == nil {
		t.Error("expected error for malformed day key")
	}
}

func TestMaxColumns(t *testing.T) {
	out := Day([]*event.Event{
		evt("a", 9, 0, 10, 0),
		evt("b", 9, 30, 10, 30),
		evt("c", 14, 0, 15, 0),
	}, DayWindow(day), DefaultConfig())

	if got := MaxColumns(out); got != 2 {
		t.Errorf("MaxColumns = %d, want 2", got)
	}
	if got := MaxColumns(nil); got != 0 {
		t.Errorf("MaxColumns(nil) = %d, want 0", got)
	}
}
