// Package layout computes non-overlapping visual arrangements for the
// events of a single calendar day.
//
// Given a day's events it assigns each one a vertical position from its
// time of day, a height from its duration, and a horizontal column so
// that temporally overlapping events never collide while isolated events
// keep the full width. The package is a pure function of its input: no
// state, no I/O, safe to call concurrently for many days at once.
package layout

import (
	"errors"
	"fmt"
	"time"

	"github.com/javiermolinar/lienzo/internal/dateutil"
	"github.com/javiermolinar/lienzo/internal/event"
)

// Config holds the tunable knobs of the engine. Everything else
// (tie-break order, clamp boundary) is fixed.
type Config struct {
	// PixelsPerHour scales clock time to vertical pixels.
	PixelsPerHour int
	// MinimumHeightPx is the floor for rendered event height, so very
	// short events stay clickable.
	MinimumHeightPx int
	// DefaultDurationMinutes is applied upstream to events without a
	// usable end; kept here so callers configure the pipeline in one place.
	DefaultDurationMinutes int
}

// DefaultConfig returns the engine defaults.
func DefaultConfig() Config {
	return Config{
		PixelsPerHour:          64,
		MinimumHeightPx:        32,
		DefaultDurationMinutes: 60,
	}
}

// Validate checks the config for usable values.
func (c Config) Validate() error {
	if c.PixelsPerHour <= 0 {
		return errors.New("pixels_per_hour must be positive")
	}
	if c.MinimumHeightPx < 0 {
		return errors.New("minimum_height_px cannot be negative")
	}
	if c.DefaultDurationMinutes <= 0 {
		return errors.New("default_duration_minutes must be positive")
	}
	return nil
}

// DefaultDuration returns the configured default duration.
func (c Config) DefaultDuration() time.Duration {
	return time.Duration(c.DefaultDurationMinutes) * time.Minute
}

// Window is the midnight-to-midnight boundary [Start, End) of one
// rendering day. Event times are converted to pixel offsets against
// Start, and ends that cross into the next day are clamped to End.
type Window struct {
	Start time.Time
	End   time.Time
}

// DayWindow returns the window for the calendar day containing date.
func DayWindow(date time.Time) Window {
	start := dateutil.TruncateToDay(date)
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}

// WindowForKey returns the window for a "YYYY-MM-DD" day key.
func WindowForKey(key string) (Window, error) {
	date, err := dateutil.ParseDate(key)
	if err != nil {
		return Window{}, fmt.Errorf("day key %q: %w", key, err)
	}
	return DayWindow(date), nil
}

// Positioned is one laid-out event. Instances are ephemeral: recomputed
// on every call, never persisted.
type Positioned struct {
	Event *event.Event

	// Top and Height are pixel offsets relative to the window start.
	Top    float64
	Height float64

	// Column is the zero-based lane within the event's overlap cluster;
	// TotalColumns is the lane count shared by the whole cluster, so a
	// renderer sizes each event's width as 1/TotalColumns.
	Column       int
	TotalColumns int

	// EffectiveEnd is the end used for layout: the raw end, or the
	// window end when the event runs past its owning day.
	EffectiveEnd time.Time
}

// cluster tracks the lane count of one connected overlap group. Members
// share a pointer so a later event that widens the group widens every
// member's TotalColumns at once.
type cluster struct {
	columns int
	members []*Positioned
}

// Day lays out one day's events against the window.
//
// Events are processed in ascending start order, with input order
// breaking ties, so identical input always yields identical output.
// Malformed events are expected to have been dropped upstream by
// event.Normalize; an empty input yields an empty layout.
func Day(events []*event.Event, w Window, cfg Config) []Positioned {
	if len(events) == 0 {
		return nil
	}

	sorted := make([]*event.Event, len(events))
	copy(sorted, events)
	event.SortByStart(sorted)

	placed := make([]*Positioned, 0, len(sorted))
	clusters := make(map[*Positioned]*cluster, len(sorted))

	for _, e := range sorted {
		p := &Positioned{
			Event:        e,
			EffectiveEnd: clampEnd(e, w),
		}

		overlapping := findOverlapping(placed, p)
		group := mergeClusters(clusters, overlapping)
		p.Column = smallestFreeColumn(overlapping)

		if p.Column+1 > group.columns {
			group.columns = p.Column + 1
		}
		group.members = append(group.members, p)
		clusters[p] = group

		placed = append(placed, p)
	}

	out := make([]Positioned, len(placed))
	for i, p := range placed {
		p.TotalColumns = clusters[p].columns
		position(p, w, cfg)
		out[i] = *p
	}
	return out
}

// clampEnd bounds an event's layout end to its owning day. An end on a
// different calendar day than the start, or an end at or before the
// start, becomes the window end.
func clampEnd(e *event.Event, w Window) time.Time {
	if dateutil.DayKey(e.End) != dateutil.DayKey(e.Start) || !e.End.After(e.Start) {
		return w.End
	}
	return e.End
}

// overlaps is the strict half-open interval test: [a.start, a.end) and
// [b.start, b.end) collide only when a.start < b.end && b.start < a.end.
// Back-to-back events therefore do not overlap.
func overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// findOverlapping returns the already-placed events whose layout
// intervals overlap p's. Linear scan per event is O(n²) per day, which
// is fine at realistic per-day volumes.
func findOverlapping(placed []*Positioned, p *Positioned) []*Positioned {
	var out []*Positioned
	for _, q := range placed {
		if overlaps(p.Event.Start, p.EffectiveEnd, q.Event.Start, q.EffectiveEnd) {
			out = append(out, q)
		}
	}
	return out
}

// smallestFreeColumn picks the lowest column index unused by the
// overlapping set. Columns freed earlier in a grown cluster are not
// reclaimed; determinism is worth more than packing density here.
func smallestFreeColumn(overlapping []*Positioned) int {
	used := make(map[int]bool, len(overlapping))
	for _, q := range overlapping {
		used[q.Column] = true
	}
	col := 0
	for used[col] {
		col++
	}
	return col
}

// mergeClusters unifies the clusters of every overlapping neighbor into
// one. An event bridging two previously separate groups connects them,
// and the merged group keeps the widest lane count seen.
func mergeClusters(clusters map[*Positioned]*cluster, overlapping []*Positioned) *cluster {
	merged := &cluster{columns: 1}
	seen := make(map[*cluster]bool)

	for _, q := range overlapping {
		g := clusters[q]
		if seen[g] {
			continue
		}
		seen[g] = true
		if g.columns > merged.columns {
			merged.columns = g.columns
		}
		merged.members = append(merged.members, g.members...)
	}

	for _, m := range merged.members {
		clusters[m] = merged
	}
	return merged
}

// position fills in the pixel fields. Width and left offset stay with
// the renderer: they follow from Column and TotalColumns without the
// engine knowing about presentation units.
func position(p *Positioned, w Window, cfg Config) {
	pph := float64(cfg.PixelsPerHour)

	p.Top = p.Event.Start.Sub(w.Start).Minutes() / 60 * pph

	height := p.EffectiveEnd.Sub(p.Event.Start).Minutes() / 60 * pph
	if floor := float64(cfg.MinimumHeightPx); height < floor {
		height = floor
	}
	p.Height = height
}

// MaxColumns returns the widest lane count in a day's layout, a cheap
// proxy for how congested the day looks.
func MaxColumns(positioned []Positioned) int {
	max := 0
	for _, p := range positioned {
		if p.TotalColumns > max {
			max = p.TotalColumns
		}
	}
	return max
}
