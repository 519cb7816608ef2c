// Package event defines the core domain types for lienzo.
package event

import (
	"errors"
	"time"
)

// Validation errors.
var (
	ErrEmptyTitle        = errors.New("title cannot be empty")
	ErrMissingStart      = errors.New("event has no start timestamp")
	ErrUnparsableStart   = errors.New("start timestamp could not be parsed")
	ErrInvalidTimeFormat = errors.New("timestamp must be a date or date-time")
)

// Domain errors.
var (
	ErrEventNotFound = errors.New("event not found")
)

// DefaultDuration is applied when an event has no usable end timestamp.
const DefaultDuration = 60 * time.Minute

// Raw is an event record as produced by the store or an ICS feed:
// an opaque identifier, free-form timestamp strings, and metadata that
// the layout pipeline passes through unchanged.
type Raw struct {
	ID       string
	UID      string // feed identity for imported events, empty otherwise
	Title    string
	Location string
	Start    string
	End      string
	Source   string // "manual" or the feed it was imported from
}

// Event is a normalized event: parsed instants with a guaranteed
// strictly positive duration. The original record rides along untouched.
type Event struct {
	Raw   Raw
	Start time.Time
	End   time.Time
}

// Duration returns the normalized event duration.
func (e *Event) Duration() time.Duration {
	return e.End.Sub(e.Start)
}

// Skipped reports an event excluded during normalization.
type Skipped struct {
	ID     string
	Reason error
}

// timestampLayouts are the accepted timestamp forms, tried in order.
// Date-only values normalize to local midnight.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseTimestamp parses a raw timestamp string against the accepted layouts.
func ParseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, ErrInvalidTimeFormat
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrInvalidTimeFormat
}

// Normalize converts raw records into layout-ready events.
//
// Events without a parsable start are excluded and reported in the skip
// list; layout proceeds for everything else. A missing, unparsable, or
// non-positive end is replaced by start + defaultDuration, so every
// returned event occupies strictly positive time. The caller's records
// are never mutated.
func Normalize(raws []Raw, defaultDuration time.Duration) ([]*Event, []Skipped) {
	if defaultDuration <= 0 {
		defaultDuration = DefaultDuration
	}

	events := make([]*Event, 0, len(raws))
	var skipped []Skipped

	for _, r := range raws {
		if r.Start == "" {
			skipped = append(skipped, Skipped{ID: r.ID, Reason: ErrMissingStart})
			continue
		}

		start, err := ParseTimestamp(r.Start)
		if err != nil {
			skipped = append(skipped, Skipped{ID: r.ID, Reason: ErrUnparsableStart})
			continue
		}

		end, err := ParseTimestamp(r.End)
		if err != nil || !end.After(start) {
			end = start.Add(defaultDuration)
		}

		events = append(events, &Event{Raw: r, Start: start, End: end})
	}

	return events, skipped
}
