package ics

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"

	"github.com/javiermolinar/lienzo/internal/event"
)

// maxOccurrencesPerEntry caps recurrence expansion so a runaway RRULE
// cannot flood the store.
const maxOccurrencesPerEntry = 1000

// rawTimestamp is the format occurrences are serialized with; it round-trips
// through event.ParseTimestamp.
const rawTimestamp = time.RFC3339

// Expand converts entries into raw event records, expanding recurrence
// rules into concrete occurrences inside [rangeStart, rangeEnd).
// The feed name becomes the records' source.
func Expand(entries []Entry, rangeStart, rangeEnd time.Time, feed string) []*event.Raw {
	var raws []*event.Raw

	for _, entry := range entries {
		if entry.RRule == "" {
			if inRange(entry, rangeStart, rangeEnd) {
				raws = append(raws, occurrence(entry, entry.Start, entry.End, feed, ""))
			}
			continue
		}

		r, err := rrule.StrToRRule(entry.RRule)
		if err != nil {
			// An unusable rule degrades to the base occurrence.
			raws = append(raws, occurrence(entry, entry.Start, entry.End, feed, ""))
			continue
		}
		r.DTStart(entry.Start)

		times := r.Between(rangeStart.In(entry.Start.Location()), rangeEnd.In(entry.Start.Location()), true)
		if len(times) > maxOccurrencesPerEntry {
			times = times[:maxOccurrencesPerEntry]
		}

		duration := entry.End.Sub(entry.Start)
		for _, start := range times {
			var end time.Time
			if entry.AllDay {
				day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
				start = day
				end = day.Add(24 * time.Hour)
			} else if duration > 0 {
				end = start.Add(duration)
			}
			raws = append(raws, occurrence(entry, start, end, feed, start.Format("20060102T150405")))
		}
	}

	return raws
}

// inRange reports whether a one-off entry intersects the expansion range.
// Entries without an end count when their start falls inside it.
func inRange(entry Entry, rangeStart, rangeEnd time.Time) bool {
	if entry.End.IsZero() {
		return !entry.Start.Before(rangeStart) && entry.Start.Before(rangeEnd)
	}
	return entry.Start.Before(rangeEnd) && entry.End.After(rangeStart)
}

// occurrence builds one raw record. Recurring instances get a suffixed
// UID so each occurrence keeps its own identity in the store.
func occurrence(entry Entry, start, end time.Time, feed, instance string) *event.Raw {
	uid := entry.UID
	if instance != "" {
		uid = fmt.Sprintf("%s/%s", entry.UID, instance)
	}

	raw := &event.Raw{
		UID:      uid,
		Title:    entry.Summary,
		Location: entry.Location,
		Start:    start.Format(rawTimestamp),
		Source:   feed,
	}
	if !end.IsZero() {
		raw.End = end.Format(rawTimestamp)
	}
	return raw
}
