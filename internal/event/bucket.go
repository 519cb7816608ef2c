package event

import (
	"slices"
	"sort"

	"github.com/javiermolinar/lienzo/internal/dateutil"
)

// BucketByDay groups events by the calendar day of their start.
//
// An event lands only in its start day's bucket, even when it spans into
// the next day; each day's layout clamps the visible portion itself.
// Buckets are ordered by ascending start, and equal starts keep their
// input order. Downstream column packing relies on that ordering for
// deterministic output.
func BucketByDay(events []*Event) map[string][]*Event {
	buckets := make(map[string][]*Event)
	for _, e := range events {
		key := dateutil.DayKey(e.Start)
		buckets[key] = append(buckets[key], e)
	}

	for _, bucket := range buckets {
		slices.SortStableFunc(bucket, func(a, b *Event) int {
			return a.Start.Compare(b.Start)
		})
	}

	return buckets
}

// DayKeys returns the bucket keys in ascending date order.
func DayKeys(buckets map[string][]*Event) []string {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// SortByStart stable-sorts events by start time in place, preserving the
// relative order of equal starts.
func SortByStart(events []*Event) {
	slices.SortStableFunc(events, func(a, b *Event) int {
		return a.Start.Compare(b.Start)
	})
}
