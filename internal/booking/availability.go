package booking

import (
	"sort"
	"time"

	"github.com/bookacourt/backend/internal/pkg/interval"
)

// IsFree reports whether the requested interval avoids every occupied one.
// Occupied intervals come from live bookings and administrative blocks alike;
// the overlap rule does not distinguish the source.
func IsFree(requested interval.Interval, occupied []interval.Interval) bool {
	for _, o := range occupied {
		if requested.Overlaps(o) {
			return false
		}
	}
	return true
}

// FreeSlots walks the court's operating window in granularity steps and
// returns every candidate slot that does not overlap an occupied interval.
// A final partial slot shorter than the granularity is dropped.
func FreeSlots(date time.Time, open, close interval.TimeOfDay, occupied []interval.Interval, granularity time.Duration) []interval.Interval {
	if granularity <= 0 {
		granularity = time.Hour
	}

	day := interval.DateOnly(date)
	var free []interval.Interval

	for cur := open; !close.Before(cur.Add(granularity)); cur = cur.Add(granularity) {
		slot := interval.Interval{Date: day, Start: cur, End: cur.Add(granularity)}
		if IsFree(slot, occupied) {
			free = append(free, slot)
		}
	}
	return free
}

// MergeOccupied sorts intervals by start time and coalesces overlapping or
// touching neighbours, yielding the minimal occupied set for a day.
func MergeOccupied(occupied []interval.Interval) []interval.Interval {
	if len(occupied) <= 1 {
		return occupied
	}

	sorted := make([]interval.Interval, len(occupied))
	copy(sorted, occupied)
	sort.Slice(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].Start < sorted[j].Start
	})

	merged := sorted[:1]
	for _, iv := range sorted[1:] {
		last := &merged[len(merged)-1]
		if iv.Date.Equal(last.Date) && iv.Start <= last.End {
			if last.End < iv.End {
				last.End = iv.End
			}
			continue
		}
		merged = append(merged, iv)
	}
	return merged
}
