// Package interval provides the half-open time interval primitives the
// availability and booking logic is built on. An interval is bound to a single
// calendar date; intervals on different dates never overlap.
package interval

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidRange     = errors.New("start time must be before end time")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
)

// TimeOfDay is a wall-clock time expressed as minutes since midnight.
// Valid values are 0 (00:00) through 1440 (24:00, exclusive end of day).
type TimeOfDay int

// ParseTimeOfDay parses "HH:MM" or "HH:MM:SS" into a TimeOfDay.
// Seconds, if present, must be zero; bookings are minute-granular.
// The whole input must be consumed; trailing characters are an error.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 && len(parts) != 3 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}

	nums := make([]int, len(parts))
	for i, p := range parts {
		if len(p) == 0 || len(p) > 2 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
		}
		for _, c := range p {
			if c < '0' || c > '9' {
				return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
			}
		}
		nums[i], _ = strconv.Atoi(p)
	}

	h, m := nums[0], nums[1]
	sec := 0
	if len(nums) == 3 {
		sec = nums[2]
	}
	if h > 24 || m > 59 || sec != 0 || (h == 24 && m != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return TimeOfDay(h*60 + m), nil
}

// String formats the time as "HH:MM:SS", matching the persisted time columns.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:00", int(t)/60, int(t)%60)
}

// Minutes returns the value as minutes since midnight.
func (t TimeOfDay) Minutes() int { return int(t) }

// Add returns the time shifted forward by d, without wrapping.
func (t TimeOfDay) Add(d time.Duration) TimeOfDay {
	return t + TimeOfDay(d/time.Minute)
}

// Before reports whether t is strictly earlier than other.
func (t TimeOfDay) Before(other TimeOfDay) bool { return t < other }

// At anchors the time of day on the given date in UTC.
func (t TimeOfDay) At(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), int(t)/60, int(t)%60, 0, 0, time.UTC)
}

// Interval is a half-open time range [Start, End) on a calendar date.
type Interval struct {
	Date  time.Time // date component only, midnight UTC
	Start TimeOfDay
	End   TimeOfDay
}

// New builds an Interval, rejecting empty and inverted ranges.
func New(date time.Time, start, end TimeOfDay) (Interval, error) {
	if start >= end {
		return Interval{}, ErrInvalidRange
	}
	return Interval{Date: DateOnly(date), Start: start, End: end}, nil
}

// DateOnly truncates a timestamp to its calendar date at midnight UTC.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether both intervals fall on the same calendar date.
func (iv Interval) SameDate(other Interval) bool {
	return iv.Date.Equal(other.Date)
}

// Overlaps applies the half-open overlap rule: [a,b) and [c,d) intersect iff
// a < d && c < b. Touching endpoints do not overlap. Intervals on different
// dates never overlap.
func (iv Interval) Overlaps(other Interval) bool {
	if !iv.SameDate(other) {
		return false
	}
	return iv.Start < other.End && other.Start < iv.End
}

// Contains reports whether inner lies fully within iv (endpoints may touch).
func (iv Interval) Contains(inner Interval) bool {
	if !iv.SameDate(inner) {
		return false
	}
	return iv.Start <= inner.Start && inner.End <= iv.End
}

// Within reports whether the interval fits inside the [open, close) wall-clock
// window, endpoints inclusive. Used for operating-hours checks.
func (iv Interval) Within(open, close TimeOfDay) bool {
	return open <= iv.Start && iv.End <= close
}

// DurationHours returns the interval length in hours as an exact decimal.
func (iv Interval) DurationHours() decimal.Decimal {
	minutes := int(iv.End) - int(iv.Start)
	return decimal.New(int64(minutes), 0).Div(decimal.New(60, 0))
}

// StartAt returns the absolute start timestamp (date + start time, UTC).
func (iv Interval) StartAt() time.Time { return iv.Start.At(iv.Date) }

// EndAt returns the absolute end timestamp (date + end time, UTC).
func (iv Interval) EndAt() time.Time { return iv.End.At(iv.Date) }
