package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookacourt/backend/internal/pkg/interval"
)

func mustTime(t *testing.T, s string) interval.TimeOfDay {
	v, err := interval.ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func slot(t *testing.T, date time.Time, start, end string) interval.Interval {
	iv, err := interval.New(date, mustTime(t, start), mustTime(t, end))
	require.NoError(t, err)
	return iv
}

func TestIsFree(t *testing.T) {
	date := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)
	occupied := []interval.Interval{
		slot(t, date, "10:00", "12:00"),
		slot(t, date, "15:00", "16:00"),
	}

	t.Run("clear interval", func(t *testing.T) {
		assert.True(t, IsFree(slot(t, date, "13:00", "14:00"), occupied))
	})

	t.Run("overlapping interval", func(t *testing.T) {
		assert.False(t, IsFree(slot(t, date, "11:00", "13:00"), occupied))
	})

	t.Run("back to back with an occupied slot", func(t *testing.T) {
		assert.True(t, IsFree(slot(t, date, "12:00", "13:00"), occupied))
		assert.True(t, IsFree(slot(t, date, "09:00", "10:00"), occupied))
	})

	t.Run("same times on another date", func(t *testing.T) {
		other := date.AddDate(0, 0, 1)
		assert.True(t, IsFree(slot(t, other, "10:00", "12:00"), occupied))
	})

	t.Run("no occupied intervals", func(t *testing.T) {
		assert.True(t, IsFree(slot(t, date, "10:00", "12:00"), nil))
	})
}

func TestFreeSlots(t *testing.T) {
	date := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

	t.Run("one booked hour leaves the rest", func(t *testing.T) {
		occupied := []interval.Interval{slot(t, date, "07:00", "08:00")}
		free := FreeSlots(date, mustTime(t, "06:00"), mustTime(t, "09:00"), occupied, time.Hour)

		require.Len(t, free, 2)
		assert.Equal(t, slot(t, date, "06:00", "07:00"), free[0])
		assert.Equal(t, slot(t, date, "08:00", "09:00"), free[1])
	})

	t.Run("partial trailing slot is dropped", func(t *testing.T) {
		// 06:00 to 08:30 yields two full hours; the 30-minute tail is not offered.
		free := FreeSlots(date, mustTime(t, "06:00"), mustTime(t, "08:30"), nil, time.Hour)

		require.Len(t, free, 2)
		assert.Equal(t, slot(t, date, "07:00", "08:00"), free[1])
	})

	t.Run("fully booked day", func(t *testing.T) {
		occupied := []interval.Interval{slot(t, date, "06:00", "22:00")}
		free := FreeSlots(date, mustTime(t, "06:00"), mustTime(t, "22:00"), occupied, time.Hour)
		assert.Empty(t, free)
	})

	t.Run("thirty minute granularity", func(t *testing.T) {
		free := FreeSlots(date, mustTime(t, "06:00"), mustTime(t, "07:30"), nil, 30*time.Minute)
		require.Len(t, free, 3)
		assert.Equal(t, slot(t, date, "06:30", "07:00"), free[1])
	})

	t.Run("window shorter than granularity", func(t *testing.T) {
		free := FreeSlots(date, mustTime(t, "06:00"), mustTime(t, "06:30"), nil, time.Hour)
		assert.Empty(t, free)
	})
}

func TestMergeOccupied(t *testing.T) {
	date := time.Date(2026, 4, 10, 0, 0, 0, 0, time.UTC)

	t.Run("overlapping and touching intervals coalesce", func(t *testing.T) {
		merged := MergeOccupied([]interval.Interval{
			slot(t, date, "12:00", "13:00"),
			slot(t, date, "10:00", "11:30"),
			slot(t, date, "11:00", "12:00"),
		})
		require.Len(t, merged, 1)
		assert.Equal(t, slot(t, date, "10:00", "13:00"), merged[0])
	})

	t.Run("disjoint intervals stay apart", func(t *testing.T) {
		merged := MergeOccupied([]interval.Interval{
			slot(t, date, "15:00", "16:00"),
			slot(t, date, "10:00", "11:00"),
		})
		require.Len(t, merged, 2)
		assert.Equal(t, slot(t, date, "10:00", "11:00"), merged[0])
	})
}

func TestNewReference(t *testing.T) {
	ref := NewReference()
	assert.Len(t, ref, 10)
	assert.Equal(t, "BK", ref[:2])
	assert.NotEqual(t, ref, NewReference())
}
