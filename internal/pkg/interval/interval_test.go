package interval

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func mustTime(t *testing.T, s string) TimeOfDay {
	tod, err := ParseTimeOfDay(s)
	require.NoError(t, err)
	return tod
}

func TestParseTimeOfDay(t *testing.T) {
	tests := []struct {
		in      string
		want    int // minutes since midnight
		wantErr bool
	}{
		{in: "09:00", want: 540},
		{in: "09:30:00", want: 570},
		{in: "00:00", want: 0},
		{in: "24:00", want: 1440},
		{in: "22:00:00", want: 1320},
		{in: "25:00", wantErr: true},
		{in: "10:75", wantErr: true},
		{in: "10:00:30", wantErr: true}, // sub-minute precision rejected
		{in: "banana", wantErr: true},
		{in: "10:00xyz", wantErr: true}, // trailing characters rejected
		{in: "10:00:00pm", wantErr: true},
		{in: " 10:00", wantErr: true},
		{in: "-1:30", wantErr: true},
		{in: "10:", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeOfDay(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeOfDay)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Minutes())
		})
	}
}

func TestNewRejectsInvertedRange(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	_, err := New(date, mustTime(t, "10:00"), mustTime(t, "10:00"))
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = New(date, mustTime(t, "11:00"), mustTime(t, "10:00"))
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestOverlaps(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	otherDate := date.AddDate(0, 0, 1)

	mk := func(d time.Time, start, end string) Interval {
		iv, err := New(d, mustTime(t, start), mustTime(t, end))
		require.NoError(t, err)
		return iv
	}

	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{name: "identical", a: mk(date, "09:00", "10:00"), b: mk(date, "09:00", "10:00"), want: true},
		{name: "partial overlap", a: mk(date, "09:00", "11:00"), b: mk(date, "10:00", "12:00"), want: true},
		{name: "contained", a: mk(date, "09:00", "12:00"), b: mk(date, "10:00", "11:00"), want: true},
		{name: "touching endpoints do not overlap", a: mk(date, "09:00", "10:00"), b: mk(date, "10:00", "11:00"), want: false},
		{name: "disjoint", a: mk(date, "09:00", "10:00"), b: mk(date, "14:00", "15:00"), want: false},
		{name: "same times different dates", a: mk(date, "09:00", "10:00"), b: mk(otherDate, "09:00", "10:00"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a), "overlap must be symmetric")
		})
	}
}

func TestContainsAndWithin(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	outer, err := New(date, mustTime(t, "06:00"), mustTime(t, "22:00"))
	require.NoError(t, err)
	inner, err := New(date, mustTime(t, "06:00"), mustTime(t, "07:00"))
	require.NoError(t, err)
	spilling, err := New(date, mustTime(t, "21:30"), mustTime(t, "22:30"))
	require.NoError(t, err)

	assert.True(t, outer.Contains(inner))
	assert.False(t, outer.Contains(spilling))

	assert.True(t, inner.Within(mustTime(t, "06:00"), mustTime(t, "22:00")))
	assert.False(t, spilling.Within(mustTime(t, "06:00"), mustTime(t, "22:00")))
}

func TestDurationHours(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	iv, err := New(date, mustTime(t, "18:00"), mustTime(t, "20:00"))
	require.NoError(t, err)
	assert.True(t, iv.DurationHours().Equal(decimalFromString(t, "2")))

	half, err := New(date, mustTime(t, "18:00"), mustTime(t, "19:30"))
	require.NoError(t, err)
	assert.True(t, half.DurationHours().Equal(decimalFromString(t, "1.5")))
}

func TestStartAtEndAt(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)

	iv, err := New(date, mustTime(t, "09:00"), mustTime(t, "10:30"))
	require.NoError(t, err)

	assert.Equal(t, time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC), iv.StartAt())
	assert.Equal(t, time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC), iv.EndAt())
}
