package court

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookacourt/backend/internal/pkg/interval"
)

func tod(t *testing.T, s string) interval.TimeOfDay {
	v, err := interval.ParseTimeOfDay(s)
	require.NoError(t, err)
	return v
}

func ivl(t *testing.T, date time.Time, start, end string) interval.Interval {
	iv, err := interval.New(date, tod(t, start), tod(t, end))
	require.NoError(t, err)
	return iv
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestWeekdayIndex(t *testing.T) {
	// 2026-03-16 is a Monday.
	monday := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, WeekdayIndex(monday))
	assert.Equal(t, 1, WeekdayIndex(monday.AddDate(0, 0, 1)))
	assert.Equal(t, 6, WeekdayIndex(monday.AddDate(0, 0, 6)))
}

func TestResolveRate(t *testing.T) {
	base := dec("1000")
	tuesday := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
	saturday := time.Date(2026, 3, 21, 0, 0, 0, 0, time.UTC)
	weekdays := []int{0, 1, 2, 3, 4}

	eveningPeak := &PricingRule{
		StartTime:  tod(t, "18:00"),
		EndTime:    tod(t, "21:00"),
		DaysOfWeek: weekdays,
		HourlyRate: dec("1500"),
		IsActive:   true,
		CreatedAt:  time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	allDayWeekday := &PricingRule{
		StartTime:  tod(t, "06:00"),
		EndTime:    tod(t, "22:00"),
		DaysOfWeek: weekdays,
		HourlyRate: dec("1200"),
		IsActive:   true,
		CreatedAt:  time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	t.Run("no rules falls back to base rate", func(t *testing.T) {
		rate := ResolveRate(base, nil, tuesday, ivl(t, tuesday, "10:00", "12:00"))
		assert.True(t, rate.Equal(base))
	})

	t.Run("matching rule overrides base", func(t *testing.T) {
		rate := ResolveRate(base, []*PricingRule{eveningPeak}, tuesday, ivl(t, tuesday, "18:00", "19:00"))
		assert.True(t, rate.Equal(dec("1500")))
	})

	t.Run("weekend does not match weekday rule", func(t *testing.T) {
		rate := ResolveRate(base, []*PricingRule{eveningPeak}, saturday, ivl(t, saturday, "18:00", "19:00"))
		assert.True(t, rate.Equal(base))
	})

	t.Run("nested peak rule beats broader rule", func(t *testing.T) {
		rate := ResolveRate(base, []*PricingRule{allDayWeekday, eveningPeak}, tuesday, ivl(t, tuesday, "18:00", "20:00"))
		assert.True(t, rate.Equal(dec("1500")), "tightest window must win")
	})

	t.Run("equal windows resolved by most recent", func(t *testing.T) {
		older := &PricingRule{
			StartTime: tod(t, "18:00"), EndTime: tod(t, "21:00"),
			DaysOfWeek: weekdays, HourlyRate: dec("1400"), IsActive: true,
			CreatedAt: time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC),
		}
		rate := ResolveRate(base, []*PricingRule{older, eveningPeak}, tuesday, ivl(t, tuesday, "18:00", "19:00"))
		assert.True(t, rate.Equal(dec("1500")))
	})

	t.Run("inactive rules are skipped", func(t *testing.T) {
		inactive := &PricingRule{
			StartTime: tod(t, "18:00"), EndTime: tod(t, "21:00"),
			DaysOfWeek: weekdays, HourlyRate: dec("9999"), IsActive: false,
		}
		rate := ResolveRate(base, []*PricingRule{inactive}, tuesday, ivl(t, tuesday, "18:00", "19:00"))
		assert.True(t, rate.Equal(base))
	})

	t.Run("touching window does not match", func(t *testing.T) {
		// Rule ends 18:00, request starts 18:00: half-open, no overlap.
		morning := &PricingRule{
			StartTime: tod(t, "06:00"), EndTime: tod(t, "18:00"),
			DaysOfWeek: weekdays, HourlyRate: dec("800"), IsActive: true,
		}
		rate := ResolveRate(base, []*PricingRule{morning}, tuesday, ivl(t, tuesday, "18:00", "19:00"))
		assert.True(t, rate.Equal(base))
	})
}

func TestAmountFor(t *testing.T) {
	date := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)

	t.Run("two hours at base rate", func(t *testing.T) {
		amount := AmountFor(dec("1000"), ivl(t, date, "10:00", "12:00"))
		assert.True(t, amount.Equal(dec("2000")), "got %s", amount)
	})

	t.Run("ninety minutes rounds at the total", func(t *testing.T) {
		amount := AmountFor(dec("333.33"), ivl(t, date, "10:00", "11:30"))
		// 333.33 * 1.5 = 499.995 -> 500.00 half-up
		assert.True(t, amount.Equal(dec("500.00")), "got %s", amount)
	})
}
