package court

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookacourt/backend/internal/pkg/interval"
)

// WeekdayIndex maps a date to the 0=Monday..6=Sunday encoding pricing rules
// are stored with.
func WeekdayIndex(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// ResolveRate returns the hourly rate applicable to the interval. Rules match
// when the date's weekday is in the rule's day set and the rule's time-of-day
// window overlaps the interval. With no match the base rate applies. When
// several rules match, the most specific wins: smallest time window first,
// then most recently created.
func ResolveRate(base decimal.Decimal, rules []*PricingRule, date time.Time, iv interval.Interval) decimal.Decimal {
	weekday := WeekdayIndex(date)

	var best *PricingRule
	for _, rule := range rules {
		if !rule.appliesTo(weekday, iv.Start, iv.End) {
			continue
		}
		if best == nil {
			best = rule
			continue
		}
		switch {
		case rule.windowMinutes() < best.windowMinutes():
			best = rule
		case rule.windowMinutes() == best.windowMinutes() && rule.CreatedAt.After(best.CreatedAt):
			best = rule
		}
	}

	if best == nil {
		return base
	}
	return best.HourlyRate
}

// AmountFor computes rate × duration, half-up rounded to 2 decimal places at
// the final total only.
func AmountFor(rate decimal.Decimal, iv interval.Interval) decimal.Decimal {
	return rate.Mul(iv.DurationHours()).Round(2)
}
