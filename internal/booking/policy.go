package booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookacourt/backend/internal/court"
)

// CancellationOutcome is the result of evaluating a court's cancellation
// policy against a booking at a given moment.
type CancellationOutcome struct {
	Cancellable      bool
	RefundPercentage int
	RefundAmount     decimal.Decimal
}

// EvaluateCancellation applies the policy's refund tiers to a booking.
// Hours until start are measured exactly; thresholds compare inclusively on
// the refund side, so cancelling exactly full_refund_hours ahead still earns
// the full refund, while cancelling exactly at the deadline is rejected.
func EvaluateCancellation(policy *court.CancellationPolicy, paid decimal.Decimal, startAt, now time.Time) CancellationOutcome {
	hoursUntil := startAt.Sub(now).Hours()

	if hoursUntil < float64(policy.CancellationDeadlineHours) {
		return CancellationOutcome{Cancellable: false, RefundAmount: decimal.Zero}
	}

	pct := 0
	switch {
	case hoursUntil >= float64(policy.FullRefundHours):
		pct = 100
	case hoursUntil >= float64(policy.PartialRefundHours):
		pct = policy.PartialRefundPercentage
	}

	refund := paid.Mul(decimal.New(int64(pct), -2)).Round(2)
	return CancellationOutcome{
		Cancellable:      true,
		RefundPercentage: pct,
		RefundAmount:     refund,
	}
}

// NoShowPenalty returns the amount retained when a booking is marked no-show.
func NoShowPenalty(policy *court.CancellationPolicy, paid decimal.Decimal) decimal.Decimal {
	return paid.Mul(decimal.New(int64(policy.NoShowPenaltyPercentage), -2)).Round(2)
}
