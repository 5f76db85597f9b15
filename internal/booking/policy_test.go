package booking

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/bookacourt/backend/internal/court"
)

func TestEvaluateCancellation(t *testing.T) {
	policy := court.DefaultPolicy("court-1") // deadline 24h, full 48h, partial 24h at 50%
	paid := decimal.RequireFromString("2000")
	now := time.Date(2026, 3, 17, 12, 0, 0, 0, time.UTC)

	at := func(hoursAhead float64) time.Time {
		return now.Add(time.Duration(hoursAhead * float64(time.Hour)))
	}

	t.Run("well ahead of full refund threshold", func(t *testing.T) {
		out := EvaluateCancellation(policy, paid, at(50), now)
		assert.True(t, out.Cancellable)
		assert.Equal(t, 100, out.RefundPercentage)
		assert.True(t, out.RefundAmount.Equal(paid))
	})

	t.Run("exactly at full refund threshold", func(t *testing.T) {
		out := EvaluateCancellation(policy, paid, at(48), now)
		assert.True(t, out.Cancellable)
		assert.Equal(t, 100, out.RefundPercentage)
	})

	t.Run("between partial and full thresholds", func(t *testing.T) {
		out := EvaluateCancellation(policy, paid, at(30), now)
		assert.True(t, out.Cancellable)
		assert.Equal(t, 50, out.RefundPercentage)
		assert.True(t, out.RefundAmount.Equal(decimal.RequireFromString("1000")), "got %s", out.RefundAmount)
	})

	t.Run("inside the deadline is not cancellable", func(t *testing.T) {
		out := EvaluateCancellation(policy, paid, at(10), now)
		assert.False(t, out.Cancellable)
		assert.True(t, out.RefundAmount.IsZero())
	})

	t.Run("just under the deadline is not cancellable", func(t *testing.T) {
		out := EvaluateCancellation(policy, paid, at(23.99), now)
		assert.False(t, out.Cancellable)
	})

	t.Run("refund rounds to cents", func(t *testing.T) {
		odd := decimal.RequireFromString("1999.99")
		out := EvaluateCancellation(policy, odd, at(30), now)
		// 50% of 1999.99 = 999.995 -> 1000.00 half-up
		assert.True(t, out.RefundAmount.Equal(decimal.RequireFromString("1000.00")), "got %s", out.RefundAmount)
	})

	t.Run("zero-percent tier still cancels", func(t *testing.T) {
		strict := &court.CancellationPolicy{
			CourtID:                   "court-2",
			CancellationDeadlineHours: 12,
			FullRefundHours:           72,
			PartialRefundHours:        48,
			PartialRefundPercentage:   50,
		}
		out := EvaluateCancellation(strict, paid, at(24), now)
		assert.True(t, out.Cancellable)
		assert.Equal(t, 0, out.RefundPercentage)
		assert.True(t, out.RefundAmount.IsZero())
	})
}

func TestNoShowPenalty(t *testing.T) {
	policy := court.DefaultPolicy("court-1")
	paid := decimal.RequireFromString("1500")
	assert.True(t, NoShowPenalty(policy, paid).Equal(paid), "default policy retains the full amount")

	lenient := *policy
	lenient.NoShowPenaltyPercentage = 40
	assert.True(t, NoShowPenalty(&lenient, paid).Equal(decimal.RequireFromString("600")))
}
