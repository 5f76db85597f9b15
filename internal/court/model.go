package court

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookacourt/backend/internal/pkg/interval"
)

var (
	ErrNotFound          = errors.New("court not found")
	ErrPolicyNotFound    = errors.New("cancellation policy not found")
	ErrRuleNotFound      = errors.New("pricing rule not found")
	ErrSlotNotFound      = errors.New("blocked slot not found")
	ErrNameRequired      = errors.New("court name is required")
	ErrInvalidHours      = errors.New("opening time must be before closing time")
	ErrInvalidRate       = errors.New("hourly rate must be positive")
	ErrInvalidDays       = errors.New("days of week must be within 0 (Monday) to 6 (Sunday)")
	ErrInvalidCategory   = errors.New("invalid category_id")
	ErrAlreadyManager    = errors.New("user is already a manager of this court")
	ErrManagerNotFound   = errors.New("user is not a manager of this court")
	ErrInvalidPercentage = errors.New("percentage must be within 0 to 100")
)

// Court is a bookable sports court. Courts are soft-deactivated via IsActive,
// never hard-deleted, so historical bookings keep their reference.
type Court struct {
	ID             string
	Name           string
	OwnerID        string
	CategoryID     *string
	CourtType      string // Basketball, Tennis, Badminton, ...
	Description    string
	Address        string
	City           string
	IsIndoor       bool
	Capacity       int
	PhoneNumber    string
	BaseHourlyRate decimal.Decimal
	OpeningTime    interval.TimeOfDay
	ClosingTime    interval.TimeOfDay
	IsActive       bool
	Managers       []string // user IDs with delegated admin access
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsAdministeredBy reports whether the user owns or manages the court.
func (c *Court) IsAdministeredBy(userID string) bool {
	if c.OwnerID == userID {
		return true
	}
	for _, m := range c.Managers {
		if m == userID {
			return true
		}
	}
	return false
}

// OperatingWindow reports whether the interval fits the court's hours.
func (c *Court) OperatingWindow(iv interval.Interval) bool {
	return iv.Within(c.OpeningTime, c.ClosingTime)
}

// BlockedSlot is an administrative hold on a court's time range. Its mere
// existence occupies the availability index; there is no status field.
type BlockedSlot struct {
	ID        string
	CourtID   string
	Date      time.Time
	StartTime interval.TimeOfDay
	EndTime   interval.TimeOfDay
	Reason    string
	Notes     string
	BlockedBy *string
	CreatedAt time.Time
}

// Interval returns the slot as a half-open interval.
func (b *BlockedSlot) Interval() interval.Interval {
	return interval.Interval{Date: interval.DateOnly(b.Date), Start: b.StartTime, End: b.EndTime}
}

// PricingRule is a day/time-scoped override of the court's base hourly rate.
// Rules are advisory overlays; overlapping rules are resolved by ResolveRate.
type PricingRule struct {
	ID          string
	CourtID     string
	StartTime   interval.TimeOfDay
	EndTime     interval.TimeOfDay
	DaysOfWeek  []int // 0=Monday .. 6=Sunday
	HourlyRate  decimal.Decimal
	Description string
	IsActive    bool
	CreatedAt   time.Time
}

// windowMinutes is the rule's time-of-day span, used for specificity ranking.
func (r *PricingRule) windowMinutes() int {
	return r.EndTime.Minutes() - r.StartTime.Minutes()
}

// appliesTo reports whether the rule matches the weekday and overlaps the
// requested time-of-day range.
func (r *PricingRule) appliesTo(weekday int, start, end interval.TimeOfDay) bool {
	if !r.IsActive {
		return false
	}
	matched := false
	for _, d := range r.DaysOfWeek {
		if d == weekday {
			matched = true
			break
		}
	}
	if !matched {
		return false
	}
	return r.StartTime < end && start < r.EndTime
}

// CancellationPolicy is one-to-one with a court. Thresholds are hours before
// the booking's start time.
type CancellationPolicy struct {
	CourtID                   string
	CancellationDeadlineHours int
	FullRefundHours           int
	PartialRefundHours        int
	PartialRefundPercentage   int
	NoShowPenaltyPercentage   int
	PolicyText                string
	UpdatedAt                 time.Time
}

// DefaultPolicy returns the platform-wide fallback used when a court has not
// configured its own policy.
func DefaultPolicy(courtID string) *CancellationPolicy {
	return &CancellationPolicy{
		CourtID:                   courtID,
		CancellationDeadlineHours: 24,
		FullRefundHours:           48,
		PartialRefundHours:        24,
		PartialRefundPercentage:   50,
		NoShowPenaltyPercentage:   100,
	}
}

// Filter defines parameters for listing courts.
type Filter struct {
	City       string
	CategoryID string
	CourtType  string
	OwnerID    string
	IsActive   *bool
	Page       int
	PageSize   int
}
