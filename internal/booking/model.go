package booking

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookacourt/backend/internal/pkg/apperror"
	"github.com/bookacourt/backend/internal/pkg/interval"
)

// Booking lifecycle. PENDING and CONFIRMED occupy the court's availability;
// the terminal states release it.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCancelled Status = "CANCELLED"
	StatusCompleted Status = "COMPLETED"
	StatusNoShow    Status = "NO_SHOW"
)

// Occupies reports whether a booking in this status holds its time slot.
func (s Status) Occupies() bool {
	return s == StatusPending || s == StatusConfirmed
}

type PaymentMethod string

const (
	PaymentOnline  PaymentMethod = "ONLINE"
	PaymentCash    PaymentMethod = "CASH"
	PaymentOffline PaymentMethod = "OFFLINE"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

var (
	ErrNotFound                  = apperror.New(http.StatusNotFound, "booking not found")
	ErrSlotConflict              = apperror.New(http.StatusConflict, "requested time slot is not available")
	ErrCourtInactive             = apperror.New(http.StatusBadRequest, "court is not active")
	ErrPastDate                  = apperror.New(http.StatusBadRequest, "booking date must not be in the past")
	ErrOutsideOperatingHours     = apperror.New(http.StatusBadRequest, "requested time is outside the court's operating hours")
	ErrInvalidInterval           = apperror.New(http.StatusBadRequest, "start time must be before end time")
	ErrInsufficientLoyaltyPoints = apperror.New(http.StatusBadRequest, "insufficient loyalty points")
	ErrAlreadyCancelled          = apperror.New(http.StatusBadRequest, "booking is already cancelled")
	ErrNotCancellable            = apperror.New(http.StatusBadRequest, "booking can no longer be cancelled")
	ErrInvalidStatus             = apperror.New(http.StatusBadRequest, "operation is not valid for the booking's current status")
	ErrPermissionDenied          = apperror.New(http.StatusForbidden, "not allowed to access this booking")
)

type Booking struct {
	ID               string
	Reference        string
	CourtID          string
	UserID           string
	Date             time.Time
	StartTime        interval.TimeOfDay
	EndTime          interval.TimeOfDay
	Status           Status
	HourlyRate       decimal.Decimal
	TotalAmount      decimal.Decimal
	DiscountAmount   decimal.Decimal
	FinalAmount      decimal.Decimal
	LoyaltyPointsUsed int
	PaymentMethod    PaymentMethod
	PaymentStatus    PaymentStatus
	Notes            string
	CancelledAt      *time.Time
	CancelReason     string
	RefundAmount     *decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Interval returns the booked slot as a half-open interval.
func (b *Booking) Interval() interval.Interval {
	return interval.Interval{Date: interval.DateOnly(b.Date), Start: b.StartTime, End: b.EndTime}
}

// StartAt is the absolute start timestamp of the booking.
func (b *Booking) StartAt() time.Time {
	return b.StartTime.At(b.Date)
}

type Filter struct {
	UserID   string
	CourtID  string
	Status   Status
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	PageSize int
}
