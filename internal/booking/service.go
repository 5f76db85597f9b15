package booking

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookacourt/backend/internal/court"
	"github.com/bookacourt/backend/internal/metrics"
	"github.com/bookacourt/backend/internal/pkg/interval"
	"github.com/bookacourt/backend/internal/user"
)

// loyaltyPointValue is the currency value of one redeemed loyalty point.
var loyaltyPointValue = decimal.RequireFromString("0.1")

// loyaltyEarnDivisor: one point earned per this much spent on a completed
// booking.
var loyaltyEarnDivisor = decimal.New(100, 0)

// Actor identifies who is performing a booking operation. Staff actors may
// operate on bookings they do not own.
type Actor struct {
	ID    string
	Staff bool
}

func (a Actor) mayAccess(b *Booking) bool {
	return a.Staff || a.ID == b.UserID
}

// Events receives booking lifecycle notifications. Implementations must not
// block; the service calls them inline on the request path.
type Events interface {
	BookingReserved(ctx context.Context, b *Booking)
	BookingConfirmed(ctx context.Context, b *Booking)
	BookingCancelled(ctx context.Context, b *Booking)
}

type ReserveRequest struct {
	CourtID           string
	UserID            string
	Date              time.Time
	StartTime         interval.TimeOfDay
	EndTime           interval.TimeOfDay
	LoyaltyPointsUsed int
	PaymentMethod     PaymentMethod
	Notes             string
}

type Service interface {
	Reserve(ctx context.Context, req ReserveRequest) (*Booking, error)
	GetByID(ctx context.Context, actor Actor, id string) (*Booking, error)
	GetByReference(ctx context.Context, actor Actor, ref string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	Confirm(ctx context.Context, actor Actor, id string) (*Booking, error)
	Cancel(ctx context.Context, actor Actor, id, reason string) (*Booking, error)
	Complete(ctx context.Context, actor Actor, id string) (*Booking, error)
	MarkNoShow(ctx context.Context, actor Actor, id string) (*Booking, error)

	IsFree(ctx context.Context, courtID string, iv interval.Interval) (bool, error)
	FreeSlots(ctx context.Context, courtID string, date time.Time, granularity time.Duration) ([]interval.Interval, error)
}

type service struct {
	repo   Repository
	courts court.Service
	users  user.Service
	events Events
	now    func() time.Time
}

func NewService(repo Repository, courts court.Service, users user.Service, events Events) Service {
	return &service{
		repo:   repo,
		courts: courts,
		users:  users,
		events: events,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *service) Reserve(ctx context.Context, req ReserveRequest) (*Booking, error) {
	iv, err := interval.New(req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return nil, ErrInvalidInterval
	}

	crt, err := s.courts.GetByID(ctx, req.CourtID)
	if err != nil {
		return nil, err
	}
	if !crt.IsActive {
		return nil, ErrCourtInactive
	}

	if iv.Date.Before(interval.DateOnly(s.now())) {
		return nil, ErrPastDate
	}
	if !crt.OperatingWindow(iv) {
		return nil, ErrOutsideOperatingHours
	}

	if req.LoyaltyPointsUsed > 0 {
		u, err := s.users.GetByID(ctx, req.UserID)
		if err != nil {
			return nil, err
		}
		if u.LoyaltyPoints < req.LoyaltyPointsUsed {
			return nil, ErrInsufficientLoyaltyPoints
		}
	}

	rate, err := s.courts.RateFor(ctx, req.CourtID, iv)
	if err != nil {
		return nil, err
	}
	total := court.AmountFor(rate, iv)

	discount := decimal.New(int64(req.LoyaltyPointsUsed), 0).Mul(loyaltyPointValue).Round(2)
	if discount.GreaterThan(total) {
		discount = total
	}

	method := req.PaymentMethod
	if method == "" {
		method = PaymentOnline
	}

	b := &Booking{
		Reference:         NewReference(),
		CourtID:           req.CourtID,
		UserID:            req.UserID,
		Date:              iv.Date,
		StartTime:         iv.Start,
		EndTime:           iv.End,
		Status:            StatusPending,
		HourlyRate:        rate,
		TotalAmount:       total,
		DiscountAmount:    discount,
		FinalAmount:       total.Sub(discount),
		LoyaltyPointsUsed: req.LoyaltyPointsUsed,
		PaymentMethod:     method,
		PaymentStatus:     PaymentStatusPending,
		Notes:             req.Notes,
	}

	start := time.Now()
	err = s.repo.Reserve(ctx, b)
	metrics.ReserveDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		if err == ErrSlotConflict {
			metrics.BookingConflicts.Inc()
		}
		return nil, err
	}
	metrics.BookingsReserved.Inc()

	if s.events != nil {
		s.events.BookingReserved(ctx, b)
	}
	return b, nil
}

func (s *service) GetByID(ctx context.Context, actor Actor, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.mayAccess(b) {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) GetByReference(ctx context.Context, actor Actor, ref string) (*Booking, error) {
	b, err := s.repo.GetByReference(ctx, ref)
	if err != nil {
		return nil, err
	}
	if !actor.mayAccess(b) {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

// Confirm moves a pending booking to CONFIRMED. Redeemed loyalty points are
// deducted here, not at reservation, so abandoned pending bookings never cost
// the user points.
func (s *service) Confirm(ctx context.Context, actor Actor, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.mayAccess(b) {
		return nil, ErrPermissionDenied
	}
	if b.Status != StatusPending {
		return nil, ErrInvalidStatus
	}

	if b.LoyaltyPointsUsed > 0 {
		if err := s.users.DeductLoyaltyPoints(ctx, b.UserID, b.LoyaltyPointsUsed); err != nil {
			if err == user.ErrInsufficientPoints {
				return nil, ErrInsufficientLoyaltyPoints
			}
			return nil, err
		}
	}

	b.Status = StatusConfirmed
	b.PaymentStatus = PaymentStatusCompleted
	if err := s.repo.UpdateFrom(ctx, b, StatusPending); err != nil {
		// Roll the deduction back; the booking did not transition.
		if b.LoyaltyPointsUsed > 0 {
			_ = s.users.AddLoyaltyPoints(ctx, b.UserID, b.LoyaltyPointsUsed)
		}
		return nil, err
	}

	if s.events != nil {
		s.events.BookingConfirmed(ctx, b)
	}
	return b, nil
}

func (s *service) Cancel(ctx context.Context, actor Actor, id, reason string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.mayAccess(b) {
		return nil, ErrPermissionDenied
	}

	switch b.Status {
	case StatusCancelled:
		return nil, ErrAlreadyCancelled
	case StatusPending, StatusConfirmed:
	default:
		return nil, ErrInvalidStatus
	}

	policy, err := s.courts.Policy(ctx, b.CourtID)
	if err != nil {
		return nil, err
	}

	// Staff may cancel past the deadline; players cannot.
	outcome := EvaluateCancellation(policy, b.FinalAmount, b.StartAt(), s.now())
	if !outcome.Cancellable && !actor.Staff {
		return nil, ErrNotCancellable
	}

	prev := b.Status
	now := s.now()
	b.Status = StatusCancelled
	b.CancelledAt = &now
	b.CancelReason = reason

	// Refund is recorded on every cancellation; zero when nothing was paid.
	refund := decimal.Zero
	if b.PaymentStatus == PaymentStatusCompleted {
		refund = outcome.RefundAmount
		if refund.IsPositive() {
			b.PaymentStatus = PaymentStatusRefunded
		}
	}
	b.RefundAmount = &refund

	if err := s.repo.UpdateFrom(ctx, b, prev); err != nil {
		return nil, err
	}

	// Points deducted at confirmation come back on cancellation.
	if prev == StatusConfirmed && b.LoyaltyPointsUsed > 0 {
		_ = s.users.AddLoyaltyPoints(ctx, b.UserID, b.LoyaltyPointsUsed)
	}

	metrics.BookingsCancelled.Inc()
	if b.RefundAmount != nil && b.RefundAmount.IsPositive() {
		metrics.RefundsIssued.Inc()
	}
	if s.events != nil {
		s.events.BookingCancelled(ctx, b)
	}
	return b, nil
}

// Complete closes out a confirmed booking after play and awards loyalty
// points proportional to the amount paid.
func (s *service) Complete(ctx context.Context, actor Actor, id string) (*Booking, error) {
	if !actor.Staff {
		return nil, ErrPermissionDenied
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusConfirmed {
		return nil, ErrInvalidStatus
	}

	b.Status = StatusCompleted
	if err := s.repo.UpdateFrom(ctx, b, StatusConfirmed); err != nil {
		return nil, err
	}

	earned := int(b.FinalAmount.Div(loyaltyEarnDivisor).IntPart())
	if earned > 0 {
		_ = s.users.AddLoyaltyPoints(ctx, b.UserID, earned)
	}
	return b, nil
}

func (s *service) MarkNoShow(ctx context.Context, actor Actor, id string) (*Booking, error) {
	if !actor.Staff {
		return nil, ErrPermissionDenied
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status != StatusConfirmed {
		return nil, ErrInvalidStatus
	}

	b.Status = StatusNoShow
	if err := s.repo.UpdateFrom(ctx, b, StatusConfirmed); err != nil {
		return nil, err
	}

	_ = s.users.IncrementNoShowCount(ctx, b.UserID)
	return b, nil
}

func (s *service) IsFree(ctx context.Context, courtID string, iv interval.Interval) (bool, error) {
	crt, err := s.courts.GetByID(ctx, courtID)
	if err != nil {
		return false, err
	}
	if !crt.IsActive {
		return false, ErrCourtInactive
	}
	if !crt.OperatingWindow(iv) {
		return false, nil
	}

	occupied, err := s.repo.ListOccupied(ctx, courtID, iv.Date)
	if err != nil {
		return false, err
	}
	return IsFree(iv, occupied), nil
}

func (s *service) FreeSlots(ctx context.Context, courtID string, date time.Time, granularity time.Duration) ([]interval.Interval, error) {
	crt, err := s.courts.GetByID(ctx, courtID)
	if err != nil {
		return nil, err
	}
	if !crt.IsActive {
		return nil, ErrCourtInactive
	}

	occupied, err := s.repo.ListOccupied(ctx, courtID, date)
	if err != nil {
		return nil, err
	}
	return FreeSlots(date, crt.OpeningTime, crt.ClosingTime, MergeOccupied(occupied), granularity), nil
}
