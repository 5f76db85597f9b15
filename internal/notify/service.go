package notify

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/bookacourt/backend/internal/booking"
)

type Service interface {
	// Dispatcher implements the booking lifecycle hooks. Delivery happens on
	// a background goroutine so a slow write never stalls a booking request.
	Dispatcher() booking.Events

	ListByUser(ctx context.Context, userID string, filter Filter) ([]*Notification, int, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Dispatcher() booking.Events {
	return &dispatcher{repo: s.repo}
}

func (s *service) ListByUser(ctx context.Context, userID string, filter Filter) ([]*Notification, int, error) {
	return s.repo.ListByUser(ctx, userID, filter)
}

func (s *service) MarkRead(ctx context.Context, userID, id string) error {
	return s.repo.MarkRead(ctx, userID, id)
}

func (s *service) MarkAllRead(ctx context.Context, userID string) error {
	return s.repo.MarkAllRead(ctx, userID)
}

type dispatcher struct {
	repo Repository
}

func (d *dispatcher) deliver(n *Notification) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := d.repo.Create(ctx, n); err != nil {
			log.Printf("notify: deliver %s to user %s failed: %v", n.Type, n.UserID, err)
		}
	}()
}

func (d *dispatcher) BookingReserved(_ context.Context, b *booking.Booking) {
	id := b.ID
	d.deliver(&Notification{
		UserID:    b.UserID,
		Type:      TypeBookingCreated,
		Title:     "Booking received",
		Message:   fmt.Sprintf("Your booking %s for %s %s is awaiting confirmation.", b.Reference, b.Date.Format(time.DateOnly), b.StartTime),
		BookingID: &id,
	})
}

func (d *dispatcher) BookingConfirmed(_ context.Context, b *booking.Booking) {
	id := b.ID
	d.deliver(&Notification{
		UserID:    b.UserID,
		Type:      TypeBookingConfirmed,
		Title:     "Booking confirmed",
		Message:   fmt.Sprintf("Booking %s is confirmed for %s %s.", b.Reference, b.Date.Format(time.DateOnly), b.StartTime),
		BookingID: &id,
	})
}

func (d *dispatcher) BookingCancelled(_ context.Context, b *booking.Booking) {
	id := b.ID
	msg := fmt.Sprintf("Booking %s has been cancelled.", b.Reference)
	if b.RefundAmount != nil && b.RefundAmount.IsPositive() {
		msg = fmt.Sprintf("Booking %s has been cancelled. A refund of %s is on its way.", b.Reference, b.RefundAmount)
	}
	d.deliver(&Notification{
		UserID:    b.UserID,
		Type:      TypeBookingCancelled,
		Title:     "Booking cancelled",
		Message:   msg,
		BookingID: &id,
	})
}
