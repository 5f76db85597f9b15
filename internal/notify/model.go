package notify

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("notification not found")

type Type string

const (
	TypeBookingCreated   Type = "BOOKING_CREATED"
	TypeBookingConfirmed Type = "BOOKING_CONFIRMED"
	TypeBookingCancelled Type = "BOOKING_CANCELLED"
)

// Notification is an in-app message delivered to a single user.
type Notification struct {
	ID        string
	UserID    string
	Type      Type
	Title     string
	Message   string
	BookingID *string
	IsRead    bool
	CreatedAt time.Time
}

// Filter defines parameters for listing a user's notifications.
type Filter struct {
	UnreadOnly bool
	Page       int
	PageSize   int
}
