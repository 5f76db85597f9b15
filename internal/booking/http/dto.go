package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookacourt/backend/internal/booking"
	"github.com/bookacourt/backend/internal/pkg/interval"
)

type ReserveBody struct {
	CourtID           string          `json:"court_id" binding:"required,uuid"`
	Date              string          `json:"date" binding:"required"`
	StartTime         string          `json:"start_time" binding:"required"`
	EndTime           string          `json:"end_time" binding:"required"`
	LoyaltyPointsUsed int             `json:"loyalty_points_used" binding:"omitempty,min=0"`
	PaymentMethod     string          `json:"payment_method" binding:"omitempty,oneof=ONLINE CASH OFFLINE"`
	Notes             string          `json:"notes"`
}

type CancelBody struct {
	Reason string `json:"reason"`
}

type BookingResponse struct {
	ID                string           `json:"id"`
	Reference         string           `json:"reference"`
	CourtID           string           `json:"court_id"`
	UserID            string           `json:"user_id"`
	Date              string           `json:"date"`
	StartTime         string           `json:"start_time"`
	EndTime           string           `json:"end_time"`
	Status            string           `json:"status"`
	HourlyRate        decimal.Decimal  `json:"hourly_rate"`
	TotalAmount       decimal.Decimal  `json:"total_amount"`
	DiscountAmount    decimal.Decimal  `json:"discount_amount"`
	FinalAmount       decimal.Decimal  `json:"final_amount"`
	LoyaltyPointsUsed int              `json:"loyalty_points_used"`
	PaymentMethod     string           `json:"payment_method"`
	PaymentStatus     string           `json:"payment_status"`
	Notes             string           `json:"notes,omitempty"`
	CancelledAt       *time.Time       `json:"cancelled_at,omitempty"`
	CancelReason      string           `json:"cancel_reason,omitempty"`
	RefundAmount      *decimal.Decimal `json:"refund_amount,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

func NewBookingResponse(b *booking.Booking) BookingResponse {
	return BookingResponse{
		ID:                b.ID,
		Reference:         b.Reference,
		CourtID:           b.CourtID,
		UserID:            b.UserID,
		Date:              b.Date.Format(time.DateOnly),
		StartTime:         b.StartTime.String(),
		EndTime:           b.EndTime.String(),
		Status:            string(b.Status),
		HourlyRate:        b.HourlyRate,
		TotalAmount:       b.TotalAmount,
		DiscountAmount:    b.DiscountAmount,
		FinalAmount:       b.FinalAmount,
		LoyaltyPointsUsed: b.LoyaltyPointsUsed,
		PaymentMethod:     string(b.PaymentMethod),
		PaymentStatus:     string(b.PaymentStatus),
		Notes:             b.Notes,
		CancelledAt:       b.CancelledAt,
		CancelReason:      b.CancelReason,
		RefundAmount:      b.RefundAmount,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}

type ListBookingsRequest struct {
	UserID   string `form:"user_id" binding:"omitempty,uuid"`
	CourtID  string `form:"court_id" binding:"omitempty,uuid"`
	Status   string `form:"status" binding:"omitempty,oneof=PENDING CONFIRMED CANCELLED COMPLETED NO_SHOW"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

type AvailabilityRequest struct {
	Date            string `form:"date" binding:"required"`
	GranularityMins int    `form:"granularity_minutes,default=60" binding:"omitempty,min=15,max=240"`
}

type SlotResponse struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

func NewSlotResponse(iv interval.Interval) SlotResponse {
	return SlotResponse{
		Date:      iv.Date.Format(time.DateOnly),
		StartTime: iv.Start.String(),
		EndTime:   iv.End.String(),
	}
}

type IsFreeRequest struct {
	Date      string `form:"date" binding:"required"`
	StartTime string `form:"start_time" binding:"required"`
	EndTime   string `form:"end_time" binding:"required"`
}

type IsFreeResponse struct {
	CourtID string `json:"court_id"`
	Free    bool   `json:"free"`
}
