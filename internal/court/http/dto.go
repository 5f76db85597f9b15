package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookacourt/backend/internal/court"
)

type CourtResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	OwnerID        string          `json:"owner_id"`
	CategoryID     *string         `json:"category_id,omitempty"`
	CourtType      string          `json:"court_type"`
	Description    string          `json:"description"`
	Address        string          `json:"address"`
	City           string          `json:"city"`
	IsIndoor       bool            `json:"is_indoor"`
	Capacity       int             `json:"capacity"`
	PhoneNumber    string          `json:"phone_number"`
	BaseHourlyRate decimal.Decimal `json:"base_hourly_rate"`
	OpeningTime    string          `json:"opening_time"`
	ClosingTime    string          `json:"closing_time"`
	IsActive       bool            `json:"is_active"`
	Managers       []string        `json:"managers,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func NewCourtResponse(c *court.Court) CourtResponse {
	return CourtResponse{
		ID:             c.ID,
		Name:           c.Name,
		OwnerID:        c.OwnerID,
		CategoryID:     c.CategoryID,
		CourtType:      c.CourtType,
		Description:    c.Description,
		Address:        c.Address,
		City:           c.City,
		IsIndoor:       c.IsIndoor,
		Capacity:       c.Capacity,
		PhoneNumber:    c.PhoneNumber,
		BaseHourlyRate: c.BaseHourlyRate,
		OpeningTime:    c.OpeningTime.String(),
		ClosingTime:    c.ClosingTime.String(),
		IsActive:       c.IsActive,
		Managers:       c.Managers,
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
}

type CreateCourtBody struct {
	Name           string          `json:"name" binding:"required"`
	CategoryID     *string         `json:"category_id" binding:"omitempty,uuid"`
	CourtType      string          `json:"court_type" binding:"required"`
	Description    string          `json:"description"`
	Address        string          `json:"address" binding:"required"`
	City           string          `json:"city" binding:"required"`
	IsIndoor       bool            `json:"is_indoor"`
	Capacity       int             `json:"capacity" binding:"omitempty,min=1"`
	PhoneNumber    string          `json:"phone_number"`
	BaseHourlyRate decimal.Decimal `json:"base_hourly_rate" binding:"required"`
	OpeningTime    string          `json:"opening_time" binding:"required"`
	ClosingTime    string          `json:"closing_time" binding:"required"`
}

type UpdateCourtBody struct {
	Name           *string          `json:"name"`
	CategoryID     *string          `json:"category_id" binding:"omitempty,uuid"`
	CourtType      *string          `json:"court_type"`
	Description    *string          `json:"description"`
	Address        *string          `json:"address"`
	City           *string          `json:"city"`
	IsIndoor       *bool            `json:"is_indoor"`
	Capacity       *int             `json:"capacity" binding:"omitempty,min=1"`
	PhoneNumber    *string          `json:"phone_number"`
	BaseHourlyRate *decimal.Decimal `json:"base_hourly_rate"`
	OpeningTime    *string          `json:"opening_time"`
	ClosingTime    *string          `json:"closing_time"`
	IsActive       *bool            `json:"is_active"`
}

type ListCourtsRequest struct {
	City       string `form:"city"`
	CategoryID string `form:"category_id" binding:"omitempty,uuid"`
	CourtType  string `form:"court_type"`
	OwnerID    string `form:"owner_id" binding:"omitempty,uuid"`
	IsActive   *bool  `form:"is_active"`
	Page       int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize   int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}

type ManagerBody struct {
	UserID string `json:"user_id" binding:"required,uuid"`
}

type BlockSlotBody struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Reason    string `json:"reason"`
	Notes     string `json:"notes"`
}

type BlockedSlotResponse struct {
	ID        string    `json:"id"`
	CourtID   string    `json:"court_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Reason    string    `json:"reason,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	BlockedBy *string   `json:"blocked_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func NewBlockedSlotResponse(s *court.BlockedSlot) BlockedSlotResponse {
	return BlockedSlotResponse{
		ID:        s.ID,
		CourtID:   s.CourtID,
		Date:      s.Date.Format(time.DateOnly),
		StartTime: s.StartTime.String(),
		EndTime:   s.EndTime.String(),
		Reason:    s.Reason,
		Notes:     s.Notes,
		BlockedBy: s.BlockedBy,
		CreatedAt: s.CreatedAt,
	}
}

type PricingRuleBody struct {
	StartTime   string          `json:"start_time" binding:"required"`
	EndTime     string          `json:"end_time" binding:"required"`
	DaysOfWeek  []int           `json:"days_of_week" binding:"required"`
	HourlyRate  decimal.Decimal `json:"hourly_rate" binding:"required"`
	Description string          `json:"description"`
	IsActive    *bool           `json:"is_active"`
}

type UpdatePricingRuleBody struct {
	StartTime   string          `json:"start_time"`
	EndTime     string          `json:"end_time"`
	DaysOfWeek  []int           `json:"days_of_week"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	Description string          `json:"description"`
	IsActive    *bool           `json:"is_active"`
}

type PricingRuleResponse struct {
	ID          string          `json:"id"`
	CourtID     string          `json:"court_id"`
	StartTime   string          `json:"start_time"`
	EndTime     string          `json:"end_time"`
	DaysOfWeek  []int           `json:"days_of_week"`
	HourlyRate  decimal.Decimal `json:"hourly_rate"`
	Description string          `json:"description,omitempty"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewPricingRuleResponse(r *court.PricingRule) PricingRuleResponse {
	return PricingRuleResponse{
		ID:          r.ID,
		CourtID:     r.CourtID,
		StartTime:   r.StartTime.String(),
		EndTime:     r.EndTime.String(),
		DaysOfWeek:  r.DaysOfWeek,
		HourlyRate:  r.HourlyRate,
		Description: r.Description,
		IsActive:    r.IsActive,
		CreatedAt:   r.CreatedAt,
	}
}

type PolicyBody struct {
	CancellationDeadlineHours int    `json:"cancellation_deadline_hours" binding:"min=0"`
	FullRefundHours           int    `json:"full_refund_hours" binding:"min=0"`
	PartialRefundHours        int    `json:"partial_refund_hours" binding:"min=0"`
	PartialRefundPercentage   int    `json:"partial_refund_percentage" binding:"min=0,max=100"`
	NoShowPenaltyPercentage   int    `json:"no_show_penalty_percentage" binding:"min=0,max=100"`
	PolicyText                string `json:"policy_text"`
}

type PolicyResponse struct {
	CourtID                   string `json:"court_id"`
	CancellationDeadlineHours int    `json:"cancellation_deadline_hours"`
	FullRefundHours           int    `json:"full_refund_hours"`
	PartialRefundHours        int    `json:"partial_refund_hours"`
	PartialRefundPercentage   int    `json:"partial_refund_percentage"`
	NoShowPenaltyPercentage   int    `json:"no_show_penalty_percentage"`
	PolicyText                string `json:"policy_text,omitempty"`
}

func NewPolicyResponse(p *court.CancellationPolicy) PolicyResponse {
	return PolicyResponse{
		CourtID:                   p.CourtID,
		CancellationDeadlineHours: p.CancellationDeadlineHours,
		FullRefundHours:           p.FullRefundHours,
		PartialRefundHours:        p.PartialRefundHours,
		PartialRefundPercentage:   p.PartialRefundPercentage,
		NoShowPenaltyPercentage:   p.NoShowPenaltyPercentage,
		PolicyText:                p.PolicyText,
	}
}

type QuoteRequest struct {
	Date      string `form:"date" binding:"required"`
	StartTime string `form:"start_time" binding:"required"`
	EndTime   string `form:"end_time" binding:"required"`
}

type QuoteResponse struct {
	CourtID    string          `json:"court_id"`
	Date       string          `json:"date"`
	StartTime  string          `json:"start_time"`
	EndTime    string          `json:"end_time"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	Amount     decimal.Decimal `json:"amount"`
}
