package court

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/bookacourt/backend/internal/pkg/interval"
)

type CreateRequest struct {
	Name           string
	OwnerID        string
	CategoryID     *string
	CourtType      string
	Description    string
	Address        string
	City           string
	IsIndoor       bool
	Capacity       int
	PhoneNumber    string
	BaseHourlyRate decimal.Decimal
	OpeningTime    interval.TimeOfDay
	ClosingTime    interval.TimeOfDay
}

type UpdateRequest struct {
	Name           *string
	CategoryID     *string
	CourtType      *string
	Description    *string
	Address        *string
	City           *string
	IsIndoor       *bool
	Capacity       *int
	PhoneNumber    *string
	BaseHourlyRate *decimal.Decimal
	OpeningTime    *interval.TimeOfDay
	ClosingTime    *interval.TimeOfDay
	IsActive       *bool
}

type BlockSlotRequest struct {
	CourtID   string
	Date      time.Time
	StartTime interval.TimeOfDay
	EndTime   interval.TimeOfDay
	Reason    string
	Notes     string
	BlockedBy *string
}

type PricingRuleRequest struct {
	StartTime   interval.TimeOfDay
	EndTime     interval.TimeOfDay
	DaysOfWeek  []int
	HourlyRate  decimal.Decimal
	Description string
	IsActive    *bool
}

type PolicyRequest struct {
	CancellationDeadlineHours int
	FullRefundHours           int
	PartialRefundHours        int
	PartialRefundPercentage   int
	NoShowPenaltyPercentage   int
	PolicyText                string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Court, error)
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Court, error)
	Deactivate(ctx context.Context, id string) error

	AddManager(ctx context.Context, courtID, userID string) error
	RemoveManager(ctx context.Context, courtID, userID string) error

	BlockSlot(ctx context.Context, req BlockSlotRequest) (*BlockedSlot, error)
	ListBlockedSlots(ctx context.Context, courtID string, date *time.Time) ([]*BlockedSlot, error)
	UnblockSlot(ctx context.Context, courtID, slotID string) error

	CreatePricingRule(ctx context.Context, courtID string, req PricingRuleRequest) (*PricingRule, error)
	ListPricingRules(ctx context.Context, courtID string) ([]*PricingRule, error)
	UpdatePricingRule(ctx context.Context, courtID, ruleID string, req PricingRuleRequest) (*PricingRule, error)
	DeletePricingRule(ctx context.Context, courtID, ruleID string) error

	// RateFor resolves the hourly rate for a booking interval, applying the
	// most specific active pricing rule or falling back to the base rate.
	RateFor(ctx context.Context, courtID string, iv interval.Interval) (decimal.Decimal, error)

	// Policy never fails with ErrPolicyNotFound; courts without a configured
	// policy get the platform default.
	Policy(ctx context.Context, courtID string) (*CancellationPolicy, error)
	SetPolicy(ctx context.Context, courtID string, req PolicyRequest) (*CancellationPolicy, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func validDays(days []int) bool {
	if len(days) == 0 {
		return false
	}
	for _, d := range days {
		if d < 0 || d > 6 {
			return false
		}
	}
	return true
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Court, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}
	if !req.OpeningTime.Before(req.ClosingTime) {
		return nil, ErrInvalidHours
	}
	if !req.BaseHourlyRate.IsPositive() {
		return nil, ErrInvalidRate
	}

	c := &Court{
		Name:           strings.TrimSpace(req.Name),
		OwnerID:        req.OwnerID,
		CategoryID:     req.CategoryID,
		CourtType:      req.CourtType,
		Description:    req.Description,
		Address:        req.Address,
		City:           req.City,
		IsIndoor:       req.IsIndoor,
		Capacity:       req.Capacity,
		PhoneNumber:    req.PhoneNumber,
		BaseHourlyRate: req.BaseHourlyRate,
		OpeningTime:    req.OpeningTime,
		ClosingTime:    req.ClosingTime,
		IsActive:       true,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Court, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Court, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrNameRequired
		}
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.CategoryID != nil {
		c.CategoryID = req.CategoryID
	}
	if req.CourtType != nil {
		c.CourtType = *req.CourtType
	}
	if req.Description != nil {
		c.Description = *req.Description
	}
	if req.Address != nil {
		c.Address = *req.Address
	}
	if req.City != nil {
		c.City = *req.City
	}
	if req.IsIndoor != nil {
		c.IsIndoor = *req.IsIndoor
	}
	if req.Capacity != nil {
		c.Capacity = *req.Capacity
	}
	if req.PhoneNumber != nil {
		c.PhoneNumber = *req.PhoneNumber
	}
	if req.BaseHourlyRate != nil {
		if !req.BaseHourlyRate.IsPositive() {
			return nil, ErrInvalidRate
		}
		c.BaseHourlyRate = *req.BaseHourlyRate
	}
	if req.OpeningTime != nil {
		c.OpeningTime = *req.OpeningTime
	}
	if req.ClosingTime != nil {
		c.ClosingTime = *req.ClosingTime
	}
	if !c.OpeningTime.Before(c.ClosingTime) {
		return nil, ErrInvalidHours
	}
	if req.IsActive != nil {
		c.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	c.IsActive = false
	return s.repo.Update(ctx, c)
}

func (s *service) AddManager(ctx context.Context, courtID, userID string) error {
	if _, err := s.repo.GetByID(ctx, courtID); err != nil {
		return err
	}
	return s.repo.AddManager(ctx, courtID, userID)
}

func (s *service) RemoveManager(ctx context.Context, courtID, userID string) error {
	return s.repo.RemoveManager(ctx, courtID, userID)
}

func (s *service) BlockSlot(ctx context.Context, req BlockSlotRequest) (*BlockedSlot, error) {
	if _, err := interval.New(req.Date, req.StartTime, req.EndTime); err != nil {
		return nil, err
	}
	if _, err := s.repo.GetByID(ctx, req.CourtID); err != nil {
		return nil, err
	}

	slot := &BlockedSlot{
		CourtID:   req.CourtID,
		Date:      interval.DateOnly(req.Date),
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
		Notes:     req.Notes,
		BlockedBy: req.BlockedBy,
	}
	if err := s.repo.CreateBlockedSlot(ctx, slot); err != nil {
		return nil, err
	}
	return slot, nil
}

func (s *service) ListBlockedSlots(ctx context.Context, courtID string, date *time.Time) ([]*BlockedSlot, error) {
	return s.repo.ListBlockedSlots(ctx, courtID, date)
}

func (s *service) UnblockSlot(ctx context.Context, courtID, slotID string) error {
	slot, err := s.repo.GetBlockedSlot(ctx, slotID)
	if err != nil {
		return err
	}
	if slot.CourtID != courtID {
		return ErrSlotNotFound
	}
	return s.repo.DeleteBlockedSlot(ctx, slotID)
}

func (s *service) CreatePricingRule(ctx context.Context, courtID string, req PricingRuleRequest) (*PricingRule, error) {
	if !req.StartTime.Before(req.EndTime) {
		return nil, ErrInvalidHours
	}
	if !req.HourlyRate.IsPositive() {
		return nil, ErrInvalidRate
	}
	if !validDays(req.DaysOfWeek) {
		return nil, ErrInvalidDays
	}
	if _, err := s.repo.GetByID(ctx, courtID); err != nil {
		return nil, err
	}

	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	rule := &PricingRule{
		CourtID:     courtID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		DaysOfWeek:  req.DaysOfWeek,
		HourlyRate:  req.HourlyRate,
		Description: req.Description,
		IsActive:    active,
	}
	if err := s.repo.CreatePricingRule(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *service) ListPricingRules(ctx context.Context, courtID string) ([]*PricingRule, error) {
	return s.repo.ListPricingRules(ctx, courtID, false)
}

func (s *service) UpdatePricingRule(ctx context.Context, courtID, ruleID string, req PricingRuleRequest) (*PricingRule, error) {
	rule, err := s.repo.GetPricingRule(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if rule.CourtID != courtID {
		return nil, ErrRuleNotFound
	}

	if req.StartTime != 0 || req.EndTime != 0 {
		rule.StartTime = req.StartTime
		rule.EndTime = req.EndTime
	}
	if !rule.StartTime.Before(rule.EndTime) {
		return nil, ErrInvalidHours
	}
	if len(req.DaysOfWeek) > 0 {
		if !validDays(req.DaysOfWeek) {
			return nil, ErrInvalidDays
		}
		rule.DaysOfWeek = req.DaysOfWeek
	}
	if !req.HourlyRate.IsZero() {
		if !req.HourlyRate.IsPositive() {
			return nil, ErrInvalidRate
		}
		rule.HourlyRate = req.HourlyRate
	}
	if req.Description != "" {
		rule.Description = req.Description
	}
	if req.IsActive != nil {
		rule.IsActive = *req.IsActive
	}

	if err := s.repo.UpdatePricingRule(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *service) DeletePricingRule(ctx context.Context, courtID, ruleID string) error {
	rule, err := s.repo.GetPricingRule(ctx, ruleID)
	if err != nil {
		return err
	}
	if rule.CourtID != courtID {
		return ErrRuleNotFound
	}
	return s.repo.DeletePricingRule(ctx, ruleID)
}

func (s *service) RateFor(ctx context.Context, courtID string, iv interval.Interval) (decimal.Decimal, error) {
	c, err := s.repo.GetByID(ctx, courtID)
	if err != nil {
		return decimal.Zero, err
	}
	rules, err := s.repo.ListPricingRules(ctx, courtID, true)
	if err != nil {
		return decimal.Zero, err
	}
	return ResolveRate(c.BaseHourlyRate, rules, iv.Date, iv), nil
}

func (s *service) Policy(ctx context.Context, courtID string) (*CancellationPolicy, error) {
	p, err := s.repo.GetPolicy(ctx, courtID)
	if err != nil {
		if err == ErrPolicyNotFound {
			return DefaultPolicy(courtID), nil
		}
		return nil, err
	}
	return p, nil
}

func (s *service) SetPolicy(ctx context.Context, courtID string, req PolicyRequest) (*CancellationPolicy, error) {
	if _, err := s.repo.GetByID(ctx, courtID); err != nil {
		return nil, err
	}
	for _, pct := range []int{req.PartialRefundPercentage, req.NoShowPenaltyPercentage} {
		if pct < 0 || pct > 100 {
			return nil, ErrInvalidPercentage
		}
	}

	p := &CancellationPolicy{
		CourtID:                   courtID,
		CancellationDeadlineHours: req.CancellationDeadlineHours,
		FullRefundHours:           req.FullRefundHours,
		PartialRefundHours:        req.PartialRefundHours,
		PartialRefundPercentage:   req.PartialRefundPercentage,
		NoShowPenaltyPercentage:   req.NoShowPenaltyPercentage,
		PolicyText:                req.PolicyText,
	}
	if err := s.repo.UpsertPolicy(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}
