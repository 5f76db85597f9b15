package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/bookacourt/backend/internal/auth"
	"github.com/bookacourt/backend/internal/court"
	"github.com/bookacourt/backend/internal/pkg/interval"
	"github.com/bookacourt/backend/internal/pkg/response"
	"github.com/bookacourt/backend/internal/user"
)

type Handler struct {
	service court.Service
}

func NewHandler(service court.Service) *Handler {
	return &Handler{service: service}
}

// loadAdministered fetches the court and enforces that the caller owns or
// manages it. Super users pass regardless.
func (h *Handler) loadAdministered(c *gin.Context, courtID string) (*court.Court, bool) {
	crt, err := h.service.GetByID(c.Request.Context(), courtID)
	if err != nil {
		if err == court.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "court not found"})
		} else {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get court"})
		}
		return nil, false
	}

	if auth.GetUserRole(c) != string(user.RoleSuperUser) && !crt.IsAdministeredBy(auth.GetUserID(c)) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not an owner or manager of this court"})
		return nil, false
	}
	return crt, true
}

func parseTimes(c *gin.Context, startStr, endStr string) (start, end interval.TimeOfDay, ok bool) {
	var err error
	if start, err = interval.ParseTimeOfDay(startStr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid start_time, expected HH:MM"})
		return 0, 0, false
	}
	if end, err = interval.ParseTimeOfDay(endStr); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid end_time, expected HH:MM"})
		return 0, 0, false
	}
	return start, end, true
}

func parseDate(c *gin.Context, s string) (time.Time, bool) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return d, true
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateCourtBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	open, clos, ok := parseTimes(c, body.OpeningTime, body.ClosingTime)
	if !ok {
		return
	}

	crt, err := h.service.Create(c.Request.Context(), court.CreateRequest{
		Name:           body.Name,
		OwnerID:        auth.GetUserID(c),
		CategoryID:     body.CategoryID,
		CourtType:      body.CourtType,
		Description:    body.Description,
		Address:        body.Address,
		City:           body.City,
		IsIndoor:       body.IsIndoor,
		Capacity:       body.Capacity,
		PhoneNumber:    body.PhoneNumber,
		BaseHourlyRate: body.BaseHourlyRate,
		OpeningTime:    open,
		ClosingTime:    clos,
	})
	if err != nil {
		switch err {
		case court.ErrNameRequired, court.ErrInvalidHours, court.ErrInvalidRate, court.ErrInvalidCategory:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create court"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewCourtResponse(crt))
}

func (h *Handler) Get(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	crt, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == court.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "court not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get court"})
		return
	}

	c.JSON(http.StatusOK, NewCourtResponse(crt))
}

func (h *Handler) List(c *gin.Context) {
	var req ListCourtsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	courts, total, err := h.service.List(c.Request.Context(), court.Filter{
		City:       req.City,
		CategoryID: req.CategoryID,
		CourtType:  req.CourtType,
		OwnerID:    req.OwnerID,
		IsActive:   req.IsActive,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list courts"})
		return
	}

	items := make([]CourtResponse, len(courts))
	for i, crt := range courts {
		items[i] = NewCourtResponse(crt)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Update(c *gin.Context) {
	if _, ok := h.loadAdministered(c, c.Param("id")); !ok {
		return
	}

	var body UpdateCourtBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := court.UpdateRequest{
		Name:           body.Name,
		CategoryID:     body.CategoryID,
		CourtType:      body.CourtType,
		Description:    body.Description,
		Address:        body.Address,
		City:           body.City,
		IsIndoor:       body.IsIndoor,
		Capacity:       body.Capacity,
		PhoneNumber:    body.PhoneNumber,
		BaseHourlyRate: body.BaseHourlyRate,
		IsActive:       body.IsActive,
	}
	if body.OpeningTime != nil {
		t, err := interval.ParseTimeOfDay(*body.OpeningTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid opening_time, expected HH:MM"})
			return
		}
		req.OpeningTime = &t
	}
	if body.ClosingTime != nil {
		t, err := interval.ParseTimeOfDay(*body.ClosingTime)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid closing_time, expected HH:MM"})
			return
		}
		req.ClosingTime = &t
	}

	crt, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		switch err {
		case court.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "court not found"})
		case court.ErrNameRequired, court.ErrInvalidHours, court.ErrInvalidRate, court.ErrInvalidCategory:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update court"})
		}
		return
	}

	c.JSON(http.StatusOK, NewCourtResponse(crt))
}

func (h *Handler) Deactivate(c *gin.Context) {
	if _, ok := h.loadAdministered(c, c.Param("id")); !ok {
		return
	}

	if err := h.service.Deactivate(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to deactivate court"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) AddManager(c *gin.Context) {
	crt, ok := h.loadAdministered(c, c.Param("id"))
	if !ok {
		return
	}

	var body ManagerBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := h.service.AddManager(c.Request.Context(), crt.ID, body.UserID); err != nil {
		switch err {
		case court.ErrAlreadyManager:
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case court.ErrNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add manager"})
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) RemoveManager(c *gin.Context) {
	crt, ok := h.loadAdministered(c, c.Param("id"))
	if !ok {
		return
	}

	if err := h.service.RemoveManager(c.Request.Context(), crt.ID, c.Param("userID")); err != nil {
		if err == court.ErrManagerNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove manager"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) BlockSlot(c *gin.Context) {
	crt, ok := h.loadAdministered(c, c.Param("id"))
	if !ok {
		return
	}

	var body BlockSlotBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, ok := parseDate(c, body.Date)
	if !ok {
		return
	}
	start, end, ok := parseTimes(c, body.StartTime, body.EndTime)
	if !ok {
		return
	}

	blockedBy := auth.GetUserID(c)
	slot, err := h.service.BlockSlot(c.Request.Context(), court.BlockSlotRequest{
		CourtID:   crt.ID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
		Reason:    body.Reason,
		Notes:     body.Notes,
		BlockedBy: &blockedBy,
	})
	if err != nil {
		if err == interval.ErrInvalidRange {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to block slot"})
		return
	}

	c.JSON(http.StatusCreated, NewBlockedSlotResponse(slot))
}

func (h *Handler) ListBlockedSlots(c *gin.Context) {
	crt, ok := h.loadAdministered(c, c.Param("id"))
	if !ok {
		return
	}

	var date *time.Time
	if s := c.Query("date"); s != "" {
		d, ok := parseDate(c, s)
		if !ok {
			return
		}
		date = &d
	}

	slots, err := h.service.ListBlockedSlots(c.Request.Context(), crt.ID, date)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list blocked slots"})
		return
	}

	items := make([]BlockedSlotResponse, len(slots))
	for i, s := range slots {
		items[i] = NewBlockedSlotResponse(s)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) UnblockSlot(c *gin.Context) {
	crt, ok := h.loadAdministered(c, c.Param("id"))
	if !ok {
		return
	}

	if err := h.service.UnblockSlot(c.Request.Context(), crt.ID, c.Param("slotID")); err != nil {
		if err == court.ErrSlotNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to unblock slot"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CreatePricingRule(c *gin.Context) {
	crt, ok := h.loadAdministered(c, c.Param("id"))
	if !ok {
		return
	}

	var body PricingRuleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	start, end, ok := parseTimes(c, body.StartTime, body.EndTime)
	if !ok {
		return
	}

	rule, err := h.service.CreatePricingRule(c.Request.Context(), crt.ID, court.PricingRuleRequest{
		StartTime:   start,
		EndTime:     end,
		DaysOfWeek:  body.DaysOfWeek,
		HourlyRate:  body.HourlyRate,
		Description: body.Description,
		IsActive:    body.IsActive,
	})
	if err != nil {
		switch err {
		case court.ErrInvalidHours, court.ErrInvalidRate, court.ErrInvalidDays:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create pricing rule"})
		}
		return
	}

	c.JSON(http.StatusCreated, NewPricingRuleResponse(rule))
}

func (h *Handler) ListPricingRules(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	rules, err := h.service.ListPricingRules(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list pricing rules"})
		return
	}

	items := make([]PricingRuleResponse, len(rules))
	for i, r := range rules {
		items[i] = NewPricingRuleResponse(r)
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *Handler) UpdatePricingRule(c *gin.Context) {
	crt, ok := h.loadAdministered(c, c.Param("id"))
	if !ok {
		return
	}

	var body UpdatePricingRuleBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := court.PricingRuleRequest{
		DaysOfWeek:  body.DaysOfWeek,
		HourlyRate:  body.HourlyRate,
		Description: body.Description,
		IsActive:    body.IsActive,
	}
	if body.StartTime != "" || body.EndTime != "" {
		start, end, ok := parseTimes(c, body.StartTime, body.EndTime)
		if !ok {
			return
		}
		req.StartTime = start
		req.EndTime = end
	}

	rule, err := h.service.UpdatePricingRule(c.Request.Context(), crt.ID, c.Param("ruleID"), req)
	if err != nil {
		switch err {
		case court.ErrRuleNotFound:
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case court.ErrInvalidHours, court.ErrInvalidRate, court.ErrInvalidDays:
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update pricing rule"})
		}
		return
	}

	c.JSON(http.StatusOK, NewPricingRuleResponse(rule))
}

func (h *Handler) DeletePricingRule(c *gin.Context) {
	crt, ok := h.loadAdministered(c, c.Param("id"))
	if !ok {
		return
	}

	if err := h.service.DeletePricingRule(c.Request.Context(), crt.ID, c.Param("ruleID")); err != nil {
		if err == court.ErrRuleNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete pricing rule"})
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetPolicy(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	p, err := h.service.Policy(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get cancellation policy"})
		return
	}
	c.JSON(http.StatusOK, NewPolicyResponse(p))
}

func (h *Handler) SetPolicy(c *gin.Context) {
	crt, ok := h.loadAdministered(c, c.Param("id"))
	if !ok {
		return
	}

	var body PolicyBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	p, err := h.service.SetPolicy(c.Request.Context(), crt.ID, court.PolicyRequest{
		CancellationDeadlineHours: body.CancellationDeadlineHours,
		FullRefundHours:           body.FullRefundHours,
		PartialRefundHours:        body.PartialRefundHours,
		PartialRefundPercentage:   body.PartialRefundPercentage,
		NoShowPenaltyPercentage:   body.NoShowPenaltyPercentage,
		PolicyText:                body.PolicyText,
	})
	if err != nil {
		if err == court.ErrInvalidPercentage {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to set cancellation policy"})
		return
	}
	c.JSON(http.StatusOK, NewPolicyResponse(p))
}

// Quote prices an interval without reserving it.
func (h *Handler) Quote(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req QuoteRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	date, ok := parseDate(c, req.Date)
	if !ok {
		return
	}
	start, end, ok := parseTimes(c, req.StartTime, req.EndTime)
	if !ok {
		return
	}

	iv, err := interval.New(date, start, end)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rate, err := h.service.RateFor(c.Request.Context(), id, iv)
	if err != nil {
		if err == court.ErrNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "court not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to resolve rate"})
		return
	}

	c.JSON(http.StatusOK, QuoteResponse{
		CourtID:    id,
		Date:       req.Date,
		StartTime:  start.String(),
		EndTime:    end.String(),
		HourlyRate: rate,
		Amount:     court.AmountFor(rate, iv),
	})
}
