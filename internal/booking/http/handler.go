package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bookacourt/backend/internal/auth"
	"github.com/bookacourt/backend/internal/booking"
	"github.com/bookacourt/backend/internal/court"
	"github.com/bookacourt/backend/internal/pkg/interval"
	"github.com/bookacourt/backend/internal/pkg/request"
	"github.com/bookacourt/backend/internal/pkg/response"
	"github.com/bookacourt/backend/internal/user"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

func actorFrom(c *gin.Context) booking.Actor {
	role := user.Role(auth.GetUserRole(c))
	staff := role == user.RoleCourtOwner || role == user.RoleCourtManager || role == user.RoleSuperUser
	return booking.Actor{ID: auth.GetUserID(c), Staff: staff}
}

func parseDate(c *gin.Context, s string) (time.Time, bool) {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, expected YYYY-MM-DD"})
		return time.Time{}, false
	}
	return d, true
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

func writeError(c *gin.Context, err error) {
	switch err {
	case court.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "court not found"})
	case user.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	default:
		response.Error(c, err)
	}
}

func (h *Handler) Reserve(c *gin.Context) {
	var body ReserveBody
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

	b, err := h.service.Reserve(c.Request.Context(), booking.ReserveRequest{
		CourtID:           body.CourtID,
		UserID:            auth.GetUserID(c),
		Date:              date,
		StartTime:         start,
		EndTime:           end,
		LoyaltyPointsUsed: body.LoyaltyPointsUsed,
		PaymentMethod:     booking.PaymentMethod(body.PaymentMethod),
		Notes:             body.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), actorFrom(c), uri.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) GetByReference(c *gin.Context) {
	b, err := h.service.GetByReference(c.Request.Context(), actorFrom(c), c.Param("ref"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	actor := actorFrom(c)
	filter := booking.Filter{
		UserID:   req.UserID,
		CourtID:  req.CourtID,
		Status:   booking.Status(req.Status),
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	// Players only ever see their own bookings.
	if !actor.Staff {
		filter.UserID = actor.ID
	}

	if req.DateFrom != "" {
		d, ok := parseDate(c, req.DateFrom)
		if !ok {
			return
		}
		filter.DateFrom = &d
	}
	if req.DateTo != "" {
		d, ok := parseDate(c, req.DateTo)
		if !ok {
			return
		}
		filter.DateTo = &d
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list bookings"})
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

func (h *Handler) Confirm(c *gin.Context) {
	b, err := h.service.Confirm(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Cancel(c *gin.Context) {
	var body CancelBody
	if err := c.ShouldBindJSON(&body); err != nil && err.Error() != "EOF" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	b, err := h.service.Cancel(c.Request.Context(), actorFrom(c), c.Param("id"), body.Reason)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) Complete(c *gin.Context) {
	b, err := h.service.Complete(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

func (h *Handler) MarkNoShow(c *gin.Context) {
	b, err := h.service.MarkNoShow(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// FreeSlots lists the court's open slots for a date.
func (h *Handler) FreeSlots(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	courtID := uri.ID

	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	date, ok := parseDate(c, req.Date)
	if !ok {
		return
	}

	slots, err := h.service.FreeSlots(c.Request.Context(), courtID, date, time.Duration(req.GranularityMins)*time.Minute)
	if err != nil {
		writeError(c, err)
		return
	}

	items := make([]SlotResponse, len(slots))
	for i, s := range slots {
		items[i] = NewSlotResponse(s)
	}
	c.JSON(http.StatusOK, gin.H{"court_id": courtID, "date": req.Date, "slots": items})
}

// IsFree answers a point query for a single interval.
func (h *Handler) IsFree(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}
	courtID := uri.ID

	var req IsFreeRequest
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

	free, err := h.service.IsFree(c.Request.Context(), courtID, iv)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, IsFreeResponse{CourtID: courtID, Free: free})
}
