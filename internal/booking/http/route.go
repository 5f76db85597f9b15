package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers booking routes. Availability queries are public;
// everything touching a booking requires authentication, with per-booking
// ownership enforced in the service layer.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, roleMiddleware, staffMiddleware gin.HandlerFunc) {
	g.GET("/courts/:id/availability", h.FreeSlots)
	g.GET("/courts/:id/is-free", h.IsFree)

	group := g.Group("/bookings", authMiddleware, roleMiddleware)

	group.POST("", h.Reserve)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.GET("/reference/:ref", h.GetByReference)

	group.POST("/:id/confirm", h.Confirm)
	group.POST("/:id/cancel", h.Cancel)

	group.POST("/:id/complete", staffMiddleware, h.Complete)
	group.POST("/:id/no-show", staffMiddleware, h.MarkNoShow)
}
