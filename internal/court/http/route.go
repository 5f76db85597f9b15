package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers court routes. Browsing courts, pricing rules and
// policies is public; mutations require an authenticated staff user, with
// per-court ownership enforced in the handlers.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	group := g.Group("/courts")

	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.GET("/:id/quote", h.Quote)
	group.GET("/:id/pricing-rules", h.ListPricingRules)
	group.GET("/:id/cancellation-policy", h.GetPolicy)

	staff := group.Group("", authMiddleware, staffMiddleware)
	staff.POST("", h.Create)
	staff.PATCH("/:id", h.Update)
	staff.DELETE("/:id", h.Deactivate)

	staff.POST("/:id/managers", h.AddManager)
	staff.DELETE("/:id/managers/:userID", h.RemoveManager)

	staff.GET("/:id/blocked-slots", h.ListBlockedSlots)
	staff.POST("/:id/blocked-slots", h.BlockSlot)
	staff.DELETE("/:id/blocked-slots/:slotID", h.UnblockSlot)

	staff.POST("/:id/pricing-rules", h.CreatePricingRule)
	staff.PATCH("/:id/pricing-rules/:ruleID", h.UpdatePricingRule)
	staff.DELETE("/:id/pricing-rules/:ruleID", h.DeletePricingRule)

	staff.PUT("/:id/cancellation-policy", h.SetPolicy)
}
