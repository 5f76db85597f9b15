package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers court-category routes. Browsing is public; only
// platform admins manage the taxonomy.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/categories")

	group.GET("", h.List)
	group.GET("/:id", h.Get)

	group.POST("", authMiddleware, adminMiddleware, h.Create)
	group.PATCH("/:id", authMiddleware, adminMiddleware, h.Update)
}
