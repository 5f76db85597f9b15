package http

import (
	"github.com/gin-gonic/gin"
)

func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, adminMiddleware gin.HandlerFunc) {
	group := g.Group("/users")
	group.Use(authMiddleware)
	{
		group.GET("/me", h.Me)
		group.PATCH("/me", h.UpdateMe)
		group.GET("", adminMiddleware, h.List)
	}
}
