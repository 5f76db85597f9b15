package http

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers court gallery routes. Viewing is public; managing
// the gallery requires a staff user who administers the court.
func RegisterRoutes(g *gin.RouterGroup, h *Handler, authMiddleware, staffMiddleware gin.HandlerFunc) {
	g.GET("/courts/:id/images", h.ListByCourt)
	g.GET("/court-images/:imageID", h.Download)
	g.GET("/court-images/:imageID/thumbnail", h.DownloadThumbnail)

	staff := g.Group("", authMiddleware, staffMiddleware)
	staff.POST("/courts/:id/images", h.Upload)
	staff.POST("/courts/:id/images/:imageID/primary", h.SetPrimary)
	staff.DELETE("/court-images/:imageID", h.Delete)
}
