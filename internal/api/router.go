package api

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bookacourt/backend/internal/auth"
	"github.com/bookacourt/backend/internal/booking"
	bookingHttp "github.com/bookacourt/backend/internal/booking/http"
	"github.com/bookacourt/backend/internal/category"
	categoryHttp "github.com/bookacourt/backend/internal/category/http"
	"github.com/bookacourt/backend/internal/court"
	courtHttp "github.com/bookacourt/backend/internal/court/http"
	"github.com/bookacourt/backend/internal/courtimage"
	courtimageHttp "github.com/bookacourt/backend/internal/courtimage/http"
	"github.com/bookacourt/backend/internal/notify"
	notifyHttp "github.com/bookacourt/backend/internal/notify/http"
	"github.com/bookacourt/backend/internal/user"
	userHttp "github.com/bookacourt/backend/internal/user/http"
)

// Config carries the services and settings the router needs.
type Config struct {
	IsProduction bool
	ProdOrigins  string

	UserService       user.Service
	CategoryService   category.Service
	CourtService      court.Service
	BookingService    booking.Service
	NotifyService     notify.Service
	CourtImageService courtimage.Service

	JWTManager *auth.JWTManager
}

// NewRouter assembles middleware (CORS, logging, auth) and registers every
// module's routes under /v1.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	corsConfig := cors.DefaultConfig()
	if cfg.IsProduction && cfg.ProdOrigins != "" {
		corsConfig.AllowOrigins = strings.Split(cfg.ProdOrigins, ",")
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authMiddleware := auth.AuthRequired(cfg.JWTManager)
	roleMiddleware := ResolveRole(cfg.UserService)
	staffMiddleware := RequireStaff(cfg.UserService)
	superUserMiddleware := RequireSuperUser(cfg.UserService)

	authHandler := NewAuthHandler(cfg.UserService, cfg.JWTManager)
	userHandler := userHttp.NewHandler(cfg.UserService)
	categoryHandler := categoryHttp.NewHandler(cfg.CategoryService)
	courtHandler := courtHttp.NewHandler(cfg.CourtService)
	bookingHandler := bookingHttp.NewHandler(cfg.BookingService)
	notifyHandler := notifyHttp.NewHandler(cfg.NotifyService)
	courtImageHandler := courtimageHttp.NewHandler(cfg.CourtImageService, cfg.CourtService)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", authHandler.Register)
		v1.POST("/auth/login", authHandler.Login)

		userHttp.RegisterRoutes(v1, userHandler, authMiddleware, superUserMiddleware)
		categoryHttp.RegisterRoutes(v1, categoryHandler, authMiddleware, superUserMiddleware)
		courtHttp.RegisterRoutes(v1, courtHandler, authMiddleware, staffMiddleware)
		bookingHttp.RegisterRoutes(v1, bookingHandler, authMiddleware, roleMiddleware, staffMiddleware)
		notifyHttp.RegisterRoutes(v1, notifyHandler, authMiddleware)
		courtimageHttp.RegisterRoutes(v1, courtImageHandler, authMiddleware, staffMiddleware)
	}

	return r
}
