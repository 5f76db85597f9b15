package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookacourt/backend/internal/api"
	"github.com/bookacourt/backend/internal/auth"
	"github.com/bookacourt/backend/internal/booking"
	"github.com/bookacourt/backend/internal/category"
	"github.com/bookacourt/backend/internal/court"
	"github.com/bookacourt/backend/internal/courtimage"
	"github.com/bookacourt/backend/internal/notify"
	"github.com/bookacourt/backend/internal/pkg/storage"
	"github.com/bookacourt/backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	StoragePath  string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager

	UserService       user.Service
	CategoryService   category.Service
	CourtService      court.Service
	BookingService    booking.Service
	NotifyService     notify.Service
	CourtImageService courtimage.Service
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) (*Container, error) {
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	fileStore, err := storage.NewLocalStorage(cfg.StoragePath)
	if err != nil {
		return nil, err
	}

	// User module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Category module
	categoryRepo := category.NewPgxRepository(cfg.DBPool)
	categoryService := category.NewService(categoryRepo)

	// Court module (courts, blocked slots, pricing rules, policies)
	courtRepo := court.NewPgxRepository(cfg.DBPool)
	courtService := court.NewService(courtRepo)

	// Notification module
	notifyRepo := notify.NewPgxRepository(cfg.DBPool)
	notifyService := notify.NewService(notifyRepo)

	// Booking module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(bookingRepo, courtService, userService, notifyService.Dispatcher())

	// Court image module
	imageRepo := courtimage.NewPgxRepository(cfg.DBPool)
	imageService := courtimage.NewService(imageRepo, fileStore)

	router := api.NewRouter(api.Config{
		IsProduction:      cfg.IsProduction,
		ProdOrigins:       cfg.ProdOrigins,
		UserService:       userService,
		CategoryService:   categoryService,
		CourtService:      courtService,
		BookingService:    bookingService,
		NotifyService:     notifyService,
		CourtImageService: imageService,
		JWTManager:        jwtManager,
	})

	return &Container{
		Router:            router,
		JWTManager:        jwtManager,
		UserService:       userService,
		CategoryService:   categoryService,
		CourtService:      courtService,
		BookingService:    bookingService,
		NotifyService:     notifyService,
		CourtImageService: imageService,
	}, nil
}
