package tests

import (
	"bytes"
	"context"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/require"

	"github.com/bookacourt/backend/internal/app"
	"github.com/bookacourt/backend/internal/auth"
	"github.com/bookacourt/backend/internal/user"
)

var (
	testRouter    *gin.Engine
	testPool      *pgxpool.Pool
	testContainer *app.Container
	jwtManager    *auth.JWTManager
)

func TestMain(m *testing.M) {
	// Attempt to load .env from parent directory
	if err := godotenv.Load("../.env"); err != nil {
		log.Printf("No .env file found or failed to load: %v", err)
	}

	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		log.Fatalf("TEST_DB_DSN environment variable is not set")
	}

	ctx := context.Background()
	var err error
	testPool, err = pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("Unable to connect to database: %v\n", err)
	}

	testSecret := os.Getenv("TEST_JWT_SECRET")
	if testSecret == "" {
		log.Fatalf("TEST_JWT_SECRET environment variable is not set")
	}

	testContainer, err = app.NewContainer(app.Config{
		DBPool:      testPool,
		JWTSecret:   testSecret,
		JWTTTL:      30 * time.Minute,
		BcryptCost:  4, // Lower cost for testing purposes
		StoragePath: os.TempDir(),
	})
	if err != nil {
		log.Fatalf("Failed to initialize app container: %v", err)
	}

	testRouter = testContainer.Router
	jwtManager = testContainer.JWTManager

	gin.SetMode(gin.TestMode)

	exitCode := m.Run()

	testPool.Close()
	os.Exit(exitCode)
}

func clearTables() {
	ctx := context.Background()
	queries := []string{
		"TRUNCATE TABLE public.notifications CASCADE",
		"TRUNCATE TABLE public.bookings CASCADE",
		"TRUNCATE TABLE public.court_images CASCADE",
		"TRUNCATE TABLE public.court_blocked_slots CASCADE",
		"TRUNCATE TABLE public.dynamic_pricing CASCADE",
		"TRUNCATE TABLE public.cancellation_policies CASCADE",
		"TRUNCATE TABLE public.court_managers CASCADE",
		"TRUNCATE TABLE public.courts CASCADE",
		"TRUNCATE TABLE public.court_categories CASCADE",
		"TRUNCATE TABLE public.users CASCADE",
	}
	for _, q := range queries {
		_, err := testPool.Exec(ctx, q)
		if err != nil {
			log.Printf("Failed to clean table: %v", err)
		}
	}
}

func executeRequest(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}

	req, _ := http.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	testRouter.ServeHTTP(w, req)
	return w
}

func createTestUser(t *testing.T, email, password string, role user.Role) *user.User {
	hasher := auth.NewBcryptPasswordHasherWithCost(4)
	hash, err := hasher.Hash(password)
	require.NoError(t, err, "Failed to hash password")

	u := &user.User{
		Email:        email,
		PasswordHash: hash,
		FullName:     email,
		Role:         role,
		IsActive:     true,
	}

	repo := user.NewPgxRepository(testPool)
	err = repo.Create(context.Background(), u)
	require.NoError(t, err, "Failed to create test user in DB")

	savedUser, err := repo.GetByEmail(context.Background(), email)
	require.NoError(t, err, "Failed to fetch created user")

	return savedUser
}

func grantLoyaltyPoints(t *testing.T, userID string, points int) {
	repo := user.NewPgxRepository(testPool)
	require.NoError(t, repo.AddLoyaltyPoints(context.Background(), userID, points))
}

func generateToken(userID, email string) string {
	token, _ := jwtManager.GenerateAccessToken(userID, email)
	return token
}
