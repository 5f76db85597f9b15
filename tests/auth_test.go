package tests

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookacourt/backend/internal/user"
)

func TestAuthFlow(t *testing.T) {
	clearTables()

	t.Run("register and login", func(t *testing.T) {
		w := executeRequest("POST", "/v1/auth/register", map[string]any{
			"email":     "newplayer@auth.com",
			"password":  "pass1234",
			"full_name": "New Player",
		}, "")
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var reg struct {
			User struct {
				ID   string `json:"id"`
				Role string `json:"role"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
		assert.Equal(t, "PLAYER", reg.User.Role)

		w = executeRequest("POST", "/v1/auth/login", map[string]any{
			"email":    "newplayer@auth.com",
			"password": "pass1234",
		}, "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var login struct {
			AccessToken string `json:"access_token"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
		require.NotEmpty(t, login.AccessToken)

		wMe := executeRequest("GET", "/v1/users/me", nil, login.AccessToken)
		assert.Equal(t, http.StatusOK, wMe.Code)
	})

	t.Run("duplicate email is rejected", func(t *testing.T) {
		w := executeRequest("POST", "/v1/auth/register", map[string]any{
			"email":     "newplayer@auth.com",
			"password":  "pass1234",
			"full_name": "Imposter",
		}, "")
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		w := executeRequest("POST", "/v1/auth/login", map[string]any{
			"email":    "newplayer@auth.com",
			"password": "wrongpass",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("deactivated account cannot login", func(t *testing.T) {
		u := createTestUser(t, "gone@auth.com", "pass1234", user.RolePlayer)
		repo := user.NewPgxRepository(testPool)
		u.IsActive = false
		require.NoError(t, repo.Update(context.Background(), u))

		w := executeRequest("POST", "/v1/auth/login", map[string]any{
			"email":    "gone@auth.com",
			"password": "pass1234",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("protected route without token", func(t *testing.T) {
		w := executeRequest("GET", "/v1/users/me", nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
