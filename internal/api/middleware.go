package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bookacourt/backend/internal/auth"
	"github.com/bookacourt/backend/internal/user"
)

// ResolveRole loads the authenticated user and stores their role in the Gin
// context for downstream handlers. It MUST be used after auth.AuthRequired.
func ResolveRole(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := loadUser(c, userService)
		if !ok {
			return
		}
		c.Set("userRole", string(u.Role))
		c.Next()
	}
}

// RequireStaff ensures the authenticated user holds a staff role (court
// owner, court manager or super user). It MUST be used after auth.AuthRequired.
func RequireStaff(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := loadUser(c, userService)
		if !ok {
			return
		}
		if !u.IsStaff() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff access required"})
			return
		}
		c.Set("userRole", string(u.Role))
		c.Next()
	}
}

// RequireSuperUser ensures the authenticated user is a platform super user.
func RequireSuperUser(userService user.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, ok := loadUser(c, userService)
		if !ok {
			return
		}
		if !u.IsSuperUser() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "super user access required"})
			return
		}
		c.Set("userRole", string(u.Role))
		c.Next()
	}
}

func loadUser(c *gin.Context, userService user.Service) (*user.User, bool) {
	userID := auth.GetUserID(c)
	if userID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return nil, false
	}

	u, err := userService.GetByID(c.Request.Context(), userID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
		return nil, false
	}
	if !u.IsActive {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "account is deactivated"})
		return nil, false
	}
	return u, true
}
