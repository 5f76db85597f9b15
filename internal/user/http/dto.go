package http

import (
	"time"

	"github.com/bookacourt/backend/internal/user"
)

// UserTag is the minimal user reference embedded in other modules' responses.
type UserTag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type UserResponse struct {
	ID            string     `json:"id"`
	Email         string     `json:"email"`
	FullName      string     `json:"full_name"`
	Phone         *string    `json:"phone,omitempty"`
	Role          string     `json:"role"`
	LoyaltyPoints int        `json:"loyalty_points"`
	NoShowCount   int        `json:"no_show_count"`
	IsActive      bool       `json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	LastLoginAt   *time.Time `json:"last_login_at,omitempty"`
}

func NewUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		FullName:      u.FullName,
		Phone:         u.Phone,
		Role:          string(u.Role),
		LoyaltyPoints: u.LoyaltyPoints,
		NoShowCount:   u.NoShowCount,
		IsActive:      u.IsActive,
		CreatedAt:     u.CreatedAt,
		LastLoginAt:   u.LastLoginAt,
	}
}

type UpdateProfileBody struct {
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}

type ListUsersRequest struct {
	Email    string `form:"email" binding:"omitempty,email"`
	Role     string `form:"role" binding:"omitempty,oneof=PLAYER COURT_OWNER COURT_MANAGER SUPER_USER"`
	IsActive *bool  `form:"is_active"`
	Page     int    `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}
