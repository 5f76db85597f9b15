package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrEmailAlreadyUsed   = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInactiveUser       = errors.New("user is inactive")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidRole        = errors.New("invalid user role")
	ErrInsufficientPoints = errors.New("insufficient loyalty points")
)

// Role is the account type, resolved once at authentication time and passed
// down as an explicit authorization context. The booking core itself is
// permission-agnostic.
type Role string

const (
	RolePlayer       Role = "PLAYER"
	RoleCourtOwner   Role = "COURT_OWNER"
	RoleCourtManager Role = "COURT_MANAGER"
	RoleSuperUser    Role = "SUPER_USER"
)

// ValidRoles lists every assignable role.
var ValidRoles = []Role{RolePlayer, RoleCourtOwner, RoleCourtManager, RoleSuperUser}

// User represents an account in the system.
type User struct {
	ID            string // UUID
	Email         string
	PasswordHash  string
	FullName      string
	Phone         *string
	Role          Role
	LoyaltyPoints int
	NoShowCount   int
	IsActive      bool
	CreatedAt     time.Time
	LastLoginAt   *time.Time
}

// IsStaff reports whether the user can administer courts and bookings.
func (u *User) IsStaff() bool {
	return u.Role == RoleCourtOwner || u.Role == RoleCourtManager || u.Role == RoleSuperUser
}

// IsSuperUser reports whether the user has platform-wide admin rights.
func (u *User) IsSuperUser() bool {
	return u.Role == RoleSuperUser
}

// Filter defines filter options for listing users.
type Filter struct {
	Email    string
	Role     string
	IsActive *bool // pointer to distinguish false from not set

	Page     int
	PageSize int
}
