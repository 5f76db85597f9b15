package user

import (
	"context"
	"strings"
	"time"

	"github.com/bookacourt/backend/internal/auth"
)

type RegisterRequest struct {
	Email    string
	Password string
	FullName string
	Phone    *string
	Role     Role
}

type UpdateRequest struct {
	FullName *string
	Phone    *string
	IsActive *bool
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*User, error)
	Authenticate(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	List(ctx context.Context, filter Filter) ([]*User, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*User, error)

	// Loyalty point balance is owned here; the booking module calls these
	// as its identity-provider collaborator.
	DeductLoyaltyPoints(ctx context.Context, id string, points int) error
	AddLoyaltyPoints(ctx context.Context, id string, points int) error
	IncrementNoShowCount(ctx context.Context, id string) error
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher
}

func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:   repo,
		hasher: hasher,
	}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(req.Password) < 8 {
		return nil, ErrPasswordTooShort
	}

	role := req.Role
	if role == "" {
		role = RolePlayer
	}
	valid := false
	for _, r := range ValidRoles {
		if role == r {
			valid = true
			break
		}
	}
	if !valid {
		return nil, ErrInvalidRole
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Email:        email,
		PasswordHash: hash,
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        req.Phone,
		Role:         role,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.repo.GetByEmail(ctx, strings.TrimSpace(strings.ToLower(email)))
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !u.IsActive {
		return nil, ErrInactiveUser
	}

	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Best effort; a failed stamp must not block login.
	_ = s.repo.UpdateLastLogin(ctx, u.ID, time.Now().UTC())

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*User, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.FullName != nil {
		u.FullName = strings.TrimSpace(*req.FullName)
	}
	if req.Phone != nil {
		u.Phone = req.Phone
	}
	if req.IsActive != nil {
		u.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *service) DeductLoyaltyPoints(ctx context.Context, id string, points int) error {
	if points <= 0 {
		return nil
	}
	return s.repo.DeductLoyaltyPoints(ctx, id, points)
}

func (s *service) AddLoyaltyPoints(ctx context.Context, id string, points int) error {
	if points <= 0 {
		return nil
	}
	return s.repo.AddLoyaltyPoints(ctx, id, points)
}

func (s *service) IncrementNoShowCount(ctx context.Context, id string) error {
	return s.repo.IncrementNoShowCount(ctx, id)
}
