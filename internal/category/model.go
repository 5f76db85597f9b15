package category

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("court category not found")
	ErrNameRequired = errors.New("category name is required")
	ErrNameTaken    = errors.New("category name already exists")
)

// Category groups courts by sport (e.g., Tennis, Basketball, Badminton).
type Category struct {
	ID          string
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
}

// Filter defines parameters for listing categories.
type Filter struct {
	IsActive *bool
	Page     int
	PageSize int
}
