package http

import (
	"time"

	"github.com/bookacourt/backend/internal/category"
)

type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewResponse(cat *category.Category) CategoryResponse {
	return CategoryResponse{
		ID:          cat.ID,
		Name:        cat.Name,
		Description: cat.Description,
		IsActive:    cat.IsActive,
		CreatedAt:   cat.CreatedAt,
	}
}

type CreateBody struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Description string `json:"description"`
}

type UpdateBody struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"is_active"`
}

type ListCategoriesRequest struct {
	IsActive *bool `form:"is_active"`
	Page     int   `form:"page,default=1" binding:"omitempty,min=1"`
	PageSize int   `form:"page_size,default=20" binding:"omitempty,min=1,max=100"`
}
