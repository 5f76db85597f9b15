package http

import (
	"time"

	"github.com/bookacourt/backend/internal/courtimage"
)

type ImageResponse struct {
	ID           string    `json:"id"`
	CourtID      string    `json:"court_id"`
	Filename     string    `json:"filename"`
	URL          string    `json:"url"`
	ThumbnailURL *string   `json:"thumbnail_url,omitempty"`
	ContentType  string    `json:"content_type"`
	Size         int64     `json:"size"`
	Caption      string    `json:"caption,omitempty"`
	IsPrimary    bool      `json:"is_primary"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewImageResponse(img *courtimage.Image) ImageResponse {
	resp := ImageResponse{
		ID:          img.ID,
		CourtID:     img.CourtID,
		Filename:    img.Filename,
		URL:         courtimage.URL(img.ID),
		ContentType: img.ContentType,
		Size:        img.Size,
		Caption:     img.Caption,
		IsPrimary:   img.IsPrimary,
		CreatedAt:   img.CreatedAt,
	}
	if img.ThumbnailPath != nil {
		u := courtimage.ThumbnailURL(img.ID)
		resp.ThumbnailURL = &u
	}
	return resp
}
