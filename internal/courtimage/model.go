package courtimage

import (
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("court image not found")
	ErrNotAnImage   = errors.New("uploaded file is not an image")
	ErrImageTooLarge = errors.New("image exceeds the size limit")
)

// Image is a photo in a court's gallery. At most one image per court is
// primary; it is the one listings show.
type Image struct {
	ID            string
	CourtID       string
	UploadedBy    string
	Filename      string
	StoragePath   string
	ThumbnailPath *string
	ContentType   string
	Size          int64
	Caption       string
	IsPrimary     bool
	CreatedAt     time.Time
}

// URL returns the public download path for the full-size image.
func URL(id string) string {
	return "/court-images/" + id
}

// ThumbnailURL returns the public download path for the thumbnail.
func ThumbnailURL(id string) string {
	return "/court-images/" + id + "/thumbnail"
}
