package courtimage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/bookacourt/backend/internal/pkg/storage"
)

const maxImageSize = 10 << 20 // 10 MiB

type UploadRequest struct {
	CourtID    string
	UploadedBy string
	Caption    string
	IsPrimary  bool
}

type Service interface {
	Upload(ctx context.Context, header *multipart.FileHeader, req UploadRequest) (*Image, error)
	GetByID(ctx context.Context, id string) (*Image, error)
	ListByCourt(ctx context.Context, courtID string) ([]*Image, error)
	SetPrimary(ctx context.Context, courtID, id string) error
	Delete(ctx context.Context, id string) error

	Download(ctx context.Context, id string) (io.ReadCloser, *Image, error)
	DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Image, error)
}

type service struct {
	repo    Repository
	storage storage.Storage
	imgProc *storage.ImageProcessor
}

func NewService(repo Repository, store storage.Storage) Service {
	return &service{
		repo:    repo,
		storage: store,
		imgProc: storage.NewImageProcessor(),
	}
}

func (s *service) Upload(ctx context.Context, header *multipart.FileHeader, req UploadRequest) (*Image, error) {
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return nil, ErrNotAnImage
	}
	if header.Size > maxImageSize {
		return nil, ErrImageTooLarge
	}

	src, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open uploaded image failed: %w", err)
	}
	defer src.Close()

	// Buffered so the original save and the thumbnail pass can both read it.
	fileBytes, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("read uploaded image failed: %w", err)
	}

	imageID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(header.Filename))
	shard := imageID[:2]
	storagePath := fmt.Sprintf("courts/%s/%s%s", shard, imageID, ext)

	if err := s.storage.Save(ctx, storagePath, bytes.NewReader(fileBytes)); err != nil {
		return nil, fmt.Errorf("save image failed: %w", err)
	}

	// Thumbnail failure is not fatal; the gallery falls back to the original.
	var thumbnailPath *string
	if thumbReader, err := s.imgProc.GenerateThumbnail(bytes.NewReader(fileBytes), 400, 300); err == nil {
		tPath := fmt.Sprintf("courts/%s/%s_thumb.jpg", shard, imageID)
		if err := s.storage.Save(ctx, tPath, thumbReader); err == nil {
			thumbnailPath = &tPath
		}
	}

	img := &Image{
		ID:            imageID,
		CourtID:       req.CourtID,
		UploadedBy:    req.UploadedBy,
		Filename:      header.Filename,
		StoragePath:   storagePath,
		ThumbnailPath: thumbnailPath,
		ContentType:   contentType,
		Size:          header.Size,
		Caption:       req.Caption,
	}

	if err := s.repo.Create(ctx, img); err != nil {
		_ = s.storage.Delete(ctx, storagePath)
		if thumbnailPath != nil {
			_ = s.storage.Delete(ctx, *thumbnailPath)
		}
		return nil, err
	}

	if req.IsPrimary {
		if err := s.repo.SetPrimary(ctx, req.CourtID, img.ID); err == nil {
			img.IsPrimary = true
		}
	}
	return img, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Image, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListByCourt(ctx context.Context, courtID string) ([]*Image, error) {
	return s.repo.ListByCourt(ctx, courtID)
}

func (s *service) SetPrimary(ctx context.Context, courtID, id string) error {
	return s.repo.SetPrimary(ctx, courtID, id)
}

func (s *service) Delete(ctx context.Context, id string) error {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// Best-effort storage cleanup after the row is gone.
	_ = s.storage.Delete(ctx, img.StoragePath)
	if img.ThumbnailPath != nil {
		_ = s.storage.Delete(ctx, *img.ThumbnailPath)
	}
	return nil
}

func (s *service) Download(ctx context.Context, id string) (io.ReadCloser, *Image, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.storage.Get(ctx, img.StoragePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open stored image failed: %w", err)
	}
	return rc, img, nil
}

func (s *service) DownloadThumbnail(ctx context.Context, id string) (io.ReadCloser, *Image, error) {
	img, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if img.ThumbnailPath == nil {
		return nil, nil, ErrNotFound
	}

	rc, err := s.storage.Get(ctx, *img.ThumbnailPath)
	if err != nil {
		return nil, nil, fmt.Errorf("open stored thumbnail failed: %w", err)
	}
	return rc, img, nil
}
