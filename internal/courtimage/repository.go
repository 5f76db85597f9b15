package courtimage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repository interface {
	Create(ctx context.Context, img *Image) error
	GetByID(ctx context.Context, id string) (*Image, error)
	ListByCourt(ctx context.Context, courtID string) ([]*Image, error)
	// SetPrimary marks one image primary and demotes its siblings atomically.
	SetPrimary(ctx context.Context, courtID, id string) error
	Delete(ctx context.Context, id string) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

const imageColumns = `id, court_id, uploaded_by, filename, storage_path, thumbnail_path,
	content_type, size, caption, is_primary, created_at`

func scanImage(row pgx.Row) (*Image, error) {
	var img Image
	if err := row.Scan(
		&img.ID, &img.CourtID, &img.UploadedBy, &img.Filename, &img.StoragePath, &img.ThumbnailPath,
		&img.ContentType, &img.Size, &img.Caption, &img.IsPrimary, &img.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan court image failed: %w", err)
	}
	return &img, nil
}

func (r *pgxRepository) Create(ctx context.Context, img *Image) error {
	const query = `
		INSERT INTO public.court_images
			(id, court_id, uploaded_by, filename, storage_path, thumbnail_path,
			 content_type, size, caption, is_primary)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING created_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		img.ID,
		img.CourtID,
		img.UploadedBy,
		img.Filename,
		img.StoragePath,
		img.ThumbnailPath,
		img.ContentType,
		img.Size,
		img.Caption,
		img.IsPrimary,
	).Scan(&img.CreatedAt); err != nil {
		return fmt.Errorf("create court image failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Image, error) {
	query := `SELECT ` + imageColumns + ` FROM public.court_images WHERE id = $1`
	return scanImage(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) ListByCourt(ctx context.Context, courtID string) ([]*Image, error) {
	query := `SELECT ` + imageColumns + ` FROM public.court_images WHERE court_id = $1 ORDER BY is_primary DESC, created_at ASC`

	rows, err := r.pool.Query(ctx, query, courtID)
	if err != nil {
		return nil, fmt.Errorf("list court images failed: %w", err)
	}
	defer rows.Close()

	var images []*Image
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		images = append(images, img)
	}
	return images, nil
}

func (r *pgxRepository) SetPrimary(ctx context.Context, courtID, id string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin set primary tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`UPDATE public.court_images SET is_primary = false WHERE court_id = $1 AND is_primary`,
		courtID,
	); err != nil {
		return fmt.Errorf("demote primary image failed: %w", err)
	}

	ct, err := tx.Exec(ctx,
		`UPDATE public.court_images SET is_primary = true WHERE id = $1 AND court_id = $2`,
		id, courtID,
	)
	if err != nil {
		return fmt.Errorf("promote primary image failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit set primary tx failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM public.court_images WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete court image failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
