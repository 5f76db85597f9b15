package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookacourt/backend/internal/pkg/interval"
)

type Repository interface {
	// Reserve inserts the booking after re-checking for overlap under a
	// per (court, date) advisory lock. Returns ErrSlotConflict when the
	// slot is taken or the lock cannot be acquired in time.
	Reserve(ctx context.Context, b *Booking) error

	GetByID(ctx context.Context, id string) (*Booking, error)
	GetByReference(ctx context.Context, ref string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)

	// ListOccupied returns the intervals held by live bookings and
	// administrative blocks for a court on a date.
	ListOccupied(ctx context.Context, courtID string, date time.Time) ([]interval.Interval, error)

	// UpdateFrom persists the booking's mutable fields, guarded on the
	// status the caller read. Returns ErrInvalidStatus when another writer
	// transitioned the booking first.
	UpdateFrom(ctx context.Context, b *Booking, prev Status) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// lockKey serializes writers per court and date. hashtextextended folds the
// composite key into the bigint the advisory lock API requires.
const acquireLockQuery = `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`

const overlapExistsQuery = `
	SELECT EXISTS(
		SELECT 1 FROM public.bookings
		WHERE court_id = $1 AND date = $2
		  AND status IN ('PENDING', 'CONFIRMED')
		  AND start_time < $4::time AND $3::time < end_time
	) OR EXISTS(
		SELECT 1 FROM public.court_blocked_slots
		WHERE court_id = $1 AND date = $2
		  AND start_time < $4::time AND $3::time < end_time
	)
`

func (r *pgxRepository) Reserve(ctx context.Context, b *Booking) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin reserve tx failed: %w", err)
	}
	defer tx.Rollback(ctx)

	// Bounded wait; a stuck writer must not queue requests indefinitely.
	if _, err := tx.Exec(ctx, `SET LOCAL lock_timeout = '3s'`); err != nil {
		return fmt.Errorf("set lock_timeout failed: %w", err)
	}

	key := b.CourtID + ":" + b.Date.Format(time.DateOnly)
	if _, err := tx.Exec(ctx, acquireLockQuery, key); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.LockNotAvailable {
			return ErrSlotConflict
		}
		return fmt.Errorf("acquire slot lock failed: %w", err)
	}

	var taken bool
	if err := tx.QueryRow(
		ctx,
		overlapExistsQuery,
		b.CourtID,
		interval.DateOnly(b.Date),
		b.StartTime.String(),
		b.EndTime.String(),
	).Scan(&taken); err != nil {
		return fmt.Errorf("overlap check failed: %w", err)
	}
	if taken {
		return ErrSlotConflict
	}

	const insertQuery = `
		INSERT INTO public.bookings
			(reference, court_id, user_id, date, start_time, end_time, status,
			 hourly_rate, total_amount, discount_amount, final_amount,
			 loyalty_points_used, payment_method, payment_status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`
	if err := tx.QueryRow(
		ctx,
		insertQuery,
		b.Reference,
		b.CourtID,
		b.UserID,
		interval.DateOnly(b.Date),
		b.StartTime.String(),
		b.EndTime.String(),
		b.Status,
		b.HourlyRate,
		b.TotalAmount,
		b.DiscountAmount,
		b.FinalAmount,
		b.LoyaltyPointsUsed,
		b.PaymentMethod,
		b.PaymentStatus,
		b.Notes,
	).Scan(&b.ID, &b.CreatedAt, &b.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) {
			switch e.Code {
			case pgerrcode.UniqueViolation, pgerrcode.ExclusionViolation:
				return ErrSlotConflict
			}
		}
		return fmt.Errorf("insert booking failed: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reserve tx failed: %w", err)
	}
	return nil
}

const bookingColumns = `id, reference, court_id, user_id, date, start_time::text, end_time::text, status,
	hourly_rate, total_amount, discount_amount, final_amount, loyalty_points_used,
	payment_method, payment_status, notes, cancelled_at, cancel_reason, refund_amount,
	created_at, updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	var (
		b            Booking
		start, end   string
		cancelReason *string
	)
	if err := row.Scan(
		&b.ID, &b.Reference, &b.CourtID, &b.UserID, &b.Date, &start, &end, &b.Status,
		&b.HourlyRate, &b.TotalAmount, &b.DiscountAmount, &b.FinalAmount, &b.LoyaltyPointsUsed,
		&b.PaymentMethod, &b.PaymentStatus, &b.Notes, &b.CancelledAt, &cancelReason, &b.RefundAmount,
		&b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan booking failed: %w", err)
	}

	if cancelReason != nil {
		b.CancelReason = *cancelReason
	}

	var err error
	if b.StartTime, err = interval.ParseTimeOfDay(start); err != nil {
		return nil, fmt.Errorf("parse start_time failed: %w", err)
	}
	if b.EndTime, err = interval.ParseTimeOfDay(end); err != nil {
		return nil, fmt.Errorf("parse end_time failed: %w", err)
	}
	return &b, nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM public.bookings WHERE id = $1`
	return scanBooking(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) GetByReference(ctx context.Context, ref string) (*Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM public.bookings WHERE reference = $1`
	return scanBooking(r.pool.QueryRow(ctx, query, ref))
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "reference", "court_id", "user_id", "date", "start_time::text", "end_time::text", "status",
		"hourly_rate", "total_amount", "discount_amount", "final_amount", "loyalty_points_used",
		"payment_method", "payment_status", "notes", "cancelled_at", "cancel_reason", "refund_amount",
		"created_at", "updated_at",
		"count(*) OVER() AS total_count",
	).From("public.bookings")

	if filter.UserID != "" {
		query = query.Where(squirrel.Eq{"user_id": filter.UserID})
	}
	if filter.CourtID != "" {
		query = query.Where(squirrel.Eq{"court_id": filter.CourtID})
	}
	if filter.Status != "" {
		query = query.Where(squirrel.Eq{"status": filter.Status})
	}
	if filter.DateFrom != nil {
		query = query.Where(squirrel.GtOrEq{"date": interval.DateOnly(*filter.DateFrom)})
	}
	if filter.DateTo != nil {
		query = query.Where(squirrel.LtOrEq{"date": interval.DateOnly(*filter.DateTo)})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("date DESC", "start_time DESC").
		Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list bookings query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list bookings failed: %w", err)
	}
	defer rows.Close()

	var bookings []*Booking
	var total int

	for rows.Next() {
		var (
			b            Booking
			start, end   string
			cancelReason *string
		)
		if err := rows.Scan(
			&b.ID, &b.Reference, &b.CourtID, &b.UserID, &b.Date, &start, &end, &b.Status,
			&b.HourlyRate, &b.TotalAmount, &b.DiscountAmount, &b.FinalAmount, &b.LoyaltyPointsUsed,
			&b.PaymentMethod, &b.PaymentStatus, &b.Notes, &b.CancelledAt, &cancelReason, &b.RefundAmount,
			&b.CreatedAt, &b.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan booking failed: %w", err)
		}
		if cancelReason != nil {
			b.CancelReason = *cancelReason
		}
		if b.StartTime, err = interval.ParseTimeOfDay(start); err != nil {
			return nil, 0, fmt.Errorf("parse start_time failed: %w", err)
		}
		if b.EndTime, err = interval.ParseTimeOfDay(end); err != nil {
			return nil, 0, fmt.Errorf("parse end_time failed: %w", err)
		}
		bookings = append(bookings, &b)
	}

	return bookings, total, nil
}

// ListOccupied unions live booking slots with administrative blocks. The
// caller treats both identically when answering availability questions.
func (r *pgxRepository) ListOccupied(ctx context.Context, courtID string, date time.Time) ([]interval.Interval, error) {
	const query = `
		SELECT start_time::text, end_time::text FROM public.bookings
		WHERE court_id = $1 AND date = $2 AND status IN ('PENDING', 'CONFIRMED')
		UNION ALL
		SELECT start_time::text, end_time::text FROM public.court_blocked_slots
		WHERE court_id = $1 AND date = $2
	`

	day := interval.DateOnly(date)
	rows, err := r.pool.Query(ctx, query, courtID, day)
	if err != nil {
		return nil, fmt.Errorf("list occupied intervals failed: %w", err)
	}
	defer rows.Close()

	var occupied []interval.Interval
	for rows.Next() {
		var start, end string
		if err := rows.Scan(&start, &end); err != nil {
			return nil, fmt.Errorf("scan occupied interval failed: %w", err)
		}

		iv := interval.Interval{Date: day}
		if iv.Start, err = interval.ParseTimeOfDay(start); err != nil {
			return nil, fmt.Errorf("parse start_time failed: %w", err)
		}
		if iv.End, err = interval.ParseTimeOfDay(end); err != nil {
			return nil, fmt.Errorf("parse end_time failed: %w", err)
		}
		occupied = append(occupied, iv)
	}
	return occupied, nil
}

func (r *pgxRepository) UpdateFrom(ctx context.Context, b *Booking, prev Status) error {
	const query = `
		UPDATE public.bookings
		SET status = $1, payment_status = $2, notes = $3,
		    cancelled_at = $4, cancel_reason = $5, refund_amount = $6,
		    updated_at = now()
		WHERE id = $7 AND status = $8
		RETURNING updated_at
	`

	var reason *string
	if b.CancelReason != "" {
		reason = &b.CancelReason
	}

	if err := r.pool.QueryRow(
		ctx,
		query,
		b.Status,
		b.PaymentStatus,
		b.Notes,
		b.CancelledAt,
		reason,
		b.RefundAmount,
		b.ID,
		prev,
	).Scan(&b.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// The row exists but moved to another status, or is gone.
			if _, gerr := r.GetByID(ctx, b.ID); gerr != nil {
				return gerr
			}
			return ErrInvalidStatus
		}
		return fmt.Errorf("update booking failed: %w", err)
	}
	return nil
}
