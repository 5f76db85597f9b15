package court

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bookacourt/backend/internal/pkg/interval"
)

type Repository interface {
	Create(ctx context.Context, c *Court) error
	GetByID(ctx context.Context, id string) (*Court, error)
	List(ctx context.Context, filter Filter) ([]*Court, int, error)
	Update(ctx context.Context, c *Court) error

	AddManager(ctx context.Context, courtID, userID string) error
	RemoveManager(ctx context.Context, courtID, userID string) error

	CreateBlockedSlot(ctx context.Context, s *BlockedSlot) error
	GetBlockedSlot(ctx context.Context, id string) (*BlockedSlot, error)
	ListBlockedSlots(ctx context.Context, courtID string, date *time.Time) ([]*BlockedSlot, error)
	DeleteBlockedSlot(ctx context.Context, id string) error

	CreatePricingRule(ctx context.Context, rule *PricingRule) error
	GetPricingRule(ctx context.Context, id string) (*PricingRule, error)
	ListPricingRules(ctx context.Context, courtID string, activeOnly bool) ([]*PricingRule, error)
	UpdatePricingRule(ctx context.Context, rule *PricingRule) error
	DeletePricingRule(ctx context.Context, id string) error

	// GetPolicy returns ErrPolicyNotFound when the court has no configured
	// policy; callers fall back to DefaultPolicy.
	GetPolicy(ctx context.Context, courtID string) (*CancellationPolicy, error)
	UpsertPolicy(ctx context.Context, p *CancellationPolicy) error
}

type pgxRepository struct {
	pool *pgxpool.Pool
}

func NewPgxRepository(pool *pgxpool.Pool) Repository {
	return &pgxRepository{pool: pool}
}

// encodeDays serializes a weekday set as a comma-separated string, the format
// the dynamic_pricing table stores ("0,1,2" with 0 = Monday).
func encodeDays(days []int) string {
	parts := make([]string, len(days))
	for i, d := range days {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, ",")
}

func decodeDays(s string) ([]int, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	days := make([]int, 0, len(parts))
	for _, p := range parts {
		d, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid days_of_week value %q: %w", s, err)
		}
		days = append(days, d)
	}
	return days, nil
}

const courtColumns = `id, name, owner_id, category_id, court_type, description, address, city,
	is_indoor, capacity, phone_number, base_hourly_rate,
	opening_time::text, closing_time::text, is_active, created_at, updated_at`

func scanCourt(row pgx.Row) (*Court, error) {
	var (
		c          Court
		rate       decimal.Decimal
		open, clos string
	)
	if err := row.Scan(
		&c.ID, &c.Name, &c.OwnerID, &c.CategoryID, &c.CourtType, &c.Description,
		&c.Address, &c.City, &c.IsIndoor, &c.Capacity, &c.PhoneNumber, &rate,
		&open, &clos, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scan court failed: %w", err)
	}
	c.BaseHourlyRate = rate

	var err error
	if c.OpeningTime, err = interval.ParseTimeOfDay(open); err != nil {
		return nil, fmt.Errorf("parse opening_time failed: %w", err)
	}
	if c.ClosingTime, err = interval.ParseTimeOfDay(clos); err != nil {
		return nil, fmt.Errorf("parse closing_time failed: %w", err)
	}
	return &c, nil
}

func (r *pgxRepository) Create(ctx context.Context, c *Court) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Insert("public.courts").
		Columns(
			"name", "owner_id", "category_id", "court_type", "description",
			"address", "city", "is_indoor", "capacity", "phone_number",
			"base_hourly_rate", "opening_time", "closing_time", "is_active",
		).
		Values(
			c.Name, c.OwnerID, c.CategoryID, c.CourtType, c.Description,
			c.Address, c.City, c.IsIndoor, c.Capacity, c.PhoneNumber,
			c.BaseHourlyRate, c.OpeningTime.String(), c.ClosingTime.String(), c.IsActive,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build create court query failed: %w", err)
	}

	if err := r.pool.QueryRow(ctx, query, args...).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrInvalidCategory
		}
		return fmt.Errorf("create court failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) GetByID(ctx context.Context, id string) (*Court, error) {
	query := `SELECT ` + courtColumns + ` FROM public.courts WHERE id = $1`

	c, err := scanCourt(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}
	if c.Managers, err = r.listManagers(ctx, c.ID); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *pgxRepository) listManagers(ctx context.Context, courtID string) ([]string, error) {
	const query = `SELECT user_id FROM public.court_managers WHERE court_id = $1 ORDER BY added_at`

	rows, err := r.pool.Query(ctx, query, courtID)
	if err != nil {
		return nil, fmt.Errorf("list court managers failed: %w", err)
	}
	defer rows.Close()

	var managers []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan manager failed: %w", err)
		}
		managers = append(managers, id)
	}
	return managers, nil
}

func (r *pgxRepository) List(ctx context.Context, filter Filter) ([]*Court, int, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "name", "owner_id", "category_id", "court_type", "description",
		"address", "city", "is_indoor", "capacity", "phone_number", "base_hourly_rate",
		"opening_time::text", "closing_time::text", "is_active", "created_at", "updated_at",
		"count(*) OVER() AS total_count",
	).From("public.courts")

	if filter.City != "" {
		query = query.Where(squirrel.Eq{"city": filter.City})
	}
	if filter.CategoryID != "" {
		query = query.Where(squirrel.Eq{"category_id": filter.CategoryID})
	}
	if filter.CourtType != "" {
		query = query.Where(squirrel.Eq{"court_type": filter.CourtType})
	}
	if filter.OwnerID != "" {
		query = query.Where(squirrel.Eq{"owner_id": filter.OwnerID})
	}
	if filter.IsActive != nil {
		query = query.Where(squirrel.Eq{"is_active": *filter.IsActive})
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 20
	}
	offset := (filter.Page - 1) * filter.PageSize

	query = query.OrderBy("name ASC").
		Limit(uint64(filter.PageSize)).Offset(uint64(offset))

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list courts query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list courts failed: %w", err)
	}
	defer rows.Close()

	var courts []*Court
	var total int

	for rows.Next() {
		var (
			c          Court
			open, clos string
		)
		if err := rows.Scan(
			&c.ID, &c.Name, &c.OwnerID, &c.CategoryID, &c.CourtType, &c.Description,
			&c.Address, &c.City, &c.IsIndoor, &c.Capacity, &c.PhoneNumber, &c.BaseHourlyRate,
			&open, &clos, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
			&total,
		); err != nil {
			return nil, 0, fmt.Errorf("scan court failed: %w", err)
		}
		if c.OpeningTime, err = interval.ParseTimeOfDay(open); err != nil {
			return nil, 0, fmt.Errorf("parse opening_time failed: %w", err)
		}
		if c.ClosingTime, err = interval.ParseTimeOfDay(clos); err != nil {
			return nil, 0, fmt.Errorf("parse closing_time failed: %w", err)
		}
		courts = append(courts, &c)
	}

	return courts, total, nil
}

func (r *pgxRepository) Update(ctx context.Context, c *Court) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.courts").
		Set("name", c.Name).
		Set("category_id", c.CategoryID).
		Set("court_type", c.CourtType).
		Set("description", c.Description).
		Set("address", c.Address).
		Set("city", c.City).
		Set("is_indoor", c.IsIndoor).
		Set("capacity", c.Capacity).
		Set("phone_number", c.PhoneNumber).
		Set("base_hourly_rate", c.BaseHourlyRate).
		Set("opening_time", c.OpeningTime.String()).
		Set("closing_time", c.ClosingTime.String()).
		Set("is_active", c.IsActive).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": c.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update court query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrInvalidCategory
		}
		return fmt.Errorf("update court failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *pgxRepository) AddManager(ctx context.Context, courtID, userID string) error {
	const query = `INSERT INTO public.court_managers (court_id, user_id) VALUES ($1, $2)`

	if _, err := r.pool.Exec(ctx, query, courtID, userID); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) {
			switch e.Code {
			case pgerrcode.UniqueViolation:
				return ErrAlreadyManager
			case pgerrcode.ForeignKeyViolation:
				return ErrNotFound
			}
		}
		return fmt.Errorf("add court manager failed: %w", err)
	}
	return nil
}

func (r *pgxRepository) RemoveManager(ctx context.Context, courtID, userID string) error {
	const query = `DELETE FROM public.court_managers WHERE court_id = $1 AND user_id = $2`

	ct, err := r.pool.Exec(ctx, query, courtID, userID)
	if err != nil {
		return fmt.Errorf("remove court manager failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrManagerNotFound
	}
	return nil
}

func (r *pgxRepository) CreateBlockedSlot(ctx context.Context, s *BlockedSlot) error {
	const query = `
		INSERT INTO public.court_blocked_slots (court_id, date, start_time, end_time, reason, notes, blocked_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		s.CourtID,
		interval.DateOnly(s.Date),
		s.StartTime.String(),
		s.EndTime.String(),
		s.Reason,
		s.Notes,
		s.BlockedBy,
	).Scan(&s.ID, &s.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrNotFound
		}
		return fmt.Errorf("create blocked slot failed: %w", err)
	}
	return nil
}

const blockedSlotColumns = `id, court_id, date, start_time::text, end_time::text, reason, notes, blocked_by, created_at`

func scanBlockedSlot(row pgx.Row) (*BlockedSlot, error) {
	var (
		s          BlockedSlot
		start, end string
	)
	if err := row.Scan(
		&s.ID, &s.CourtID, &s.Date, &start, &end, &s.Reason, &s.Notes, &s.BlockedBy, &s.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, fmt.Errorf("scan blocked slot failed: %w", err)
	}

	var err error
	if s.StartTime, err = interval.ParseTimeOfDay(start); err != nil {
		return nil, fmt.Errorf("parse start_time failed: %w", err)
	}
	if s.EndTime, err = interval.ParseTimeOfDay(end); err != nil {
		return nil, fmt.Errorf("parse end_time failed: %w", err)
	}
	return &s, nil
}

func (r *pgxRepository) GetBlockedSlot(ctx context.Context, id string) (*BlockedSlot, error) {
	query := `SELECT ` + blockedSlotColumns + ` FROM public.court_blocked_slots WHERE id = $1`
	return scanBlockedSlot(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) ListBlockedSlots(ctx context.Context, courtID string, date *time.Time) ([]*BlockedSlot, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "court_id", "date", "start_time::text", "end_time::text",
		"reason", "notes", "blocked_by", "created_at",
	).From("public.court_blocked_slots").
		Where(squirrel.Eq{"court_id": courtID}).
		OrderBy("date ASC", "start_time ASC")

	if date != nil {
		query = query.Where(squirrel.Eq{"date": interval.DateOnly(*date)})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list blocked slots query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list blocked slots failed: %w", err)
	}
	defer rows.Close()

	var slots []*BlockedSlot
	for rows.Next() {
		s, err := scanBlockedSlot(rows)
		if err != nil {
			return nil, err
		}
		slots = append(slots, s)
	}
	return slots, nil
}

func (r *pgxRepository) DeleteBlockedSlot(ctx context.Context, id string) error {
	const query = `DELETE FROM public.court_blocked_slots WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete blocked slot failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func (r *pgxRepository) CreatePricingRule(ctx context.Context, rule *PricingRule) error {
	const query = `
		INSERT INTO public.dynamic_pricing (court_id, start_time, end_time, days_of_week, hourly_rate, description, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		rule.CourtID,
		rule.StartTime.String(),
		rule.EndTime.String(),
		encodeDays(rule.DaysOfWeek),
		rule.HourlyRate,
		rule.Description,
		rule.IsActive,
	).Scan(&rule.ID, &rule.CreatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrNotFound
		}
		return fmt.Errorf("create pricing rule failed: %w", err)
	}
	return nil
}

const pricingRuleColumns = `id, court_id, start_time::text, end_time::text, days_of_week, hourly_rate, description, is_active, created_at`

func scanPricingRule(row pgx.Row) (*PricingRule, error) {
	var (
		rule             PricingRule
		start, end, days string
	)
	if err := row.Scan(
		&rule.ID, &rule.CourtID, &start, &end, &days,
		&rule.HourlyRate, &rule.Description, &rule.IsActive, &rule.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrRuleNotFound
		}
		return nil, fmt.Errorf("scan pricing rule failed: %w", err)
	}

	var err error
	if rule.StartTime, err = interval.ParseTimeOfDay(start); err != nil {
		return nil, fmt.Errorf("parse start_time failed: %w", err)
	}
	if rule.EndTime, err = interval.ParseTimeOfDay(end); err != nil {
		return nil, fmt.Errorf("parse end_time failed: %w", err)
	}
	if rule.DaysOfWeek, err = decodeDays(days); err != nil {
		return nil, err
	}
	return &rule, nil
}

func (r *pgxRepository) GetPricingRule(ctx context.Context, id string) (*PricingRule, error) {
	query := `SELECT ` + pricingRuleColumns + ` FROM public.dynamic_pricing WHERE id = $1`
	return scanPricingRule(r.pool.QueryRow(ctx, query, id))
}

func (r *pgxRepository) ListPricingRules(ctx context.Context, courtID string, activeOnly bool) ([]*PricingRule, error) {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query := psql.Select(
		"id", "court_id", "start_time::text", "end_time::text", "days_of_week",
		"hourly_rate", "description", "is_active", "created_at",
	).From("public.dynamic_pricing").
		Where(squirrel.Eq{"court_id": courtID}).
		OrderBy("created_at ASC")

	if activeOnly {
		query = query.Where(squirrel.Eq{"is_active": true})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list pricing rules query failed: %w", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list pricing rules failed: %w", err)
	}
	defer rows.Close()

	var rules []*PricingRule
	for rows.Next() {
		rule, err := scanPricingRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

func (r *pgxRepository) UpdatePricingRule(ctx context.Context, rule *PricingRule) error {
	psql := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	query, args, err := psql.Update("public.dynamic_pricing").
		Set("start_time", rule.StartTime.String()).
		Set("end_time", rule.EndTime.String()).
		Set("days_of_week", encodeDays(rule.DaysOfWeek)).
		Set("hourly_rate", rule.HourlyRate).
		Set("description", rule.Description).
		Set("is_active", rule.IsActive).
		Where(squirrel.Eq{"id": rule.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build update pricing rule query failed: %w", err)
	}

	ct, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("update pricing rule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrRuleNotFound
	}
	return nil
}

func (r *pgxRepository) DeletePricingRule(ctx context.Context, id string) error {
	const query = `DELETE FROM public.dynamic_pricing WHERE id = $1`

	ct, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete pricing rule failed: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrRuleNotFound
	}
	return nil
}

func (r *pgxRepository) GetPolicy(ctx context.Context, courtID string) (*CancellationPolicy, error) {
	const query = `
		SELECT court_id, cancellation_deadline_hours, full_refund_hours, partial_refund_hours,
		       partial_refund_percentage, no_show_penalty_percentage, policy_text, updated_at
		FROM public.cancellation_policies
		WHERE court_id = $1
	`

	var p CancellationPolicy
	if err := r.pool.QueryRow(ctx, query, courtID).Scan(
		&p.CourtID, &p.CancellationDeadlineHours, &p.FullRefundHours, &p.PartialRefundHours,
		&p.PartialRefundPercentage, &p.NoShowPenaltyPercentage, &p.PolicyText, &p.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPolicyNotFound
		}
		return nil, fmt.Errorf("get cancellation policy failed: %w", err)
	}
	return &p, nil
}

func (r *pgxRepository) UpsertPolicy(ctx context.Context, p *CancellationPolicy) error {
	const query = `
		INSERT INTO public.cancellation_policies
			(court_id, cancellation_deadline_hours, full_refund_hours, partial_refund_hours,
			 partial_refund_percentage, no_show_penalty_percentage, policy_text, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		ON CONFLICT (court_id) DO UPDATE SET
			cancellation_deadline_hours = EXCLUDED.cancellation_deadline_hours,
			full_refund_hours = EXCLUDED.full_refund_hours,
			partial_refund_hours = EXCLUDED.partial_refund_hours,
			partial_refund_percentage = EXCLUDED.partial_refund_percentage,
			no_show_penalty_percentage = EXCLUDED.no_show_penalty_percentage,
			policy_text = EXCLUDED.policy_text,
			updated_at = now()
		RETURNING updated_at
	`

	if err := r.pool.QueryRow(
		ctx,
		query,
		p.CourtID,
		p.CancellationDeadlineHours,
		p.FullRefundHours,
		p.PartialRefundHours,
		p.PartialRefundPercentage,
		p.NoShowPenaltyPercentage,
		p.PolicyText,
	).Scan(&p.UpdatedAt); err != nil {
		var e *pgconn.PgError
		if errors.As(err, &e) && e.Code == pgerrcode.ForeignKeyViolation {
			return ErrNotFound
		}
		return fmt.Errorf("upsert cancellation policy failed: %w", err)
	}
	return nil
}
