package repository

import (
	"context"
	"errors"
	"fmt"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type CalendarRepository interface {
	Create(ctx context.Context, calendar *entity.BookingCalendar) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingCalendar, error)
	FindBySlug(ctx context.Context, slug string) (*entity.BookingCalendar, error)
	FindAll(ctx context.Context) ([]*entity.BookingCalendar, error)
	Update(ctx context.Context, calendar *entity.BookingCalendar) error

	// Enabled-services join
	HasService(ctx context.Context, calendarID, serviceID uuid.UUID) (bool, error)
	FindServices(ctx context.Context, calendarID uuid.UUID) ([]*entity.Service, error)
	SetServices(ctx context.Context, calendarID uuid.UUID, serviceIDs []uuid.UUID) error
}

type calendarRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewCalendarRepository(db database.PgxIface, log *zap.Logger) CalendarRepository {
	return &calendarRepository{
		db:  db,
		log: log.With(zap.String("repository", "calendar")),
	}
}

func (r *calendarRepository) Create(ctx context.Context, calendar *entity.BookingCalendar) error {
	query := `
		INSERT INTO booking_calendars (id, slug, name, concurrency_limit, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(ctx, query,
		calendar.ID,
		calendar.Slug,
		calendar.Name,
		calendar.EffectiveLimit(),
		calendar.IsActive,
		calendar.CreatedAt,
		calendar.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create calendar",
			zap.Error(err),
			zap.String("slug", calendar.Slug),
		)
		return fmt.Errorf("create calendar %s: %w", calendar.Slug, err)
	}

	return nil
}

func (r *calendarRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.BookingCalendar, error) {
	query := `
		SELECT id, slug, name, concurrency_limit, is_active, created_at, updated_at
		FROM booking_calendars
		WHERE id = $1
	`
	return r.scanOne(ctx, query, id.String(), id)
}

func (r *calendarRepository) FindBySlug(ctx context.Context, slug string) (*entity.BookingCalendar, error) {
	query := `
		SELECT id, slug, name, concurrency_limit, is_active, created_at, updated_at
		FROM booking_calendars
		WHERE slug = $1
	`
	return r.scanOne(ctx, query, slug, slug)
}

func (r *calendarRepository) scanOne(ctx context.Context, query, ref string, arg any) (*entity.BookingCalendar, error) {
	var calendar entity.BookingCalendar
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&calendar.ID,
		&calendar.Slug,
		&calendar.Name,
		&calendar.ConcurrencyLimit,
		&calendar.IsActive,
		&calendar.CreatedAt,
		&calendar.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find calendar", zap.Error(err), zap.String("ref", ref))
		return nil, fmt.Errorf("find calendar %s: %w", ref, err)
	}

	return &calendar, nil
}

func (r *calendarRepository) FindAll(ctx context.Context) ([]*entity.BookingCalendar, error) {
	query := `
		SELECT id, slug, name, concurrency_limit, is_active, created_at, updated_at
		FROM booking_calendars
		ORDER BY slug
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find calendars", zap.Error(err))
		return nil, fmt.Errorf("find calendars: %w", err)
	}
	defer rows.Close()

	var calendars []*entity.BookingCalendar
	for rows.Next() {
		var calendar entity.BookingCalendar
		err := rows.Scan(
			&calendar.ID,
			&calendar.Slug,
			&calendar.Name,
			&calendar.ConcurrencyLimit,
			&calendar.IsActive,
			&calendar.CreatedAt,
			&calendar.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan calendar row", zap.Error(err))
			return nil, fmt.Errorf("scan calendar row: %w", err)
		}
		calendars = append(calendars, &calendar)
	}

	return calendars, rows.Err()
}

func (r *calendarRepository) Update(ctx context.Context, calendar *entity.BookingCalendar) error {
	query := `
		UPDATE booking_calendars
		SET slug = $2, name = $3, concurrency_limit = $4, is_active = $5, updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.Exec(ctx, query,
		calendar.ID,
		calendar.Slug,
		calendar.Name,
		calendar.EffectiveLimit(),
		calendar.IsActive,
		calendar.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to update calendar",
			zap.Error(err),
			zap.String("calendar_id", calendar.ID.String()),
		)
		return fmt.Errorf("update calendar %s: %w", calendar.ID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *calendarRepository) HasService(ctx context.Context, calendarID, serviceID uuid.UUID) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM calendar_services
		WHERE calendar_id = $1 AND service_id = $2
	`

	var count int
	err := r.db.QueryRow(ctx, query, calendarID, serviceID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to check calendar service",
			zap.Error(err),
			zap.String("calendar_id", calendarID.String()),
			zap.String("service_id", serviceID.String()),
		)
		return false, fmt.Errorf("check calendar service: %w", err)
	}

	return count > 0, nil
}

func (r *calendarRepository) FindServices(ctx context.Context, calendarID uuid.UUID) ([]*entity.Service, error) {
	query := `
		SELECT s.id, s.name, s.duration_minutes, s.price, s.is_active, s.created_at, s.updated_at
		FROM services s
		JOIN calendar_services cs ON cs.service_id = s.id
		WHERE cs.calendar_id = $1 AND s.is_active
		ORDER BY s.name
	`

	rows, err := r.db.Query(ctx, query, calendarID)
	if err != nil {
		r.log.Error("Failed to find calendar services",
			zap.Error(err),
			zap.String("calendar_id", calendarID.String()),
		)
		return nil, fmt.Errorf("find calendar services: %w", err)
	}
	defer rows.Close()

	var services []*entity.Service
	for rows.Next() {
		var service entity.Service
		err := rows.Scan(
			&service.ID,
			&service.Name,
			&service.DurationMinutes,
			&service.Price,
			&service.IsActive,
			&service.CreatedAt,
			&service.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan service row", zap.Error(err))
			return nil, fmt.Errorf("scan service row: %w", err)
		}
		services = append(services, &service)
	}

	return services, rows.Err()
}

func (r *calendarRepository) SetServices(ctx context.Context, calendarID uuid.UUID, serviceIDs []uuid.UUID) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if _, err = tx.Exec(ctx, `DELETE FROM calendar_services WHERE calendar_id = $1`, calendarID); err != nil {
		return fmt.Errorf("clear calendar services: %w", err)
	}

	for _, serviceID := range serviceIDs {
		_, err = tx.Exec(ctx,
			`INSERT INTO calendar_services (calendar_id, service_id) VALUES ($1, $2)`,
			calendarID, serviceID,
		)
		if err != nil {
			return fmt.Errorf("add calendar service %s: %w", serviceID.String(), err)
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit calendar services: %w", err)
	}

	return nil
}
