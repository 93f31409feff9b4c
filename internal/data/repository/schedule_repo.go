package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"salon-booking/internal/data/entity"
	"salon-booking/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// ScheduleRepository is the read surface the booking engine uses for weekly
// opening hours and rest periods, plus the admin write operations.
type ScheduleRepository interface {
	FindByWeekday(ctx context.Context, weekday time.Weekday) (*entity.DaySchedule, error)
	FindAll(ctx context.Context) ([]*entity.DaySchedule, error)
	Upsert(ctx context.Context, schedule *entity.DaySchedule) error

	FindRestPeriods(ctx context.Context, weekday time.Weekday) ([]*entity.RestPeriod, error)
	FindAllRestPeriods(ctx context.Context) ([]*entity.RestPeriod, error)
	CreateRestPeriod(ctx context.Context, rest *entity.RestPeriod) error
	DeleteRestPeriod(ctx context.Context, id uuid.UUID) error
}

type scheduleRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewScheduleRepository(db database.PgxIface, log *zap.Logger) ScheduleRepository {
	return &scheduleRepository{
		db:  db,
		log: log.With(zap.String("repository", "schedule")),
	}
}

func (r *scheduleRepository) FindByWeekday(ctx context.Context, weekday time.Weekday) (*entity.DaySchedule, error) {
	query := `
		SELECT id, day_of_week, is_open, open_time, close_time, updated_at
		FROM day_schedules
		WHERE day_of_week = $1
	`

	var schedule entity.DaySchedule
	err := r.db.QueryRow(ctx, query, int(weekday)).Scan(
		&schedule.ID,
		&schedule.DayOfWeek,
		&schedule.IsOpen,
		&schedule.OpenTime,
		&schedule.CloseTime,
		&schedule.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		// No configured schedule means closed all day.
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find day schedule",
			zap.Error(err),
			zap.Int("day_of_week", int(weekday)),
		)
		return nil, fmt.Errorf("find day schedule for weekday %d: %w", int(weekday), err)
	}

	return &schedule, nil
}

func (r *scheduleRepository) FindAll(ctx context.Context) ([]*entity.DaySchedule, error) {
	query := `
		SELECT id, day_of_week, is_open, open_time, close_time, updated_at
		FROM day_schedules
		ORDER BY day_of_week
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find day schedules", zap.Error(err))
		return nil, fmt.Errorf("find day schedules: %w", err)
	}
	defer rows.Close()

	var schedules []*entity.DaySchedule
	for rows.Next() {
		var schedule entity.DaySchedule
		err := rows.Scan(
			&schedule.ID,
			&schedule.DayOfWeek,
			&schedule.IsOpen,
			&schedule.OpenTime,
			&schedule.CloseTime,
			&schedule.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan day schedule row", zap.Error(err))
			return nil, fmt.Errorf("scan day schedule row: %w", err)
		}
		schedules = append(schedules, &schedule)
	}

	return schedules, rows.Err()
}

func (r *scheduleRepository) Upsert(ctx context.Context, schedule *entity.DaySchedule) error {
	query := `
		INSERT INTO day_schedules (id, day_of_week, is_open, open_time, close_time, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (day_of_week)
		DO UPDATE SET is_open = $3, open_time = $4, close_time = $5, updated_at = $6
	`

	_, err := r.db.Exec(ctx, query,
		schedule.ID,
		int(schedule.DayOfWeek),
		schedule.IsOpen,
		schedule.OpenTime,
		schedule.CloseTime,
		schedule.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to upsert day schedule",
			zap.Error(err),
			zap.Int("day_of_week", int(schedule.DayOfWeek)),
		)
		return fmt.Errorf("upsert day schedule for weekday %d: %w", int(schedule.DayOfWeek), err)
	}

	return nil
}

func (r *scheduleRepository) FindRestPeriods(ctx context.Context, weekday time.Weekday) ([]*entity.RestPeriod, error) {
	query := `
		SELECT id, day_of_week, start_time, end_time, created_at
		FROM rest_periods
		WHERE day_of_week = $1
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, int(weekday))
	if err != nil {
		r.log.Error("Failed to find rest periods",
			zap.Error(err),
			zap.Int("day_of_week", int(weekday)),
		)
		return nil, fmt.Errorf("find rest periods for weekday %d: %w", int(weekday), err)
	}
	defer rows.Close()

	return scanRestPeriods(rows)
}

func (r *scheduleRepository) FindAllRestPeriods(ctx context.Context) ([]*entity.RestPeriod, error) {
	query := `
		SELECT id, day_of_week, start_time, end_time, created_at
		FROM rest_periods
		ORDER BY day_of_week, start_time
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find rest periods", zap.Error(err))
		return nil, fmt.Errorf("find rest periods: %w", err)
	}
	defer rows.Close()

	return scanRestPeriods(rows)
}

func scanRestPeriods(rows pgx.Rows) ([]*entity.RestPeriod, error) {
	var rests []*entity.RestPeriod
	for rows.Next() {
		var rest entity.RestPeriod
		err := rows.Scan(
			&rest.ID,
			&rest.DayOfWeek,
			&rest.StartTime,
			&rest.EndTime,
			&rest.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan rest period row: %w", err)
		}
		rests = append(rests, &rest)
	}
	return rests, rows.Err()
}

func (r *scheduleRepository) CreateRestPeriod(ctx context.Context, rest *entity.RestPeriod) error {
	query := `
		INSERT INTO rest_periods (id, day_of_week, start_time, end_time, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.Exec(ctx, query,
		rest.ID,
		int(rest.DayOfWeek),
		rest.StartTime,
		rest.EndTime,
		rest.CreatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create rest period",
			zap.Error(err),
			zap.Int("day_of_week", int(rest.DayOfWeek)),
		)
		return fmt.Errorf("create rest period: %w", err)
	}

	return nil
}

func (r *scheduleRepository) DeleteRestPeriod(ctx context.Context, id uuid.UUID) error {
	query := `DELETE FROM rest_periods WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to delete rest period",
			zap.Error(err),
			zap.String("rest_period_id", id.String()),
		)
		return fmt.Errorf("delete rest period %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
