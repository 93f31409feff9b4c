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

type ReservationRepository interface {
	// FindOverlapping returns every non-cancelled reservation whose interval
	// overlaps [windowStart, windowEnd) on the calendar. Half-open test:
	// start < windowEnd AND end > windowStart.
	FindOverlapping(ctx context.Context, calendarID uuid.UUID, windowStart, windowEnd time.Time) ([]*entity.Reservation, error)

	// CreateWithCapacity inserts the reservation only if the overlapping
	// non-cancelled count is still below the calendar's concurrency limit.
	// The re-count and the insert run in one transaction holding a row lock
	// on the calendar, so concurrent requests for the same calendar are
	// serialized and cannot both observe free capacity. Returns
	// ErrCapacityExceeded when the window is full.
	CreateWithCapacity(ctx context.Context, reservation *entity.Reservation) error

	// Create inserts without a capacity check. Used by the finalizer, whose
	// slot was already claimed when the booking intent was created.
	Create(ctx context.Context, reservation *entity.Reservation) error

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error)

	// ConfirmPending transitions pending -> confirmed. Reports false when
	// the reservation was not pending (already handled by a prior call).
	ConfirmPending(ctx context.Context, id uuid.UUID) (bool, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error
	SetExternalEventID(ctx context.Context, id uuid.UUID, eventID string) error
}

type reservationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReservationRepository(db database.PgxIface, log *zap.Logger) ReservationRepository {
	return &reservationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reservation")),
	}
}

const reservationColumns = `id, code, calendar_id, service_id, client_id, staff_id,
	start_time, end_time, status, notes, external_event_id, created_at, updated_at`

func scanReservation(row pgx.Row) (*entity.Reservation, error) {
	var res entity.Reservation
	err := row.Scan(
		&res.ID,
		&res.Code,
		&res.CalendarID,
		&res.ServiceID,
		&res.ClientID,
		&res.StaffID,
		&res.StartTime,
		&res.EndTime,
		&res.Status,
		&res.Notes,
		&res.ExternalEventID,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *reservationRepository) FindOverlapping(ctx context.Context, calendarID uuid.UUID, windowStart, windowEnd time.Time) ([]*entity.Reservation, error) {
	query := `
		SELECT ` + reservationColumns + `
		FROM reservations
		WHERE calendar_id = $1
		  AND status <> 'cancelled'
		  AND start_time < $3
		  AND end_time > $2
		ORDER BY start_time
	`

	rows, err := r.db.Query(ctx, query, calendarID, windowStart, windowEnd)
	if err != nil {
		r.log.Error("Failed to find overlapping reservations",
			zap.Error(err),
			zap.String("calendar_id", calendarID.String()),
			zap.Time("window_start", windowStart),
			zap.Time("window_end", windowEnd),
		)
		return nil, fmt.Errorf("find overlapping reservations: %w", err)
	}
	defer rows.Close()

	var reservations []*entity.Reservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			r.log.Error("Failed to scan reservation row", zap.Error(err))
			return nil, fmt.Errorf("scan reservation row: %w", err)
		}
		reservations = append(reservations, res)
	}

	return reservations, rows.Err()
}

func (r *reservationRepository) CreateWithCapacity(ctx context.Context, reservation *entity.Reservation) (err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	// Lock the calendar row. This serializes concurrent reservation writes
	// per calendar until COMMIT, so the count below cannot go stale.
	var limit int
	err = tx.QueryRow(ctx,
		`SELECT concurrency_limit FROM booking_calendars WHERE id = $1 FOR UPDATE`,
		reservation.CalendarID,
	).Scan(&limit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("lock calendar row: %w", err)
	}
	if limit < 1 {
		limit = 1
	}

	var overlapping int
	err = tx.QueryRow(ctx,
		`SELECT COUNT(*)
		 FROM reservations
		 WHERE calendar_id = $1
		   AND status <> 'cancelled'
		   AND start_time < $3
		   AND end_time > $2`,
		reservation.CalendarID, reservation.StartTime, reservation.EndTime,
	).Scan(&overlapping)
	if err != nil {
		return fmt.Errorf("count overlapping reservations: %w", err)
	}

	if overlapping >= limit {
		return ErrCapacityExceeded
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO reservations (`+reservationColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		reservation.ID,
		reservation.Code,
		reservation.CalendarID,
		reservation.ServiceID,
		reservation.ClientID,
		reservation.StaffID,
		reservation.StartTime,
		reservation.EndTime,
		reservation.Status,
		reservation.Notes,
		reservation.ExternalEventID,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to insert reservation",
			zap.Error(err),
			zap.String("code", reservation.Code),
			zap.String("calendar_id", reservation.CalendarID.String()),
		)
		return fmt.Errorf("insert reservation %s: %w", reservation.Code, err)
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit reservation %s: %w", reservation.Code, err)
	}

	return nil
}

func (r *reservationRepository) Create(ctx context.Context, reservation *entity.Reservation) error {
	query := `
		INSERT INTO reservations (` + reservationColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.Exec(ctx, query,
		reservation.ID,
		reservation.Code,
		reservation.CalendarID,
		reservation.ServiceID,
		reservation.ClientID,
		reservation.StaffID,
		reservation.StartTime,
		reservation.EndTime,
		reservation.Status,
		reservation.Notes,
		reservation.ExternalEventID,
		reservation.CreatedAt,
		reservation.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to create reservation",
			zap.Error(err),
			zap.String("code", reservation.Code),
		)
		return fmt.Errorf("create reservation %s: %w", reservation.Code, err)
	}

	return nil
}

func (r *reservationRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Reservation, error) {
	query := `SELECT ` + reservationColumns + ` FROM reservations WHERE id = $1`

	res, err := scanReservation(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reservation by ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return nil, fmt.Errorf("find reservation by ID %s: %w", id.String(), err)
	}

	return res, nil
}

func (r *reservationRepository) ConfirmPending(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE reservations
		SET status = 'confirmed', updated_at = NOW()
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		r.log.Error("Failed to confirm reservation",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return false, fmt.Errorf("confirm reservation %s: %w", id.String(), err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *reservationRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.ReservationStatus) error {
	query := `UPDATE reservations SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, status)
	if err != nil {
		r.log.Error("Failed to update reservation status",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update reservation %s status to %s: %w", id.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *reservationRepository) SetExternalEventID(ctx context.Context, id uuid.UUID, eventID string) error {
	query := `UPDATE reservations SET external_event_id = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, id, eventID)
	if err != nil {
		r.log.Error("Failed to set external event ID",
			zap.Error(err),
			zap.String("reservation_id", id.String()),
		)
		return fmt.Errorf("set external event ID on %s: %w", id.String(), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}
