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

type StaffRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error)
	FindAllActive(ctx context.Context) ([]*entity.Staff, error)
}

type staffRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewStaffRepository(db database.PgxIface, log *zap.Logger) StaffRepository {
	return &staffRepository{
		db:  db,
		log: log.With(zap.String("repository", "staff")),
	}
}

func (r *staffRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Staff, error) {
	query := `
		SELECT id, name, is_active, created_at, updated_at
		FROM staff
		WHERE id = $1
	`

	var staff entity.Staff
	err := r.db.QueryRow(ctx, query, id).Scan(
		&staff.ID,
		&staff.Name,
		&staff.IsActive,
		&staff.CreatedAt,
		&staff.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find staff by ID",
			zap.Error(err),
			zap.String("staff_id", id.String()),
		)
		return nil, fmt.Errorf("find staff by ID %s: %w", id.String(), err)
	}

	return &staff, nil
}

func (r *staffRepository) FindAllActive(ctx context.Context) ([]*entity.Staff, error) {
	query := `
		SELECT id, name, is_active, created_at, updated_at
		FROM staff
		WHERE is_active
		ORDER BY name
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		r.log.Error("Failed to find staff", zap.Error(err))
		return nil, fmt.Errorf("find staff: %w", err)
	}
	defer rows.Close()

	var members []*entity.Staff
	for rows.Next() {
		var staff entity.Staff
		err := rows.Scan(
			&staff.ID,
			&staff.Name,
			&staff.IsActive,
			&staff.CreatedAt,
			&staff.UpdatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan staff row", zap.Error(err))
			return nil, fmt.Errorf("scan staff row: %w", err)
		}
		members = append(members, &staff)
	}

	return members, rows.Err()
}
