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

type ClientRepository interface {
	// ResolveOrCreate upserts the client keyed by phone number: a returning
	// client keeps their record, with name and email refreshed from the
	// booking request. One statement, so concurrent bookings by the same
	// client cannot create duplicates.
	ResolveOrCreate(ctx context.Context, client *entity.Client) (*entity.Client, error)

	FindByID(ctx context.Context, id uuid.UUID) (*entity.Client, error)
	FindByPhone(ctx context.Context, phone string) (*entity.Client, error)
}

type clientRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewClientRepository(db database.PgxIface, log *zap.Logger) ClientRepository {
	return &clientRepository{
		db:  db,
		log: log.With(zap.String("repository", "client")),
	}
}

func (r *clientRepository) ResolveOrCreate(ctx context.Context, client *entity.Client) (*entity.Client, error) {
	query := `
		INSERT INTO clients (id, name, phone, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (phone)
		DO UPDATE SET name = $2, email = COALESCE($4, clients.email), updated_at = $6
		RETURNING id, name, phone, email, created_at, updated_at
	`

	var resolved entity.Client
	err := r.db.QueryRow(ctx, query,
		client.ID,
		client.Name,
		client.Phone,
		client.Email,
		client.CreatedAt,
		client.UpdatedAt,
	).Scan(
		&resolved.ID,
		&resolved.Name,
		&resolved.Phone,
		&resolved.Email,
		&resolved.CreatedAt,
		&resolved.UpdatedAt,
	)
	if err != nil {
		r.log.Error("Failed to resolve client",
			zap.Error(err),
			zap.String("phone", client.Phone),
		)
		return nil, fmt.Errorf("resolve client %s: %w", client.Phone, err)
	}

	return &resolved, nil
}

func (r *clientRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Client, error) {
	query := `
		SELECT id, name, phone, email, created_at, updated_at
		FROM clients
		WHERE id = $1
	`

	var client entity.Client
	err := r.db.QueryRow(ctx, query, id).Scan(
		&client.ID,
		&client.Name,
		&client.Phone,
		&client.Email,
		&client.CreatedAt,
		&client.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find client by ID",
			zap.Error(err),
			zap.String("client_id", id.String()),
		)
		return nil, fmt.Errorf("find client by ID %s: %w", id.String(), err)
	}

	return &client, nil
}

func (r *clientRepository) FindByPhone(ctx context.Context, phone string) (*entity.Client, error) {
	query := `
		SELECT id, name, phone, email, created_at, updated_at
		FROM clients
		WHERE phone = $1
	`

	var client entity.Client
	err := r.db.QueryRow(ctx, query, phone).Scan(
		&client.ID,
		&client.Name,
		&client.Phone,
		&client.Email,
		&client.CreatedAt,
		&client.UpdatedAt,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find client by phone",
			zap.Error(err),
			zap.String("phone", phone),
		)
		return nil, fmt.Errorf("find client by phone %s: %w", phone, err)
	}

	return &client, nil
}
