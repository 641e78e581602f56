package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/getaroom/rental-service/internal/domain"
)

// ServiceProviderRepository defines persistence access for provider accounts.
type ServiceProviderRepository interface {
	Create(ctx context.Context, provider *domain.ServiceProvider) error
	Update(ctx context.Context, provider *domain.ServiceProvider) error
	GetByID(ctx context.Context, id string) (*domain.ServiceProvider, error)
	GetByEmail(ctx context.Context, email string) (*domain.ServiceProvider, error)
}

type serviceProviderRepository struct {
	pool *pgxpool.Pool
}

// NewServiceProviderRepository returns a Postgres-backed implementation.
func NewServiceProviderRepository(pool *pgxpool.Pool) ServiceProviderRepository {
	return &serviceProviderRepository{pool: pool}
}

const providerColumns = `id, name, email, password_hash, services, average_rating, feedback, created_at, updated_at`

func (r *serviceProviderRepository) Create(ctx context.Context, provider *domain.ServiceProvider) error {
	const query = `
        INSERT INTO service_providers (name, email, password_hash, services, average_rating, feedback)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		provider.Name,
		provider.Email,
		provider.PasswordHash,
		provider.Services,
		provider.AverageRating,
		provider.Feedback,
	).Scan(&provider.ID, &provider.CreatedAt, &provider.UpdatedAt)
}

func (r *serviceProviderRepository) Update(ctx context.Context, provider *domain.ServiceProvider) error {
	const query = `
        UPDATE service_providers SET name=$1, email=$2, password_hash=$3, services=$4,
            average_rating=$5, feedback=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		provider.Name,
		provider.Email,
		provider.PasswordHash,
		provider.Services,
		provider.AverageRating,
		provider.Feedback,
		provider.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *serviceProviderRepository) GetByID(ctx context.Context, id string) (*domain.ServiceProvider, error) {
	return r.fetchSingle(ctx, `SELECT `+providerColumns+` FROM service_providers WHERE id=$1`, id)
}

func (r *serviceProviderRepository) GetByEmail(ctx context.Context, email string) (*domain.ServiceProvider, error) {
	return r.fetchSingle(ctx, `SELECT `+providerColumns+` FROM service_providers WHERE email=$1`, email)
}

func (r *serviceProviderRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.ServiceProvider, error) {
	var provider domain.ServiceProvider
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&provider.ID,
		&provider.Name,
		&provider.Email,
		&provider.PasswordHash,
		&provider.Services,
		&provider.AverageRating,
		&provider.Feedback,
		&provider.CreatedAt,
		&provider.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &provider, nil
}
