package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/getaroom/rental-service/internal/domain"
)

// LandlordRepository defines persistence access for landlord accounts.
type LandlordRepository interface {
	Create(ctx context.Context, landlord *domain.Landlord) error
	Update(ctx context.Context, landlord *domain.Landlord) error
	GetByID(ctx context.Context, id string) (*domain.Landlord, error)
	GetByEmail(ctx context.Context, email string) (*domain.Landlord, error)
}

type landlordRepository struct {
	pool *pgxpool.Pool
}

// NewLandlordRepository returns a Postgres-backed implementation.
func NewLandlordRepository(pool *pgxpool.Pool) LandlordRepository {
	return &landlordRepository{pool: pool}
}

const landlordColumns = `id, name, email, password_hash, property_types, managed_properties, reviews, created_at, updated_at`

func (r *landlordRepository) Create(ctx context.Context, landlord *domain.Landlord) error {
	const query = `
        INSERT INTO landlords (name, email, password_hash, property_types, managed_properties, reviews)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		landlord.Name,
		landlord.Email,
		landlord.PasswordHash,
		landlord.PropertyTypes,
		landlord.ManagedProperties,
		landlord.Reviews,
	).Scan(&landlord.ID, &landlord.CreatedAt, &landlord.UpdatedAt)
}

func (r *landlordRepository) Update(ctx context.Context, landlord *domain.Landlord) error {
	const query = `
        UPDATE landlords SET name=$1, email=$2, password_hash=$3, property_types=$4,
            managed_properties=$5, reviews=$6, updated_at=NOW()
        WHERE id=$7`
	cmd, err := r.pool.Exec(ctx, query,
		landlord.Name,
		landlord.Email,
		landlord.PasswordHash,
		landlord.PropertyTypes,
		landlord.ManagedProperties,
		landlord.Reviews,
		landlord.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *landlordRepository) GetByID(ctx context.Context, id string) (*domain.Landlord, error) {
	return r.fetchSingle(ctx, `SELECT `+landlordColumns+` FROM landlords WHERE id=$1`, id)
}

func (r *landlordRepository) GetByEmail(ctx context.Context, email string) (*domain.Landlord, error) {
	return r.fetchSingle(ctx, `SELECT `+landlordColumns+` FROM landlords WHERE email=$1`, email)
}

func (r *landlordRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Landlord, error) {
	var landlord domain.Landlord
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&landlord.ID,
		&landlord.Name,
		&landlord.Email,
		&landlord.PasswordHash,
		&landlord.PropertyTypes,
		&landlord.ManagedProperties,
		&landlord.Reviews,
		&landlord.CreatedAt,
		&landlord.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &landlord, nil
}
