package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/getaroom/rental-service/internal/domain"
)

// TenantRepository defines persistence access for tenant accounts.
type TenantRepository interface {
	Create(ctx context.Context, tenant *domain.Tenant) error
	Update(ctx context.Context, tenant *domain.Tenant) error
	GetByID(ctx context.Context, id string) (*domain.Tenant, error)
	GetByEmail(ctx context.Context, email string) (*domain.Tenant, error)
	ListAll(ctx context.Context) ([]domain.Tenant, error)
}

type tenantRepository struct {
	pool *pgxpool.Pool
}

// NewTenantRepository returns a Postgres-backed implementation.
func NewTenantRepository(pool *pgxpool.Pool) TenantRepository {
	return &tenantRepository{pool: pool}
}

const tenantColumns = `id, name, email, password_hash, tenant_kind, leased_room_id,
    lease_start_date, lease_end_date, rent_amount, rent_due_date, rent_status,
    warnings, lease_extension, trustees, booking_history, rating, created_at, updated_at`

func (r *tenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	const query = `
        INSERT INTO tenants (name, email, password_hash, tenant_kind, leased_room_id,
            lease_start_date, lease_end_date, rent_amount, rent_due_date, rent_status,
            warnings, lease_extension, trustees, booking_history, rating)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		tenant.Name,
		tenant.Email,
		tenant.PasswordHash,
		tenant.Kind,
		tenant.LeasedRoomID,
		tenant.LeaseStartDate,
		tenant.LeaseEndDate,
		tenant.RentAmount,
		tenant.RentDueDate,
		tenant.RentStatus,
		tenant.Warnings,
		tenant.LeaseExtension,
		tenant.Trustees,
		tenant.BookingHistory,
		tenant.Rating,
	).Scan(&tenant.ID, &tenant.CreatedAt, &tenant.UpdatedAt)
}

func (r *tenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	const query = `
        UPDATE tenants SET name=$1, email=$2, password_hash=$3, tenant_kind=$4,
            leased_room_id=$5, lease_start_date=$6, lease_end_date=$7, rent_amount=$8,
            rent_due_date=$9, rent_status=$10, warnings=$11, lease_extension=$12,
            trustees=$13, booking_history=$14, rating=$15, updated_at=NOW()
        WHERE id=$16`
	cmd, err := r.pool.Exec(ctx, query,
		tenant.Name,
		tenant.Email,
		tenant.PasswordHash,
		tenant.Kind,
		tenant.LeasedRoomID,
		tenant.LeaseStartDate,
		tenant.LeaseEndDate,
		tenant.RentAmount,
		tenant.RentDueDate,
		tenant.RentStatus,
		tenant.Warnings,
		tenant.LeaseExtension,
		tenant.Trustees,
		tenant.BookingHistory,
		tenant.Rating,
		tenant.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *tenantRepository) GetByID(ctx context.Context, id string) (*domain.Tenant, error) {
	return r.fetchSingle(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id=$1`, id)
}

func (r *tenantRepository) GetByEmail(ctx context.Context, email string) (*domain.Tenant, error) {
	return r.fetchSingle(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE email=$1`, email)
}

// ListAll returns every tenant. Trustee login resolution scans trustee grants
// across all tenants; the grant is owned by the tenant, not the trustee.
func (r *tenantRepository) ListAll(ctx context.Context) ([]domain.Tenant, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+tenantColumns+` FROM tenants ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Tenant
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *tenant)
	}
	return result, rows.Err()
}

func (r *tenantRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.Tenant, error) {
	row := r.pool.QueryRow(ctx, query, arg)
	return scanTenant(row)
}

func scanTenant(row pgx.Row) (*domain.Tenant, error) {
	var tenant domain.Tenant
	if err := row.Scan(
		&tenant.ID,
		&tenant.Name,
		&tenant.Email,
		&tenant.PasswordHash,
		&tenant.Kind,
		&tenant.LeasedRoomID,
		&tenant.LeaseStartDate,
		&tenant.LeaseEndDate,
		&tenant.RentAmount,
		&tenant.RentDueDate,
		&tenant.RentStatus,
		&tenant.Warnings,
		&tenant.LeaseExtension,
		&tenant.Trustees,
		&tenant.BookingHistory,
		&tenant.Rating,
		&tenant.CreatedAt,
		&tenant.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &tenant, nil
}
