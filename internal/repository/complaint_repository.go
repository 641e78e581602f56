package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/getaroom/rental-service/internal/domain"
)

// ComplaintRepository encapsulates complaint persistence. Complaints are never
// deleted; resolved ones persist indefinitely.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	ListByFiler(ctx context.Context, filedByID string) ([]domain.Complaint, error)
	ListAgainst(ctx context.Context, againstID string) ([]domain.Complaint, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `id, filed_by_id, against_id, against_name, against_type, reason, status, date, created_at`

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (filed_by_id, against_id, against_name, against_type, reason, status, date)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		complaint.FiledByID,
		complaint.FiledAgainst.ID,
		complaint.FiledAgainst.Name,
		complaint.FiledAgainst.Type,
		complaint.Reason,
		complaint.Status,
		complaint.Date,
	).Scan(&complaint.ID, &complaint.CreatedAt)
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+complaintColumns+` FROM complaints WHERE id=$1`, id)
	return scanComplaint(row)
}

func (r *complaintRepository) ListByFiler(ctx context.Context, filedByID string) ([]domain.Complaint, error) {
	return r.list(ctx, `SELECT `+complaintColumns+` FROM complaints WHERE filed_by_id=$1 ORDER BY date DESC`, filedByID)
}

func (r *complaintRepository) ListAgainst(ctx context.Context, againstID string) ([]domain.Complaint, error) {
	return r.list(ctx, `SELECT `+complaintColumns+` FROM complaints WHERE against_id=$1 ORDER BY date DESC`, againstID)
}

func (r *complaintRepository) list(ctx context.Context, query string, arg any) ([]domain.Complaint, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Complaint
	for rows.Next() {
		complaint, err := scanComplaint(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *complaint)
	}
	return result, rows.Err()
}

func scanComplaint(row pgx.Row) (*domain.Complaint, error) {
	var complaint domain.Complaint
	if err := row.Scan(
		&complaint.ID,
		&complaint.FiledByID,
		&complaint.FiledAgainst.ID,
		&complaint.FiledAgainst.Name,
		&complaint.FiledAgainst.Type,
		&complaint.Reason,
		&complaint.Status,
		&complaint.Date,
		&complaint.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &complaint, nil
}
