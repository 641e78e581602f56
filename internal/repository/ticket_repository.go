package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/getaroom/rental-service/internal/domain"
)

// TicketFilter captures fault-ticket listing parameters. Categories narrows to
// tickets a service provider's declared trades cover.
type TicketFilter struct {
	TenantID   *string
	LandlordID *string
	RoomID     *string
	Statuses   []domain.TicketStatus
	Categories []domain.FaultCategory
	BidderID   *string
	Limit      int
	Offset     int
}

// TicketRepository encapsulates fault-ticket persistence.
type TicketRepository interface {
	Create(ctx context.Context, ticket *domain.FaultTicket) error
	Update(ctx context.Context, ticket *domain.FaultTicket) error
	GetByID(ctx context.Context, id string) (*domain.FaultTicket, error)
	ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.FaultTicket, error)
}

type ticketRepository struct {
	pool *pgxpool.Pool
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(pool *pgxpool.Pool) TicketRepository {
	return &ticketRepository{pool: pool}
}

const ticketColumns = `id, room_id, tenant_id, landlord_id, description, category, status,
    reported_at, bids, accepted_bid_id, tenant_confirmed_resolved, landlord_confirmed_resolved,
    created_at, updated_at`

func (r *ticketRepository) Create(ctx context.Context, ticket *domain.FaultTicket) error {
	const query = `
        INSERT INTO fault_tickets (room_id, tenant_id, landlord_id, description, category,
            status, reported_at, bids, accepted_bid_id, tenant_confirmed_resolved, landlord_confirmed_resolved)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		ticket.RoomID,
		ticket.TenantID,
		ticket.LandlordID,
		ticket.Description,
		ticket.Category,
		ticket.Status,
		ticket.ReportedAt,
		ticket.Bids,
		ticket.AcceptedBidID,
		ticket.TenantConfirmedResolved,
		ticket.LandlordConfirmedResolved,
	).Scan(&ticket.ID, &ticket.CreatedAt, &ticket.UpdatedAt)
}

func (r *ticketRepository) Update(ctx context.Context, ticket *domain.FaultTicket) error {
	const query = `
        UPDATE fault_tickets SET description=$1, category=$2, status=$3, bids=$4,
            accepted_bid_id=$5, tenant_confirmed_resolved=$6, landlord_confirmed_resolved=$7,
            updated_at=NOW()
        WHERE id=$8`
	cmd, err := r.pool.Exec(ctx, query,
		ticket.Description,
		ticket.Category,
		ticket.Status,
		ticket.Bids,
		ticket.AcceptedBidID,
		ticket.TenantConfirmedResolved,
		ticket.LandlordConfirmedResolved,
		ticket.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*domain.FaultTicket, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+ticketColumns+` FROM fault_tickets WHERE id=$1`, id)
	return scanTicket(row)
}

func (r *ticketRepository) ListWithFilter(ctx context.Context, filter TicketFilter) ([]domain.FaultTicket, error) {
	base := `SELECT ` + ticketColumns + ` FROM fault_tickets`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.TenantID != nil {
		args = append(args, *filter.TenantID)
		clauses = append(clauses, fmt.Sprintf("tenant_id=$%d", len(args)))
	}
	if filter.LandlordID != nil {
		args = append(args, *filter.LandlordID)
		clauses = append(clauses, fmt.Sprintf("landlord_id=$%d", len(args)))
	}
	if filter.RoomID != nil {
		args = append(args, *filter.RoomID)
		clauses = append(clauses, fmt.Sprintf("room_id=$%d", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}
	if len(filter.Categories) > 0 {
		placeholders := make([]string, len(filter.Categories))
		for i, category := range filter.Categories {
			args = append(args, category)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("category IN (%s)", strings.Join(placeholders, ",")))
	}
	if filter.BidderID != nil {
		args = append(args, fmt.Sprintf(`[{"service_provider_id": %q}]`, *filter.BidderID))
		clauses = append(clauses, fmt.Sprintf("bids @> $%d::jsonb", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY reported_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.FaultTicket
	for rows.Next() {
		ticket, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *ticket)
	}
	return result, rows.Err()
}

func scanTicket(row pgx.Row) (*domain.FaultTicket, error) {
	var ticket domain.FaultTicket
	if err := row.Scan(
		&ticket.ID,
		&ticket.RoomID,
		&ticket.TenantID,
		&ticket.LandlordID,
		&ticket.Description,
		&ticket.Category,
		&ticket.Status,
		&ticket.ReportedAt,
		&ticket.Bids,
		&ticket.AcceptedBidID,
		&ticket.TenantConfirmedResolved,
		&ticket.LandlordConfirmedResolved,
		&ticket.CreatedAt,
		&ticket.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &ticket, nil
}
