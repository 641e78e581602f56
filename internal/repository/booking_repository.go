package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/getaroom/rental-service/internal/domain"
)

// BookingFilter captures booking listing parameters.
type BookingFilter struct {
	TenantID *string
	RoomIDs  []string
	Statuses []domain.BookingStatus
	Limit    int
	Offset   int
}

// BookingRepository encapsulates booking-application persistence.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.BookingApplication) error
	Update(ctx context.Context, booking *domain.BookingApplication) error
	GetByID(ctx context.Context, id string) (*domain.BookingApplication, error)
	ListWithFilter(ctx context.Context, filter BookingFilter) ([]domain.BookingApplication, error)
}

type bookingRepository struct {
	pool *pgxpool.Pool
}

// NewBookingRepository instantiates repository.
func NewBookingRepository(pool *pgxpool.Pool) BookingRepository {
	return &bookingRepository{pool: pool}
}

const bookingColumns = `id, tenant_id, room_id, status, application_date, message_to_landlord,
    referrer_id, number_of_adults, number_of_children, created_at, updated_at`

func (r *bookingRepository) Create(ctx context.Context, booking *domain.BookingApplication) error {
	const query = `
        INSERT INTO booking_applications (tenant_id, room_id, status, application_date,
            message_to_landlord, referrer_id, number_of_adults, number_of_children)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		booking.TenantID,
		booking.RoomID,
		booking.Status,
		booking.ApplicationDate,
		booking.MessageToLandlord,
		booking.ReferrerID,
		booking.NumberOfAdults,
		booking.NumberOfChildren,
	).Scan(&booking.ID, &booking.CreatedAt, &booking.UpdatedAt)
}

func (r *bookingRepository) Update(ctx context.Context, booking *domain.BookingApplication) error {
	const query = `
        UPDATE booking_applications SET status=$1, message_to_landlord=$2,
            number_of_adults=$3, number_of_children=$4, updated_at=NOW()
        WHERE id=$5`
	cmd, err := r.pool.Exec(ctx, query,
		booking.Status,
		booking.MessageToLandlord,
		booking.NumberOfAdults,
		booking.NumberOfChildren,
		booking.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookingRepository) GetByID(ctx context.Context, id string) (*domain.BookingApplication, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+bookingColumns+` FROM booking_applications WHERE id=$1`, id)
	return scanBooking(row)
}

func (r *bookingRepository) ListWithFilter(ctx context.Context, filter BookingFilter) ([]domain.BookingApplication, error) {
	base := `SELECT ` + bookingColumns + ` FROM booking_applications`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.TenantID != nil {
		args = append(args, *filter.TenantID)
		clauses = append(clauses, fmt.Sprintf("tenant_id=$%d", len(args)))
	}
	if len(filter.RoomIDs) > 0 {
		args = append(args, filter.RoomIDs)
		clauses = append(clauses, fmt.Sprintf("room_id = ANY($%d)", len(args)))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, len(filter.Statuses))
		for i, status := range filter.Statuses {
			args = append(args, status)
			placeholders[i] = fmt.Sprintf("$%d", len(args))
		}
		clauses = append(clauses, fmt.Sprintf("status IN (%s)", strings.Join(placeholders, ",")))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY application_date DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.BookingApplication
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *booking)
	}
	return result, rows.Err()
}

func scanBooking(row pgx.Row) (*domain.BookingApplication, error) {
	var booking domain.BookingApplication
	if err := row.Scan(
		&booking.ID,
		&booking.TenantID,
		&booking.RoomID,
		&booking.Status,
		&booking.ApplicationDate,
		&booking.MessageToLandlord,
		&booking.ReferrerID,
		&booking.NumberOfAdults,
		&booking.NumberOfChildren,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &booking, nil
}
