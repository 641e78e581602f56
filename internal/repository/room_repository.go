package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/getaroom/rental-service/internal/domain"
)

// RoomFilter captures search parameters from the browse surface. MaxPrice is
// compared against the nightly rate when present.
type RoomFilter struct {
	LandlordID   *string
	Location     *string
	MaxPrice     *float64
	Amenities    []string
	MinRating    *float64
	MinOccupancy *int
	Limit        int
	Offset       int
}

// RoomRepository encapsulates room persistence.
type RoomRepository interface {
	Create(ctx context.Context, room *domain.Room) error
	Update(ctx context.Context, room *domain.Room) error
	GetByID(ctx context.Context, id string) (*domain.Room, error)
	ListWithFilter(ctx context.Context, filter RoomFilter) ([]domain.Room, error)
}

type roomRepository struct {
	pool *pgxpool.Pool
}

// NewRoomRepository instantiates repository.
func NewRoomRepository(pool *pgxpool.Pool) RoomRepository {
	return &roomRepository{pool: pool}
}

const roomColumns = `id, landlord_id, name, location, price_hourly, price_nightly, price_monthly,
    image_url, description, amenities, rating, max_occupancy, created_at, updated_at`

func (r *roomRepository) Create(ctx context.Context, room *domain.Room) error {
	const query = `
        INSERT INTO rooms (landlord_id, name, location, price_hourly, price_nightly, price_monthly,
            image_url, description, amenities, rating, max_occupancy)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		room.LandlordID,
		room.Name,
		room.Location,
		room.Pricing.Hourly,
		room.Pricing.Nightly,
		room.Pricing.Monthly,
		room.ImageURL,
		room.Description,
		room.Amenities,
		room.Rating,
		room.MaxOccupancy,
	).Scan(&room.ID, &room.CreatedAt, &room.UpdatedAt)
}

func (r *roomRepository) Update(ctx context.Context, room *domain.Room) error {
	const query = `
        UPDATE rooms SET name=$1, location=$2, price_hourly=$3, price_nightly=$4, price_monthly=$5,
            image_url=$6, description=$7, amenities=$8, rating=$9, max_occupancy=$10, updated_at=NOW()
        WHERE id=$11`
	cmd, err := r.pool.Exec(ctx, query,
		room.Name,
		room.Location,
		room.Pricing.Hourly,
		room.Pricing.Nightly,
		room.Pricing.Monthly,
		room.ImageURL,
		room.Description,
		room.Amenities,
		room.Rating,
		room.MaxOccupancy,
		room.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *roomRepository) GetByID(ctx context.Context, id string) (*domain.Room, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+roomColumns+` FROM rooms WHERE id=$1`, id)
	return scanRoom(row)
}

func (r *roomRepository) ListWithFilter(ctx context.Context, filter RoomFilter) ([]domain.Room, error) {
	base := `SELECT ` + roomColumns + ` FROM rooms`
	clauses := []string{"1=1"}
	args := []any{}

	if filter.LandlordID != nil {
		args = append(args, *filter.LandlordID)
		clauses = append(clauses, fmt.Sprintf("landlord_id=$%d", len(args)))
	}
	if filter.Location != nil && strings.TrimSpace(*filter.Location) != "" {
		args = append(args, "%"+strings.ToLower(strings.TrimSpace(*filter.Location))+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(location) LIKE $%d", len(args)))
	}
	if filter.MaxPrice != nil {
		args = append(args, *filter.MaxPrice)
		clauses = append(clauses, fmt.Sprintf("(price_nightly IS NULL OR price_nightly <= $%d)", len(args)))
	}
	if len(filter.Amenities) > 0 {
		args = append(args, filter.Amenities)
		clauses = append(clauses, fmt.Sprintf("amenities @> $%d", len(args)))
	}
	if filter.MinRating != nil {
		args = append(args, *filter.MinRating)
		clauses = append(clauses, fmt.Sprintf("rating >= $%d", len(args)))
	}
	if filter.MinOccupancy != nil {
		args = append(args, *filter.MinOccupancy)
		clauses = append(clauses, fmt.Sprintf("max_occupancy >= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`%s WHERE %s ORDER BY rating DESC, created_at DESC LIMIT %d OFFSET %d`,
		base, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Room
	for rows.Next() {
		room, err := scanRoom(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *room)
	}
	return result, rows.Err()
}

func scanRoom(row pgx.Row) (*domain.Room, error) {
	var room domain.Room
	if err := row.Scan(
		&room.ID,
		&room.LandlordID,
		&room.Name,
		&room.Location,
		&room.Pricing.Hourly,
		&room.Pricing.Nightly,
		&room.Pricing.Monthly,
		&room.ImageURL,
		&room.Description,
		&room.Amenities,
		&room.Rating,
		&room.MaxOccupancy,
		&room.CreatedAt,
		&room.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &room, nil
}
