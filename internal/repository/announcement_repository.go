package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/getaroom/rental-service/internal/domain"
)

// AnnouncementRepository encapsulates announcement persistence. Append-only.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *domain.Announcement) error
	List(ctx context.Context, limit, offset int) ([]domain.Announcement, error)
}

type announcementRepository struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepository instantiates repository.
func NewAnnouncementRepository(pool *pgxpool.Pool) AnnouncementRepository {
	return &announcementRepository{pool: pool}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *domain.Announcement) error {
	const query = `
        INSERT INTO announcements (author, title, content, date)
        VALUES ($1,$2,$3,$4)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		announcement.Author,
		announcement.Title,
		announcement.Content,
		announcement.Date,
	).Scan(&announcement.ID, &announcement.CreatedAt)
}

func (r *announcementRepository) List(ctx context.Context, limit, offset int) ([]domain.Announcement, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	const query = `
        SELECT id, author, title, content, date, created_at
        FROM announcements ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Announcement
	for rows.Next() {
		var a domain.Announcement
		if err := rows.Scan(&a.ID, &a.Author, &a.Title, &a.Content, &a.Date, &a.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}
