package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathewar/apty/internal/domain"
)

type AnnouncementRepo struct {
	pool *pgxpool.Pool
}

func NewAnnouncementRepo(pool *pgxpool.Pool) *AnnouncementRepo {
	return &AnnouncementRepo{pool: pool}
}

func (r *AnnouncementRepo) Create(ctx context.Context, a *domain.Announcement) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO announcements (id, title, body, category, posted_by, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.Title, a.Body, a.Category, a.PostedBy, a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("announcementRepo.Create: %w", err)
	}

	return nil
}

func (r *AnnouncementRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Announcement, error) {
	var a domain.Announcement

	err := r.pool.QueryRow(ctx,
		`SELECT id, title, body, category, posted_by, created_at, updated_at
		 FROM announcements WHERE id = $1`, id,
	).Scan(&a.ID, &a.Title, &a.Body, &a.Category, &a.PostedBy, &a.CreatedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("announcementRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("announcementRepo.GetByID: %w", err)
	}

	return &a, nil
}

func (r *AnnouncementRepo) Update(ctx context.Context, a *domain.Announcement) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE announcements SET title = $1, body = $2, category = $3, updated_at = $4
		 WHERE id = $5`,
		a.Title, a.Body, a.Category, a.UpdatedAt, a.ID,
	)
	if err != nil {
		return fmt.Errorf("announcementRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("announcementRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *AnnouncementRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("announcementRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("announcementRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *AnnouncementRepo) List(ctx context.Context) ([]*domain.Announcement, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, body, category, posted_by, created_at, updated_at
		 FROM announcements ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("announcementRepo.List: %w", err)
	}
	defer rows.Close()

	var announcements []*domain.Announcement
	for rows.Next() {
		var a domain.Announcement

		err = rows.Scan(&a.ID, &a.Title, &a.Body, &a.Category, &a.PostedBy, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("announcementRepo.List: scan: %w", err)
		}
		announcements = append(announcements, &a)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("announcementRepo.List: rows: %w", err)
	}

	return announcements, nil
}
