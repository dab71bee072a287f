package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathewar/apty/internal/domain"
)

type DocumentRepo struct {
	pool *pgxpool.Pool
}

func NewDocumentRepo(pool *pgxpool.Pool) *DocumentRepo {
	return &DocumentRepo{pool: pool}
}

func (r *DocumentRepo) Create(ctx context.Context, d *domain.Document) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO documents (id, title, category, file_path, uploaded_by, analysis, analyzed_at, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		d.ID, d.Title, d.Category, d.FilePath, d.UploadedBy, d.Analysis, d.AnalyzedAt, d.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("documentRepo.Create: %w", err)
	}

	return nil
}

func (r *DocumentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Document, error) {
	var d domain.Document

	err := r.pool.QueryRow(ctx,
		`SELECT id, title, category, file_path, uploaded_by, analysis, analyzed_at, created_at
		 FROM documents WHERE id = $1`, id,
	).Scan(&d.ID, &d.Title, &d.Category, &d.FilePath, &d.UploadedBy, &d.Analysis, &d.AnalyzedAt, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("documentRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("documentRepo.GetByID: %w", err)
	}

	return &d, nil
}

func (r *DocumentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("documentRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("documentRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *DocumentRepo) List(ctx context.Context) ([]*domain.Document, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, category, file_path, uploaded_by, analysis, analyzed_at, created_at
		 FROM documents ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("documentRepo.List: %w", err)
	}
	defer rows.Close()

	var documents []*domain.Document
	for rows.Next() {
		var d domain.Document

		err = rows.Scan(&d.ID, &d.Title, &d.Category, &d.FilePath, &d.UploadedBy, &d.Analysis, &d.AnalyzedAt, &d.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("documentRepo.List: scan: %w", err)
		}
		documents = append(documents, &d)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("documentRepo.List: rows: %w", err)
	}

	return documents, nil
}

func (r *DocumentRepo) SetAnalysis(ctx context.Context, id uuid.UUID, analysis json.RawMessage, analyzedAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE documents SET analysis = $1, analyzed_at = $2 WHERE id = $3`,
		analysis, analyzedAt, id,
	)
	if err != nil {
		return fmt.Errorf("documentRepo.SetAnalysis: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("documentRepo.SetAnalysis: %w", domain.ErrNotFound)
	}

	return nil
}
