package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathewar/apty/internal/domain"
)

type MaintenanceRepo struct {
	pool *pgxpool.Pool
}

func NewMaintenanceRepo(pool *pgxpool.Pool) *MaintenanceRepo {
	return &MaintenanceRepo{pool: pool}
}

const requestColumns = `id, unit_id, title, description, location, priority, status, submitted_by,
	category, suggested_priority, vendor_type, triage_summary, urgency_reason, created_at, updated_at`

func scanRequest(row pgx.Row) (*domain.MaintenanceRequest, error) {
	var m domain.MaintenanceRequest
	err := row.Scan(&m.ID, &m.UnitID, &m.Title, &m.Description, &m.Location, &m.Priority,
		&m.Status, &m.SubmittedBy, &m.Category, &m.SuggestedPriority, &m.VendorType,
		&m.TriageSummary, &m.UrgencyReason, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MaintenanceRepo) Create(ctx context.Context, m *domain.MaintenanceRequest) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO maintenance_requests (`+requestColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		m.ID, m.UnitID, m.Title, m.Description, m.Location, m.Priority, m.Status, m.SubmittedBy,
		m.Category, m.SuggestedPriority, m.VendorType, m.TriageSummary, m.UrgencyReason,
		m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("maintenanceRepo.Create: %w", err)
	}

	return nil
}

func (r *MaintenanceRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.MaintenanceRequest, error) {
	m, err := scanRequest(r.pool.QueryRow(ctx,
		`SELECT `+requestColumns+` FROM maintenance_requests WHERE id = $1`, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("maintenanceRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("maintenanceRepo.GetByID: %w", err)
	}

	return m, nil
}

func (r *MaintenanceRepo) Update(ctx context.Context, m *domain.MaintenanceRequest) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE maintenance_requests SET unit_id = $1, title = $2, description = $3, location = $4,
		   priority = $5, status = $6, updated_at = $7
		 WHERE id = $8`,
		m.UnitID, m.Title, m.Description, m.Location, m.Priority, m.Status, m.UpdatedAt, m.ID,
	)
	if err != nil {
		return fmt.Errorf("maintenanceRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("maintenanceRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *MaintenanceRepo) SetTriage(ctx context.Context, id uuid.UUID, t domain.Triage) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE maintenance_requests SET category = $1, suggested_priority = $2, vendor_type = $3,
		   triage_summary = $4, urgency_reason = $5, updated_at = $6
		 WHERE id = $7`,
		t.Category, t.SuggestedPriority, t.VendorType, t.Summary, t.UrgencyReason, time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("maintenanceRepo.SetTriage: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("maintenanceRepo.SetTriage: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *MaintenanceRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM maintenance_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("maintenanceRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("maintenanceRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *MaintenanceRepo) List(ctx context.Context, filter domain.MaintenanceFilter) ([]*domain.MaintenanceRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM maintenance_requests`
	var conds []string
	var args []any

	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Priority != "" {
		args = append(args, filter.Priority)
		conds = append(conds, fmt.Sprintf("priority = $%d", len(args)))
	}
	if filter.UnitID != nil {
		args = append(args, *filter.UnitID)
		conds = append(conds, fmt.Sprintf("unit_id = $%d", len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("maintenanceRepo.List: %w", err)
	}
	defer rows.Close()

	var requests []*domain.MaintenanceRequest
	for rows.Next() {
		m, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("maintenanceRepo.List: scan: %w", err)
		}
		requests = append(requests, m)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("maintenanceRepo.List: rows: %w", err)
	}

	return requests, nil
}

func (r *MaintenanceRepo) CreateComment(ctx context.Context, c *domain.RequestComment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO request_comments (id, request_id, author_id, body, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.RequestID, c.AuthorID, c.Body, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("maintenanceRepo.CreateComment: %w", err)
	}

	return nil
}

func (r *MaintenanceRepo) ListComments(ctx context.Context, requestID uuid.UUID) ([]*domain.RequestComment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, request_id, author_id, body, created_at
		 FROM request_comments WHERE request_id = $1 ORDER BY created_at`,
		requestID,
	)
	if err != nil {
		return nil, fmt.Errorf("maintenanceRepo.ListComments: %w", err)
	}
	defer rows.Close()

	var comments []*domain.RequestComment
	for rows.Next() {
		var c domain.RequestComment

		err = rows.Scan(&c.ID, &c.RequestID, &c.AuthorID, &c.Body, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("maintenanceRepo.ListComments: scan: %w", err)
		}
		comments = append(comments, &c)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("maintenanceRepo.ListComments: rows: %w", err)
	}

	return comments, nil
}
