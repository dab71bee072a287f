package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathewar/apty/internal/domain"
)

// AuditRepo is append-only: entries are inserted and listed, never changed.
type AuditRepo struct {
	pool *pgxpool.Pool
}

func NewAuditRepo(pool *pgxpool.Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Record(ctx context.Context, e *domain.AuditEntry) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_log (id, actor_id, actor_email, actor_role, action, resource_type, resource_id, summary, occurred_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		e.ID, e.ActorID, e.ActorEmail, e.ActorRole, e.Action, e.ResourceType, e.ResourceID, e.Summary, e.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("auditRepo.Record: %w", err)
	}

	return nil
}

func (r *AuditRepo) List(ctx context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, error) {
	query := `SELECT id, actor_id, actor_email, actor_role, action, resource_type, resource_id, summary, occurred_at
		 FROM audit_log`
	var conds []string
	var args []any

	if filter.ResourceType != "" {
		args = append(args, filter.ResourceType)
		conds = append(conds, fmt.Sprintf("resource_type = $%d", len(args)))
	}
	if filter.ResourceID != nil {
		args = append(args, *filter.ResourceID)
		conds = append(conds, fmt.Sprintf("resource_id = $%d", len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += ` ORDER BY occurred_at DESC`
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("auditRepo.List: %w", err)
	}
	defer rows.Close()

	var entries []*domain.AuditEntry
	for rows.Next() {
		var e domain.AuditEntry

		err = rows.Scan(&e.ID, &e.ActorID, &e.ActorEmail, &e.ActorRole, &e.Action,
			&e.ResourceType, &e.ResourceID, &e.Summary, &e.OccurredAt)
		if err != nil {
			return nil, fmt.Errorf("auditRepo.List: scan: %w", err)
		}
		entries = append(entries, &e)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("auditRepo.List: rows: %w", err)
	}

	return entries, nil
}
