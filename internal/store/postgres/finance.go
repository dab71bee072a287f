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

type FinanceRepo struct {
	pool *pgxpool.Pool
}

func NewFinanceRepo(pool *pgxpool.Pool) *FinanceRepo {
	return &FinanceRepo{pool: pool}
}

func (r *FinanceRepo) CreateMaintenanceCharge(ctx context.Context, c *domain.MaintenanceCharge) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO maintenance_charges (id, unit_id, period_month, period_year, amount, status, due_date, paid_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.UnitID, c.PeriodMonth, c.PeriodYear, c.Amount, c.Status, c.DueDate, c.PaidDate, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("financeRepo.CreateMaintenanceCharge: %w", err)
	}

	return nil
}

func (r *FinanceRepo) ListMaintenanceCharges(ctx context.Context, filter domain.MaintenanceChargeFilter) ([]*domain.MaintenanceCharge, error) {
	query := `SELECT id, unit_id, period_month, period_year, amount, status, due_date, paid_date, created_at
		 FROM maintenance_charges`
	var conds []string
	var args []any

	if filter.UnitID != nil {
		args = append(args, *filter.UnitID)
		conds = append(conds, fmt.Sprintf("unit_id = $%d", len(args)))
	}
	if filter.PeriodMonth != 0 {
		args = append(args, filter.PeriodMonth)
		conds = append(conds, fmt.Sprintf("period_month = $%d", len(args)))
	}
	if filter.PeriodYear != 0 {
		args = append(args, filter.PeriodYear)
		conds = append(conds, fmt.Sprintf("period_year = $%d", len(args)))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		conds = append(conds, fmt.Sprintf("status = $%d", len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += ` ORDER BY period_year DESC, period_month DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("financeRepo.ListMaintenanceCharges: %w", err)
	}
	defer rows.Close()

	var charges []*domain.MaintenanceCharge
	for rows.Next() {
		var c domain.MaintenanceCharge

		err = rows.Scan(&c.ID, &c.UnitID, &c.PeriodMonth, &c.PeriodYear, &c.Amount,
			&c.Status, &c.DueDate, &c.PaidDate, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("financeRepo.ListMaintenanceCharges: scan: %w", err)
		}
		charges = append(charges, &c)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("financeRepo.ListMaintenanceCharges: rows: %w", err)
	}

	return charges, nil
}

func (r *FinanceRepo) UpdateMaintenanceChargeStatus(ctx context.Context, id uuid.UUID, status domain.ChargeStatus, paidDate *time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE maintenance_charges SET status = $1, paid_date = $2 WHERE id = $3`,
		status, paidDate, id,
	)
	if err != nil {
		return fmt.Errorf("financeRepo.UpdateMaintenanceChargeStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("financeRepo.UpdateMaintenanceChargeStatus: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *FinanceRepo) CreateAssessment(ctx context.Context, a *domain.Assessment) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO assessments (id, title, description, total_amount, effective_date, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.Title, a.Description, a.TotalAmount, a.EffectiveDate, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("financeRepo.CreateAssessment: %w", err)
	}

	return nil
}

func (r *FinanceRepo) GetAssessment(ctx context.Context, id uuid.UUID) (*domain.Assessment, error) {
	var a domain.Assessment

	err := r.pool.QueryRow(ctx,
		`SELECT id, title, description, total_amount, effective_date, created_at
		 FROM assessments WHERE id = $1`, id,
	).Scan(&a.ID, &a.Title, &a.Description, &a.TotalAmount, &a.EffectiveDate, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("financeRepo.GetAssessment: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("financeRepo.GetAssessment: %w", err)
	}

	return &a, nil
}

func (r *FinanceRepo) ListAssessments(ctx context.Context) ([]*domain.Assessment, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, title, description, total_amount, effective_date, created_at
		 FROM assessments ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("financeRepo.ListAssessments: %w", err)
	}
	defer rows.Close()

	var assessments []*domain.Assessment
	for rows.Next() {
		var a domain.Assessment

		err = rows.Scan(&a.ID, &a.Title, &a.Description, &a.TotalAmount, &a.EffectiveDate, &a.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("financeRepo.ListAssessments: scan: %w", err)
		}
		assessments = append(assessments, &a)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("financeRepo.ListAssessments: rows: %w", err)
	}

	return assessments, nil
}

func (r *FinanceRepo) CreateAssessmentCharge(ctx context.Context, c *domain.AssessmentCharge) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO assessment_charges (id, assessment_id, unit_id, amount, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		c.ID, c.AssessmentID, c.UnitID, c.Amount, c.Status, c.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("financeRepo.CreateAssessmentCharge: %w", err)
	}

	return nil
}

func (r *FinanceRepo) ListAssessmentCharges(ctx context.Context, assessmentID uuid.UUID) ([]*domain.AssessmentCharge, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, assessment_id, unit_id, amount, status, created_at
		 FROM assessment_charges WHERE assessment_id = $1 ORDER BY created_at`,
		assessmentID,
	)
	if err != nil {
		return nil, fmt.Errorf("financeRepo.ListAssessmentCharges: %w", err)
	}
	defer rows.Close()

	var charges []*domain.AssessmentCharge
	for rows.Next() {
		var c domain.AssessmentCharge

		err = rows.Scan(&c.ID, &c.AssessmentID, &c.UnitID, &c.Amount, &c.Status, &c.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("financeRepo.ListAssessmentCharges: scan: %w", err)
		}
		charges = append(charges, &c)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("financeRepo.ListAssessmentCharges: rows: %w", err)
	}

	return charges, nil
}

func (r *FinanceRepo) UpdateAssessmentChargeStatus(ctx context.Context, id uuid.UUID, status domain.ChargeStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE assessment_charges SET status = $1 WHERE id = $2`,
		status, id,
	)
	if err != nil {
		return fmt.Errorf("financeRepo.UpdateAssessmentChargeStatus: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("financeRepo.UpdateAssessmentChargeStatus: %w", domain.ErrNotFound)
	}

	return nil
}
