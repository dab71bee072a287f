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

type ResidentRepo struct {
	pool *pgxpool.Pool
}

func NewResidentRepo(pool *pgxpool.Pool) *ResidentRepo {
	return &ResidentRepo{pool: pool}
}

const residentColumns = `id, unit_id, first_name, last_name, email, phone, role, move_in_date, created_at, updated_at`

func scanResident(row pgx.Row) (*domain.Resident, error) {
	var res domain.Resident
	err := row.Scan(&res.ID, &res.UnitID, &res.FirstName, &res.LastName, &res.Email,
		&res.Phone, &res.Role, &res.MoveInDate, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &res, nil
}

func (r *ResidentRepo) Create(ctx context.Context, res *domain.Resident) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO residents (`+residentColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		res.ID, res.UnitID, res.FirstName, res.LastName, res.Email,
		res.Phone, res.Role, res.MoveInDate, res.CreatedAt, res.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("residentRepo.Create: %w", err)
	}

	return nil
}

func (r *ResidentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resident, error) {
	res, err := scanResident(r.pool.QueryRow(ctx,
		`SELECT `+residentColumns+` FROM residents WHERE id = $1`, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("residentRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("residentRepo.GetByID: %w", err)
	}

	return res, nil
}

func (r *ResidentRepo) Update(ctx context.Context, res *domain.Resident) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE residents SET unit_id = $1, first_name = $2, last_name = $3, email = $4,
		   phone = $5, role = $6, move_in_date = $7, updated_at = $8
		 WHERE id = $9`,
		res.UnitID, res.FirstName, res.LastName, res.Email,
		res.Phone, res.Role, res.MoveInDate, res.UpdatedAt, res.ID,
	)
	if err != nil {
		return fmt.Errorf("residentRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("residentRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ResidentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM residents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("residentRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("residentRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *ResidentRepo) List(ctx context.Context, filter domain.ResidentFilter) ([]*domain.Resident, error) {
	query := `SELECT ` + residentColumns + ` FROM residents`
	var conds []string
	var args []any

	if filter.UnitID != nil {
		args = append(args, *filter.UnitID)
		conds = append(conds, fmt.Sprintf("unit_id = $%d", len(args)))
	}
	if filter.Role != "" {
		args = append(args, filter.Role)
		conds = append(conds, fmt.Sprintf("role = $%d", len(args)))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += ` ORDER BY last_name, first_name`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("residentRepo.List: %w", err)
	}
	defer rows.Close()

	var residents []*domain.Resident
	for rows.Next() {
		res, err := scanResident(rows)
		if err != nil {
			return nil, fmt.Errorf("residentRepo.List: scan: %w", err)
		}
		residents = append(residents, res)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("residentRepo.List: rows: %w", err)
	}

	return residents, nil
}
