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

type UnitRepo struct {
	pool *pgxpool.Pool
}

func NewUnitRepo(pool *pgxpool.Pool) *UnitRepo {
	return &UnitRepo{pool: pool}
}

const unitColumns = `id, building_id, unit_number, floor, rooms, square_feet, shares, monthly_maintenance, status, created_at, updated_at`

func scanUnit(row pgx.Row) (*domain.Unit, error) {
	var u domain.Unit
	err := row.Scan(&u.ID, &u.BuildingID, &u.UnitNumber, &u.Floor, &u.Rooms, &u.SquareFeet,
		&u.Shares, &u.MonthlyMaintenance, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UnitRepo) Create(ctx context.Context, u *domain.Unit) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO units (`+unitColumns+`)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		u.ID, u.BuildingID, u.UnitNumber, u.Floor, u.Rooms, u.SquareFeet,
		u.Shares, u.MonthlyMaintenance, u.Status, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("unitRepo.Create: %w", err)
	}

	return nil
}

func (r *UnitRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Unit, error) {
	u, err := scanUnit(r.pool.QueryRow(ctx,
		`SELECT `+unitColumns+` FROM units WHERE id = $1`, id,
	))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("unitRepo.GetByID: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("unitRepo.GetByID: %w", err)
	}

	return u, nil
}

func (r *UnitRepo) Update(ctx context.Context, u *domain.Unit) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE units SET unit_number = $1, floor = $2, rooms = $3, square_feet = $4,
		   shares = $5, monthly_maintenance = $6, status = $7, updated_at = $8
		 WHERE id = $9`,
		u.UnitNumber, u.Floor, u.Rooms, u.SquareFeet,
		u.Shares, u.MonthlyMaintenance, u.Status, u.UpdatedAt, u.ID,
	)
	if err != nil {
		return fmt.Errorf("unitRepo.Update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("unitRepo.Update: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *UnitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM units WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("unitRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("unitRepo.Delete: %w", domain.ErrNotFound)
	}

	return nil
}

func (r *UnitRepo) List(ctx context.Context, buildingID *uuid.UUID) ([]*domain.Unit, error) {
	query := `SELECT ` + unitColumns + ` FROM units`
	args := []any{}
	if buildingID != nil {
		query += ` WHERE building_id = $1`
		args = append(args, *buildingID)
	}
	query += ` ORDER BY unit_number`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unitRepo.List: %w", err)
	}
	defer rows.Close()

	var units []*domain.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("unitRepo.List: scan: %w", err)
		}
		units = append(units, u)
	}
	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unitRepo.List: rows: %w", err)
	}

	return units, nil
}
