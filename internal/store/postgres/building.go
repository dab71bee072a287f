package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mathewar/apty/internal/domain"
)

// BuildingRepo stores the single building profile. The table holds at most
// one row.
type BuildingRepo struct {
	pool *pgxpool.Pool
}

func NewBuildingRepo(pool *pgxpool.Pool) *BuildingRepo {
	return &BuildingRepo{pool: pool}
}

func (r *BuildingRepo) Get(ctx context.Context) (*domain.Building, error) {
	var b domain.Building

	err := r.pool.QueryRow(ctx,
		`SELECT id, name, address, year_built, total_floors, total_units, building_type, created_at, updated_at
		 FROM building LIMIT 1`,
	).Scan(&b.ID, &b.Name, &b.Address, &b.YearBuilt, &b.TotalFloors, &b.TotalUnits, &b.BuildingType, &b.CreatedAt, &b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("buildingRepo.Get: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("buildingRepo.Get: %w", err)
	}

	return &b, nil
}

func (r *BuildingRepo) Save(ctx context.Context, b *domain.Building) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO building (id, name, address, year_built, total_floors, total_units, building_type, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 ON CONFLICT (id) DO UPDATE SET
		   name = EXCLUDED.name, address = EXCLUDED.address, year_built = EXCLUDED.year_built,
		   total_floors = EXCLUDED.total_floors, total_units = EXCLUDED.total_units,
		   building_type = EXCLUDED.building_type, updated_at = EXCLUDED.updated_at`,
		b.ID, b.Name, b.Address, b.YearBuilt, b.TotalFloors, b.TotalUnits, b.BuildingType, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("buildingRepo.Save: %w", err)
	}

	return nil
}
