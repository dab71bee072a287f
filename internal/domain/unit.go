package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Cents is a monetary amount in the currency's minor unit.
type Cents int64

type UnitStatus string

const (
	UnitStatusOccupied UnitStatus = "occupied"
	UnitStatusVacant   UnitStatus = "vacant"
	UnitStatusSponsor  UnitStatus = "sponsor"
)

type Unit struct {
	ID         uuid.UUID  `json:"id"`
	BuildingID uuid.UUID  `json:"building_id"`
	UnitNumber string     `json:"unit_number"`
	Floor      int        `json:"floor"`
	Rooms      int        `json:"rooms"`
	SquareFeet int        `json:"square_feet"`
	// Shares is the unit's ownership share count, the basis for proportional
	// assessment allocation. Zero means the unit carries no share of the building.
	Shares int64 `json:"shares"`
	// MonthlyMaintenance is the recurring charge rate. Zero means no rate is
	// configured and recurring generation skips the unit.
	MonthlyMaintenance Cents      `json:"monthly_maintenance"`
	Status             UnitStatus `json:"status"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

type UnitRepository interface {
	Create(ctx context.Context, u *Unit) error
	GetByID(ctx context.Context, id uuid.UUID) (*Unit, error)
	Update(ctx context.Context, u *Unit) error
	Delete(ctx context.Context, id uuid.UUID) error
	// List returns all units, or the units of one building when buildingID is set.
	List(ctx context.Context, buildingID *uuid.UUID) ([]*Unit, error)
}
