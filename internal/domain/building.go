package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Building is the single managed property. The application runs one building
// per deployment, so the repository exposes a singleton profile.
type Building struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	YearBuilt    int       `json:"year_built"`
	TotalFloors  int       `json:"total_floors"`
	TotalUnits   int       `json:"total_units"`
	BuildingType string    `json:"building_type"` // "coop", "condo", "rental"
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type BuildingRepository interface {
	Get(ctx context.Context) (*Building, error)
	Save(ctx context.Context, b *Building) error
}
