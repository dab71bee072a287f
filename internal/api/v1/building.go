package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/mathewar/apty/internal/audit"
	"github.com/mathewar/apty/internal/auth"
	"github.com/mathewar/apty/internal/domain"
)

type GetBuildingOutput struct {
	Body *domain.Building
}

type SaveBuildingInput struct {
	Body struct {
		Name         string `json:"name" minLength:"1" maxLength:"255" doc:"Building name"`
		Address      string `json:"address" maxLength:"512" doc:"Street address"`
		YearBuilt    int    `json:"year_built,omitempty" minimum:"1800" maximum:"2100" doc:"Construction year"`
		TotalFloors  int    `json:"total_floors,omitempty" minimum:"1" doc:"Floor count"`
		TotalUnits   int    `json:"total_units,omitempty" minimum:"1" doc:"Unit count"`
		BuildingType string `json:"building_type" enum:"coop,condo,rental" doc:"Ownership structure"`
	}
}

type SaveBuildingOutput struct {
	Body *domain.Building
}

func RegisterBuildingRoutes(api huma.API, store DataStore, rec *audit.Recorder) {
	huma.Register(api, huma.Operation{
		OperationID: "get-building",
		Method:      http.MethodGet,
		Path:        "/building",
		Summary:     "Get the building profile",
		Tags:        []string{"Building"},
	}, func(ctx context.Context, _ *struct{}) (*GetBuildingOutput, error) {
		if err := requirePermission(ctx, auth.PermBuildingRead); err != nil {
			return nil, err
		}

		b, err := store.Building().Get(ctx)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("building profile not configured")
			}
			return nil, huma.Error500InternalServerError("failed to load building", err)
		}

		return &GetBuildingOutput{Body: b}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "save-building",
		Method:      http.MethodPut,
		Path:        "/building",
		Summary:     "Create or update the building profile",
		Tags:        []string{"Building"},
	}, audit.Audited(rec, domain.AuditUpdate, "building",
		func(_ *SaveBuildingInput, out *SaveBuildingOutput) *uuid.UUID { return &out.Body.ID },
		func(in *SaveBuildingInput, _ *SaveBuildingOutput) string {
			return fmt.Sprintf("updated building profile %q", in.Body.Name)
		},
		func(ctx context.Context, input *SaveBuildingInput) (*SaveBuildingOutput, error) {
			if err := requirePermission(ctx, auth.PermBuildingWrite); err != nil {
				return nil, err
			}

			now := time.Now()
			b, err := store.Building().Get(ctx)
			if errors.Is(err, domain.ErrNotFound) {
				b = &domain.Building{ID: uuid.New(), CreatedAt: now}
			} else if err != nil {
				return nil, huma.Error500InternalServerError("failed to load building", err)
			}

			b.Name = input.Body.Name
			b.Address = input.Body.Address
			b.YearBuilt = input.Body.YearBuilt
			b.TotalFloors = input.Body.TotalFloors
			b.TotalUnits = input.Body.TotalUnits
			b.BuildingType = input.Body.BuildingType
			b.UpdatedAt = now

			if err := store.Building().Save(ctx, b); err != nil {
				return nil, huma.Error500InternalServerError("failed to save building", err)
			}

			return &SaveBuildingOutput{Body: b}, nil
		}))
}
