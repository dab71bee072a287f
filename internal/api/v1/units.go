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

type unitFields struct {
	UnitNumber         string            `json:"unit_number" minLength:"1" maxLength:"16" doc:"Apartment number, e.g. 4B"`
	Floor              int               `json:"floor,omitempty" doc:"Floor"`
	Rooms              int               `json:"rooms,omitempty" minimum:"0" doc:"Room count"`
	SquareFeet         int               `json:"square_feet,omitempty" minimum:"0" doc:"Floor area"`
	Shares             int64             `json:"shares,omitempty" minimum:"0" doc:"Ownership shares"`
	MonthlyMaintenance domain.Cents      `json:"monthly_maintenance,omitempty" minimum:"0" doc:"Recurring charge rate in cents"`
	Status             domain.UnitStatus `json:"status" enum:"occupied,vacant,sponsor" doc:"Occupancy status"`
}

type CreateUnitInput struct {
	Body unitFields
}

type CreateUnitOutput struct {
	Body *domain.Unit
}

type GetUnitInput struct {
	ID uuid.UUID `path:"id" doc:"Unit ID"`
}

type GetUnitOutput struct {
	Body *domain.Unit
}

type UpdateUnitInput struct {
	ID   uuid.UUID `path:"id" doc:"Unit ID"`
	Body unitFields
}

type UpdateUnitOutput struct {
	Body *domain.Unit
}

type DeleteUnitInput struct {
	ID uuid.UUID `path:"id" doc:"Unit ID"`
}

type DeleteUnitOutput struct {
	Body struct {
		Deleted bool `json:"deleted"`
	}
}

type ListUnitsOutput struct {
	Body []*domain.Unit
}

type ListUnitResidentsInput struct {
	ID uuid.UUID `path:"id" doc:"Unit ID"`
}

type ListUnitResidentsOutput struct {
	Body []*domain.Resident
}

func RegisterUnitRoutes(api huma.API, store DataStore, rec *audit.Recorder) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-unit",
		Method:        http.MethodPost,
		Path:          "/units",
		Summary:       "Create a unit",
		Tags:          []string{"Units"},
		DefaultStatus: http.StatusCreated,
	}, audit.Audited(rec, domain.AuditCreate, "unit",
		func(_ *CreateUnitInput, out *CreateUnitOutput) *uuid.UUID { return &out.Body.ID },
		func(in *CreateUnitInput, _ *CreateUnitOutput) string {
			return fmt.Sprintf("created unit %s", in.Body.UnitNumber)
		},
		func(ctx context.Context, input *CreateUnitInput) (*CreateUnitOutput, error) {
			if err := requirePermission(ctx, auth.PermUnitsWrite); err != nil {
				return nil, err
			}

			b, err := store.Building().Get(ctx)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error409Conflict("building profile must be configured first")
				}
				return nil, huma.Error500InternalServerError("failed to load building", err)
			}

			now := time.Now()
			u := &domain.Unit{
				ID:                 uuid.New(),
				BuildingID:         b.ID,
				UnitNumber:         input.Body.UnitNumber,
				Floor:              input.Body.Floor,
				Rooms:              input.Body.Rooms,
				SquareFeet:         input.Body.SquareFeet,
				Shares:             input.Body.Shares,
				MonthlyMaintenance: input.Body.MonthlyMaintenance,
				Status:             input.Body.Status,
				CreatedAt:          now,
				UpdatedAt:          now,
			}

			if err := store.Units().Create(ctx, u); err != nil {
				return nil, huma.Error500InternalServerError("failed to create unit", err)
			}

			return &CreateUnitOutput{Body: u}, nil
		}))

	huma.Register(api, huma.Operation{
		OperationID: "list-units",
		Method:      http.MethodGet,
		Path:        "/units",
		Summary:     "List units",
		Tags:        []string{"Units"},
	}, func(ctx context.Context, _ *struct{}) (*ListUnitsOutput, error) {
		if err := requirePermission(ctx, auth.PermUnitsRead); err != nil {
			return nil, err
		}

		units, err := store.Units().List(ctx, nil)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list units", err)
		}

		return &ListUnitsOutput{Body: units}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-unit",
		Method:      http.MethodGet,
		Path:        "/units/{id}",
		Summary:     "Get a unit",
		Tags:        []string{"Units"},
	}, func(ctx context.Context, input *GetUnitInput) (*GetUnitOutput, error) {
		if err := requirePermission(ctx, auth.PermUnitsRead); err != nil {
			return nil, err
		}

		u, err := store.Units().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("unit not found")
			}
			return nil, huma.Error500InternalServerError("failed to load unit", err)
		}

		return &GetUnitOutput{Body: u}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-unit",
		Method:      http.MethodPut,
		Path:        "/units/{id}",
		Summary:     "Update a unit",
		Tags:        []string{"Units"},
	}, audit.Audited(rec, domain.AuditUpdate, "unit",
		func(in *UpdateUnitInput, _ *UpdateUnitOutput) *uuid.UUID { return &in.ID },
		func(in *UpdateUnitInput, _ *UpdateUnitOutput) string {
			return fmt.Sprintf("updated unit %s", in.Body.UnitNumber)
		},
		func(ctx context.Context, input *UpdateUnitInput) (*UpdateUnitOutput, error) {
			if err := requirePermission(ctx, auth.PermUnitsWrite); err != nil {
				return nil, err
			}

			u, err := store.Units().GetByID(ctx, input.ID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("unit not found")
				}
				return nil, huma.Error500InternalServerError("failed to load unit", err)
			}

			u.UnitNumber = input.Body.UnitNumber
			u.Floor = input.Body.Floor
			u.Rooms = input.Body.Rooms
			u.SquareFeet = input.Body.SquareFeet
			u.Shares = input.Body.Shares
			u.MonthlyMaintenance = input.Body.MonthlyMaintenance
			u.Status = input.Body.Status
			u.UpdatedAt = time.Now()

			if err := store.Units().Update(ctx, u); err != nil {
				return nil, huma.Error500InternalServerError("failed to update unit", err)
			}

			return &UpdateUnitOutput{Body: u}, nil
		}))

	huma.Register(api, huma.Operation{
		OperationID: "delete-unit",
		Method:      http.MethodDelete,
		Path:        "/units/{id}",
		Summary:     "Delete a unit",
		Tags:        []string{"Units"},
	}, audit.Audited(rec, domain.AuditDelete, "unit",
		func(in *DeleteUnitInput, _ *DeleteUnitOutput) *uuid.UUID { return &in.ID },
		func(in *DeleteUnitInput, _ *DeleteUnitOutput) string {
			return fmt.Sprintf("deleted unit %s", in.ID)
		},
		func(ctx context.Context, input *DeleteUnitInput) (*DeleteUnitOutput, error) {
			if err := requirePermission(ctx, auth.PermUnitsWrite); err != nil {
				return nil, err
			}

			if err := store.Units().Delete(ctx, input.ID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("unit not found")
				}
				return nil, huma.Error500InternalServerError("failed to delete unit", err)
			}

			out := &DeleteUnitOutput{}
			out.Body.Deleted = true
			return out, nil
		}))

	huma.Register(api, huma.Operation{
		OperationID: "list-unit-residents",
		Method:      http.MethodGet,
		Path:        "/units/{id}/residents",
		Summary:     "List a unit's residents",
		Tags:        []string{"Units"},
	}, func(ctx context.Context, input *ListUnitResidentsInput) (*ListUnitResidentsOutput, error) {
		if err := requirePermission(ctx, auth.PermResidentsRead); err != nil {
			return nil, err
		}

		residents, err := store.Residents().List(ctx, domain.ResidentFilter{UnitID: &input.ID})
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list residents", err)
		}

		return &ListUnitResidentsOutput{Body: residents}, nil
	})
}
