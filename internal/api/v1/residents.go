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

type residentFields struct {
	UnitID     *uuid.UUID `json:"unit_id,omitempty" doc:"Unit the resident lives in"`
	FirstName  string     `json:"first_name" minLength:"1" maxLength:"128" doc:"First name"`
	LastName   string     `json:"last_name" minLength:"1" maxLength:"128" doc:"Last name"`
	Email      string     `json:"email,omitempty" maxLength:"255" doc:"Contact email"`
	Phone      string     `json:"phone,omitempty" maxLength:"32" doc:"Contact phone"`
	Role       string     `json:"role" enum:"owner,renter,board" doc:"Residency role"`
	MoveInDate *time.Time `json:"move_in_date,omitempty" doc:"Move-in date"`
}

type CreateResidentInput struct {
	Body residentFields
}

type CreateResidentOutput struct {
	Body *domain.Resident
}

type GetResidentInput struct {
	ID uuid.UUID `path:"id" doc:"Resident ID"`
}

type GetResidentOutput struct {
	Body *domain.Resident
}

type UpdateResidentInput struct {
	ID   uuid.UUID `path:"id" doc:"Resident ID"`
	Body residentFields
}

type UpdateResidentOutput struct {
	Body *domain.Resident
}

type DeleteResidentInput struct {
	ID uuid.UUID `path:"id" doc:"Resident ID"`
}

type DeleteResidentOutput struct {
	Body struct {
		Deleted bool `json:"deleted"`
	}
}

type ListResidentsInput struct {
	UnitID *uuid.UUID `query:"unit_id" required:"false" doc:"Filter by unit"`
	Role   string     `query:"role" required:"false" enum:",owner,renter,board" doc:"Filter by residency role"`
}

type ListResidentsOutput struct {
	Body []*domain.Resident
}

func RegisterResidentRoutes(api huma.API, store DataStore, rec *audit.Recorder) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-resident",
		Method:        http.MethodPost,
		Path:          "/residents",
		Summary:       "Create a resident",
		Tags:          []string{"Residents"},
		DefaultStatus: http.StatusCreated,
	}, audit.Audited(rec, domain.AuditCreate, "resident",
		func(_ *CreateResidentInput, out *CreateResidentOutput) *uuid.UUID { return &out.Body.ID },
		func(in *CreateResidentInput, _ *CreateResidentOutput) string {
			return fmt.Sprintf("created resident %s %s", in.Body.FirstName, in.Body.LastName)
		},
		func(ctx context.Context, input *CreateResidentInput) (*CreateResidentOutput, error) {
			if err := requirePermission(ctx, auth.PermResidentsWrite); err != nil {
				return nil, err
			}

			now := time.Now()
			res := &domain.Resident{
				ID:         uuid.New(),
				UnitID:     input.Body.UnitID,
				FirstName:  input.Body.FirstName,
				LastName:   input.Body.LastName,
				Email:      input.Body.Email,
				Phone:      input.Body.Phone,
				Role:       input.Body.Role,
				MoveInDate: input.Body.MoveInDate,
				CreatedAt:  now,
				UpdatedAt:  now,
			}

			if err := store.Residents().Create(ctx, res); err != nil {
				return nil, huma.Error500InternalServerError("failed to create resident", err)
			}

			return &CreateResidentOutput{Body: res}, nil
		}))

	huma.Register(api, huma.Operation{
		OperationID: "list-residents",
		Method:      http.MethodGet,
		Path:        "/residents",
		Summary:     "List residents",
		Tags:        []string{"Residents"},
	}, func(ctx context.Context, input *ListResidentsInput) (*ListResidentsOutput, error) {
		if err := requirePermission(ctx, auth.PermResidentsRead); err != nil {
			return nil, err
		}

		residents, err := store.Residents().List(ctx, domain.ResidentFilter{
			UnitID: input.UnitID,
			Role:   input.Role,
		})
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list residents", err)
		}

		return &ListResidentsOutput{Body: residents}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-resident",
		Method:      http.MethodGet,
		Path:        "/residents/{id}",
		Summary:     "Get a resident",
		Tags:        []string{"Residents"},
	}, func(ctx context.Context, input *GetResidentInput) (*GetResidentOutput, error) {
		if err := requirePermission(ctx, auth.PermResidentsRead); err != nil {
			return nil, err
		}

		res, err := store.Residents().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("resident not found")
			}
			return nil, huma.Error500InternalServerError("failed to load resident", err)
		}

		return &GetResidentOutput{Body: res}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-resident",
		Method:      http.MethodPut,
		Path:        "/residents/{id}",
		Summary:     "Update a resident",
		Tags:        []string{"Residents"},
	}, audit.Audited(rec, domain.AuditUpdate, "resident",
		func(in *UpdateResidentInput, _ *UpdateResidentOutput) *uuid.UUID { return &in.ID },
		func(in *UpdateResidentInput, _ *UpdateResidentOutput) string {
			return fmt.Sprintf("updated resident %s %s", in.Body.FirstName, in.Body.LastName)
		},
		func(ctx context.Context, input *UpdateResidentInput) (*UpdateResidentOutput, error) {
			if err := requirePermission(ctx, auth.PermResidentsWrite); err != nil {
				return nil, err
			}

			res, err := store.Residents().GetByID(ctx, input.ID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("resident not found")
				}
				return nil, huma.Error500InternalServerError("failed to load resident", err)
			}

			res.UnitID = input.Body.UnitID
			res.FirstName = input.Body.FirstName
			res.LastName = input.Body.LastName
			res.Email = input.Body.Email
			res.Phone = input.Body.Phone
			res.Role = input.Body.Role
			res.MoveInDate = input.Body.MoveInDate
			res.UpdatedAt = time.Now()

			if err := store.Residents().Update(ctx, res); err != nil {
				return nil, huma.Error500InternalServerError("failed to update resident", err)
			}

			return &UpdateResidentOutput{Body: res}, nil
		}))

	huma.Register(api, huma.Operation{
		OperationID: "delete-resident",
		Method:      http.MethodDelete,
		Path:        "/residents/{id}",
		Summary:     "Delete a resident",
		Tags:        []string{"Residents"},
	}, audit.Audited(rec, domain.AuditDelete, "resident",
		func(in *DeleteResidentInput, _ *DeleteResidentOutput) *uuid.UUID { return &in.ID },
		func(in *DeleteResidentInput, _ *DeleteResidentOutput) string {
			return fmt.Sprintf("deleted resident %s", in.ID)
		},
		func(ctx context.Context, input *DeleteResidentInput) (*DeleteResidentOutput, error) {
			if err := requirePermission(ctx, auth.PermResidentsWrite); err != nil {
				return nil, err
			}

			if err := store.Residents().Delete(ctx, input.ID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("resident not found")
				}
				return nil, huma.Error500InternalServerError("failed to delete resident", err)
			}

			out := &DeleteResidentOutput{}
			out.Body.Deleted = true
			return out, nil
		}))
}
