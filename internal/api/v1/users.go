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

type ListUsersOutput struct {
	Body []*domain.User
}

type UpdateUserInput struct {
	ID   uuid.UUID `path:"id" doc:"User ID"`
	Body struct {
		Role       string     `json:"role" enum:"admin,resident" doc:"Account role"`
		ResidentID *uuid.UUID `json:"resident_id,omitempty" doc:"Linked resident profile"`
	}
}

type UpdateUserOutput struct {
	Body *domain.User
}

type DeleteUserInput struct {
	ID uuid.UUID `path:"id" doc:"User ID"`
}

type DeleteUserOutput struct {
	Body struct {
		Deleted bool `json:"deleted"`
	}
}

func RegisterUserRoutes(api huma.API, store DataStore, rec *audit.Recorder) {
	huma.Register(api, huma.Operation{
		OperationID: "list-users",
		Method:      http.MethodGet,
		Path:        "/users",
		Summary:     "List accounts",
		Tags:        []string{"Users"},
	}, func(ctx context.Context, _ *struct{}) (*ListUsersOutput, error) {
		if err := requirePermission(ctx, auth.PermUsersRead); err != nil {
			return nil, err
		}

		users, err := store.Users().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list users", err)
		}

		return &ListUsersOutput{Body: users}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-user",
		Method:      http.MethodPut,
		Path:        "/users/{id}",
		Summary:     "Update an account's role or resident link",
		Tags:        []string{"Users"},
	}, audit.Audited(rec, domain.AuditUpdate, "user",
		func(in *UpdateUserInput, _ *UpdateUserOutput) *uuid.UUID { return &in.ID },
		func(in *UpdateUserInput, out *UpdateUserOutput) string {
			return fmt.Sprintf("set role of %s to %s", out.Body.Email, in.Body.Role)
		},
		func(ctx context.Context, input *UpdateUserInput) (*UpdateUserOutput, error) {
			if err := requirePermission(ctx, auth.PermUsersWrite); err != nil {
				return nil, err
			}

			user, err := store.Users().GetByID(ctx, input.ID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("user not found")
				}
				return nil, huma.Error500InternalServerError("failed to load user", err)
			}

			user.Role = input.Body.Role
			user.ResidentID = input.Body.ResidentID
			user.UpdatedAt = time.Now()

			if err := store.Users().Update(ctx, user); err != nil {
				return nil, huma.Error500InternalServerError("failed to update user", err)
			}

			return &UpdateUserOutput{Body: user}, nil
		}))

	huma.Register(api, huma.Operation{
		OperationID: "delete-user",
		Method:      http.MethodDelete,
		Path:        "/users/{id}",
		Summary:     "Delete an account",
		Tags:        []string{"Users"},
	}, audit.Audited(rec, domain.AuditDelete, "user",
		func(in *DeleteUserInput, _ *DeleteUserOutput) *uuid.UUID { return &in.ID },
		func(in *DeleteUserInput, _ *DeleteUserOutput) string {
			return fmt.Sprintf("deleted user %s", in.ID)
		},
		func(ctx context.Context, input *DeleteUserInput) (*DeleteUserOutput, error) {
			if err := requirePermission(ctx, auth.PermUsersWrite); err != nil {
				return nil, err
			}

			if err := store.Users().Delete(ctx, input.ID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("user not found")
				}
				return nil, huma.Error500InternalServerError("failed to delete user", err)
			}

			out := &DeleteUserOutput{}
			out.Body.Deleted = true
			return out, nil
		}))
}
