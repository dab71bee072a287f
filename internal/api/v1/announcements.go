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

type announcementFields struct {
	Title    string `json:"title" minLength:"1" maxLength:"255" doc:"Headline"`
	Body     string `json:"body" minLength:"1" doc:"Announcement text"`
	Category string `json:"category" enum:"general,emergency,event,rules" doc:"Category"`
}

type CreateAnnouncementInput struct {
	Body announcementFields
}

type CreateAnnouncementOutput struct {
	Body *domain.Announcement
}

type GetAnnouncementInput struct {
	ID uuid.UUID `path:"id" doc:"Announcement ID"`
}

type GetAnnouncementOutput struct {
	Body *domain.Announcement
}

type UpdateAnnouncementInput struct {
	ID   uuid.UUID `path:"id" doc:"Announcement ID"`
	Body announcementFields
}

type UpdateAnnouncementOutput struct {
	Body *domain.Announcement
}

type DeleteAnnouncementInput struct {
	ID uuid.UUID `path:"id" doc:"Announcement ID"`
}

type DeleteAnnouncementOutput struct {
	Body struct {
		Deleted bool `json:"deleted"`
	}
}

type ListAnnouncementsOutput struct {
	Body []*domain.Announcement
}

func RegisterAnnouncementRoutes(api huma.API, store DataStore, rec *audit.Recorder) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-announcement",
		Method:        http.MethodPost,
		Path:          "/announcements",
		Summary:       "Post an announcement",
		Tags:          []string{"Announcements"},
		DefaultStatus: http.StatusCreated,
	}, audit.Audited(rec, domain.AuditCreate, "announcement",
		func(_ *CreateAnnouncementInput, out *CreateAnnouncementOutput) *uuid.UUID { return &out.Body.ID },
		func(in *CreateAnnouncementInput, _ *CreateAnnouncementOutput) string {
			return fmt.Sprintf("posted announcement %q", in.Body.Title)
		},
		func(ctx context.Context, input *CreateAnnouncementInput) (*CreateAnnouncementOutput, error) {
			if err := requirePermission(ctx, auth.PermAnnouncementsWrite); err != nil {
				return nil, err
			}
			p := auth.PrincipalFromContext(ctx)

			now := time.Now()
			a := &domain.Announcement{
				ID:        uuid.New(),
				Title:     input.Body.Title,
				Body:      input.Body.Body,
				Category:  input.Body.Category,
				PostedBy:  p.UserID,
				CreatedAt: now,
				UpdatedAt: now,
			}

			if err := store.Announcements().Create(ctx, a); err != nil {
				return nil, huma.Error500InternalServerError("failed to create announcement", err)
			}

			return &CreateAnnouncementOutput{Body: a}, nil
		}))

	huma.Register(api, huma.Operation{
		OperationID: "list-announcements",
		Method:      http.MethodGet,
		Path:        "/announcements",
		Summary:     "List announcements, newest first",
		Tags:        []string{"Announcements"},
	}, func(ctx context.Context, _ *struct{}) (*ListAnnouncementsOutput, error) {
		if err := requirePermission(ctx, auth.PermAnnouncementsRead); err != nil {
			return nil, err
		}

		announcements, err := store.Announcements().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list announcements", err)
		}

		return &ListAnnouncementsOutput{Body: announcements}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-announcement",
		Method:      http.MethodGet,
		Path:        "/announcements/{id}",
		Summary:     "Get an announcement",
		Tags:        []string{"Announcements"},
	}, func(ctx context.Context, input *GetAnnouncementInput) (*GetAnnouncementOutput, error) {
		if err := requirePermission(ctx, auth.PermAnnouncementsRead); err != nil {
			return nil, err
		}

		a, err := store.Announcements().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("announcement not found")
			}
			return nil, huma.Error500InternalServerError("failed to load announcement", err)
		}

		return &GetAnnouncementOutput{Body: a}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-announcement",
		Method:      http.MethodPut,
		Path:        "/announcements/{id}",
		Summary:     "Update an announcement",
		Tags:        []string{"Announcements"},
	}, audit.Audited(rec, domain.AuditUpdate, "announcement",
		func(in *UpdateAnnouncementInput, _ *UpdateAnnouncementOutput) *uuid.UUID { return &in.ID },
		func(in *UpdateAnnouncementInput, _ *UpdateAnnouncementOutput) string {
			return fmt.Sprintf("updated announcement %q", in.Body.Title)
		},
		func(ctx context.Context, input *UpdateAnnouncementInput) (*UpdateAnnouncementOutput, error) {
			if err := requirePermission(ctx, auth.PermAnnouncementsWrite); err != nil {
				return nil, err
			}

			a, err := store.Announcements().GetByID(ctx, input.ID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("announcement not found")
				}
				return nil, huma.Error500InternalServerError("failed to load announcement", err)
			}

			a.Title = input.Body.Title
			a.Body = input.Body.Body
			a.Category = input.Body.Category
			a.UpdatedAt = time.Now()

			if err := store.Announcements().Update(ctx, a); err != nil {
				return nil, huma.Error500InternalServerError("failed to update announcement", err)
			}

			return &UpdateAnnouncementOutput{Body: a}, nil
		}))

	huma.Register(api, huma.Operation{
		OperationID: "delete-announcement",
		Method:      http.MethodDelete,
		Path:        "/announcements/{id}",
		Summary:     "Delete an announcement",
		Tags:        []string{"Announcements"},
	}, audit.Audited(rec, domain.AuditDelete, "announcement",
		func(in *DeleteAnnouncementInput, _ *DeleteAnnouncementOutput) *uuid.UUID { return &in.ID },
		func(in *DeleteAnnouncementInput, _ *DeleteAnnouncementOutput) string {
			return fmt.Sprintf("deleted announcement %s", in.ID)
		},
		func(ctx context.Context, input *DeleteAnnouncementInput) (*DeleteAnnouncementOutput, error) {
			if err := requirePermission(ctx, auth.PermAnnouncementsWrite); err != nil {
				return nil, err
			}

			if err := store.Announcements().Delete(ctx, input.ID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("announcement not found")
				}
				return nil, huma.Error500InternalServerError("failed to delete announcement", err)
			}

			out := &DeleteAnnouncementOutput{}
			out.Body.Deleted = true
			return out, nil
		}))
}
