package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mathewar/apty/internal/ai"
	"github.com/mathewar/apty/internal/audit"
	"github.com/mathewar/apty/internal/auth"
	"github.com/mathewar/apty/internal/domain"
	"github.com/mathewar/apty/internal/notify"
)

type CreateRequestInput struct {
	Body struct {
		UnitID      *uuid.UUID             `json:"unit_id,omitempty" doc:"Affected unit"`
		Title       string                 `json:"title" minLength:"1" maxLength:"255" doc:"Short description"`
		Description string                 `json:"description,omitempty" doc:"Full description"`
		Location    string                 `json:"location,omitempty" maxLength:"255" doc:"Where in the building"`
		Priority    domain.RequestPriority `json:"priority,omitempty" enum:",low,normal,high,emergency" doc:"Reporter's priority"`
	}
}

type CreateRequestOutput struct {
	Body *domain.MaintenanceRequest
}

type GetRequestInput struct {
	ID uuid.UUID `path:"id" doc:"Request ID"`
}

type GetRequestOutput struct {
	Body *domain.MaintenanceRequest
}

type UpdateRequestInput struct {
	ID   uuid.UUID `path:"id" doc:"Request ID"`
	Body struct {
		Title       string                 `json:"title" minLength:"1" maxLength:"255" doc:"Short description"`
		Description string                 `json:"description,omitempty" doc:"Full description"`
		Location    string                 `json:"location,omitempty" maxLength:"255" doc:"Where in the building"`
		Priority    domain.RequestPriority `json:"priority" enum:"low,normal,high,emergency" doc:"Priority"`
		Status      domain.RequestStatus   `json:"status" enum:"open,in_progress,resolved,closed" doc:"Workflow status"`
	}
}

type UpdateRequestOutput struct {
	Body *domain.MaintenanceRequest
}

type DeleteRequestInput struct {
	ID uuid.UUID `path:"id" doc:"Request ID"`
}

type DeleteRequestOutput struct {
	Body struct {
		Deleted bool `json:"deleted"`
	}
}

type ListRequestsInput struct {
	Status   domain.RequestStatus   `query:"status" required:"false" enum:",open,in_progress,resolved,closed" doc:"Filter by status"`
	Priority domain.RequestPriority `query:"priority" required:"false" enum:",low,normal,high,emergency" doc:"Filter by priority"`
	UnitID   *uuid.UUID             `query:"unit_id" required:"false" doc:"Filter by unit"`
}

type ListRequestsOutput struct {
	Body []*domain.MaintenanceRequest
}

type TriageRequestInput struct {
	ID uuid.UUID `path:"id" doc:"Request ID"`
}

type TriageRequestOutput struct {
	Body *ai.TriageResult
}

type CreateCommentInput struct {
	ID   uuid.UUID `path:"id" doc:"Request ID"`
	Body struct {
		Text string `json:"body" minLength:"1" doc:"Comment text"`
	}
}

type CreateCommentOutput struct {
	Body *domain.RequestComment
}

type ListCommentsInput struct {
	ID uuid.UUID `path:"id" doc:"Request ID"`
}

type ListCommentsOutput struct {
	Body []*domain.RequestComment
}

func RegisterMaintenanceRoutes(api huma.API, store DataStore, rec *audit.Recorder, triager ai.Triager, notifier notify.Notifier) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-maintenance-request",
		Method:        http.MethodPost,
		Path:          "/maintenance",
		Summary:       "Submit a maintenance request",
		Tags:          []string{"Maintenance"},
		DefaultStatus: http.StatusCreated,
	}, audit.Audited(rec, domain.AuditCreate, "maintenance_request",
		func(_ *CreateRequestInput, out *CreateRequestOutput) *uuid.UUID { return &out.Body.ID },
		func(in *CreateRequestInput, _ *CreateRequestOutput) string {
			return fmt.Sprintf("submitted maintenance request %q", in.Body.Title)
		},
		func(ctx context.Context, input *CreateRequestInput) (*CreateRequestOutput, error) {
			if err := requirePermission(ctx, auth.PermMaintenanceWrite); err != nil {
				return nil, err
			}
			p := auth.PrincipalFromContext(ctx)

			priority := input.Body.Priority
			if priority == "" {
				priority = domain.PriorityNormal
			}

			now := time.Now()
			m := &domain.MaintenanceRequest{
				ID:          uuid.New(),
				UnitID:      input.Body.UnitID,
				Title:       input.Body.Title,
				Description: input.Body.Description,
				Location:    input.Body.Location,
				Priority:    priority,
				Status:      domain.RequestStatusOpen,
				SubmittedBy: p.UserID,
				CreatedAt:   now,
				UpdatedAt:   now,
			}

			if err := store.Maintenance().Create(ctx, m); err != nil {
				return nil, huma.Error500InternalServerError("failed to create request", err)
			}

			return &CreateRequestOutput{Body: m}, nil
		}))

	huma.Register(api, huma.Operation{
		OperationID: "list-maintenance-requests",
		Method:      http.MethodGet,
		Path:        "/maintenance",
		Summary:     "List maintenance requests",
		Tags:        []string{"Maintenance"},
	}, func(ctx context.Context, input *ListRequestsInput) (*ListRequestsOutput, error) {
		if err := requirePermission(ctx, auth.PermMaintenanceRead); err != nil {
			return nil, err
		}

		requests, err := store.Maintenance().List(ctx, domain.MaintenanceFilter{
			Status:   input.Status,
			Priority: input.Priority,
			UnitID:   input.UnitID,
		})
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list requests", err)
		}

		return &ListRequestsOutput{Body: requests}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-maintenance-request",
		Method:      http.MethodGet,
		Path:        "/maintenance/{id}",
		Summary:     "Get a maintenance request",
		Tags:        []string{"Maintenance"},
	}, func(ctx context.Context, input *GetRequestInput) (*GetRequestOutput, error) {
		if err := requirePermission(ctx, auth.PermMaintenanceRead); err != nil {
			return nil, err
		}

		m, err := store.Maintenance().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("request not found")
			}
			return nil, huma.Error500InternalServerError("failed to load request", err)
		}

		return &GetRequestOutput{Body: m}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-maintenance-request",
		Method:      http.MethodPut,
		Path:        "/maintenance/{id}",
		Summary:     "Update a maintenance request's status or details",
		Tags:        []string{"Maintenance"},
	}, audit.Audited(rec, domain.AuditUpdate, "maintenance_request",
		func(in *UpdateRequestInput, _ *UpdateRequestOutput) *uuid.UUID { return &in.ID },
		func(in *UpdateRequestInput, _ *UpdateRequestOutput) string {
			return fmt.Sprintf("updated maintenance request %q to %s", in.Body.Title, in.Body.Status)
		},
		func(ctx context.Context, input *UpdateRequestInput) (*UpdateRequestOutput, error) {
			if err := requirePermission(ctx, auth.PermMaintenanceManage); err != nil {
				return nil, err
			}

			m, err := store.Maintenance().GetByID(ctx, input.ID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("request not found")
				}
				return nil, huma.Error500InternalServerError("failed to load request", err)
			}

			m.Title = input.Body.Title
			m.Description = input.Body.Description
			m.Location = input.Body.Location
			m.Priority = input.Body.Priority
			m.Status = input.Body.Status
			m.UpdatedAt = time.Now()

			if err := store.Maintenance().Update(ctx, m); err != nil {
				return nil, huma.Error500InternalServerError("failed to update request", err)
			}

			return &UpdateRequestOutput{Body: m}, nil
		}))

	huma.Register(api, huma.Operation{
		OperationID: "delete-maintenance-request",
		Method:      http.MethodDelete,
		Path:        "/maintenance/{id}",
		Summary:     "Delete a maintenance request",
		Tags:        []string{"Maintenance"},
	}, audit.Audited(rec, domain.AuditDelete, "maintenance_request",
		func(in *DeleteRequestInput, _ *DeleteRequestOutput) *uuid.UUID { return &in.ID },
		func(in *DeleteRequestInput, _ *DeleteRequestOutput) string {
			return fmt.Sprintf("deleted maintenance request %s", in.ID)
		},
		func(ctx context.Context, input *DeleteRequestInput) (*DeleteRequestOutput, error) {
			if err := requirePermission(ctx, auth.PermMaintenanceManage); err != nil {
				return nil, err
			}

			if err := store.Maintenance().Delete(ctx, input.ID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("request not found")
				}
				return nil, huma.Error500InternalServerError("failed to delete request", err)
			}

			out := &DeleteRequestOutput{}
			out.Body.Deleted = true
			return out, nil
		}))

	huma.Register(api, huma.Operation{
		OperationID: "triage-maintenance-request",
		Method:      http.MethodPost,
		Path:        "/maintenance/{id}/triage",
		Summary:     "Classify a request and store the suggestion",
		Tags:        []string{"Maintenance"},
	}, audit.Audited(rec, domain.AuditUpdate, "maintenance_request",
		func(in *TriageRequestInput, _ *TriageRequestOutput) *uuid.UUID { return &in.ID },
		func(in *TriageRequestInput, out *TriageRequestOutput) string {
			return fmt.Sprintf("triaged maintenance request %s as %s/%s", in.ID, out.Body.Category, out.Body.SuggestedPriority)
		},
		func(ctx context.Context, input *TriageRequestInput) (*TriageRequestOutput, error) {
			if err := requirePermission(ctx, auth.PermMaintenanceManage); err != nil {
				return nil, err
			}

			m, err := store.Maintenance().GetByID(ctx, input.ID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("request not found")
				}
				return nil, huma.Error500InternalServerError("failed to load request", err)
			}

			result, err := triager.Triage(ctx, ai.TriageInput{
				Title:       m.Title,
				Description: m.Description,
				Location:    m.Location,
			})
			if err != nil {
				return nil, huma.Error502BadGateway("triage failed", err)
			}

			err = store.Maintenance().SetTriage(ctx, m.ID, domain.Triage{
				Category:          result.Category,
				SuggestedPriority: result.SuggestedPriority,
				VendorType:        result.VendorType,
				Summary:           result.Summary,
				UrgencyReason:     result.UrgencyReason,
			})
			if err != nil {
				return nil, huma.Error500InternalServerError("failed to store triage", err)
			}

			if notifier != nil && result.SuggestedPriority == domain.PriorityEmergency {
				msg := fmt.Sprintf(":rotating_light: Emergency maintenance: %s (%s): %s", m.Title, m.Location, result.Summary)
				if err := notifier.Notify(ctx, msg); err != nil {
					log.Warn().Err(err).Str("request_id", m.ID.String()).Msg("emergency alert delivery failed")
				}
			}

			return &TriageRequestOutput{Body: result}, nil
		}))

	huma.Register(api, huma.Operation{
		OperationID:   "create-request-comment",
		Method:        http.MethodPost,
		Path:          "/maintenance/{id}/comments",
		Summary:       "Comment on a maintenance request",
		Tags:          []string{"Maintenance"},
		DefaultStatus: http.StatusCreated,
	}, func(ctx context.Context, input *CreateCommentInput) (*CreateCommentOutput, error) {
		if err := requirePermission(ctx, auth.PermMaintenanceWrite); err != nil {
			return nil, err
		}
		p := auth.PrincipalFromContext(ctx)

		if _, err := store.Maintenance().GetByID(ctx, input.ID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("request not found")
			}
			return nil, huma.Error500InternalServerError("failed to load request", err)
		}

		c := &domain.RequestComment{
			ID:        uuid.New(),
			RequestID: input.ID,
			AuthorID:  p.UserID,
			Body:      input.Body.Text,
			CreatedAt: time.Now(),
		}

		if err := store.Maintenance().CreateComment(ctx, c); err != nil {
			return nil, huma.Error500InternalServerError("failed to create comment", err)
		}

		return &CreateCommentOutput{Body: c}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-request-comments",
		Method:      http.MethodGet,
		Path:        "/maintenance/{id}/comments",
		Summary:     "List a request's comments, oldest first",
		Tags:        []string{"Maintenance"},
	}, func(ctx context.Context, input *ListCommentsInput) (*ListCommentsOutput, error) {
		if err := requirePermission(ctx, auth.PermMaintenanceRead); err != nil {
			return nil, err
		}

		comments, err := store.Maintenance().ListComments(ctx, input.ID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list comments", err)
		}

		return &ListCommentsOutput{Body: comments}, nil
	})
}
