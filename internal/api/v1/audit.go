package v1

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/mathewar/apty/internal/auth"
	"github.com/mathewar/apty/internal/domain"
)

type ListAuditInput struct {
	ResourceType string `query:"resource_type" required:"false" maxLength:"64" doc:"Filter by resource type"`
	Limit        int    `query:"limit" minimum:"1" maximum:"500" default:"100" doc:"Max results"`
}

type ListAuditOutput struct {
	Body []*domain.AuditEntry
}

type ResourceAuditInput struct {
	ResourceID uuid.UUID `path:"resource_id" doc:"Resource ID"`
}

type ResourceAuditOutput struct {
	Body []*domain.AuditEntry
}

// Audit reads are gated on users:read: the trail exposes actor emails and
// roles, so it is an administrative surface.
func RegisterAuditRoutes(api huma.API, store DataStore) {
	huma.Register(api, huma.Operation{
		OperationID: "list-audit-entries",
		Method:      http.MethodGet,
		Path:        "/audit",
		Summary:     "List audit entries, newest first",
		Tags:        []string{"Audit"},
	}, func(ctx context.Context, input *ListAuditInput) (*ListAuditOutput, error) {
		if err := requirePermission(ctx, auth.PermUsersRead); err != nil {
			return nil, err
		}

		entries, err := store.Audit().List(ctx, domain.AuditFilter{
			ResourceType: input.ResourceType,
			Limit:        input.Limit,
		})
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list audit entries", err)
		}

		return &ListAuditOutput{Body: entries}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-resource-audit-entries",
		Method:      http.MethodGet,
		Path:        "/audit/{resource_id}",
		Summary:     "List one resource's audit entries, newest first",
		Tags:        []string{"Audit"},
	}, func(ctx context.Context, input *ResourceAuditInput) (*ResourceAuditOutput, error) {
		if err := requirePermission(ctx, auth.PermUsersRead); err != nil {
			return nil, err
		}

		entries, err := store.Audit().List(ctx, domain.AuditFilter{
			ResourceID: &input.ResourceID,
			Limit:      50,
		})
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list audit entries", err)
		}

		return &ResourceAuditOutput{Body: entries}, nil
	})
}
