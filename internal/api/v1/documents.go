package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/mathewar/apty/internal/ai"
	"github.com/mathewar/apty/internal/audit"
	"github.com/mathewar/apty/internal/auth"
	"github.com/mathewar/apty/internal/domain"
)

type CreateDocumentInput struct {
	Body struct {
		Title    string `json:"title" minLength:"1" maxLength:"255" doc:"Document title"`
		Category string `json:"category" enum:"financials,minutes,rules,other" doc:"Category"`
		FilePath string `json:"file_path" minLength:"1" maxLength:"512" doc:"Path of the stored file"`
	}
}

type CreateDocumentOutput struct {
	Body *domain.Document
}

type GetDocumentInput struct {
	ID uuid.UUID `path:"id" doc:"Document ID"`
}

type GetDocumentOutput struct {
	Body *domain.Document
}

type DeleteDocumentInput struct {
	ID uuid.UUID `path:"id" doc:"Document ID"`
}

type DeleteDocumentOutput struct {
	Body struct {
		Deleted bool `json:"deleted"`
	}
}

type ListDocumentsOutput struct {
	Body []*domain.Document
}

type AnalyzeDocumentInput struct {
	ID uuid.UUID `path:"id" doc:"Document ID"`
}

type AnalyzeDocumentOutput struct {
	Body *ai.DocumentAnalysis
}

func RegisterDocumentRoutes(api huma.API, store DataStore, rec *audit.Recorder, analyzer ai.DocumentAnalyzer) {
	huma.Register(api, huma.Operation{
		OperationID:   "create-document",
		Method:        http.MethodPost,
		Path:          "/documents",
		Summary:       "Register an uploaded document",
		Tags:          []string{"Documents"},
		DefaultStatus: http.StatusCreated,
	}, audit.Audited(rec, domain.AuditCreate, "document",
		func(_ *CreateDocumentInput, out *CreateDocumentOutput) *uuid.UUID { return &out.Body.ID },
		func(in *CreateDocumentInput, _ *CreateDocumentOutput) string {
			return fmt.Sprintf("uploaded document %q", in.Body.Title)
		},
		func(ctx context.Context, input *CreateDocumentInput) (*CreateDocumentOutput, error) {
			if err := requirePermission(ctx, auth.PermDocumentsWrite); err != nil {
				return nil, err
			}
			p := auth.PrincipalFromContext(ctx)

			d := &domain.Document{
				ID:         uuid.New(),
				Title:      input.Body.Title,
				Category:   input.Body.Category,
				FilePath:   input.Body.FilePath,
				UploadedBy: p.UserID,
				CreatedAt:  time.Now(),
			}

			if err := store.Documents().Create(ctx, d); err != nil {
				return nil, huma.Error500InternalServerError("failed to create document", err)
			}

			return &CreateDocumentOutput{Body: d}, nil
		}))

	huma.Register(api, huma.Operation{
		OperationID: "list-documents",
		Method:      http.MethodGet,
		Path:        "/documents",
		Summary:     "List documents, newest first",
		Tags:        []string{"Documents"},
	}, func(ctx context.Context, _ *struct{}) (*ListDocumentsOutput, error) {
		if err := requirePermission(ctx, auth.PermDocumentsRead); err != nil {
			return nil, err
		}

		documents, err := store.Documents().List(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list documents", err)
		}

		return &ListDocumentsOutput{Body: documents}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-document",
		Method:      http.MethodGet,
		Path:        "/documents/{id}",
		Summary:     "Get a document",
		Tags:        []string{"Documents"},
	}, func(ctx context.Context, input *GetDocumentInput) (*GetDocumentOutput, error) {
		if err := requirePermission(ctx, auth.PermDocumentsRead); err != nil {
			return nil, err
		}

		d, err := store.Documents().GetByID(ctx, input.ID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return nil, huma.Error404NotFound("document not found")
			}
			return nil, huma.Error500InternalServerError("failed to load document", err)
		}

		return &GetDocumentOutput{Body: d}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-document",
		Method:      http.MethodDelete,
		Path:        "/documents/{id}",
		Summary:     "Delete a document",
		Tags:        []string{"Documents"},
	}, audit.Audited(rec, domain.AuditDelete, "document",
		func(in *DeleteDocumentInput, _ *DeleteDocumentOutput) *uuid.UUID { return &in.ID },
		func(in *DeleteDocumentInput, _ *DeleteDocumentOutput) string {
			return fmt.Sprintf("deleted document %s", in.ID)
		},
		func(ctx context.Context, input *DeleteDocumentInput) (*DeleteDocumentOutput, error) {
			if err := requirePermission(ctx, auth.PermDocumentsWrite); err != nil {
				return nil, err
			}

			if err := store.Documents().Delete(ctx, input.ID); err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("document not found")
				}
				return nil, huma.Error500InternalServerError("failed to delete document", err)
			}

			out := &DeleteDocumentOutput{}
			out.Body.Deleted = true
			return out, nil
		}))

	huma.Register(api, huma.Operation{
		OperationID: "analyze-document",
		Method:      http.MethodPost,
		Path:        "/documents/{id}/analyze",
		Summary:     "Run document analysis and store the result",
		Tags:        []string{"Documents"},
	}, audit.Audited(rec, domain.AuditUpdate, "document",
		func(in *AnalyzeDocumentInput, _ *AnalyzeDocumentOutput) *uuid.UUID { return &in.ID },
		func(in *AnalyzeDocumentInput, _ *AnalyzeDocumentOutput) string {
			return fmt.Sprintf("analyzed document %s", in.ID)
		},
		func(ctx context.Context, input *AnalyzeDocumentInput) (*AnalyzeDocumentOutput, error) {
			if err := requirePermission(ctx, auth.PermDocumentsWrite); err != nil {
				return nil, err
			}

			d, err := store.Documents().GetByID(ctx, input.ID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("document not found")
				}
				return nil, huma.Error500InternalServerError("failed to load document", err)
			}

			analysis, err := analyzer.Analyze(ctx, d.FilePath)
			if err != nil {
				return nil, huma.Error502BadGateway("document analysis failed", err)
			}

			raw, err := json.Marshal(analysis)
			if err != nil {
				return nil, huma.Error500InternalServerError("failed to encode analysis", err)
			}

			if err := store.Documents().SetAnalysis(ctx, d.ID, raw, time.Now()); err != nil {
				return nil, huma.Error500InternalServerError("failed to store analysis", err)
			}

			return &AnalyzeDocumentOutput{Body: analysis}, nil
		}))
}
