package domain

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type Document struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	Category   string    `json:"category"` // "financials", "minutes", "rules", "other"
	FilePath   string    `json:"file_path"`
	UploadedBy uuid.UUID `json:"uploaded_by"`
	// Analysis is the structured JSON produced by the document-analysis
	// collaborator, stored verbatim. Nil until the document is analyzed.
	Analysis   json.RawMessage `json:"analysis,omitempty"`
	AnalyzedAt *time.Time      `json:"analyzed_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

type DocumentRepository interface {
	Create(ctx context.Context, d *Document) error
	GetByID(ctx context.Context, id uuid.UUID) (*Document, error)
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Document, error)
	SetAnalysis(ctx context.Context, id uuid.UUID, analysis json.RawMessage, analyzedAt time.Time) error
}
