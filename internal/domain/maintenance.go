package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type RequestStatus string

const (
	RequestStatusOpen       RequestStatus = "open"
	RequestStatusInProgress RequestStatus = "in_progress"
	RequestStatusResolved   RequestStatus = "resolved"
	RequestStatusClosed     RequestStatus = "closed"
)

type RequestPriority string

const (
	PriorityLow       RequestPriority = "low"
	PriorityNormal    RequestPriority = "normal"
	PriorityHigh      RequestPriority = "high"
	PriorityEmergency RequestPriority = "emergency"
)

type MaintenanceRequest struct {
	ID          uuid.UUID       `json:"id"`
	UnitID      *uuid.UUID      `json:"unit_id,omitempty"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Location    string          `json:"location"`
	Priority    RequestPriority `json:"priority"`
	Status      RequestStatus   `json:"status"`
	SubmittedBy uuid.UUID       `json:"submitted_by"`
	// Triage fields are filled by the triage collaborator, empty until then.
	Category          string          `json:"category,omitempty"`
	SuggestedPriority RequestPriority `json:"suggested_priority,omitempty"`
	VendorType        string          `json:"vendor_type,omitempty"`
	TriageSummary     string          `json:"triage_summary,omitempty"`
	UrgencyReason     string          `json:"urgency_reason,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

type RequestComment struct {
	ID        uuid.UUID `json:"id"`
	RequestID uuid.UUID `json:"request_id"`
	AuthorID  uuid.UUID `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
}

type MaintenanceFilter struct {
	Status   RequestStatus
	Priority RequestPriority
	UnitID   *uuid.UUID
}

type Triage struct {
	Category          string
	SuggestedPriority RequestPriority
	VendorType        string
	Summary           string
	UrgencyReason     string
}

type MaintenanceRepository interface {
	Create(ctx context.Context, m *MaintenanceRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*MaintenanceRequest, error)
	Update(ctx context.Context, m *MaintenanceRequest) error
	SetTriage(ctx context.Context, id uuid.UUID, t Triage) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter MaintenanceFilter) ([]*MaintenanceRequest, error)

	CreateComment(ctx context.Context, c *RequestComment) error
	ListComments(ctx context.Context, requestID uuid.UUID) ([]*RequestComment, error)
}
