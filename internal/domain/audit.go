package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type AuditAction string

const (
	AuditCreate AuditAction = "CREATE"
	AuditUpdate AuditAction = "UPDATE"
	AuditDelete AuditAction = "DELETE"
)

// AuditEntry is an immutable record of one attributed mutation. Actor fields
// are a snapshot taken at write time; the user may later be deleted or change
// role without affecting the trail.
type AuditEntry struct {
	ID           uuid.UUID   `json:"id"`
	ActorID      uuid.UUID   `json:"actor_id"`
	ActorEmail   string      `json:"actor_email"`
	ActorRole    string      `json:"actor_role"`
	Action       AuditAction `json:"action"`
	ResourceType string      `json:"resource_type"`
	// ResourceID is nil for actions with no single-entity target, such as
	// batch charge generation.
	ResourceID *uuid.UUID `json:"resource_id,omitempty"`
	Summary    string     `json:"summary"`
	OccurredAt time.Time  `json:"occurred_at"`
}

type AuditFilter struct {
	ResourceType string
	ResourceID   *uuid.UUID
	// Limit caps the result count; zero means no cap.
	Limit int
}

// AuditRepository is append-only by contract: entries are never updated or
// deleted after Record.
type AuditRepository interface {
	Record(ctx context.Context, e *AuditEntry) error
	// List returns entries matching the filter, newest first.
	List(ctx context.Context, filter AuditFilter) ([]*AuditEntry, error)
}
