package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Announcement struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Category  string    `json:"category"` // "general", "emergency", "event", "rules"
	PostedBy  uuid.UUID `json:"posted_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type AnnouncementRepository interface {
	Create(ctx context.Context, a *Announcement) error
	GetByID(ctx context.Context, id uuid.UUID) (*Announcement, error)
	Update(ctx context.Context, a *Announcement) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]*Announcement, error)
}
