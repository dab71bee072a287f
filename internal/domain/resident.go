package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Resident struct {
	ID         uuid.UUID  `json:"id"`
	UnitID     *uuid.UUID `json:"unit_id,omitempty"`
	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	Role       string     `json:"role"` // "owner", "renter", "board"
	MoveInDate *time.Time `json:"move_in_date,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type ResidentFilter struct {
	UnitID *uuid.UUID
	Role   string
}

type ResidentRepository interface {
	Create(ctx context.Context, r *Resident) error
	GetByID(ctx context.Context, id uuid.UUID) (*Resident, error)
	Update(ctx context.Context, r *Resident) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ResidentFilter) ([]*Resident, error)
}
