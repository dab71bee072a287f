package v1

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/mathewar/apty/internal/domain"
)

// DataStore abstracts the repository accessor pattern for handler testing.
// *postgres.Store satisfies this interface.
type DataStore interface {
	Building() domain.BuildingRepository
	Units() domain.UnitRepository
	Residents() domain.ResidentRepository
	Announcements() domain.AnnouncementRepository
	Documents() domain.DocumentRepository
	Maintenance() domain.MaintenanceRepository
	Finance() domain.FinanceRepository
	Users() domain.UserRepository
	Audit() domain.AuditRepository
}

// AuthService abstracts authentication operations for handler testing.
// *auth.Service satisfies this interface.
type AuthService interface {
	Register(ctx context.Context, email, password string, residentID *uuid.UUID, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Logout(ctx context.Context, token string) error
	SessionTTL() time.Duration
}
