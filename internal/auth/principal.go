package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Session is the opaque record persisted by the login flow. It carries only
// identity; permissions are derived from Role on every resolution so catalog
// changes apply to live sessions without forcing logout.
type Session struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Role   string    `json:"role"`
}

// SessionStore persists session records keyed by an opaque session ID.
type SessionStore interface {
	Create(ctx context.Context, s *Session, ttl time.Duration) (string, error)
	// Get returns domain.ErrNotFound (wrapped) when the session is missing or expired.
	Get(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

// Principal is the authenticated caller for one request: identity plus the
// permission set resolved from the catalog. Constructed once per request and
// never mutated.
type Principal struct {
	UserID uuid.UUID
	Email  string
	Role   string

	permissions map[Permission]struct{}
}

// ResolvePrincipal builds a Principal from a session record. A nil session
// resolves to a nil principal, which callers interpret as anonymous.
func ResolvePrincipal(s *Session) *Principal {
	if s == nil {
		return nil
	}
	return &Principal{
		UserID:      s.UserID,
		Email:       s.Email,
		Role:        s.Role,
		permissions: PermissionsForRole(s.Role),
	}
}

// HasPermission reports whether the principal holds perm.
func (p *Principal) HasPermission(perm Permission) bool {
	_, ok := p.permissions[perm]
	return ok
}

// Permissions returns the principal's permission keys, for introspection
// endpoints. Order is unspecified.
func (p *Principal) Permissions() []Permission {
	out := make([]Permission, 0, len(p.permissions))
	for perm := range p.permissions {
		out = append(out, perm)
	}
	return out
}
