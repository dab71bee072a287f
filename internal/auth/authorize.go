package auth

import (
	"fmt"

	"github.com/mathewar/apty/internal/domain"
)

// PermissionError reports a present-but-insufficient principal. It names the
// permission that was required so support can diagnose denials.
type PermissionError struct {
	Required Permission
}

func (e *PermissionError) Error() string {
	return fmt.Sprintf("auth: permission %s required", e.Required)
}

func (e *PermissionError) Unwrap() error { return domain.ErrForbidden }

// RequireAuthenticated rejects anonymous callers.
func RequireAuthenticated(p *Principal) error {
	if p == nil {
		return domain.ErrUnauthorized
	}
	return nil
}

// RequirePermission rejects anonymous callers and callers lacking perm.
// It must run before any handler touches persistent state.
func RequirePermission(p *Principal, perm Permission) error {
	if p == nil {
		return domain.ErrUnauthorized
	}
	if !p.HasPermission(perm) {
		return &PermissionError{Required: perm}
	}
	return nil
}
