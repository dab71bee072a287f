package v1

import (
	"context"
	"errors"
	"fmt"

	"github.com/danielgtaylor/huma/v2"

	"github.com/mathewar/apty/internal/auth"
	"github.com/mathewar/apty/internal/domain"
)

// requirePermission gates a handler on one catalog permission. It must be the
// first thing a mutating handler does. Anonymous callers get 401; known
// callers without the permission get a 403 naming the missing permission.
func requirePermission(ctx context.Context, perm auth.Permission) error {
	err := auth.RequirePermission(auth.PrincipalFromContext(ctx), perm)
	if err == nil {
		return nil
	}

	if errors.Is(err, domain.ErrUnauthorized) {
		return huma.Error401Unauthorized("authentication required")
	}

	var pe *auth.PermissionError
	if errors.As(err, &pe) {
		return huma.Error403Forbidden(fmt.Sprintf("permission %s required", pe.Required))
	}

	return huma.Error403Forbidden("forbidden")
}

// requireAuthenticated gates a handler on any valid session.
func requireAuthenticated(ctx context.Context) (*auth.Principal, error) {
	p := auth.PrincipalFromContext(ctx)
	if err := auth.RequireAuthenticated(p); err != nil {
		return nil, huma.Error401Unauthorized("authentication required")
	}
	return p, nil
}
