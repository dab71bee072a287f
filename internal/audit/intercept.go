package audit

import (
	"context"

	"github.com/google/uuid"

	"github.com/mathewar/apty/internal/auth"
	"github.com/mathewar/apty/internal/domain"
)

// Audited wraps a handler so that each successful invocation appends exactly
// one audit entry attributed to the request's principal. Handler errors
// produce no entry, and neither do anonymous requests (there is no actor to
// attribute the change to). The single return path below is what guarantees
// the exactly-once behavior; the response never waits for the append.
//
// resourceID and summary are per-route extractors: resourceID pulls the
// affected entity's ID from the input or the response (nil for batch
// operations with no single target), summary renders the one-line human
// description stored on the entry.
func Audited[I, O any](
	rec *Recorder,
	action domain.AuditAction,
	resourceType string,
	resourceID func(in *I, out *O) *uuid.UUID,
	summary func(in *I, out *O) string,
	next func(ctx context.Context, in *I) (*O, error),
) func(ctx context.Context, in *I) (*O, error) {
	return func(ctx context.Context, in *I) (*O, error) {
		out, err := next(ctx, in)
		if err != nil {
			return nil, err
		}

		if p := auth.PrincipalFromContext(ctx); p != nil {
			rec.Append(Draft{
				ActorID:      p.UserID,
				ActorEmail:   p.Email,
				ActorRole:    p.Role,
				Action:       action,
				ResourceType: resourceType,
				ResourceID:   resourceID(in, out),
				Summary:      summary(in, out),
			})
		}

		return out, nil
	}
}
