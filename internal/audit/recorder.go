// Package audit records who changed what. Writes are best-effort: the trail
// is observability, not transactional state, so a failed append never blocks
// or fails the business operation it describes.
package audit

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/mathewar/apty/internal/domain"
)

// Draft is an audit entry before the recorder assigns its ID and timestamp.
type Draft struct {
	ActorID      uuid.UUID
	ActorEmail   string
	ActorRole    string
	Action       domain.AuditAction
	ResourceType string
	ResourceID   *uuid.UUID
	Summary      string
}

const appendTimeout = 5 * time.Second

// Recorder appends audit entries asynchronously. Append returns before the
// write completes; failures are logged and swallowed.
type Recorder struct {
	repo domain.AuditRepository
	wg   sync.WaitGroup
}

func NewRecorder(repo domain.AuditRepository) *Recorder {
	return &Recorder{repo: repo}
}

// Append assigns the entry's ID and timestamp and dispatches the write on a
// goroutine detached from the request. The response does not wait for it.
func (r *Recorder) Append(d Draft) {
	entry := &domain.AuditEntry{
		ID:           uuid.New(),
		ActorID:      d.ActorID,
		ActorEmail:   d.ActorEmail,
		ActorRole:    d.ActorRole,
		Action:       d.Action,
		ResourceType: d.ResourceType,
		ResourceID:   d.ResourceID,
		Summary:      d.Summary,
		OccurredAt:   time.Now(),
	}

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()

		ctx, cancel := context.WithTimeout(context.Background(), appendTimeout)
		defer cancel()

		if err := r.repo.Record(ctx, entry); err != nil {
			log.Warn().Err(err).
				Str("resource_type", entry.ResourceType).
				Str("action", string(entry.Action)).
				Msg("audit: write failed")
		}
	}()
}

// Wait blocks until all dispatched writes have finished. Used at shutdown and
// in tests; request handlers never call it.
func (r *Recorder) Wait() {
	r.wg.Wait()
}
