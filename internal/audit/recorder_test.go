package audit_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathewar/apty/internal/audit"
	"github.com/mathewar/apty/internal/domain"
)

// memAuditRepo collects recorded entries and can be told to fail.
type memAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditEntry
	fail    bool
}

func (r *memAuditRepo) Record(_ context.Context, e *domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("write failed")
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *memAuditRepo) List(_ context.Context, _ domain.AuditFilter) ([]*domain.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.AuditEntry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

func (r *memAuditRepo) recorded() []*domain.AuditEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.AuditEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func TestRecorderAppend(t *testing.T) {
	t.Parallel()

	t.Run("assigns_id_and_timestamp", func(t *testing.T) {
		t.Parallel()

		repo := &memAuditRepo{}
		rec := audit.NewRecorder(repo)

		actorID := uuid.New()
		rec.Append(audit.Draft{
			ActorID:      actorID,
			ActorEmail:   "admin@coop.test",
			ActorRole:    "admin",
			Action:       domain.AuditCreate,
			ResourceType: "unit",
			Summary:      "created unit 4B",
		})
		rec.Wait()

		entries := repo.recorded()
		require.Len(t, entries, 1)
		e := entries[0]
		assert.NotEqual(t, uuid.Nil, e.ID)
		assert.False(t, e.OccurredAt.IsZero())
		assert.Equal(t, actorID, e.ActorID)
		assert.Equal(t, "admin@coop.test", e.ActorEmail)
		assert.Equal(t, domain.AuditCreate, e.Action)
	})

	t.Run("failed_write_is_swallowed", func(t *testing.T) {
		t.Parallel()

		repo := &memAuditRepo{fail: true}
		rec := audit.NewRecorder(repo)

		// Append must not panic or block on a failing repository.
		rec.Append(audit.Draft{Action: domain.AuditDelete, ResourceType: "unit"})
		rec.Wait()

		assert.Empty(t, repo.recorded())
	})

	t.Run("concurrent_appends_all_land", func(t *testing.T) {
		t.Parallel()

		repo := &memAuditRepo{}
		rec := audit.NewRecorder(repo)

		const n = 50
		var wg sync.WaitGroup
		for i := 0; i < n; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				rec.Append(audit.Draft{Action: domain.AuditUpdate, ResourceType: "resident"})
			}()
		}
		wg.Wait()
		rec.Wait()

		assert.Len(t, repo.recorded(), n)
	})
}
