package audit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathewar/apty/internal/audit"
	"github.com/mathewar/apty/internal/auth"
	"github.com/mathewar/apty/internal/domain"
)

type fakeInput struct {
	ID uuid.UUID
}

type fakeOutput struct {
	Name string
}

func adminContext() context.Context {
	p := auth.ResolvePrincipal(&auth.Session{
		UserID: uuid.New(),
		Email:  "admin@coop.test",
		Role:   auth.RoleAdmin,
	})
	return auth.ContextWithPrincipal(context.Background(), p)
}

func wrap(rec *audit.Recorder, next func(ctx context.Context, in *fakeInput) (*fakeOutput, error)) func(ctx context.Context, in *fakeInput) (*fakeOutput, error) {
	return audit.Audited(rec, domain.AuditUpdate, "unit",
		func(in *fakeInput, _ *fakeOutput) *uuid.UUID { return &in.ID },
		func(_ *fakeInput, out *fakeOutput) string { return "updated " + out.Name },
		next,
	)
}

func TestAudited(t *testing.T) {
	t.Parallel()

	t.Run("success_appends_exactly_once", func(t *testing.T) {
		t.Parallel()

		repo := &memAuditRepo{}
		rec := audit.NewRecorder(repo)
		id := uuid.New()

		h := wrap(rec, func(_ context.Context, in *fakeInput) (*fakeOutput, error) {
			return &fakeOutput{Name: "4B"}, nil
		})

		out, err := h(adminContext(), &fakeInput{ID: id})
		require.NoError(t, err)
		assert.Equal(t, "4B", out.Name)
		rec.Wait()

		entries := repo.recorded()
		require.Len(t, entries, 1)
		assert.Equal(t, domain.AuditUpdate, entries[0].Action)
		assert.Equal(t, "unit", entries[0].ResourceType)
		require.NotNil(t, entries[0].ResourceID)
		assert.Equal(t, id, *entries[0].ResourceID)
		assert.Equal(t, "updated 4B", entries[0].Summary)
		assert.Equal(t, "admin@coop.test", entries[0].ActorEmail)
	})

	t.Run("handler_error_appends_nothing", func(t *testing.T) {
		t.Parallel()

		repo := &memAuditRepo{}
		rec := audit.NewRecorder(repo)

		h := wrap(rec, func(_ context.Context, _ *fakeInput) (*fakeOutput, error) {
			return nil, errors.New("boom")
		})

		_, err := h(adminContext(), &fakeInput{ID: uuid.New()})
		require.Error(t, err)
		rec.Wait()

		assert.Empty(t, repo.recorded())
	})

	t.Run("anonymous_caller_appends_nothing", func(t *testing.T) {
		t.Parallel()

		repo := &memAuditRepo{}
		rec := audit.NewRecorder(repo)

		h := wrap(rec, func(_ context.Context, _ *fakeInput) (*fakeOutput, error) {
			return &fakeOutput{Name: "4B"}, nil
		})

		_, err := h(context.Background(), &fakeInput{ID: uuid.New()})
		require.NoError(t, err)
		rec.Wait()

		assert.Empty(t, repo.recorded())
	})

	t.Run("audit_failure_does_not_fail_the_operation", func(t *testing.T) {
		t.Parallel()

		repo := &memAuditRepo{fail: true}
		rec := audit.NewRecorder(repo)

		h := wrap(rec, func(_ context.Context, _ *fakeInput) (*fakeOutput, error) {
			return &fakeOutput{Name: "4B"}, nil
		})

		out, err := h(adminContext(), &fakeInput{ID: uuid.New()})
		require.NoError(t, err)
		assert.Equal(t, "4B", out.Name)
		rec.Wait()
	})
}
