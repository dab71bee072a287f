package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/mathewar/apty/internal/api/v1"
	"github.com/mathewar/apty/internal/audit"
	"github.com/mathewar/apty/internal/domain"
)

func TestCreateResident(t *testing.T) {
	t.Parallel()

	body := map[string]any{
		"first_name": "Alice",
		"last_name":  "Nguyen",
		"role":       "owner",
	}

	t.Run("admin_creates_and_audits", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			residents: &mockResidentRepo{
				createFunc: func(_ context.Context, r *domain.Resident) error {
					assert.Equal(t, "Alice", r.FirstName)
					assert.NotEqual(t, uuid.Nil, r.ID)
					assert.False(t, r.CreatedAt.IsZero())
					return nil
				},
			},
		}
		sink := &mockAuditRepo{}
		rec := audit.NewRecorder(sink)

		v1.RegisterResidentRoutes(api, store, rec)

		resp := api.PostCtx(adminCtx(), "/residents", body)
		require.Equal(t, http.StatusCreated, resp.Code)

		var created domain.Resident
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
		assert.Equal(t, "Nguyen", created.LastName)

		rec.Wait()
		entries := sink.recorded()
		require.Len(t, entries, 1)
		assert.Equal(t, domain.AuditCreate, entries[0].Action)
		assert.Equal(t, "resident", entries[0].ResourceType)
		require.NotNil(t, entries[0].ResourceID)
		assert.Equal(t, created.ID, *entries[0].ResourceID)
		assert.Equal(t, "admin", entries[0].ActorRole)
	})

	t.Run("resident_role_forbidden_and_unaudited", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{residents: &mockResidentRepo{}}
		sink := &mockAuditRepo{}
		rec := audit.NewRecorder(sink)

		v1.RegisterResidentRoutes(api, store, rec)

		resp := api.PostCtx(residentCtx(), "/residents", body)
		assert.Equal(t, http.StatusForbidden, resp.Code)

		var errBody map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
		assert.Contains(t, errBody["detail"], "residents:write")

		rec.Wait()
		assert.Empty(t, sink.recorded(), "denied requests leave no trail entry")
	})

	t.Run("anonymous_unauthorized", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{residents: &mockResidentRepo{}}
		rec := audit.NewRecorder(&mockAuditRepo{})

		v1.RegisterResidentRoutes(api, store, rec)

		resp := api.Post("/residents", body)
		assert.Equal(t, http.StatusUnauthorized, resp.Code)
	})
}

func TestListResidents(t *testing.T) {
	t.Parallel()

	t.Run("resident_role_may_read", func(t *testing.T) {
		t.Parallel()

		unitID := uuid.New()
		_, api := humatest.New(t)
		store := &mockDataStore{
			residents: &mockResidentRepo{
				listFunc: func(_ context.Context, filter domain.ResidentFilter) ([]*domain.Resident, error) {
					require.NotNil(t, filter.UnitID)
					assert.Equal(t, unitID, *filter.UnitID)
					return []*domain.Resident{
						{ID: uuid.New(), FirstName: "Alice", LastName: "Nguyen", Role: "owner"},
					}, nil
				},
			},
		}
		rec := audit.NewRecorder(&mockAuditRepo{})

		v1.RegisterResidentRoutes(api, store, rec)

		resp := api.GetCtx(residentCtx(), "/residents?unit_id="+unitID.String())
		require.Equal(t, http.StatusOK, resp.Code)

		var residents []*domain.Resident
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&residents))
		require.Len(t, residents, 1)
		assert.Equal(t, "Alice", residents[0].FirstName)
	})
}

func TestDeleteResident(t *testing.T) {
	t.Parallel()

	t.Run("missing_resident_404", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			residents: &mockResidentRepo{
				deleteFunc: func(_ context.Context, _ uuid.UUID) error {
					return domain.ErrNotFound
				},
			},
		}
		sink := &mockAuditRepo{}
		rec := audit.NewRecorder(sink)

		v1.RegisterResidentRoutes(api, store, rec)

		resp := api.DeleteCtx(adminCtx(), "/residents/"+uuid.NewString())
		assert.Equal(t, http.StatusNotFound, resp.Code)

		rec.Wait()
		assert.Empty(t, sink.recorded(), "failed deletes leave no trail entry")
	})

	t.Run("delete_audited", func(t *testing.T) {
		t.Parallel()

		id := uuid.New()
		_, api := humatest.New(t)
		store := &mockDataStore{
			residents: &mockResidentRepo{
				deleteFunc: func(_ context.Context, got uuid.UUID) error {
					assert.Equal(t, id, got)
					return nil
				},
			},
		}
		sink := &mockAuditRepo{}
		rec := audit.NewRecorder(sink)

		v1.RegisterResidentRoutes(api, store, rec)

		resp := api.DeleteCtx(adminCtx(), "/residents/"+id.String())
		require.Equal(t, http.StatusOK, resp.Code)

		rec.Wait()
		entries := sink.recorded()
		require.Len(t, entries, 1)
		assert.Equal(t, domain.AuditDelete, entries[0].Action)
	})
}
