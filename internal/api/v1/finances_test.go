package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/mathewar/apty/internal/api/v1"
	"github.com/mathewar/apty/internal/audit"
	"github.com/mathewar/apty/internal/domain"
)

func TestGenerateMaintenanceCharges(t *testing.T) {
	t.Parallel()

	units := []*domain.Unit{
		{ID: uuid.New(), UnitNumber: "1A", MonthlyMaintenance: 180000},
		{ID: uuid.New(), UnitNumber: "1B", MonthlyMaintenance: 210000},
		{ID: uuid.New(), UnitNumber: "PH", MonthlyMaintenance: 0}, // no rate, skipped
	}

	t.Run("generates_for_rated_units_only", func(t *testing.T) {
		t.Parallel()

		var (
			mu     sync.Mutex
			stored []*domain.MaintenanceCharge
		)

		_, api := humatest.New(t)
		store := &mockDataStore{
			units: &mockUnitRepo{
				listFunc: func(_ context.Context, _ *uuid.UUID) ([]*domain.Unit, error) {
					return units, nil
				},
			},
			finance: &mockFinanceRepo{
				createChargeFunc: func(_ context.Context, c *domain.MaintenanceCharge) error {
					mu.Lock()
					defer mu.Unlock()
					stored = append(stored, c)
					return nil
				},
			},
		}
		sink := &mockAuditRepo{}
		rec := audit.NewRecorder(sink)

		v1.RegisterFinanceRoutes(api, store, rec)

		resp := api.PostCtx(adminCtx(), "/finances/maintenance-charges/generate", map[string]any{
			"period_month": 7,
			"period_year":  2026,
		})
		require.Equal(t, http.StatusCreated, resp.Code)

		var out struct {
			Generated int                         `json:"generated"`
			Charges   []*domain.MaintenanceCharge `json:"charges"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		assert.Equal(t, 2, out.Generated)
		require.Len(t, out.Charges, 2)
		assert.Len(t, stored, 2)
		assert.Equal(t, domain.Cents(180000), out.Charges[0].Amount)
		assert.Equal(t, domain.Cents(210000), out.Charges[1].Amount)

		rec.Wait()
		entries := sink.recorded()
		require.Len(t, entries, 1)
		assert.Equal(t, domain.AuditCreate, entries[0].Action)
		assert.Equal(t, "maintenance_charge", entries[0].ResourceType)
		assert.Nil(t, entries[0].ResourceID, "batch generation has no single target")
	})

	t.Run("resident_forbidden", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{finance: &mockFinanceRepo{}, units: &mockUnitRepo{}}
		rec := audit.NewRecorder(&mockAuditRepo{})

		v1.RegisterFinanceRoutes(api, store, rec)

		resp := api.PostCtx(residentCtx(), "/finances/maintenance-charges/generate", map[string]any{
			"period_month": 7,
			"period_year":  2026,
		})
		assert.Equal(t, http.StatusForbidden, resp.Code)
	})

	t.Run("invalid_period_rejected", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{finance: &mockFinanceRepo{}, units: &mockUnitRepo{}}
		rec := audit.NewRecorder(&mockAuditRepo{})

		v1.RegisterFinanceRoutes(api, store, rec)

		resp := api.PostCtx(adminCtx(), "/finances/maintenance-charges/generate", map[string]any{
			"period_month": 13,
			"period_year":  2026,
		})
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	})
}

func TestDistributeAssessment(t *testing.T) {
	t.Parallel()

	assessmentID := uuid.New()
	assessment := &domain.Assessment{
		ID:          assessmentID,
		Title:       "Roof replacement",
		TotalAmount: 5000000, // $50,000.00
	}

	t.Run("distributes_by_shares", func(t *testing.T) {
		t.Parallel()

		units := []*domain.Unit{
			{ID: uuid.New(), Shares: 100},
			{ID: uuid.New(), Shares: 200},
			{ID: uuid.New(), Shares: 700},
		}

		var (
			mu     sync.Mutex
			stored []*domain.AssessmentCharge
		)

		_, api := humatest.New(t)
		store := &mockDataStore{
			units: &mockUnitRepo{
				listFunc: func(_ context.Context, _ *uuid.UUID) ([]*domain.Unit, error) {
					return units, nil
				},
			},
			finance: &mockFinanceRepo{
				getAssessmentFunc: func(_ context.Context, id uuid.UUID) (*domain.Assessment, error) {
					assert.Equal(t, assessmentID, id)
					return assessment, nil
				},
				createAssessmentChargeFunc: func(_ context.Context, c *domain.AssessmentCharge) error {
					mu.Lock()
					defer mu.Unlock()
					stored = append(stored, c)
					return nil
				},
			},
		}
		rec := audit.NewRecorder(&mockAuditRepo{})

		v1.RegisterFinanceRoutes(api, store, rec)

		resp := api.PostCtx(adminCtx(), "/finances/assessments/"+assessmentID.String()+"/generate")
		require.Equal(t, http.StatusCreated, resp.Code)

		var out struct {
			Generated int                        `json:"generated"`
			Charges   []*domain.AssessmentCharge `json:"charges"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
		require.Equal(t, 3, out.Generated)
		assert.Equal(t, domain.Cents(500000), out.Charges[0].Amount)
		assert.Equal(t, domain.Cents(1000000), out.Charges[1].Amount)
		assert.Equal(t, domain.Cents(3500000), out.Charges[2].Amount)
		assert.Len(t, stored, 3)
	})

	t.Run("no_shares_rejected_nothing_stored", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			units: &mockUnitRepo{
				listFunc: func(_ context.Context, _ *uuid.UUID) ([]*domain.Unit, error) {
					return []*domain.Unit{{ID: uuid.New(), Shares: 0}}, nil
				},
			},
			finance: &mockFinanceRepo{
				getAssessmentFunc: func(_ context.Context, _ uuid.UUID) (*domain.Assessment, error) {
					return assessment, nil
				},
				createAssessmentChargeFunc: func(_ context.Context, _ *domain.AssessmentCharge) error {
					t.Error("no charge should be stored")
					return nil
				},
			},
		}
		sink := &mockAuditRepo{}
		rec := audit.NewRecorder(sink)

		v1.RegisterFinanceRoutes(api, store, rec)

		resp := api.PostCtx(adminCtx(), "/finances/assessments/"+assessmentID.String()+"/generate")
		assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)

		var errBody map[string]any
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
		assert.Contains(t, errBody["detail"], "shares")

		rec.Wait()
		assert.Empty(t, sink.recorded())
	})

	t.Run("unknown_assessment_404", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			units: &mockUnitRepo{},
			finance: &mockFinanceRepo{
				getAssessmentFunc: func(_ context.Context, _ uuid.UUID) (*domain.Assessment, error) {
					return nil, domain.ErrNotFound
				},
			},
		}
		rec := audit.NewRecorder(&mockAuditRepo{})

		v1.RegisterFinanceRoutes(api, store, rec)

		resp := api.PostCtx(adminCtx(), "/finances/assessments/"+uuid.NewString()+"/generate")
		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestListMaintenanceCharges(t *testing.T) {
	t.Parallel()

	t.Run("filters_pass_through", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{
			finance: &mockFinanceRepo{
				listChargesFunc: func(_ context.Context, filter domain.MaintenanceChargeFilter) ([]*domain.MaintenanceCharge, error) {
					assert.Equal(t, 7, filter.PeriodMonth)
					assert.Equal(t, 2026, filter.PeriodYear)
					assert.Equal(t, domain.ChargeStatusPending, filter.Status)
					return nil, nil
				},
			},
		}
		rec := audit.NewRecorder(&mockAuditRepo{})

		v1.RegisterFinanceRoutes(api, store, rec)

		resp := api.GetCtx(adminCtx(), "/finances/maintenance-charges?period_month=7&period_year=2026&status=pending")
		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("resident_forbidden", func(t *testing.T) {
		t.Parallel()

		_, api := humatest.New(t)
		store := &mockDataStore{finance: &mockFinanceRepo{}}
		rec := audit.NewRecorder(&mockAuditRepo{})

		v1.RegisterFinanceRoutes(api, store, rec)

		resp := api.GetCtx(residentCtx(), "/finances/maintenance-charges")
		assert.Equal(t, http.StatusForbidden, resp.Code)
	})
}
