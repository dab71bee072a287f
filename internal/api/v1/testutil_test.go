package v1_test

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mathewar/apty/internal/auth"
	"github.com/mathewar/apty/internal/domain"
)

// ---------------------------------------------------------------------------
// Context helpers: inject a resolved principal for DoCtx
// ---------------------------------------------------------------------------

func principalCtx(role string) context.Context {
	p := auth.ResolvePrincipal(&auth.Session{
		UserID: uuid.New(),
		Email:  role + "@coop.test",
		Role:   role,
	})
	return auth.ContextWithPrincipal(context.Background(), p)
}

func adminCtx() context.Context    { return principalCtx(auth.RoleAdmin) }
func residentCtx() context.Context { return principalCtx(auth.RoleResident) }

// ---------------------------------------------------------------------------
// Mock DataStore
// ---------------------------------------------------------------------------

type mockDataStore struct {
	building    domain.BuildingRepository
	units       domain.UnitRepository
	residents   domain.ResidentRepository
	finance     domain.FinanceRepository
	auditRepo   domain.AuditRepository
	users       domain.UserRepository
	maintenance domain.MaintenanceRepository
}

func (m *mockDataStore) Building() domain.BuildingRepository          { return m.building }
func (m *mockDataStore) Units() domain.UnitRepository                 { return m.units }
func (m *mockDataStore) Residents() domain.ResidentRepository         { return m.residents }
func (m *mockDataStore) Announcements() domain.AnnouncementRepository { return nil }
func (m *mockDataStore) Documents() domain.DocumentRepository         { return nil }
func (m *mockDataStore) Maintenance() domain.MaintenanceRepository    { return m.maintenance }
func (m *mockDataStore) Finance() domain.FinanceRepository            { return m.finance }
func (m *mockDataStore) Users() domain.UserRepository                 { return m.users }
func (m *mockDataStore) Audit() domain.AuditRepository                { return m.auditRepo }

// ---------------------------------------------------------------------------
// Mock BuildingRepository
// ---------------------------------------------------------------------------

type mockBuildingRepo struct {
	getFunc  func(ctx context.Context) (*domain.Building, error)
	saveFunc func(ctx context.Context, b *domain.Building) error
}

func (m *mockBuildingRepo) Get(ctx context.Context) (*domain.Building, error) {
	return m.getFunc(ctx)
}

func (m *mockBuildingRepo) Save(ctx context.Context, b *domain.Building) error {
	return m.saveFunc(ctx, b)
}

// ---------------------------------------------------------------------------
// Mock UnitRepository
// ---------------------------------------------------------------------------

type mockUnitRepo struct {
	createFunc  func(ctx context.Context, u *domain.Unit) error
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Unit, error)
	updateFunc  func(ctx context.Context, u *domain.Unit) error
	deleteFunc  func(ctx context.Context, id uuid.UUID) error
	listFunc    func(ctx context.Context, buildingID *uuid.UUID) ([]*domain.Unit, error)
}

func (m *mockUnitRepo) Create(ctx context.Context, u *domain.Unit) error {
	return m.createFunc(ctx, u)
}

func (m *mockUnitRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Unit, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockUnitRepo) Update(ctx context.Context, u *domain.Unit) error {
	return m.updateFunc(ctx, u)
}

func (m *mockUnitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockUnitRepo) List(ctx context.Context, buildingID *uuid.UUID) ([]*domain.Unit, error) {
	return m.listFunc(ctx, buildingID)
}

// ---------------------------------------------------------------------------
// Mock ResidentRepository
// ---------------------------------------------------------------------------

type mockResidentRepo struct {
	createFunc  func(ctx context.Context, r *domain.Resident) error
	getByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Resident, error)
	updateFunc  func(ctx context.Context, r *domain.Resident) error
	deleteFunc  func(ctx context.Context, id uuid.UUID) error
	listFunc    func(ctx context.Context, filter domain.ResidentFilter) ([]*domain.Resident, error)
}

func (m *mockResidentRepo) Create(ctx context.Context, r *domain.Resident) error {
	return m.createFunc(ctx, r)
}

func (m *mockResidentRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Resident, error) {
	return m.getByIDFunc(ctx, id)
}

func (m *mockResidentRepo) Update(ctx context.Context, r *domain.Resident) error {
	return m.updateFunc(ctx, r)
}

func (m *mockResidentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.deleteFunc(ctx, id)
}

func (m *mockResidentRepo) List(ctx context.Context, filter domain.ResidentFilter) ([]*domain.Resident, error) {
	return m.listFunc(ctx, filter)
}

// ---------------------------------------------------------------------------
// Mock FinanceRepository
// ---------------------------------------------------------------------------

type mockFinanceRepo struct {
	createChargeFunc       func(ctx context.Context, c *domain.MaintenanceCharge) error
	listChargesFunc        func(ctx context.Context, filter domain.MaintenanceChargeFilter) ([]*domain.MaintenanceCharge, error)
	updateChargeStatusFunc func(ctx context.Context, id uuid.UUID, status domain.ChargeStatus, paidDate *time.Time) error

	createAssessmentFunc func(ctx context.Context, a *domain.Assessment) error
	getAssessmentFunc    func(ctx context.Context, id uuid.UUID) (*domain.Assessment, error)
	listAssessmentsFunc  func(ctx context.Context) ([]*domain.Assessment, error)

	createAssessmentChargeFunc       func(ctx context.Context, c *domain.AssessmentCharge) error
	listAssessmentChargesFunc        func(ctx context.Context, assessmentID uuid.UUID) ([]*domain.AssessmentCharge, error)
	updateAssessmentChargeStatusFunc func(ctx context.Context, id uuid.UUID, status domain.ChargeStatus) error
}

func (m *mockFinanceRepo) CreateMaintenanceCharge(ctx context.Context, c *domain.MaintenanceCharge) error {
	return m.createChargeFunc(ctx, c)
}

func (m *mockFinanceRepo) ListMaintenanceCharges(ctx context.Context, filter domain.MaintenanceChargeFilter) ([]*domain.MaintenanceCharge, error) {
	return m.listChargesFunc(ctx, filter)
}

func (m *mockFinanceRepo) UpdateMaintenanceChargeStatus(ctx context.Context, id uuid.UUID, status domain.ChargeStatus, paidDate *time.Time) error {
	return m.updateChargeStatusFunc(ctx, id, status, paidDate)
}

func (m *mockFinanceRepo) CreateAssessment(ctx context.Context, a *domain.Assessment) error {
	return m.createAssessmentFunc(ctx, a)
}

func (m *mockFinanceRepo) GetAssessment(ctx context.Context, id uuid.UUID) (*domain.Assessment, error) {
	return m.getAssessmentFunc(ctx, id)
}

func (m *mockFinanceRepo) ListAssessments(ctx context.Context) ([]*domain.Assessment, error) {
	return m.listAssessmentsFunc(ctx)
}

func (m *mockFinanceRepo) CreateAssessmentCharge(ctx context.Context, c *domain.AssessmentCharge) error {
	return m.createAssessmentChargeFunc(ctx, c)
}

func (m *mockFinanceRepo) ListAssessmentCharges(ctx context.Context, assessmentID uuid.UUID) ([]*domain.AssessmentCharge, error) {
	return m.listAssessmentChargesFunc(ctx, assessmentID)
}

func (m *mockFinanceRepo) UpdateAssessmentChargeStatus(ctx context.Context, id uuid.UUID, status domain.ChargeStatus) error {
	return m.updateAssessmentChargeStatusFunc(ctx, id, status)
}

// ---------------------------------------------------------------------------
// Mock AuditRepository: thread-safe collector usable as the recorder's sink
// ---------------------------------------------------------------------------

type mockAuditRepo struct {
	mu      sync.Mutex
	entries []*domain.AuditEntry
}

func (m *mockAuditRepo) Record(_ context.Context, e *domain.AuditEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, e)
	return nil
}

func (m *mockAuditRepo) List(_ context.Context, filter domain.AuditFilter) ([]*domain.AuditEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.AuditEntry
	for i := len(m.entries) - 1; i >= 0; i-- { // newest first
		e := m.entries[i]
		if filter.ResourceType != "" && e.ResourceType != filter.ResourceType {
			continue
		}
		if filter.ResourceID != nil && (e.ResourceID == nil || *e.ResourceID != *filter.ResourceID) {
			continue
		}
		out = append(out, e)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

func (m *mockAuditRepo) recorded() []*domain.AuditEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*domain.AuditEntry, len(m.entries))
	copy(out, m.entries)
	return out
}
