package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ChargeStatus string

const (
	ChargeStatusPending ChargeStatus = "pending"
	ChargeStatusPaid    ChargeStatus = "paid"
)

// MaintenanceCharge is one unit's recurring obligation for one billing period.
// The amount is copied from the unit's rate at generation time; later rate
// changes do not alter charges already generated.
type MaintenanceCharge struct {
	ID          uuid.UUID    `json:"id"`
	UnitID      uuid.UUID    `json:"unit_id"`
	PeriodMonth int          `json:"period_month"`
	PeriodYear  int          `json:"period_year"`
	Amount      Cents        `json:"amount"`
	Status      ChargeStatus `json:"status"`
	DueDate     time.Time    `json:"due_date"`
	PaidDate    *time.Time   `json:"paid_date,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// Assessment is a one-time total to be distributed across units in
// proportion to their ownership shares.
type Assessment struct {
	ID            uuid.UUID `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	TotalAmount   Cents     `json:"total_amount"`
	EffectiveDate time.Time `json:"effective_date"`
	CreatedAt     time.Time `json:"created_at"`
}

// AssessmentCharge is one unit's proportional portion of an assessment.
type AssessmentCharge struct {
	ID           uuid.UUID    `json:"id"`
	AssessmentID uuid.UUID    `json:"assessment_id"`
	UnitID       uuid.UUID    `json:"unit_id"`
	Amount       Cents        `json:"amount"`
	Status       ChargeStatus `json:"status"`
	CreatedAt    time.Time    `json:"created_at"`
}

type MaintenanceChargeFilter struct {
	UnitID      *uuid.UUID
	PeriodMonth int
	PeriodYear  int
	Status      ChargeStatus
}

type FinanceRepository interface {
	CreateMaintenanceCharge(ctx context.Context, c *MaintenanceCharge) error
	ListMaintenanceCharges(ctx context.Context, filter MaintenanceChargeFilter) ([]*MaintenanceCharge, error)
	UpdateMaintenanceChargeStatus(ctx context.Context, id uuid.UUID, status ChargeStatus, paidDate *time.Time) error

	CreateAssessment(ctx context.Context, a *Assessment) error
	GetAssessment(ctx context.Context, id uuid.UUID) (*Assessment, error)
	ListAssessments(ctx context.Context) ([]*Assessment, error)

	CreateAssessmentCharge(ctx context.Context, c *AssessmentCharge) error
	ListAssessmentCharges(ctx context.Context, assessmentID uuid.UUID) ([]*AssessmentCharge, error)
	UpdateAssessmentChargeStatus(ctx context.Context, id uuid.UUID, status ChargeStatus) error
}
