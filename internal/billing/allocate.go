// Package billing holds the charge-generation algorithms. Both are pure
// computations over a snapshot of units passed in by the caller; persistence
// and locking are the caller's concern.
package billing

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/mathewar/apty/internal/domain"
)

// ErrNoSharesAllocated is returned when an assessment cannot be distributed
// because no unit holds any ownership shares.
var ErrNoSharesAllocated = errors.New("billing: no shares allocated")

// Period identifies one billing month.
type Period struct {
	Month int
	Year  int
}

func (p Period) Validate() error {
	if p.Month < 1 || p.Month > 12 {
		return fmt.Errorf("billing: period month must be 1-12, got %d", p.Month)
	}
	if p.Year < 1900 || p.Year > 9999 {
		return fmt.Errorf("billing: period year %d out of range", p.Year)
	}
	return nil
}

// DueDate is the first calendar day of the period.
func (p Period) DueDate() time.Time {
	return time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC)
}

// GenerateRecurring emits one pending charge per unit with a configured
// recurring rate, copying the rate at generation time. Units without a rate
// are skipped. The function does not check for charges already generated for
// the same period; re-generation protection is the caller's decision.
func GenerateRecurring(period Period, units []*domain.Unit) []*domain.MaintenanceCharge {
	now := time.Now()
	due := period.DueDate()

	var charges []*domain.MaintenanceCharge
	for _, u := range units {
		if u.MonthlyMaintenance <= 0 {
			continue
		}
		charges = append(charges, &domain.MaintenanceCharge{
			ID:          uuid.New(),
			UnitID:      u.ID,
			PeriodMonth: period.Month,
			PeriodYear:  period.Year,
			Amount:      u.MonthlyMaintenance,
			Status:      domain.ChargeStatusPending,
			DueDate:     due,
			CreatedAt:   now,
		})
	}
	return charges
}

// DistributeAssessment splits the assessment total across units in proportion
// to their ownership shares. Each unit's amount is rounded to the minor unit
// independently; no residual-correction pass is applied, so the sum of the
// generated charges can differ from the total by up to half a minor unit per
// charged unit. Units with zero shares receive no charge. When no unit holds
// shares the distribution fails with ErrNoSharesAllocated and nothing is
// generated.
func DistributeAssessment(a *domain.Assessment, units []*domain.Unit) ([]*domain.AssessmentCharge, error) {
	if a.TotalAmount <= 0 {
		return nil, fmt.Errorf("billing: assessment total must be positive, got %d", a.TotalAmount)
	}

	var totalShares int64
	for _, u := range units {
		totalShares += u.Shares
	}
	if totalShares == 0 {
		return nil, ErrNoSharesAllocated
	}

	now := time.Now()

	var charges []*domain.AssessmentCharge
	for _, u := range units {
		if u.Shares <= 0 {
			continue
		}
		amount := domain.Cents(math.Round(
			float64(a.TotalAmount) * float64(u.Shares) / float64(totalShares),
		))
		charges = append(charges, &domain.AssessmentCharge{
			ID:           uuid.New(),
			AssessmentID: a.ID,
			UnitID:       u.ID,
			Amount:       amount,
			Status:       domain.ChargeStatusPending,
			CreatedAt:    now,
		})
	}
	return charges, nil
}
