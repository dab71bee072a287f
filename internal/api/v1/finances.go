package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/mathewar/apty/internal/audit"
	"github.com/mathewar/apty/internal/auth"
	"github.com/mathewar/apty/internal/billing"
	"github.com/mathewar/apty/internal/domain"
)

type ListChargesInput struct {
	UnitID      *uuid.UUID          `query:"unit_id" required:"false" doc:"Filter by unit"`
	PeriodMonth int                 `query:"period_month" required:"false" minimum:"0" maximum:"12" doc:"Filter by billing month"`
	PeriodYear  int                 `query:"period_year" required:"false" minimum:"0" maximum:"9999" doc:"Filter by billing year"`
	Status      domain.ChargeStatus `query:"status" required:"false" enum:",pending,paid" doc:"Filter by status"`
}

type ListChargesOutput struct {
	Body []*domain.MaintenanceCharge
}

type GenerateChargesInput struct {
	Body struct {
		PeriodMonth int `json:"period_month" minimum:"1" maximum:"12" doc:"Billing month"`
		PeriodYear  int `json:"period_year" minimum:"1900" maximum:"9999" doc:"Billing year"`
	}
}

type GenerateChargesOutput struct {
	Body struct {
		Generated int                         `json:"generated"`
		Charges   []*domain.MaintenanceCharge `json:"charges"`
	}
}

type UpdateChargeStatusInput struct {
	ID   uuid.UUID `path:"id" doc:"Charge ID"`
	Body struct {
		Status domain.ChargeStatus `json:"status" enum:"pending,paid" doc:"New status"`
	}
}

type UpdateChargeStatusOutput struct {
	Body struct {
		Updated bool `json:"updated"`
	}
}

type CreateAssessmentInput struct {
	Body struct {
		Title         string       `json:"title" minLength:"1" maxLength:"255" doc:"Assessment title"`
		Description   string       `json:"description,omitempty" doc:"What the assessment funds"`
		TotalAmount   domain.Cents `json:"total_amount" minimum:"1" doc:"Total to distribute, in cents"`
		EffectiveDate time.Time    `json:"effective_date" doc:"When the assessment takes effect"`
	}
}

type CreateAssessmentOutput struct {
	Body *domain.Assessment
}

type ListAssessmentsOutput struct {
	Body []*domain.Assessment
}

type DistributeAssessmentInput struct {
	ID uuid.UUID `path:"id" doc:"Assessment ID"`
}

type DistributeAssessmentOutput struct {
	Body struct {
		Generated int                        `json:"generated"`
		Charges   []*domain.AssessmentCharge `json:"charges"`
	}
}

type ListAssessmentChargesInput struct {
	ID uuid.UUID `path:"id" doc:"Assessment ID"`
}

type ListAssessmentChargesOutput struct {
	Body []*domain.AssessmentCharge
}

type UpdateAssessmentChargeStatusInput struct {
	ID   uuid.UUID `path:"id" doc:"Assessment charge ID"`
	Body struct {
		Status domain.ChargeStatus `json:"status" enum:"pending,paid" doc:"New status"`
	}
}

type UpdateAssessmentChargeStatusOutput struct {
	Body struct {
		Updated bool `json:"updated"`
	}
}

func RegisterFinanceRoutes(api huma.API, store DataStore, rec *audit.Recorder) {
	huma.Register(api, huma.Operation{
		OperationID: "list-maintenance-charges",
		Method:      http.MethodGet,
		Path:        "/finances/maintenance-charges",
		Summary:     "List recurring charges",
		Tags:        []string{"Finances"},
	}, func(ctx context.Context, input *ListChargesInput) (*ListChargesOutput, error) {
		if err := requirePermission(ctx, auth.PermFinancesRead); err != nil {
			return nil, err
		}

		charges, err := store.Finance().ListMaintenanceCharges(ctx, domain.MaintenanceChargeFilter{
			UnitID:      input.UnitID,
			PeriodMonth: input.PeriodMonth,
			PeriodYear:  input.PeriodYear,
			Status:      input.Status,
		})
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list charges", err)
		}

		return &ListChargesOutput{Body: charges}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "generate-maintenance-charges",
		Method:        http.MethodPost,
		Path:          "/finances/maintenance-charges/generate",
		Summary:       "Generate one month's recurring charges for all units",
		Tags:          []string{"Finances"},
		DefaultStatus: http.StatusCreated,
	}, audit.Audited(rec, domain.AuditCreate, "maintenance_charge",
		func(_ *GenerateChargesInput, _ *GenerateChargesOutput) *uuid.UUID { return nil },
		func(in *GenerateChargesInput, out *GenerateChargesOutput) string {
			return fmt.Sprintf("generated %d maintenance charges for %d-%02d",
				out.Body.Generated, in.Body.PeriodYear, in.Body.PeriodMonth)
		},
		func(ctx context.Context, input *GenerateChargesInput) (*GenerateChargesOutput, error) {
			if err := requirePermission(ctx, auth.PermFinancesWrite); err != nil {
				return nil, err
			}

			period := billing.Period{Month: input.Body.PeriodMonth, Year: input.Body.PeriodYear}
			if err := period.Validate(); err != nil {
				return nil, huma.Error422UnprocessableEntity(err.Error())
			}

			units, err := store.Units().List(ctx, nil)
			if err != nil {
				return nil, huma.Error500InternalServerError("failed to list units", err)
			}

			charges := billing.GenerateRecurring(period, units)
			for _, c := range charges {
				if err := store.Finance().CreateMaintenanceCharge(ctx, c); err != nil {
					return nil, huma.Error500InternalServerError("failed to store charge", err)
				}
			}

			out := &GenerateChargesOutput{}
			out.Body.Generated = len(charges)
			out.Body.Charges = charges
			return out, nil
		}))

	huma.Register(api, huma.Operation{
		OperationID: "update-maintenance-charge-status",
		Method:      http.MethodPut,
		Path:        "/finances/maintenance-charges/{id}",
		Summary:     "Mark a recurring charge paid or pending",
		Tags:        []string{"Finances"},
	}, audit.Audited(rec, domain.AuditUpdate, "maintenance_charge",
		func(in *UpdateChargeStatusInput, _ *UpdateChargeStatusOutput) *uuid.UUID { return &in.ID },
		func(in *UpdateChargeStatusInput, _ *UpdateChargeStatusOutput) string {
			return fmt.Sprintf("marked charge %s %s", in.ID, in.Body.Status)
		},
		func(ctx context.Context, input *UpdateChargeStatusInput) (*UpdateChargeStatusOutput, error) {
			if err := requirePermission(ctx, auth.PermFinancesWrite); err != nil {
				return nil, err
			}

			var paidDate *time.Time
			if input.Body.Status == domain.ChargeStatusPaid {
				now := time.Now()
				paidDate = &now
			}

			err := store.Finance().UpdateMaintenanceChargeStatus(ctx, input.ID, input.Body.Status, paidDate)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("charge not found")
				}
				return nil, huma.Error500InternalServerError("failed to update charge", err)
			}

			out := &UpdateChargeStatusOutput{}
			out.Body.Updated = true
			return out, nil
		}))

	huma.Register(api, huma.Operation{
		OperationID:   "create-assessment",
		Method:        http.MethodPost,
		Path:          "/finances/assessments",
		Summary:       "Create an assessment",
		Tags:          []string{"Finances"},
		DefaultStatus: http.StatusCreated,
	}, audit.Audited(rec, domain.AuditCreate, "assessment",
		func(_ *CreateAssessmentInput, out *CreateAssessmentOutput) *uuid.UUID { return &out.Body.ID },
		func(in *CreateAssessmentInput, _ *CreateAssessmentOutput) string {
			return fmt.Sprintf("created assessment %q for %d cents", in.Body.Title, in.Body.TotalAmount)
		},
		func(ctx context.Context, input *CreateAssessmentInput) (*CreateAssessmentOutput, error) {
			if err := requirePermission(ctx, auth.PermFinancesWrite); err != nil {
				return nil, err
			}

			a := &domain.Assessment{
				ID:            uuid.New(),
				Title:         input.Body.Title,
				Description:   input.Body.Description,
				TotalAmount:   input.Body.TotalAmount,
				EffectiveDate: input.Body.EffectiveDate,
				CreatedAt:     time.Now(),
			}

			if err := store.Finance().CreateAssessment(ctx, a); err != nil {
				return nil, huma.Error500InternalServerError("failed to create assessment", err)
			}

			return &CreateAssessmentOutput{Body: a}, nil
		}))

	huma.Register(api, huma.Operation{
		OperationID: "list-assessments",
		Method:      http.MethodGet,
		Path:        "/finances/assessments",
		Summary:     "List assessments",
		Tags:        []string{"Finances"},
	}, func(ctx context.Context, _ *struct{}) (*ListAssessmentsOutput, error) {
		if err := requirePermission(ctx, auth.PermFinancesRead); err != nil {
			return nil, err
		}

		assessments, err := store.Finance().ListAssessments(ctx)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list assessments", err)
		}

		return &ListAssessmentsOutput{Body: assessments}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "distribute-assessment",
		Method:        http.MethodPost,
		Path:          "/finances/assessments/{id}/generate",
		Summary:       "Distribute an assessment across units by shares",
		Tags:          []string{"Finances"},
		DefaultStatus: http.StatusCreated,
	}, audit.Audited(rec, domain.AuditCreate, "assessment_charge",
		func(in *DistributeAssessmentInput, _ *DistributeAssessmentOutput) *uuid.UUID { return &in.ID },
		func(in *DistributeAssessmentInput, out *DistributeAssessmentOutput) string {
			return fmt.Sprintf("distributed assessment %s into %d charges", in.ID, out.Body.Generated)
		},
		func(ctx context.Context, input *DistributeAssessmentInput) (*DistributeAssessmentOutput, error) {
			if err := requirePermission(ctx, auth.PermFinancesWrite); err != nil {
				return nil, err
			}

			a, err := store.Finance().GetAssessment(ctx, input.ID)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("assessment not found")
				}
				return nil, huma.Error500InternalServerError("failed to load assessment", err)
			}

			units, err := store.Units().List(ctx, nil)
			if err != nil {
				return nil, huma.Error500InternalServerError("failed to list units", err)
			}

			charges, err := billing.DistributeAssessment(a, units)
			if err != nil {
				if errors.Is(err, billing.ErrNoSharesAllocated) {
					return nil, huma.Error422UnprocessableEntity("no unit holds ownership shares; nothing to distribute")
				}
				return nil, huma.Error422UnprocessableEntity(err.Error())
			}

			for _, c := range charges {
				if err := store.Finance().CreateAssessmentCharge(ctx, c); err != nil {
					return nil, huma.Error500InternalServerError("failed to store charge", err)
				}
			}

			out := &DistributeAssessmentOutput{}
			out.Body.Generated = len(charges)
			out.Body.Charges = charges
			return out, nil
		}))

	huma.Register(api, huma.Operation{
		OperationID: "list-assessment-charges",
		Method:      http.MethodGet,
		Path:        "/finances/assessments/{id}/charges",
		Summary:     "List an assessment's charges",
		Tags:        []string{"Finances"},
	}, func(ctx context.Context, input *ListAssessmentChargesInput) (*ListAssessmentChargesOutput, error) {
		if err := requirePermission(ctx, auth.PermFinancesRead); err != nil {
			return nil, err
		}

		charges, err := store.Finance().ListAssessmentCharges(ctx, input.ID)
		if err != nil {
			return nil, huma.Error500InternalServerError("failed to list charges", err)
		}

		return &ListAssessmentChargesOutput{Body: charges}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-assessment-charge-status",
		Method:      http.MethodPut,
		Path:        "/finances/assessment-charges/{id}",
		Summary:     "Mark an assessment charge paid or pending",
		Tags:        []string{"Finances"},
	}, audit.Audited(rec, domain.AuditUpdate, "assessment_charge",
		func(in *UpdateAssessmentChargeStatusInput, _ *UpdateAssessmentChargeStatusOutput) *uuid.UUID { return &in.ID },
		func(in *UpdateAssessmentChargeStatusInput, _ *UpdateAssessmentChargeStatusOutput) string {
			return fmt.Sprintf("marked assessment charge %s %s", in.ID, in.Body.Status)
		},
		func(ctx context.Context, input *UpdateAssessmentChargeStatusInput) (*UpdateAssessmentChargeStatusOutput, error) {
			if err := requirePermission(ctx, auth.PermFinancesWrite); err != nil {
				return nil, err
			}

			err := store.Finance().UpdateAssessmentChargeStatus(ctx, input.ID, input.Body.Status)
			if err != nil {
				if errors.Is(err, domain.ErrNotFound) {
					return nil, huma.Error404NotFound("charge not found")
				}
				return nil, huma.Error500InternalServerError("failed to update charge", err)
			}

			out := &UpdateAssessmentChargeStatusOutput{}
			out.Body.Updated = true
			return out, nil
		}))
}
