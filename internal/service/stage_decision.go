package service

import (
	"time"

	"github.com/spec-kit/brokerage-crm/internal/domain"
	apperrors "github.com/spec-kit/brokerage-crm/pkg/util/errorutil"
)

// PlanStageChange computes the full mutation set a stage transition implies.
// It is pure: callers load state, this function decides, the repository
// applies. A transition to the current stage yields an empty plan (no-op).
//
// Transitioning to Won requires an interested vehicle; without one the call
// is rejected before any write. On Won the plan additionally stages the
// broker commission (owner's configured rate, or the default constant) and
// the vehicle sale.
func PlanStageChange(lead *domain.Lead, owner *domain.StaffMember, newStage domain.LeadStage, now time.Time) (*domain.StageChangePlan, error) {
	if !domain.ValidStage(newStage) {
		return nil, apperrors.NewValidationError("unknown stage", map[string]any{"stage": string(newStage)})
	}

	plan := &domain.StageChangePlan{
		LeadID:       lead.ID,
		OldStage:     lead.Stage,
		NewStage:     newStage,
		LastActivity: now,
	}
	if lead.Stage == newStage {
		return plan, nil
	}

	if newStage == domain.StageWon {
		if lead.InterestedVehicleID == nil || *lead.InterestedVehicleID == "" {
			return nil, apperrors.NewPreconditionError("vehicle required", map[string]any{"lead_id": lead.ID})
		}
		commission := domain.DefaultBrokerCommission
		if owner != nil && owner.Commission != nil {
			commission = *owner.Commission
		}
		plan.BrokerCommission = &commission
		plan.VehicleSale = &domain.VehicleSale{
			VehicleID: *lead.InterestedVehicleID,
			SoldBy:    lead.OwnerID,
			SoldAt:    now,
		}
	}

	return plan, nil
}
