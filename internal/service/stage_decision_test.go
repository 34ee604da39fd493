package service

import (
	"testing"
	"time"

	"github.com/spec-kit/brokerage-crm/internal/domain"
)

func TestPlanStageChangeRejectsUnknownStage(t *testing.T) {
	lead := &domain.Lead{ID: "L1", Stage: domain.StageNew}
	if _, err := PlanStageChange(lead, nil, domain.LeadStage("Bogus"), time.Now()); err == nil {
		t.Fatal("expected error for unknown stage")
	}
}

func TestPlanStageChangeSameStageIsEmpty(t *testing.T) {
	lead := &domain.Lead{ID: "L1", Stage: domain.StageQualified}
	plan, err := PlanStageChange(lead, nil, domain.StageQualified, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.BrokerCommission != nil || plan.VehicleSale != nil {
		t.Fatal("same-stage plan must carry no side effects")
	}
}

func TestPlanStageChangeWonRequiresVehicle(t *testing.T) {
	lead := &domain.Lead{ID: "L1", Stage: domain.StageAppointed}
	if _, err := PlanStageChange(lead, nil, domain.StageWon, time.Now()); err == nil {
		t.Fatal("expected precondition error without vehicle")
	}

	empty := ""
	lead.InterestedVehicleID = &empty
	if _, err := PlanStageChange(lead, nil, domain.StageWon, time.Now()); err == nil {
		t.Fatal("expected precondition error with empty vehicle id")
	}
}

func TestPlanStageChangeWonUsesOwnerCommission(t *testing.T) {
	vehicleID := "V1"
	commission := 750.0
	now := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	lead := &domain.Lead{ID: "L1", Stage: domain.StageAppointed, OwnerID: "U1", InterestedVehicleID: &vehicleID}
	owner := &domain.StaffMember{ID: "U1", Commission: &commission}

	plan, err := PlanStageChange(lead, owner, domain.StageWon, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.BrokerCommission == nil || *plan.BrokerCommission != 750.0 {
		t.Fatalf("expected commission 750, got %v", plan.BrokerCommission)
	}
	if plan.VehicleSale == nil {
		t.Fatal("expected vehicle sale")
	}
	if plan.VehicleSale.VehicleID != "V1" || plan.VehicleSale.SoldBy != "U1" {
		t.Fatalf("unexpected vehicle sale: %+v", plan.VehicleSale)
	}
	if !plan.VehicleSale.SoldAt.Equal(now) {
		t.Fatalf("expected sale time %v, got %v", now, plan.VehicleSale.SoldAt)
	}
}

func TestPlanStageChangeWonFallsBackToDefaultCommission(t *testing.T) {
	vehicleID := "V1"
	lead := &domain.Lead{ID: "L1", Stage: domain.StageAppointed, OwnerID: "U1", InterestedVehicleID: &vehicleID}

	plan, err := PlanStageChange(lead, &domain.StaffMember{ID: "U1"}, domain.StageWon, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.BrokerCommission == nil || *plan.BrokerCommission != domain.DefaultBrokerCommission {
		t.Fatalf("expected default commission, got %v", plan.BrokerCommission)
	}
}

func TestPlanStageChangeNonWinningStageHasNoSale(t *testing.T) {
	vehicleID := "V1"
	lead := &domain.Lead{ID: "L1", Stage: domain.StageNew, InterestedVehicleID: &vehicleID}

	plan, err := PlanStageChange(lead, nil, domain.StageLost, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.BrokerCommission != nil || plan.VehicleSale != nil {
		t.Fatal("losing a lead must not stage a sale or commission")
	}
}
