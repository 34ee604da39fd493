package domain

import "time"

// VehicleSale describes the inventory mutation staged when a lead wins.
type VehicleSale struct {
	VehicleID string
	SoldBy    string
	SoldAt    time.Time
}

// StageChangePlan is the full set of mutations a stage transition implies.
// It is computed by a pure decision function and applied by the repository
// layer as a single all-or-nothing transaction. Readers must never observe
// the lead update without the vehicle and appointment updates.
type StageChangePlan struct {
	LeadID           string
	OldStage         LeadStage
	NewStage         LeadStage
	LastActivity     time.Time
	BrokerCommission *float64
	VehicleSale      *VehicleSale
}

// Empty reports whether applying the plan would write anything.
func (p *StageChangePlan) Empty() bool {
	return p == nil || p.OldStage == p.NewStage
}
