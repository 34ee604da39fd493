package domain

import "time"

// LeadStage enumerates pipeline stages. The string values are part of the
// wire contract shared with the UI and must not change.
type LeadStage string

const (
	StageNew         LeadStage = "New"
	StageQualified   LeadStage = "Qualified"
	StageAppointed   LeadStage = "Appointed"
	StageFollowingUp LeadStage = "Following-Up"
	StageWon         LeadStage = "Won"
	StageLost        LeadStage = "Lost"
)

// LeadSource indicates where a lead came from.
type LeadSource string

const (
	SourceWeb      LeadSource = "WEB"
	SourceReferral LeadSource = "REFERRAL"
	SourcePhone    LeadSource = "PHONE"
	SourceWalkIn   LeadSource = "WALK_IN"
	SourceCampaign LeadSource = "CAMPAIGN"
)

// DefaultBrokerCommission is the flat per-sale payout applied when the
// closing staff member has no commission configured.
const DefaultBrokerCommission = 500.0

// Lead is the aggregate for a prospective buyer moving through the pipeline.
type Lead struct {
	ID                  string
	ExternalKey         string
	Name                string
	Phone               string
	Email               string
	Source              LeadSource
	Stage               LeadStage
	OwnerID             string
	OwnerName           string
	InterestedVehicleID *string
	BrokerCommission    *float64
	LastActivity        time.Time
	CreatedAt           time.Time
}

// ValidStage reports whether the given stage is a known pipeline stage.
func ValidStage(stage LeadStage) bool {
	switch stage {
	case StageNew, StageQualified, StageAppointed, StageFollowingUp, StageWon, StageLost:
		return true
	}
	return false
}
