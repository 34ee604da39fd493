package events

import (
	"time"

	"github.com/spec-kit/brokerage-crm/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventLeadCreated       EventType = "lead_created"
	EventLeadStageChanged  EventType = "lead_stage_changed"
	EventLeadOwnerChanged  EventType = "lead_owner_changed"
	EventLeadQualified     EventType = "lead_qualified"
	EventAppointmentBooked EventType = "appointment_booked"
	EventApplicationScored EventType = "application_scored"
)

// Actor encapsulates the staff member behind an event.
type Actor struct {
	StaffID string `json:"staff_id"`
	Name    string `json:"name,omitempty"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	LeadID    string      `json:"lead_id"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// LeadCreatedPayload payload.
type LeadCreatedPayload struct {
	OwnerID string            `json:"owner_id"`
	Source  domain.LeadSource `json:"source"`
	Name    string            `json:"name"`
}

// LeadStageChangedPayload payload.
type LeadStageChangedPayload struct {
	OldStage         domain.LeadStage `json:"old_stage"`
	NewStage         domain.LeadStage `json:"new_stage"`
	VehicleID        *string          `json:"vehicle_id,omitempty"`
	BrokerCommission *float64         `json:"broker_commission,omitempty"`
}

// LeadOwnerChangedPayload payload.
type LeadOwnerChangedPayload struct {
	OldOwnerID string `json:"old_owner_id"`
	NewOwnerID string `json:"new_owner_id"`
}

// LeadQualifiedPayload payload.
type LeadQualifiedPayload struct {
	TotalScore int    `json:"total_score"`
	LeadStatus string `json:"lead_status"`
}

// AppointmentBookedPayload payload.
type AppointmentBookedPayload struct {
	AppointmentID string    `json:"appointment_id"`
	StaffID       string    `json:"staff_id"`
	ScheduledAt   time.Time `json:"scheduled_at"`
}

// ApplicationScoredPayload payload.
type ApplicationScoredPayload struct {
	Score  int    `json:"score"`
	Status string `json:"status"`
}
