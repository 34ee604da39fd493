package domain

import "time"

// AppointmentStatus enumerates scheduling states.
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "SCHEDULED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	AppointmentNoShow    AppointmentStatus = "NO_SHOW"
)

// Appointment is a scheduled meeting with a lead. LeadStage is a
// denormalized copy of the lead's current stage, kept in sync by the
// stage-transition batch so the calendar view never needs a join.
type Appointment struct {
	ID          string
	LeadID      string
	StaffID     string
	ScheduledAt time.Time
	Location    string
	Notes       string
	Status      AppointmentStatus
	LeadStage   LeadStage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
