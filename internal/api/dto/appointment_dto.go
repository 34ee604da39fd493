package dto

import (
	"time"

	"github.com/spec-kit/brokerage-crm/internal/domain"
)

// CreateAppointmentRequest payload.
type CreateAppointmentRequest struct {
	LeadID      string    `json:"lead_id"`
	ScheduledAt time.Time `json:"scheduled_at"`
	Location    string    `json:"location"`
	Notes       string    `json:"notes"`
}

// UpdateAppointmentRequest payload with optional fields.
type UpdateAppointmentRequest struct {
	ScheduledAt *time.Time                `json:"scheduled_at"`
	Location    *string                   `json:"location"`
	Notes       *string                   `json:"notes"`
	Status      *domain.AppointmentStatus `json:"status"`
}

// AppointmentResponse represents a scheduled meeting.
type AppointmentResponse struct {
	ID          string                   `json:"id"`
	LeadID      string                   `json:"lead_id"`
	StaffID     string                   `json:"staff_id"`
	ScheduledAt time.Time                `json:"scheduled_at"`
	Location    string                   `json:"location"`
	Notes       string                   `json:"notes"`
	Status      domain.AppointmentStatus `json:"status"`
	LeadStage   domain.LeadStage         `json:"lead_stage"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// NewAppointmentResponse maps a domain appointment.
func NewAppointmentResponse(appointment *domain.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:          appointment.ID,
		LeadID:      appointment.LeadID,
		StaffID:     appointment.StaffID,
		ScheduledAt: appointment.ScheduledAt,
		Location:    appointment.Location,
		Notes:       appointment.Notes,
		Status:      appointment.Status,
		LeadStage:   appointment.LeadStage,
		CreatedAt:   appointment.CreatedAt,
		UpdatedAt:   appointment.UpdatedAt,
	}
}

// NewAppointmentResponses maps a slice of appointments.
func NewAppointmentResponses(appointments []domain.Appointment) []AppointmentResponse {
	result := make([]AppointmentResponse, 0, len(appointments))
	for i := range appointments {
		result = append(result, NewAppointmentResponse(&appointments[i]))
	}
	return result
}
