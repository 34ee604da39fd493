package dto

import (
	"time"

	"github.com/spec-kit/brokerage-crm/internal/domain"
)

// CreateLeadRequest payload.
type CreateLeadRequest struct {
	Name                string            `json:"name"`
	Phone               string            `json:"phone"`
	Email               string            `json:"email"`
	Source              domain.LeadSource `json:"source"`
	OwnerID             string            `json:"owner_id"`
	InterestedVehicleID *string           `json:"interested_vehicle_id"`
}

// UpdateLeadRequest payload with optional fields.
type UpdateLeadRequest struct {
	Name                *string `json:"name"`
	Phone               *string `json:"phone"`
	Email               *string `json:"email"`
	InterestedVehicleID *string `json:"interested_vehicle_id"`
}

// ChangeStageRequest payload for pipeline moves.
type ChangeStageRequest struct {
	Stage domain.LeadStage `json:"stage"`
}

// ChangeOwnerRequest payload for reassignment.
type ChangeOwnerRequest struct {
	OwnerID string `json:"owner_id"`
}

// LeadResponse provides full lead info.
type LeadResponse struct {
	ID                  string            `json:"id"`
	ExternalKey         string            `json:"external_key"`
	Name                string            `json:"name"`
	Phone               string            `json:"phone"`
	Email               string            `json:"email"`
	Source              domain.LeadSource `json:"source"`
	Stage               domain.LeadStage  `json:"stage"`
	OwnerID             string            `json:"owner_id"`
	OwnerName           string            `json:"owner_name"`
	InterestedVehicleID *string           `json:"interested_vehicle_id"`
	BrokerCommission    *float64          `json:"broker_commission"`
	LastActivity        time.Time         `json:"last_activity"`
	CreatedAt           time.Time         `json:"created_at"`
}

// NewLeadResponse maps a domain lead.
func NewLeadResponse(lead *domain.Lead) LeadResponse {
	return LeadResponse{
		ID:                  lead.ID,
		ExternalKey:         lead.ExternalKey,
		Name:                lead.Name,
		Phone:               lead.Phone,
		Email:               lead.Email,
		Source:              lead.Source,
		Stage:               lead.Stage,
		OwnerID:             lead.OwnerID,
		OwnerName:           lead.OwnerName,
		InterestedVehicleID: lead.InterestedVehicleID,
		BrokerCommission:    lead.BrokerCommission,
		LastActivity:        lead.LastActivity,
		CreatedAt:           lead.CreatedAt,
	}
}

// NewLeadResponses maps a slice of domain leads.
func NewLeadResponses(leads []domain.Lead) []LeadResponse {
	result := make([]LeadResponse, 0, len(leads))
	for i := range leads {
		result = append(result, NewLeadResponse(&leads[i]))
	}
	return result
}

// CreateNoteRequest payload for manual notes.
type CreateNoteRequest struct {
	Content string `json:"content"`
}

// NoteResponse represents a note-history entry.
type NoteResponse struct {
	ID      string          `json:"id"`
	LeadID  string          `json:"lead_id"`
	Content string          `json:"content"`
	Author  string          `json:"author"`
	Type    domain.NoteType `json:"type"`
	Date    time.Time       `json:"date"`
}

// NewNoteResponse maps a domain note entry.
func NewNoteResponse(note *domain.NoteEntry) NoteResponse {
	return NoteResponse{
		ID:      note.ID,
		LeadID:  note.LeadID,
		Content: note.Content,
		Author:  note.Author,
		Type:    note.Type,
		Date:    note.Date,
	}
}

// NewNoteResponses maps a slice of note entries.
func NewNoteResponses(notes []domain.NoteEntry) []NoteResponse {
	result := make([]NoteResponse, 0, len(notes))
	for i := range notes {
		result = append(result, NewNoteResponse(&notes[i]))
	}
	return result
}
