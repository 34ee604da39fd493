package dto

import (
	"time"

	"github.com/spec-kit/brokerage-crm/internal/domain"
)

// StaffLoginRequest payload.
type StaffLoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// PasswordChangeRequest payload for authenticated password changes.
type PasswordChangeRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// AuthResponse standard response for auth endpoints.
type AuthResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	Staff     StaffResponse `json:"staff"`
}

// CreateStaffRequest payload for onboarding.
type CreateStaffRequest struct {
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Password     string           `json:"password"`
	Role         domain.StaffRole `json:"role"`
	Commission   *float64         `json:"commission"`
	SupervisorID *string          `json:"supervisor_id"`
}

// UpdateStaffRequest payload with optional fields.
type UpdateStaffRequest struct {
	Name         *string           `json:"name"`
	Role         *domain.StaffRole `json:"role"`
	Commission   *float64          `json:"commission"`
	SupervisorID *string           `json:"supervisor_id"`
	Active       *bool             `json:"active"`
}

// StaffResponse represents a staff member without credentials.
type StaffResponse struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Email        string           `json:"email"`
	Role         domain.StaffRole `json:"role"`
	Commission   *float64         `json:"commission"`
	SupervisorID *string          `json:"supervisor_id"`
	Active       bool             `json:"active"`
	CreatedAt    time.Time        `json:"created_at"`
}

// NewStaffResponse maps a domain staff member.
func NewStaffResponse(staff *domain.StaffMember) StaffResponse {
	return StaffResponse{
		ID:           staff.ID,
		Name:         staff.Name,
		Email:        staff.Email,
		Role:         staff.Role,
		Commission:   staff.Commission,
		SupervisorID: staff.SupervisorID,
		Active:       staff.Active,
		CreatedAt:    staff.CreatedAt,
	}
}

// NewStaffResponses maps a slice of staff members.
func NewStaffResponses(members []domain.StaffMember) []StaffResponse {
	result := make([]StaffResponse, 0, len(members))
	for i := range members {
		result = append(result, NewStaffResponse(&members[i]))
	}
	return result
}
