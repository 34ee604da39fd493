package domain

import "time"

// StaffRole enumerates back-office operator roles.
type StaffRole string

const (
	StaffRoleAgent      StaffRole = "AGENT"
	StaffRoleSupervisor StaffRole = "SUPERVISOR"
	StaffRoleAdmin      StaffRole = "ADMIN"
)

// ValidRole reports whether the role is one of the known staff roles.
func ValidRole(role StaffRole) bool {
	switch role {
	case StaffRoleAgent, StaffRoleSupervisor, StaffRoleAdmin:
		return true
	}
	return false
}

// StaffMember models a broker agent, supervisor or administrator.
// Commission is the per-sale payout credited when the member closes a lead;
// when nil the DefaultBrokerCommission constant applies. SupervisorID links
// agents to the supervisor who can see their pipeline.
type StaffMember struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         StaffRole
	Commission   *float64
	SupervisorID *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
