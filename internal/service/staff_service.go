package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/brokerage-crm/internal/auth"
	"github.com/spec-kit/brokerage-crm/internal/domain"
	"github.com/spec-kit/brokerage-crm/internal/repository"
	apperrors "github.com/spec-kit/brokerage-crm/pkg/util/errorutil"
)

// StaffService manages staff accounts. All mutations are admin-only.
type StaffService struct {
	staff      repository.StaffRepository
	logger     *zap.Logger
	bcryptCost int
}

// NewStaffService builds the service.
func NewStaffService(staffRepo repository.StaffRepository, logger *zap.Logger, bcryptCost int) *StaffService {
	return &StaffService{staff: staffRepo, logger: logger, bcryptCost: bcryptCost}
}

func validateStaffInput(name, email string, role domain.StaffRole) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidationError("name is required", nil)
	}
	if !strings.Contains(email, "@") {
		return apperrors.NewValidationError("email is invalid", map[string]any{"email": email})
	}
	if !domain.ValidRole(role) {
		return apperrors.NewValidationError("invalid role", map[string]any{"role": string(role)})
	}
	return nil
}

// CreateStaffInput carries the fields needed to onboard a staff member.
type CreateStaffInput struct {
	Name         string
	Email        string
	Password     string
	Role         domain.StaffRole
	Commission   *float64
	SupervisorID *string
}

// CreateStaff onboards a new staff member with a hashed password.
func (s *StaffService) CreateStaff(ctx context.Context, actor *domain.StaffMember, input CreateStaffInput) (*domain.StaffMember, error) {
	if actor.Role != domain.StaffRoleAdmin {
		return nil, apperrors.NewForbidden("only admins can manage staff")
	}
	if err := validateStaffInput(input.Name, input.Email, input.Role); err != nil {
		return nil, err
	}
	if len(input.Password) < 8 {
		return nil, apperrors.NewValidationError("password must be at least 8 characters", nil)
	}
	if input.SupervisorID != nil {
		if _, err := s.staff.GetByID(ctx, *input.SupervisorID); err != nil {
			return nil, apperrors.NewValidationError("supervisor does not exist", map[string]any{"supervisor_id": *input.SupervisorID})
		}
	}

	hash, err := auth.HashPassword(input.Password, s.bcryptCost)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}

	staff := &domain.StaffMember{
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Role:         input.Role,
		Commission:   input.Commission,
		SupervisorID: input.SupervisorID,
		Active:       true,
	}
	if err := s.staff.Create(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.logger.Info("staff member created",
		zap.String("staff_id", staff.ID),
		zap.String("role", string(staff.Role)),
	)
	return staff, nil
}

// UpdateStaffInput carries optional fields for a staff update.
type UpdateStaffInput struct {
	Name         *string
	Role         *domain.StaffRole
	Commission   *float64
	SupervisorID *string
	Active       *bool
}

// UpdateStaff applies partial changes to an existing staff member.
func (s *StaffService) UpdateStaff(ctx context.Context, actor *domain.StaffMember, staffID string, input UpdateStaffInput) (*domain.StaffMember, error) {
	if actor.Role != domain.StaffRoleAdmin {
		return nil, apperrors.NewForbidden("only admins can manage staff")
	}

	staff, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("name cannot be empty", nil)
		}
		staff.Name = name
	}
	if input.Role != nil {
		if !domain.ValidRole(*input.Role) {
			return nil, apperrors.NewValidationError("invalid role", map[string]any{"role": string(*input.Role)})
		}
		staff.Role = *input.Role
	}
	if input.Commission != nil {
		if *input.Commission < 0 {
			return nil, apperrors.NewValidationError("commission cannot be negative", nil)
		}
		staff.Commission = input.Commission
	}
	if input.SupervisorID != nil {
		if *input.SupervisorID == staff.ID {
			return nil, apperrors.NewValidationError("staff member cannot supervise themselves", nil)
		}
		if *input.SupervisorID == "" {
			staff.SupervisorID = nil
		} else {
			if _, err := s.staff.GetByID(ctx, *input.SupervisorID); err != nil {
				return nil, apperrors.NewValidationError("supervisor does not exist", map[string]any{"supervisor_id": *input.SupervisorID})
			}
			staff.SupervisorID = input.SupervisorID
		}
	}
	if input.Active != nil {
		staff.Active = *input.Active
	}

	if err := s.staff.Update(ctx, staff); err != nil {
		return nil, apperrors.MapError(err)
	}
	return staff, nil
}

// GetStaff returns a single staff member. Non-admins can only read themselves
// and, for supervisors, their direct reports.
func (s *StaffService) GetStaff(ctx context.Context, actor *domain.StaffMember, staffID string) (*domain.StaffMember, error) {
	staff, err := s.staff.GetByID(ctx, staffID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	switch actor.Role {
	case domain.StaffRoleAdmin:
		return staff, nil
	case domain.StaffRoleSupervisor:
		if staff.ID == actor.ID || (staff.SupervisorID != nil && *staff.SupervisorID == actor.ID) {
			return staff, nil
		}
	default:
		if staff.ID == actor.ID {
			return staff, nil
		}
	}
	return nil, apperrors.NewForbidden("staff member not visible to you")
}

// ListStaff returns staff members. Supervisors see their reports, admins see everyone.
func (s *StaffService) ListStaff(ctx context.Context, actor *domain.StaffMember, filter repository.StaffFilter) ([]domain.StaffMember, error) {
	switch actor.Role {
	case domain.StaffRoleAdmin:
		result, err := s.staff.List(ctx, filter)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		return result, nil
	case domain.StaffRoleSupervisor:
		reports, err := s.staff.ListBySupervisor(ctx, actor.ID)
		if err != nil {
			return nil, apperrors.MapError(err)
		}
		return append(reports, *actor), nil
	default:
		return []domain.StaffMember{*actor}, nil
	}
}
