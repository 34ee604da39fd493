package service

import (
	"context"
	"strings"
	"time"

	"github.com/spec-kit/brokerage-crm/internal/domain"
	"github.com/spec-kit/brokerage-crm/internal/repository"
	apperrors "github.com/spec-kit/brokerage-crm/pkg/util/errorutil"
)

// InventoryService manages the vehicle catalog. Marking a vehicle Sold is
// reserved for the stage-transition batch and rejected here.
type InventoryService struct {
	vehicles repository.VehicleRepository
}

// NewInventoryService constructs the service.
func NewInventoryService(vehicles repository.VehicleRepository) *InventoryService {
	return &InventoryService{vehicles: vehicles}
}

// VehicleCreateInput describes a new inventory unit.
type VehicleCreateInput struct {
	Make  string
	Model string
	Year  int
	Price float64
	VIN   string
}

// VehicleUpdateInput describes mutable vehicle fields.
type VehicleUpdateInput struct {
	Make   *string
	Model  *string
	Year   *int
	Price  *float64
	Status *domain.VehicleStatus
}

// CreateVehicle adds a unit to inventory as Active.
func (s *InventoryService) CreateVehicle(ctx context.Context, actor *domain.StaffMember, input VehicleCreateInput) (*domain.Vehicle, error) {
	if actor.Role == domain.StaffRoleAgent {
		return nil, apperrors.NewForbidden("agents cannot manage inventory")
	}
	if strings.TrimSpace(input.Make) == "" || strings.TrimSpace(input.Model) == "" {
		return nil, apperrors.NewValidationError("make and model are required", nil)
	}
	if input.Year < 1900 || input.Year > time.Now().Year()+1 {
		return nil, apperrors.NewValidationError("year is out of range", map[string]any{"year": input.Year})
	}
	if input.Price < 0 {
		return nil, apperrors.NewValidationError("price cannot be negative", nil)
	}

	vehicle := &domain.Vehicle{
		Make:   strings.TrimSpace(input.Make),
		Model:  strings.TrimSpace(input.Model),
		Year:   input.Year,
		Price:  input.Price,
		VIN:    strings.ToUpper(strings.TrimSpace(input.VIN)),
		Status: domain.VehicleStatusActive,
	}
	if err := s.vehicles.Create(ctx, vehicle); err != nil {
		return nil, apperrors.MapError(err)
	}
	return vehicle, nil
}

// UpdateVehicle applies partial changes. The Sold status cannot be set here.
func (s *InventoryService) UpdateVehicle(ctx context.Context, actor *domain.StaffMember, vehicleID string, input VehicleUpdateInput) (*domain.Vehicle, error) {
	if actor.Role == domain.StaffRoleAgent {
		return nil, apperrors.NewForbidden("agents cannot manage inventory")
	}

	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if vehicle.Status == domain.VehicleStatusSold {
		return nil, apperrors.NewConflict("sold vehicles cannot be edited", map[string]any{"vehicle_id": vehicleID})
	}

	if input.Make != nil {
		vehicle.Make = strings.TrimSpace(*input.Make)
	}
	if input.Model != nil {
		vehicle.Model = strings.TrimSpace(*input.Model)
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return nil, apperrors.NewValidationError("price cannot be negative", nil)
		}
		vehicle.Price = *input.Price
	}
	if input.Status != nil {
		switch *input.Status {
		case domain.VehicleStatusActive, domain.VehicleStatusPending:
			vehicle.Status = *input.Status
		default:
			return nil, apperrors.NewValidationError("status must be Active or Pending", map[string]any{"status": string(*input.Status)})
		}
	}

	if err := s.vehicles.Update(ctx, vehicle); err != nil {
		return nil, apperrors.MapError(err)
	}
	return vehicle, nil
}

// GetVehicle fetches a single inventory unit.
func (s *InventoryService) GetVehicle(ctx context.Context, vehicleID string) (*domain.Vehicle, error) {
	vehicle, err := s.vehicles.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return vehicle, nil
}

// ListVehicles returns inventory matching the filter.
func (s *InventoryService) ListVehicles(ctx context.Context, filter repository.VehicleFilter) ([]domain.Vehicle, error) {
	result, err := s.vehicles.List(ctx, filter)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return result, nil
}
