package dto

import (
	"time"

	"github.com/spec-kit/brokerage-crm/internal/domain"
)

// CreateVehicleRequest payload.
type CreateVehicleRequest struct {
	Make  string  `json:"make"`
	Model string  `json:"model"`
	Year  int     `json:"year"`
	Price float64 `json:"price"`
	VIN   string  `json:"vin"`
}

// UpdateVehicleRequest payload with optional fields.
type UpdateVehicleRequest struct {
	Make   *string               `json:"make"`
	Model  *string               `json:"model"`
	Year   *int                  `json:"year"`
	Price  *float64              `json:"price"`
	Status *domain.VehicleStatus `json:"status"`
}

// VehicleResponse represents an inventory unit.
type VehicleResponse struct {
	ID        string               `json:"id"`
	Make      string               `json:"make"`
	Model     string               `json:"model"`
	Year      int                  `json:"year"`
	Price     float64              `json:"price"`
	VIN       string               `json:"vin"`
	Status    domain.VehicleStatus `json:"status"`
	SoldBy    *string              `json:"sold_by"`
	SoldAt    *time.Time           `json:"sold_at"`
	CreatedAt time.Time            `json:"created_at"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// NewVehicleResponse maps a domain vehicle.
func NewVehicleResponse(vehicle *domain.Vehicle) VehicleResponse {
	return VehicleResponse{
		ID:        vehicle.ID,
		Make:      vehicle.Make,
		Model:     vehicle.Model,
		Year:      vehicle.Year,
		Price:     vehicle.Price,
		VIN:       vehicle.VIN,
		Status:    vehicle.Status,
		SoldBy:    vehicle.SoldBy,
		SoldAt:    vehicle.SoldAt,
		CreatedAt: vehicle.CreatedAt,
		UpdatedAt: vehicle.UpdatedAt,
	}
}

// NewVehicleResponses maps a slice of vehicles.
func NewVehicleResponses(vehicles []domain.Vehicle) []VehicleResponse {
	result := make([]VehicleResponse, 0, len(vehicles))
	for i := range vehicles {
		result = append(result, NewVehicleResponse(&vehicles[i]))
	}
	return result
}
