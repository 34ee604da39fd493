package domain

import "time"

// VehicleStatus enumerates inventory availability states.
type VehicleStatus string

const (
	VehicleStatusActive  VehicleStatus = "Active"
	VehicleStatusPending VehicleStatus = "Pending"
	VehicleStatusSold    VehicleStatus = "Sold"
)

// Vehicle is an inventory unit a lead may be interested in. SoldBy and
// SoldAt are set only when a linked lead transitions to Won.
type Vehicle struct {
	ID        string
	Make      string
	Model     string
	Year      int
	Price     float64
	VIN       string
	Status    VehicleStatus
	SoldBy    *string
	SoldAt    *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}
