package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/brokerage-crm/internal/api/dto"
	"github.com/spec-kit/brokerage-crm/internal/auth"
	"github.com/spec-kit/brokerage-crm/internal/domain"
	"github.com/spec-kit/brokerage-crm/internal/repository"
	"github.com/spec-kit/brokerage-crm/internal/service"
	apperrors "github.com/spec-kit/brokerage-crm/pkg/util/errorutil"
)

// InventoryHandler manages vehicle catalog endpoints.
type InventoryHandler struct {
	service *service.InventoryService
}

// NewInventoryHandler constructs handler.
func NewInventoryHandler(inventoryService *service.InventoryService) *InventoryHandler {
	return &InventoryHandler{service: inventoryService}
}

// CreateVehicle POST /inventory.
func (h *InventoryHandler) CreateVehicle(c *fiber.Ctx) error {
	actor, ok := auth.StaffFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.CreateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.VehicleCreateInput{
		Make:  req.Make,
		Model: req.Model,
		Year:  req.Year,
		Price: req.Price,
		VIN:   req.VIN,
	}
	vehicle, err := h.service.CreateVehicle(c.Context(), actor, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewVehicleResponse(vehicle)})
}

// ListVehicles GET /inventory.
func (h *InventoryHandler) ListVehicles(c *fiber.Ctx) error {
	if _, ok := auth.StaffFromContext(c); !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	filter := repository.VehicleFilter{}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.VehicleStatus(strings.TrimSpace(part)))
		}
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.SearchTerm = &search
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize

	vehicles, err := h.service.ListVehicles(c.Context(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewVehicleResponses(vehicles)})
}

// GetVehicle GET /inventory/:id.
func (h *InventoryHandler) GetVehicle(c *fiber.Ctx) error {
	if _, ok := auth.StaffFromContext(c); !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	vehicle, err := h.service.GetVehicle(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewVehicleResponse(vehicle)})
}

// UpdateVehicle PATCH /inventory/:id.
func (h *InventoryHandler) UpdateVehicle(c *fiber.Ctx) error {
	actor, ok := auth.StaffFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.UpdateVehicleRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.VehicleUpdateInput{
		Make:   req.Make,
		Model:  req.Model,
		Year:   req.Year,
		Price:  req.Price,
		Status: req.Status,
	}
	vehicle, err := h.service.UpdateVehicle(c.Context(), actor, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewVehicleResponse(vehicle)})
}
