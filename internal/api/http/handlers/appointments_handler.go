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

// AppointmentsHandler manages calendar endpoints.
type AppointmentsHandler struct {
	service *service.AppointmentService
}

// NewAppointmentsHandler constructs handler.
func NewAppointmentsHandler(appointmentService *service.AppointmentService) *AppointmentsHandler {
	return &AppointmentsHandler{service: appointmentService}
}

// Schedule POST /appointments.
func (h *AppointmentsHandler) Schedule(c *fiber.Ctx) error {
	actor, ok := auth.StaffFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.LeadID == "" || req.ScheduledAt.IsZero() {
		return apperrors.NewValidationError("lead_id and scheduled_at required", nil)
	}

	input := service.AppointmentCreateInput{
		LeadID:      req.LeadID,
		ScheduledAt: req.ScheduledAt,
		Location:    req.Location,
		Notes:       req.Notes,
	}
	appointment, err := h.service.Schedule(c.Context(), actor, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewAppointmentResponse(appointment)})
}

// List GET /appointments.
func (h *AppointmentsHandler) List(c *fiber.Ctx) error {
	actor, ok := auth.StaffFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	filter := parseAppointmentQuery(c)
	appointments, err := h.service.List(c.Context(), actor, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAppointmentResponses(appointments)})
}

// Update PATCH /appointments/:id.
func (h *AppointmentsHandler) Update(c *fiber.Ctx) error {
	actor, ok := auth.StaffFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.UpdateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.AppointmentUpdateInput{
		ScheduledAt: req.ScheduledAt,
		Location:    req.Location,
		Notes:       req.Notes,
		Status:      req.Status,
	}
	appointment, err := h.service.Update(c.Context(), actor, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAppointmentResponse(appointment)})
}

// Cancel POST /appointments/:id/cancel.
func (h *AppointmentsHandler) Cancel(c *fiber.Ctx) error {
	actor, ok := auth.StaffFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	appointment, err := h.service.Cancel(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewAppointmentResponse(appointment)})
}

func parseAppointmentQuery(c *fiber.Ctx) repository.AppointmentFilter {
	filter := repository.AppointmentFilter{}
	if leadID := c.Query("lead_id"); leadID != "" {
		filter.LeadID = &leadID
	}
	if staffID := c.Query("staff_id"); staffID != "" {
		filter.StaffID = &staffID
	}
	if statusStr := c.Query("status"); statusStr != "" {
		for _, part := range strings.Split(statusStr, ",") {
			filter.Statuses = append(filter.Statuses, domain.AppointmentStatus(strings.TrimSpace(part)))
		}
	}
	if from := parseTime(c.Query("scheduled_from")); from != nil {
		filter.ScheduledFrom = from
	}
	if to := parseTime(c.Query("scheduled_to")); to != nil {
		filter.ScheduledTo = to
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}
