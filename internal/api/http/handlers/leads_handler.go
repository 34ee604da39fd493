package handlers

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/brokerage-crm/internal/api/dto"
	"github.com/spec-kit/brokerage-crm/internal/auth"
	"github.com/spec-kit/brokerage-crm/internal/domain"
	"github.com/spec-kit/brokerage-crm/internal/service"
	apperrors "github.com/spec-kit/brokerage-crm/pkg/util/errorutil"
)

// LeadsHandler manages lead pipeline endpoints.
type LeadsHandler struct {
	leads    *service.LeadService
	pipeline *service.PipelineService
	notes    *service.NoteService
}

// NewLeadsHandler constructs handler.
func NewLeadsHandler(leadService *service.LeadService, pipelineService *service.PipelineService, noteService *service.NoteService) *LeadsHandler {
	return &LeadsHandler{leads: leadService, pipeline: pipelineService, notes: noteService}
}

// CreateLead POST /leads.
func (h *LeadsHandler) CreateLead(c *fiber.Ctx) error {
	actor, ok := auth.StaffFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.CreateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Phone) == "" {
		return apperrors.NewValidationError("name and phone required", nil)
	}

	input := service.LeadCreateInput{
		Name:                req.Name,
		Phone:               req.Phone,
		Email:               req.Email,
		Source:              req.Source,
		OwnerID:             req.OwnerID,
		InterestedVehicleID: req.InterestedVehicleID,
	}
	lead, err := h.leads.CreateLead(c.Context(), actor, input)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewLeadResponse(lead)})
}

// ListLeads GET /leads.
func (h *LeadsHandler) ListLeads(c *fiber.Ctx) error {
	actor, ok := auth.StaffFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	filter := parseLeadQuery(c)
	leads, err := h.leads.ListLeads(c.Context(), actor, filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeadResponses(leads)})
}

// GetLead GET /leads/:id.
func (h *LeadsHandler) GetLead(c *fiber.Ctx) error {
	actor, ok := auth.StaffFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	lead, err := h.leads.GetLead(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeadResponse(lead)})
}

// UpdateLead PATCH /leads/:id.
func (h *LeadsHandler) UpdateLead(c *fiber.Ctx) error {
	actor, ok := auth.StaffFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.UpdateLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	input := service.LeadUpdateInput{
		Name:                req.Name,
		Phone:               req.Phone,
		Email:               req.Email,
		InterestedVehicleID: req.InterestedVehicleID,
	}
	lead, err := h.leads.UpdateLead(c.Context(), actor, c.Params("id"), input)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeadResponse(lead)})
}

// ChangeStage POST /leads/:id/stage.
func (h *LeadsHandler) ChangeStage(c *fiber.Ctx) error {
	actor, ok := auth.StaffFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.ChangeStageRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	lead, err := h.pipeline.ChangeStage(c.Context(), actor, c.Params("id"), req.Stage)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeadResponse(lead)})
}

// ChangeOwner POST /leads/:id/owner.
func (h *LeadsHandler) ChangeOwner(c *fiber.Ctx) error {
	actor, ok := auth.StaffFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.ChangeOwnerRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if req.OwnerID == "" {
		return apperrors.NewValidationError("owner_id required", nil)
	}

	lead, err := h.leads.ChangeOwner(c.Context(), actor, c.Params("id"), req.OwnerID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewLeadResponse(lead)})
}

// AddNote POST /leads/:id/notes.
func (h *LeadsHandler) AddNote(c *fiber.Ctx) error {
	actor, ok := auth.StaffFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.CreateNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Content) == "" {
		return apperrors.NewValidationError("content required", nil)
	}

	lead, err := h.leads.GetLead(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	note, err := h.notes.AddNoteEntry(c.Context(), lead.ID, req.Content, domain.NoteTypeManual, actor.Name)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": dto.NewNoteResponse(note)})
}

// ListNotes GET /leads/:id/notes.
func (h *LeadsHandler) ListNotes(c *fiber.Ctx) error {
	actor, ok := auth.StaffFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	lead, err := h.leads.GetLead(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	ascending := c.Query("order") == "asc"
	notes, err := h.notes.ListNotes(c.Context(), lead.ID, ascending)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewNoteResponses(notes)})
}

func parseLeadQuery(c *fiber.Ctx) service.LeadListFilter {
	filter := service.LeadListFilter{}
	if stageStr := c.Query("stage"); stageStr != "" {
		for _, part := range strings.Split(stageStr, ",") {
			filter.Stages = append(filter.Stages, domain.LeadStage(strings.TrimSpace(part)))
		}
	}
	if sourceStr := c.Query("source"); sourceStr != "" {
		for _, part := range strings.Split(sourceStr, ",") {
			filter.Sources = append(filter.Sources, domain.LeadSource(strings.TrimSpace(part)))
		}
	}
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		filter.SearchTerm = &search
	}
	if from := parseTime(c.Query("created_from")); from != nil {
		filter.CreatedFrom = from
	}
	if to := parseTime(c.Query("created_to")); to != nil {
		filter.CreatedTo = to
	}
	page := parseInt(c.Query("page"), 1)
	pageSize := parseInt(c.Query("page_size"), 20)
	filter.Offset = (page - 1) * pageSize
	filter.Limit = pageSize
	return filter
}

func parseTime(val string) *time.Time {
	if val == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, val)
	if err != nil {
		return nil
	}
	return &t
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}
