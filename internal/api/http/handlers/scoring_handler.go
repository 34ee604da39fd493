package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/brokerage-crm/internal/api/dto"
	"github.com/spec-kit/brokerage-crm/internal/auth"
	"github.com/spec-kit/brokerage-crm/internal/service"
	apperrors "github.com/spec-kit/brokerage-crm/pkg/util/errorutil"
)

// ScoringHandler exposes the AI assessment endpoints.
type ScoringHandler struct {
	service *service.ScoringService
}

// NewScoringHandler constructs handler.
func NewScoringHandler(scoringService *service.ScoringService) *ScoringHandler {
	return &ScoringHandler{service: scoringService}
}

// ScoreApplication POST /scoring/applications.
func (h *ScoringHandler) ScoreApplication(c *fiber.Ctx) error {
	actor, ok := auth.StaffFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	var req dto.ScoreApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.FullName) == "" || strings.TrimSpace(req.Phone) == "" {
		return apperrors.NewValidationError("full_name and phone required", nil)
	}

	score, err := h.service.ScoreApplication(c.Context(), actor, req.Answers())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewApplicationScoreResponse(score)})
}

// QualifyLead POST /leads/:id/qualify.
func (h *ScoringHandler) QualifyLead(c *fiber.Ctx) error {
	actor, ok := auth.StaffFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("staff required")
	}
	qualification, err := h.service.QualifyLead(c.Context(), actor, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewQualificationResponse(qualification)})
}
