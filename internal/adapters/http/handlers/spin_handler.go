package handlers

import (
	"errors"

	"growthpot/internal/core/domain"
	"growthpot/internal/core/services"
	"growthpot/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SpinHandler handles spin endpoints
type SpinHandler struct {
	spinService *services.SpinService
}

// NewSpinHandler creates a new spin handler
func NewSpinHandler(spinService *services.SpinService) *SpinHandler {
	return &SpinHandler{spinService: spinService}
}

// Conduct handles running the monthly spin
// @Summary Conduct spin
// @Description Randomly select this month's winner among eligible members (admin only)
// @Tags Spins
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fund ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /funds/{id}/spin [post]
func (h *SpinHandler) Conduct(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	fundID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid fund ID")
	}

	outcome, err := h.spinService.Conduct(c.Context(), userID, fundID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFundNotFound):
			return response.NotFound(c, "Fund not found")
		case errors.Is(err, domain.ErrNotFundAdmin):
			return response.Forbidden(c, "Only the fund admin can conduct the spin")
		case errors.Is(err, domain.ErrFundNotActive):
			return response.Conflict(c, "Fund is not active")
		case errors.Is(err, domain.ErrDuplicateSpin):
			return response.Conflict(c, "Spin already conducted for this month")
		case errors.Is(err, domain.ErrNoEligibleMembers):
			return response.UnprocessableEntity(c, "No eligible members for this month's spin")
		case errors.Is(err, domain.ErrInsufficientMembers):
			return response.UnprocessableEntity(c, "Not enough eligible members to conduct a spin")
		default:
			return response.InternalServerError(c, "Failed to conduct spin")
		}
	}

	return response.Success(c, "Spin conducted successfully", outcome)
}

// History handles listing a fund's spin results
// @Summary Spin history
// @Description List past spin results for a fund, newest first
// @Tags Spins
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fund ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /funds/{id}/spins [get]
func (h *SpinHandler) History(c *fiber.Ctx) error {
	if _, ok := c.Locals("userID").(uint); !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	fundID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid fund ID")
	}

	spins, err := h.spinService.History(c.Context(), fundID)
	if err != nil {
		return response.InternalServerError(c, "Failed to get spin history")
	}

	return response.Success(c, "Spin history retrieved successfully", spins)
}
