package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"growthpot/internal/adapters/persistence/models"
	"growthpot/internal/core/domain"
	"growthpot/internal/core/services"
	"growthpot/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// FundHandler handles fund endpoints
type FundHandler struct {
	fundService         *services.FundService
	notificationService *services.NotificationService
}

// NewFundHandler creates a new fund handler
func NewFundHandler(fundService *services.FundService, notificationService *services.NotificationService) *FundHandler {
	return &FundHandler{
		fundService:         fundService,
		notificationService: notificationService,
	}
}

// CreateFundRequest represents fund creation request body
type CreateFundRequest struct {
	Name            string  `json:"name"`
	TotalAmount     float64 `json:"total_amount"`
	Duration        int     `json:"duration"`
	MemberCount     int     `json:"member_count"`
	AdminCommission float64 `json:"admin_commission"`
}

// JoinFundRequest represents join request body
type JoinFundRequest struct {
	JoinCode string `json:"join_code"`
}

// Create handles fund creation
// @Summary Create fund
// @Description Create a new fund with the caller as admin
// @Tags Funds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateFundRequest true "Fund data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /funds [post]
func (h *FundHandler) Create(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req CreateFundRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if strings.TrimSpace(req.Name) == "" {
		return response.BadRequest(c, "Fund name is required")
	}

	input := &services.CreateFundInput{
		Name:            strings.TrimSpace(req.Name),
		TotalAmount:     req.TotalAmount,
		Duration:        req.Duration,
		MemberCount:     req.MemberCount,
		AdminCommission: req.AdminCommission,
	}

	fund, err := h.fundService.Create(c.Context(), userID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid fund parameters")
		default:
			return response.InternalServerError(c, "Failed to create fund")
		}
	}

	return response.Created(c, "Fund created successfully", fund)
}

// List handles listing the caller's funds
// @Summary List funds
// @Description List funds the caller administers or belongs to
// @Tags Funds
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /funds [get]
func (h *FundHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	funds, err := h.fundService.ListByUser(c.Context(), userID)
	if err != nil {
		return response.InternalServerError(c, "Failed to list funds")
	}

	return response.Success(c, "Funds retrieved successfully", funds)
}

// GetDetails handles fund detail view
// @Summary Get fund details
// @Description Get a fund with its members and spin history
// @Tags Funds
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fund ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /funds/{id} [get]
func (h *FundHandler) GetDetails(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	fundID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid fund ID")
	}

	details, err := h.fundService.GetDetails(c.Context(), fundID, userID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFundNotFound):
			return response.NotFound(c, "Fund not found")
		case errors.Is(err, domain.ErrNotFundMember):
			return response.Forbidden(c, "You are not a member of this fund")
		default:
			return response.InternalServerError(c, "Failed to get fund details")
		}
	}

	return response.Success(c, "Fund details retrieved successfully", details)
}

// Join handles joining a fund by code
// @Summary Join fund
// @Description Join a fund using its join code
// @Tags Funds
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body JoinFundRequest true "Join code"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /funds/join [post]
func (h *FundHandler) Join(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req JoinFundRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.JoinCode == "" {
		return response.BadRequest(c, "Join code is required")
	}

	fund, err := h.fundService.Join(c.Context(), userID, req.JoinCode)
	if err != nil {
		if errors.Is(err, domain.ErrJoinCodeNotFound) {
			return response.NotFound(c, "No fund found for this join code")
		}
		return response.InternalServerError(c, "Failed to join fund")
	}

	return response.Success(c, "Joined fund successfully", fund)
}

// VerifyMember handles admin verification of a member
// @Summary Verify member
// @Description Mark a fund member as verified (admin only)
// @Tags Funds
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fund ID"
// @Param memberId path int true "Membership ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /funds/{id}/members/{memberId}/verify [post]
func (h *FundHandler) VerifyMember(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	fundID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid fund ID")
	}
	membershipID, err := parseIDParam(c, "memberId")
	if err != nil {
		return response.BadRequest(c, "Invalid membership ID")
	}

	membership, err := h.fundService.VerifyMember(c.Context(), userID, fundID, membershipID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFundNotFound):
			return response.NotFound(c, "Fund not found")
		case errors.Is(err, domain.ErrMembershipNotFound):
			return response.NotFound(c, "Membership not found")
		case errors.Is(err, domain.ErrNotFundAdmin):
			return response.Forbidden(c, "Only the fund admin can verify members")
		default:
			return response.InternalServerError(c, "Failed to verify member")
		}
	}

	return response.Success(c, "Member verified successfully", membership)
}

// Pause handles pausing an active fund
// @Summary Pause fund
// @Description Pause an active fund (admin only)
// @Tags Funds
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fund ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /funds/{id}/pause [post]
func (h *FundHandler) Pause(c *fiber.Ctx) error {
	return h.setStatus(c, h.fundService.Pause, "Fund paused successfully")
}

// Resume handles resuming a paused fund
// @Summary Resume fund
// @Description Resume a paused fund (admin only)
// @Tags Funds
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fund ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /funds/{id}/resume [post]
func (h *FundHandler) Resume(c *fiber.Ctx) error {
	return h.setStatus(c, h.fundService.Resume, "Fund resumed successfully")
}

// SendReminders handles sending payment reminders for the current month
// @Summary Send payment reminders
// @Description Notify unpaid members for the current month (admin only)
// @Tags Funds
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fund ID"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /funds/{id}/reminders [post]
func (h *FundHandler) SendReminders(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	fundID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid fund ID")
	}

	count, err := h.notificationService.SendPaymentReminders(c.Context(), userID, fundID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFundNotFound):
			return response.NotFound(c, "Fund not found")
		case errors.Is(err, domain.ErrNotFundAdmin):
			return response.Forbidden(c, "Only the fund admin can send reminders")
		default:
			return response.InternalServerError(c, "Failed to send reminders")
		}
	}

	return response.Success(c, "Reminders sent successfully", fiber.Map{
		"reminders_sent": count,
	})
}

func (h *FundHandler) setStatus(c *fiber.Ctx, fn func(ctx context.Context, adminID, fundID uint) (*models.Fund, error), message string) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	fundID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid fund ID")
	}

	fund, err := fn(c.Context(), userID, fundID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFundNotFound):
			return response.NotFound(c, "Fund not found")
		case errors.Is(err, domain.ErrNotFundAdmin):
			return response.Forbidden(c, "Only the fund admin can change fund status")
		case errors.Is(err, domain.ErrFundCompleted):
			return response.Conflict(c, "Fund has already completed")
		case errors.Is(err, domain.ErrFundNotActive):
			return response.Conflict(c, "Fund is not in a state that allows this change")
		default:
			return response.InternalServerError(c, "Failed to change fund status")
		}
	}

	return response.Success(c, message, fund)
}

// parseIDParam parses a uint path parameter
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}
