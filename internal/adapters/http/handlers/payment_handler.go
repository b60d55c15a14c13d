package handlers

import (
	"errors"

	"growthpot/internal/core/domain"
	"growthpot/internal/core/services"
	"growthpot/internal/pkg/pagination"
	"growthpot/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	paymentService *services.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// SubmitPaymentRequest represents payment submission request body
type SubmitPaymentRequest struct {
	Month      int     `json:"month"`
	Amount     float64 `json:"amount"`
	ProofText  string  `json:"proof_text"`
	ProofImage string  `json:"proof_image"`
}

// SetPaymentStatusRequest represents payment review request body
type SetPaymentStatusRequest struct {
	Status string `json:"status"`
}

// Submit handles payment submission
// @Summary Submit payment
// @Description Submit a contribution payment for the fund's current month
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fund ID"
// @Param body body SubmitPaymentRequest true "Payment data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /funds/{id}/payments [post]
func (h *PaymentHandler) Submit(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	fundID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid fund ID")
	}

	var req SubmitPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	input := &services.SubmitPaymentInput{
		Month:      req.Month,
		Amount:     req.Amount,
		ProofText:  req.ProofText,
		ProofImage: req.ProofImage,
	}

	payment, err := h.paymentService.Submit(c.Context(), userID, fundID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidInput):
			return response.BadRequest(c, "Invalid payment data")
		case errors.Is(err, domain.ErrFundNotFound):
			return response.NotFound(c, "Fund not found")
		case errors.Is(err, domain.ErrFundNotActive):
			return response.Conflict(c, "Fund is not accepting payments")
		case errors.Is(err, domain.ErrWrongMonth):
			return response.Conflict(c, "Payments are only accepted for the current month")
		case errors.Is(err, domain.ErrNotFundMember):
			return response.Forbidden(c, "You are not a member of this fund")
		case errors.Is(err, domain.ErrDuplicatePayment):
			return response.Conflict(c, "Payment already submitted for this month")
		default:
			return response.InternalServerError(c, "Failed to submit payment")
		}
	}

	return response.Created(c, "Payment submitted successfully", payment.ToResponse())
}

// List handles listing a fund's payments
// @Summary List fund payments
// @Description List payments for a fund, newest first
// @Tags Payments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Fund ID"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Router /funds/{id}/payments [get]
func (h *PaymentHandler) List(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	fundID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid fund ID")
	}

	params := pagination.GetParams(c)

	payments, total, err := h.paymentService.ListByFund(c.Context(), userID, fundID, params.Offset, params.Limit)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrFundNotFound):
			return response.NotFound(c, "Fund not found")
		case errors.Is(err, domain.ErrNotFundMember):
			return response.Forbidden(c, "You are not a member of this fund")
		default:
			return response.InternalServerError(c, "Failed to list payments")
		}
	}

	return response.Success(c, "Payments retrieved successfully", pagination.NewResponse(payments, params, total))
}

// SetStatus handles payment review by the fund admin
// @Summary Review payment
// @Description Approve or reject a pending payment (admin only)
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Payment ID"
// @Param body body SetPaymentStatusRequest true "New status"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /payments/{id}/status [put]
func (h *PaymentHandler) SetStatus(c *fiber.Ctx) error {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	paymentID, err := parseIDParam(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid payment ID")
	}

	var req SetPaymentStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	var status domain.PaymentStatus
	switch req.Status {
	case string(domain.PaymentApproved):
		status = domain.PaymentApproved
	case string(domain.PaymentRejected):
		status = domain.PaymentRejected
	default:
		return response.BadRequest(c, "Status must be 'approved' or 'rejected'")
	}

	payment, err := h.paymentService.SetStatus(c.Context(), userID, paymentID, status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPaymentNotFound):
			return response.NotFound(c, "Payment not found")
		case errors.Is(err, domain.ErrNotFundAdmin):
			return response.Forbidden(c, "Only the fund admin can review payments")
		case errors.Is(err, domain.ErrPaymentFinalized):
			return response.Conflict(c, "Payment has already been reviewed")
		default:
			return response.InternalServerError(c, "Failed to review payment")
		}
	}

	return response.Success(c, "Payment reviewed successfully", payment.ToResponse())
}
