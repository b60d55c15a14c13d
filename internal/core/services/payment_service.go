package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"growthpot/internal/adapters/persistence/models"
	"growthpot/internal/adapters/persistence/repositories"
	"growthpot/internal/core/domain"

	"gorm.io/gorm"
)

// PaymentService handles contribution claims and their review
type PaymentService struct {
	fundRepo         *repositories.FundRepository
	membershipRepo   *repositories.MembershipRepository
	paymentRepo      *repositories.PaymentRepository
	notificationRepo *repositories.NotificationRepository
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	fundRepo *repositories.FundRepository,
	membershipRepo *repositories.MembershipRepository,
	paymentRepo *repositories.PaymentRepository,
	notificationRepo *repositories.NotificationRepository,
) *PaymentService {
	return &PaymentService{
		fundRepo:         fundRepo,
		membershipRepo:   membershipRepo,
		paymentRepo:      paymentRepo,
		notificationRepo: notificationRepo,
	}
}

// SubmitPaymentInput represents a contribution claim
type SubmitPaymentInput struct {
	Month      int     `json:"month" validate:"required,gte=1"`
	Amount     float64 `json:"amount" validate:"required,gt=0"`
	ProofText  string  `json:"proof_text,omitempty"`
	ProofImage string  `json:"proof_image,omitempty"`
}

// Submit creates a pending payment for the fund's current month.
// Claims for any other month fail, as do resubmissions while a pending or
// approved claim stands. A rejected claim does not block: it is superseded
// by the new submission so the member can redo a bad proof.
func (s *PaymentService) Submit(ctx context.Context, userID, fundID uint, input *SubmitPaymentInput) (*models.Payment, error) {
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidInput
	}

	fund, err := s.fundRepo.GetByID(ctx, fundID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFundNotFound
		}
		return nil, err
	}
	if fund.Status != string(domain.FundActive) {
		return nil, domain.ErrFundNotActive
	}
	if input.Month != fund.CurrentMonth {
		return nil, domain.ErrWrongMonth
	}

	if _, err := s.membershipRepo.GetByFundAndUser(ctx, fundID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFundMember
		}
		return nil, err
	}

	// The unique index on (fund_id, member_id, month) covers rejected rows
	// too, so a standing rejection must be cleared before the retry
	existing, err := s.paymentRepo.GetByFundMemberMonth(ctx, fundID, userID, input.Month)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Status != string(domain.PaymentRejected) {
			return nil, domain.ErrDuplicatePayment
		}
		if err := s.paymentRepo.Delete(ctx, existing.ID); err != nil {
			return nil, err
		}
	}

	payment := &models.Payment{
		FundID:     fundID,
		MemberID:   userID,
		Month:      input.Month,
		Amount:     input.Amount,
		ProofText:  input.ProofText,
		ProofImage: input.ProofImage,
		Status:     string(domain.PaymentPending),
	}
	if err := s.paymentRepo.Create(ctx, payment); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrDuplicatePayment
		}
		return nil, err
	}

	return payment, nil
}

// ListByFund lists a fund's payments with pagination. Admin or member only.
func (s *PaymentService) ListByFund(ctx context.Context, callerID, fundID uint, offset, limit int) ([]*models.Payment, int64, error) {
	fund, err := s.fundRepo.GetByID(ctx, fundID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, domain.ErrFundNotFound
		}
		return nil, 0, err
	}
	if fund.AdminID != callerID {
		if _, err := s.membershipRepo.GetByFundAndUser(ctx, fundID, callerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, 0, domain.ErrNotFundMember
			}
			return nil, 0, err
		}
	}
	return s.paymentRepo.ListByFundPaged(ctx, fundID, offset, limit)
}

// SetStatus transitions a pending payment to approved or rejected.
// Only the admin of the payment's fund may call this; approved and rejected
// are terminal. Approval stamps approved_at and notifies the member; it
// never touches fund counters — month advancement belongs to the spin.
func (s *PaymentService) SetStatus(ctx context.Context, adminID, paymentID uint, status domain.PaymentStatus) (*models.Payment, error) {
	if status != domain.PaymentApproved && status != domain.PaymentRejected {
		return nil, domain.ErrInvalidInput
	}

	payment, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPaymentNotFound
		}
		return nil, err
	}

	fund, err := s.fundRepo.GetByID(ctx, payment.FundID)
	if err != nil {
		return nil, err
	}
	if fund.AdminID != adminID {
		return nil, domain.ErrNotFundAdmin
	}

	if payment.Status != string(domain.PaymentPending) {
		return nil, domain.ErrPaymentFinalized
	}

	payment.Status = string(status)
	if status == domain.PaymentApproved {
		now := time.Now()
		payment.ApprovedAt = &now
	}
	if err := s.paymentRepo.Update(ctx, payment); err != nil {
		return nil, err
	}

	if status == domain.PaymentApproved {
		notification := &models.Notification{
			UserID:  payment.MemberID,
			FundID:  fund.ID,
			Type:    domain.NotifyPaymentApproved,
			Title:   "Payment Approved ✅",
			Message: fmt.Sprintf("Your payment of ₹%.0f for %s (Month %d) was approved.", payment.Amount, fund.Name, payment.Month),
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			log.Printf("⚠️ Failed to create approval notification: %v", err)
		}
	}

	return payment, nil
}
