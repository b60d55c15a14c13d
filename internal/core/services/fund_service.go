package services

import (
	"context"
	"errors"
	"log"
	"strings"

	"growthpot/internal/adapters/persistence/models"
	"growthpot/internal/adapters/persistence/repositories"
	"growthpot/internal/core/domain"
	"growthpot/internal/pkg/joincode"

	"gorm.io/gorm"
)

// joinCodeAttempts bounds regeneration when a generated code collides
const joinCodeAttempts = 5

// FundService owns the fund lifecycle: creation, membership, verification,
// pause/resume. Payments and spins have their own services.
type FundService struct {
	fundRepo       *repositories.FundRepository
	membershipRepo *repositories.MembershipRepository
	paymentRepo    *repositories.PaymentRepository
	spinRepo       *repositories.SpinRepository
}

// NewFundService creates a new fund service
func NewFundService(
	fundRepo *repositories.FundRepository,
	membershipRepo *repositories.MembershipRepository,
	paymentRepo *repositories.PaymentRepository,
	spinRepo *repositories.SpinRepository,
) *FundService {
	return &FundService{
		fundRepo:       fundRepo,
		membershipRepo: membershipRepo,
		paymentRepo:    paymentRepo,
		spinRepo:       spinRepo,
	}
}

// CreateFundInput represents create fund input
type CreateFundInput struct {
	Name            string  `json:"name" validate:"required"`
	TotalAmount     float64 `json:"total_amount" validate:"required,gt=0"`
	Duration        int     `json:"duration" validate:"required,gte=1"`
	MemberCount     int     `json:"member_count" validate:"required,gte=2"`
	AdminCommission float64 `json:"admin_commission" validate:"gte=0,lte=100"`
}

// Create creates a new fund with the caller as admin. The fund starts with
// no memberships; an admin who wants to take part in the monthly cycle
// redeems their own join code like everyone else.
func (s *FundService) Create(ctx context.Context, adminID uint, input *CreateFundInput) (*models.Fund, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	if input.TotalAmount <= 0 || input.Duration < 1 || input.MemberCount < 2 {
		return nil, domain.ErrInvalidInput
	}
	if input.AdminCommission < 0 || input.AdminCommission > 100 {
		return nil, domain.ErrInvalidInput
	}

	fund := &models.Fund{
		Name:                strings.TrimSpace(input.Name),
		TotalAmount:         input.TotalAmount,
		MonthlyContribution: input.TotalAmount / float64(input.Duration),
		Duration:            input.Duration,
		MemberCount:         input.MemberCount,
		AdminID:             adminID,
		AdminCommission:     input.AdminCommission,
		CurrentMonth:        1,
		Status:              string(domain.FundActive),
	}

	// The unique index on join_code guarantees global uniqueness; regenerate
	// and retry on collision
	var lastErr error
	for attempt := 0; attempt < joinCodeAttempts; attempt++ {
		code, err := joincode.Generate()
		if err != nil {
			return nil, err
		}
		fund.JoinCode = code

		lastErr = s.fundRepo.Create(ctx, fund)
		if lastErr == nil {
			break
		}
		if !errors.Is(lastErr, gorm.ErrDuplicatedKey) {
			return nil, lastErr
		}
	}
	if lastErr != nil {
		return nil, lastErr
	}

	log.Printf("✅ Fund created: %s (code: %s)", fund.Name, fund.JoinCode)
	return fund, nil
}

// ListByUser lists funds where the user is admin or member
func (s *FundService) ListByUser(ctx context.Context, userID uint) ([]*models.Fund, error) {
	return s.fundRepo.ListByUser(ctx, userID)
}

// GetByID gets a fund by ID
func (s *FundService) GetByID(ctx context.Context, fundID uint) (*models.Fund, error) {
	fund, err := s.fundRepo.GetByID(ctx, fundID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFundNotFound
		}
		return nil, err
	}
	return fund, nil
}

// FundDetails aggregates everything the fund screen needs
type FundDetails struct {
	Fund    *models.Fund                 `json:"fund"`
	Members []*models.MembershipResponse `json:"members"`
	Spins   []*models.SpinResult         `json:"spins"`
	IsAdmin bool                         `json:"is_admin"`
}

// GetDetails gets a fund with its members (profiles joined) and spin history.
// Callers must be the admin or a member of the fund.
func (s *FundService) GetDetails(ctx context.Context, fundID, callerID uint) (*FundDetails, error) {
	fund, err := s.GetByID(ctx, fundID)
	if err != nil {
		return nil, err
	}

	if fund.AdminID != callerID {
		if _, err := s.membershipRepo.GetByFundAndUser(ctx, fundID, callerID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrNotFundMember
			}
			return nil, err
		}
	}

	memberships, err := s.membershipRepo.ListByFund(ctx, fundID)
	if err != nil {
		return nil, err
	}
	members := make([]*models.MembershipResponse, 0, len(memberships))
	for _, m := range memberships {
		members = append(members, m.ToResponse())
	}

	spins, err := s.spinRepo.ListByFund(ctx, fundID)
	if err != nil {
		return nil, err
	}

	return &FundDetails{
		Fund:    fund,
		Members: members,
		Spins:   spins,
		IsAdmin: fund.AdminID == callerID,
	}, nil
}

// Join redeems a join code. Idempotent: if the user already holds a
// membership the existing fund is returned without creating a duplicate.
// The composite unique index on (fund_id, user_id) is the backstop under
// concurrent double-submission; the existence check only saves a round trip.
func (s *FundService) Join(ctx context.Context, userID uint, code string) (*models.Fund, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != joincode.Length {
		return nil, domain.ErrJoinCodeNotFound
	}

	fund, err := s.fundRepo.GetByJoinCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrJoinCodeNotFound
		}
		return nil, err
	}

	if _, err := s.membershipRepo.GetByFundAndUser(ctx, fund.ID, userID); err == nil {
		return fund, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	membership := &models.Membership{
		FundID: fund.ID,
		UserID: userID,
	}
	if err := s.membershipRepo.Create(ctx, membership); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the race against a concurrent join by the same user
			return fund, nil
		}
		return nil, err
	}

	log.Printf("✅ User %d joined fund %s", userID, fund.Name)
	return fund, nil
}

// VerifyMember marks a membership verified. Admin only, and a no-op when
// the membership is already verified.
func (s *FundService) VerifyMember(ctx context.Context, adminID, fundID, membershipID uint) (*models.Membership, error) {
	fund, err := s.GetByID(ctx, fundID)
	if err != nil {
		return nil, err
	}
	if fund.AdminID != adminID {
		return nil, domain.ErrNotFundAdmin
	}

	membership, err := s.membershipRepo.GetByID(ctx, membershipID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrMembershipNotFound
		}
		return nil, err
	}
	if membership.FundID != fundID {
		return nil, domain.ErrMembershipNotFound
	}

	if membership.IsVerified {
		return membership, nil
	}

	membership.IsVerified = true
	if err := s.membershipRepo.Update(ctx, membership); err != nil {
		return nil, err
	}
	return membership, nil
}

// Pause moves an active fund to paused. Admin only.
func (s *FundService) Pause(ctx context.Context, adminID, fundID uint) (*models.Fund, error) {
	return s.setStatus(ctx, adminID, fundID, domain.FundActive, domain.FundPaused)
}

// Resume moves a paused fund back to active. Admin only.
func (s *FundService) Resume(ctx context.Context, adminID, fundID uint) (*models.Fund, error) {
	return s.setStatus(ctx, adminID, fundID, domain.FundPaused, domain.FundActive)
}

func (s *FundService) setStatus(ctx context.Context, adminID, fundID uint, from, to domain.FundStatus) (*models.Fund, error) {
	fund, err := s.GetByID(ctx, fundID)
	if err != nil {
		return nil, err
	}
	if fund.AdminID != adminID {
		return nil, domain.ErrNotFundAdmin
	}
	if fund.Status == string(domain.FundCompleted) {
		return nil, domain.ErrFundCompleted
	}
	if fund.Status != string(from) {
		return nil, domain.ErrFundNotActive
	}

	fund.Status = string(to)
	if err := s.fundRepo.Update(ctx, fund); err != nil {
		return nil, err
	}
	return fund, nil
}
