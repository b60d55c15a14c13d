package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"

	"growthpot/internal/adapters/persistence/models"
	"growthpot/internal/adapters/persistence/repositories"
	"growthpot/internal/core/domain"

	"gorm.io/gorm"
)

// SpinService conducts the monthly winner selection. The whole spin —
// record insert, winner flag, month advance, completion — runs inside one
// database transaction so a crash or a losing concurrent call can never
// leave a half-applied spin.
type SpinService struct {
	db               *gorm.DB
	spinRepo         *repositories.SpinRepository
	notificationRepo *repositories.NotificationRepository
}

// NewSpinService creates a new spin service
func NewSpinService(db *gorm.DB, spinRepo *repositories.SpinRepository, notificationRepo *repositories.NotificationRepository) *SpinService {
	return &SpinService{
		db:               db,
		spinRepo:         spinRepo,
		notificationRepo: notificationRepo,
	}
}

// Conduct selects one eligible member uniformly at random and applies the
// month transition. Eligible means verified and not yet a winner in this
// fund. The unique index on (fund_id, month) is the backstop against two
// concurrent spins for the same month: the loser's insert fails and its
// whole transaction rolls back.
func (s *SpinService) Conduct(ctx context.Context, adminID, fundID uint) (*domain.SpinOutcome, error) {
	var outcome *domain.SpinOutcome

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var fund models.Fund
		if err := tx.First(&fund, fundID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrFundNotFound
			}
			return err
		}

		if fund.AdminID != adminID {
			return domain.ErrNotFundAdmin
		}
		if fund.Status != string(domain.FundActive) {
			return domain.ErrFundNotActive
		}

		// Fast-path duplicate check; the unique index catches the race
		var spinCount int64
		if err := tx.Model(&models.SpinResult{}).
			Where("fund_id = ? AND month = ?", fund.ID, fund.CurrentMonth).
			Count(&spinCount).Error; err != nil {
			return err
		}
		if spinCount > 0 {
			return domain.ErrDuplicateSpin
		}

		var eligible []models.Membership
		if err := tx.Preload("User").
			Where("fund_id = ? AND is_verified = ? AND has_won = ?", fund.ID, true, false).
			Find(&eligible).Error; err != nil {
			return err
		}
		if len(eligible) == 0 {
			return domain.ErrNoEligibleMembers
		}
		if len(eligible) < 2 {
			return domain.ErrInsufficientMembers
		}

		winner, err := pickWinner(eligible)
		if err != nil {
			return err
		}

		payout := fund.MonthlyContribution * (1 - fund.AdminCommission/100)
		month := fund.CurrentMonth

		result := &models.SpinResult{
			FundID:   fund.ID,
			Month:    month,
			WinnerID: winner.UserID,
			Amount:   payout,
		}
		if err := tx.Create(result).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return domain.ErrDuplicateSpin
			}
			return err
		}

		// Column-scoped update: Save on a membership with a preloaded User
		// would write the association row as well
		if err := tx.Model(&models.Membership{}).
			Where("id = ?", winner.ID).
			Updates(map[string]interface{}{"has_won": true, "won_month": month}).Error; err != nil {
			return err
		}

		fund.CurrentMonth++
		if fund.CurrentMonth > fund.Duration {
			fund.Status = string(domain.FundCompleted)
		}
		if err := tx.Save(&fund).Error; err != nil {
			return err
		}

		winnerName := ""
		if winner.User != nil {
			winnerName = winner.User.FullName
		}
		outcome = &domain.SpinOutcome{
			WinnerID:   winner.UserID,
			WinnerName: winnerName,
			Amount:     payout,
			Month:      month,
		}

		notification := &models.Notification{
			UserID:  winner.UserID,
			FundID:  fund.ID,
			Type:    domain.NotifySpinWinner,
			Title:   "You Won the Pot! 🎉",
			Message: fmt.Sprintf("Congratulations! You won ₹%.0f in %s (Month %d).", payout, fund.Name, month),
		}
		return tx.Create(notification).Error
	})

	if err != nil {
		return nil, err
	}
	if outcome == nil {
		return nil, domain.ErrSpinResultNotReturned
	}

	log.Printf("🎡 Spin conducted: fund=%d month=%d winner=%d payout=%.2f",
		fundID, outcome.Month, outcome.WinnerID, outcome.Amount)
	return outcome, nil
}

// History lists a fund's spin results, most recent month first
func (s *SpinService) History(ctx context.Context, fundID uint) ([]*models.SpinResult, error) {
	return s.spinRepo.ListByFund(ctx, fundID)
}

// pickWinner draws uniformly from the eligible set. The draw happens
// server-side with crypto/rand so no client, the admin's included, can
// predict or influence the outcome.
func pickWinner(eligible []models.Membership) (*models.Membership, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(eligible))))
	if err != nil {
		return nil, err
	}
	return &eligible[n.Int64()], nil
}
