package services

import (
	"context"
	"log"

	"growthpot/internal/adapters/persistence/repositories"
	"growthpot/internal/core/domain"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// CronService runs scheduled maintenance: purging expired refresh tokens
// and completing funds whose month counter already passed their duration
// (rows that predate completion being a spin side effect).
type CronService struct {
	cron             *cron.Cron
	refreshTokenRepo repositories.RefreshTokenRepository
	fundRepo         *repositories.FundRepository
}

// NewCronService creates a new cron service
func NewCronService(db *gorm.DB) *CronService {
	return &CronService{
		cron:             cron.New(),
		refreshTokenRepo: repositories.NewRefreshTokenRepository(db),
		fundRepo:         repositories.NewFundRepository(db),
	}
}

// Start registers and launches the scheduled jobs
func (s *CronService) Start() {
	// 03:00 daily: purge expired refresh tokens
	s.cron.AddFunc("0 3 * * *", func() {
		if err := s.refreshTokenRepo.DeleteExpired(context.Background()); err != nil {
			log.Printf("❌ Refresh token cleanup error: %v", err)
			return
		}
		log.Println("🧹 Expired refresh tokens purged")
	})

	// 03:10 daily: sweep overdue active funds into completed
	s.cron.AddFunc("10 3 * * *", s.completeOverdueFunds)

	s.cron.Start()
	log.Println("🚀 CronService started")
}

// Stop stops the scheduler
func (s *CronService) Stop() {
	s.cron.Stop()
	log.Println("🛑 CronService stopped")
}

func (s *CronService) completeOverdueFunds() {
	ctx := context.Background()
	funds, err := s.fundRepo.ListOverdueActive(ctx)
	if err != nil {
		log.Printf("❌ Overdue fund query error: %v", err)
		return
	}

	for _, fund := range funds {
		fund.Status = string(domain.FundCompleted)
		if err := s.fundRepo.Update(ctx, fund); err != nil {
			log.Printf("❌ Failed to complete fund %d: %v", fund.ID, err)
			continue
		}
		log.Printf("🏁 Fund completed by sweep: %s (id=%d)", fund.Name, fund.ID)
	}
}
