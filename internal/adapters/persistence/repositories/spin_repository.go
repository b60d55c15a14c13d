package repositories

import (
	"context"

	"growthpot/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SpinRepository handles spin result data access.
// Writes happen inside the spin transaction, not through this repository.
type SpinRepository struct {
	db *gorm.DB
}

// NewSpinRepository creates a new spin repository
func NewSpinRepository(db *gorm.DB) *SpinRepository {
	return &SpinRepository{db: db}
}

// ListByFund lists spin results of a fund, most recent month first
func (r *SpinRepository) ListByFund(ctx context.Context, fundID uint) ([]*models.SpinResult, error) {
	var results []*models.SpinResult
	err := r.db.WithContext(ctx).
		Preload("Winner").
		Where("fund_id = ?", fundID).
		Order("month DESC").
		Find(&results).Error
	return results, err
}
