package repositories

import (
	"context"

	"growthpot/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// FundRepository handles fund data access
type FundRepository struct {
	db *gorm.DB
}

// NewFundRepository creates a new fund repository
func NewFundRepository(db *gorm.DB) *FundRepository {
	return &FundRepository{db: db}
}

// Create creates a new fund
func (r *FundRepository) Create(ctx context.Context, fund *models.Fund) error {
	return r.db.WithContext(ctx).Create(fund).Error
}

// GetByID gets a fund by ID
func (r *FundRepository) GetByID(ctx context.Context, id uint) (*models.Fund, error) {
	var fund models.Fund
	err := r.db.WithContext(ctx).First(&fund, id).Error
	if err != nil {
		return nil, err
	}
	return &fund, nil
}

// GetByJoinCode gets a fund by its join code (codes are stored uppercase)
func (r *FundRepository) GetByJoinCode(ctx context.Context, code string) (*models.Fund, error) {
	var fund models.Fund
	err := r.db.WithContext(ctx).Where("join_code = ?", code).First(&fund).Error
	if err != nil {
		return nil, err
	}
	return &fund, nil
}

// ListByUser lists funds where the user is admin or member, deduped
func (r *FundRepository) ListByUser(ctx context.Context, userID uint) ([]*models.Fund, error) {
	var funds []*models.Fund
	err := r.db.WithContext(ctx).
		Distinct("funds.*").
		Joins("LEFT JOIN fund_members ON fund_members.fund_id = funds.id").
		Where("funds.admin_id = ? OR fund_members.user_id = ?", userID, userID).
		Order("funds.created_at DESC").
		Find(&funds).Error
	return funds, err
}

// Update updates a fund
func (r *FundRepository) Update(ctx context.Context, fund *models.Fund) error {
	return r.db.WithContext(ctx).Save(fund).Error
}

// ListOverdueActive lists active funds whose current month has passed their duration.
// Safety net for rows created before completion became a spin side effect.
func (r *FundRepository) ListOverdueActive(ctx context.Context) ([]*models.Fund, error) {
	var funds []*models.Fund
	err := r.db.WithContext(ctx).
		Where("status = ?", "active").
		Where("current_month > duration").
		Find(&funds).Error
	return funds, err
}
