package repositories

import (
	"context"

	"growthpot/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// MembershipRepository handles fund membership data access
type MembershipRepository struct {
	db *gorm.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *gorm.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Create creates a new membership
func (r *MembershipRepository) Create(ctx context.Context, membership *models.Membership) error {
	return r.db.WithContext(ctx).Create(membership).Error
}

// GetByID gets a membership by ID
func (r *MembershipRepository) GetByID(ctx context.Context, id uint) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.WithContext(ctx).First(&membership, id).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// GetByFundAndUser gets the membership for a (fund, user) pair
func (r *MembershipRepository) GetByFundAndUser(ctx context.Context, fundID, userID uint) (*models.Membership, error) {
	var membership models.Membership
	err := r.db.WithContext(ctx).
		Where("fund_id = ? AND user_id = ?", fundID, userID).
		First(&membership).Error
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// ListByFund lists memberships of a fund with member profiles
func (r *MembershipRepository) ListByFund(ctx context.Context, fundID uint) ([]*models.Membership, error) {
	var memberships []*models.Membership
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("fund_id = ?", fundID).
		Order("joined_at ASC").
		Find(&memberships).Error
	return memberships, err
}

// Update updates a membership
func (r *MembershipRepository) Update(ctx context.Context, membership *models.Membership) error {
	return r.db.WithContext(ctx).Save(membership).Error
}
