package repositories

import (
	"context"

	"growthpot/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// PaymentRepository handles payment data access
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create creates a new payment
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

// GetByID gets a payment by ID
func (r *PaymentRepository) GetByID(ctx context.Context, id uint) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).First(&payment, id).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetByFundMemberMonth gets a member's payment for one fund month
func (r *PaymentRepository) GetByFundMemberMonth(ctx context.Context, fundID, memberID uint, month int) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.WithContext(ctx).
		Where("fund_id = ? AND member_id = ? AND month = ?", fundID, memberID, month).
		First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// Delete removes a payment row
func (r *PaymentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Payment{}, id).Error
}

// ListByFundPaged lists payments of a fund with pagination, newest first
func (r *PaymentRepository) ListByFundPaged(ctx context.Context, fundID uint, offset, limit int) ([]*models.Payment, int64, error) {
	var payments []*models.Payment
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.Payment{}).Where("fund_id = ?", fundID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Preload("Member").
		Where("fund_id = ?", fundID).
		Order("submitted_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&payments).Error

	return payments, total, err
}

// ListMemberIDsForMonth lists member ids with a live payment for a fund
// month. Pending and approved claims count; a rejected claim does not, the
// member still owes a corrected submission.
func (r *PaymentRepository) ListMemberIDsForMonth(ctx context.Context, fundID uint, month int) ([]uint, error) {
	var memberIDs []uint
	err := r.db.WithContext(ctx).
		Model(&models.Payment{}).
		Where("fund_id = ? AND month = ? AND status <> ?", fundID, month, "rejected").
		Pluck("member_id", &memberIDs).Error
	return memberIDs, err
}

// Update updates a payment
func (r *PaymentRepository) Update(ctx context.Context, payment *models.Payment) error {
	return r.db.WithContext(ctx).Save(payment).Error
}
