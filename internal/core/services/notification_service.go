package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"

	"growthpot/internal/adapters/persistence/models"
	"growthpot/internal/adapters/persistence/repositories"
	"growthpot/internal/core/domain"

	"gorm.io/gorm"
)

// NotificationService derives payment reminders from lifecycle state and
// manages each user's in-app notification feed
type NotificationService struct {
	fundRepo         *repositories.FundRepository
	membershipRepo   *repositories.MembershipRepository
	paymentRepo      *repositories.PaymentRepository
	notificationRepo *repositories.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(
	fundRepo *repositories.FundRepository,
	membershipRepo *repositories.MembershipRepository,
	paymentRepo *repositories.PaymentRepository,
	notificationRepo *repositories.NotificationRepository,
) *NotificationService {
	return &NotificationService{
		fundRepo:         fundRepo,
		membershipRepo:   membershipRepo,
		paymentRepo:      paymentRepo,
		notificationRepo: notificationRepo,
	}
}

// SendPaymentReminders notifies every member without a payment for the
// fund's current month. Any submitted claim counts as paid here, pending or
// not, to avoid nagging members whose proof is still under review. Admin
// only, and deliberately not idempotent: each call is an explicit admin
// action and creates a fresh batch. Returns the number of reminders sent.
func (s *NotificationService) SendPaymentReminders(ctx context.Context, adminID, fundID uint) (int, error) {
	fund, err := s.fundRepo.GetByID(ctx, fundID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.ErrFundNotFound
		}
		return 0, err
	}
	if fund.AdminID != adminID {
		return 0, domain.ErrNotFundAdmin
	}

	memberships, err := s.membershipRepo.ListByFund(ctx, fundID)
	if err != nil {
		return 0, err
	}

	paidIDs, err := s.paymentRepo.ListMemberIDsForMonth(ctx, fundID, fund.CurrentMonth)
	if err != nil {
		return 0, err
	}
	paid := make(map[uint]struct{}, len(paidIDs))
	for _, id := range paidIDs {
		paid[id] = struct{}{}
	}

	owed := math.Round(fund.MonthlyContribution / float64(fund.MemberCount))

	var batch []*models.Notification
	for _, m := range memberships {
		if _, ok := paid[m.UserID]; ok {
			continue
		}
		batch = append(batch, &models.Notification{
			UserID:  m.UserID,
			FundID:  fund.ID,
			Type:    domain.NotifyPaymentReminder,
			Title:   "Payment Reminder 💰",
			Message: fmt.Sprintf("Your payment of ₹%.0f for %s (Month %d) is pending. Please submit soon!", owed, fund.Name, fund.CurrentMonth),
		})
	}

	if err := s.notificationRepo.CreateBatch(ctx, batch); err != nil {
		return 0, err
	}

	log.Printf("🔔 Sent %d payment reminders for fund %s (month %d)", len(batch), fund.Name, fund.CurrentMonth)
	return len(batch), nil
}

// FeedResponse is a user's notification feed with unread count
type FeedResponse struct {
	Notifications []*models.Notification `json:"notifications"`
	UnreadCount   int64                  `json:"unread_count"`
}

// Feed lists the caller's notifications, newest first
func (s *NotificationService) Feed(ctx context.Context, userID uint) (*FeedResponse, error) {
	notifications, err := s.notificationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	unread, err := s.notificationRepo.CountUnread(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &FeedResponse{
		Notifications: notifications,
		UnreadCount:   unread,
	}, nil
}

// MarkRead sets the read flag on one of the caller's notifications
func (s *NotificationService) MarkRead(ctx context.Context, userID, notificationID uint) error {
	notification, err := s.owned(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	return s.notificationRepo.MarkRead(ctx, notification.ID)
}

// MarkAllRead sets the read flag on all of the caller's notifications
func (s *NotificationService) MarkAllRead(ctx context.Context, userID uint) error {
	return s.notificationRepo.MarkAllRead(ctx, userID)
}

// Dismiss deletes one of the caller's notifications
func (s *NotificationService) Dismiss(ctx context.Context, userID, notificationID uint) error {
	notification, err := s.owned(ctx, userID, notificationID)
	if err != nil {
		return err
	}
	return s.notificationRepo.Delete(ctx, notification.ID)
}

func (s *NotificationService) owned(ctx context.Context, userID, notificationID uint) (*models.Notification, error) {
	notification, err := s.notificationRepo.GetByID(ctx, notificationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotificationNotFound
		}
		return nil, err
	}
	if notification.UserID != userID {
		return nil, domain.ErrForbidden
	}
	return notification, nil
}
