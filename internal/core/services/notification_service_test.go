package services

import (
	"context"
	"testing"

	"growthpot/internal/adapters/persistence/models"
	"growthpot/internal/core/domain"

	"github.com/stretchr/testify/require"
)

func TestSendPaymentReminders(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "priya", "Priya Sharma")
	m1 := createTestUser(t, db, "arjun", "Arjun Patel")
	m2 := createTestUser(t, db, "meera", "Meera Nair")

	fund := seedFund(t, svc, admin, []*models.User{m1, m2}, &CreateFundInput{
		Name: "Street Pot", TotalAmount: 120000, Duration: 12, MemberCount: 4,
	})

	// m1 has a live claim on record; pending counts as paid
	p1, err := svc.payments.Submit(ctx, m1.ID, fund.ID, &SubmitPaymentInput{
		Month: 1, Amount: 2500,
	})
	require.NoError(t, err)

	// Only the admin nags
	_, err = svc.notifications.SendPaymentReminders(ctx, m1.ID, fund.ID)
	require.ErrorIs(t, err, domain.ErrNotFundAdmin)

	count, err := svc.notifications.SendPaymentReminders(ctx, admin.ID, fund.ID)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	// m2 was reminded, m1 was not; the admin holds no membership
	var reminders []models.Notification
	require.NoError(t, db.Where("fund_id = ? AND type = ?", fund.ID, domain.NotifyPaymentReminder).
		Find(&reminders).Error)
	require.Len(t, reminders, 1)
	require.Equal(t, m2.ID, reminders[0].UserID)
	// Per-member share: 10000 monthly over 4 members
	require.Contains(t, reminders[0].Message, "₹2500")
	require.Contains(t, reminders[0].Message, "Month 1")

	// A rejected claim stops counting as paid; m1 owes again
	_, err = svc.payments.SetStatus(ctx, admin.ID, p1.ID, domain.PaymentRejected)
	require.NoError(t, err)
	count, err = svc.notifications.SendPaymentReminders(ctx, admin.ID, fund.ID)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestNotificationFeed(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	user := createTestUser(t, db, "arjun", "Arjun Patel")
	other := createTestUser(t, db, "meera", "Meera Nair")

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.Notification{
			UserID: user.ID, Type: domain.NotifyPaymentReminder,
			Title: "Payment Reminder 💰", Message: "pay up",
		}).Error)
	}
	require.NoError(t, db.Create(&models.Notification{
		UserID: other.ID, Type: domain.NotifyPaymentReminder,
		Title: "Payment Reminder 💰", Message: "pay up",
	}).Error)

	feed, err := svc.notifications.Feed(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, feed.Notifications, 3)
	require.Equal(t, int64(3), feed.UnreadCount)

	// Reading one drops the unread count
	require.NoError(t, svc.notifications.MarkRead(ctx, user.ID, feed.Notifications[0].ID))
	feed, err = svc.notifications.Feed(ctx, user.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), feed.UnreadCount)

	// Reading them all clears it
	require.NoError(t, svc.notifications.MarkAllRead(ctx, user.ID))
	feed, err = svc.notifications.Feed(ctx, user.ID)
	require.NoError(t, err)
	require.Zero(t, feed.UnreadCount)

	// The other user's feed is untouched
	otherFeed, err := svc.notifications.Feed(ctx, other.ID)
	require.NoError(t, err)
	require.Equal(t, int64(1), otherFeed.UnreadCount)
}

func TestNotificationOwnership(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	user := createTestUser(t, db, "arjun", "Arjun Patel")
	other := createTestUser(t, db, "meera", "Meera Nair")

	notification := &models.Notification{
		UserID: user.ID, Type: domain.NotifyPaymentReminder,
		Title: "Payment Reminder 💰", Message: "pay up",
	}
	require.NoError(t, db.Create(notification).Error)

	require.ErrorIs(t, svc.notifications.MarkRead(ctx, other.ID, notification.ID), domain.ErrForbidden)
	require.ErrorIs(t, svc.notifications.Dismiss(ctx, other.ID, notification.ID), domain.ErrForbidden)
	require.ErrorIs(t, svc.notifications.MarkRead(ctx, user.ID, notification.ID+999), domain.ErrNotificationNotFound)

	require.NoError(t, svc.notifications.Dismiss(ctx, user.ID, notification.ID))
	feed, err := svc.notifications.Feed(ctx, user.ID)
	require.NoError(t, err)
	require.Empty(t, feed.Notifications)
}
