package services

import (
	"context"
	"fmt"
	"testing"

	"growthpot/internal/adapters/persistence/models"
	"growthpot/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens a per-test in-memory database to avoid cross-test
// interference. TranslateError is on, same as the real connection, so the
// duplicate-key paths behave the same under test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	return db
}

type testServices struct {
	funds         *FundService
	payments      *PaymentService
	spins         *SpinService
	notifications *NotificationService
}

func newTestServices(db *gorm.DB) *testServices {
	fundRepo := repositories.NewFundRepository(db)
	membershipRepo := repositories.NewMembershipRepository(db)
	paymentRepo := repositories.NewPaymentRepository(db)
	spinRepo := repositories.NewSpinRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)

	return &testServices{
		funds:         NewFundService(fundRepo, membershipRepo, paymentRepo, spinRepo),
		payments:      NewPaymentService(fundRepo, membershipRepo, paymentRepo, notificationRepo),
		spins:         NewSpinService(db, spinRepo, notificationRepo),
		notifications: NewNotificationService(fundRepo, membershipRepo, paymentRepo, notificationRepo),
	}
}

func createTestUser(t *testing.T, db *gorm.DB, username, fullName string) *models.User {
	t.Helper()
	user := &models.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "$2a$12$test.hash.placeholder.value.not.checked.here",
		FullName: fullName,
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedFund creates a fund administered by admin and joins the given members,
// verifying each so they are spin-eligible.
func seedFund(t *testing.T, svc *testServices, admin *models.User, members []*models.User, input *CreateFundInput) *models.Fund {
	t.Helper()
	ctx := context.Background()

	fund, err := svc.funds.Create(ctx, admin.ID, input)
	require.NoError(t, err)

	for _, member := range members {
		_, err := svc.funds.Join(ctx, member.ID, fund.JoinCode)
		require.NoError(t, err)

		membership, err := svc.funds.membershipRepo.GetByFundAndUser(ctx, fund.ID, member.ID)
		require.NoError(t, err)

		_, err = svc.funds.VerifyMember(ctx, admin.ID, fund.ID, membership.ID)
		require.NoError(t, err)
	}

	return fund
}
