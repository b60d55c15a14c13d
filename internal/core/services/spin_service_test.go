package services

import (
	"context"
	"testing"

	"growthpot/internal/adapters/persistence/models"
	"growthpot/internal/core/domain"

	"github.com/stretchr/testify/require"
)

func TestConductSpin(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "priya", "Priya Sharma")
	m1 := createTestUser(t, db, "arjun", "Arjun Patel")
	m2 := createTestUser(t, db, "meera", "Meera Nair")

	fund := seedFund(t, svc, admin, []*models.User{m1, m2}, &CreateFundInput{
		Name: "Street Pot", TotalAmount: 30000, Duration: 3, MemberCount: 3, AdminCommission: 10,
	})

	outcome, err := svc.spins.Conduct(ctx, admin.ID, fund.ID)
	require.NoError(t, err)
	require.Equal(t, 1, outcome.Month)
	require.Contains(t, []uint{m1.ID, m2.ID}, outcome.WinnerID)
	require.NotEmpty(t, outcome.WinnerName)

	// Payout is the monthly contribution minus the admin's cut
	require.InDelta(t, 10000*0.9, outcome.Amount, 0.01)

	// Month advanced, fund still running
	current, err := svc.funds.GetByID(ctx, fund.ID)
	require.NoError(t, err)
	require.Equal(t, 2, current.CurrentMonth)
	require.Equal(t, string(domain.FundActive), current.Status)

	// Winner is flagged and carries the month they won
	winner, err := svc.funds.membershipRepo.GetByFundAndUser(ctx, fund.ID, outcome.WinnerID)
	require.NoError(t, err)
	require.True(t, winner.HasWon)
	require.NotNil(t, winner.WonMonth)
	require.Equal(t, 1, *winner.WonMonth)

	// Winner got the good news
	var notifications []models.Notification
	require.NoError(t, db.Where("user_id = ? AND type = ?", outcome.WinnerID, domain.NotifySpinWinner).
		Find(&notifications).Error)
	require.Len(t, notifications, 1)

	history, err := svc.spins.History(ctx, fund.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	require.Equal(t, outcome.WinnerID, history[0].WinnerID)
}

func TestConductSpinNoRepeatWinners(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "priya", "Priya Sharma")
	m1 := createTestUser(t, db, "arjun", "Arjun Patel")
	m2 := createTestUser(t, db, "meera", "Meera Nair")
	m3 := createTestUser(t, db, "vikram", "Vikram Rao")

	fund := seedFund(t, svc, admin, []*models.User{m1, m2, m3}, &CreateFundInput{
		Name: "Street Pot", TotalAmount: 20000, Duration: 2, MemberCount: 3,
	})

	first, err := svc.spins.Conduct(ctx, admin.ID, fund.ID)
	require.NoError(t, err)
	second, err := svc.spins.Conduct(ctx, admin.ID, fund.ID)
	require.NoError(t, err)

	require.NotEqual(t, first.WinnerID, second.WinnerID)

	// Duration exhausted: the fund completes itself
	current, err := svc.funds.GetByID(ctx, fund.ID)
	require.NoError(t, err)
	require.Equal(t, string(domain.FundCompleted), current.Status)

	// Completed funds reject further spins
	_, err = svc.spins.Conduct(ctx, admin.ID, fund.ID)
	require.ErrorIs(t, err, domain.ErrFundNotActive)
}

func TestConductSpinAuthority(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "priya", "Priya Sharma")
	m1 := createTestUser(t, db, "arjun", "Arjun Patel")

	fund := seedFund(t, svc, admin, []*models.User{m1}, &CreateFundInput{
		Name: "Street Pot", TotalAmount: 30000, Duration: 3, MemberCount: 3,
	})

	_, err := svc.spins.Conduct(ctx, m1.ID, fund.ID)
	require.ErrorIs(t, err, domain.ErrNotFundAdmin)

	_, err = svc.spins.Conduct(ctx, admin.ID, fund.ID+999)
	require.ErrorIs(t, err, domain.ErrFundNotFound)

	_, err = svc.funds.Pause(ctx, admin.ID, fund.ID)
	require.NoError(t, err)
	_, err = svc.spins.Conduct(ctx, admin.ID, fund.ID)
	require.ErrorIs(t, err, domain.ErrFundNotActive)
}

func TestConductSpinDuplicateMonth(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "priya", "Priya Sharma")
	m1 := createTestUser(t, db, "arjun", "Arjun Patel")

	fund := seedFund(t, svc, admin, []*models.User{m1}, &CreateFundInput{
		Name: "Street Pot", TotalAmount: 30000, Duration: 3, MemberCount: 3,
	})

	// A result row for the current month already exists, as if a concurrent
	// spin won the race
	require.NoError(t, db.Create(&models.SpinResult{
		FundID: fund.ID, Month: 1, WinnerID: m1.ID, Amount: 10000,
	}).Error)

	_, err := svc.spins.Conduct(ctx, admin.ID, fund.ID)
	require.ErrorIs(t, err, domain.ErrDuplicateSpin)

	// The failed spin left no trace
	current, err := svc.funds.GetByID(ctx, fund.ID)
	require.NoError(t, err)
	require.Equal(t, 1, current.CurrentMonth)
}

func TestConductSpinEligibility(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "priya", "Priya Sharma")
	m1 := createTestUser(t, db, "arjun", "Arjun Patel")
	m2 := createTestUser(t, db, "meera", "Meera Nair")

	fund, err := svc.funds.Create(ctx, admin.ID, &CreateFundInput{
		Name: "Street Pot", TotalAmount: 30000, Duration: 3, MemberCount: 3,
	})
	require.NoError(t, err)

	// Only m1 gets verified; m2 joins but stays out of the draw
	_, err = svc.funds.Join(ctx, m1.ID, fund.JoinCode)
	require.NoError(t, err)
	_, err = svc.funds.Join(ctx, m2.ID, fund.JoinCode)
	require.NoError(t, err)
	membership, err := svc.funds.membershipRepo.GetByFundAndUser(ctx, fund.ID, m1.ID)
	require.NoError(t, err)
	_, err = svc.funds.VerifyMember(ctx, admin.ID, fund.ID, membership.ID)
	require.NoError(t, err)

	// One eligible member is not enough for a draw
	_, err = svc.spins.Conduct(ctx, admin.ID, fund.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientMembers)

	// The aborted spin wrote nothing
	var count int64
	require.NoError(t, db.Model(&models.SpinResult{}).Where("fund_id = ?", fund.ID).Count(&count).Error)
	require.Zero(t, count)

	current, err := svc.funds.GetByID(ctx, fund.ID)
	require.NoError(t, err)
	require.Equal(t, 1, current.CurrentMonth)

	// With nobody eligible at all the error is sharper
	require.NoError(t, db.Model(&models.Membership{}).Where("fund_id = ?", fund.ID).
		Update("is_verified", false).Error)
	_, err = svc.spins.Conduct(ctx, admin.ID, fund.ID)
	require.ErrorIs(t, err, domain.ErrNoEligibleMembers)
}
