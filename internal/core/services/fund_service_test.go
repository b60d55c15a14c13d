package services

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"growthpot/internal/adapters/persistence/models"
	"growthpot/internal/core/domain"

	"github.com/stretchr/testify/require"
)

var joinCodePattern = regexp.MustCompile(`^[A-Z0-9]{6}$`)

func TestCreateFund(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "priya", "Priya Sharma")

	fund, err := svc.funds.Create(ctx, admin.ID, &CreateFundInput{
		Name:            "Family Pot",
		TotalAmount:     100000,
		Duration:        10,
		MemberCount:     10,
		AdminCommission: 5,
	})
	require.NoError(t, err)
	require.NotZero(t, fund.ID)
	require.Equal(t, float64(10000), fund.MonthlyContribution)
	require.Equal(t, 1, fund.CurrentMonth)
	require.Equal(t, string(domain.FundActive), fund.Status)
	require.Regexp(t, joinCodePattern, fund.JoinCode)

	// A fresh fund has no memberships; the admin joins with the code like
	// any other member
	var memberships int64
	require.NoError(t, db.Model(&models.Membership{}).
		Where("fund_id = ?", fund.ID).Count(&memberships).Error)
	require.Zero(t, memberships)

	joined, err := svc.funds.Join(ctx, admin.ID, fund.JoinCode)
	require.NoError(t, err)
	require.Equal(t, fund.ID, joined.ID)
	membership, err := svc.funds.membershipRepo.GetByFundAndUser(ctx, fund.ID, admin.ID)
	require.NoError(t, err)
	require.False(t, membership.IsVerified)
}

func TestCreateFundValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "priya", "Priya Sharma")

	cases := []struct {
		name  string
		input CreateFundInput
	}{
		{"empty name", CreateFundInput{Name: "  ", TotalAmount: 1000, Duration: 10, MemberCount: 5}},
		{"zero amount", CreateFundInput{Name: "Pot", TotalAmount: 0, Duration: 10, MemberCount: 5}},
		{"zero duration", CreateFundInput{Name: "Pot", TotalAmount: 1000, Duration: 0, MemberCount: 5}},
		{"one member", CreateFundInput{Name: "Pot", TotalAmount: 1000, Duration: 10, MemberCount: 1}},
		{"commission over 100", CreateFundInput{Name: "Pot", TotalAmount: 1000, Duration: 10, MemberCount: 5, AdminCommission: 101}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.funds.Create(ctx, admin.ID, &tc.input)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestJoinFund(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "priya", "Priya Sharma")
	member := createTestUser(t, db, "arjun", "Arjun Patel")

	fund, err := svc.funds.Create(ctx, admin.ID, &CreateFundInput{
		Name: "Street Pot", TotalAmount: 60000, Duration: 6, MemberCount: 6,
	})
	require.NoError(t, err)

	// Lowercase code with surrounding space still resolves
	joined, err := svc.funds.Join(ctx, member.ID, "  "+strings.ToLower(fund.JoinCode)+" ")
	require.NoError(t, err)
	require.Equal(t, fund.ID, joined.ID)

	// New members start unverified and without a win
	membership, err := svc.funds.membershipRepo.GetByFundAndUser(ctx, fund.ID, member.ID)
	require.NoError(t, err)
	require.False(t, membership.IsVerified)
	require.False(t, membership.HasWon)

	// Joining again is a no-op, not an error
	joined, err = svc.funds.Join(ctx, member.ID, fund.JoinCode)
	require.NoError(t, err)
	require.Equal(t, fund.ID, joined.ID)

	var count int64
	require.NoError(t, db.Model(&models.Membership{}).
		Where("fund_id = ? AND user_id = ?", fund.ID, member.ID).
		Count(&count).Error)
	require.Equal(t, int64(1), count)

	// Fund status never gates joining; a paused fund still accepts members
	_, err = svc.funds.Pause(ctx, admin.ID, fund.ID)
	require.NoError(t, err)
	late := createTestUser(t, db, "meera", "Meera Nair")
	joined, err = svc.funds.Join(ctx, late.ID, fund.JoinCode)
	require.NoError(t, err)
	require.Equal(t, fund.ID, joined.ID)
}

func TestJoinFundUnknownCode(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	member := createTestUser(t, db, "arjun", "Arjun Patel")

	_, err := svc.funds.Join(ctx, member.ID, "ZZZZZZ")
	require.ErrorIs(t, err, domain.ErrJoinCodeNotFound)

	// Malformed codes never hit the database
	_, err = svc.funds.Join(ctx, member.ID, "ABC")
	require.ErrorIs(t, err, domain.ErrJoinCodeNotFound)
}

func TestVerifyMember(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "priya", "Priya Sharma")
	member := createTestUser(t, db, "arjun", "Arjun Patel")
	outsider := createTestUser(t, db, "meera", "Meera Nair")

	fund, err := svc.funds.Create(ctx, admin.ID, &CreateFundInput{
		Name: "Street Pot", TotalAmount: 60000, Duration: 6, MemberCount: 6,
	})
	require.NoError(t, err)

	_, err = svc.funds.Join(ctx, member.ID, fund.JoinCode)
	require.NoError(t, err)
	membership, err := svc.funds.membershipRepo.GetByFundAndUser(ctx, fund.ID, member.ID)
	require.NoError(t, err)

	// Only the admin can verify
	_, err = svc.funds.VerifyMember(ctx, outsider.ID, fund.ID, membership.ID)
	require.ErrorIs(t, err, domain.ErrNotFundAdmin)

	verified, err := svc.funds.VerifyMember(ctx, admin.ID, fund.ID, membership.ID)
	require.NoError(t, err)
	require.True(t, verified.IsVerified)

	// Re-verifying is a no-op
	verified, err = svc.funds.VerifyMember(ctx, admin.ID, fund.ID, membership.ID)
	require.NoError(t, err)
	require.True(t, verified.IsVerified)
}

func TestPauseResume(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "priya", "Priya Sharma")
	member := createTestUser(t, db, "arjun", "Arjun Patel")

	fund, err := svc.funds.Create(ctx, admin.ID, &CreateFundInput{
		Name: "Street Pot", TotalAmount: 60000, Duration: 6, MemberCount: 6,
	})
	require.NoError(t, err)

	// Non-admin cannot pause
	_, err = svc.funds.Pause(ctx, member.ID, fund.ID)
	require.ErrorIs(t, err, domain.ErrNotFundAdmin)

	paused, err := svc.funds.Pause(ctx, admin.ID, fund.ID)
	require.NoError(t, err)
	require.Equal(t, string(domain.FundPaused), paused.Status)

	// Pausing twice fails
	_, err = svc.funds.Pause(ctx, admin.ID, fund.ID)
	require.ErrorIs(t, err, domain.ErrFundNotActive)

	resumed, err := svc.funds.Resume(ctx, admin.ID, fund.ID)
	require.NoError(t, err)
	require.Equal(t, string(domain.FundActive), resumed.Status)

	// A completed fund can never change status again
	require.NoError(t, db.Model(&models.Fund{}).Where("id = ?", fund.ID).
		Update("status", string(domain.FundCompleted)).Error)
	_, err = svc.funds.Pause(ctx, admin.ID, fund.ID)
	require.ErrorIs(t, err, domain.ErrFundCompleted)
}

func TestGetDetailsAccessControl(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestServices(db)
	ctx := context.Background()

	admin := createTestUser(t, db, "priya", "Priya Sharma")
	member := createTestUser(t, db, "arjun", "Arjun Patel")
	outsider := createTestUser(t, db, "meera", "Meera Nair")

	fund := seedFund(t, svc, admin, []*models.User{member}, &CreateFundInput{
		Name: "Street Pot", TotalAmount: 60000, Duration: 6, MemberCount: 6,
	})

	details, err := svc.funds.GetDetails(ctx, fund.ID, admin.ID)
	require.NoError(t, err)
	require.True(t, details.IsAdmin)
	require.Len(t, details.Members, 1)

	details, err = svc.funds.GetDetails(ctx, fund.ID, member.ID)
	require.NoError(t, err)
	require.False(t, details.IsAdmin)

	_, err = svc.funds.GetDetails(ctx, fund.ID, outsider.ID)
	require.ErrorIs(t, err, domain.ErrNotFundMember)
}
