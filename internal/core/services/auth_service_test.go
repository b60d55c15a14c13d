package services

import (
	"context"
	"testing"

	"growthpot/internal/adapters/persistence/repositories"
	"growthpot/internal/config"
	"growthpot/internal/core/domain"

	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  15,
			RefreshTokenDays: 7,
		},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	db := setupTestDB(t)
	authSvc := NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		testConfig(),
	)
	ctx := context.Background()

	result, err := authSvc.Register(ctx, &RegisterInput{
		Email:    "arjun@example.com",
		Username: "arjun",
		Password: "secret-pass-123",
		FullName: "Arjun Patel",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.AccessToken)
	require.NotEmpty(t, result.RefreshToken)
	require.Equal(t, "arjun", result.User.Username)

	// Same username again
	_, err = authSvc.Register(ctx, &RegisterInput{
		Email:    "arjun2@example.com",
		Username: "arjun",
		Password: "secret-pass-123",
		FullName: "Arjun Patel",
	})
	require.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	// Same email again
	_, err = authSvc.Register(ctx, &RegisterInput{
		Email:    "arjun@example.com",
		Username: "arjun2",
		Password: "secret-pass-123",
		FullName: "Arjun Patel",
	})
	require.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	login, err := authSvc.Login(ctx, &LoginInput{Username: "arjun", Password: "secret-pass-123"})
	require.NoError(t, err)
	require.NotEmpty(t, login.AccessToken)

	// The login field also takes an email
	login, err = authSvc.Login(ctx, &LoginInput{Username: "arjun@example.com", Password: "secret-pass-123"})
	require.NoError(t, err)
	require.Equal(t, "arjun", login.User.Username)

	_, err = authSvc.Login(ctx, &LoginInput{Username: "arjun", Password: "wrong-password"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = authSvc.Login(ctx, &LoginInput{Username: "nobody", Password: "secret-pass-123"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestRefreshTokenRotation(t *testing.T) {
	db := setupTestDB(t)
	authSvc := NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		testConfig(),
	)
	ctx := context.Background()

	registered, err := authSvc.Register(ctx, &RegisterInput{
		Email:    "meera@example.com",
		Username: "meera",
		Password: "secret-pass-123",
		FullName: "Meera Nair",
	})
	require.NoError(t, err)

	refreshed, err := authSvc.RefreshToken(ctx, registered.RefreshToken)
	require.NoError(t, err)
	require.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// The old token was rotated out; reuse is refused
	_, err = authSvc.RefreshToken(ctx, registered.RefreshToken)
	require.ErrorIs(t, err, domain.ErrTokenRevoked)

	// The replacement token still works
	_, err = authSvc.RefreshToken(ctx, refreshed.RefreshToken)
	require.NoError(t, err)

	_, err = authSvc.RefreshToken(ctx, "not-a-jwt")
	require.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestLogoutRevokesToken(t *testing.T) {
	db := setupTestDB(t)
	authSvc := NewAuthService(
		repositories.NewUserRepository(db),
		repositories.NewRefreshTokenRepository(db),
		testConfig(),
	)
	ctx := context.Background()

	registered, err := authSvc.Register(ctx, &RegisterInput{
		Email:    "priya@example.com",
		Username: "priya",
		Password: "secret-pass-123",
		FullName: "Priya Sharma",
	})
	require.NoError(t, err)

	require.NoError(t, authSvc.Logout(ctx, registered.RefreshToken))

	_, err = authSvc.RefreshToken(ctx, registered.RefreshToken)
	require.ErrorIs(t, err, domain.ErrTokenRevoked)
}
