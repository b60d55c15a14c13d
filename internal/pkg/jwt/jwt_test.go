package jwt

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(42, "arjun", "access-secret", 15)
	require.NoError(t, err)

	claims, err := ValidateAccessToken(token, "access-secret")
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "arjun", claims.Username)
	require.Equal(t, "growthpot", claims.Issuer)

	_, err = ValidateAccessToken(token, "wrong-secret")
	require.ErrorIs(t, err, ErrTokenInvalid)

	_, err = ValidateAccessToken("garbage", "access-secret")
	require.ErrorIs(t, err, ErrTokenInvalid)
}

func TestAccessTokenExpiry(t *testing.T) {
	// Negative lifetime backdates the expiry
	token, err := GenerateAccessToken(42, "arjun", "access-secret", -1)
	require.NoError(t, err)

	_, err = ValidateAccessToken(token, "access-secret")
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	token, err := GenerateRefreshToken(42, "token-id-1", "refresh-secret", 7)
	require.NoError(t, err)

	claims, err := ValidateRefreshToken(token, "refresh-secret")
	require.NoError(t, err)
	require.Equal(t, uint(42), claims.UserID)
	require.Equal(t, "token-id-1", claims.TokenID)

	// Access and refresh secrets are not interchangeable
	_, err = ValidateRefreshToken(token, "access-secret")
	require.ErrorIs(t, err, ErrTokenInvalid)
}
