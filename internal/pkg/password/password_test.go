package password

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("secret-pass-123")
	require.NoError(t, err)
	require.NotEqual(t, "secret-pass-123", hash)

	require.True(t, Verify("secret-pass-123", hash))
	require.False(t, Verify("wrong-password", hash))
}

func TestHashToken(t *testing.T) {
	a := HashToken("some-refresh-token")
	b := HashToken("some-refresh-token")
	require.Equal(t, a, b)
	require.Len(t, a, 64)
	require.NotEqual(t, a, HashToken("another-token"))
}

func TestValidatePassword(t *testing.T) {
	require.True(t, ValidatePassword("12345678"))
	require.False(t, ValidatePassword("1234567"))
}
