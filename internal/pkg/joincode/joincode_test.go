package joincode

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{6}$`)

	seen := make(map[string]struct{})
	for i := 0; i < 200; i++ {
		code, err := Generate()
		require.NoError(t, err)
		require.Regexp(t, pattern, code)
		seen[code] = struct{}{}
	}

	// 36^6 possible codes; 200 draws colliding would mean a broken generator
	require.Greater(t, len(seen), 190)
}
