package joincode

import (
	"crypto/rand"
	"math/big"
)

// Length is the fixed join code length
const Length = 6

// alphabet is uppercase letters + digits, matching codes users type in by hand
const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Generate returns a fixed-length join code drawn uniformly from the
// alphanumeric alphabet. Codes must not be guessable, so the draw uses
// crypto/rand. Global uniqueness is the database's job (unique index),
// callers retry on conflict.
func Generate() (string, error) {
	max := big.NewInt(int64(len(alphabet)))
	code := make([]byte, Length)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = alphabet[n.Int64()]
	}
	return string(code), nil
}
