package idgen

import (
	saferand "crypto/rand"
	"fmt"
	"math/big"
)

const PasswordLength = 24

// GeneratePassword returns a random alphanumeric string.
func GeneratePassword(length int) (string, error) {
	upper := "ABCDEFGHIJKLMNOPQRSTUVWXY"
	lower := "abcdefghijklmnopqrstuvwxyz"
	digits := "0123456789"

	charset := upper + lower + digits
	charsetLength := len(charset)

	buf := make([]byte, length)

	for i := range length {
		rInt, err := saferand.Int(saferand.Reader, big.NewInt(int64(charsetLength)))
		if err != nil {
			return "", fmt.Errorf("failed getting data from prng for password generation: %w", err)
		}

		buf[i] = charset[rInt.Int64()]
	}

	return string(buf), nil
}
