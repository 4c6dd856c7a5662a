package auth

import (
	"crypto/rand"
	"math/big"
)

const (
	resetCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	resetCodeLength  = 6
)

// NewResetCode generates the 6-character uppercase-alphanumeric code mailed
// to users who asked for a password reset.
func NewResetCode() (string, error) {
	max := big.NewInt(int64(len(resetCodeCharset)))

	code := make([]byte, resetCodeLength)
	for i := range code {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		code[i] = resetCodeCharset[n.Int64()]
	}

	return string(code), nil
}
