package order

import "math/rand/v2"

const (
	confirmationCodeLength   = 6
	confirmationCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// NewConfirmationCode returns a random six character code made of upper-case letters
// and digits, read back to the customer when the order is handed over.
func NewConfirmationCode() string {
	code := make([]byte, confirmationCodeLength)
	for i := range code {
		code[i] = confirmationCodeAlphabet[rand.IntN(len(confirmationCodeAlphabet))] //nolint:gosec // not a secret
	}
	return string(code)
}
