package utils

import (
	"crypto/rand"
)

// referenceAlphabet omits 0/O and 1/I to keep codes readable over the phone.
const referenceAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// NewBookingReference returns a short customer-facing booking code like
// "AQ-7KX2M9QD".
func NewBookingReference() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, 0, 11)
	out = append(out, 'A', 'Q', '-')
	for _, b := range buf {
		out = append(out, referenceAlphabet[int(b)%len(referenceAlphabet)])
	}
	return string(out), nil
}
