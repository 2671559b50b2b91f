package utils

import (
	"crypto/rand"
	"fmt"
)

// trackingAlphabet deliberately omits easily confused characters (0/O, 1/I)
// since tracking numbers are read over the phone and typed from labels.
const trackingAlphabet = "23456789ABCDEFGHJKLMNPQRSTUVWXYZ"

const trackingNumberLength = 10

// GenerateTrackingNumber produces a new tracking number of the form
// "SP" + 10 characters from a reduced alphabet, from a cryptographically
// secure source. Uniqueness is enforced by the database's unique constraint;
// the keyspace (32^10) makes collisions a retry case, not a design concern.
func GenerateTrackingNumber() (string, error) {
	b := make([]byte, trackingNumberLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	for i := range b {
		b[i] = trackingAlphabet[int(b[i])%len(trackingAlphabet)]
	}
	return "SP" + string(b), nil
}
