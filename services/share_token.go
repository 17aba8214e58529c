package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
)

// ShareTokenBytes is the entropy of a share token; 16 random bytes encoded
// as 32 hex characters, safe as a URL path segment.
const ShareTokenBytes = 16

// GenerateShareToken returns a fresh random token for public note access.
// Uniqueness across notes is enforced by the unique index on share_token,
// not here; callers retry on a duplicate-key error.
func GenerateShareToken() (string, error) {
	buf := make([]byte, ShareTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.New("failed to generate share token")
	}
	return hex.EncodeToString(buf), nil
}
