package utils

import (
	"github.com/google/uuid"
)

// GenerateID returns a random uuid string, used for user, note and
// reminder ids.
func GenerateID() string {
	return uuid.NewString()
}
