package utils

import "github.com/google/uuid"

// GenerateID returns a random (version 4) UUID string used for request and
// user identifiers.
func GenerateID() string {
	return uuid.NewString()
}
