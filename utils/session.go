package utils

import (
	"crypto/rand"
	"encoding/base64"

	"github.com/google/uuid"
)

// GenerateSessionID returns a URL-safe random session identifier.
func GenerateSessionID() string {
	b := make([]byte, 24)
	if _, err := rand.Read(b); err != nil {
		return uuid.NewString()
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
