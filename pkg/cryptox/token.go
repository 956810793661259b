package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateToken returns size random bytes encoded as unpadded base64url.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("cryptox: token size must be positive, got %d", size)
	}
	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("cryptox: generate token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// GeneratePassword returns a random 16 character password for seeded accounts.
func GeneratePassword() (string, error) {
	return GenerateToken(12)
}
