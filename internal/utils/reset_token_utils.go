package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashResetToken generates a SHA256 hash of a password reset token.
// Only the hash is stored; the raw token travels in the emailed link.
func HashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
