package logger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

var hashSalt = "default-salt-change-in-production"

// InitHashSalt replaces the default salt. Call once at startup with the
// configured LOG_HASH_SALT value before logging any user identifiers.
func InitHashSalt(salt string) {
	if salt != "" {
		hashSalt = salt
	}
}

// HashUserID creates a privacy-preserving hash of a user ID.
// This allows tracing user actions through logs without exposing account IDs.
func HashUserID(userID int64) string {
	data := fmt.Sprintf("%d:%s", userID, hashSalt)
	hash := sha256.Sum256([]byte(data))
	// Return first 8 characters for readability
	return hex.EncodeToString(hash[:])[:8]
}

// SanitizeDescription redacts user-provided descriptions while preserving
// length information for debugging.
func SanitizeDescription(desc string) string {
	if desc == "" {
		return "<empty>"
	}

	words := strings.Fields(desc)
	return fmt.Sprintf("<redacted: %d words, %d chars>", len(words), len(desc))
}
