package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// GenerateConfirmationCode returns a short human-readable confirmation code:
// 3 random bytes from a cryptographically strong source, hex-encoded and
// upper-cased (6 uppercase hex characters).
func GenerateConfirmationCode() (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}
