package crypto

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Fingerprint returns a short hex fingerprint of a secret, safe to print.
//
// It hashes with SHA-256 and truncates to 10 bytes (20 hex chars). An empty
// secret has an empty fingerprint.
func Fingerprint(secret string) string {
	if secret == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:10])
}

// Redact keeps the first and last four characters of a secret and masks the
// rest. Secrets of eight characters or fewer are fully masked.
func Redact(secret string) string {
	r := []rune(secret)
	if len(r) <= 8 {
		return strings.Repeat("*", len(r))
	}
	return string(r[:4]) + strings.Repeat("*", len(r)-8) + string(r[len(r)-4:])
}
