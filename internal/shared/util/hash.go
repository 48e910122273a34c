package util

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashKey returns a filesystem-safe sha256 hex identifier for s.
func HashKey(s string) string {
	return HashBytes([]byte(s))
}

// HashBytes returns the sha256 hex digest of b.
func HashBytes(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
