package service

import (
	"crypto/sha256"
	"encoding/hex"
)

// tokenHasher implements TokenHasher using SHA-256.
type tokenHasher struct{}

// HashToken hashes a bearer token using SHA-256.
// Returns the hash as a hexadecimal string.
func (t *tokenHasher) HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// NewTokenHasher creates a new TokenHasher instance using SHA-256.
func NewTokenHasher() TokenHasher {
	return &tokenHasher{}
}
