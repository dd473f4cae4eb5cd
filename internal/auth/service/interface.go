// Package service provides the technical services behind authentication:
// bearer token signing and verification, signing key loading, token hashing
// and password hashing.
package service

import (
	"context"
	"time"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
)

// TokenCodec issues and verifies self-contained signed bearer tokens.
// Implementations are pure functions of the token bytes, the signing key and the clock.
type TokenCodec interface {
	// Issue signs a token for subject, valid from now for the configured lifetime.
	Issue(subject string) (*authDomain.IssuedToken, error)

	// Verify checks the signature first, then the expiry, and returns the subject.
	// Returns ErrMalformedToken or ErrTokenExpired.
	Verify(token string) (string, error)

	// ExpiryOf returns the expiry of a correctly signed token, expired or not.
	ExpiryOf(token string) (time.Time, error)

	// SubjectOf returns the subject of a correctly signed token, expired or not.
	SubjectOf(token string) (string, error)
}

// TokenHasher derives the storage key of a token so raw tokens are never persisted.
type TokenHasher interface {
	// HashToken returns the SHA-256 hex digest of token.
	HashToken(token string) string
}

// PasswordService hashes and checks user passwords.
type PasswordService interface {
	// HashPassword hashes a plain text password using Argon2id.
	HashPassword(plainPassword string) (string, error)

	// ComparePassword reports whether plainPassword matches hashedPassword.
	ComparePassword(plainPassword string, hashedPassword string) bool
}

// SecretDecrypter unwraps a KMS-encrypted signing secret.
type SecretDecrypter interface {
	// Decrypt opens the keeper at keyURI and decrypts ciphertext with it.
	Decrypt(ctx context.Context, keyURI string, ciphertext []byte) ([]byte, error)
}
