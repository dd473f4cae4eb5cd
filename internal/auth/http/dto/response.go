package dto

import (
	"time"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
)

// TokenResponse is returned by a successful login.
type TokenResponse struct {
	Token     string    `json:"token"` //nolint:gosec // returned to its owner
	ExpiresAt time.Time `json:"expires_at"`
}

// MapIssuedTokenToResponse converts an issued token to its API representation.
func MapIssuedTokenToResponse(issued *authDomain.IssuedToken) TokenResponse {
	return TokenResponse{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
	}
}

// ValidateTokenResponse is returned by the token validation endpoint.
type ValidateTokenResponse struct {
	Valid bool `json:"valid"`
}

// LogoutAllResponse reports the horizon recorded by a logout-everywhere.
type LogoutAllResponse struct {
	RevokedUntil time.Time `json:"revoked_until"`
}

// MapRevocationToResponse converts a revocation entry to its API representation.
func MapRevocationToResponse(entry *authDomain.RevocationEntry) LogoutAllResponse {
	return LogoutAllResponse{RevokedUntil: entry.TokenExpiresAt}
}

// IdentityResponse describes the authenticated caller.
type IdentityResponse struct {
	Username string `json:"username"`
}

// MapIdentityToResponse converts an identity to its API representation.
func MapIdentityToResponse(identity authDomain.Identity) IdentityResponse {
	return IdentityResponse{Username: identity.IdentityName()}
}
