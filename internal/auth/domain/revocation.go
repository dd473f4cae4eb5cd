package domain

import (
	"time"

	"github.com/google/uuid"
)

// RevocationEntry records that every token of Username expiring up to
// TokenExpiresAt (plus the trust window) is no longer accepted.
type RevocationEntry struct {
	ID             uuid.UUID
	TokenHash      string
	Username       string
	TokenExpiresAt time.Time
	CreatedAt      time.Time
}

// Covers reports whether a token of the same subject expiring at tokenExp is
// within this entry's horizon widened by trustWindow.
func (r *RevocationEntry) Covers(tokenExp time.Time, trustWindow time.Duration) bool {
	return !tokenExp.After(r.TokenExpiresAt.Add(trustWindow))
}

// IsInert reports whether the entry can no longer affect any acceptable token:
// every token it covers has expired even allowing for clock skew.
func (r *RevocationEntry) IsInert(now time.Time, trustWindow time.Duration) bool {
	return now.After(r.TokenExpiresAt.Add(trustWindow))
}

// InertBefore returns the token expiry below which entries are inert at now.
func InertBefore(now time.Time, trustWindow time.Duration) time.Time {
	return now.Add(-trustWindow)
}
