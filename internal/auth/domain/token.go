package domain

import "time"

// IssuedToken is a freshly signed bearer token together with its claims.
type IssuedToken struct {
	Token     string
	Subject   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Lifetime returns the span between issuance and expiry.
func (t *IssuedToken) Lifetime() time.Duration {
	return t.ExpiresAt.Sub(t.IssuedAt)
}
