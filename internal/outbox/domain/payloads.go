package domain

import "time"

// UserSignedUpPayload is the body of an EventUserSignedUp event.
type UserSignedUpPayload struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokensRevokedPayload is the body of an EventTokensRevoked event.
type TokensRevokedPayload struct {
	Username       string    `json:"username"`
	TokenExpiresAt time.Time `json:"token_expires_at"`
}
