package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOutboxEvent(t *testing.T) {
	t.Run("tokens revoked payload", func(t *testing.T) {
		expiresAt := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

		event, err := NewOutboxEvent(EventTokensRevoked, TokensRevokedPayload{
			Username:       "alice",
			TokenExpiresAt: expiresAt,
		})

		require.NoError(t, err)
		assert.Equal(t, EventTokensRevoked, event.EventType)
		assert.Equal(t, OutboxEventStatusPending, event.Status)
		assert.JSONEq(t, `{"username":"alice","token_expires_at":"2026-01-02T03:04:05Z"}`, event.Payload)

		var decoded TokensRevokedPayload
		require.NoError(t, json.Unmarshal([]byte(event.Payload), &decoded))
		assert.True(t, expiresAt.Equal(decoded.TokenExpiresAt))
	})

	t.Run("user signed up payload", func(t *testing.T) {
		event, err := NewOutboxEvent(EventUserSignedUp, UserSignedUpPayload{
			UserID:   "0190a0b0-0000-7000-8000-000000000001",
			Username: "alice",
			Email:    "alice@example.com",
		})

		require.NoError(t, err)
		assert.JSONEq(t,
			`{"user_id":"0190a0b0-0000-7000-8000-000000000001","username":"alice","email":"alice@example.com"}`,
			event.Payload)
	})

	t.Run("unmarshalable payload", func(t *testing.T) {
		_, err := NewOutboxEvent(EventUserSignedUp, make(chan int))

		assert.Error(t, err)
	})

	t.Run("ids are unique", func(t *testing.T) {
		first, err := NewOutboxEvent(EventUserSignedUp, UserSignedUpPayload{})
		require.NoError(t, err)
		second, err := NewOutboxEvent(EventUserSignedUp, UserSignedUpPayload{})
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
	})
}
