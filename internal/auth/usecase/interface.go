// Package usecase orchestrates authentication and abuse control: login, per-request
// authentication, token revocation and the minimum-interval write guard.
package usecase

import (
	"context"
	"time"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
	outboxDomain "github.com/onionboard/backend/internal/outbox/domain"
	userDomain "github.com/onionboard/backend/internal/user/domain"
)

// RevocationRepository defines persistence operations for revocation entries.
// Implementations must support transaction-aware operations via context propagation.
type RevocationRepository interface {
	// Create stores a revocation entry. Storing the same token hash twice is a no-op.
	Create(ctx context.Context, entry *authDomain.RevocationEntry) error

	// GetLatestByUsername returns the entry with the furthest token expiry for username
	// among entries whose token expiry is not before notBefore.
	// Returns ErrRevocationNotFound if none exists.
	GetLatestByUsername(ctx context.Context, username string, notBefore time.Time) (*authDomain.RevocationEntry, error)

	// CountInert counts entries whose token expiry is before cutoff.
	CountInert(ctx context.Context, cutoff time.Time) (int64, error)

	// DeleteInert removes entries whose token expiry is before cutoff.
	DeleteInert(ctx context.Context, cutoff time.Time) (int64, error)
}

// UserRepository is the user lookup consumed by login.
type UserRepository interface {
	// GetByUsername returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*userDomain.User, error)
}

// LastActionRepository reports when a user last performed a write of a given kind.
type LastActionRepository interface {
	// LatestActionAt returns nil when the user never performed an action of kind.
	LatestActionAt(ctx context.Context, username string, kind authDomain.ActionKind) (*time.Time, error)
}

// OutboxEventRepository records domain events in the same transaction as the change.
type OutboxEventRepository interface {
	Create(ctx context.Context, event *outboxDomain.OutboxEvent) error
}

// RevocationUseCase is the single reader and writer of revocation entries.
type RevocationUseCase interface {
	// Revoke durably records that token, and every token of username expiring no later
	// than it, is no longer accepted. Transient store errors are retried a bounded
	// number of times; on final failure ErrStoreUnavailable is returned.
	Revoke(ctx context.Context, token string, username string) (*authDomain.RevocationEntry, error)

	// IsRevoked reports whether a correctly signed token falls under the latest
	// revocation horizon of its subject. Returns ErrStoreUnavailable when the lookup
	// fails or exceeds its timeout.
	IsRevoked(ctx context.Context, token string) (bool, error)

	// CleanupInert deletes, or only counts when dryRun is set, entries that can no
	// longer affect any acceptable token.
	CleanupInert(ctx context.Context, dryRun bool) (int64, error)
}

// AuthUseCase authenticates users and requests.
type AuthUseCase interface {
	// Login checks the credentials and issues a token. Unknown users and wrong
	// passwords both yield ErrInvalidCredentials.
	Login(ctx context.Context, username string, password string) (*authDomain.IssuedToken, error)

	// IssueToken issues a token for an existing user without a password check.
	IssueToken(ctx context.Context, username string) (*authDomain.IssuedToken, error)

	// Authenticate verifies token and checks it against the revocation store.
	Authenticate(ctx context.Context, token string) (authDomain.Identity, error)

	// Validate reports whether token would currently be accepted. It changes no state.
	Validate(ctx context.Context, token string) error

	// LogoutAll revokes token and every earlier token of the same identity.
	// Returns ErrSubjectMismatch if token belongs to another user.
	LogoutAll(ctx context.Context, identity authDomain.Identity, token string) (*authDomain.RevocationEntry, error)
}

// WriteGuardUseCase admits or rejects write attempts by minimum interval.
type WriteGuardUseCase interface {
	// Admit returns a *RateLimitedError when the identity's previous action of kind
	// happened no more than the configured interval ago.
	Admit(ctx context.Context, identity authDomain.Identity, kind authDomain.ActionKind) error
}
