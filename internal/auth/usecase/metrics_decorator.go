package usecase

import (
	"context"
	"errors"
	"time"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
	"github.com/onionboard/backend/internal/metrics"
)

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// rejectionReason names the check that turned a token away.
func rejectionReason(err error) string {
	switch {
	case errors.Is(err, authDomain.ErrTokenExpired):
		return "expired"
	case errors.Is(err, authDomain.ErrTokenRevoked):
		return "revoked"
	case errors.Is(err, authDomain.ErrStoreUnavailable):
		return "store_unavailable"
	case errors.Is(err, authDomain.ErrMalformedToken):
		return "malformed"
	case errors.Is(err, authDomain.ErrInvalidCredentials):
		return "invalid_credentials"
	default:
		return "other"
	}
}

// authUseCaseWithMetrics decorates AuthUseCase with metrics instrumentation.
type authUseCaseWithMetrics struct {
	next    AuthUseCase
	metrics metrics.BusinessMetrics
}

// NewAuthUseCaseWithMetrics wraps an AuthUseCase with metrics recording.
func NewAuthUseCaseWithMetrics(useCase AuthUseCase, m metrics.BusinessMetrics) AuthUseCase {
	return &authUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (a *authUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := statusOf(err)
	a.metrics.RecordOperation(ctx, "auth", operation, status)
	a.metrics.RecordDuration(ctx, "auth", operation, time.Since(start), status)
	if err != nil {
		a.metrics.RecordRejection(ctx, "auth", rejectionReason(err))
	}
}

// Login records metrics for password logins.
func (a *authUseCaseWithMetrics) Login(
	ctx context.Context,
	username string,
	password string,
) (*authDomain.IssuedToken, error) {
	start := time.Now()
	token, err := a.next.Login(ctx, username, password)
	a.record(ctx, "login", start, err)
	return token, err
}

// IssueToken records metrics for operator-issued tokens.
func (a *authUseCaseWithMetrics) IssueToken(ctx context.Context, username string) (*authDomain.IssuedToken, error) {
	start := time.Now()
	token, err := a.next.IssueToken(ctx, username)

	status := statusOf(err)
	a.metrics.RecordOperation(ctx, "auth", "token_issue", status)
	a.metrics.RecordDuration(ctx, "auth", "token_issue", time.Since(start), status)

	return token, err
}

// Authenticate records metrics for per-request authentication.
func (a *authUseCaseWithMetrics) Authenticate(ctx context.Context, token string) (authDomain.Identity, error) {
	start := time.Now()
	identity, err := a.next.Authenticate(ctx, token)
	a.record(ctx, "authenticate", start, err)
	return identity, err
}

// Validate records metrics for token validation.
func (a *authUseCaseWithMetrics) Validate(ctx context.Context, token string) error {
	start := time.Now()
	err := a.next.Validate(ctx, token)

	status := statusOf(err)
	a.metrics.RecordOperation(ctx, "auth", "token_validate", status)
	a.metrics.RecordDuration(ctx, "auth", "token_validate", time.Since(start), status)

	return err
}

// LogoutAll records metrics for logout-everywhere.
func (a *authUseCaseWithMetrics) LogoutAll(
	ctx context.Context,
	identity authDomain.Identity,
	token string,
) (*authDomain.RevocationEntry, error) {
	start := time.Now()
	entry, err := a.next.LogoutAll(ctx, identity, token)

	status := statusOf(err)
	a.metrics.RecordOperation(ctx, "auth", "logout_all", status)
	a.metrics.RecordDuration(ctx, "auth", "logout_all", time.Since(start), status)

	return entry, err
}
