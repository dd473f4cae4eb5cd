package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
	authService "github.com/onionboard/backend/internal/auth/service"
	"github.com/onionboard/backend/internal/database"
	apperrors "github.com/onionboard/backend/internal/errors"
	outboxDomain "github.com/onionboard/backend/internal/outbox/domain"
)

// RevocationOptions tunes the revocation store.
type RevocationOptions struct {
	// TrustWindow widens every horizon to absorb clock skew.
	TrustWindow time.Duration
	// LookupTimeout bounds a single horizon read.
	LookupTimeout time.Duration
	// WriteRetries is the number of retries after a failed revocation write.
	WriteRetries int
	// RetryInitialInterval is the first backoff delay between write attempts.
	RetryInitialInterval time.Duration
	// Now overrides the clock, mostly for tests.
	Now func() time.Time
}

func (o *RevocationOptions) setDefaults() {
	if o.TrustWindow <= 0 {
		o.TrustWindow = authDomain.DefaultTrustWindow
	}
	if o.LookupTimeout <= 0 {
		o.LookupTimeout = 2 * time.Second
	}
	if o.WriteRetries < 0 {
		o.WriteRetries = 0
	}
	if o.RetryInitialInterval <= 0 {
		o.RetryInitialInterval = 100 * time.Millisecond
	}
	if o.Now == nil {
		o.Now = time.Now
	}
}

type revocationUseCase struct {
	txManager  database.TxManager
	repo       RevocationRepository
	outboxRepo OutboxEventRepository
	codec      authService.TokenCodec
	hasher     authService.TokenHasher
	opts       RevocationOptions
	lookups    singleflight.Group
	logger     *slog.Logger
}

// Revoke stores the horizon of token for username.
//
// The entry and its outbox event are written in one transaction. Failed
// transactions are retried with exponential backoff until WriteRetries is
// exhausted or ctx is done; the caller always waits for the outcome.
func (r *revocationUseCase) Revoke(
	ctx context.Context,
	token string,
	username string,
) (*authDomain.RevocationEntry, error) {
	expiresAt, err := r.codec.ExpiryOf(token)
	if err != nil {
		return nil, err
	}

	entry := &authDomain.RevocationEntry{
		ID:             uuid.Must(uuid.NewV7()),
		TokenHash:      r.hasher.HashToken(token),
		Username:       username,
		TokenExpiresAt: expiresAt.UTC(),
		CreatedAt:      r.opts.Now().UTC(),
	}

	event, err := outboxDomain.NewOutboxEvent(outboxDomain.EventTokensRevoked, outboxDomain.TokensRevokedPayload{
		Username:       username,
		TokenExpiresAt: entry.TokenExpiresAt,
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to build revocation event")
	}

	write := func() error {
		err := r.txManager.WithTx(ctx, func(ctx context.Context) error {
			if err := r.repo.Create(ctx, entry); err != nil {
				return err
			}
			if r.outboxRepo == nil {
				return nil
			}
			return r.outboxRepo.Create(ctx, event)
		})
		if err != nil && ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		return err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = r.opts.RetryInitialInterval
	retries := backoff.WithContext(backoff.WithMaxRetries(policy, uint64(r.opts.WriteRetries)), ctx)

	notify := func(err error, wait time.Duration) {
		if r.logger != nil {
			r.logger.Warn("revocation write failed, retrying",
				slog.String("username", username),
				slog.Duration("wait", wait),
				slog.Any("error", err),
			)
		}
	}

	if err := backoff.RetryNotify(write, retries, notify); err != nil {
		if r.logger != nil {
			r.logger.Error("revocation write failed",
				slog.String("username", username),
				slog.Any("error", err),
			)
		}
		return nil, apperrors.Wrap(authDomain.ErrStoreUnavailable, "failed to record revocation")
	}

	return entry, nil
}

// IsRevoked compares the expiry of token with the latest horizon of its subject.
// A subject without a live entry is not revoked.
func (r *revocationUseCase) IsRevoked(ctx context.Context, token string) (bool, error) {
	subject, err := r.codec.SubjectOf(token)
	if err != nil {
		return false, err
	}
	expiresAt, err := r.codec.ExpiryOf(token)
	if err != nil {
		return false, err
	}

	entry, err := r.latestHorizon(ctx, subject)
	if err != nil {
		if errors.Is(err, authDomain.ErrRevocationNotFound) {
			return false, nil
		}
		return false, err
	}

	return entry.Covers(expiresAt, r.opts.TrustWindow), nil
}

// latestHorizon loads the latest live entry of username. Concurrent callers for the
// same username share one read. The read runs detached from any single caller so a
// cancelled request does not fail the others; each caller still stops waiting as
// soon as its own context is done.
func (r *revocationUseCase) latestHorizon(ctx context.Context, username string) (*authDomain.RevocationEntry, error) {
	notBefore := authDomain.InertBefore(r.opts.Now().UTC(), r.opts.TrustWindow)

	result := r.lookups.DoChan(username, func() (any, error) {
		lookupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.opts.LookupTimeout)
		defer cancel()

		entry, err := r.repo.GetLatestByUsername(lookupCtx, username, notBefore)
		if err != nil {
			if errors.Is(err, authDomain.ErrRevocationNotFound) {
				return nil, err
			}
			if r.logger != nil {
				r.logger.Error("revocation lookup failed",
					slog.String("username", username),
					slog.Any("error", err),
				)
			}
			return nil, apperrors.Wrap(authDomain.ErrStoreUnavailable, "revocation lookup failed")
		}
		return entry, nil
	})

	select {
	case <-ctx.Done():
		return nil, apperrors.Wrap(authDomain.ErrStoreUnavailable, ctx.Err().Error())
	case res := <-result:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*authDomain.RevocationEntry), nil
	}
}

// CleanupInert removes entries whose horizon plus trust window already passed.
func (r *revocationUseCase) CleanupInert(ctx context.Context, dryRun bool) (int64, error) {
	cutoff := authDomain.InertBefore(r.opts.Now().UTC(), r.opts.TrustWindow)

	if dryRun {
		count, err := r.repo.CountInert(ctx, cutoff)
		if err != nil {
			return 0, err
		}
		if r.logger != nil {
			r.logger.Info("inert revocations counted",
				slog.Int64("count", count),
				slog.Time("cutoff", cutoff),
			)
		}
		return count, nil
	}

	deleted, err := r.repo.DeleteInert(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if r.logger != nil {
		r.logger.Info("inert revocations deleted",
			slog.Int64("count", deleted),
			slog.Time("cutoff", cutoff),
		)
	}
	return deleted, nil
}

// NewRevocationUseCase creates a RevocationUseCase. outboxRepo may be nil.
func NewRevocationUseCase(
	txManager database.TxManager,
	repo RevocationRepository,
	outboxRepo OutboxEventRepository,
	codec authService.TokenCodec,
	hasher authService.TokenHasher,
	opts RevocationOptions,
	logger *slog.Logger,
) RevocationUseCase {
	opts.setDefaults()
	return &revocationUseCase{
		txManager:  txManager,
		repo:       repo,
		outboxRepo: outboxRepo,
		codec:      codec,
		hasher:     hasher,
		opts:       opts,
		logger:     logger,
	}
}
