package usecase

import (
	"context"
	"log/slog"
	"time"

	authDomain "github.com/onionboard/backend/internal/auth/domain"
	apperrors "github.com/onionboard/backend/internal/errors"
	"github.com/onionboard/backend/internal/metrics"
)

// writeGuardUseCase decides admission from the persisted time of the previous
// action. It keeps no state of its own, so two concurrent submissions may both
// read the same previous action and both be admitted.
type writeGuardUseCase struct {
	lastActions LastActionRepository
	policy      authDomain.WritePolicy
	metrics     metrics.BusinessMetrics
	now         func() time.Time
	logger      *slog.Logger
}

// Admit checks kind against the identity's previous action of the same kind.
func (w *writeGuardUseCase) Admit(ctx context.Context, identity authDomain.Identity, kind authDomain.ActionKind) error {
	if identity == nil {
		return apperrors.Wrap(apperrors.ErrUnauthorized, "write without identity")
	}

	interval, err := w.policy.Interval(kind)
	if err != nil {
		return err
	}

	username := identity.IdentityName()
	last, err := w.lastActions.LatestActionAt(ctx, username, kind)
	if err != nil {
		return apperrors.Wrap(err, "failed to load last action")
	}

	now := w.now()
	if authDomain.IsPermitted(last, interval, now) {
		return nil
	}

	w.metrics.RecordRejection(ctx, "board", string(kind))
	if w.logger != nil {
		w.logger.Info("write rejected by minimum interval",
			slog.String("username", username),
			slog.String("kind", string(kind)),
			slog.Duration("interval", interval),
		)
	}

	return &authDomain.RateLimitedError{
		Kind: kind,
		Wait: authDomain.NextPermittedAt(*last, interval).Sub(now),
	}
}

// NewWriteGuardUseCase creates a WriteGuardUseCase. A nil now uses time.Now and a
// nil metrics recorder records nothing.
func NewWriteGuardUseCase(
	lastActions LastActionRepository,
	policy authDomain.WritePolicy,
	businessMetrics metrics.BusinessMetrics,
	now func() time.Time,
	logger *slog.Logger,
) WriteGuardUseCase {
	if now == nil {
		now = time.Now
	}
	if businessMetrics == nil {
		businessMetrics = metrics.NewNoOpBusinessMetrics()
	}
	return &writeGuardUseCase{
		lastActions: lastActions,
		policy:      policy,
		metrics:     businessMetrics,
		now:         now,
		logger:      logger,
	}
}
