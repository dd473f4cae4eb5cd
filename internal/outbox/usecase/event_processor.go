package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	apperrors "github.com/onionboard/backend/internal/errors"
	"github.com/onionboard/backend/internal/metrics"
	"github.com/onionboard/backend/internal/outbox/domain"
)

const metricsDomain = "outbox"

// AccountEventProcessor decodes account events and reports them through logs
// and business metrics. Unknown event types are acknowledged with a warning.
type AccountEventProcessor struct {
	metrics metrics.BusinessMetrics
	logger  *slog.Logger
}

// NewAccountEventProcessor creates an AccountEventProcessor. A nil
// businessMetrics records nothing.
func NewAccountEventProcessor(businessMetrics metrics.BusinessMetrics, logger *slog.Logger) *AccountEventProcessor {
	if businessMetrics == nil {
		businessMetrics = metrics.NewNoOpBusinessMetrics()
	}
	return &AccountEventProcessor{
		metrics: businessMetrics,
		logger:  logger,
	}
}

// Process handles one event. Malformed payloads are returned as errors so the
// event is retried and eventually marked failed.
func (p *AccountEventProcessor) Process(ctx context.Context, event *domain.OutboxEvent) error {
	var err error
	switch event.EventType {
	case domain.EventUserSignedUp:
		err = p.userSignedUp(ctx, event)
	case domain.EventTokensRevoked:
		err = p.tokensRevoked(ctx, event)
	default:
		if p.logger != nil {
			p.logger.WarnContext(ctx, "unknown event type",
				slog.String("event_id", event.ID.String()),
				slog.String("event_type", event.EventType),
			)
		}
		p.metrics.RecordOperation(ctx, metricsDomain, "unknown", "skipped")
		return nil
	}

	status := "success"
	if err != nil {
		status = "error"
	}
	p.metrics.RecordOperation(ctx, metricsDomain, event.EventType, status)
	return err
}

func (p *AccountEventProcessor) userSignedUp(ctx context.Context, event *domain.OutboxEvent) error {
	var payload domain.UserSignedUpPayload
	if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
		return apperrors.Wrap(err, "failed to decode user.signed_up payload")
	}
	if payload.Username == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "user.signed_up payload has no username")
	}

	if p.logger != nil {
		p.logger.InfoContext(ctx, "user signed up",
			slog.String("event_id", event.ID.String()),
			slog.String("user_id", payload.UserID),
			slog.String("username", payload.Username),
		)
	}
	return nil
}

func (p *AccountEventProcessor) tokensRevoked(ctx context.Context, event *domain.OutboxEvent) error {
	var payload domain.TokensRevokedPayload
	if err := json.Unmarshal([]byte(event.Payload), &payload); err != nil {
		return apperrors.Wrap(err, "failed to decode user.tokens_revoked payload")
	}
	if payload.Username == "" {
		return apperrors.Wrap(apperrors.ErrInvalidInput, "user.tokens_revoked payload has no username")
	}

	if p.logger != nil {
		p.logger.InfoContext(ctx, "user tokens revoked",
			slog.String("event_id", event.ID.String()),
			slog.String("username", payload.Username),
			slog.Time("token_expires_at", payload.TokenExpiresAt),
		)
	}
	return nil
}
