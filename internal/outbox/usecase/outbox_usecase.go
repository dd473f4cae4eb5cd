// Package usecase drains the transactional outbox of account events.
package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/onionboard/backend/internal/database"
	apperrors "github.com/onionboard/backend/internal/errors"
	"github.com/onionboard/backend/internal/outbox/domain"
)

// Config holds outbox use case configuration
type Config struct {
	Interval   time.Duration
	BatchSize  int
	MaxRetries int
}

// OutboxEventRepository defines outbox event repository operations
type OutboxEventRepository interface {
	Create(ctx context.Context, event *domain.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*domain.OutboxEvent, error)
	Update(ctx context.Context, event *domain.OutboxEvent) error
}

// EventProcessor handles a single outbox event.
type EventProcessor interface {
	Process(ctx context.Context, event *domain.OutboxEvent) error
}

// UseCase defines the interface for outbox use cases
type UseCase interface {
	Start(ctx context.Context) error
	ProcessEvents(ctx context.Context) error
}

// OutboxUseCase polls pending events and hands them to an EventProcessor.
type OutboxUseCase struct {
	config         Config
	txManager      database.TxManager
	outboxRepo     OutboxEventRepository
	eventProcessor EventProcessor
	now            func() time.Time
	logger         *slog.Logger
}

// NewOutboxUseCase creates a new OutboxUseCase. A nil now uses time.Now.
func NewOutboxUseCase(
	config Config,
	txManager database.TxManager,
	outboxRepo OutboxEventRepository,
	eventProcessor EventProcessor,
	now func() time.Time,
	logger *slog.Logger,
) *OutboxUseCase {
	if now == nil {
		now = time.Now
	}
	return &OutboxUseCase{
		config:         config,
		txManager:      txManager,
		outboxRepo:     outboxRepo,
		eventProcessor: eventProcessor,
		now:            now,
		logger:         logger,
	}
}

// Start runs ProcessEvents on every tick until ctx is cancelled.
func (uc *OutboxUseCase) Start(ctx context.Context) error {
	if uc.logger != nil {
		uc.logger.Info("starting outbox event processor",
			slog.Duration("interval", uc.config.Interval),
			slog.Int("batch_size", uc.config.BatchSize),
		)
	}

	ticker := time.NewTicker(uc.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			if uc.logger != nil {
				uc.logger.Info("stopping outbox event processor")
			}
			return ctx.Err()
		case <-ticker.C:
			if err := uc.ProcessEvents(ctx); err != nil && uc.logger != nil {
				uc.logger.Error("failed to process events", slog.Any("error", err))
			}
		}
	}
}

// ProcessEvents locks one batch of pending events and settles each of them in
// the same transaction. A processor failure only bumps the retry counter; the
// event is marked failed once MaxRetries is reached.
func (uc *OutboxUseCase) ProcessEvents(ctx context.Context) error {
	return uc.txManager.WithTx(ctx, func(ctx context.Context) error {
		events, err := uc.outboxRepo.GetPendingEvents(ctx, uc.config.BatchSize)
		if err != nil {
			return apperrors.Wrap(err, "failed to load pending events")
		}
		if len(events) == 0 {
			return nil
		}

		if uc.logger != nil {
			uc.logger.Debug("processing events", slog.Int("count", len(events)))
		}

		for _, event := range events {
			uc.settle(ctx, event, uc.eventProcessor.Process(ctx, event))
			if err := uc.outboxRepo.Update(ctx, event); err != nil {
				return apperrors.Wrap(err, "failed to update outbox event")
			}
		}
		return nil
	})
}

// settle moves event to its next state given the processing result.
func (uc *OutboxUseCase) settle(ctx context.Context, event *domain.OutboxEvent, processErr error) {
	if processErr == nil {
		processedAt := uc.now().UTC()
		event.Status = domain.OutboxEventStatusProcessed
		event.ProcessedAt = &processedAt
		event.LastError = nil
		return
	}

	event.Retries++
	msg := processErr.Error()
	event.LastError = &msg
	if event.Retries >= uc.config.MaxRetries {
		event.Status = domain.OutboxEventStatusFailed
	}

	if uc.logger != nil {
		uc.logger.ErrorContext(ctx, "failed to process event",
			slog.String("event_id", event.ID.String()),
			slog.String("event_type", event.EventType),
			slog.Int("retries", event.Retries),
			slog.Any("error", processErr),
		)
	}
}
