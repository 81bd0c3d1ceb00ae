package notify

import (
	"context"
	"log/slog"

	"livestock/internal/core/domain/model/kernel"
)

// LogPublisher writes one structured record per event. It is the default
// audit sink when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger.With("component", "events")}
}

func (p *LogPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	for _, e := range events {
		p.logger.InfoContext(ctx, "domain event",
			"event", e.EventName(),
			"aggregate_id", e.AggregateID().String(),
			"occurred_at", e.OccurredAt(),
			"payload", e,
		)
	}
	return nil
}
