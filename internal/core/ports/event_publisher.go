package ports

import (
	"context"

	"livestock/internal/core/domain/model/kernel"
)

// EventPublisher hands committed domain events to the notification side.
// Delivery is fire-and-forget: a failure never undoes the committed command.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}
