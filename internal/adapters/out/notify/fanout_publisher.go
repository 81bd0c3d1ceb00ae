package notify

import (
	"context"
	"errors"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/ports"
)

// Fanout hands every batch to each publisher in turn.
type Fanout []ports.EventPublisher

func (f Fanout) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	var errList []error
	for _, p := range f {
		if err := p.Publish(ctx, events...); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}
