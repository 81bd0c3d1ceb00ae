package ports

import (
	"context"

	"livestock/internal/core/domain/model/holding"
	"livestock/internal/core/domain/model/kernel"
)

type HoldingRepository interface {
	Add(ctx context.Context, aggregate *holding.Session) error

	// Update saves the session and replaces its membership.
	Update(ctx context.Context, aggregate *holding.Session) error

	Get(ctx context.Context, id kernel.UUID) (*holding.Session, error)

	SerialExists(ctx context.Context, serial string) (bool, error)
}
