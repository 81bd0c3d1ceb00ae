package ports

import (
	"context"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/order"
)

type OrderRepository interface {
	Add(ctx context.Context, aggregate *order.Order) error

	Update(ctx context.Context, aggregate *order.Order) error

	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	Delete(ctx context.Context, aggregate *order.Order) error

	SerialExists(ctx context.Context, serial string) (bool, error)
}
