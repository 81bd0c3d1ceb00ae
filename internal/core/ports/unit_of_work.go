package ports

import (
	"context"
)

type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork spans one engine command. Repositories obtained after Begin share
// its transaction; events of the aggregates they saved are published only
// after Commit succeeds.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	Commit(ctx context.Context) error

	Rollback(ctx context.Context) error

	SiteRepository() SiteRepository

	AnimalRepository() AnimalRepository

	HoldingRepository() HoldingRepository

	TransferRepository() TransferRepository

	OrderRepository() OrderRepository
}
