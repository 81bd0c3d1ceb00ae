// Package commands contains the engine operations that modify state.
// Every command is a validated value object handled by one handler; each
// handler runs inside a single unit of work, so a failed command leaves no
// trace in the store.
package commands

import (
	"context"

	"livestock/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each family of handlers touches.
type (
	// TxManager handles the database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	SiteRepoFactory interface {
		SiteRepository() ports.SiteRepository
	}

	AnimalRepoFactory interface {
		AnimalRepository() ports.AnimalRepository
	}

	HoldingRepoFactory interface {
		HoldingRepository() ports.HoldingRepository
	}

	TransferRepoFactory interface {
		TransferRepository() ports.TransferRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// SiteUoW manages transactions for site-only operations.
	SiteUoW interface {
		TxManager
		SiteRepoFactory
	}

	SiteUoWFactory interface {
		Create() SiteUoW
	}

	// AnimalUoW serves animal registration and direct status changes, which
	// must see transfer membership.
	AnimalUoW interface {
		TxManager
		SiteRepoFactory
		AnimalRepoFactory
		TransferRepoFactory
	}

	AnimalUoWFactory interface {
		Create() AnimalUoW
	}

	// HoldingUoW spans sessions, their site and their animals.
	//
	//	uow := factory.Create()
	//	if err := uow.Begin(ctx); err != nil {
	//	    return err
	//	}
	//	defer func() { _ = uow.Rollback(ctx) }()
	//
	//	session, err := uow.HoldingRepository().Get(ctx, id)
	//	// ... admit, change statuses, update
	//
	//	return uow.Commit(ctx)
	HoldingUoW interface {
		TxManager
		SiteRepoFactory
		AnimalRepoFactory
		HoldingRepoFactory
		TransferRepoFactory
	}

	HoldingUoWFactory interface {
		Create() HoldingUoW
	}

	// TransferUoW spans transfers, their receptions and the moved animals.
	TransferUoW interface {
		TxManager
		SiteRepoFactory
		AnimalRepoFactory
		TransferRepoFactory
	}

	TransferUoWFactory interface {
		Create() TransferUoW
	}

	// OrderUoW manages transactions for orders; orders reference a site.
	OrderUoW interface {
		TxManager
		SiteRepoFactory
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}
)
