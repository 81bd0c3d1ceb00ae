package commands

import (
	"context"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/transfer"
	"livestock/internal/core/domain/services"
)

// CreateTransferCommandHandler creates an OPEN transfer with its PENDING
// reception. Both serials are allocated in the inserting transaction.
type CreateTransferCommandHandler struct {
	uowFactory TransferUoWFactory
	allocator  services.SerialAllocator
	clock      Clock
}

func NewCreateTransferCommandHandler(uowFactory TransferUoWFactory) CreateTransferCommandHandler {
	return CreateTransferCommandHandler{
		uowFactory: uowFactory,
		allocator:  services.NewSerialAllocator(),
		clock:      systemClock,
	}
}

func (h *CreateTransferCommandHandler) Handle(ctx context.Context, cmd CreateTransferCommand) (*transfer.Transfer, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	sites := uow.SiteRepository()
	if _, err := sites.Get(ctx, cmd.SourceID()); err != nil {
		return nil, err
	}
	if _, err := sites.Get(ctx, cmd.DestinationID()); err != nil {
		return nil, err
	}

	herd, err := loadAnimals(ctx, uow.AnimalRepository(), cmd.AnimalIDs())
	if err != nil {
		return nil, err
	}
	transfers := uow.TransferRepository()
	if err = ensureNotInActiveTransfer(ctx, transfers, cmd.AnimalIDs(), anyTransfer); err != nil {
		return nil, err
	}

	now := h.clock()
	serial, err := h.allocator.Allocate(ctx, services.TransferSerial, now, transfers.SerialExists)
	if err != nil {
		return nil, err
	}
	receptionSerial, err := h.allocator.Allocate(ctx, services.ReceptionSerial, now, transfers.ReceptionSerialExists)
	if err != nil {
		return nil, err
	}

	t, err := transfer.NewTransfer(transfer.Seed{
		ID:              kernel.NewUUID(),
		Serial:          serial,
		ReceptionID:     kernel.NewUUID(),
		ReceptionSerial: receptionSerial,
	}, cmd.SourceID(), cmd.DestinationID(), herd, cmd.DeclaredCount(), cmd.Motive(), cmd.Actor(), now)
	if err != nil {
		return nil, err
	}
	if err = transfers.Add(ctx, t); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return t, nil
}
