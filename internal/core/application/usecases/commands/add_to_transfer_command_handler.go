package commands

import (
	"context"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/transfer"
)

type AddToTransferCommandHandler struct {
	uowFactory TransferUoWFactory
	clock      Clock
}

func NewAddToTransferCommandHandler(uowFactory TransferUoWFactory) AddToTransferCommandHandler {
	return AddToTransferCommandHandler{uowFactory: uowFactory, clock: systemClock}
}

func (h *AddToTransferCommandHandler) Handle(ctx context.Context, cmd AddToTransferCommand) (*transfer.Transfer, error) {
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

	transfers := uow.TransferRepository()
	t, err := transfers.Get(ctx, cmd.TransferID())
	if err != nil {
		return nil, err
	}
	a, err := uow.AnimalRepository().Get(ctx, cmd.AnimalID())
	if err != nil {
		return nil, err
	}
	if err = ensureNotInActiveTransfer(ctx, transfers, []kernel.UUID{a.ID()}, t.ID()); err != nil {
		return nil, err
	}
	if err = t.Add(a, cmd.Actor(), h.clock()); err != nil {
		return nil, err
	}
	if err = transfers.Update(ctx, t); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return t, nil
}
