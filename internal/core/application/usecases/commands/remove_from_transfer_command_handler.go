package commands

import (
	"context"

	"livestock/internal/core/domain/model/transfer"
)

type RemoveFromTransferCommandHandler struct {
	uowFactory TransferUoWFactory
}

func NewRemoveFromTransferCommandHandler(uowFactory TransferUoWFactory) RemoveFromTransferCommandHandler {
	return RemoveFromTransferCommandHandler{uowFactory: uowFactory}
}

func (h *RemoveFromTransferCommandHandler) Handle(
	ctx context.Context,
	cmd RemoveFromTransferCommand,
) (*transfer.Transfer, error) {
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
	if err = t.Remove(cmd.AnimalID()); err != nil {
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
