package commands

import (
	"context"

	"livestock/internal/core/domain/model/transfer"
	"livestock/internal/pkg/errs"
)

// TransferActionCommandHandler runs dispatch, cancel, begin reception and
// cancel reception. None of them moves animals: members stay ALIVE at the
// source until a reception is confirmed.
type TransferActionCommandHandler struct {
	uowFactory TransferUoWFactory
	clock      Clock
}

func NewTransferActionCommandHandler(uowFactory TransferUoWFactory) TransferActionCommandHandler {
	return TransferActionCommandHandler{uowFactory: uowFactory, clock: systemClock}
}

func (h *TransferActionCommandHandler) Handle(ctx context.Context, cmd TransferActionCommand) (*transfer.Transfer, error) {
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

	now := h.clock()
	switch cmd.Action() {
	case DispatchTransfer:
		err = t.Dispatch(cmd.Actor(), now)
	case CancelTransfer:
		err = t.Cancel(cmd.Actor(), cmd.Reason(), now)
	case BeginReception:
		err = t.BeginReception(cmd.Actor(), now)
	case CancelReception:
		err = t.CancelReception(cmd.Actor(), cmd.Reason(), now)
	default:
		err = errs.NewValueIsInvalidError("action")
	}
	if err != nil {
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
