package commands

import (
	"context"

	"livestock/internal/core/domain/model/transfer"
)

// ConfirmReceptionCommandHandler closes a reception: received animals move to
// the destination site, missing ones stay at the source, and the transfer
// becomes DELIVERED.
type ConfirmReceptionCommandHandler struct {
	uowFactory TransferUoWFactory
	clock      Clock
}

func NewConfirmReceptionCommandHandler(uowFactory TransferUoWFactory) ConfirmReceptionCommandHandler {
	return ConfirmReceptionCommandHandler{uowFactory: uowFactory, clock: systemClock}
}

func (h *ConfirmReceptionCommandHandler) Handle(
	ctx context.Context,
	cmd ConfirmReceptionCommand,
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
	if _, err = uow.SiteRepository().Get(ctx, t.DestinationID()); err != nil {
		return nil, err
	}

	now := h.clock()
	received, err := t.ConfirmReception(cmd.Confirmation(), cmd.Actor(), now)
	if err != nil {
		return nil, err
	}

	if len(received) > 0 {
		animals := uow.AnimalRepository()
		herd, err := loadAnimals(ctx, animals, received)
		if err != nil {
			return nil, err
		}
		for _, a := range herd {
			if err = a.Relocate(t.DestinationID(), now); err != nil {
				return nil, err
			}
			if err = animals.Update(ctx, a); err != nil {
				return nil, err
			}
		}
	}

	if err = transfers.Update(ctx, t); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return t, nil
}
