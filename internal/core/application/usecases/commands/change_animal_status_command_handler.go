package commands

import (
	"context"

	"livestock/internal/core/domain/model/animal"
	"livestock/internal/pkg/errs"
)

// ChangeAnimalStatusCommandHandler applies a status change as one batch: every
// animal moves or none does. Animals held in a session or travelling in an
// active transfer are refused; those are released by their own engines.
type ChangeAnimalStatusCommandHandler struct {
	uowFactory AnimalUoWFactory
	clock      Clock
}

func NewChangeAnimalStatusCommandHandler(uowFactory AnimalUoWFactory) ChangeAnimalStatusCommandHandler {
	return ChangeAnimalStatusCommandHandler{uowFactory: uowFactory, clock: systemClock}
}

func (h *ChangeAnimalStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeAnimalStatusCommand,
) (*animal.StatusChange, error) {
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

	repo := uow.AnimalRepository()
	animals, err := loadAnimals(ctx, repo, cmd.AnimalIDs())
	if err != nil {
		return nil, err
	}

	var rejections []errs.Rejection
	for _, a := range animals {
		if a.Status() == animal.InHolding {
			rejections = append(rejections, errs.Rejection{
				ID:  a.ID().String(),
				Err: errs.NewPredicateFailedError(a.Tag(), "is held in a holding session"),
			})
		}
	}
	if len(rejections) > 0 {
		return nil, errs.NewRejectionsError(rejections)
	}
	if err = ensureNotInActiveTransfer(ctx, uow.TransferRepository(), cmd.AnimalIDs(), anyTransfer); err != nil {
		return nil, err
	}

	change, err := changeStatus(ctx, repo, animals, cmd.AnimalIDs(), cmd.Target(), cmd.Reason(), cmd.Actor(), h.clock())
	if err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return change, nil
}
