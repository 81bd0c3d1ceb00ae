package commands

import (
	"context"

	"livestock/internal/core/domain/model/animal"
)

type RecordColdWeightCommandHandler struct {
	uowFactory AnimalUoWFactory
	clock      Clock
}

func NewRecordColdWeightCommandHandler(uowFactory AnimalUoWFactory) RecordColdWeightCommandHandler {
	return RecordColdWeightCommandHandler{uowFactory: uowFactory, clock: systemClock}
}

func (h *RecordColdWeightCommandHandler) Handle(ctx context.Context, cmd RecordColdWeightCommand) (*animal.Animal, error) {
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
	a, err := repo.Get(ctx, cmd.AnimalID())
	if err != nil {
		return nil, err
	}
	if err = a.RecordColdWeight(cmd.Weight(), h.clock()); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, a); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}
