package commands

import (
	"context"

	"livestock/internal/core/domain/model/animal"
)

type SetAnimalHealthCommandHandler struct {
	uowFactory AnimalUoWFactory
	clock      Clock
}

func NewSetAnimalHealthCommandHandler(uowFactory AnimalUoWFactory) SetAnimalHealthCommandHandler {
	return SetAnimalHealthCommandHandler{uowFactory: uowFactory, clock: systemClock}
}

func (h *SetAnimalHealthCommandHandler) Handle(ctx context.Context, cmd SetAnimalHealthCommand) (*animal.Animal, error) {
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
	a.SetHealth(cmd.Healthy(), cmd.UrgentSlaughter(), h.clock())
	if err = repo.Update(ctx, a); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}
