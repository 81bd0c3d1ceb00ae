package commands

import (
	"context"

	"livestock/internal/core/domain/model/animal"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"
)

type RegisterAnimalCommandHandler struct {
	uowFactory AnimalUoWFactory
	clock      Clock
}

func NewRegisterAnimalCommandHandler(uowFactory AnimalUoWFactory) RegisterAnimalCommandHandler {
	return RegisterAnimalCommandHandler{uowFactory: uowFactory, clock: systemClock}
}

// Handle creates the animal ALIVE at an existing site. A tag already in use is
// a UniqueConflict.
func (h *RegisterAnimalCommandHandler) Handle(ctx context.Context, cmd RegisterAnimalCommand) (*animal.Animal, error) {
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

	if _, err := uow.SiteRepository().Get(ctx, cmd.SiteID()); err != nil {
		return nil, err
	}

	repo := uow.AnimalRepository()
	taken, err := repo.TagExists(ctx, cmd.Tag())
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errs.NewUniqueConflictError("tag", cmd.Tag())
	}

	a, err := animal.NewAnimal(
		kernel.NewUUID(),
		cmd.Tag(),
		cmd.Species(),
		cmd.Sex(),
		cmd.LiveWeight(),
		cmd.SiteID(),
		h.clock(),
	)
	if err != nil {
		return nil, err
	}
	if err = repo.Add(ctx, a); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return a, nil
}
