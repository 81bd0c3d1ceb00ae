package commands

import (
	"context"

	"livestock/internal/core/domain/model/site"
)

// SetSiteCapacityCommandHandler updates a capacity. Lowering it below the
// current number of animals in holding is allowed; further admissions are
// then refused until the count drops.
type SetSiteCapacityCommandHandler struct {
	uowFactory SiteUoWFactory
}

func NewSetSiteCapacityCommandHandler(uowFactory SiteUoWFactory) SetSiteCapacityCommandHandler {
	return SetSiteCapacityCommandHandler{uowFactory: uowFactory}
}

func (h *SetSiteCapacityCommandHandler) Handle(ctx context.Context, cmd SetSiteCapacityCommand) (*site.Site, error) {
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

	repo := uow.SiteRepository()
	s, err := repo.Get(ctx, cmd.SiteID())
	if err != nil {
		return nil, err
	}
	if err = s.SetCapacity(cmd.Species(), cmd.Capacity()); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, s); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
