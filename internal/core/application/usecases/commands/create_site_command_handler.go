package commands

import (
	"context"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/site"
)

type CreateSiteCommandHandler struct {
	uowFactory SiteUoWFactory
}

func NewCreateSiteCommandHandler(uowFactory SiteUoWFactory) CreateSiteCommandHandler {
	return CreateSiteCommandHandler{uowFactory: uowFactory}
}

func (h *CreateSiteCommandHandler) Handle(ctx context.Context, cmd CreateSiteCommand) (*site.Site, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s, err := site.NewSite(kernel.NewUUID(), cmd.Name(), cmd.Location(), cmd.Capacities())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.SiteRepository().Add(ctx, s); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return s, nil
}
