package commands

import (
	"context"

	"livestock/internal/core/domain/model/order"
)

type UpdateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewUpdateOrderCommandHandler(uowFactory OrderUoWFactory) UpdateOrderCommandHandler {
	return UpdateOrderCommandHandler{uowFactory: uowFactory, clock: systemClock}
}

func (h *UpdateOrderCommandHandler) Handle(ctx context.Context, cmd UpdateOrderCommand) (*order.Order, error) {
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

	orders := uow.OrderRepository()
	o, err := orders.Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	if !o.Details().SiteID.IsEqual(cmd.Details().SiteID) {
		if _, err = uow.SiteRepository().Get(ctx, cmd.Details().SiteID); err != nil {
			return nil, err
		}
	}
	if err = o.Update(cmd.Details(), h.clock()); err != nil {
		return nil, err
	}
	if err = orders.Update(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
