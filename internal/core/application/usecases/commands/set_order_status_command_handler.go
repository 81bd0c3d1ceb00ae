package commands

import (
	"context"

	"livestock/internal/core/domain/model/order"
)

type SetOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	clock      Clock
}

func NewSetOrderStatusCommandHandler(uowFactory OrderUoWFactory) SetOrderStatusCommandHandler {
	return SetOrderStatusCommandHandler{uowFactory: uowFactory, clock: systemClock}
}

func (h *SetOrderStatusCommandHandler) Handle(ctx context.Context, cmd SetOrderStatusCommand) (*order.Order, error) {
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

	now := h.clock()
	if cmd.Target() == order.Cancelled {
		err = o.Cancel(cmd.Actor(), now)
	} else {
		err = o.SetStatus(cmd.Target(), cmd.DeliveredOn(), cmd.Actor(), now)
	}
	if err != nil {
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
