package commands

import (
	"context"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/order"
	"livestock/internal/core/domain/services"
)

// CreateOrderCommandHandler creates a DRAFT order with a fresh BC serial.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	cmd, _ := NewCreateOrderCommand(details, "alice")
//
//	o, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	fmt.Println(o.Serial()) // BC-20250314-093000-001
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	allocator  services.SerialAllocator
	clock      Clock
}

func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		allocator:  services.NewSerialAllocator(),
		clock:      systemClock,
	}
}

func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
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

	if _, err := uow.SiteRepository().Get(ctx, cmd.Details().SiteID); err != nil {
		return nil, err
	}

	now := h.clock()
	orders := uow.OrderRepository()
	serial, err := h.allocator.Allocate(ctx, services.OrderSerial, now, orders.SerialExists)
	if err != nil {
		return nil, err
	}

	o, err := order.NewOrder(kernel.NewUUID(), serial, cmd.Details(), cmd.Actor(), now)
	if err != nil {
		return nil, err
	}
	if err = orders.Add(ctx, o); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
