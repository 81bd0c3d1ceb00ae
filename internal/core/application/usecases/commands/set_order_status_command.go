package commands

import (
	"errors"
	"time"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/order"
	"livestock/internal/pkg/guard"
)

var ErrSetOrderStatusCommandIsNotConstructed = errors.New(
	"SetOrderStatusCommand must be created via NewSetOrderStatusCommand constructor",
)

// SetOrderStatusCommand advances an order one step or cancels it.
// DeliveredOn is only read when the target is DELIVERED.
type SetOrderStatusCommand struct { //nolint:recvcheck //using for validation
	orderID     kernel.UUID
	target      order.Status
	deliveredOn *time.Time
	actor       kernel.Actor

	guard guard.ConstructorGuard
}

func NewSetOrderStatusCommand(
	orderID kernel.UUID,
	target order.Status,
	deliveredOn *time.Time,
	actor kernel.Actor,
) (SetOrderStatusCommand, error) {
	if err := errors.Join(orderID.Validate(), target.Validate(), actor.Validate()); err != nil {
		return SetOrderStatusCommand{}, err
	}

	return SetOrderStatusCommand{
		orderID:     orderID,
		target:      target,
		deliveredOn: deliveredOn,
		actor:       actor,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// NewCancelOrderCommand is SetOrderStatus to CANCELLED.
func NewCancelOrderCommand(orderID kernel.UUID, actor kernel.Actor) (SetOrderStatusCommand, error) {
	return NewSetOrderStatusCommand(orderID, order.Cancelled, nil, actor)
}

func (c SetOrderStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetOrderStatusCommandIsNotConstructed)
}

func (c SetOrderStatusCommand) OrderID() kernel.UUID    { return c.orderID }
func (c SetOrderStatusCommand) Target() order.Status    { return c.target }
func (c SetOrderStatusCommand) DeliveredOn() *time.Time { return c.deliveredOn }
func (c SetOrderStatusCommand) Actor() kernel.Actor     { return c.actor }
