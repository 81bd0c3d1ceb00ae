package commands

import (
	"errors"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/order"
	"livestock/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a client demand addressed to a site.
// The details are checked by the order itself when the handler builds it.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	details order.Details
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(details order.Details, actor kernel.Actor) (CreateOrderCommand, error) {
	if err := actor.Validate(); err != nil {
		return CreateOrderCommand{}, err
	}

	return CreateOrderCommand{
		details: details,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Details() order.Details { return c.details }
func (c CreateOrderCommand) Actor() kernel.Actor    { return c.actor }
