package commands

import (
	"errors"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/guard"
)

var ErrCancelHoldingCommandIsNotConstructed = errors.New(
	"CancelHoldingCommand must be created via NewCancelHoldingCommand constructor",
)

type CancelHoldingCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

func NewCancelHoldingCommand(sessionID kernel.UUID, actor kernel.Actor) (CancelHoldingCommand, error) {
	if err := errors.Join(sessionID.Validate(), actor.Validate()); err != nil {
		return CancelHoldingCommand{}, err
	}

	return CancelHoldingCommand{
		sessionID: sessionID,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CancelHoldingCommand) Validate() error {
	return c.guard.Validate(ErrCancelHoldingCommandIsNotConstructed)
}

func (c CancelHoldingCommand) SessionID() kernel.UUID { return c.sessionID }
func (c CancelHoldingCommand) Actor() kernel.Actor    { return c.actor }
