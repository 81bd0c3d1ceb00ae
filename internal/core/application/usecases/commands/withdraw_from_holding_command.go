package commands

import (
	"errors"

	"livestock/internal/core/domain/model/holding"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/guard"
)

var ErrWithdrawFromHoldingCommandIsNotConstructed = errors.New(
	"WithdrawFromHoldingCommand must be created via NewWithdrawFromHoldingCommand constructor",
)

type WithdrawFromHoldingCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	animalIDs []kernel.UUID
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

func NewWithdrawFromHoldingCommand(
	sessionID kernel.UUID,
	animalIDs []kernel.UUID,
	actor kernel.Actor,
) (WithdrawFromHoldingCommand, error) {
	var idsErr error
	if len(animalIDs) == 0 {
		idsErr = holding.ErrAnimalIDsAreRequired
	}
	if err := errors.Join(sessionID.Validate(), idsErr, actor.Validate()); err != nil {
		return WithdrawFromHoldingCommand{}, err
	}

	return WithdrawFromHoldingCommand{
		sessionID: sessionID,
		animalIDs: kernel.UniqueUUIDs(animalIDs),
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c WithdrawFromHoldingCommand) Validate() error {
	return c.guard.Validate(ErrWithdrawFromHoldingCommandIsNotConstructed)
}

func (c WithdrawFromHoldingCommand) SessionID() kernel.UUID { return c.sessionID }
func (c WithdrawFromHoldingCommand) AnimalIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.animalIDs...)
}
func (c WithdrawFromHoldingCommand) Actor() kernel.Actor { return c.actor }
