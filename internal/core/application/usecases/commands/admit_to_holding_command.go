package commands

import (
	"errors"

	"livestock/internal/core/domain/model/holding"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/guard"
)

var ErrAdmitToHoldingCommandIsNotConstructed = errors.New(
	"AdmitToHoldingCommand must be created via NewAdmitToHoldingCommand constructor",
)

type AdmitToHoldingCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	animalIDs []kernel.UUID
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

func NewAdmitToHoldingCommand(sessionID kernel.UUID, animalIDs []kernel.UUID, actor kernel.Actor) (AdmitToHoldingCommand, error) {
	var idsErr error
	if len(animalIDs) == 0 {
		idsErr = holding.ErrAnimalIDsAreRequired
	}
	if err := errors.Join(sessionID.Validate(), idsErr, actor.Validate()); err != nil {
		return AdmitToHoldingCommand{}, err
	}

	return AdmitToHoldingCommand{
		sessionID: sessionID,
		animalIDs: kernel.UniqueUUIDs(animalIDs),
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AdmitToHoldingCommand) Validate() error {
	return c.guard.Validate(ErrAdmitToHoldingCommandIsNotConstructed)
}

func (c AdmitToHoldingCommand) SessionID() kernel.UUID { return c.sessionID }
func (c AdmitToHoldingCommand) AnimalIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.animalIDs...)
}
func (c AdmitToHoldingCommand) Actor() kernel.Actor { return c.actor }
