package commands

import (
	"errors"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/guard"
)

var ErrRemoveFromTransferCommandIsNotConstructed = errors.New(
	"RemoveFromTransferCommand must be created via NewRemoveFromTransferCommand constructor",
)

type RemoveFromTransferCommand struct { //nolint:recvcheck //using for validation
	transferID kernel.UUID
	animalID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewRemoveFromTransferCommand(transferID, animalID kernel.UUID) (RemoveFromTransferCommand, error) {
	if err := errors.Join(transferID.Validate(), animalID.Validate()); err != nil {
		return RemoveFromTransferCommand{}, err
	}

	return RemoveFromTransferCommand{
		transferID: transferID,
		animalID:   animalID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RemoveFromTransferCommand) Validate() error {
	return c.guard.Validate(ErrRemoveFromTransferCommandIsNotConstructed)
}

func (c RemoveFromTransferCommand) TransferID() kernel.UUID { return c.transferID }
func (c RemoveFromTransferCommand) AnimalID() kernel.UUID   { return c.animalID }
