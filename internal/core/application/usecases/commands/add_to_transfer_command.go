package commands

import (
	"errors"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/guard"
)

var ErrAddToTransferCommandIsNotConstructed = errors.New(
	"AddToTransferCommand must be created via NewAddToTransferCommand constructor",
)

type AddToTransferCommand struct { //nolint:recvcheck //using for validation
	transferID kernel.UUID
	animalID   kernel.UUID
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewAddToTransferCommand(transferID, animalID kernel.UUID, actor kernel.Actor) (AddToTransferCommand, error) {
	if err := errors.Join(transferID.Validate(), animalID.Validate(), actor.Validate()); err != nil {
		return AddToTransferCommand{}, err
	}

	return AddToTransferCommand{
		transferID: transferID,
		animalID:   animalID,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AddToTransferCommand) Validate() error {
	return c.guard.Validate(ErrAddToTransferCommandIsNotConstructed)
}

func (c AddToTransferCommand) TransferID() kernel.UUID { return c.transferID }
func (c AddToTransferCommand) AnimalID() kernel.UUID   { return c.animalID }
func (c AddToTransferCommand) Actor() kernel.Actor     { return c.actor }
