package commands

import (
	"errors"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/transfer"
	"livestock/internal/pkg/guard"
)

var ErrConfirmReceptionCommandIsNotConstructed = errors.New(
	"ConfirmReceptionCommand must be created via NewConfirmReceptionCommand constructor",
)

// ConfirmReceptionCommand reconciles what arrived at the destination.
type ConfirmReceptionCommand struct { //nolint:recvcheck //using for validation
	transferID   kernel.UUID
	confirmation transfer.Confirmation
	actor        kernel.Actor

	guard guard.ConstructorGuard
}

func NewConfirmReceptionCommand(
	transferID kernel.UUID,
	confirmation transfer.Confirmation,
	actor kernel.Actor,
) (ConfirmReceptionCommand, error) {
	if err := errors.Join(transferID.Validate(), actor.Validate()); err != nil {
		return ConfirmReceptionCommand{}, err
	}

	confirmation.ReceivedIDs = kernel.UniqueUUIDs(confirmation.ReceivedIDs)
	confirmation.MissingTags = append([]string(nil), confirmation.MissingTags...)
	return ConfirmReceptionCommand{
		transferID:   transferID,
		confirmation: confirmation,
		actor:        actor,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c ConfirmReceptionCommand) Validate() error {
	return c.guard.Validate(ErrConfirmReceptionCommandIsNotConstructed)
}

func (c ConfirmReceptionCommand) TransferID() kernel.UUID { return c.transferID }
func (c ConfirmReceptionCommand) Confirmation() transfer.Confirmation {
	out := c.confirmation
	out.ReceivedIDs = append([]kernel.UUID(nil), c.confirmation.ReceivedIDs...)
	out.MissingTags = append([]string(nil), c.confirmation.MissingTags...)
	return out
}
func (c ConfirmReceptionCommand) Actor() kernel.Actor { return c.actor }
