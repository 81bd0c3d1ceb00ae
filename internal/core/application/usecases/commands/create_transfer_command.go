package commands

import (
	"errors"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/transfer"
	"livestock/internal/pkg/errs"
	"livestock/internal/pkg/guard"
)

var ErrCreateTransferCommandIsNotConstructed = errors.New(
	"CreateTransferCommand must be created via NewCreateTransferCommand constructor",
)

// CreateTransferCommand plans the movement of named animals between two sites.
// The declared count must match the number of distinct animals.
type CreateTransferCommand struct { //nolint:recvcheck //using for validation
	sourceID      kernel.UUID
	destinationID kernel.UUID
	animalIDs     []kernel.UUID
	declaredCount int
	motive        string
	actor         kernel.Actor

	guard guard.ConstructorGuard
}

func NewCreateTransferCommand(
	sourceID, destinationID kernel.UUID,
	animalIDs []kernel.UUID,
	declaredCount int,
	motive string,
	actor kernel.Actor,
) (CreateTransferCommand, error) {
	var idsErr, countErr error
	if len(animalIDs) == 0 {
		idsErr = transfer.ErrAnimalsAreRequired
	}
	if declaredCount < 1 {
		countErr = errs.NewValueIsOutOfRangeError("declared_count", declaredCount, 1, len(animalIDs))
	}
	if err := errors.Join(
		sourceID.Validate(), destinationID.Validate(), idsErr, countErr, actor.Validate(),
	); err != nil {
		return CreateTransferCommand{}, err
	}

	ids := kernel.UniqueUUIDs(animalIDs)

	return CreateTransferCommand{
		sourceID:      sourceID,
		destinationID: destinationID,
		animalIDs:     ids,
		declaredCount: declaredCount,
		motive:        motive,
		actor:         actor,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c CreateTransferCommand) Validate() error {
	return c.guard.Validate(ErrCreateTransferCommandIsNotConstructed)
}

func (c CreateTransferCommand) SourceID() kernel.UUID      { return c.sourceID }
func (c CreateTransferCommand) DestinationID() kernel.UUID { return c.destinationID }
func (c CreateTransferCommand) AnimalIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.animalIDs...)
}
func (c CreateTransferCommand) DeclaredCount() int  { return c.declaredCount }
func (c CreateTransferCommand) Motive() string      { return c.motive }
func (c CreateTransferCommand) Actor() kernel.Actor { return c.actor }
