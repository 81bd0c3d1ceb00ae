package commands

import (
	"errors"
	"fmt"

	"livestock/internal/core/domain/model/animal"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"
	"livestock/internal/pkg/guard"
)

var ErrChangeAnimalStatusCommandIsNotConstructed = errors.New(
	"ChangeAnimalStatusCommand must be created via NewChangeAnimalStatusCommand constructor",
)

// ChangeAnimalStatusCommand moves a batch of animals to a new status outside
// of holding sessions and transfers: deaths, sales and direct slaughter.
type ChangeAnimalStatusCommand struct { //nolint:recvcheck //using for validation
	animalIDs []kernel.UUID
	target    animal.Status
	reason    string
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

func NewChangeAnimalStatusCommand(
	animalIDs []kernel.UUID,
	target animal.Status,
	reason string,
	actor kernel.Actor,
) (ChangeAnimalStatusCommand, error) {
	var idsErr, targetErr error
	if len(animalIDs) == 0 {
		idsErr = animal.ErrAnimalIDsAreRequired
	}
	if err := target.Validate(); err != nil {
		targetErr = err
	} else if target == animal.InHolding {
		targetErr = errs.NewValueIsInvalidErrorWithCause(
			"status",
			fmt.Errorf("%s is only reachable by admission to a holding session", target),
		)
	}
	if err := errors.Join(idsErr, targetErr, actor.Validate()); err != nil {
		return ChangeAnimalStatusCommand{}, err
	}

	return ChangeAnimalStatusCommand{
		animalIDs: kernel.UniqueUUIDs(animalIDs),
		target:    target,
		reason:    reason,
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeAnimalStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeAnimalStatusCommandIsNotConstructed)
}

func (c ChangeAnimalStatusCommand) AnimalIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.animalIDs...)
}
func (c ChangeAnimalStatusCommand) Target() animal.Status { return c.target }
func (c ChangeAnimalStatusCommand) Reason() string        { return c.reason }
func (c ChangeAnimalStatusCommand) Actor() kernel.Actor   { return c.actor }
