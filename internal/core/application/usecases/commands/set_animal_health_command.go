package commands

import (
	"errors"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/guard"
)

var ErrSetAnimalHealthCommandIsNotConstructed = errors.New(
	"SetAnimalHealthCommand must be created via NewSetAnimalHealthCommand constructor",
)

// SetAnimalHealthCommand records a veterinary assessment.
type SetAnimalHealthCommand struct { //nolint:recvcheck //using for validation
	animalID        kernel.UUID
	healthy         bool
	urgentSlaughter bool

	guard guard.ConstructorGuard
}

func NewSetAnimalHealthCommand(animalID kernel.UUID, healthy, urgentSlaughter bool) (SetAnimalHealthCommand, error) {
	if err := animalID.Validate(); err != nil {
		return SetAnimalHealthCommand{}, err
	}

	return SetAnimalHealthCommand{
		animalID:        animalID,
		healthy:         healthy,
		urgentSlaughter: urgentSlaughter,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (c SetAnimalHealthCommand) Validate() error {
	return c.guard.Validate(ErrSetAnimalHealthCommandIsNotConstructed)
}

func (c SetAnimalHealthCommand) AnimalID() kernel.UUID { return c.animalID }
func (c SetAnimalHealthCommand) Healthy() bool         { return c.healthy }
func (c SetAnimalHealthCommand) UrgentSlaughter() bool { return c.urgentSlaughter }
