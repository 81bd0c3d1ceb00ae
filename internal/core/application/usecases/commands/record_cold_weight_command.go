package commands

import (
	"errors"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"
	"livestock/internal/pkg/guard"
)

var ErrRecordColdWeightCommandIsNotConstructed = errors.New(
	"RecordColdWeightCommand must be created via NewRecordColdWeightCommand constructor",
)

// RecordColdWeightCommand stores the carcass weight measured after chilling.
type RecordColdWeightCommand struct { //nolint:recvcheck //using for validation
	animalID kernel.UUID
	weight   float64

	guard guard.ConstructorGuard
}

func NewRecordColdWeightCommand(animalID kernel.UUID, weight float64) (RecordColdWeightCommand, error) {
	var weightErr error
	if weight <= 0 {
		weightErr = errs.NewValueIsOutOfRangeError("cold_weight", weight, 0, "unbounded")
	}
	if err := errors.Join(animalID.Validate(), weightErr); err != nil {
		return RecordColdWeightCommand{}, err
	}

	return RecordColdWeightCommand{
		animalID: animalID,
		weight:   weight,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c RecordColdWeightCommand) Validate() error {
	return c.guard.Validate(ErrRecordColdWeightCommandIsNotConstructed)
}

func (c RecordColdWeightCommand) AnimalID() kernel.UUID { return c.animalID }
func (c RecordColdWeightCommand) Weight() float64       { return c.weight }
