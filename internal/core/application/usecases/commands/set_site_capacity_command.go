package commands

import (
	"errors"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"
	"livestock/internal/pkg/guard"
)

var ErrSetSiteCapacityCommandIsNotConstructed = errors.New(
	"SetSiteCapacityCommand must be created via NewSetSiteCapacityCommand constructor",
)

// SetSiteCapacityCommand changes how many animals of one species a site may hold.
type SetSiteCapacityCommand struct { //nolint:recvcheck //using for validation
	siteID   kernel.UUID
	species  kernel.Species
	capacity int

	guard guard.ConstructorGuard
}

func NewSetSiteCapacityCommand(siteID kernel.UUID, species kernel.Species, capacity int) (SetSiteCapacityCommand, error) {
	var capacityErr error
	if capacity < 0 {
		capacityErr = errs.NewValueIsOutOfRangeError("capacity", capacity, 0, "unbounded")
	}
	if err := errors.Join(siteID.Validate(), species.Validate(), capacityErr); err != nil {
		return SetSiteCapacityCommand{}, err
	}

	return SetSiteCapacityCommand{
		siteID:   siteID,
		species:  species,
		capacity: capacity,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SetSiteCapacityCommand) Validate() error {
	return c.guard.Validate(ErrSetSiteCapacityCommandIsNotConstructed)
}

func (c SetSiteCapacityCommand) SiteID() kernel.UUID     { return c.siteID }
func (c SetSiteCapacityCommand) Species() kernel.Species { return c.species }
func (c SetSiteCapacityCommand) Capacity() int           { return c.capacity }
