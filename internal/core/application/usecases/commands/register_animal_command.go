package commands

import (
	"errors"
	"strings"

	"livestock/internal/core/domain/model/animal"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"
	"livestock/internal/pkg/guard"
)

var ErrRegisterAnimalCommandIsNotConstructed = errors.New(
	"RegisterAnimalCommand must be created via NewRegisterAnimalCommand constructor",
)

// RegisterAnimalCommand records a newly arrived animal at its owning site.
type RegisterAnimalCommand struct { //nolint:recvcheck //using for validation
	tag        string
	species    kernel.Species
	sex        animal.Sex
	liveWeight float64
	siteID     kernel.UUID
	actor      kernel.Actor

	guard guard.ConstructorGuard
}

func NewRegisterAnimalCommand(
	tag string,
	species kernel.Species,
	sex animal.Sex,
	liveWeight float64,
	siteID kernel.UUID,
	actor kernel.Actor,
) (RegisterAnimalCommand, error) {
	var tagErr, siteErr, weightErr error
	if strings.TrimSpace(tag) == "" {
		tagErr = animal.ErrTagIsRequired
	}
	if err := siteID.Validate(); err != nil {
		siteErr = errs.NewValueIsRequiredErrorWithCause("site", err)
	}
	if liveWeight < 0 {
		weightErr = errs.NewValueIsOutOfRangeError("live_weight", liveWeight, 0, "unbounded")
	}
	if err := errors.Join(tagErr, species.Validate(), siteErr, weightErr, actor.Validate()); err != nil {
		return RegisterAnimalCommand{}, err
	}

	return RegisterAnimalCommand{
		tag:        strings.TrimSpace(tag),
		species:    species,
		sex:        sex,
		liveWeight: liveWeight,
		siteID:     siteID,
		actor:      actor,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterAnimalCommand) Validate() error {
	return c.guard.Validate(ErrRegisterAnimalCommandIsNotConstructed)
}

func (c RegisterAnimalCommand) Tag() string             { return c.tag }
func (c RegisterAnimalCommand) Species() kernel.Species { return c.species }
func (c RegisterAnimalCommand) Sex() animal.Sex         { return c.sex }
func (c RegisterAnimalCommand) LiveWeight() float64     { return c.liveWeight }
func (c RegisterAnimalCommand) SiteID() kernel.UUID     { return c.siteID }
func (c RegisterAnimalCommand) Actor() kernel.Actor     { return c.actor }
