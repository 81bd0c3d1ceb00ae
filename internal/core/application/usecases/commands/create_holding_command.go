package commands

import (
	"errors"
	"time"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"
	"livestock/internal/pkg/guard"
)

var ErrCreateHoldingCommandIsNotConstructed = errors.New(
	"CreateHoldingCommand must be created via NewCreateHoldingCommand constructor",
)

// CreateHoldingCommand opens a holding session at a site for one species.
type CreateHoldingCommand struct { //nolint:recvcheck //using for validation
	siteID  kernel.UUID
	species kernel.Species
	startAt time.Time
	note    string
	actor   kernel.Actor

	guard guard.ConstructorGuard
}

func NewCreateHoldingCommand(
	siteID kernel.UUID,
	species kernel.Species,
	startAt time.Time,
	note string,
	actor kernel.Actor,
) (CreateHoldingCommand, error) {
	var startErr error
	if startAt.IsZero() {
		startErr = errs.NewValueIsRequiredError("start_time")
	}
	if err := errors.Join(siteID.Validate(), species.Validate(), startErr, actor.Validate()); err != nil {
		return CreateHoldingCommand{}, err
	}

	return CreateHoldingCommand{
		siteID:  siteID,
		species: species,
		startAt: startAt,
		note:    note,
		actor:   actor,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c CreateHoldingCommand) Validate() error {
	return c.guard.Validate(ErrCreateHoldingCommandIsNotConstructed)
}

func (c CreateHoldingCommand) SiteID() kernel.UUID     { return c.siteID }
func (c CreateHoldingCommand) Species() kernel.Species { return c.species }
func (c CreateHoldingCommand) StartAt() time.Time      { return c.startAt }
func (c CreateHoldingCommand) Note() string            { return c.note }
func (c CreateHoldingCommand) Actor() kernel.Actor     { return c.actor }
