package commands

import (
	"errors"
	"maps"

	"livestock/internal/core/domain/model/holding"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/guard"
)

var ErrFinalizeHoldingCommandIsNotConstructed = errors.New(
	"FinalizeHoldingCommand must be created via NewFinalizeHoldingCommand constructor",
)

// FinalizeHoldingCommand closes a session with one slaughter record per
// member. A record with an empty post-slaughter tag gets a generated one.
type FinalizeHoldingCommand struct { //nolint:recvcheck //using for validation
	sessionID kernel.UUID
	records   map[kernel.UUID]holding.SlaughterRecord
	actor     kernel.Actor

	guard guard.ConstructorGuard
}

func NewFinalizeHoldingCommand(
	sessionID kernel.UUID,
	records map[kernel.UUID]holding.SlaughterRecord,
	actor kernel.Actor,
) (FinalizeHoldingCommand, error) {
	if err := errors.Join(sessionID.Validate(), actor.Validate()); err != nil {
		return FinalizeHoldingCommand{}, err
	}

	return FinalizeHoldingCommand{
		sessionID: sessionID,
		records:   maps.Clone(records),
		actor:     actor,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c FinalizeHoldingCommand) Validate() error {
	return c.guard.Validate(ErrFinalizeHoldingCommandIsNotConstructed)
}

func (c FinalizeHoldingCommand) SessionID() kernel.UUID { return c.sessionID }
func (c FinalizeHoldingCommand) Records() map[kernel.UUID]holding.SlaughterRecord {
	out := maps.Clone(c.records)
	if out == nil {
		out = make(map[kernel.UUID]holding.SlaughterRecord)
	}
	return out
}
func (c FinalizeHoldingCommand) Actor() kernel.Actor { return c.actor }
