package transfer

import (
	"time"

	"livestock/internal/core/domain/model/kernel"
)

// Member links an animal to a transfer. It keeps the animal's tag so missing
// tags can be resolved, and records who added it, when, and how it arrived.
type Member struct {
	animalID kernel.UUID
	tag      string
	addedBy  kernel.Actor
	addedAt  time.Time
	outcome  Outcome
}

func RestoreMember(
	animalID kernel.UUID,
	tag string,
	addedBy kernel.Actor,
	addedAt time.Time,
	outcome Outcome,
) (*Member, error) {
	if err := animalID.Validate(); err != nil {
		return nil, err
	}
	if err := outcome.Validate(); err != nil {
		return nil, err
	}
	return &Member{animalID: animalID, tag: tag, addedBy: addedBy, addedAt: addedAt, outcome: outcome}, nil
}

func (m *Member) AnimalID() kernel.UUID { return m.animalID }
func (m *Member) Tag() string           { return m.tag }
func (m *Member) AddedBy() kernel.Actor { return m.addedBy }
func (m *Member) AddedAt() time.Time    { return m.addedAt }
func (m *Member) Outcome() Outcome      { return m.outcome }
