package holding

import (
	"time"

	"livestock/internal/core/domain/model/kernel"
)

// Member records the admission of one animal into a session: who admitted it and when.
type Member struct {
	animalID   kernel.UUID
	admittedBy kernel.Actor
	admittedAt time.Time
}

func RestoreMember(animalID kernel.UUID, admittedBy kernel.Actor, admittedAt time.Time) (*Member, error) {
	if err := animalID.Validate(); err != nil {
		return nil, err
	}
	return &Member{animalID: animalID, admittedBy: admittedBy, admittedAt: admittedAt}, nil
}

func (m *Member) AnimalID() kernel.UUID    { return m.animalID }
func (m *Member) AdmittedBy() kernel.Actor { return m.admittedBy }
func (m *Member) AdmittedAt() time.Time    { return m.admittedAt }
