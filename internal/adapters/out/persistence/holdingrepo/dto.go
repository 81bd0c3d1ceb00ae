// Package holdingrepo maps holding sessions to the holding_sessions table and
// their membership to holding_members.
package holdingrepo

import (
	"time"

	"livestock/internal/core/domain/model/holding"
	"livestock/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type SessionDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Serial    string    `gorm:"not null;uniqueIndex"`
	SiteID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Species   string    `gorm:"not null"`
	Status    string    `gorm:"not null;index"`
	StartAt   time.Time
	EndAt     *time.Time
	Note      string
	CreatedBy string `gorm:"not null"`
}

func (SessionDTO) TableName() string {
	return "holding_sessions"
}

// MemberDTO records who admitted an animal into a session and when.
type MemberDTO struct {
	SessionID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	AnimalID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	AdmittedBy string    `gorm:"not null"`
	AdmittedAt time.Time
}

func (MemberDTO) TableName() string {
	return "holding_members"
}

func fromDomain(s *holding.Session) (SessionDTO, []MemberDTO) {
	dto := SessionDTO{
		ID:        s.ID().Bytes(),
		Serial:    s.Serial(),
		SiteID:    s.SiteID().Bytes(),
		Species:   s.Species().String(),
		Status:    s.Status().String(),
		StartAt:   s.StartAt(),
		EndAt:     s.EndAt(),
		Note:      s.Note(),
		CreatedBy: s.CreatedBy().String(),
	}

	members := make([]MemberDTO, 0, len(s.Members()))
	for _, m := range s.Members() {
		members = append(members, MemberDTO{
			SessionID:  dto.ID,
			AnimalID:   m.AnimalID().Bytes(),
			AdmittedBy: m.AdmittedBy().String(),
			AdmittedAt: m.AdmittedAt(),
		})
	}
	return dto, members
}

func toDomain(dto SessionDTO, memberDTOs []MemberDTO) (*holding.Session, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	siteID, err := kernel.UUIDFromBytes(dto.SiteID[:])
	if err != nil {
		return nil, err
	}
	species, err := kernel.ParseSpecies(dto.Species)
	if err != nil {
		return nil, err
	}
	status, err := holding.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	members := make([]*holding.Member, 0, len(memberDTOs))
	for _, m := range memberDTOs {
		animalID, err := kernel.UUIDFromBytes(m.AnimalID[:])
		if err != nil {
			return nil, err
		}
		member, err := holding.RestoreMember(animalID, kernel.Actor(m.AdmittedBy), m.AdmittedAt)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	return holding.RestoreSession(holding.State{
		ID:        id,
		Serial:    dto.Serial,
		SiteID:    siteID,
		Species:   species,
		Status:    status,
		StartAt:   dto.StartAt,
		EndAt:     dto.EndAt,
		Note:      dto.Note,
		CreatedBy: kernel.Actor(dto.CreatedBy),
		Members:   members,
	})
}
