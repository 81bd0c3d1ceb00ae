// Package transferrepo maps transfers to the transfers, transfer_members and
// receptions tables.
package transferrepo

import (
	"encoding/json"
	"time"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/transfer"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type TransferDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	Serial        string    `gorm:"not null;uniqueIndex"`
	SourceID      uuid.UUID `gorm:"type:uuid;not null;index"`
	DestinationID uuid.UUID `gorm:"type:uuid;not null;index"`
	DeclaredCount int       `gorm:"not null"`
	Motive        string
	Status        string `gorm:"not null;index"`
	CreatedAt     time.Time
	CreatedBy     string `gorm:"not null"`
	DispatchedAt  *time.Time
	DeliveredAt   *time.Time
	ValidatedBy   string
	CancelledAt   *time.Time
	CancelledBy   string
	CancelReason  string
}

func (TransferDTO) TableName() string {
	return "transfers"
}

type MemberDTO struct {
	TransferID uuid.UUID `gorm:"type:uuid;primaryKey"`
	AnimalID   uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	Tag        string    `gorm:"not null"`
	AddedBy    string    `gorm:"not null"`
	AddedAt    time.Time
	Outcome    string `gorm:"not null"`
}

func (MemberDTO) TableName() string {
	return "transfer_members"
}

// ReceptionDTO stores the reported missing tags as a JSON array.
type ReceptionDTO struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	TransferID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Serial        string    `gorm:"not null;uniqueIndex"`
	ExpectedCount int       `gorm:"not null"`
	ReceivedCount int       `gorm:"not null"`
	MissingCount  int       `gorm:"not null"`
	MissingTags   datatypes.JSON
	Status        string `gorm:"not null;index"`
	Note          string
	CreatedAt     time.Time
	CreatedBy     string `gorm:"not null"`
	StartedAt     *time.Time
	ConfirmedAt   *time.Time
	ValidatedBy   string
	CancelledAt   *time.Time
	CancelledBy   string
	CancelReason  string
}

func (ReceptionDTO) TableName() string {
	return "receptions"
}

type records struct {
	transfer  TransferDTO
	members   []MemberDTO
	reception ReceptionDTO
}

func fromDomain(t *transfer.Transfer) (records, error) {
	rec := records{
		transfer: TransferDTO{
			ID:            t.ID().Bytes(),
			Serial:        t.Serial(),
			SourceID:      t.SourceID().Bytes(),
			DestinationID: t.DestinationID().Bytes(),
			DeclaredCount: t.DeclaredCount(),
			Motive:        t.Motive(),
			Status:        t.Status().String(),
			CreatedAt:     t.CreatedAt(),
			CreatedBy:     t.CreatedBy().String(),
			DispatchedAt:  t.DispatchedAt(),
			DeliveredAt:   t.DeliveredAt(),
			ValidatedBy:   t.ValidatedBy().String(),
			CancelledAt:   t.CancelledAt(),
			CancelledBy:   t.CancelledBy().String(),
			CancelReason:  t.CancelReason(),
		},
	}

	for _, m := range t.Members() {
		rec.members = append(rec.members, MemberDTO{
			TransferID: rec.transfer.ID,
			AnimalID:   m.AnimalID().Bytes(),
			Tag:        m.Tag(),
			AddedBy:    m.AddedBy().String(),
			AddedAt:    m.AddedAt(),
			Outcome:    m.Outcome().String(),
		})
	}

	r := t.Reception()
	missingTags := r.MissingTags()
	if missingTags == nil {
		missingTags = []string{}
	}
	rawTags, err := json.Marshal(missingTags)
	if err != nil {
		return records{}, err
	}

	rec.reception = ReceptionDTO{
		ID:            r.ID().Bytes(),
		TransferID:    rec.transfer.ID,
		Serial:        r.Serial(),
		ExpectedCount: r.ExpectedCount(),
		ReceivedCount: r.ReceivedCount(),
		MissingCount:  r.MissingCount(),
		MissingTags:   datatypes.JSON(rawTags),
		Status:        r.Status().String(),
		Note:          r.Note(),
		CreatedAt:     r.CreatedAt(),
		CreatedBy:     r.CreatedBy().String(),
		StartedAt:     r.StartedAt(),
		ConfirmedAt:   r.ConfirmedAt(),
		ValidatedBy:   r.ValidatedBy().String(),
		CancelledAt:   r.CancelledAt(),
		CancelledBy:   r.CancelledBy().String(),
		CancelReason:  r.CancelReason(),
	}
	return rec, nil
}

func toDomain(rec records) (*transfer.Transfer, error) {
	dto := rec.transfer

	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	sourceID, err := kernel.UUIDFromBytes(dto.SourceID[:])
	if err != nil {
		return nil, err
	}
	destinationID, err := kernel.UUIDFromBytes(dto.DestinationID[:])
	if err != nil {
		return nil, err
	}
	status, err := transfer.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	members := make([]*transfer.Member, 0, len(rec.members))
	for _, m := range rec.members {
		member, err := memberToDomain(m)
		if err != nil {
			return nil, err
		}
		members = append(members, member)
	}

	reception, err := receptionToDomain(rec.reception)
	if err != nil {
		return nil, err
	}

	return transfer.RestoreTransfer(transfer.State{
		ID:            id,
		Serial:        dto.Serial,
		SourceID:      sourceID,
		DestinationID: destinationID,
		DeclaredCount: dto.DeclaredCount,
		Motive:        dto.Motive,
		Status:        status,
		CreatedAt:     dto.CreatedAt,
		CreatedBy:     kernel.Actor(dto.CreatedBy),
		DispatchedAt:  dto.DispatchedAt,
		DeliveredAt:   dto.DeliveredAt,
		ValidatedBy:   kernel.Actor(dto.ValidatedBy),
		CancelledAt:   dto.CancelledAt,
		CancelledBy:   kernel.Actor(dto.CancelledBy),
		CancelReason:  dto.CancelReason,
		Members:       members,
		Reception:     reception,
	})
}

func memberToDomain(dto MemberDTO) (*transfer.Member, error) {
	animalID, err := kernel.UUIDFromBytes(dto.AnimalID[:])
	if err != nil {
		return nil, err
	}
	outcome, err := transfer.ParseOutcome(dto.Outcome)
	if err != nil {
		return nil, err
	}
	return transfer.RestoreMember(animalID, dto.Tag, kernel.Actor(dto.AddedBy), dto.AddedAt, outcome)
}

func receptionToDomain(dto ReceptionDTO) (*transfer.Reception, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	status, err := transfer.ParseReceptionStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var missingTags []string
	if len(dto.MissingTags) > 0 {
		if err := json.Unmarshal(dto.MissingTags, &missingTags); err != nil {
			return nil, err
		}
	}

	return transfer.RestoreReception(transfer.ReceptionState{
		ID:            id,
		Serial:        dto.Serial,
		ExpectedCount: dto.ExpectedCount,
		ReceivedCount: dto.ReceivedCount,
		MissingCount:  dto.MissingCount,
		MissingTags:   missingTags,
		Status:        status,
		Note:          dto.Note,
		CreatedAt:     dto.CreatedAt,
		CreatedBy:     kernel.Actor(dto.CreatedBy),
		StartedAt:     dto.StartedAt,
		ConfirmedAt:   dto.ConfirmedAt,
		ValidatedBy:   kernel.Actor(dto.ValidatedBy),
		CancelledAt:   dto.CancelledAt,
		CancelledBy:   kernel.Actor(dto.CancelledBy),
		CancelReason:  dto.CancelReason,
	})
}
