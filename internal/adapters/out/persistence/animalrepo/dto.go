// Package animalrepo maps animal aggregates to the animals table. Enumerations
// are stored under their wire names.
package animalrepo

import (
	"time"

	"livestock/internal/core/domain/model/animal"
	"livestock/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type AnimalDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Tag               string    `gorm:"not null;uniqueIndex"`
	PostSlaughterTag  *string   `gorm:"uniqueIndex"`
	Species           string    `gorm:"not null;index:idx_animals_site_species_status,priority:2"`
	Sex               string    `gorm:"not null"`
	LiveWeight        float64
	HotCarcassWeight  *float64
	ColdCarcassWeight *float64
	Status            string    `gorm:"not null;index:idx_animals_site_species_status,priority:3"`
	Healthy           bool      `gorm:"not null"`
	UrgentSlaughter   bool      `gorm:"not null"`
	SiteID            uuid.UUID `gorm:"type:uuid;not null;index:idx_animals_site_species_status,priority:1"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (AnimalDTO) TableName() string {
	return "animals"
}

func fromDomain(a *animal.Animal) AnimalDTO {
	var pst *string
	if tag := a.PostSlaughterTag(); tag != "" {
		pst = &tag
	}

	return AnimalDTO{
		ID:                a.ID().Bytes(),
		Tag:               a.Tag(),
		PostSlaughterTag:  pst,
		Species:           a.Species().String(),
		Sex:               a.Sex().String(),
		LiveWeight:        a.LiveWeight(),
		HotCarcassWeight:  a.HotCarcassWeight(),
		ColdCarcassWeight: a.ColdCarcassWeight(),
		Status:            a.Status().String(),
		Healthy:           a.IsHealthy(),
		UrgentSlaughter:   a.IsUrgentSlaughter(),
		SiteID:            a.SiteID().Bytes(),
		CreatedAt:         a.CreatedAt(),
		UpdatedAt:         a.UpdatedAt(),
	}
}

func toDomain(dto AnimalDTO) (*animal.Animal, error) {
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
	sex, err := animal.ParseSex(dto.Sex)
	if err != nil {
		return nil, err
	}
	status, err := animal.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	var pst string
	if dto.PostSlaughterTag != nil {
		pst = *dto.PostSlaughterTag
	}

	return animal.RestoreAnimal(animal.State{
		ID:                id,
		Tag:               dto.Tag,
		PostSlaughterTag:  pst,
		Species:           species,
		Sex:               sex,
		LiveWeight:        dto.LiveWeight,
		HotCarcassWeight:  dto.HotCarcassWeight,
		ColdCarcassWeight: dto.ColdCarcassWeight,
		Status:            status,
		Healthy:           dto.Healthy,
		UrgentSlaughter:   dto.UrgentSlaughter,
		SiteID:            siteID,
		CreatedAt:         dto.CreatedAt,
		UpdatedAt:         dto.UpdatedAt,
	})
}

func rawIDs(ids []kernel.UUID) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Bytes())
	}
	return out
}
