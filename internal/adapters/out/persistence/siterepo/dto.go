// Package siterepo maps site aggregates to the sites table.
package siterepo

import (
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/site"

	"github.com/google/uuid"
)

// SiteDTO keeps one capacity column per species.
type SiteDTO struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name            string    `gorm:"not null"`
	Location        string
	Active          bool `gorm:"not null"`
	CapacityBovine  int  `gorm:"not null;default:0"`
	CapacityOvine   int  `gorm:"not null;default:0"`
	CapacityCaprine int  `gorm:"not null;default:0"`
	CapacityOther   int  `gorm:"not null;default:0"`
}

func (SiteDTO) TableName() string {
	return "sites"
}

func fromDomain(s *site.Site) SiteDTO {
	return SiteDTO{
		ID:              s.ID().Bytes(),
		Name:            s.Name(),
		Location:        s.Location(),
		Active:          s.IsActive(),
		CapacityBovine:  s.Capacity(kernel.Bovine),
		CapacityOvine:   s.Capacity(kernel.Ovine),
		CapacityCaprine: s.Capacity(kernel.Caprine),
		CapacityOther:   s.Capacity(kernel.OtherSpecies),
	}
}

func toDomain(dto SiteDTO) (*site.Site, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	capacities := map[kernel.Species]int{
		kernel.Bovine:       dto.CapacityBovine,
		kernel.Ovine:        dto.CapacityOvine,
		kernel.Caprine:      dto.CapacityCaprine,
		kernel.OtherSpecies: dto.CapacityOther,
	}
	return site.RestoreSite(id, dto.Name, dto.Location, capacities, dto.Active)
}
