// Package orderrepo maps order aggregates to the orders table.
package orderrepo

import (
	"time"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/order"

	"github.com/google/uuid"
)

type OrderDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	Serial       string    `gorm:"not null;uniqueIndex"`
	ClientRef    string    `gorm:"not null"`
	SiteID       uuid.UUID `gorm:"type:uuid;not null;index"`
	Quantity     float64   `gorm:"not null"`
	QuantityKind string    `gorm:"not null"`
	Species      string    `gorm:"not null"`
	ProductForm  string    `gorm:"not null"`
	WithOffal    bool      `gorm:"not null"`
	PlannedOn    time.Time `gorm:"type:date;not null"`
	DeliveredOn  *time.Time
	Note         string
	Status       string `gorm:"not null;index"`
	Archived     bool   `gorm:"not null;index"`
	CreatedBy    string `gorm:"not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	d := o.Details()
	return OrderDTO{
		ID:           o.ID().Bytes(),
		Serial:       o.Serial(),
		ClientRef:    d.ClientRef,
		SiteID:       d.SiteID.Bytes(),
		Quantity:     d.Quantity.Amount(),
		QuantityKind: d.Quantity.Kind().String(),
		Species:      d.Species.String(),
		ProductForm:  d.ProductForm.String(),
		WithOffal:    d.WithOffal,
		PlannedOn:    d.PlannedOn,
		DeliveredOn:  o.DeliveredOn(),
		Note:         d.Note,
		Status:       o.Status().String(),
		Archived:     o.IsArchived(),
		CreatedBy:    o.CreatedBy().String(),
		CreatedAt:    o.CreatedAt(),
		UpdatedAt:    o.UpdatedAt(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	siteID, err := kernel.UUIDFromBytes(dto.SiteID[:])
	if err != nil {
		return nil, err
	}
	kind, err := order.ParseQuantityKind(dto.QuantityKind)
	if err != nil {
		return nil, err
	}
	quantity, err := order.NewQuantity(dto.Quantity, kind)
	if err != nil {
		return nil, err
	}
	species, err := kernel.ParseSpecies(dto.Species)
	if err != nil {
		return nil, err
	}
	form, err := order.ParseProductForm(dto.ProductForm)
	if err != nil {
		return nil, err
	}
	status, err := order.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.State{
		ID:     id,
		Serial: dto.Serial,
		Details: order.Details{
			ClientRef:   dto.ClientRef,
			SiteID:      siteID,
			Quantity:    quantity,
			Species:     species,
			ProductForm: form,
			WithOffal:   dto.WithOffal,
			PlannedOn:   dto.PlannedOn,
			Note:        dto.Note,
		},
		Status:      status,
		DeliveredOn: dto.DeliveredOn,
		Archived:    dto.Archived,
		CreatedBy:   kernel.Actor(dto.CreatedBy),
		CreatedAt:   dto.CreatedAt,
		UpdatedAt:   dto.UpdatedAt,
	})
}
