package queries

import (
	"errors"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/guard"
)

var (
	ErrGetSiteCapacityQueryIsNotConstructed = errors.New(
		"GetSiteCapacityQuery must be created via NewGetSiteCapacityQuery constructor",
	)
)

// GetSiteCapacityQuery reports, per species, how much holding room a site has left.
//
// Example:
//
//	query, _ := NewGetSiteCapacityQuery(siteID)
//	handler := NewGetSiteCapacityQueryHandler(db)
//
//	capacity, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to read site capacity: %w", err)
//	}
//
//	for _, c := range capacity.Species {
//	    fmt.Printf("%s: %d of %d free\n", c.Species, c.Remaining, c.Capacity)
//	}
type GetSiteCapacityQuery struct {
	siteID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetSiteCapacityQuery(siteID kernel.UUID) (GetSiteCapacityQuery, error) {
	if err := siteID.Validate(); err != nil {
		return GetSiteCapacityQuery{}, err
	}
	return GetSiteCapacityQuery{siteID: siteID, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetSiteCapacityQuery) Validate() error {
	return q.guard.Validate(ErrGetSiteCapacityQueryIsNotConstructed)
}

func (q GetSiteCapacityQuery) SiteID() kernel.UUID { return q.siteID }

type SpeciesCapacity struct {
	Species   kernel.Species
	Capacity  int
	InHolding int
	Remaining int
}

// GetSiteCapacityQueryResponse lists every species, including those the site
// cannot hold (capacity 0).
type GetSiteCapacityQueryResponse struct {
	SiteID  kernel.UUID
	Name    string
	Active  bool
	Species []SpeciesCapacity
}
