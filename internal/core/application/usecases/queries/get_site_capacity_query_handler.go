package queries

import (
	"context"
	"database/sql"
	"errors"

	"livestock/internal/core/domain/model/animal"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"

	"gorm.io/gorm"
)

// GetSiteCapacityQueryHandler reads configured capacities from sites and
// counts IN_HOLDING animals per species in a single grouped scan.
type GetSiteCapacityQueryHandler struct {
	db *gorm.DB
}

func NewGetSiteCapacityQueryHandler(db *gorm.DB) GetSiteCapacityQueryHandler {
	return GetSiteCapacityQueryHandler{db: db}
}

func (h GetSiteCapacityQueryHandler) Handle(
	ctx context.Context,
	query GetSiteCapacityQuery,
) (*GetSiteCapacityQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx)
	siteID := query.SiteID()

	var name string
	var active bool
	configured := make(map[kernel.Species]int, 4)
	var bovine, ovine, caprine, other int
	err := db.Raw(`
		SELECT
			name,
			active,
			capacity_bovine,
			capacity_ovine,
			capacity_caprine,
			capacity_other
		FROM sites
		WHERE id = ?
	`, siteID.Bytes()).Row().Scan(&name, &active, &bovine, &ovine, &caprine, &other)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errs.NewObjectNotFoundError("site", siteID)
	}
	if err != nil {
		return nil, err
	}
	configured[kernel.Bovine] = bovine
	configured[kernel.Ovine] = ovine
	configured[kernel.Caprine] = caprine
	configured[kernel.OtherSpecies] = other

	rows, err := db.Raw(`
		SELECT species, COUNT(*)
		FROM animals
		WHERE site_id = ? AND status = ?
		GROUP BY species
	`, siteID.Bytes(), animal.InHolding.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	inHolding := make(map[kernel.Species]int, 4)
	for rows.Next() {
		var speciesName string
		var n int
		if err = rows.Scan(&speciesName, &n); err != nil {
			return nil, err
		}
		species, parseErr := kernel.ParseSpecies(speciesName)
		if parseErr != nil {
			return nil, parseErr
		}
		inHolding[species] = n
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	resp := &GetSiteCapacityQueryResponse{SiteID: siteID, Name: name, Active: active}
	for _, species := range kernel.AllSpecies() {
		c := SpeciesCapacity{
			Species:   species,
			Capacity:  configured[species],
			InHolding: inHolding[species],
		}
		c.Remaining = max(c.Capacity-c.InHolding, 0)
		resp.Species = append(resp.Species, c)
	}
	return resp, nil
}
