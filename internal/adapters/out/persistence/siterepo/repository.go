package siterepo

import (
	"context"

	"livestock/internal/adapters/out/persistence/gormutil"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/site"

	"gorm.io/gorm"
)

type GormSiteRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormSiteRepository(db *gorm.DB, tracker aggregateTracker) *GormSiteRepository {
	return &GormSiteRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormSiteRepository) Add(ctx context.Context, aggregate *site.Site) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormSiteRepository) Update(ctx context.Context, aggregate *site.Site) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&SiteDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gormutil.NotFound(gorm.ErrRecordNotFound, "site", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get locks the site row for the rest of the transaction.
func (r *GormSiteRepository) Get(ctx context.Context, id kernel.UUID) (*site.Site, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SiteDTO
	if err := gormutil.ForUpdate(r.db.WithContext(ctx)).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, gormutil.NotFound(err, "site", id.String())
	}

	return toDomain(dto)
}
