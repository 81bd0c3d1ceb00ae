package holdingrepo

import (
	"context"

	"livestock/internal/adapters/out/persistence/gormutil"
	"livestock/internal/core/domain/model/holding"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormHoldingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormHoldingRepository(db *gorm.DB, tracker aggregateTracker) *GormHoldingRepository {
	return &GormHoldingRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormHoldingRepository) Add(ctx context.Context, aggregate *holding.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, members := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&dto).Error; err != nil {
			return gormutil.UniqueConflict(err, "serial", dto.Serial)
		}
		if len(members) > 0 {
			return tx.Create(&members).Error
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the session row and replaces its membership.
func (r *GormHoldingRepository) Update(ctx context.Context, aggregate *holding.Session) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, members := fromDomain(aggregate)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&SessionDTO{}).Where("id = ?", dto.ID).Select("*").Omit("id").Updates(&dto)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("holding session", aggregate.ID().String())
		}
		if err := tx.Where("session_id = ?", dto.ID).Delete(&MemberDTO{}).Error; err != nil {
			return err
		}
		if len(members) > 0 {
			return tx.Create(&members).Error
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get locks the session row for the rest of the transaction.
func (r *GormHoldingRepository) Get(ctx context.Context, id kernel.UUID) (*holding.Session, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	var dto SessionDTO
	if err := gormutil.ForUpdate(db).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, gormutil.NotFound(err, "holding session", id.String())
	}

	var members []MemberDTO
	if err := db.Where("session_id = ?", dto.ID).Order("admitted_at, animal_id").Find(&members).Error; err != nil {
		return nil, err
	}

	return toDomain(dto, members)
}

func (r *GormHoldingRepository) SerialExists(ctx context.Context, serial string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&SessionDTO{}).Where("serial = ?", serial).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
