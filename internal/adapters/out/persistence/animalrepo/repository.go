package animalrepo

import (
	"context"
	"fmt"

	"livestock/internal/adapters/out/persistence/gormutil"
	"livestock/internal/core/domain/model/animal"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"

	"gorm.io/gorm"
)

type GormAnimalRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormAnimalRepository(db *gorm.DB, tracker aggregateTracker) *GormAnimalRepository {
	return &GormAnimalRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormAnimalRepository) Add(ctx context.Context, aggregate *animal.Animal) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return gormutil.UniqueConflict(err, "tag", aggregate.Tag())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column except status, which only ApplyStatusChange moves.
func (r *GormAnimalRepository) Update(ctx context.Context, aggregate *animal.Animal) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&AnimalDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "status", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return gormutil.UniqueConflict(result.Error, "post_slaughter_tag", aggregate.PostSlaughterTag())
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("animal", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get locks the animal row for the rest of the transaction.
func (r *GormAnimalRepository) Get(ctx context.Context, id kernel.UUID) (*animal.Animal, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AnimalDTO
	if err := gormutil.ForUpdate(r.db.WithContext(ctx)).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, gormutil.NotFound(err, "animal", id.String())
	}

	return toDomain(dto)
}

// GetMany locks and returns the animals found among ids, ordered by tag.
func (r *GormAnimalRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*animal.Animal, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var dtos []AnimalDTO
	err := gormutil.ForUpdate(r.db.WithContext(ctx)).
		Where("id IN ?", rawIDs(ids)).
		Order("tag").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	animals := make([]*animal.Animal, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		animals = append(animals, a)
	}
	return animals, nil
}

// ApplyStatusChange moves each group with a single conditional UPDATE. A group
// whose affected row count differs from its size means another transaction
// changed one of its animals first; the whole change is then refused.
func (r *GormAnimalRepository) ApplyStatusChange(ctx context.Context, change *animal.StatusChange) error {
	if change == nil {
		return errs.NewValueIsRequiredError("status_change")
	}

	db := r.db.WithContext(ctx)
	for _, group := range change.Groups() {
		result := db.Model(&AnimalDTO{}).
			Where("id IN ? AND status = ?", rawIDs(group.AnimalIDs), group.From.String()).
			Updates(map[string]any{
				"status":     change.Target().String(),
				"updated_at": change.At(),
			})
		if result.Error != nil {
			return result.Error
		}
		if int(result.RowsAffected) != len(group.AnimalIDs) {
			return errs.NewPredicateFailedError(
				change.BatchID().String(),
				fmt.Sprintf("%d of %d animals are no longer %s",
					len(group.AnimalIDs)-int(result.RowsAffected), len(group.AnimalIDs), group.From),
			)
		}
	}

	r.tracker.TrackAggregate(change.BatchID(), change)
	return nil
}

func (r *GormAnimalRepository) TagExists(ctx context.Context, tag string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&AnimalDTO{}).Where("tag = ?", tag).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormAnimalRepository) PostSlaughterTagsInUse(
	ctx context.Context,
	tags []string,
	excluded []kernel.UUID,
) ([]string, error) {
	if len(tags) == 0 {
		return nil, nil
	}

	query := r.db.WithContext(ctx).Model(&AnimalDTO{}).Where("post_slaughter_tag IN ?", tags)
	if len(excluded) > 0 {
		query = query.Where("id NOT IN ?", rawIDs(excluded))
	}

	var used []string
	if err := query.Order("post_slaughter_tag").Pluck("post_slaughter_tag", &used).Error; err != nil {
		return nil, err
	}
	return used, nil
}

func (r *GormAnimalRepository) CountInHolding(ctx context.Context, siteID kernel.UUID, species kernel.Species) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&AnimalDTO{}).
		Where("site_id = ? AND species = ? AND status = ?", siteID.Bytes(), species.String(), animal.InHolding.String()).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return int(count), nil
}
