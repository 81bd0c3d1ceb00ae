package transferrepo

import (
	"context"

	"livestock/internal/adapters/out/persistence/gormutil"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/transfer"
	"livestock/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GormTransferRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormTransferRepository(db *gorm.DB, tracker aggregateTracker) *GormTransferRepository {
	return &GormTransferRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormTransferRepository) Add(ctx context.Context, aggregate *transfer.Transfer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rec, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&rec.transfer).Error; err != nil {
			return gormutil.UniqueConflict(err, "serial", rec.transfer.Serial)
		}
		if err := tx.Create(&rec.reception).Error; err != nil {
			return gormutil.UniqueConflict(err, "reception_serial", rec.reception.Serial)
		}
		if len(rec.members) > 0 {
			return tx.Create(&rec.members).Error
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves the transfer and its reception and replaces the member rows.
func (r *GormTransferRepository) Update(ctx context.Context, aggregate *transfer.Transfer) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	rec, err := fromDomain(aggregate)
	if err != nil {
		return err
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&TransferDTO{}).Where("id = ?", rec.transfer.ID).Select("*").Omit("id").Updates(&rec.transfer)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.NewObjectNotFoundError("transfer", aggregate.ID().String())
		}

		err := tx.Model(&ReceptionDTO{}).
			Where("id = ?", rec.reception.ID).
			Select("*").
			Omit("id", "transfer_id").
			Updates(&rec.reception).Error
		if err != nil {
			return err
		}

		if err := tx.Where("transfer_id = ?", rec.transfer.ID).Delete(&MemberDTO{}).Error; err != nil {
			return err
		}
		if len(rec.members) > 0 {
			return tx.Create(&rec.members).Error
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get locks the transfer row for the rest of the transaction.
func (r *GormTransferRepository) Get(ctx context.Context, id kernel.UUID) (*transfer.Transfer, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)

	var rec records
	if err := gormutil.ForUpdate(db).First(&rec.transfer, "id = ?", id.Bytes()).Error; err != nil {
		return nil, gormutil.NotFound(err, "transfer", id.String())
	}
	if err := db.First(&rec.reception, "transfer_id = ?", rec.transfer.ID).Error; err != nil {
		return nil, gormutil.NotFound(err, "reception", id.String())
	}
	if err := db.Where("transfer_id = ?", rec.transfer.ID).Order("added_at, tag").Find(&rec.members).Error; err != nil {
		return nil, err
	}

	return toDomain(rec)
}

func (r *GormTransferRepository) SerialExists(ctx context.Context, serial string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&TransferDTO{}).Where("serial = ?", serial).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormTransferRepository) ReceptionSerialExists(ctx context.Context, serial string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ReceptionDTO{}).Where("serial = ?", serial).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *GormTransferRepository) ActiveMembers(
	ctx context.Context,
	animalIDs []kernel.UUID,
	exclude kernel.UUID,
) ([]kernel.UUID, error) {
	if len(animalIDs) == 0 {
		return nil, nil
	}

	raw := make([]uuid.UUID, 0, len(animalIDs))
	for _, id := range animalIDs {
		raw = append(raw, id.Bytes())
	}

	var found []uuid.UUID
	err := r.db.WithContext(ctx).
		Model(&MemberDTO{}).
		Distinct("transfer_members.animal_id").
		Joins("JOIN transfers ON transfers.id = transfer_members.transfer_id").
		Where("transfer_members.animal_id IN ?", raw).
		Where("transfers.status IN ?", []string{transfer.Open.String(), transfer.InTransit.String()}).
		Where("transfers.id <> ?", exclude.Bytes()).
		Pluck("transfer_members.animal_id", &found).Error
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(found))
	for _, raw := range found {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
