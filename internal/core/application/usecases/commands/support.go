package commands

import (
	"context"
	"time"

	"livestock/internal/core/domain/model/animal"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/ports"
	"livestock/internal/pkg/errs"
)

// Clock returns the current time. Handlers store timestamps in UTC.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}

// anyTransfer is the zero id; ActiveMembers then excludes no transfer.
var anyTransfer kernel.UUID

// loadAnimals returns the animals for ids, rejecting every unknown id.
func loadAnimals(ctx context.Context, repo ports.AnimalRepository, ids []kernel.UUID) ([]*animal.Animal, error) {
	ids = kernel.UniqueUUIDs(ids)
	animals, err := repo.GetMany(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(animals) == len(ids) {
		return animals, nil
	}

	found := make(map[kernel.UUID]struct{}, len(animals))
	for _, a := range animals {
		found[a.ID()] = struct{}{}
	}
	var rejections []errs.Rejection
	for _, id := range ids {
		if _, ok := found[id]; !ok {
			rejections = append(rejections, errs.Rejection{
				ID:  id.String(),
				Err: errs.NewObjectNotFoundError("animal", id.String()),
			})
		}
	}
	return nil, errs.NewRejectionsError(rejections)
}

// ensureNotInActiveTransfer rejects animals that belong to an OPEN or
// IN_TRANSIT transfer other than exclude.
func ensureNotInActiveTransfer(
	ctx context.Context,
	repo ports.TransferRepository,
	ids []kernel.UUID,
	exclude kernel.UUID,
) error {
	busy, err := repo.ActiveMembers(ctx, ids, exclude)
	if err != nil {
		return err
	}
	if len(busy) == 0 {
		return nil
	}

	rejections := make([]errs.Rejection, 0, len(busy))
	for _, id := range busy {
		rejections = append(rejections, errs.Rejection{
			ID:  id.String(),
			Err: errs.NewPredicateFailedError(id.String(), "is a member of an active transfer"),
		})
	}
	return errs.NewRejectionsError(rejections)
}

// changeStatus runs the status manager over animals and persists the batch.
func changeStatus(
	ctx context.Context,
	repo ports.AnimalRepository,
	animals []*animal.Animal,
	ids []kernel.UUID,
	target animal.Status,
	reason string,
	actor kernel.Actor,
	at time.Time,
) (*animal.StatusChange, error) {
	change, err := animal.NewStatusManager().Change(animals, ids, target, reason, actor, at)
	if err != nil {
		return nil, err
	}
	if err := repo.ApplyStatusChange(ctx, change); err != nil {
		return nil, err
	}
	return change, nil
}
