package ports

import (
	"context"

	"livestock/internal/core/domain/model/animal"
	"livestock/internal/core/domain/model/kernel"
)

// AnimalRepository persists animals.
//
// Update writes every field except status; statuses change only through
// ApplyStatusChange, which updates each batch conditionally on the source
// status and fails with a PredicateFailed error if any row moved meanwhile.
type AnimalRepository interface {
	Add(ctx context.Context, aggregate *animal.Animal) error

	Update(ctx context.Context, aggregate *animal.Animal) error

	Get(ctx context.Context, id kernel.UUID) (*animal.Animal, error)

	// GetMany returns the animals found among ids; unknown ids are skipped.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*animal.Animal, error)

	ApplyStatusChange(ctx context.Context, change *animal.StatusChange) error

	TagExists(ctx context.Context, tag string) (bool, error)

	// PostSlaughterTagsInUse returns which of tags are already carried by an
	// animal outside of excluded.
	PostSlaughterTagsInUse(ctx context.Context, tags []string, excluded []kernel.UUID) ([]string, error)

	CountInHolding(ctx context.Context, siteID kernel.UUID, species kernel.Species) (int, error)
}
