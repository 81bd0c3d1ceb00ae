package ports

import (
	"context"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/transfer"
)

// TransferRepository persists transfers together with their reception and members.
type TransferRepository interface {
	Add(ctx context.Context, aggregate *transfer.Transfer) error

	Update(ctx context.Context, aggregate *transfer.Transfer) error

	Get(ctx context.Context, id kernel.UUID) (*transfer.Transfer, error)

	SerialExists(ctx context.Context, serial string) (bool, error)

	ReceptionSerialExists(ctx context.Context, serial string) (bool, error)

	// ActiveMembers returns which of animalIDs belong to an OPEN or IN_TRANSIT
	// transfer other than exclude (the nil UUID excludes nothing).
	ActiveMembers(ctx context.Context, animalIDs []kernel.UUID, exclude kernel.UUID) ([]kernel.UUID, error)
}
