package queries

import (
	"context"
	"time"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/transfer"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetStaleTransfersQueryHandler struct {
	db *gorm.DB
}

func NewGetStaleTransfersQueryHandler(db *gorm.DB) GetStaleTransfersQueryHandler {
	return GetStaleTransfersQueryHandler{db: db}
}

type staleTransferRow struct {
	ID            uuid.UUID
	Serial        string
	SourceID      uuid.UUID
	DestinationID uuid.UUID
	DeclaredCount int
	DispatchedAt  time.Time
}

// Handle returns the stale transfers, oldest dispatch first.
func (h GetStaleTransfersQueryHandler) Handle(
	ctx context.Context,
	query GetStaleTransfersQuery,
) ([]GetStaleTransfersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []staleTransferRow
	err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			serial,
			source_id,
			destination_id,
			declared_count,
			dispatched_at
		FROM transfers
		WHERE status = ? AND dispatched_at < ?
		ORDER BY dispatched_at, serial
	`, transfer.InTransit.String(), query.DispatchedBefore()).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]GetStaleTransfersQueryResponse, 0, len(rows))
	for _, row := range rows {
		id, idErr := kernel.UUIDFromBytes(row.ID[:])
		if idErr != nil {
			return nil, idErr
		}
		sourceID, idErr := kernel.UUIDFromBytes(row.SourceID[:])
		if idErr != nil {
			return nil, idErr
		}
		destinationID, idErr := kernel.UUIDFromBytes(row.DestinationID[:])
		if idErr != nil {
			return nil, idErr
		}
		out = append(out, GetStaleTransfersQueryResponse{
			ID:            id,
			Serial:        row.Serial,
			SourceID:      sourceID,
			DestinationID: destinationID,
			DeclaredCount: row.DeclaredCount,
			DispatchedAt:  row.DispatchedAt.UTC(),
		})
	}
	return out, nil
}
