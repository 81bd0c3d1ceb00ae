package queries

import (
	"errors"
	"time"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"
	"livestock/internal/pkg/guard"
)

var (
	ErrGetStaleTransfersQueryIsNotConstructed = errors.New(
		"GetStaleTransfersQuery must be created via NewGetStaleTransfersQuery constructor",
	)
)

// GetStaleTransfersQuery finds IN_TRANSIT transfers dispatched before a cutoff.
// Nothing is changed; stale transfers are only reported.
type GetStaleTransfersQuery struct {
	dispatchedBefore time.Time

	guard guard.ConstructorGuard
}

// NewGetStaleTransfersQuery builds the query for transfers on the road longer
// than olderThan at now.
func NewGetStaleTransfersQuery(olderThan time.Duration, now time.Time) (GetStaleTransfersQuery, error) {
	if olderThan <= 0 {
		return GetStaleTransfersQuery{}, errs.NewValueIsOutOfRangeError("older_than", olderThan, "1ns", "unbounded")
	}
	if now.IsZero() {
		return GetStaleTransfersQuery{}, errs.NewValueIsRequiredError("now")
	}
	return GetStaleTransfersQuery{
		dispatchedBefore: now.Add(-olderThan).UTC(),
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (q GetStaleTransfersQuery) Validate() error {
	return q.guard.Validate(ErrGetStaleTransfersQueryIsNotConstructed)
}

func (q GetStaleTransfersQuery) DispatchedBefore() time.Time { return q.dispatchedBefore }

type GetStaleTransfersQueryResponse struct {
	ID            kernel.UUID
	Serial        string
	SourceID      kernel.UUID
	DestinationID kernel.UUID
	DeclaredCount int
	DispatchedAt  time.Time
}
