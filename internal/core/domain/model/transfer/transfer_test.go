package transfer_test

import (
	"errors"
	"testing"
	"time"

	"livestock/internal/core/domain/model/animal"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/transfer"
	"livestock/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)

type fixture struct {
	source      kernel.UUID
	destination kernel.UUID
	animals     []*animal.Animal
}

func newFixture(t *testing.T, n int) fixture {
	t.Helper()
	f := fixture{source: kernel.NewUUID(), destination: kernel.NewUUID()}
	for i := range n {
		a, err := animal.NewAnimal(kernel.NewUUID(), "tag-A"+string(rune('1'+i)), kernel.Bovine, animal.Female, 480, f.source, now)
		require.NoError(t, err)
		f.animals = append(f.animals, a)
	}
	return f
}

func seed() transfer.Seed {
	return transfer.Seed{
		ID:              kernel.NewUUID(),
		Serial:          "TRF-20250602-090000-001",
		ReceptionID:     kernel.NewUUID(),
		ReceptionSerial: "REC-20250602-090000-001",
	}
}

func (f fixture) create(t *testing.T) *transfer.Transfer {
	t.Helper()
	tr, err := transfer.NewTransfer(seed(), f.source, f.destination, f.animals, len(f.animals), "restocking", "op", now)
	require.NoError(t, err)
	return tr
}

func (f fixture) ids(indexes ...int) []kernel.UUID {
	out := make([]kernel.UUID, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, f.animals[i].ID())
	}
	return out
}

func TestNewTransfer(t *testing.T) {
	t.Run("creates an open transfer with a pending reception", func(t *testing.T) {
		f := newFixture(t, 3)

		tr := f.create(t)

		assert.Equal(t, transfer.Open, tr.Status())
		assert.Equal(t, 3, tr.DeclaredCount())
		assert.Equal(t, transfer.ReceptionPending, tr.Reception().Status())
		assert.Equal(t, 3, tr.Reception().ExpectedCount())
		for _, m := range tr.Members() {
			assert.Equal(t, transfer.OutcomePending, m.Outcome())
			assert.Equal(t, kernel.Actor("op"), m.AddedBy())
		}
		events := tr.DomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, transfer.EventTransferCreated, events[0].EventName())
	})

	t.Run("collapses repeated animals before checking the declared count", func(t *testing.T) {
		f := newFixture(t, 2)
		animals := append(f.animals, f.animals[0])

		tr, err := transfer.NewTransfer(seed(), f.source, f.destination, animals, 2, "", "op", now)

		require.NoError(t, err)
		assert.Len(t, tr.Members(), 2)

		_, err = transfer.NewTransfer(seed(), f.source, f.destination, animals, 3, "", "op", now)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("rejects same source and destination", func(t *testing.T) {
		f := newFixture(t, 1)

		_, err := transfer.NewTransfer(seed(), f.source, f.source, f.animals, 1, "", "op", now)

		require.ErrorIs(t, err, transfer.ErrSameSourceAndDestination)
	})

	t.Run("rejects animals that are not alive at the source", func(t *testing.T) {
		f := newFixture(t, 2)
		require.NoError(t, f.animals[1].Relocate(kernel.NewUUID(), now))

		_, err := transfer.NewTransfer(seed(), f.source, f.destination, f.animals, 2, "", "op", now)

		var rejections *errs.RejectionsError
		require.True(t, errors.As(err, &rejections))
		require.Len(t, rejections.Rejections, 1)
		assert.Equal(t, f.animals[1].ID().String(), rejections.Rejections[0].ID)
		assert.ErrorIs(t, err, errs.ErrPredicateFailed)
	})

	t.Run("requires animals and a declared count of at least one", func(t *testing.T) {
		f := newFixture(t, 0)

		_, err := transfer.NewTransfer(seed(), f.source, f.destination, nil, 0, "", "op", now)

		require.ErrorIs(t, err, transfer.ErrAnimalsAreRequired)
	})
}

func TestTransfer_AddRemove(t *testing.T) {
	f := newFixture(t, 2)
	tr, err := transfer.NewTransfer(seed(), f.source, f.destination, f.animals[:1], 1, "", "op", now)
	require.NoError(t, err)

	require.NoError(t, tr.Add(f.animals[1], "op2", now))
	assert.Equal(t, 2, tr.DeclaredCount())
	assert.Equal(t, 2, tr.Reception().ExpectedCount())

	require.ErrorIs(t, tr.Add(f.animals[1], "op2", now), errs.ErrPredicateFailed)

	require.NoError(t, tr.Remove(f.animals[0].ID()))
	assert.Equal(t, 1, tr.DeclaredCount())
	assert.Equal(t, 1, tr.Reception().ExpectedCount())

	require.ErrorIs(t, tr.Remove(f.animals[0].ID()), errs.ErrPredicateFailed)
	require.ErrorIs(t, tr.Remove(f.animals[1].ID()), transfer.ErrLastMember)

	require.NoError(t, tr.Dispatch("op", now))
	other := newFixture(t, 1)
	require.ErrorIs(t, tr.Add(other.animals[0], "op", now), errs.ErrInvalidState)
	require.ErrorIs(t, tr.Remove(f.animals[1].ID()), errs.ErrInvalidState)
}

func TestTransfer_Dispatch(t *testing.T) {
	f := newFixture(t, 2)
	tr := f.create(t)

	require.NoError(t, tr.Dispatch("driver", now))

	assert.Equal(t, transfer.InTransit, tr.Status())
	assert.Equal(t, transfer.ReceptionEnRoute, tr.Reception().Status())
	require.NotNil(t, tr.DispatchedAt())
	for _, a := range f.animals {
		assert.Equal(t, animal.Alive, a.Status())
		assert.True(t, a.SiteID().IsEqual(f.source))
	}

	require.ErrorIs(t, tr.Dispatch("driver", now), errs.ErrInvalidState)
}

func TestTransfer_Cancel(t *testing.T) {
	f := newFixture(t, 2)
	tr := f.create(t)

	require.NoError(t, tr.Cancel("op", " wrong lot ", now))

	assert.Equal(t, transfer.Cancelled, tr.Status())
	assert.Equal(t, "wrong lot", tr.CancelReason())
	assert.Equal(t, transfer.ReceptionCancelled, tr.Reception().Status())

	require.ErrorIs(t, tr.Cancel("op", "again", now), errs.ErrInvalidState)
	assert.Equal(t, "wrong lot", tr.CancelReason())

	t.Run("source cannot cancel once dispatched", func(t *testing.T) {
		dispatched := newFixture(t, 1).create(t)
		require.NoError(t, dispatched.Dispatch("op", now))

		require.ErrorIs(t, dispatched.Cancel("op", "", now), errs.ErrInvalidState)
	})
}

func TestTransfer_ConfirmReception(t *testing.T) {
	t.Run("short reception is PARTIAL", func(t *testing.T) {
		f := newFixture(t, 5)
		tr := f.create(t)
		require.NoError(t, tr.Dispatch("op", now))

		received, err := tr.ConfirmReception(transfer.Confirmation{
			ReceivedIDs: f.ids(0, 1, 2),
			MissingTags: []string{"tag-A4", "tag-A5"},
		}, "dest", now)

		require.NoError(t, err)
		assert.Equal(t, f.ids(0, 1, 2), received)
		assert.Equal(t, transfer.Delivered, tr.Status())
		r := tr.Reception()
		assert.Equal(t, transfer.ReceptionPartial, r.Status())
		assert.Equal(t, 3, r.ReceivedCount())
		assert.Equal(t, 2, r.MissingCount())
		assert.Equal(t, []string{"tag-A4", "tag-A5"}, r.MissingTags())
		assert.Equal(t, kernel.Actor("dest"), r.ValidatedBy())

		outcomes := map[transfer.Outcome]int{}
		for _, m := range tr.Members() {
			outcomes[m.Outcome()]++
		}
		assert.Equal(t, 3, outcomes[transfer.OutcomeReceived])
		assert.Equal(t, 2, outcomes[transfer.OutcomeMissing])
	})

	t.Run("full reception after begin is RECEIVED", func(t *testing.T) {
		f := newFixture(t, 2)
		tr := f.create(t)
		require.NoError(t, tr.Dispatch("op", now))
		require.NoError(t, tr.BeginReception("dest", now))
		assert.Equal(t, transfer.ReceptionInProgress, tr.Reception().Status())

		_, err := tr.ConfirmReception(transfer.Confirmation{ReceivedIDs: f.ids(0, 1)}, "dest", now)

		require.NoError(t, err)
		assert.Equal(t, transfer.ReceptionReceived, tr.Reception().Status())
	})

	t.Run("zero receipt requires explicit confirmation", func(t *testing.T) {
		f := newFixture(t, 2)
		tr := f.create(t)
		require.NoError(t, tr.Dispatch("op", now))

		_, err := tr.ConfirmReception(transfer.Confirmation{}, "dest", now)
		require.ErrorIs(t, err, transfer.ErrZeroReceiptNotConfirmed)
		assert.Equal(t, transfer.InTransit, tr.Status())

		_, err = tr.ConfirmReception(transfer.Confirmation{ConfirmZeroReceipt: true}, "dest", now)
		require.NoError(t, err)
		assert.Equal(t, transfer.ReceptionReceived, tr.Reception().Status())
		assert.Equal(t, 0, tr.Reception().ReceivedCount())
	})

	t.Run("an animal cannot be both received and missing", func(t *testing.T) {
		f := newFixture(t, 2)
		tr := f.create(t)
		require.NoError(t, tr.Dispatch("op", now))

		_, err := tr.ConfirmReception(transfer.Confirmation{
			ReceivedIDs: f.ids(0, 1),
			MissingTags: []string{"tag-A1"},
		}, "dest", now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Equal(t, transfer.InTransit, tr.Status())
		assert.Equal(t, transfer.ReceptionEnRoute, tr.Reception().Status())
	})

	t.Run("received ids must be members", func(t *testing.T) {
		f := newFixture(t, 2)
		tr := f.create(t)
		require.NoError(t, tr.Dispatch("op", now))

		_, err := tr.ConfirmReception(transfer.Confirmation{ReceivedIDs: []kernel.UUID{kernel.NewUUID()}}, "dest", now)

		require.ErrorIs(t, err, errs.ErrPredicateFailed)
	})

	t.Run("unknown missing tags are kept unless strict", func(t *testing.T) {
		f := newFixture(t, 2)
		tr := f.create(t)
		require.NoError(t, tr.Dispatch("op", now))
		confirmation := transfer.Confirmation{ReceivedIDs: f.ids(0), MissingTags: []string{"ear tag lost"}}

		confirmation.StrictMissingTags = true
		_, err := tr.ConfirmReception(confirmation, "dest", now)
		require.ErrorIs(t, err, errs.ErrPredicateFailed)

		confirmation.StrictMissingTags = false
		_, err = tr.ConfirmReception(confirmation, "dest", now)
		require.NoError(t, err)
		assert.Equal(t, []string{"ear tag lost"}, tr.Reception().MissingTags())
	})

	t.Run("missing tags are stored as given", func(t *testing.T) {
		f := newFixture(t, 3)
		tr := f.create(t)
		require.NoError(t, tr.Dispatch("op", now))
		given := []string{" tag-A2 ", "", "lost calf"}

		_, err := tr.ConfirmReception(transfer.Confirmation{ReceivedIDs: f.ids(0), MissingTags: given}, "dest", now)

		require.NoError(t, err)
		r := tr.Reception()
		assert.Equal(t, given, r.MissingTags())
		assert.Equal(t, 3, r.MissingCount())
	})

	t.Run("padded missing tags still match members", func(t *testing.T) {
		f := newFixture(t, 2)
		tr := f.create(t)
		require.NoError(t, tr.Dispatch("op", now))

		_, err := tr.ConfirmReception(transfer.Confirmation{
			ReceivedIDs:       f.ids(0, 1),
			MissingTags:       []string{" tag-A2 "},
			StrictMissingTags: true,
		}, "dest", now)

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("strict confirmation refuses blank tags", func(t *testing.T) {
		f := newFixture(t, 2)
		tr := f.create(t)
		require.NoError(t, tr.Dispatch("op", now))

		_, err := tr.ConfirmReception(transfer.Confirmation{
			ReceivedIDs:       f.ids(0),
			MissingTags:       []string{"tag-A2", "  "},
			StrictMissingTags: true,
		}, "dest", now)

		require.ErrorIs(t, err, errs.ErrPredicateFailed)
	})

	t.Run("a confirmed reception cannot be confirmed again", func(t *testing.T) {
		f := newFixture(t, 1)
		tr := f.create(t)
		_, err := tr.ConfirmReception(transfer.Confirmation{ReceivedIDs: f.ids(0)}, "dest", now)
		require.NoError(t, err)

		_, err = tr.ConfirmReception(transfer.Confirmation{ReceivedIDs: f.ids(0)}, "dest", now)
		require.ErrorIs(t, err, errs.ErrInvalidState)
	})
}

func TestTransfer_CancelReception(t *testing.T) {
	t.Run("cascades to an in-transit transfer", func(t *testing.T) {
		f := newFixture(t, 5)
		tr := f.create(t)
		require.NoError(t, tr.Dispatch("op", now))
		tr.ClearDomainEvents()

		require.NoError(t, tr.CancelReception("dest", "accident", now))

		assert.Equal(t, transfer.ReceptionCancelled, tr.Reception().Status())
		assert.Equal(t, transfer.Cancelled, tr.Status())
		assert.Equal(t, "accident", tr.Reception().CancelReason())
		events := tr.DomainEvents()
		require.Len(t, events, 1)
		cancelled, ok := events[0].(transfer.TransferCancelled)
		require.True(t, ok)
		assert.True(t, cancelled.ByReception)
	})

	t.Run("is refused once the reception is closed", func(t *testing.T) {
		f := newFixture(t, 1)
		tr := f.create(t)
		require.NoError(t, tr.CancelReception("dest", "", now))

		require.ErrorIs(t, tr.CancelReception("dest", "", now), errs.ErrInvalidState)
		require.ErrorIs(t, tr.BeginReception("dest", now), errs.ErrInvalidState)
	})
}
