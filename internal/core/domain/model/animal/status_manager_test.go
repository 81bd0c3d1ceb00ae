package animal_test

import (
	"errors"
	"testing"
	"time"

	"livestock/internal/core/domain/model/animal"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restore(t *testing.T, tag string, status animal.Status) *animal.Animal {
	t.Helper()
	a, err := animal.RestoreAnimal(animal.State{
		ID: kernel.NewUUID(), Tag: tag, Species: kernel.Bovine, Status: status, SiteID: kernel.NewUUID(),
	})
	require.NoError(t, err)
	return a
}

func idsOf(animals ...*animal.Animal) []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(animals))
	for _, a := range animals {
		ids = append(ids, a.ID())
	}
	return ids
}

func TestStatusManager_Change(t *testing.T) {
	manager := animal.NewStatusManager()
	at := now.Add(time.Minute)

	t.Run("moves every animal and groups them by source status", func(t *testing.T) {
		a1 := restore(t, "A1", animal.Alive)
		a2 := restore(t, "A2", animal.InHolding)
		a3 := restore(t, "A3", animal.Alive)
		batch := []*animal.Animal{a1, a2, a3}

		change, err := manager.Change(batch, idsOf(a1, a2, a3, a1), animal.Slaughtered, "finalize STAB-1", "op", at)

		require.NoError(t, err)
		assert.Equal(t, 3, change.Count())
		assert.Equal(t, animal.Slaughtered, change.Target())
		for _, a := range batch {
			assert.Equal(t, animal.Slaughtered, a.Status())
			assert.Equal(t, at, a.UpdatedAt())
		}

		groups := change.Groups()
		require.Len(t, groups, 2)
		assert.Equal(t, animal.Alive, groups[0].From)
		assert.ElementsMatch(t, idsOf(a1, a3), groups[0].AnimalIDs)
		assert.Equal(t, animal.InHolding, groups[1].From)
		assert.Equal(t, idsOf(a2), groups[1].AnimalIDs)
	})

	t.Run("records one audit event per batch", func(t *testing.T) {
		a1 := restore(t, "A1", animal.Alive)

		change, err := manager.Change([]*animal.Animal{a1}, idsOf(a1), animal.Dead, "found dead in pen 3", "vet", at)
		require.NoError(t, err)

		events := change.DomainEvents()
		require.Len(t, events, 1)
		event, ok := events[0].(animal.AnimalStatusChanged)
		require.True(t, ok)
		assert.Equal(t, animal.EventAnimalStatusChanged, event.EventName())
		assert.Equal(t, "found dead in pen 3", event.Reason)
		assert.Equal(t, kernel.Actor("vet"), event.Actor)
		assert.Equal(t, 1, event.Count)
	})

	t.Run("rejects the whole batch and leaves every animal untouched", func(t *testing.T) {
		alive := restore(t, "A1", animal.Alive)
		dead := restore(t, "A2", animal.Dead)
		missing := kernel.NewUUID()
		requested := append(idsOf(alive, dead), missing)

		change, err := manager.Change([]*animal.Animal{alive, dead}, requested, animal.Sold, "sale", "op", at)

		require.Error(t, err)
		assert.Nil(t, change)
		assert.Equal(t, animal.Alive, alive.Status())
		assert.Equal(t, animal.Dead, dead.Status())

		var rejections *errs.RejectionsError
		require.True(t, errors.As(err, &rejections))
		require.Len(t, rejections.Rejections, 2)
		assert.Equal(t, dead.ID().String(), rejections.Rejections[0].ID)
		assert.ErrorIs(t, rejections.Rejections[0].Err, errs.ErrInvalidTransition)
		assert.Equal(t, missing.String(), rejections.Rejections[1].ID)
		assert.ErrorIs(t, rejections.Rejections[1].Err, errs.ErrObjectNotFound)
	})

	t.Run("terminal statuses admit no transition", func(t *testing.T) {
		for _, status := range []animal.Status{animal.Slaughtered, animal.Dead, animal.Sold} {
			a := restore(t, "T", status)

			_, err := manager.Change([]*animal.Animal{a}, idsOf(a), animal.Alive, "undo", "op", at)

			require.ErrorIs(t, err, errs.ErrInvalidTransition, status.String())
		}
	})

	t.Run("validates inputs", func(t *testing.T) {
		a := restore(t, "A1", animal.Alive)

		_, err := manager.Change(nil, nil, animal.Dead, "", "op", at)
		require.ErrorIs(t, err, animal.ErrAnimalIDsAreRequired)

		_, err = manager.Change([]*animal.Animal{a}, idsOf(a), animal.Unknown, "", "op", at)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)

		_, err = manager.Change([]*animal.Animal{a}, idsOf(a), animal.Dead, "", "", at)
		require.ErrorIs(t, err, kernel.ErrActorIsRequired)
		assert.Equal(t, animal.Alive, a.Status())
	})
}
