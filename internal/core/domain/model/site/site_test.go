package site_test

import (
	"testing"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/site"
	"livestock/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSite(t *testing.T) {
	t.Run("creates an active site with per-species capacity", func(t *testing.T) {
		s, err := site.NewSite(kernel.NewUUID(), " Abattoir Nord ", "Lille", map[kernel.Species]int{kernel.Bovine: 10})

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.Equal(t, "Abattoir Nord", s.Name())
		assert.True(t, s.IsActive())
		assert.Equal(t, 10, s.Capacity(kernel.Bovine))
		assert.Equal(t, 0, s.Capacity(kernel.Ovine))
		assert.Len(t, s.Capacities(), 4)
	})

	t.Run("joins every validation error", func(t *testing.T) {
		var id kernel.UUID

		s, err := site.NewSite(id, "", "", map[kernel.Species]int{kernel.Ovine: -1})

		require.Error(t, err)
		assert.Nil(t, s)
		assert.ErrorIs(t, err, site.ErrNameIsRequired)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
		assert.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var s site.Site
		var nilSite *site.Site

		assert.Equal(t, site.ErrSiteIsNotConstructed, s.Validate())
		assert.Equal(t, site.ErrSiteIsNotConstructed, nilSite.Validate())
	})
}

func TestSite_EnsureCanHold(t *testing.T) {
	s, err := site.NewSite(kernel.NewUUID(), "S", "", map[kernel.Species]int{kernel.Bovine: 2})
	require.NoError(t, err)

	require.NoError(t, s.EnsureCanHold(kernel.Bovine))
	assert.ErrorIs(t, s.EnsureCanHold(kernel.Caprine), errs.ErrCapacityExceeded)
	assert.ErrorIs(t, s.EnsureCanHold(kernel.UnknownSpecies), errs.ErrValueIsInvalid)

	s.Deactivate()
	assert.ErrorIs(t, s.EnsureCanHold(kernel.Bovine), errs.ErrInvalidState)

	s.Activate()
	assert.NoError(t, s.EnsureCanHold(kernel.Bovine))
}

func TestSite_RemainingCapacity(t *testing.T) {
	s, err := site.NewSite(kernel.NewUUID(), "S", "", map[kernel.Species]int{kernel.Bovine: 10})
	require.NoError(t, err)

	assert.Equal(t, 10, s.RemainingCapacity(kernel.Bovine, 0))
	assert.Equal(t, 7, s.RemainingCapacity(kernel.Bovine, 3))
	assert.Equal(t, 0, s.RemainingCapacity(kernel.Bovine, 12))
	assert.Equal(t, 0, s.RemainingCapacity(kernel.Ovine, 0))
}
