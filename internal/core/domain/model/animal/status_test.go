package animal_test

import (
	"testing"

	"livestock/internal/core/domain/model/animal"
	"livestock/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_TransitionTable(t *testing.T) {
	all := []animal.Status{animal.Alive, animal.InHolding, animal.Slaughtered, animal.Dead, animal.Sold}
	allowed := map[animal.Status]map[animal.Status]bool{
		animal.Alive:     {animal.InHolding: true, animal.Slaughtered: true, animal.Dead: true, animal.Sold: true},
		animal.InHolding: {animal.Alive: true, animal.Slaughtered: true},
	}

	for _, from := range all {
		for _, to := range all {
			t.Run(from.String()+"->"+to.String(), func(t *testing.T) {
				got, err := from.TransitionTo(to)
				if allowed[from][to] {
					require.NoError(t, err)
					assert.Equal(t, to, got)
					return
				}
				require.ErrorIs(t, err, errs.ErrInvalidTransition)
				assert.Equal(t, animal.Unknown, got)
			})
		}
	}
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.False(t, animal.Alive.IsTerminal())
	assert.False(t, animal.InHolding.IsTerminal())
	assert.True(t, animal.Slaughtered.IsTerminal())
	assert.True(t, animal.Dead.IsTerminal())
	assert.True(t, animal.Sold.IsTerminal())
}

func TestParseStatus(t *testing.T) {
	s, err := animal.ParseStatus("in_holding")
	require.NoError(t, err)
	assert.Equal(t, animal.InHolding, s)
	assert.Equal(t, "IN_HOLDING", s.String())

	_, err = animal.ParseStatus("HEALED")
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = animal.Alive.TransitionTo(animal.Unknown)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
