package kernel_test

import (
	"testing"

	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSpecies(t *testing.T) {
	tests := []struct {
		input    string
		expected kernel.Species
	}{
		{"BOVINE", kernel.Bovine},
		{"ovine", kernel.Ovine},
		{" Caprine ", kernel.Caprine},
		{"OTHER", kernel.OtherSpecies},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			s, err := kernel.ParseSpecies(tt.input)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, s)
			assert.NoError(t, s.Validate())
		})
	}

	t.Run("unknown name", func(t *testing.T) {
		_, err := kernel.ParseSpecies("CAPRIN")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestSpecies_Validate(t *testing.T) {
	assert.Error(t, kernel.UnknownSpecies.Validate())
	assert.Error(t, kernel.Species(42).Validate())
	assert.Equal(t, "UNKNOWN", kernel.Species(42).String())
	assert.Len(t, kernel.AllSpecies(), 4)
}

func TestActor(t *testing.T) {
	a, err := kernel.NewActor("  j.martin ")
	require.NoError(t, err)
	assert.Equal(t, kernel.Actor("j.martin"), a)

	_, err = kernel.NewActor("   ")
	require.ErrorIs(t, err, kernel.ErrActorIsRequired)

	assert.ErrorIs(t, kernel.Actor("").Validate(), kernel.ErrActorIsRequired)
}
