package commands_test

import (
	"testing"
	"time"

	"livestock/internal/core/application/usecases/commands"
	"livestock/internal/core/domain/model/holding"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateHoldingCommand_ValidInput(t *testing.T) {
	siteID := kernel.NewUUID()
	start := time.Date(2031, 3, 4, 6, 0, 0, 0, time.UTC)

	cmd, err := commands.NewCreateHoldingCommand(siteID, kernel.Ovine, start, "lairage 2", "gus")

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, siteID, cmd.SiteID())
	assert.Equal(t, kernel.Ovine, cmd.Species())
	assert.Equal(t, start, cmd.StartAt())
	assert.Equal(t, "lairage 2", cmd.Note())
	assert.Equal(t, kernel.Actor("gus"), cmd.Actor())
}

func TestNewCreateHoldingCommand_InvalidInput(t *testing.T) {
	start := time.Date(2031, 3, 4, 6, 0, 0, 0, time.UTC)

	testCases := []struct {
		name    string
		siteID  kernel.UUID
		species kernel.Species
		start   time.Time
		want    error
	}{
		{"missing site", kernel.UUID{}, kernel.Bovine, start, kernel.ErrUUIDIsNotConstructed},
		{"unknown species", kernel.NewUUID(), kernel.UnknownSpecies, start, errs.ErrValueIsInvalid},
		{"missing start", kernel.NewUUID(), kernel.Bovine, time.Time{}, errs.ErrValueIsRequired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := commands.NewCreateHoldingCommand(tc.siteID, tc.species, tc.start, "", "gus")

			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNewAdmitToHoldingCommand(t *testing.T) {
	sessionID, a1 := kernel.NewUUID(), kernel.NewUUID()

	cmd, err := commands.NewAdmitToHoldingCommand(sessionID, []kernel.UUID{a1, a1}, "gus")
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, sessionID, cmd.SessionID())
	assert.Equal(t, []kernel.UUID{a1}, cmd.AnimalIDs())

	_, err = commands.NewAdmitToHoldingCommand(sessionID, nil, "gus")
	require.ErrorIs(t, err, holding.ErrAnimalIDsAreRequired)

	var zero commands.AdmitToHoldingCommand
	assert.Equal(t, commands.ErrAdmitToHoldingCommandIsNotConstructed, zero.Validate())
}

func TestNewWithdrawFromHoldingCommand(t *testing.T) {
	sessionID, a1, a2 := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	cmd, err := commands.NewWithdrawFromHoldingCommand(sessionID, []kernel.UUID{a2, a1, a2}, "gus")
	require.NoError(t, err)
	assert.Equal(t, []kernel.UUID{a2, a1}, cmd.AnimalIDs())
	assert.Equal(t, kernel.Actor("gus"), cmd.Actor())

	_, err = commands.NewWithdrawFromHoldingCommand(sessionID, []kernel.UUID{}, "")
	require.ErrorIs(t, err, holding.ErrAnimalIDsAreRequired)
	require.ErrorIs(t, err, kernel.ErrActorIsRequired)

	var zero commands.WithdrawFromHoldingCommand
	assert.Equal(t, commands.ErrWithdrawFromHoldingCommandIsNotConstructed, zero.Validate())
}

func TestNewCancelHoldingCommand(t *testing.T) {
	sessionID := kernel.NewUUID()

	cmd, err := commands.NewCancelHoldingCommand(sessionID, "gus")
	require.NoError(t, err)
	assert.Equal(t, sessionID, cmd.SessionID())

	_, err = commands.NewCancelHoldingCommand(kernel.UUID{}, "gus")
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	var zero commands.CancelHoldingCommand
	assert.Equal(t, commands.ErrCancelHoldingCommandIsNotConstructed, zero.Validate())
}
