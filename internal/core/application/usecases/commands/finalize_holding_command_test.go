package commands_test

import (
	"testing"

	"livestock/internal/core/application/usecases/commands"
	"livestock/internal/core/domain/model/holding"
	"livestock/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFinalizeHoldingCommand_ClonesRecords(t *testing.T) {
	sessionID, animalID := kernel.NewUUID(), kernel.NewUUID()
	records := map[kernel.UUID]holding.SlaughterRecord{
		animalID: {HotWeight: 312.5, PostSlaughterTag: "PA-77"},
	}

	cmd, err := commands.NewFinalizeHoldingCommand(sessionID, records, "bob")
	require.NoError(t, err)

	records[animalID] = holding.SlaughterRecord{HotWeight: 1}
	got := cmd.Records()
	delete(got, animalID)

	assert.Equal(t, sessionID, cmd.SessionID())
	assert.Equal(t, kernel.Actor("bob"), cmd.Actor())
	assert.Equal(t, holding.SlaughterRecord{HotWeight: 312.5, PostSlaughterTag: "PA-77"}, cmd.Records()[animalID])
}

func TestNewFinalizeHoldingCommand_NilRecordsYieldEmptyMap(t *testing.T) {
	cmd, err := commands.NewFinalizeHoldingCommand(kernel.NewUUID(), nil, "bob")

	require.NoError(t, err)
	assert.NotNil(t, cmd.Records())
	assert.Empty(t, cmd.Records())
}

func TestNewFinalizeHoldingCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewFinalizeHoldingCommand(kernel.UUID{}, nil, "")

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	require.ErrorIs(t, err, kernel.ErrActorIsRequired)
}

func TestFinalizeHoldingCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	// Arrange
	var cmd commands.FinalizeHoldingCommand

	// Act
	err := cmd.Validate()

	// Assert
	require.Error(t, err)
	assert.Equal(t, commands.ErrFinalizeHoldingCommandIsNotConstructed, err)
}
