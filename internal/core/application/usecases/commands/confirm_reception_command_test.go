package commands_test

import (
	"testing"

	"livestock/internal/core/application/usecases/commands"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/transfer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfirmReceptionCommand_ValidInput(t *testing.T) {
	transferID, a1 := kernel.NewUUID(), kernel.NewUUID()
	tags := []string{" FR-9 ", ""}
	confirmation := transfer.Confirmation{
		ReceivedIDs:       []kernel.UUID{a1, a1},
		MissingTags:       tags,
		StrictMissingTags: true,
		Note:              "one calf short",
	}

	cmd, err := commands.NewConfirmReceptionCommand(transferID, confirmation, "carol")
	require.NoError(t, err)
	tags[0] = "changed"

	got := cmd.Confirmation()
	assert.Equal(t, transferID, cmd.TransferID())
	assert.Equal(t, []kernel.UUID{a1}, got.ReceivedIDs)
	assert.Equal(t, []string{" FR-9 ", ""}, got.MissingTags)
	assert.True(t, got.StrictMissingTags)
	assert.Equal(t, "one calf short", got.Note)
	assert.Equal(t, kernel.Actor("carol"), cmd.Actor())
}

func TestNewConfirmReceptionCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewConfirmReceptionCommand(kernel.UUID{}, transfer.Confirmation{}, "")

	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	require.ErrorIs(t, err, kernel.ErrActorIsRequired)
}

func TestConfirmReceptionCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	var cmd commands.ConfirmReceptionCommand

	err := cmd.Validate()

	require.Error(t, err)
	assert.Equal(t, commands.ErrConfirmReceptionCommandIsNotConstructed, err)
}
