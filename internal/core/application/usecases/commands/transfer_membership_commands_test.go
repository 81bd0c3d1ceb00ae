package commands_test

import (
	"testing"

	"livestock/internal/core/application/usecases/commands"
	"livestock/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAddToTransferCommand(t *testing.T) {
	transferID, animalID := kernel.NewUUID(), kernel.NewUUID()

	cmd, err := commands.NewAddToTransferCommand(transferID, animalID, "erin")
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, transferID, cmd.TransferID())
	assert.Equal(t, animalID, cmd.AnimalID())
	assert.Equal(t, kernel.Actor("erin"), cmd.Actor())

	_, err = commands.NewAddToTransferCommand(transferID, kernel.UUID{}, "erin")
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	_, err = commands.NewAddToTransferCommand(transferID, animalID, "")
	require.ErrorIs(t, err, kernel.ErrActorIsRequired)

	var zero commands.AddToTransferCommand
	assert.Equal(t, commands.ErrAddToTransferCommandIsNotConstructed, zero.Validate())
}

func TestNewRemoveFromTransferCommand(t *testing.T) {
	transferID, animalID := kernel.NewUUID(), kernel.NewUUID()

	cmd, err := commands.NewRemoveFromTransferCommand(transferID, animalID)
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, transferID, cmd.TransferID())
	assert.Equal(t, animalID, cmd.AnimalID())

	_, err = commands.NewRemoveFromTransferCommand(kernel.UUID{}, animalID)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	var zero commands.RemoveFromTransferCommand
	assert.Equal(t, commands.ErrRemoveFromTransferCommandIsNotConstructed, zero.Validate())
}
