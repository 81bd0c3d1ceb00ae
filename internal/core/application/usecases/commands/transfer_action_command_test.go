package commands_test

import (
	"testing"

	"livestock/internal/core/application/usecases/commands"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferAction_String(t *testing.T) {
	testCases := map[commands.TransferAction]string{
		commands.DispatchTransfer:      "dispatch",
		commands.CancelTransfer:        "cancel",
		commands.BeginReception:        "begin reception",
		commands.CancelReception:       "cancel reception",
		commands.UnknownTransferAction: "unknown",
	}

	for action, want := range testCases {
		assert.Equal(t, want, action.String())
	}
}

func TestNewTransferActionCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()

	cmd, err := commands.NewTransferActionCommand(id, commands.CancelTransfer, "truck broke down", "dan")

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, id, cmd.TransferID())
	assert.Equal(t, commands.CancelTransfer, cmd.Action())
	assert.Equal(t, "truck broke down", cmd.Reason())
	assert.Equal(t, kernel.Actor("dan"), cmd.Actor())
}

func TestNewTransferActionCommand_InvalidInput(t *testing.T) {
	testCases := []struct {
		name   string
		id     kernel.UUID
		action commands.TransferAction
		actor  kernel.Actor
		want   error
	}{
		{"unknown action", kernel.NewUUID(), commands.UnknownTransferAction, "dan", errs.ErrValueIsInvalid},
		{"out of range action", kernel.NewUUID(), commands.TransferAction(42), "dan", errs.ErrValueIsInvalid},
		{"missing transfer", kernel.UUID{}, commands.DispatchTransfer, "dan", kernel.ErrUUIDIsNotConstructed},
		{"missing actor", kernel.NewUUID(), commands.DispatchTransfer, "", kernel.ErrActorIsRequired},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := commands.NewTransferActionCommand(tc.id, tc.action, "", tc.actor)

			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestTransferActionCommand_Validate_WhenNotConstructed_ShouldReturnError(t *testing.T) {
	var cmd commands.TransferActionCommand

	err := cmd.Validate()

	require.Error(t, err)
	assert.Equal(t, commands.ErrTransferActionCommandIsNotConstructed, err)
}
