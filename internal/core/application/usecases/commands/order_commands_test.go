package commands_test

import (
	"testing"
	"time"

	"livestock/internal/core/application/usecases/commands"
	"livestock/internal/core/domain/model/kernel"
	"livestock/internal/core/domain/model/order"
	"livestock/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	details := orderDetails(t, kernel.NewUUID())

	cmd, err := commands.NewCreateOrderCommand(details, "sales")
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, details, cmd.Details())
	assert.Equal(t, kernel.Actor("sales"), cmd.Actor())

	_, err = commands.NewCreateOrderCommand(details, "")
	require.ErrorIs(t, err, kernel.ErrActorIsRequired)

	var zero commands.CreateOrderCommand
	assert.Equal(t, commands.ErrCreateOrderCommandIsNotConstructed, zero.Validate())
}

func TestNewUpdateOrderCommand(t *testing.T) {
	orderID := kernel.NewUUID()
	details := orderDetails(t, kernel.NewUUID())

	cmd, err := commands.NewUpdateOrderCommand(orderID, details)
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, details, cmd.Details())

	_, err = commands.NewUpdateOrderCommand(kernel.UUID{}, details)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	var zero commands.UpdateOrderCommand
	assert.Equal(t, commands.ErrUpdateOrderCommandIsNotConstructed, zero.Validate())
}

func TestNewSetOrderStatusCommand(t *testing.T) {
	orderID := kernel.NewUUID()
	deliveredOn := time.Date(2031, 5, 2, 0, 0, 0, 0, time.UTC)

	cmd, err := commands.NewSetOrderStatusCommand(orderID, order.Delivered, &deliveredOn, "sales")
	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, orderID, cmd.OrderID())
	assert.Equal(t, order.Delivered, cmd.Target())
	require.NotNil(t, cmd.DeliveredOn())
	assert.Equal(t, deliveredOn, *cmd.DeliveredOn())

	testCases := []struct {
		name   string
		id     kernel.UUID
		target order.Status
		actor  kernel.Actor
		want   error
	}{
		{"unknown status", orderID, order.Unknown, "sales", errs.ErrValueIsInvalid},
		{"missing order", kernel.UUID{}, order.Confirmed, "sales", kernel.ErrUUIDIsNotConstructed},
		{"missing actor", orderID, order.Confirmed, "", kernel.ErrActorIsRequired},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := commands.NewSetOrderStatusCommand(tc.id, tc.target, nil, tc.actor)

			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestNewCancelOrderCommand(t *testing.T) {
	orderID := kernel.NewUUID()

	cmd, err := commands.NewCancelOrderCommand(orderID, "sales")

	require.NoError(t, err)
	assert.Equal(t, order.Cancelled, cmd.Target())
	assert.Nil(t, cmd.DeliveredOn())
}

func TestNewDeleteOrderCommand(t *testing.T) {
	orderID := kernel.NewUUID()

	cmd, err := commands.NewDeleteOrderCommand(orderID)
	require.NoError(t, err)
	assert.Equal(t, orderID, cmd.OrderID())

	_, err = commands.NewDeleteOrderCommand(kernel.UUID{})
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)

	var zero commands.DeleteOrderCommand
	assert.Equal(t, commands.ErrDeleteOrderCommandIsNotConstructed, zero.Validate())
}
