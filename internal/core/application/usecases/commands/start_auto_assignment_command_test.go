package commands_test

import (
	"testing"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewStartAutoAssignmentCommand(t *testing.T) {
	t.Run("creates valid command", func(t *testing.T) {
		orderID := kernel.NewUUID()

		cmd, err := commands.NewStartAutoAssignmentCommand(orderID)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
	})

	t.Run("fails with zero order id", func(t *testing.T) {
		var zero kernel.UUID

		_, err := commands.NewStartAutoAssignmentCommand(zero)

		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.StartAutoAssignmentCommand

		assert.Equal(t, commands.ErrStartAutoAssignmentCommandIsNotConstructed, cmd.Validate())
	})
}

func TestNewAssignOrderCommand(t *testing.T) {
	t.Run("creates valid command", func(t *testing.T) {
		orderID := kernel.NewUUID()
		courierID := kernel.NewUUID()

		cmd, err := commands.NewAssignOrderCommand(orderID, courierID)

		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.True(t, cmd.OrderID().IsEqual(orderID))
		assert.True(t, cmd.CourierID().IsEqual(courierID))
	})

	t.Run("fails with zero ids", func(t *testing.T) {
		var zero kernel.UUID

		_, err := commands.NewAssignOrderCommand(zero, kernel.NewUUID())
		require.Error(t, err)

		_, err = commands.NewAssignOrderCommand(kernel.NewUUID(), zero)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.AssignOrderCommand

		assert.Equal(t, commands.ErrAssignOrderCommandIsNotConstructed, cmd.Validate())
	})
}

func TestNewCreateDispatchZoneCommand(t *testing.T) {
	t.Run("fails with empty name", func(t *testing.T) {
		_, err := commands.NewCreateDispatchZoneCommand(kernel.NewUUID(), "", nil, 0, 0)
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.CreateDispatchZoneCommand

		assert.Equal(t, commands.ErrCreateDispatchZoneCommandIsNotConstructed, cmd.Validate())
	})
}

func TestNewUpdateDispatchZoneCommand(t *testing.T) {
	t.Run("fails with zero zone id", func(t *testing.T) {
		var zero kernel.UUID

		_, err := commands.NewUpdateDispatchZoneCommand(zero, commands.ZonePatch{})
		require.Error(t, err)
	})

	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.UpdateDispatchZoneCommand

		assert.Equal(t, commands.ErrUpdateDispatchZoneCommandIsNotConstructed, cmd.Validate())
	})
}

func TestNewUpsertDispatchConfigCommand(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var cmd commands.UpsertDispatchConfigCommand

		assert.Equal(t, commands.ErrUpsertDispatchConfigCommandIsNotConstructed, cmd.Validate())
	})
}
