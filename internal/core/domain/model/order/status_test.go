package order_test

import (
	"testing"

	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	cases := map[order.Status]string{
		order.Unknown:   "unknown",
		order.Placed:    "placed",
		order.Assigned:  "assigned",
		order.PickedUp:  "picked_up",
		order.Delivered: "delivered",
		order.Failed:    "failed",
	}

	for status, expected := range cases {
		assert.Equal(t, expected, status.String())
	}

	assert.Equal(t, "unknown", order.Status(99).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("parses valid statuses", func(t *testing.T) {
		for _, s := range []string{"placed", "assigned", "picked_up", "delivered", "failed"} {
			status, err := order.StatusFromString(s)
			require.NoError(t, err)
			assert.Equal(t, s, status.String())
		}
	})

	t.Run("rejects unknown input", func(t *testing.T) {
		_, err := order.StatusFromString("teleported")
		require.Error(t, err)
	})

	t.Run("rejects the unknown literal", func(t *testing.T) {
		_, err := order.StatusFromString("unknown")
		require.Error(t, err)
	})
}

func TestStatus_Validate(t *testing.T) {
	for _, s := range []order.Status{order.Placed, order.Assigned, order.PickedUp, order.Delivered, order.Failed} {
		require.NoError(t, s.Validate())
	}

	require.Error(t, order.Unknown.Validate())
	require.Error(t, order.Status(42).Validate())
}

func TestStatus_Assign(t *testing.T) {
	t.Run("placed can be assigned", func(t *testing.T) {
		next, err := order.Placed.Assign()
		require.NoError(t, err)
		assert.Equal(t, order.Assigned, next)
	})

	t.Run("assigned can be reassigned", func(t *testing.T) {
		next, err := order.Assigned.Assign()
		require.NoError(t, err)
		assert.Equal(t, order.Assigned, next)
	})

	t.Run("other statuses cannot be assigned", func(t *testing.T) {
		for _, s := range []order.Status{order.Unknown, order.PickedUp, order.Delivered, order.Failed} {
			_, err := s.Assign()
			require.Error(t, err, s.String())
		}
	})
}

func TestStatus_PickUpDeliverFail(t *testing.T) {
	t.Run("assigned can be picked up", func(t *testing.T) {
		next, err := order.Assigned.PickUp()
		require.NoError(t, err)
		assert.Equal(t, order.PickedUp, next)
	})

	t.Run("placed cannot be picked up", func(t *testing.T) {
		_, err := order.Placed.PickUp()
		require.Error(t, err)
	})

	t.Run("picked up can be delivered", func(t *testing.T) {
		next, err := order.PickedUp.Deliver()
		require.NoError(t, err)
		assert.Equal(t, order.Delivered, next)
	})

	t.Run("assigned cannot be delivered directly", func(t *testing.T) {
		_, err := order.Assigned.Deliver()
		require.Error(t, err)
	})

	t.Run("non-terminal statuses can fail", func(t *testing.T) {
		for _, s := range []order.Status{order.Placed, order.Assigned, order.PickedUp} {
			next, err := s.Fail()
			require.NoError(t, err, s.String())
			assert.Equal(t, order.Failed, next)
		}
	})

	t.Run("terminal statuses cannot fail", func(t *testing.T) {
		for _, s := range []order.Status{order.Delivered, order.Failed} {
			_, err := s.Fail()
			require.Error(t, err, s.String())
		}
	})
}

func TestStatus_ValidateCanHaveCourier(t *testing.T) {
	require.NoError(t, order.Placed.ValidateCanHaveCourier(false))
	require.Error(t, order.Placed.ValidateCanHaveCourier(true))

	require.NoError(t, order.Assigned.ValidateCanHaveCourier(true))
	require.Error(t, order.Assigned.ValidateCanHaveCourier(false))

	require.NoError(t, order.Delivered.ValidateCanHaveCourier(true))
	require.Error(t, order.PickedUp.ValidateCanHaveCourier(false))

	// a failed order may or may not carry the courier it failed with
	require.NoError(t, order.Failed.ValidateCanHaveCourier(true))
	require.NoError(t, order.Failed.ValidateCanHaveCourier(false))
}
