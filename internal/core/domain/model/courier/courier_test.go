package courier_test

import (
	"testing"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCourier(t *testing.T) {
	id := kernel.NewUUID()
	location, _ := kernel.NewGeoPoint(41.3111, 69.2797)

	t.Run("creates valid courier", func(t *testing.T) {
		c, err := courier.NewCourier(id, "Aziz", courier.StatusActive, location)

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.True(t, c.ID().IsEqual(id))
		assert.Equal(t, "Aziz", c.Name())
		assert.True(t, c.IsActive())
		assert.Equal(t, location, c.Location())
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := courier.NewCourier(id, "", courier.StatusActive, location)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "name")
	})

	t.Run("fails with unknown status", func(t *testing.T) {
		_, err := courier.NewCourier(id, "Aziz", courier.StatusUnknown, location)
		require.Error(t, err)
	})

	t.Run("fails with invalid location", func(t *testing.T) {
		var invalid kernel.GeoPoint
		_, err := courier.NewCourier(id, "Aziz", courier.StatusActive, invalid)
		require.Error(t, err)
	})
}

func TestCourier_IsActive(t *testing.T) {
	id := kernel.NewUUID()
	location, _ := kernel.NewGeoPoint(41.3111, 69.2797)

	inactive, _ := courier.NewCourier(id, "Aziz", courier.StatusInactive, location)
	assert.False(t, inactive.IsActive())

	onBreak, _ := courier.NewCourier(id, "Aziz", courier.StatusOnBreak, location)
	assert.False(t, onBreak.IsActive())
}

func TestCourierStatus_String(t *testing.T) {
	assert.Equal(t, "active", courier.StatusActive.String())
	assert.Equal(t, "inactive", courier.StatusInactive.String())
	assert.Equal(t, "on_break", courier.StatusOnBreak.String())
	assert.Equal(t, "unknown", courier.Status(42).String())
}

func TestCourier_Validate(t *testing.T) {
	var c *courier.Courier
	assert.Equal(t, courier.ErrCourierIsNotConstructed, c.Validate())

	var zero courier.Courier
	assert.Equal(t, courier.ErrCourierIsNotConstructed, zero.Validate())
}
