package services_test

import (
	"testing"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCourier(t *testing.T, name string, status courier.Status) *courier.Courier {
	t.Helper()
	location, err := kernel.NewGeoPoint(41.3111, 69.2797)
	require.NoError(t, err)
	c, err := courier.NewCourier(kernel.NewUUID(), name, status, location)
	require.NoError(t, err)
	return c
}

func TestCandidateSelector_Select(t *testing.T) {
	selector := services.NewCandidateSelector()

	t.Run("preserves nearest-first order", func(t *testing.T) {
		near := makeCourier(t, "Aziz", courier.StatusActive)
		far := makeCourier(t, "Bobur", courier.StatusActive)

		eligible, err := selector.Select([]*courier.Courier{near, far}, nil, 5)

		require.NoError(t, err)
		require.Len(t, eligible, 2)
		assert.Same(t, near, eligible[0])
		assert.Same(t, far, eligible[1])
	})

	t.Run("skips inactive and on-break couriers", func(t *testing.T) {
		active := makeCourier(t, "Aziz", courier.StatusActive)
		inactive := makeCourier(t, "Bobur", courier.StatusInactive)
		onBreak := makeCourier(t, "Sardor", courier.StatusOnBreak)

		eligible, err := selector.Select([]*courier.Courier{inactive, active, onBreak}, nil, 5)

		require.NoError(t, err)
		require.Len(t, eligible, 1)
		assert.Same(t, active, eligible[0])
	})

	t.Run("skips couriers at the load cap", func(t *testing.T) {
		loaded := makeCourier(t, "Aziz", courier.StatusActive)
		free := makeCourier(t, "Bobur", courier.StatusActive)
		loads := map[kernel.UUID]int{loaded.ID(): 5, free.ID(): 4}

		eligible, err := selector.Select([]*courier.Courier{loaded, free}, loads, 5)

		require.NoError(t, err)
		require.Len(t, eligible, 1)
		assert.Same(t, free, eligible[0])
	})

	t.Run("zero cap disables load filtering", func(t *testing.T) {
		loaded := makeCourier(t, "Aziz", courier.StatusActive)
		loads := map[kernel.UUID]int{loaded.ID(): 100}

		eligible, err := selector.Select([]*courier.Courier{loaded}, loads, 0)

		require.NoError(t, err)
		assert.Len(t, eligible, 1)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		eligible, err := selector.Select(nil, nil, 5)

		require.NoError(t, err)
		assert.Empty(t, eligible)
	})

	t.Run("fails on invalid courier", func(t *testing.T) {
		var zero courier.Courier

		_, err := selector.Select([]*courier.Courier{&zero}, nil, 5)

		assert.Error(t, err)
	})
}
