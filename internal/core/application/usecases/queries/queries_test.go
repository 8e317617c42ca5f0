package queries_test

import (
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/dispatch"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetDispatchConfigQuery_Valid(t *testing.T) {
	query := queries.NewGetDispatchConfigQuery()
	require.NoError(t, query.Validate())
}

func TestGetDispatchConfigQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.GetDispatchConfigQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetDispatchConfigQueryIsNotConstructed)
}

func TestNewListDispatchZonesQuery_Valid(t *testing.T) {
	query := queries.NewListDispatchZonesQuery()
	require.NoError(t, query.Validate())
}

func TestListDispatchZonesQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.ListDispatchZonesQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrListDispatchZonesQueryIsNotConstructed)
}

func TestNewListDispatchLogsQuery(t *testing.T) {
	t.Run("accepts nil filters", func(t *testing.T) {
		query, err := queries.NewListDispatchLogsQuery(nil, nil, nil)

		require.NoError(t, err)
		require.NoError(t, query.Validate())
		assert.Nil(t, query.Status())
		assert.Nil(t, query.From())
		assert.Nil(t, query.To())
	})

	t.Run("carries provided filters", func(t *testing.T) {
		status := dispatch.LogFailed
		from := time.Now().Add(-time.Hour)
		to := time.Now()

		query, err := queries.NewListDispatchLogsQuery(&status, &from, &to)

		require.NoError(t, err)
		assert.Equal(t, dispatch.LogFailed, *query.Status())
		assert.Equal(t, from, *query.From())
		assert.Equal(t, to, *query.To())
	})

	t.Run("rejects unknown status", func(t *testing.T) {
		status := dispatch.LogStatus(42)

		_, err := queries.NewListDispatchLogsQuery(&status, nil, nil)

		require.Error(t, err)
	})
}

func TestListDispatchLogsQuery_NotConstructedViaConstructor(t *testing.T) {
	query := queries.ListDispatchLogsQuery{}
	err := query.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrListDispatchLogsQueryIsNotConstructed)
}

func TestNewListUnassignedOrdersQuery_Valid(t *testing.T) {
	query := queries.NewListUnassignedOrdersQuery()
	require.NoError(t, query.Validate())
}
