package dispatch_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLog(t *testing.T) {
	orderID := kernel.NewUUID()

	l, err := dispatch.NewLog(orderID)

	require.NoError(t, err)
	require.NoError(t, l.Validate())
	assert.True(t, l.OrderID().IsEqual(orderID))
	assert.Equal(t, dispatch.LogSearching, l.Status())
	assert.Nil(t, l.Courier())
	assert.Nil(t, l.Zone())
	assert.Empty(t, l.SearchAttempts())
	assert.Empty(t, l.AssignmentAttempts())
	assert.False(t, l.CreatedAt().IsZero())
}

func TestLog_RecordSearch(t *testing.T) {
	l, err := dispatch.NewLog(kernel.NewUUID())
	require.NoError(t, err)

	require.NoError(t, l.RecordSearch(1000, 0))
	require.NoError(t, l.RecordSearch(1500, 0))
	require.NoError(t, l.RecordSearch(2000, 2))

	attempts := l.SearchAttempts()
	require.Len(t, attempts, 3)
	assert.Equal(t, 1000, attempts[0].RadiusMeters)
	assert.Equal(t, 1500, attempts[1].RadiusMeters)
	assert.Equal(t, 2000, attempts[2].RadiusMeters)
	assert.Equal(t, 2, attempts[2].CouriersFound)
	assert.False(t, attempts[0].Timestamp.IsZero())

	t.Run("rejects invalid values", func(t *testing.T) {
		assert.Error(t, l.RecordSearch(0, 0))
		assert.Error(t, l.RecordSearch(1000, -1))
	})

	t.Run("rejects recording on a finalized log", func(t *testing.T) {
		done, err := dispatch.NewLog(kernel.NewUUID())
		require.NoError(t, err)
		require.NoError(t, done.MarkFailed())

		assert.Error(t, done.RecordSearch(1000, 0))
	})
}

func TestLog_RecordOffer(t *testing.T) {
	l, err := dispatch.NewLog(kernel.NewUUID())
	require.NoError(t, err)

	first := kernel.NewUUID()
	second := kernel.NewUUID()

	require.NoError(t, l.RecordOffer(first, dispatch.OutcomeRejected))
	require.NoError(t, l.RecordOffer(second, dispatch.OutcomeAccepted))

	attempts := l.AssignmentAttempts()
	require.Len(t, attempts, 2)
	assert.True(t, attempts[0].CourierID.IsEqual(first))
	assert.Equal(t, dispatch.OutcomeRejected, attempts[0].Outcome)
	assert.True(t, attempts[1].CourierID.IsEqual(second))
	assert.Equal(t, dispatch.OutcomeAccepted, attempts[1].Outcome)

	t.Run("rejects unknown outcome", func(t *testing.T) {
		assert.Error(t, l.RecordOffer(kernel.NewUUID(), dispatch.Outcome(42)))
	})
}

func TestLog_MarkAssigned(t *testing.T) {
	l, err := dispatch.NewLog(kernel.NewUUID())
	require.NoError(t, err)
	courierID := kernel.NewUUID()

	require.NoError(t, l.MarkAssigned(courierID))

	assert.Equal(t, dispatch.LogAssigned, l.Status())
	require.NotNil(t, l.Courier())
	assert.True(t, l.Courier().IsEqual(courierID))

	t.Run("cannot assign twice", func(t *testing.T) {
		assert.Error(t, l.MarkAssigned(kernel.NewUUID()))
	})

	t.Run("cannot fail an assigned log", func(t *testing.T) {
		assert.Error(t, l.MarkFailed())
	})
}

func TestLog_MarkFailed(t *testing.T) {
	l, err := dispatch.NewLog(kernel.NewUUID())
	require.NoError(t, err)

	require.NoError(t, l.MarkFailed())

	assert.Equal(t, dispatch.LogFailed, l.Status())
	assert.Nil(t, l.Courier())
	assert.Error(t, l.MarkAssigned(kernel.NewUUID()))
}

func TestLog_AttachZone(t *testing.T) {
	l, err := dispatch.NewLog(kernel.NewUUID())
	require.NoError(t, err)

	snap := dispatch.ZoneSnapshot{ZoneID: kernel.NewUUID(), DeliveryFee: 15000, MinimumDeliveryTime: 40}
	l.AttachZone(snap)

	require.NotNil(t, l.Zone())
	assert.Equal(t, snap, *l.Zone())
}

func TestRestoreLog(t *testing.T) {
	id := kernel.NewUUID()
	orderID := kernel.NewUUID()
	courierID := kernel.NewUUID()
	createdAt := time.Now().UTC().Add(-time.Hour)

	searches := []dispatch.SearchAttempt{
		{RadiusMeters: 1000, CouriersFound: 1, Timestamp: createdAt},
	}
	offers := []dispatch.AssignmentAttempt{
		{CourierID: courierID, Outcome: dispatch.OutcomeAccepted, Timestamp: createdAt},
	}

	l, err := dispatch.RestoreLog(id, orderID, &courierID, dispatch.LogAssigned, nil, searches, offers, createdAt)

	require.NoError(t, err)
	require.NoError(t, l.Validate())
	assert.True(t, l.ID().IsEqual(id))
	assert.Equal(t, dispatch.LogAssigned, l.Status())
	assert.Equal(t, searches, l.SearchAttempts())
	assert.Equal(t, offers, l.AssignmentAttempts())
	assert.Equal(t, createdAt, l.CreatedAt())

	t.Run("fails with unknown status", func(t *testing.T) {
		_, err := dispatch.RestoreLog(id, orderID, nil, dispatch.LogUnknown, nil, nil, nil, createdAt)
		require.Error(t, err)
	})
}

func TestLogStatusFromString(t *testing.T) {
	for _, s := range []string{"searching", "assigned", "picked_up", "delivered", "failed"} {
		status, err := dispatch.LogStatusFromString(s)
		require.NoError(t, err)
		assert.Equal(t, s, status.String())
	}

	_, err := dispatch.LogStatusFromString("lost")
	assert.Error(t, err)
}

func TestLog_Validate(t *testing.T) {
	var l *dispatch.Log
	assert.Equal(t, dispatch.ErrLogIsNotConstructed, l.Validate())

	var zero dispatch.Log
	assert.Equal(t, dispatch.ErrLogIsNotConstructed, zero.Validate())
}
