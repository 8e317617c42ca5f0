package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierDirectory is the read-side contract over the courier roster and
// their last known positions.
type CourierDirectory interface {
	// Get retrieves a courier by its unique identifier.
	// Returns errs.ErrObjectNotFound (wrapped) when no such courier exists.
	Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error)

	// FindNearby returns active couriers within radiusMeters of the given
	// point, ordered nearest-first. An empty result is not an error; an error
	// means the position store itself could not be queried.
	FindNearby(ctx context.Context, point kernel.GeoPoint, radiusMeters int) ([]*courier.Courier, error)
}
