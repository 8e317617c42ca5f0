// Package ports defines the contracts between the dispatch core and its
// infrastructure: repositories, the courier directory and locator, courier
// notification, and the unit of work transaction boundary.
package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order aggregate by its unique identifier.
	// Returns errs.ErrObjectNotFound (wrapped) when no such order exists.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllInPlacedStatus retrieves every order still awaiting a courier.
	// Used by the background sweep that retries auto-assignment.
	GetAllInPlacedStatus(ctx context.Context) ([]*order.Order, error)

	// CountActiveByCourier returns the number of active orders (assigned or
	// picked up) currently bound to the given courier. Used to enforce the
	// per-courier load cap during candidate selection.
	CountActiveByCourier(ctx context.Context, courierID kernel.UUID) (int, error)

	// LockCourierAssignments serializes bindings for one courier. The lock is
	// scoped to the surrounding transaction and released when it ends, so a
	// CountActiveByCourier issued after acquiring it observes every binding
	// committed by runs that held the lock earlier.
	LockCourierAssignments(ctx context.Context, courierID kernel.UUID) error
}
