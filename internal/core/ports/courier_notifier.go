package ports

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/order"
)

// CourierNotifier delivers an order offer to a courier and reports the
// courier's decision.
type CourierNotifier interface {
	// Offer proposes the order to the courier and blocks until the courier
	// responds or ctx expires. The returned outcome is Accepted, Rejected or
	// Timeout; an error means the offer could not be delivered at all, which
	// the engine treats the same as a rejection.
	Offer(ctx context.Context, candidate *courier.Courier, aggregate *order.Order) (dispatch.Outcome, error)
}
