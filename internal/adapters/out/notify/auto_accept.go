// Package notify contains courier-facing offer delivery adapters.
package notify

import (
	"context"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/order"
)

// AutoAcceptNotifier accepts every offer on the courier's behalf. It stands in
// for a real mobile push channel: couriers have no client to respond from yet,
// so the first eligible candidate always takes the order.
type AutoAcceptNotifier struct{}

// NewAutoAcceptNotifier creates a notifier that accepts every offer.
func NewAutoAcceptNotifier() *AutoAcceptNotifier {
	return &AutoAcceptNotifier{}
}

// Offer immediately accepts on behalf of the candidate courier.
func (n *AutoAcceptNotifier) Offer(ctx context.Context, _ *courier.Courier, _ *order.Order) (dispatch.Outcome, error) {
	if err := ctx.Err(); err != nil {
		return dispatch.OutcomeTimeout, err
	}

	return dispatch.OutcomeAccepted, nil
}
