package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrListUnassignedOrdersQueryIsNotConstructed = errors.New(
	"ListUnassignedOrdersQuery must be created via NewListUnassignedOrdersQuery constructor",
)

// ListUnassignedOrdersQuery retrieves the orders still waiting for a courier.
// Used by the background sweep to pick up orders whose earlier assignment
// runs exhausted the search.
type ListUnassignedOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewListUnassignedOrdersQuery creates a query to list unassigned orders.
func NewListUnassignedOrdersQuery() ListUnassignedOrdersQuery {
	return ListUnassignedOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListUnassignedOrdersQuery) Validate() error {
	return q.guard.Validate(ErrListUnassignedOrdersQueryIsNotConstructed)
}

// ListUnassignedOrdersQueryResponse represents one waiting order.
type ListUnassignedOrdersQueryResponse struct {
	ID        kernel.UUID
	Latitude  float64
	Longitude float64
}
