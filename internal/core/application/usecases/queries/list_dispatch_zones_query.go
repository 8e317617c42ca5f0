package queries

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrListDispatchZonesQueryIsNotConstructed = errors.New(
	"ListDispatchZonesQuery must be created via NewListDispatchZonesQuery constructor",
)

// ListDispatchZonesQuery retrieves every delivery zone, active or not,
// sorted by name.
type ListDispatchZonesQuery struct {
	guard guard.ConstructorGuard
}

// NewListDispatchZonesQuery creates a query to list all zones.
func NewListDispatchZonesQuery() ListDispatchZonesQuery {
	return ListDispatchZonesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListDispatchZonesQuery) Validate() error {
	return q.guard.Validate(ErrListDispatchZonesQueryIsNotConstructed)
}

// ListDispatchZonesQueryResponse represents one zone in the read model.
type ListDispatchZonesQueryResponse struct {
	ID                  kernel.UUID
	Name                string
	Boundary            [][2]float64
	DeliveryFee         float64
	MinimumDeliveryTime int
	Active              bool
}
