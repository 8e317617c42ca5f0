// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"dispatch/internal/pkg/guard"
)

var ErrGetDispatchConfigQueryIsNotConstructed = errors.New(
	"GetDispatchConfigQuery must be created via NewGetDispatchConfigQuery constructor",
)

// GetDispatchConfigQuery retrieves the dispatch policy singleton, creating it
// with the documented defaults on first read.
type GetDispatchConfigQuery struct {
	guard guard.ConstructorGuard
}

// NewGetDispatchConfigQuery creates a query to read the dispatch policy.
func NewGetDispatchConfigQuery() GetDispatchConfigQuery {
	return GetDispatchConfigQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetDispatchConfigQuery) Validate() error {
	return q.guard.Validate(ErrGetDispatchConfigQueryIsNotConstructed)
}
