package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrListDispatchLogsQueryIsNotConstructed = errors.New(
	"ListDispatchLogsQuery must be created via NewListDispatchLogsQuery constructor",
)

// ListDispatchLogsQuery retrieves assignment audit trails, newest first,
// optionally filtered by status and creation time window.
type ListDispatchLogsQuery struct { //nolint:recvcheck //using for validation
	status *dispatch.LogStatus
	from   *time.Time
	to     *time.Time

	guard guard.ConstructorGuard
}

// NewListDispatchLogsQuery creates a query to list audit trails. Each filter
// is optional; nil means unfiltered.
func NewListDispatchLogsQuery(status *dispatch.LogStatus, from, to *time.Time) (ListDispatchLogsQuery, error) {
	q := ListDispatchLogsQuery{
		status: status,
		from:   from,
		to:     to,
		guard:  guard.NewConstructorGuard(),
	}

	if status != nil {
		if err := status.Validate(); err != nil {
			return ListDispatchLogsQuery{}, err
		}
	}

	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q ListDispatchLogsQuery) Validate() error {
	return q.guard.Validate(ErrListDispatchLogsQueryIsNotConstructed)
}

// Status returns the optional status filter.
func (q ListDispatchLogsQuery) Status() *dispatch.LogStatus {
	return q.status
}

// From returns the optional window start.
func (q ListDispatchLogsQuery) From() *time.Time {
	return q.from
}

// To returns the optional window end.
func (q ListDispatchLogsQuery) To() *time.Time {
	return q.to
}

// SearchAttemptResponse is one radius query in the read model.
type SearchAttemptResponse struct {
	RadiusMeters  int
	CouriersFound int
	Timestamp     time.Time
}

// AssignmentAttemptResponse is one candidate offer in the read model.
type AssignmentAttemptResponse struct {
	CourierID kernel.UUID
	Outcome   string
	Timestamp time.Time
}

// ListDispatchLogsQueryResponse represents one audit trail in the read model.
type ListDispatchLogsQueryResponse struct {
	ID                  kernel.UUID
	OrderID             kernel.UUID
	CourierID           *kernel.UUID
	Status              string
	ZoneID              *kernel.UUID
	DeliveryFee         *float64
	MinimumDeliveryTime *int
	SearchAttempts      []SearchAttemptResponse
	AssignmentAttempts  []AssignmentAttemptResponse
	CreatedAt           time.Time
}
