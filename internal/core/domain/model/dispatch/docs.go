// Package dispatch contains the aggregates of the assignment engine: the
// Config singleton holding the tunable search policy, the Zone service areas,
// and the Log audit trail recording every search and offer made while binding
// an order to a courier.
package dispatch
