package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions so orders follow
// the delivery workflow.
//
// State transitions:
//
//	Placed ──┬──> Assigned ──> PickedUp ──> Delivered
//	         │        │           │
//	         │        └───────────┴──> Failed
//	         └──> Failed
//	    (reassignment Assigned -> Assigned allowed)
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Placed is the initial status when an order enters the system.
	// Orders in this status are waiting for courier assignment.
	Placed

	// Assigned indicates the order has been bound to a courier.
	// Orders can be reassigned while in this status.
	Assigned

	// PickedUp indicates the courier has collected the order.
	PickedUp

	// Delivered indicates the order reached the customer.
	// This is a final state with no further transitions allowed.
	Delivered

	// Failed indicates the delivery was abandoned.
	// This is a final state with no further transitions allowed.
	Failed
)

// getStatusStrings maps Status values to their wire representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Placed:    "placed",
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		Delivered: "delivered",
		Failed:    "failed",
	}
}

// StatusFromString parses a wire representation into a Status.
// Returns an error for unrecognized input.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid order status", s))
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if s == Unknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire representation of the status.
// Implements fmt.Stringer; safe to call on any value.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ValidateAssign checks if the status allows courier assignment without
// performing the transition. Placed orders can be assigned and Assigned
// orders can be reassigned; terminal and in-flight states cannot.
func (s Status) ValidateAssign() error {
	if s != Placed && s != Assigned {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to assign", s))
	}
	return nil
}

// Assign transitions the status to Assigned.
//
// Valid transitions:
//   - Placed -> Assigned (initial binding)
//   - Assigned -> Assigned (reassignment to a different courier)
func (s Status) Assign() (Status, error) {
	if err := s.ValidateAssign(); err != nil {
		return 0, err
	}

	return Assigned, nil
}

// PickUp transitions the status to PickedUp.
// Only Assigned orders can be picked up.
func (s Status) PickUp() (Status, error) {
	if s != Assigned {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to pick up", s))
	}

	return PickedUp, nil
}

// Deliver transitions the status to Delivered.
// Only PickedUp orders can be delivered. Delivered is final.
func (s Status) Deliver() (Status, error) {
	if s != PickedUp {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to deliver", s))
	}

	return Delivered, nil
}

// Fail transitions the status to Failed.
// Any non-terminal status can fail. Failed is final.
func (s Status) Fail() (Status, error) {
	if s == Delivered || s == Failed || s == Unknown {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to fail", s))
	}

	return Failed, nil
}

// ValidateCanHaveCourier validates consistency between order status and
// courier assignment: an order past Placed must carry a courier reference,
// while a Placed order must not.
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && s == Placed {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have a courier", s))
	}

	if !courier && (s == Assigned || s == PickedUp || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to have no courier", s))
	}

	return nil
}
