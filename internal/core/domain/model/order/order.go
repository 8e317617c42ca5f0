package order

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

// ErrOrderIsNotConstructed is returned when an Order instance was not created
// through the NewOrder or RestoreOrder factory methods.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

// Order represents a delivery order referenced by the dispatch core.
// The order itself is owned by an external ordering workflow; the dispatch
// engine only mutates it on a successful binding (status -> assigned, courier
// reference set) and reads it everywhere else.
//
// Invariants:
//   - Must have a valid unique identifier
//   - Must have a valid delivery location
//   - Status transitions follow the Status state machine
//   - Courier reference presence is consistent with the status
type Order struct {
	id               kernel.UUID
	courierID        *kernel.UUID
	deliveryLocation kernel.GeoPoint
	status           Status

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Placed status with no courier assigned.
//
// Parameters:
//   - id: unique identifier for the order (must be a valid UUID)
//   - deliveryLocation: validated delivery coordinates
func NewOrder(id kernel.UUID, deliveryLocation kernel.GeoPoint) (*Order, error) {
	o := &Order{
		status: Placed,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setDeliveryLocation(deliveryLocation),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistent storage, preserving its
// status and courier assignment. The restored order behaves identically to one
// created through normal domain operations.
func RestoreOrder(
	id kernel.UUID,
	deliveryLocation kernel.GeoPoint,
	status Status,
	courierID *kernel.UUID,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setDeliveryLocation(deliveryLocation),
		o.setStatus(status, courierID),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was properly constructed through a factory method.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// DeliveryLocation returns the delivery coordinates for the order.
func (o *Order) DeliveryLocation() kernel.GeoPoint {
	return o.deliveryLocation
}

// Status returns the current status of the order.
func (o *Order) Status() Status {
	return o.status
}

// Courier returns the assigned courier's ID, or nil if unassigned.
func (o *Order) Courier() *kernel.UUID {
	return o.courierID
}

// ValidateAssign reports whether the order can currently be assigned.
func (o *Order) ValidateAssign() error {
	return o.status.ValidateAssign()
}

// Assign binds the order to a courier and transitions the status to Assigned.
// Reassignment of an already-assigned order is allowed; terminal and in-flight
// orders reject the transition.
func (o *Order) Assign(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	return nil
}

// PickUp marks the order as collected by its courier.
func (o *Order) PickUp() error {
	newStatus, err := o.status.PickUp()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Deliver marks the order as delivered. Delivered is a final state.
func (o *Order) Deliver() error {
	newStatus, err := o.status.Deliver()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

// Fail marks the order as failed. Failed is a final state.
// Note that exhausting the auto-assignment search does NOT call this: the
// order stays Placed so a later sweep or a human dispatcher can retry it.
func (o *Order) Fail() error {
	newStatus, err := o.status.Fail()
	if err != nil {
		return err
	}

	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setDeliveryLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	o.deliveryLocation = location
	return nil
}

func (o *Order) setStatus(status Status, courierID *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if courierID != nil {
		if err := courierID.Validate(); err != nil {
			return err
		}
	}
	if err := status.ValidateCanHaveCourier(courierID != nil); err != nil {
		return err
	}

	o.status = status
	o.courierID = courierID
	return nil
}
