package courier

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrNameIsRequired is returned when constructing a courier without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
)

// Status represents a courier's availability for new work.
type Status int

const (
	// StatusUnknown catches uninitialized values.
	StatusUnknown Status = iota
	// StatusActive means the courier is on shift and can receive offers.
	StatusActive
	// StatusInactive means the courier is off shift.
	StatusInactive
	// StatusOnBreak means the courier is temporarily unavailable.
	StatusOnBreak
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:  "unknown",
		StatusActive:   "active",
		StatusInactive: "inactive",
		StatusOnBreak:  "on_break",
	}
}

// StatusFromString parses a wire representation into a Status.
func StatusFromString(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if str == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid courier status", s))
}

// String returns the wire representation of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks if the Status is one of the defined availability states.
func (s Status) Validate() error {
	if _, ok := getStatusStrings()[s]; !ok || s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid courier status", s))
	}
	return nil
}

// Courier is a read model of a delivery agent. Couriers are owned by an
// external directory service where availability and live location are
// maintained; the dispatch core only reads them to pick assignment candidates.
type Courier struct {
	id       kernel.UUID
	name     string
	status   Status
	location kernel.GeoPoint

	guard guard.ConstructorGuard
}

// NewCourier creates a Courier read model with the given identity, status and
// last known location. All parameters are validated.
func NewCourier(id kernel.UUID, name string, status Status, location kernel.GeoPoint) (*Courier, error) {
	c := &Courier{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setStatus(status),
		c.setLocation(location),
	); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks if the Courier was properly constructed via NewCourier.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// IsEqual compares two couriers by their unique identifiers.
func (c *Courier) IsEqual(other *Courier) bool {
	if other == nil {
		return false
	}
	return c.id.IsEqual(other.id)
}

// ID returns the courier's unique identifier.
func (c *Courier) ID() kernel.UUID {
	return c.id
}

// Name returns the courier's display name.
func (c *Courier) Name() string {
	return c.name
}

// Status returns the courier's availability status.
func (c *Courier) Status() Status {
	return c.status
}

// IsActive reports whether the courier can receive assignment offers.
func (c *Courier) IsActive() bool {
	return c.status == StatusActive
}

// Location returns the courier's last known position.
func (c *Courier) Location() kernel.GeoPoint {
	return c.location
}

func (c *Courier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Courier) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Courier) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	c.status = status
	return nil
}

func (c *Courier) setLocation(location kernel.GeoPoint) error {
	if err := location.Validate(); err != nil {
		return err
	}
	c.location = location
	return nil
}
