package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrCreateDispatchZoneCommandIsNotConstructed = errors.New(
	"CreateDispatchZoneCommand must be created via NewCreateDispatchZoneCommand constructor",
)

// CreateDispatchZoneCommand registers a new delivery service area. The zone
// starts active; boundary, fee and time bounds are enforced by the aggregate
// when the handler constructs it.
type CreateDispatchZoneCommand struct { //nolint:recvcheck //using for validation
	zoneID              kernel.UUID
	name                string
	boundary            []kernel.GeoPoint
	deliveryFee         float64
	minimumDeliveryTime int

	guard guard.ConstructorGuard
}

// NewCreateDispatchZoneCommand creates a command to register a zone.
func NewCreateDispatchZoneCommand(
	zoneID kernel.UUID,
	name string,
	boundary []kernel.GeoPoint,
	deliveryFee float64,
	minimumDeliveryTime int,
) (CreateDispatchZoneCommand, error) {
	cmd := CreateDispatchZoneCommand{
		boundary:            append([]kernel.GeoPoint(nil), boundary...),
		deliveryFee:         deliveryFee,
		minimumDeliveryTime: minimumDeliveryTime,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setZoneID(zoneID),
		cmd.setName(name),
	); err != nil {
		return CreateDispatchZoneCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDispatchZoneCommand) Validate() error {
	return c.guard.Validate(ErrCreateDispatchZoneCommandIsNotConstructed)
}

// ZoneID returns the new zone's identifier.
func (c CreateDispatchZoneCommand) ZoneID() kernel.UUID {
	return c.zoneID
}

// Name returns the zone name.
func (c CreateDispatchZoneCommand) Name() string {
	return c.name
}

// Boundary returns the boundary ring.
func (c CreateDispatchZoneCommand) Boundary() []kernel.GeoPoint {
	return c.boundary
}

// DeliveryFee returns the flat delivery fee.
func (c CreateDispatchZoneCommand) DeliveryFee() float64 {
	return c.deliveryFee
}

// MinimumDeliveryTime returns the minimum delivery time in minutes.
func (c CreateDispatchZoneCommand) MinimumDeliveryTime() int {
	return c.minimumDeliveryTime
}

func (c *CreateDispatchZoneCommand) setZoneID(zoneID kernel.UUID) error {
	if err := zoneID.Validate(); err != nil {
		return err
	}

	c.zoneID = zoneID
	return nil
}

func (c *CreateDispatchZoneCommand) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}

	c.name = name
	return nil
}
