package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateDispatchZoneCommandIsNotConstructed = errors.New(
	"UpdateDispatchZoneCommand must be created via NewUpdateDispatchZoneCommand constructor",
)

// ZonePatch is a partial update to a zone. Nil fields are left unchanged.
type ZonePatch struct {
	Name                *string
	Boundary            []kernel.GeoPoint
	DeliveryFee         *float64
	MinimumDeliveryTime *int
	Active              *bool
}

// UpdateDispatchZoneCommand edits an existing zone's parameters: name, fee,
// minimum delivery time, boundary or active flag.
type UpdateDispatchZoneCommand struct { //nolint:recvcheck //using for validation
	zoneID kernel.UUID
	patch  ZonePatch

	guard guard.ConstructorGuard
}

// NewUpdateDispatchZoneCommand creates a command to edit a zone.
func NewUpdateDispatchZoneCommand(zoneID kernel.UUID, patch ZonePatch) (UpdateDispatchZoneCommand, error) {
	cmd := UpdateDispatchZoneCommand{
		patch: patch,
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setZoneID(zoneID); err != nil {
		return UpdateDispatchZoneCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDispatchZoneCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDispatchZoneCommandIsNotConstructed)
}

// ZoneID returns the zone to edit.
func (c UpdateDispatchZoneCommand) ZoneID() kernel.UUID {
	return c.zoneID
}

// Patch returns the partial update to apply.
func (c UpdateDispatchZoneCommand) Patch() ZonePatch {
	return c.patch
}

func (c *UpdateDispatchZoneCommand) setZoneID(zoneID kernel.UUID) error {
	if err := zoneID.Validate(); err != nil {
		return err
	}

	c.zoneID = zoneID
	return nil
}
