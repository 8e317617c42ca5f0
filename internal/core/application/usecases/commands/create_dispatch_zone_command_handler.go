package commands

import (
	"context"

	"dispatch/internal/core/domain/model/dispatch"
)

// CreateDispatchZoneCommandHandler registers a new zone. Name uniqueness is
// enforced by the repository; a conflict surfaces as
// dispatch.ErrDuplicateZoneName and leaves the registry untouched.
type CreateDispatchZoneCommandHandler struct {
	uowFactory ZoneUoWFactory
}

// NewCreateDispatchZoneCommandHandler creates a handler for zone registration.
func NewCreateDispatchZoneCommandHandler(uowFactory ZoneUoWFactory) CreateDispatchZoneCommandHandler {
	return CreateDispatchZoneCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle creates the zone and returns it.
func (h CreateDispatchZoneCommandHandler) Handle(
	ctx context.Context,
	command CreateDispatchZoneCommand,
) (*dispatch.Zone, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	zone, err := dispatch.NewZone(
		command.ZoneID(),
		command.Name(),
		command.Boundary(),
		command.DeliveryFee(),
		command.MinimumDeliveryTime(),
	)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DispatchZoneRepository().Add(ctx, zone); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return zone, nil
}
