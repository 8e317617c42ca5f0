package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/pkg/errs"
)

// ErrZoneNotFound is returned when the targeted zone does not exist.
var ErrZoneNotFound = errors.New("dispatch zone not found")

// UpdateDispatchZoneCommandHandler applies a partial edit to a zone inside
// one transaction. Validation failures or a rename collision leave the zone
// unchanged.
type UpdateDispatchZoneCommandHandler struct {
	uowFactory ZoneUoWFactory
}

// NewUpdateDispatchZoneCommandHandler creates a handler for zone edits.
func NewUpdateDispatchZoneCommandHandler(uowFactory ZoneUoWFactory) UpdateDispatchZoneCommandHandler {
	return UpdateDispatchZoneCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the patch and returns the updated zone.
// Returns ErrZoneNotFound for unknown zones.
func (h UpdateDispatchZoneCommandHandler) Handle(
	ctx context.Context,
	command UpdateDispatchZoneCommand,
) (*dispatch.Zone, error) {
	if err := command.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	zonesRepo := uow.DispatchZoneRepository()

	zone, err := zonesRepo.Get(ctx, command.ZoneID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return nil, ErrZoneNotFound
	}
	if err != nil {
		return nil, err
	}

	if err = applyZonePatch(zone, command.Patch()); err != nil {
		return nil, err
	}

	if err = zonesRepo.Update(ctx, zone); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return zone, nil
}

func applyZonePatch(zone *dispatch.Zone, patch ZonePatch) error {
	if patch.Name != nil {
		if err := zone.Rename(*patch.Name); err != nil {
			return err
		}
	}
	if patch.Boundary != nil {
		if err := zone.SetBoundary(patch.Boundary); err != nil {
			return err
		}
	}
	if patch.DeliveryFee != nil {
		if err := zone.SetDeliveryFee(*patch.DeliveryFee); err != nil {
			return err
		}
	}
	if patch.MinimumDeliveryTime != nil {
		if err := zone.SetMinimumDeliveryTime(*patch.MinimumDeliveryTime); err != nil {
			return err
		}
	}
	if patch.Active != nil {
		zone.SetActive(*patch.Active)
	}

	return nil
}
