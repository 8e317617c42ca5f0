package commands

import (
	"context"

	"dispatch/internal/core/domain/model/dispatch"
)

// UpsertDispatchConfigCommandHandler merges a config patch into the
// persisted policy singleton inside one transaction: read-or-create, merge,
// bounds-check, save.
type UpsertDispatchConfigCommandHandler struct {
	uowFactory ConfigUoWFactory
}

// NewUpsertDispatchConfigCommandHandler creates a handler for config updates.
func NewUpsertDispatchConfigCommandHandler(uowFactory ConfigUoWFactory) UpsertDispatchConfigCommandHandler {
	return UpsertDispatchConfigCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle applies the patch and returns the resulting config. A patch that
// produces out-of-bounds values is rejected without writing anything.
func (h UpsertDispatchConfigCommandHandler) Handle(
	ctx context.Context,
	command UpsertDispatchConfigCommand,
) (dispatch.Config, error) {
	if err := command.Validate(); err != nil {
		return dispatch.Config{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return dispatch.Config{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	configRepo := uow.DispatchConfigRepository()

	current, err := configRepo.GetOrCreate(ctx)
	if err != nil {
		return dispatch.Config{}, err
	}

	merged, err := command.Patch().Apply(current)
	if err != nil {
		return dispatch.Config{}, err
	}

	if err = configRepo.Save(ctx, merged); err != nil {
		return dispatch.Config{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return dispatch.Config{}, err
	}

	return merged, nil
}
