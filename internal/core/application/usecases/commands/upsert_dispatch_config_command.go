package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/pkg/guard"
)

var ErrUpsertDispatchConfigCommandIsNotConstructed = errors.New(
	"UpsertDispatchConfigCommand must be created via NewUpsertDispatchConfigCommand constructor",
)

// UpsertDispatchConfigCommand applies a partial update to the dispatch policy
// singleton. Fields absent from the patch keep their current values; the row
// is created with defaults first if it does not exist yet. An empty patch is
// valid and simply returns the current policy.
type UpsertDispatchConfigCommand struct { //nolint:recvcheck //using for validation
	patch dispatch.ConfigPatch

	guard guard.ConstructorGuard
}

// NewUpsertDispatchConfigCommand creates a command carrying a config patch.
func NewUpsertDispatchConfigCommand(patch dispatch.ConfigPatch) UpsertDispatchConfigCommand {
	return UpsertDispatchConfigCommand{
		patch: patch,
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c UpsertDispatchConfigCommand) Validate() error {
	return c.guard.Validate(ErrUpsertDispatchConfigCommandIsNotConstructed)
}

// Patch returns the partial update to apply.
func (c UpsertDispatchConfigCommand) Patch() dispatch.ConfigPatch {
	return c.patch
}
