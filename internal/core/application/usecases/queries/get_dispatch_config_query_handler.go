package queries

import (
	"context"

	"golang.org/x/sync/singleflight"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/ports"
)

// GetDispatchConfigQueryHandler reads the dispatch policy singleton.
//
// The very first read of a fresh deployment inserts the default row, so a
// stampede of concurrent first reads is collapsed through singleflight: only
// one goroutine performs the create-if-absent round trip, the rest share its
// result. The repository's insert is itself conflict-safe, so the group is a
// throughput optimization rather than a correctness requirement.
type GetDispatchConfigQueryHandler struct {
	configs ports.DispatchConfigRepository
	group   *singleflight.Group
}

// NewGetDispatchConfigQueryHandler creates a handler for config reads.
func NewGetDispatchConfigQueryHandler(configs ports.DispatchConfigRepository) GetDispatchConfigQueryHandler {
	return GetDispatchConfigQueryHandler{
		configs: configs,
		group:   new(singleflight.Group),
	}
}

// Handle returns the current dispatch policy, creating the default row on
// first read.
func (h GetDispatchConfigQueryHandler) Handle(
	ctx context.Context,
	query GetDispatchConfigQuery,
) (dispatch.Config, error) {
	if err := query.Validate(); err != nil {
		return dispatch.Config{}, err
	}

	result, err, _ := h.group.Do("dispatch-config", func() (any, error) {
		return h.configs.GetOrCreate(ctx)
	})
	if err != nil {
		return dispatch.Config{}, err
	}

	return result.(dispatch.Config), nil
}
