package ports

import (
	"context"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/kernel"
)

// DispatchConfigRepository persists the dispatch policy singleton.
type DispatchConfigRepository interface {
	// GetOrCreate returns the singleton config, inserting the documented
	// defaults first if no row exists yet. Concurrent first reads converge on
	// a single row.
	GetOrCreate(ctx context.Context) (dispatch.Config, error)

	// Save replaces the singleton with an already-validated config.
	Save(ctx context.Context, cfg dispatch.Config) error
}

// DispatchZoneRepository persists the zone registry.
type DispatchZoneRepository interface {
	// Add persists a new zone. Returns dispatch.ErrDuplicateZoneName (wrapped)
	// when a zone with the same name already exists.
	Add(ctx context.Context, zone *dispatch.Zone) error

	// Update persists changes to an existing zone. Renames collide with the
	// same duplicate-name rule as Add.
	Update(ctx context.Context, zone *dispatch.Zone) error

	// Get retrieves a zone by its unique identifier.
	// Returns errs.ErrObjectNotFound (wrapped) when no such zone exists.
	Get(ctx context.Context, id kernel.UUID) (*dispatch.Zone, error)

	// GetAll retrieves every zone, active or not.
	GetAll(ctx context.Context) ([]*dispatch.Zone, error)

	// GetAllActive retrieves the zones currently serving orders, for
	// containment lookup during assignment.
	GetAllActive(ctx context.Context) ([]*dispatch.Zone, error)
}

// DispatchLogRepository persists assignment audit trails.
type DispatchLogRepository interface {
	// Upsert stores the log keyed by its order: a new journey for an order
	// replaces that order's previous one. Logs are never deleted.
	Upsert(ctx context.Context, log *dispatch.Log) error

	// GetByOrder retrieves the log for one order.
	// Returns errs.ErrObjectNotFound (wrapped) when the order has no log yet.
	GetByOrder(ctx context.Context, orderID kernel.UUID) (*dispatch.Log, error)
}
