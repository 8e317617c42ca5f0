package dispatch

import (
	"errors"
	"time"

	"dispatch/internal/pkg/errs"
)

// Documented defaults for the dispatch policy. A deployment that never calls
// the config endpoint runs with exactly these values.
const (
	// DefaultSearchRadius is the initial courier search radius in meters.
	DefaultSearchRadius = 1000
	// DefaultIncrementalRadius is the widening step in meters per failed attempt.
	DefaultIncrementalRadius = 500
	// DefaultMaxIncrements bounds the number of search attempts per run.
	DefaultMaxIncrements = 3
	// DefaultMaxRadius is the advisory hard ceiling in meters. The engine stops
	// after MaxIncrements attempts regardless of the absolute radius reached.
	DefaultMaxRadius = 5000
	// DefaultOrderAssignmentTimeout bounds a whole auto-assignment run, in seconds.
	DefaultOrderAssignmentTimeout = 30
	// DefaultMaxOrdersPerCourier caps concurrent active orders per courier.
	DefaultMaxOrdersPerCourier = 5
)

// Config holds the tunable dispatch policy. It is a process-wide singleton
// persisted as a single row, lazily created with defaults on first read.
type Config struct {
	// SearchRadius is the initial search radius in meters.
	SearchRadius int
	// IncrementalRadius is added to the radius after each empty attempt.
	IncrementalRadius int
	// MaxIncrements bounds the number of search attempts per run.
	MaxIncrements int
	// MaxRadius is the advisory ceiling; not enforced by the engine loop.
	MaxRadius int
	// OrderAssignmentTimeout is the deadline for a whole run, in seconds.
	OrderAssignmentTimeout int
	// MaxOrdersPerCourier caps active (assigned or picked up) orders a
	// candidate may already carry and still receive offers.
	MaxOrdersPerCourier int
}

// DefaultConfig returns a Config populated with the documented defaults.
func DefaultConfig() Config {
	return Config{
		SearchRadius:           DefaultSearchRadius,
		IncrementalRadius:      DefaultIncrementalRadius,
		MaxIncrements:          DefaultMaxIncrements,
		MaxRadius:              DefaultMaxRadius,
		OrderAssignmentTimeout: DefaultOrderAssignmentTimeout,
		MaxOrdersPerCourier:    DefaultMaxOrdersPerCourier,
	}
}

// Validate applies bounds checks to every field. The engine tolerates a
// SearchRadius + MaxIncrements*IncrementalRadius exceeding MaxRadius (the
// ceiling is advisory), but rejects values that would break the loop itself.
func (c Config) Validate() error {
	var err error
	if c.SearchRadius <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidError("searchRadius"))
	}
	if c.IncrementalRadius <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidError("incrementalRadius"))
	}
	if c.MaxIncrements < 1 {
		err = errors.Join(err, errs.NewValueIsInvalidError("maxIncrements"))
	}
	if c.MaxRadius <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidError("maxRadius"))
	}
	if c.OrderAssignmentTimeout <= 0 {
		err = errors.Join(err, errs.NewValueIsInvalidError("orderAssignmentTimeout"))
	}
	if c.MaxOrdersPerCourier < 0 {
		err = errors.Join(err, errs.NewValueIsInvalidError("maxOrdersPerDeliveryMan"))
	}
	return err
}

// AssignmentDeadline returns OrderAssignmentTimeout as a duration, for use as
// a context deadline wrapping an auto-assignment run.
func (c Config) AssignmentDeadline() time.Duration {
	return time.Duration(c.OrderAssignmentTimeout) * time.Second
}

// ConfigPatch is a partial update to the Config singleton. Nil fields are
// left unchanged by Apply, matching the upsert-merge semantics of the
// config endpoint.
type ConfigPatch struct {
	SearchRadius           *int
	IncrementalRadius      *int
	MaxIncrements          *int
	MaxRadius              *int
	OrderAssignmentTimeout *int
	MaxOrdersPerCourier    *int
}

// IsEmpty reports whether the patch carries no fields.
func (p ConfigPatch) IsEmpty() bool {
	return p.SearchRadius == nil &&
		p.IncrementalRadius == nil &&
		p.MaxIncrements == nil &&
		p.MaxRadius == nil &&
		p.OrderAssignmentTimeout == nil &&
		p.MaxOrdersPerCourier == nil
}

// Apply merges the patch into a config and validates the result.
func (p ConfigPatch) Apply(c Config) (Config, error) {
	if p.SearchRadius != nil {
		c.SearchRadius = *p.SearchRadius
	}
	if p.IncrementalRadius != nil {
		c.IncrementalRadius = *p.IncrementalRadius
	}
	if p.MaxIncrements != nil {
		c.MaxIncrements = *p.MaxIncrements
	}
	if p.MaxRadius != nil {
		c.MaxRadius = *p.MaxRadius
	}
	if p.OrderAssignmentTimeout != nil {
		c.OrderAssignmentTimeout = *p.OrderAssignmentTimeout
	}
	if p.MaxOrdersPerCourier != nil {
		c.MaxOrdersPerCourier = *p.MaxOrdersPerCourier
	}

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}
