// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"dispatch/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Each handler depends only on the narrow slice of repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// OrderRepoFactory provides access to the order repository within a transaction.
	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	// ConfigRepoFactory provides access to the config repository within a transaction.
	ConfigRepoFactory interface {
		DispatchConfigRepository() ports.DispatchConfigRepository
	}

	// ZoneRepoFactory provides access to the zone repository within a transaction.
	ZoneRepoFactory interface {
		DispatchZoneRepository() ports.DispatchZoneRepository
	}

	// LogRepoFactory provides access to the log repository within a transaction.
	LogRepoFactory interface {
		DispatchLogRepository() ports.DispatchLogRepository
	}

	// AssignmentUoW manages transactions for auto-assignment runs, which read
	// the config and zones and write the order and its log atomically.
	AssignmentUoW interface {
		TxManager
		OrderRepoFactory
		ConfigRepoFactory
		ZoneRepoFactory
		LogRepoFactory
	}

	// AssignmentUoWFactory creates new assignment unit of work instances.
	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// BindingUoW manages transactions for manual assignment, which writes the
	// order and its log atomically.
	BindingUoW interface {
		TxManager
		OrderRepoFactory
		LogRepoFactory
	}

	// BindingUoWFactory creates new binding unit of work instances.
	BindingUoWFactory interface {
		Create() BindingUoW
	}

	// ConfigUoW manages transactions for config-only operations.
	ConfigUoW interface {
		TxManager
		ConfigRepoFactory
	}

	// ConfigUoWFactory creates new config unit of work instances.
	ConfigUoWFactory interface {
		Create() ConfigUoW
	}

	// ZoneUoW manages transactions for zone-only operations.
	ZoneUoW interface {
		TxManager
		ZoneRepoFactory
	}

	// ZoneUoWFactory creates new zone unit of work instances.
	ZoneUoWFactory interface {
		Create() ZoneUoW
	}
)
