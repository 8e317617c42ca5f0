package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/postgres/courierdir"
	"dispatch/internal/adapters/out/postgres/dispatchrepo"
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/ports"
)

// CompositionRoot wires adapters into use case handlers.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	couriers   ports.CourierDirectory
	notifier   ports.CourierNotifier
	logger     *slog.Logger

	// Created once so concurrent config reads share one singleflight group.
	getConfigHandler queries.GetDispatchConfigQueryHandler
}

// NewCompositionRoot builds the object graph for the process.
func NewCompositionRoot(_ Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		couriers:   courierdir.NewGormCourierDirectory(gormDB),
		notifier:   notify.NewAutoAcceptNotifier(),
		logger:     logger,
		getConfigHandler: queries.NewGetDispatchConfigQueryHandler(
			dispatchrepo.NewGormDispatchConfigRepository(gormDB),
		),
	}
}

// Logger returns the process logger.
func (c *CompositionRoot) Logger() *slog.Logger {
	return c.logger
}

func (c *CompositionRoot) CreateStartAutoAssignmentCommandHandler() commands.StartAutoAssignmentCommandHandler {
	var f commands.AssignmentUoWFactory = FuncAssignmentUoWFactory(func() commands.AssignmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewStartAutoAssignmentCommandHandler(f, c.couriers, c.notifier)
}

func (c *CompositionRoot) CreateAssignOrderCommandHandler() commands.AssignOrderCommandHandler {
	var f commands.BindingUoWFactory = FuncBindingUoWFactory(func() commands.BindingUoW {
		return c.uowFactory.Create()
	})
	return commands.NewAssignOrderCommandHandler(f, c.couriers)
}

func (c *CompositionRoot) CreateUpsertDispatchConfigCommandHandler() commands.UpsertDispatchConfigCommandHandler {
	var f commands.ConfigUoWFactory = FuncConfigUoWFactory(func() commands.ConfigUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpsertDispatchConfigCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateDispatchZoneCommandHandler() commands.CreateDispatchZoneCommandHandler {
	return commands.NewCreateDispatchZoneCommandHandler(c.zoneUoWFactory())
}

func (c *CompositionRoot) CreateUpdateDispatchZoneCommandHandler() commands.UpdateDispatchZoneCommandHandler {
	return commands.NewUpdateDispatchZoneCommandHandler(c.zoneUoWFactory())
}

func (c *CompositionRoot) CreateGetDispatchConfigQueryHandler() queries.GetDispatchConfigQueryHandler {
	return c.getConfigHandler
}

func (c *CompositionRoot) CreateListDispatchZonesQueryHandler() queries.ListDispatchZonesQueryHandler {
	return queries.NewListDispatchZonesQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListDispatchLogsQueryHandler() queries.ListDispatchLogsQueryHandler {
	return queries.NewListDispatchLogsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListUnassignedOrdersQueryHandler() queries.ListUnassignedOrdersQueryHandler {
	return queries.NewListUnassignedOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) zoneUoWFactory() commands.ZoneUoWFactory {
	return FuncZoneUoWFactory(func() commands.ZoneUoW {
		return c.uowFactory.Create()
	})
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncBindingUoWFactory func() commands.BindingUoW

func (f FuncBindingUoWFactory) Create() commands.BindingUoW {
	return f()
}

type FuncConfigUoWFactory func() commands.ConfigUoW

func (f FuncConfigUoWFactory) Create() commands.ConfigUoW {
	return f()
}

type FuncZoneUoWFactory func() commands.ZoneUoW

func (f FuncZoneUoWFactory) Create() commands.ZoneUoW {
	return f()
}
