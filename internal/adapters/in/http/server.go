// Package http exposes the dispatch engine over a REST surface.
// It coordinates between HTTP handlers and application use cases.
package http

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

const timeFormat = time.RFC3339

// Server wires the dispatch use cases to their routes.
type Server struct {
	// Command handlers
	autoAssignHandler   commands.StartAutoAssignmentCommandHandler
	assignOrderHandler  commands.AssignOrderCommandHandler
	upsertConfigHandler commands.UpsertDispatchConfigCommandHandler
	createZoneHandler   commands.CreateDispatchZoneCommandHandler
	updateZoneHandler   commands.UpdateDispatchZoneCommandHandler

	// Query handlers
	getConfigHandler queries.GetDispatchConfigQueryHandler
	listZonesHandler queries.ListDispatchZonesQueryHandler
	listLogsHandler  queries.ListDispatchLogsQueryHandler

	logger *slog.Logger
}

// NewServer creates an HTTP server with the required command and query handlers.
func NewServer(
	autoAssignHandler commands.StartAutoAssignmentCommandHandler,
	assignOrderHandler commands.AssignOrderCommandHandler,
	upsertConfigHandler commands.UpsertDispatchConfigCommandHandler,
	createZoneHandler commands.CreateDispatchZoneCommandHandler,
	updateZoneHandler commands.UpdateDispatchZoneCommandHandler,
	getConfigHandler queries.GetDispatchConfigQueryHandler,
	listZonesHandler queries.ListDispatchZonesQueryHandler,
	listLogsHandler queries.ListDispatchLogsQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		autoAssignHandler:   autoAssignHandler,
		assignOrderHandler:  assignOrderHandler,
		upsertConfigHandler: upsertConfigHandler,
		createZoneHandler:   createZoneHandler,
		updateZoneHandler:   updateZoneHandler,
		getConfigHandler:    getConfigHandler,
		listZonesHandler:    listZonesHandler,
		listLogsHandler:     listLogsHandler,
		logger:              logger,
	}
}

// RegisterRoutes attaches every dispatch route to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", s.Health)

	e.GET("/dispatch/config", s.GetDispatchConfig)
	e.PUT("/dispatch/config", s.UpdateDispatchConfig)

	e.POST("/dispatch/zones", s.CreateDispatchZone)
	e.GET("/dispatch/zones", s.ListDispatchZones)
	e.PUT("/dispatch/zones/:id", s.UpdateDispatchZone)

	e.POST("/dispatch/assign", s.AssignOrder)
	e.POST("/dispatch/orders/:id/auto-assign", s.AutoAssignOrder)

	e.GET("/dispatch/logs", s.ListDispatchLogs)
}

// Health handles GET /health.
func (s *Server) Health(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Healthy")
}

// GetDispatchConfig handles GET /dispatch/config - returns the current policy,
// materializing the defaults on first read.
func (s *Server) GetDispatchConfig(ctx echo.Context) error {
	cfg, err := s.getConfigHandler.Handle(ctx.Request().Context(), queries.NewGetDispatchConfigQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, configToResponse(cfg))
}

// UpdateDispatchConfig handles PUT /dispatch/config - merges a partial policy
// update and returns the resulting policy.
func (s *Server) UpdateDispatchConfig(ctx echo.Context) error {
	var request ConfigRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	cmd := commands.NewUpsertDispatchConfigCommand(request.toPatch())

	cfg, err := s.upsertConfigHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, configToResponse(cfg))
}

// CreateDispatchZone handles POST /dispatch/zones - registers a new zone.
func (s *Server) CreateDispatchZone(ctx echo.Context) error {
	var request CreateZoneRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	ring, err := boundaryToRing(request.Boundary)
	if err != nil {
		return s.badRequest(ctx, "Invalid boundary: "+err.Error())
	}

	cmd, err := commands.NewCreateDispatchZoneCommand(
		kernel.NewUUID(),
		request.Name,
		ring,
		request.DeliveryFee,
		request.MinimumDeliveryTime,
	)
	if err != nil {
		return s.badRequest(ctx, "Invalid zone data: "+err.Error())
	}

	zone, err := s.createZoneHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, zoneToResponse(zone))
}

// ListDispatchZones handles GET /dispatch/zones - returns every zone sorted by name.
func (s *Server) ListDispatchZones(ctx echo.Context) error {
	zones, err := s.listZonesHandler.Handle(ctx.Request().Context(), queries.NewListDispatchZonesQuery())
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]ZoneResponse, 0, len(zones))
	for _, zone := range zones {
		response = append(response, zoneReadModelToResponse(zone))
	}

	return ctx.JSON(http.StatusOK, response)
}

// UpdateDispatchZone handles PUT /dispatch/zones/:id - edits a zone's parameters.
func (s *Server) UpdateDispatchZone(ctx echo.Context) error {
	zoneID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid zone id")
	}

	var request UpdateZoneRequest
	if err = ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	patch := commands.ZonePatch{
		Name:                request.Name,
		DeliveryFee:         request.DeliveryFee,
		MinimumDeliveryTime: request.MinimumDeliveryTime,
		Active:              request.Active,
	}
	if request.Boundary != nil {
		ring, ringErr := boundaryToRing(request.Boundary)
		if ringErr != nil {
			return s.badRequest(ctx, "Invalid boundary: "+ringErr.Error())
		}
		patch.Boundary = ring
	}

	cmd, err := commands.NewUpdateDispatchZoneCommand(zoneID, patch)
	if err != nil {
		return s.badRequest(ctx, "Invalid zone data: "+err.Error())
	}

	zone, err := s.updateZoneHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, zoneToResponse(zone))
}

// AssignOrder handles POST /dispatch/assign - binds an order to a chosen
// courier, bypassing the search loop.
func (s *Server) AssignOrder(ctx echo.Context) error {
	var request AssignRequest
	if err := ctx.Bind(&request); err != nil {
		return s.badRequest(ctx, "Invalid request body")
	}

	orderID, err := kernel.UUIDFromString(request.OrderID)
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	courierID, err := kernel.UUIDFromString(request.CourierID)
	if err != nil {
		return s.badRequest(ctx, "Invalid courier id")
	}

	cmd, err := commands.NewAssignOrderCommand(orderID, courierID)
	if err != nil {
		return s.badRequest(ctx, "Invalid assignment data: "+err.Error())
	}

	result, err := s.assignOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, assignmentToResponse(result))
}

// AutoAssignOrder handles POST /dispatch/orders/:id/auto-assign - runs the
// widening courier search for one order. Search exhaustion is a 200 with
// success=false, not an error.
func (s *Server) AutoAssignOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("id"))
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	cmd, err := commands.NewStartAutoAssignmentCommand(orderID)
	if err != nil {
		return s.badRequest(ctx, "Invalid order id")
	}

	result, err := s.autoAssignHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err)
	}

	return ctx.JSON(http.StatusOK, assignmentToResponse(result))
}

// ListDispatchLogs handles GET /dispatch/logs - returns audit trails, newest
// first, optionally filtered by status, startDate and endDate (RFC 3339).
func (s *Server) ListDispatchLogs(ctx echo.Context) error {
	var status *dispatch.LogStatus
	if raw := ctx.QueryParam("status"); raw != "" {
		parsed, err := dispatch.LogStatusFromString(raw)
		if err != nil {
			return s.badRequest(ctx, "Invalid status filter")
		}
		status = &parsed
	}

	from, err := parseTimeParam(ctx.QueryParam("startDate"))
	if err != nil {
		return s.badRequest(ctx, "Invalid startDate, expected RFC 3339")
	}

	to, err := parseTimeParam(ctx.QueryParam("endDate"))
	if err != nil {
		return s.badRequest(ctx, "Invalid endDate, expected RFC 3339")
	}

	query, err := queries.NewListDispatchLogsQuery(status, from, to)
	if err != nil {
		return s.badRequest(ctx, "Invalid filters: "+err.Error())
	}

	logs, err := s.listLogsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err)
	}

	response := make([]LogResponse, 0, len(logs))
	for _, row := range logs {
		response = append(response, logReadModelToResponse(row))
	}

	return ctx.JSON(http.StatusOK, response)
}

func parseTimeParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}

	t, err := time.Parse(timeFormat, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *Server) badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, ErrorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}

// fail maps application errors onto HTTP statuses: missing aggregates are
// 404, rule violations are 400, everything else is a logged 500.
func (s *Server) fail(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, commands.ErrOrderNotFound),
		errors.Is(err, commands.ErrCourierNotFound),
		errors.Is(err, commands.ErrZoneNotFound),
		errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, ErrorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, dispatch.ErrDuplicateZoneName),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, errs.ErrValueIsRequired):
		return ctx.JSON(http.StatusBadRequest, ErrorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		s.logger.Error("request failed",
			"method", ctx.Request().Method,
			"path", ctx.Request().URL.Path,
			"error", err)
		return ctx.JSON(http.StatusInternalServerError, ErrorResponse{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}
