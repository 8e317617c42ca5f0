package http

import (
	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/application/usecases/queries"
	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/kernel"
)

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ConfigResponse represents the dispatch policy on the wire.
type ConfigResponse struct {
	SearchRadius           int `json:"searchRadius"`
	IncrementalRadius      int `json:"incrementalRadius"`
	MaxIncrements          int `json:"maxIncrements"`
	MaxRadius              int `json:"maxRadius"`
	OrderAssignmentTimeout int `json:"orderAssignmentTimeout"`
	MaxOrdersPerCourier    int `json:"maxOrdersPerCourier"`
}

// ConfigRequest is a partial policy update. Omitted fields keep their
// current values.
type ConfigRequest struct {
	SearchRadius           *int `json:"searchRadius"`
	IncrementalRadius      *int `json:"incrementalRadius"`
	MaxIncrements          *int `json:"maxIncrements"`
	MaxRadius              *int `json:"maxRadius"`
	OrderAssignmentTimeout *int `json:"orderAssignmentTimeout"`
	MaxOrdersPerCourier    *int `json:"maxOrdersPerCourier"`
}

func (r ConfigRequest) toPatch() dispatch.ConfigPatch {
	return dispatch.ConfigPatch{
		SearchRadius:           r.SearchRadius,
		IncrementalRadius:      r.IncrementalRadius,
		MaxIncrements:          r.MaxIncrements,
		MaxRadius:              r.MaxRadius,
		OrderAssignmentTimeout: r.OrderAssignmentTimeout,
		MaxOrdersPerCourier:    r.MaxOrdersPerCourier,
	}
}

func configToResponse(cfg dispatch.Config) ConfigResponse {
	return ConfigResponse{
		SearchRadius:           cfg.SearchRadius,
		IncrementalRadius:      cfg.IncrementalRadius,
		MaxIncrements:          cfg.MaxIncrements,
		MaxRadius:              cfg.MaxRadius,
		OrderAssignmentTimeout: cfg.OrderAssignmentTimeout,
		MaxOrdersPerCourier:    cfg.MaxOrdersPerCourier,
	}
}

// CreateZoneRequest registers a new delivery zone. The boundary is a ring of
// [latitude, longitude] pairs.
type CreateZoneRequest struct {
	Name                string       `json:"name"`
	Boundary            [][2]float64 `json:"boundary"`
	DeliveryFee         float64      `json:"deliveryFee"`
	MinimumDeliveryTime int          `json:"minimumDeliveryTime"`
}

// UpdateZoneRequest is a partial zone update. Omitted fields keep their
// current values; an omitted boundary keeps the current ring.
type UpdateZoneRequest struct {
	Name                *string      `json:"name"`
	Boundary            [][2]float64 `json:"boundary"`
	DeliveryFee         *float64     `json:"deliveryFee"`
	MinimumDeliveryTime *int         `json:"minimumDeliveryTime"`
	Active              *bool        `json:"active"`
}

// ZoneResponse represents a delivery zone on the wire.
type ZoneResponse struct {
	ID                  string       `json:"id"`
	Name                string       `json:"name"`
	Boundary            [][2]float64 `json:"boundary"`
	DeliveryFee         float64      `json:"deliveryFee"`
	MinimumDeliveryTime int          `json:"minimumDeliveryTime"`
	Active              bool         `json:"active"`
}

func zoneToResponse(zone *dispatch.Zone) ZoneResponse {
	ring := zone.Boundary()
	boundary := make([][2]float64, 0, len(ring))
	for _, p := range ring {
		boundary = append(boundary, [2]float64{p.Latitude(), p.Longitude()})
	}

	return ZoneResponse{
		ID:                  zone.ID().String(),
		Name:                zone.Name(),
		Boundary:            boundary,
		DeliveryFee:         zone.DeliveryFee(),
		MinimumDeliveryTime: zone.MinimumDeliveryTime(),
		Active:              zone.IsActive(),
	}
}

func zoneReadModelToResponse(row queries.ListDispatchZonesQueryResponse) ZoneResponse {
	return ZoneResponse{
		ID:                  row.ID.String(),
		Name:                row.Name,
		Boundary:            row.Boundary,
		DeliveryFee:         row.DeliveryFee,
		MinimumDeliveryTime: row.MinimumDeliveryTime,
		Active:              row.Active,
	}
}

// AssignRequest binds an order to a specific courier, bypassing the search.
type AssignRequest struct {
	OrderID   string `json:"orderId"`
	CourierID string `json:"courierId"`
}

// AssignmentResponse reports the result of an assignment request.
type AssignmentResponse struct {
	Success   bool    `json:"success"`
	OrderID   string  `json:"orderId"`
	CourierID *string `json:"courierId,omitempty"`
	LogStatus string  `json:"logStatus"`
}

func assignmentToResponse(result commands.AssignmentResult) AssignmentResponse {
	resp := AssignmentResponse{
		Success:   result.Success,
		OrderID:   result.Order.ID().String(),
		LogStatus: result.Log.Status().String(),
	}

	if id := result.Log.Courier(); id != nil {
		s := id.String()
		resp.CourierID = &s
	}

	return resp
}

// SearchAttemptResponse is one radius query of a journey on the wire.
type SearchAttemptResponse struct {
	RadiusMeters  int    `json:"radiusMeters"`
	CouriersFound int    `json:"couriersFound"`
	Timestamp     string `json:"timestamp"`
}

// AssignmentAttemptResponse is one candidate offer of a journey on the wire.
type AssignmentAttemptResponse struct {
	CourierID string `json:"courierId"`
	Outcome   string `json:"outcome"`
	Timestamp string `json:"timestamp"`
}

// LogResponse represents one assignment audit trail on the wire.
type LogResponse struct {
	ID                  string                      `json:"id"`
	OrderID             string                      `json:"orderId"`
	CourierID           *string                     `json:"courierId,omitempty"`
	Status              string                      `json:"status"`
	ZoneID              *string                     `json:"zoneId,omitempty"`
	DeliveryFee         *float64                    `json:"deliveryFee,omitempty"`
	MinimumDeliveryTime *int                        `json:"minimumDeliveryTime,omitempty"`
	SearchAttempts      []SearchAttemptResponse     `json:"searchAttempts"`
	AssignmentAttempts  []AssignmentAttemptResponse `json:"assignmentAttempts"`
	CreatedAt           string                      `json:"createdAt"`
}

func logReadModelToResponse(row queries.ListDispatchLogsQueryResponse) LogResponse {
	resp := LogResponse{
		ID:                  row.ID.String(),
		OrderID:             row.OrderID.String(),
		CourierID:           uuidToString(row.CourierID),
		Status:              row.Status,
		ZoneID:              uuidToString(row.ZoneID),
		DeliveryFee:         row.DeliveryFee,
		MinimumDeliveryTime: row.MinimumDeliveryTime,
		SearchAttempts:      make([]SearchAttemptResponse, 0, len(row.SearchAttempts)),
		AssignmentAttempts:  make([]AssignmentAttemptResponse, 0, len(row.AssignmentAttempts)),
		CreatedAt:           row.CreatedAt.Format(timeFormat),
	}

	for _, attempt := range row.SearchAttempts {
		resp.SearchAttempts = append(resp.SearchAttempts, SearchAttemptResponse{
			RadiusMeters:  attempt.RadiusMeters,
			CouriersFound: attempt.CouriersFound,
			Timestamp:     attempt.Timestamp.Format(timeFormat),
		})
	}

	for _, attempt := range row.AssignmentAttempts {
		resp.AssignmentAttempts = append(resp.AssignmentAttempts, AssignmentAttemptResponse{
			CourierID: attempt.CourierID.String(),
			Outcome:   attempt.Outcome,
			Timestamp: attempt.Timestamp.Format(timeFormat),
		})
	}

	return resp
}

func uuidToString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func boundaryToRing(boundary [][2]float64) ([]kernel.GeoPoint, error) {
	ring := make([]kernel.GeoPoint, 0, len(boundary))
	for _, pair := range boundary {
		point, err := kernel.NewGeoPoint(pair[0], pair[1])
		if err != nil {
			return nil, err
		}
		ring = append(ring, point)
	}
	return ring, nil
}
