package queries

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/kernel"
)

// ListDispatchZonesQueryHandler retrieves zone read models from the database.
// Uses direct SQL for optimal read performance in the CQRS pattern.
type ListDispatchZonesQueryHandler struct {
	db *gorm.DB
}

// NewListDispatchZonesQueryHandler creates a handler for zone list queries.
func NewListDispatchZonesQueryHandler(db *gorm.DB) ListDispatchZonesQueryHandler {
	return ListDispatchZonesQueryHandler{db: db}
}

// Handle executes the query and returns all zones sorted by name.
func (h ListDispatchZonesQueryHandler) Handle(
	ctx context.Context,
	query ListDispatchZonesQuery,
) ([]ListDispatchZonesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	zones := make([]ListDispatchZonesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			name,
			boundary,
			delivery_fee,
			minimum_delivery_time,
			active
		FROM dispatch_zones
		ORDER BY name
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var zone ListDispatchZonesQueryResponse
		var id uuid.UUID
		var boundary []byte

		err = rows.Scan(
			&id,
			&zone.Name,
			&boundary,
			&zone.DeliveryFee,
			&zone.MinimumDeliveryTime,
			&zone.Active,
		)
		if err != nil {
			return nil, err
		}

		zoneID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		zone.ID = zoneID

		if err = json.Unmarshal(boundary, &zone.Boundary); err != nil {
			return nil, err
		}

		zones = append(zones, zone)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return zones, nil
}
