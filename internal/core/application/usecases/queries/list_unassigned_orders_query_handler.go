package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/kernel"
)

// ListUnassignedOrdersQueryHandler retrieves waiting orders from the database.
type ListUnassignedOrdersQueryHandler struct {
	db *gorm.DB
}

// NewListUnassignedOrdersQueryHandler creates a handler for waiting order queries.
func NewListUnassignedOrdersQueryHandler(db *gorm.DB) ListUnassignedOrdersQueryHandler {
	return ListUnassignedOrdersQueryHandler{db: db}
}

// Handle returns orders in placed status in a stable id order, so repeated
// sweeps walk the backlog deterministically.
func (h ListUnassignedOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListUnassignedOrdersQuery,
) ([]ListUnassignedOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]ListUnassignedOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			delivery_latitude,
			delivery_longitude
		FROM orders
		WHERE status = 'placed'
		ORDER BY id
	`).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var entry ListUnassignedOrdersQueryResponse
		var id uuid.UUID

		if err = rows.Scan(&id, &entry.Latitude, &entry.Longitude); err != nil {
			return nil, err
		}
		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}

		orders = append(orders, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
