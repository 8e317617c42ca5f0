package queries

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/kernel"
)

// ListDispatchLogsQueryHandler retrieves audit trail read models from the
// database, newest first, with their attempt histories attached.
type ListDispatchLogsQueryHandler struct {
	db *gorm.DB
}

// NewListDispatchLogsQueryHandler creates a handler for audit trail queries.
func NewListDispatchLogsQueryHandler(db *gorm.DB) ListDispatchLogsQueryHandler {
	return ListDispatchLogsQueryHandler{db: db}
}

// Handle executes the query and returns matching logs newest first.
func (h ListDispatchLogsQueryHandler) Handle(
	ctx context.Context,
	query ListDispatchLogsQuery,
) ([]ListDispatchLogsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	logs, err := h.queryLogs(ctx, query)
	if err != nil {
		return nil, err
	}

	for i := range logs {
		if logs[i].SearchAttempts, err = h.querySearchAttempts(ctx, logs[i].ID); err != nil {
			return nil, err
		}
		if logs[i].AssignmentAttempts, err = h.queryAssignmentAttempts(ctx, logs[i].ID); err != nil {
			return nil, err
		}
	}

	return logs, nil
}

func (h ListDispatchLogsQueryHandler) queryLogs(
	ctx context.Context,
	query ListDispatchLogsQuery,
) ([]ListDispatchLogsQueryResponse, error) {
	sqlQuery := `
		SELECT
			id,
			order_id,
			courier_id,
			status,
			zone_id,
			zone_delivery_fee,
			zone_minimum_delivery_time,
			created_at
		FROM dispatch_logs
		WHERE 1=1
	`
	args := make([]any, 0, 3)

	if query.Status() != nil {
		sqlQuery += " AND status = ?"
		args = append(args, query.Status().String())
	}
	if query.From() != nil {
		sqlQuery += " AND created_at >= ?"
		args = append(args, *query.From())
	}
	if query.To() != nil {
		sqlQuery += " AND created_at <= ?"
		args = append(args, *query.To())
	}

	sqlQuery += " ORDER BY created_at DESC"

	rows, err := h.db.WithContext(ctx).Raw(sqlQuery, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := make([]ListDispatchLogsQueryResponse, 0)

	for rows.Next() {
		var entry ListDispatchLogsQueryResponse
		var id, orderID uuid.UUID
		var courierID, zoneID uuid.NullUUID
		var fee sql.NullFloat64
		var minutes sql.NullInt64

		err = rows.Scan(
			&id,
			&orderID,
			&courierID,
			&entry.Status,
			&zoneID,
			&fee,
			&minutes,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, err
		}

		if entry.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if entry.OrderID, err = kernel.UUIDFromBytes(orderID[:]); err != nil {
			return nil, err
		}
		if entry.CourierID, err = nullableUUID(courierID); err != nil {
			return nil, err
		}
		if entry.ZoneID, err = nullableUUID(zoneID); err != nil {
			return nil, err
		}
		if fee.Valid {
			entry.DeliveryFee = &fee.Float64
		}
		if minutes.Valid {
			m := int(minutes.Int64)
			entry.MinimumDeliveryTime = &m
		}

		logs = append(logs, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return logs, nil
}

func (h ListDispatchLogsQueryHandler) querySearchAttempts(
	ctx context.Context,
	logID kernel.UUID,
) ([]SearchAttemptResponse, error) {
	attempts := make([]SearchAttemptResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT radius_meters, couriers_found, attempted_at
		FROM dispatch_log_search_attempts
		WHERE log_id = ?
		ORDER BY seq
	`, logID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var attempt SearchAttemptResponse
		if err = rows.Scan(&attempt.RadiusMeters, &attempt.CouriersFound, &attempt.Timestamp); err != nil {
			return nil, err
		}
		attempts = append(attempts, attempt)
	}

	return attempts, rows.Err()
}

func (h ListDispatchLogsQueryHandler) queryAssignmentAttempts(
	ctx context.Context,
	logID kernel.UUID,
) ([]AssignmentAttemptResponse, error) {
	attempts := make([]AssignmentAttemptResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT courier_id, outcome, attempted_at
		FROM dispatch_log_assignment_attempts
		WHERE log_id = ?
		ORDER BY seq
	`, logID.Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var attempt AssignmentAttemptResponse
		var courierID uuid.UUID

		if err = rows.Scan(&courierID, &attempt.Outcome, &attempt.Timestamp); err != nil {
			return nil, err
		}
		if attempt.CourierID, err = kernel.UUIDFromBytes(courierID[:]); err != nil {
			return nil, err
		}

		attempts = append(attempts, attempt)
	}

	return attempts, rows.Err()
}

func nullableUUID(id uuid.NullUUID) (*kernel.UUID, error) {
	if !id.Valid {
		return nil, nil
	}

	parsed, err := kernel.UUIDFromBytes(id.UUID[:])
	if err != nil {
		return nil, err
	}

	return &parsed, nil
}
