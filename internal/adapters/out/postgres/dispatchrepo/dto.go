// Package dispatchrepo persists the dispatch policy singleton, the zone
// registry and the assignment audit trails. Attempt histories live in child
// tables keyed by (log_id, seq) so their order survives round trips.
package dispatchrepo

import (
	"time"

	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/kernel"
)

// configRowID pins the policy singleton to one well-known row.
const configRowID = int16(1)

// ConfigDTO represents the database structure of the policy singleton.
type ConfigDTO struct {
	ID                     int16 `gorm:"primaryKey"`
	SearchRadius           int
	IncrementalRadius      int
	MaxIncrements          int
	MaxRadius              int
	OrderAssignmentTimeout int
	MaxOrdersPerCourier    int
}

// TableName specifies the database table name for the config singleton.
func (ConfigDTO) TableName() string {
	return "dispatch_configs"
}

func configFromDomain(cfg dispatch.Config) ConfigDTO {
	return ConfigDTO{
		ID:                     configRowID,
		SearchRadius:           cfg.SearchRadius,
		IncrementalRadius:      cfg.IncrementalRadius,
		MaxIncrements:          cfg.MaxIncrements,
		MaxRadius:              cfg.MaxRadius,
		OrderAssignmentTimeout: cfg.OrderAssignmentTimeout,
		MaxOrdersPerCourier:    cfg.MaxOrdersPerCourier,
	}
}

func configToDomain(dto ConfigDTO) dispatch.Config {
	return dispatch.Config{
		SearchRadius:           dto.SearchRadius,
		IncrementalRadius:      dto.IncrementalRadius,
		MaxIncrements:          dto.MaxIncrements,
		MaxRadius:              dto.MaxRadius,
		OrderAssignmentTimeout: dto.OrderAssignmentTimeout,
		MaxOrdersPerCourier:    dto.MaxOrdersPerCourier,
	}
}

// ZoneDTO represents the database structure of a delivery zone. The boundary
// ring is stored as a JSONB array of [latitude, longitude] pairs.
type ZoneDTO struct {
	ID                  uuid.UUID    `gorm:"type:uuid;primaryKey"`
	Name                string       `gorm:"type:varchar(255);uniqueIndex"`
	Boundary            [][2]float64 `gorm:"serializer:json;type:jsonb"`
	DeliveryFee         float64
	MinimumDeliveryTime int
	Active              bool `gorm:"index"`
}

// TableName specifies the database table name for zone entities.
func (ZoneDTO) TableName() string {
	return "dispatch_zones"
}

func zoneFromDomain(zone *dispatch.Zone) ZoneDTO {
	ring := zone.Boundary()
	boundary := make([][2]float64, 0, len(ring))
	for _, p := range ring {
		boundary = append(boundary, [2]float64{p.Latitude(), p.Longitude()})
	}

	return ZoneDTO{
		ID:                  zone.ID().Bytes(),
		Name:                zone.Name(),
		Boundary:            boundary,
		DeliveryFee:         zone.DeliveryFee(),
		MinimumDeliveryTime: zone.MinimumDeliveryTime(),
		Active:              zone.IsActive(),
	}
}

func zoneToDomain(dto ZoneDTO) (*dispatch.Zone, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	ring := make([]kernel.GeoPoint, 0, len(dto.Boundary))
	for _, p := range dto.Boundary {
		point, pointErr := kernel.NewGeoPoint(p[0], p[1])
		if pointErr != nil {
			return nil, pointErr
		}
		ring = append(ring, point)
	}

	return dispatch.RestoreZone(id, dto.Name, ring, dto.DeliveryFee, dto.MinimumDeliveryTime, dto.Active)
}

// LogDTO represents the database structure of an assignment audit trail.
// order_id carries a unique index: one journey per order, replaced wholesale
// on upsert.
type LogDTO struct {
	ID                      uuid.UUID  `gorm:"type:uuid;primaryKey"`
	OrderID                 uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	CourierID               *uuid.UUID `gorm:"type:uuid"`
	Status                  string     `gorm:"type:varchar(16);index"`
	ZoneID                  *uuid.UUID `gorm:"type:uuid"`
	ZoneDeliveryFee         *float64
	ZoneMinimumDeliveryTime *int
	CreatedAt               time.Time `gorm:"index"`

	SearchAttempts     []SearchAttemptDTO     `gorm:"foreignKey:LogID;constraint:OnDelete:CASCADE"`
	AssignmentAttempts []AssignmentAttemptDTO `gorm:"foreignKey:LogID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for audit trail entities.
func (LogDTO) TableName() string {
	return "dispatch_logs"
}

// SearchAttemptDTO represents one radius query of a journey.
type SearchAttemptDTO struct {
	LogID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq           int       `gorm:"primaryKey"`
	RadiusMeters  int
	CouriersFound int
	AttemptedAt   time.Time
}

// TableName specifies the database table name for search attempts.
func (SearchAttemptDTO) TableName() string {
	return "dispatch_log_search_attempts"
}

// AssignmentAttemptDTO represents one candidate offer of a journey.
type AssignmentAttemptDTO struct {
	LogID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Seq         int       `gorm:"primaryKey"`
	CourierID   uuid.UUID `gorm:"type:uuid"`
	Outcome     string    `gorm:"type:varchar(16)"`
	AttemptedAt time.Time
}

// TableName specifies the database table name for assignment attempts.
func (AssignmentAttemptDTO) TableName() string {
	return "dispatch_log_assignment_attempts"
}

func logFromDomain(journal *dispatch.Log) LogDTO {
	var courierID *uuid.UUID
	if id := journal.Courier(); id != nil {
		raw := id.Bytes()
		courierID = &raw
	}

	dto := LogDTO{
		ID:        journal.ID().Bytes(),
		OrderID:   journal.OrderID().Bytes(),
		CourierID: courierID,
		Status:    journal.Status().String(),
		CreatedAt: journal.CreatedAt(),
	}

	if zone := journal.Zone(); zone != nil {
		zoneID := zone.ZoneID.Bytes()
		fee := zone.DeliveryFee
		minutes := zone.MinimumDeliveryTime
		dto.ZoneID = &zoneID
		dto.ZoneDeliveryFee = &fee
		dto.ZoneMinimumDeliveryTime = &minutes
	}

	for i, attempt := range journal.SearchAttempts() {
		dto.SearchAttempts = append(dto.SearchAttempts, SearchAttemptDTO{
			LogID:         dto.ID,
			Seq:           i + 1,
			RadiusMeters:  attempt.RadiusMeters,
			CouriersFound: attempt.CouriersFound,
			AttemptedAt:   attempt.Timestamp,
		})
	}

	for i, attempt := range journal.AssignmentAttempts() {
		dto.AssignmentAttempts = append(dto.AssignmentAttempts, AssignmentAttemptDTO{
			LogID:       dto.ID,
			Seq:         i + 1,
			CourierID:   attempt.CourierID.Bytes(),
			Outcome:     attempt.Outcome.String(),
			AttemptedAt: attempt.Timestamp,
		})
	}

	return dto
}

func logToDomain(dto LogDTO) (*dispatch.Log, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var courierID *kernel.UUID
	if dto.CourierID != nil {
		cID, courierErr := kernel.UUIDFromBytes((*dto.CourierID)[:])
		if courierErr != nil {
			return nil, courierErr
		}
		courierID = &cID
	}

	status, err := dispatch.LogStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var zone *dispatch.ZoneSnapshot
	if dto.ZoneID != nil && dto.ZoneDeliveryFee != nil && dto.ZoneMinimumDeliveryTime != nil {
		zoneID, zoneErr := kernel.UUIDFromBytes((*dto.ZoneID)[:])
		if zoneErr != nil {
			return nil, zoneErr
		}
		zone = &dispatch.ZoneSnapshot{
			ZoneID:              zoneID,
			DeliveryFee:         *dto.ZoneDeliveryFee,
			MinimumDeliveryTime: *dto.ZoneMinimumDeliveryTime,
		}
	}

	searches := make([]dispatch.SearchAttempt, 0, len(dto.SearchAttempts))
	for _, attempt := range dto.SearchAttempts {
		searches = append(searches, dispatch.SearchAttempt{
			RadiusMeters:  attempt.RadiusMeters,
			CouriersFound: attempt.CouriersFound,
			Timestamp:     attempt.AttemptedAt,
		})
	}

	offers := make([]dispatch.AssignmentAttempt, 0, len(dto.AssignmentAttempts))
	for _, attempt := range dto.AssignmentAttempts {
		attemptCourier, courierErr := kernel.UUIDFromBytes(attempt.CourierID[:])
		if courierErr != nil {
			return nil, courierErr
		}
		outcome, outcomeErr := dispatch.OutcomeFromString(attempt.Outcome)
		if outcomeErr != nil {
			return nil, outcomeErr
		}
		offers = append(offers, dispatch.AssignmentAttempt{
			CourierID: attemptCourier,
			Outcome:   outcome,
			Timestamp: attempt.AttemptedAt,
		})
	}

	return dispatch.RestoreLog(id, orderID, courierID, status, zone, searches, offers, dto.CreatedAt)
}
