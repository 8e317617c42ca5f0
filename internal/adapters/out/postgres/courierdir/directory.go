package courierdir

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// GormCourierDirectory implements ports.CourierDirectory using GORM.
// Radius queries compute great-circle distances with the haversine formula
// directly in SQL, so filtering and nearest-first ordering happen in the
// database rather than in memory.
type GormCourierDirectory struct {
	db *gorm.DB
}

// NewGormCourierDirectory creates a new GORM courier directory.
func NewGormCourierDirectory(db *gorm.DB) *GormCourierDirectory {
	return &GormCourierDirectory{db: db}
}

// Get retrieves a courier by ID.
func (d *GormCourierDirectory) Get(ctx context.Context, id kernel.UUID) (*courier.Courier, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto CourierDTO
	if err := d.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("courier", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// FindNearby returns active couriers within radiusMeters of the given point,
// nearest first.
func (d *GormCourierDirectory) FindNearby(
	ctx context.Context,
	point kernel.GeoPoint,
	radiusMeters int,
) ([]*courier.Courier, error) {
	if err := point.Validate(); err != nil {
		return nil, err
	}

	var dtos []CourierDTO

	err := d.db.WithContext(ctx).Raw(`
		SELECT id, name, status, location_latitude, location_longitude
		FROM (
			SELECT *,
				2 * 6371000 * asin(sqrt(
					power(sin(radians(location_latitude - ?) / 2), 2) +
					cos(radians(?)) * cos(radians(location_latitude)) *
					power(sin(radians(location_longitude - ?) / 2), 2)
				)) AS distance_meters
			FROM couriers
			WHERE status = 'active'
		) nearby
		WHERE distance_meters <= ?
		ORDER BY distance_meters
	`, point.Latitude(), point.Latitude(), point.Longitude(), radiusMeters).
		Scan(&dtos).Error
	if err != nil {
		return nil, err
	}

	couriers := make([]*courier.Courier, 0, len(dtos))
	for _, dto := range dtos {
		c, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		couriers = append(couriers, c)
	}

	return couriers, nil
}
