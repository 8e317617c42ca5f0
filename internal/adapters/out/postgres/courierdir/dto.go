// Package courierdir provides the read-side adapter over the courier roster.
// The dispatch core never mutates couriers; this package maps their stored
// positions and statuses into the domain read model and answers radius
// queries for the assignment engine.
package courierdir

import (
	"github.com/google/uuid"

	"dispatch/internal/core/domain/model/courier"
	"dispatch/internal/core/domain/model/kernel"
)

// CourierDTO represents the database structure of a courier row.
type CourierDTO struct {
	ID       uuid.UUID   `gorm:"type:uuid;primaryKey"`
	Name     string      `gorm:"type:varchar(255)"`
	Status   string      `gorm:"type:varchar(16);index"`
	Location GeoPointDTO `gorm:"embedded;embeddedPrefix:location_"`
}

// TableName specifies the database table name for courier entities.
func (CourierDTO) TableName() string {
	return "couriers"
}

// GeoPointDTO represents embedded coordinates within a table.
type GeoPointDTO struct {
	Latitude  float64 `gorm:"type:double precision"`
	Longitude float64 `gorm:"type:double precision"`
}

// toDomain converts a database DTO to a courier read model.
func toDomain(dto CourierDTO) (*courier.Courier, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	location, err := kernel.NewGeoPoint(dto.Location.Latitude, dto.Location.Longitude)
	if err != nil {
		return nil, err
	}

	status, err := courier.StatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	return courier.NewCourier(id, dto.Name, status, location)
}
