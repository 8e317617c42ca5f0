package dispatchrepo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// GormDispatchZoneRepository implements DispatchZoneRepository using GORM.
// Name uniqueness is enforced by the database index; violations surface as
// dispatch.ErrDuplicateZoneName. Requires TranslateError enabled on the
// gorm connection.
type GormDispatchZoneRepository struct {
	db *gorm.DB
}

// NewGormDispatchZoneRepository creates a new GORM zone repository.
func NewGormDispatchZoneRepository(db *gorm.DB) *GormDispatchZoneRepository {
	return &GormDispatchZoneRepository{db: db}
}

// Add saves a new zone to the database.
func (r *GormDispatchZoneRepository) Add(ctx context.Context, zone *dispatch.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}

	dto := zoneFromDomain(zone)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return translateZoneError(err, zone.Name())
	}

	return nil
}

// Update saves an existing zone to the database.
func (r *GormDispatchZoneRepository) Update(ctx context.Context, zone *dispatch.Zone) error {
	if err := zone.Validate(); err != nil {
		return err
	}

	dto := zoneFromDomain(zone)
	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return translateZoneError(result.Error, zone.Name())
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// Get retrieves a zone by ID.
func (r *GormDispatchZoneRepository) Get(ctx context.Context, id kernel.UUID) (*dispatch.Zone, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ZoneDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dispatch zone", id.String())
		}
		return nil, err
	}

	return zoneToDomain(dto)
}

// GetAll retrieves every zone sorted by name.
func (r *GormDispatchZoneRepository) GetAll(ctx context.Context) ([]*dispatch.Zone, error) {
	var dtos []ZoneDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos).Error; err != nil {
		return nil, err
	}

	return zonesToDomain(dtos)
}

// GetAllActive retrieves the zones currently serving orders.
func (r *GormDispatchZoneRepository) GetAllActive(ctx context.Context) ([]*dispatch.Zone, error) {
	var dtos []ZoneDTO
	if err := r.db.WithContext(ctx).Order("name").Find(&dtos, "active = ?", true).Error; err != nil {
		return nil, err
	}

	return zonesToDomain(dtos)
}

func zonesToDomain(dtos []ZoneDTO) ([]*dispatch.Zone, error) {
	zones := make([]*dispatch.Zone, 0, len(dtos))
	for _, dto := range dtos {
		zone, err := zoneToDomain(dto)
		if err != nil {
			return nil, err
		}
		zones = append(zones, zone)
	}

	return zones, nil
}

func translateZoneError(err error, name string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s", dispatch.ErrDuplicateZoneName, name)
	}
	return err
}
