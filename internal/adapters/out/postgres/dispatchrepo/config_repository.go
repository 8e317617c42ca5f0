package dispatchrepo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dispatch/internal/core/domain/model/dispatch"
)

// GormDispatchConfigRepository implements DispatchConfigRepository using GORM.
type GormDispatchConfigRepository struct {
	db *gorm.DB
}

// NewGormDispatchConfigRepository creates a new GORM config repository.
func NewGormDispatchConfigRepository(db *gorm.DB) *GormDispatchConfigRepository {
	return &GormDispatchConfigRepository{db: db}
}

// GetOrCreate returns the policy singleton, inserting the documented defaults
// first if no row exists. The insert is ON CONFLICT DO NOTHING on the fixed
// row id, so concurrent first reads converge on exactly one row.
func (r *GormDispatchConfigRepository) GetOrCreate(ctx context.Context) (dispatch.Config, error) {
	defaults := configFromDomain(dispatch.DefaultConfig())
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&defaults).Error
	if err != nil {
		return dispatch.Config{}, err
	}

	var dto ConfigDTO
	if err = r.db.WithContext(ctx).First(&dto, "id = ?", configRowID).Error; err != nil {
		return dispatch.Config{}, err
	}

	cfg := configToDomain(dto)
	if err = cfg.Validate(); err != nil {
		return dispatch.Config{}, err
	}

	return cfg, nil
}

// Save replaces the policy singleton with an already-validated config.
func (r *GormDispatchConfigRepository) Save(ctx context.Context, cfg dispatch.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	dto := configFromDomain(cfg)
	return r.db.WithContext(ctx).Save(&dto).Error
}
