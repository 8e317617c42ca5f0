package dispatchrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"dispatch/internal/core/domain/model/dispatch"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
)

// GormDispatchLogRepository implements DispatchLogRepository using GORM.
type GormDispatchLogRepository struct {
	db *gorm.DB
}

// NewGormDispatchLogRepository creates a new GORM audit trail repository.
func NewGormDispatchLogRepository(db *gorm.DB) *GormDispatchLogRepository {
	return &GormDispatchLogRepository{db: db}
}

// Upsert stores the journey keyed by its order. Any previous journey for the
// same order is replaced wholesale, children included; the child rows cascade
// with their parent.
func (r *GormDispatchLogRepository) Upsert(ctx context.Context, journal *dispatch.Log) error {
	if err := journal.Validate(); err != nil {
		return err
	}

	dto := logFromDomain(journal)
	tx := r.db.WithContext(ctx)

	if err := tx.Where("order_id = ?", dto.OrderID).Delete(&LogDTO{}).Error; err != nil {
		return err
	}

	return tx.Create(&dto).Error
}

// GetByOrder retrieves the journey for one order with its attempt histories.
func (r *GormDispatchLogRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) (*dispatch.Log, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto LogDTO
	err := r.db.WithContext(ctx).
		Preload("SearchAttempts", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		Preload("AssignmentAttempts", func(db *gorm.DB) *gorm.DB { return db.Order("seq") }).
		First(&dto, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("dispatch log", orderID.String())
		}
		return nil, err
	}

	return logToDomain(dto)
}
