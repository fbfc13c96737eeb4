package shipmentrepo

import (
	"context"
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/shipment"
	"shopfloor/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormShipmentBatchRepository implements ports.ShipmentBatchRepository.
type GormShipmentBatchRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormShipmentBatchRepository(db *gorm.DB, tracker aggregateTracker) *GormShipmentBatchRepository {
	return &GormShipmentBatchRepository{db: db, tracker: tracker}
}

func (r *GormShipmentBatchRepository) Add(ctx context.Context, aggregate *shipment.Batch) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormShipmentBatchRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Batch, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto BatchDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("shipment batch", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
