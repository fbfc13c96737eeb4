package productionrepo

import (
	"context"
	"errors"

	"shopfloor/internal/adapters/out/postgres/pgerrs"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/production"
	"shopfloor/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormProductionOrderRepository implements ports.ProductionOrderRepository.
type GormProductionOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormProductionOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormProductionOrderRepository {
	return &GormProductionOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new production order.
func (r *GormProductionOrderRepository) Add(ctx context.Context, aggregate *production.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := orderFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if _, ok := pgerrs.UniqueViolation(err); ok {
			return errs.NewConcurrencyConflictErrorWithCause(kernel.ProductionOrder.String(), aggregate.ID().String(), err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a production order by ID.
func (r *GormProductionOrderRepository) Get(ctx context.Context, id kernel.UUID) (*production.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("production order", id.String())
		}
		return nil, err
	}

	return orderToDomain(dto)
}

// AddFinalUnits inserts units in one statement. A serial collision means a
// concurrent generation won.
func (r *GormProductionOrderRepository) AddFinalUnits(ctx context.Context, units []*production.FinalUnit) error {
	if len(units) == 0 {
		return nil
	}

	dtos := make([]FinalUnitDTO, 0, len(units))
	for _, u := range units {
		if err := u.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, unitFromDomain(u))
	}

	if err := r.db.WithContext(ctx).Create(&dtos).Error; err != nil {
		if _, ok := pgerrs.UniqueViolation(err); ok {
			return errs.NewConcurrencyConflictErrorWithCause(kernel.ProductionOrder.String(), units[0].OrderID().String(), err)
		}
		return err
	}

	for _, u := range units {
		r.tracker.TrackAggregate(u.ID(), u)
	}
	return nil
}

func (r *GormProductionOrderRepository) GetFinalUnit(ctx context.Context, id kernel.UUID) (*production.FinalUnit, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto FinalUnitDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("final unit", id.String())
		}
		return nil, err
	}

	return unitToDomain(dto)
}

// ListFinalUnits returns the units of an order ordered by serial.
func (r *GormProductionOrderRepository) ListFinalUnits(ctx context.Context, orderID kernel.UUID) ([]*production.FinalUnit, error) {
	var dtos []FinalUnitDTO
	if err := r.db.WithContext(ctx).
		Where("production_order_id = ?", orderID.Google()).
		Order("serial").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	units := make([]*production.FinalUnit, 0, len(dtos))
	for _, dto := range dtos {
		u, err := unitToDomain(dto)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}
