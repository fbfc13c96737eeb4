package repairrepo

import (
	"context"
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/repair"
	"shopfloor/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRepairTicketRepository implements ports.RepairTicketRepository.
type GormRepairTicketRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormRepairTicketRepository(db *gorm.DB, tracker aggregateTracker) *GormRepairTicketRepository {
	return &GormRepairTicketRepository{db: db, tracker: tracker}
}

func (r *GormRepairTicketRepository) Add(ctx context.Context, aggregate *repair.Ticket) error {
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

func (r *GormRepairTicketRepository) Get(ctx context.Context, id kernel.UUID) (*repair.Ticket, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto TicketDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Google()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("repair ticket", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateBudget writes only budget_approved; status and version belong to the
// entity store.
func (r *GormRepairTicketRepository) UpdateBudget(ctx context.Context, aggregate *repair.Ticket) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&TicketDTO{}).
		Where("id = ?", aggregate.ID().Google()).
		Update("budget_approved", aggregate.BudgetApproved())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}
