package eventrepo

import (
	"context"

	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormEventRepository implements ports.EventRepository.
type GormEventRepository struct {
	db *gorm.DB
}

func NewGormEventRepository(db *gorm.DB) *GormEventRepository {
	return &GormEventRepository{db: db}
}

// Append inserts events in the given order.
func (r *GormEventRepository) Append(ctx context.Context, events ...*event.Event) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		if err := e.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(e))
	}

	return r.db.WithContext(ctx).Create(&dtos).Error
}

// ListByEntity returns the events of entity in insertion order.
func (r *GormEventRepository) ListByEntity(ctx context.Context, entity kernel.EntityRef) ([]*event.Event, error) {
	var dtos []EventDTO
	if err := r.db.WithContext(ctx).
		Where("entity_kind = ? AND entity_id = ?", entity.Kind.String(), entity.ID.Google()).
		Order("seq").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	events := make([]*event.Event, 0, len(dtos))
	for _, dto := range dtos {
		e, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, nil
}
