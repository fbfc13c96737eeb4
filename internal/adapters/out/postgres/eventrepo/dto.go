// Package eventrepo is the append-only event log.
package eventrepo

import (
	"time"

	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/workflow"

	"github.com/google/uuid"
)

// EventDTO is the events row. Seq fixes insertion order, which created_at
// alone cannot since events of one command share a timestamp.
type EventDTO struct {
	Seq        int64     `gorm:"primaryKey;autoIncrement"`
	ID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	EntityKind string    `gorm:"size:32;not null;index:idx_events_entity,priority:1"`
	EntityID   uuid.UUID `gorm:"type:uuid;not null;index:idx_events_entity,priority:2"`
	Stage      string    `gorm:"size:64;not null"`
	Kind       string    `gorm:"size:64;not null"`
	ActorID    string    `gorm:"size:64;not null"`
	Note       string    `gorm:"type:text"`
	CreatedAt  time.Time `gorm:"not null"`
}

func (EventDTO) TableName() string {
	return "events"
}

func fromDomain(e *event.Event) EventDTO {
	return EventDTO{
		ID:         e.ID().Google(),
		EntityKind: e.Entity().Kind.String(),
		EntityID:   e.Entity().ID.Google(),
		Stage:      string(e.Stage()),
		Kind:       e.Kind().String(),
		ActorID:    e.ActorID(),
		Note:       e.Note(),
		CreatedAt:  e.CreatedAt(),
	}
}

func toDomain(dto EventDTO) (*event.Event, error) {
	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	kind, err := kernel.ParseEntityKind(dto.EntityKind)
	if err != nil {
		return nil, err
	}
	entityID, err := kernel.UUIDFromGoogle(dto.EntityID)
	if err != nil {
		return nil, err
	}
	return event.RestoreEvent(id, kernel.EntityRef{Kind: kind, ID: entityID}, workflow.Stage(dto.Stage),
		event.Kind(dto.Kind), dto.ActorID, dto.CreatedAt, dto.Note)
}
