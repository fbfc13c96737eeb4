package queries

import (
	"errors"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/workflow"
	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

var ErrGetEntityTimelineQueryIsNotConstructed = errors.New(
	"GetEntityTimelineQuery must be created via NewGetEntityTimelineQuery constructor",
)

const maxTimelineLimit = 1000

// GetEntityTimelineQuery lists the events of one entity in insertion order.
// A zero limit returns every event.
type GetEntityTimelineQuery struct {
	entity kernel.EntityRef
	limit  int

	guard guard.ConstructorGuard
}

func NewGetEntityTimelineQuery(entity kernel.EntityRef, limit int) (GetEntityTimelineQuery, error) {
	if _, err := kernel.NewEntityRef(entity.Kind, entity.ID); err != nil {
		return GetEntityTimelineQuery{}, err
	}
	if limit < 0 || limit > maxTimelineLimit {
		return GetEntityTimelineQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 0, maxTimelineLimit)
	}
	return GetEntityTimelineQuery{entity: entity, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (q GetEntityTimelineQuery) Entity() kernel.EntityRef { return q.entity }
func (q GetEntityTimelineQuery) Limit() int               { return q.limit }

func (q GetEntityTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetEntityTimelineQueryIsNotConstructed)
}

type TimelineEntry struct {
	ID        kernel.UUID
	Stage     workflow.Stage
	Kind      string
	ActorID   string
	Note      string
	CreatedAt time.Time
}

type GetEntityTimelineQueryResponse struct {
	Entity  kernel.EntityRef
	Entries []TimelineEntry
}
