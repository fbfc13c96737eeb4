package queries

import (
	"context"
	"time"

	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/core/ports"
)

// GetStageDurationsQueryHandler sums business-hours time per stage from the
// control events of one entity.
type GetStageDurationsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	hours      *services.BusinessHoursAccountant
	now        func() time.Time
}

func NewGetStageDurationsQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	hours *services.BusinessHoursAccountant,
	now func() time.Time,
) GetStageDurationsQueryHandler {
	return GetStageDurationsQueryHandler{uowFactory: uowFactory, hours: hours, now: now}
}

// Handle returns *errs.ObjectNotFoundError when the entity does not exist.
func (h GetStageDurationsQueryHandler) Handle(
	ctx context.Context,
	query GetStageDurationsQuery,
) (GetStageDurationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetStageDurationsQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	snapshot, err := uow.EntityStore().Load(ctx, query.Entity())
	if err != nil {
		return GetStageDurationsQueryResponse{}, err
	}
	events, err := uow.EventRepository().ListByEntity(ctx, query.Entity())
	if err != nil {
		return GetStageDurationsQueryResponse{}, err
	}

	now := h.now()
	report := h.hours.StageDurations(events, now)

	resp := GetStageDurationsQueryResponse{
		Entity:     snapshot.Entity,
		Status:     snapshot.Status,
		Version:    snapshot.Version,
		Stages:     make([]StageDurationView, 0, len(report.Stages)),
		Total:      report.Total,
		MeasuredAt: now,
	}
	for _, s := range report.Stages {
		resp.Stages = append(resp.Stages, StageDurationView{Stage: s.Stage, Active: s.Active, Open: s.Open})
	}
	return resp, nil
}
