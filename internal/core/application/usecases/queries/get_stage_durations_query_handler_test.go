package queries_test

import (
	"testing"
	"time"

	"shopfloor/internal/core/application/usecases/queries"
	"shopfloor/internal/core/domain/model/control"
	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/production"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/core/ports/portsmock"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func accountant(t *testing.T) *services.BusinessHoursAccountant {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)
	a, err := services.NewBusinessHoursAccountant(loc, services.DefaultWindows())
	require.NoError(t, err)
	return a
}

func newEvent(t *testing.T, ref kernel.EntityRef, kind event.Kind, at time.Time) *event.Event {
	t.Helper()
	e, err := event.NewEvent(ref, production.Montagem, kind, actor, at, "")
	require.NoError(t, err)
	return e
}

func TestGetStageDurationsQueryHandler_Handle(t *testing.T) {
	ctx := t.Context()
	ref := orderRef()
	uow := portsmock.NewUnitOfWork()

	events := []*event.Event{
		newEvent(t, ref, event.StatusKind(production.Montagem), t0.Add(-time.Minute)),
		newEvent(t, ref, event.ControlKind(control.Inicio), t0),
		newEvent(t, ref, event.ControlKind(control.Pausa), t0.Add(time.Hour)),
		// 13:00 local, after the lunch break.
		newEvent(t, ref, event.ControlKind(control.Retorno), t0.Add(4*time.Hour)),
	}
	uow.Store.On("Load", mock.Anything, ref).
		Return(ports.EntitySnapshot{Entity: ref, Status: production.Montagem, Version: 5}, nil).Once()
	uow.Events.On("ListByEntity", mock.Anything, ref).Return(events, nil).Once()

	now := t0.Add(5 * time.Hour)
	handler := queries.NewGetStageDurationsQueryHandler(portsmock.UnitOfWorkFactory{UoW: uow}, accountant(t),
		func() time.Time { return now })

	query, err := queries.NewGetStageDurationsQuery(ref)
	require.NoError(t, err)

	got, err := handler.Handle(ctx, query)
	require.NoError(t, err)

	assert.Equal(t, production.Montagem, got.Status)
	assert.Equal(t, 5, got.Version)
	assert.Equal(t, []queries.StageDurationView{
		{Stage: production.Montagem, Active: 2 * time.Hour, Open: true},
	}, got.Stages)
	assert.Equal(t, 2*time.Hour, got.Total)
	assert.True(t, now.Equal(got.MeasuredAt))
	uow.AssertExpectations(t)
}

func TestGetStageDurationsQueryHandler_UnknownEntity(t *testing.T) {
	ref := orderRef()
	uow := portsmock.NewUnitOfWork()
	uow.Store.On("Load", mock.Anything, ref).
		Return(ports.EntitySnapshot{}, errs.NewObjectNotFoundError("entity", ref)).Once()

	handler := queries.NewGetStageDurationsQueryHandler(portsmock.UnitOfWorkFactory{UoW: uow}, accountant(t), time.Now)
	query, err := queries.NewGetStageDurationsQuery(ref)
	require.NoError(t, err)

	_, err = handler.Handle(t.Context(), query)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	uow.AssertExpectations(t)
}

func TestGetStageDurationsQueryHandler_InvalidQuery(t *testing.T) {
	handler := queries.NewGetStageDurationsQueryHandler(portsmock.UnitOfWorkFactory{UoW: portsmock.NewUnitOfWork()}, accountant(t), time.Now)

	_, err := handler.Handle(t.Context(), queries.GetStageDurationsQuery{})
	require.ErrorIs(t, err, queries.ErrGetStageDurationsQueryIsNotConstructed)
}
