package event_test

import (
	"testing"
	"time"

	"shopfloor/internal/core/domain/model/control"
	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/workflow"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2024, 3, 4, 8, 0, 0, 0, time.UTC)

func ref() kernel.EntityRef {
	return kernel.EntityRef{Kind: kernel.ProductionOrder, ID: kernel.NewUUID()}
}

func mustEvent(t *testing.T, entity kernel.EntityRef, stage workflow.Stage, kind event.Kind, at time.Time) *event.Event {
	t.Helper()
	e, err := event.NewEvent(entity, stage, kind, "op-1", at, "")
	require.NoError(t, err)
	return e
}

func TestNewEvent(t *testing.T) {
	t.Run("valid_control_event", func(t *testing.T) {
		entity := ref()

		e, err := event.NewEvent(entity, "montagem", event.ControlKind(control.Pausa), " op-7 ", t0, "almoço")

		require.NoError(t, err)
		require.NoError(t, e.Validate())
		assert.Equal(t, entity, e.Entity())
		assert.Equal(t, "op-7", e.ActorID())
		assert.Equal(t, "almoço", e.Note())
		k, ok := e.Control()
		assert.True(t, ok)
		assert.Equal(t, control.Pausa, k)
	})

	t.Run("audit_event_is_not_control", func(t *testing.T) {
		e := mustEvent(t, ref(), "montagem", event.StatusKind("montagem"), t0)

		_, ok := e.Control()
		assert.False(t, ok)
		assert.Equal(t, event.Kind("status_montagem"), e.Kind())
	})

	t.Run("collects_all_validation_errors", func(t *testing.T) {
		_, err := event.NewEvent(kernel.EntityRef{}, "", "bogus", "", time.Time{}, "")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "actor")
		assert.Contains(t, err.Error(), "stage")
	})

	t.Run("zero_value_is_not_constructed", func(t *testing.T) {
		var e event.Event
		assert.Equal(t, event.ErrEventIsNotConstructed, e.Validate())
	})
}

func TestKind_Validate(t *testing.T) {
	for _, k := range []event.Kind{"inicio", "fim", "consumo", "vinculo_subproduto", "status_teste"} {
		require.NoError(t, k.Validate(), k)
	}
	for _, k := range []event.Kind{"", "status_", "none", "start"} {
		require.Error(t, k.Validate(), k)
	}
}

func TestLastControl(t *testing.T) {
	entity := ref()
	events := []*event.Event{
		mustEvent(t, entity, "montagem", "inicio", t0),
		mustEvent(t, entity, "montagem", "pausa", t0.Add(time.Hour)),
		mustEvent(t, entity, "montagem", event.Consumo, t0.Add(2*time.Hour)),
		mustEvent(t, entity, "teste", "inicio", t0.Add(3*time.Hour)),
	}

	assert.Equal(t, control.Pausa, event.LastControl(events, "montagem"))
	assert.Equal(t, control.Inicio, event.LastControl(events, "teste"))
	assert.Equal(t, control.None, event.LastControl(events, "embalagem"))
	assert.Equal(t, control.None, event.LastControl(nil, "montagem"))
}

func TestOpenStages(t *testing.T) {
	entity := ref()
	events := []*event.Event{
		mustEvent(t, entity, "montagem", "inicio", t0),
		mustEvent(t, entity, "teste", "inicio", t0.Add(time.Minute)),
		mustEvent(t, entity, "montagem", "pausa", t0.Add(2*time.Minute)),
		mustEvent(t, entity, "embalagem", "inicio", t0.Add(3*time.Minute)),
		mustEvent(t, entity, "embalagem", "fim", t0.Add(4*time.Minute)),
		mustEvent(t, entity, "montagem", "retorno", t0.Add(5*time.Minute)),
	}

	assert.Equal(t, []workflow.Stage{"montagem", "teste"}, event.OpenStages(events))
	assert.Empty(t, event.OpenStages(events[3:5]))
}
