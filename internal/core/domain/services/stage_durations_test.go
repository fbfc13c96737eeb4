package services_test

import (
	"testing"
	"time"

	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/workflow"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessHoursAccountant_StageDurations(t *testing.T) {
	a := defaultAccountant(t)
	loc := a.Location()
	at := func(h, m int) time.Time { return time.Date(2024, 3, 4, h, m, 0, 0, loc) }
	entity := kernel.EntityRef{Kind: kernel.ProductionOrder, ID: kernel.NewUUID()}

	ev := func(stage workflow.Stage, kind event.Kind, when time.Time) *event.Event {
		e, err := event.NewEvent(entity, stage, kind, "op-1", when, "")
		require.NoError(t, err)
		return e
	}

	events := []*event.Event{
		ev("montagem", "inicio", at(8, 0)),
		ev("montagem", event.Consumo, at(8, 30)),
		ev("montagem", "pausa", at(9, 0)),
		ev("montagem", "retorno", at(11, 0)),
		ev("montagem", "fim", at(13, 30)),
		ev("teste", "inicio", at(14, 0)),
	}

	report := a.StageDurations(events, at(15, 0))

	require.Len(t, report.Stages, 2)
	assert.Equal(t, workflow.Stage("montagem"), report.Stages[0].Stage)
	assert.Equal(t, time.Hour+90*time.Minute, report.Stages[0].Active)
	assert.False(t, report.Stages[0].Open)
	assert.Equal(t, time.Hour, report.Stages[1].Active)
	assert.True(t, report.Stages[1].Open)
	assert.Equal(t, 3*time.Hour+30*time.Minute, report.Total)
}

func TestBusinessHoursAccountant_StageDurations_NowBeforeStart(t *testing.T) {
	a := defaultAccountant(t)
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, a.Location())
	e, err := event.NewEvent(kernel.EntityRef{Kind: kernel.RepairTicket, ID: kernel.NewUUID()}, "reparo", "inicio", "op", start, "")
	require.NoError(t, err)

	report := a.StageDurations([]*event.Event{e}, start.Add(-time.Hour))

	require.Len(t, report.Stages, 1)
	assert.Zero(t, report.Stages[0].Active)
	assert.Zero(t, report.Total)
}
