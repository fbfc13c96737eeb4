package commands_test

import (
	"testing"
	"time"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/domain/model/control"
	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/production"
	"shopfloor/internal/core/domain/model/workflow"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/core/ports/portsmock"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const actor = "op-17"

// t0 is a Monday 09:00 in Sao Paulo, inside the default work windows.
var t0 = time.Date(2024, 3, 4, 12, 0, 0, 0, time.UTC)

type uowFactory struct{ uow *portsmock.UnitOfWork }

func (f uowFactory) Create() commands.UoW { return f.uow }

func fixedClock(at time.Time) commands.Clock {
	return func() time.Time { return at }
}

func allowAll(sector string) *portsmock.Authorizer {
	auth := new(portsmock.Authorizer)
	auth.On("IsActiveInSector", mock.Anything, actor, sector).Return(true, nil)
	return auth
}

func nopLogger() zerolog.Logger {
	return zerolog.Nop()
}

func restoreOrder(t *testing.T, kind production.Kind, status workflow.Stage, version int) *production.Order {
	t.Helper()
	o, err := production.RestoreOrder(kernel.NewUUID(), "OP-1042", "10", "PA-100", 2, kind, false, status, version, t0.Add(-time.Hour))
	require.NoError(t, err)
	return o
}

func controlEvent(t *testing.T, ref kernel.EntityRef, stage workflow.Stage, k control.Kind, at time.Time) *event.Event {
	t.Helper()
	e, err := event.NewEvent(ref, stage, event.ControlKind(k), actor, at, "")
	require.NoError(t, err)
	return e
}

// eventsOfKind matches an Append call carrying exactly one event of kind.
func eventsOfKind(kind event.Kind) any {
	return mock.MatchedBy(func(events []*event.Event) bool {
		return len(events) == 1 && events[0].Kind() == kind
	})
}

func claimOf(ref kernel.EntityRef, version int, from, to workflow.Stage) ports.ClaimRequest {
	return ports.ClaimRequest{Entity: ref, ExpectedVersion: version, ExpectedStatus: from, NextStatus: to}
}
