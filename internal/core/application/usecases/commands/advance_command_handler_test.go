package commands_test

import (
	"testing"
	"time"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/domain/model/control"
	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/production"
	"shopfloor/internal/core/domain/model/repair"
	"shopfloor/internal/core/domain/model/shipment"
	"shopfloor/internal/core/ports/portsmock"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAdvanceProductionOrderCommandHandler_DefaultSuccessor(t *testing.T) {
	ctx := t.Context()
	order := restoreOrder(t, production.FinalProduct, production.Aguardando, 2)

	uow := portsmock.NewUnitOfWork()
	uow.Orders.On("Get", mock.Anything, order.ID()).Return(order, nil).Once()
	uow.Orders.On("ListFinalUnits", mock.Anything, order.ID()).Return(nil, nil).Once()
	uow.SubAssembly.On("CountByOrder", mock.Anything, order.ID()).Return(0, nil).Once()
	uow.Events.On("ListByEntity", mock.Anything, order.Ref()).Return(nil, nil).Once()
	uow.ExpectTx(ctx)
	uow.Store.On("Claim", mock.Anything, claimOf(order.Ref(), 2, production.Aguardando, production.Montagem)).Return(nil).Once()
	uow.Events.On("Append", mock.Anything, eventsOfKind(event.StatusKind(production.Montagem))).Return(nil).Once()

	h := commands.NewAdvanceProductionOrderCommandHandler(uowFactory{uow}, allowAll("producao"), fixedClock(t0), nopLogger())
	cmd, err := commands.NewAdvanceCommand(order.Ref(), "", actor, "")
	require.NoError(t, err)

	res, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, commands.AdvanceResult{From: production.Aguardando, To: production.Montagem, Version: 3}, res)
	uow.AssertExpectations(t)
}

func TestAdvanceProductionOrderCommandHandler_GuardOnOpenSequence(t *testing.T) {
	ctx := t.Context()
	order := restoreOrder(t, production.FinalProduct, production.Embalagem, 6)
	units, err := production.GenerateFinalUnits(restoreOrder(t, production.FinalProduct, production.Montagem, 0), 0, 2, t0)
	require.NoError(t, err)
	history := []*event.Event{controlEvent(t, order.Ref(), production.Embalagem, control.Inicio, t0)}

	uow := portsmock.NewUnitOfWork()
	uow.Orders.On("Get", mock.Anything, order.ID()).Return(order, nil).Once()
	uow.Orders.On("ListFinalUnits", mock.Anything, order.ID()).Return(units, nil).Once()
	uow.SubAssembly.On("CountByOrder", mock.Anything, order.ID()).Return(0, nil).Once()
	uow.Events.On("ListByEntity", mock.Anything, order.Ref()).Return(history, nil).Once()

	h := commands.NewAdvanceProductionOrderCommandHandler(uowFactory{uow}, allowAll("producao"), fixedClock(t0), nopLogger())
	cmd, _ := commands.NewAdvanceCommand(order.Ref(), production.Finalizada, actor, "")

	_, err = h.Handle(ctx, cmd)
	var guardErr *errs.GuardViolationError
	require.ErrorAs(t, err, &guardErr)
	assert.Equal(t, production.ConditionNoOpenSequence, guardErr.Condition)
	uow.AssertExpectations(t)
	uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestAdvanceProductionOrderCommandHandler_CancelIgnoresGuards(t *testing.T) {
	ctx := t.Context()
	order := restoreOrder(t, production.FinalProduct, production.Montagem, 4)
	history := []*event.Event{controlEvent(t, order.Ref(), production.Montagem, control.Inicio, t0)}

	uow := portsmock.NewUnitOfWork()
	uow.Orders.On("Get", mock.Anything, order.ID()).Return(order, nil).Once()
	uow.Orders.On("ListFinalUnits", mock.Anything, order.ID()).Return(nil, nil).Once()
	uow.SubAssembly.On("CountByOrder", mock.Anything, order.ID()).Return(0, nil).Once()
	uow.Events.On("ListByEntity", mock.Anything, order.Ref()).Return(history, nil).Once()
	uow.ExpectTx(ctx)
	uow.Store.On("Claim", mock.Anything, claimOf(order.Ref(), 4, production.Montagem, production.Cancelada)).Return(nil).Once()
	uow.Events.On("Append", mock.Anything, eventsOfKind(event.StatusKind(production.Cancelada))).Return(nil).Once()

	h := commands.NewAdvanceProductionOrderCommandHandler(uowFactory{uow}, allowAll("producao"), fixedClock(t0), nopLogger())
	cmd, _ := commands.NewAdvanceCommand(order.Ref(), production.Cancelada, actor, "customer cancelled")

	res, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, production.Cancelada, res.To)
	uow.AssertExpectations(t)
}

func TestAdvanceProductionOrderCommandHandler_WrongKind(t *testing.T) {
	h := commands.NewAdvanceProductionOrderCommandHandler(uowFactory{portsmock.NewUnitOfWork()}, allowAll("producao"), fixedClock(t0), nopLogger())
	cmd, _ := commands.NewAdvanceCommand(kernel.EntityRef{Kind: kernel.ShipmentBatch, ID: kernel.NewUUID()}, "", actor, "")

	_, err := h.Handle(t.Context(), cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}

func TestAdvanceShipmentBatchCommandHandler(t *testing.T) {
	ctx := t.Context()
	batch, err := shipment.RestoreBatch(kernel.NewUUID(), "PV-88", "10", "ACME", 3, shipment.Separacao, 1, t0)
	require.NoError(t, err)

	uow := portsmock.NewUnitOfWork()
	uow.Batches.On("Get", mock.Anything, batch.ID()).Return(batch, nil).Once()
	uow.Events.On("ListByEntity", mock.Anything, batch.Ref()).Return(nil, nil).Once()
	uow.ExpectTx(ctx)
	uow.Store.On("Claim", mock.Anything, claimOf(batch.Ref(), 1, shipment.Separacao, shipment.Conferencia)).Return(nil).Once()
	uow.Events.On("Append", mock.Anything, eventsOfKind(event.StatusKind(shipment.Conferencia))).Return(nil).Once()

	h := commands.NewAdvanceShipmentBatchCommandHandler(uowFactory{uow}, allowAll("expedicao"), fixedClock(t0), nopLogger())
	cmd, _ := commands.NewAdvanceCommand(batch.Ref(), "", actor, "")

	res, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.Equal(t, shipment.Conferencia, res.To)
	assert.Equal(t, 2, res.Version)
	uow.AssertExpectations(t)
}

func TestAdvanceRepairTicketCommandHandler_BudgetGuard(t *testing.T) {
	ctx := t.Context()
	ticket, err := repair.RestoreTicket(kernel.NewUUID(), "10", "PA-100", "SN-1", "ACME", false, false,
		repair.AguardandoAprovacao, 3, t0.Add(-24*time.Hour))
	require.NoError(t, err)

	uow := portsmock.NewUnitOfWork()
	uow.Tickets.On("Get", mock.Anything, ticket.ID()).Return(ticket, nil).Once()
	uow.Events.On("ListByEntity", mock.Anything, ticket.Ref()).Return(nil, nil).Once()

	h := commands.NewAdvanceRepairTicketCommandHandler(uowFactory{uow}, allowAll("assistencia"), fixedClock(t0), nopLogger())
	cmd, _ := commands.NewAdvanceCommand(ticket.Ref(), repair.Reparo, actor, "")

	_, err = h.Handle(ctx, cmd)
	var guardErr *errs.GuardViolationError
	require.ErrorAs(t, err, &guardErr)
	assert.Equal(t, repair.ConditionBudgetApproved, guardErr.Condition)
	uow.AssertExpectations(t)
}

func TestNewAdvanceCommand(t *testing.T) {
	_, err := commands.NewAdvanceCommand(kernel.EntityRef{Kind: kernel.RepairTicket}, "", actor, "")
	require.Error(t, err)

	_, err = commands.NewAdvanceCommand(kernel.EntityRef{Kind: kernel.RepairTicket, ID: kernel.NewUUID()}, "", "", "")
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}
