package commands_test

import (
	"testing"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/production"
	"shopfloor/internal/core/domain/model/repair"
	"shopfloor/internal/core/domain/model/shipment"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/core/ports/portsmock"
	"shopfloor/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCreateProductionOrderCommandHandler_Success(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()

	erp := new(portsmock.ERP)
	erp.On("ItemExists", mock.Anything, "10", "PA-100").Return(true, nil).Once()

	uow := portsmock.NewUnitOfWork()
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.Orders.On("Add", mock.Anything, mock.MatchedBy(func(o *production.Order) bool {
			return o.ID() == id && o.Status() == production.Aguardando && o.Version() == 0
		})).Return(nil).Once(),
		uow.Events.On("Append", mock.Anything, eventsOfKind(event.StatusKind(production.Aguardando))).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	h := commands.NewCreateProductionOrderCommandHandler(uowFactory{uow}, allowAll("producao"), erp, fixedClock(t0), nopLogger())
	cmd, err := commands.NewCreateProductionOrderCommand(id, actor, " OP-1042 ", "10", "PA-100", 5, production.FinalProduct, true)
	require.NoError(t, err)
	assert.Equal(t, "OP-1042", cmd.OrderNumber())

	require.NoError(t, h.Handle(ctx, cmd))
	erp.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestCreateProductionOrderCommandHandler_UnknownProduct(t *testing.T) {
	ctx := t.Context()

	erp := new(portsmock.ERP)
	erp.On("ItemExists", mock.Anything, "10", "XX-1").Return(false, nil).Once()
	uow := portsmock.NewUnitOfWork()

	h := commands.NewCreateProductionOrderCommandHandler(uowFactory{uow}, allowAll("producao"), erp, fixedClock(t0), nopLogger())
	cmd, _ := commands.NewCreateProductionOrderCommand(kernel.NewUUID(), actor, "OP-1", "10", "XX-1", 1, production.SubAssembly, false)

	err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	uow.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestCreateProductionOrderCommandHandler_TransientERP(t *testing.T) {
	ctx := t.Context()

	erp := new(portsmock.ERP)
	erp.On("ItemExists", mock.Anything, "10", "PA-100").
		Return(false, errs.NewExternalTransientError("erp", "ItemExists", nil)).Once()

	h := commands.NewCreateProductionOrderCommandHandler(uowFactory{portsmock.NewUnitOfWork()}, allowAll("producao"), erp, fixedClock(t0), nopLogger())
	cmd, _ := commands.NewCreateProductionOrderCommand(kernel.NewUUID(), actor, "OP-1", "10", "PA-100", 1, production.FinalProduct, false)

	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrExternalTransient)
}

func TestNewCreateProductionOrderCommand_Invalid(t *testing.T) {
	_, err := commands.NewCreateProductionOrderCommand(kernel.NewUUID(), actor, "", "10", "PA-100", 0, production.FinalProduct, false)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = commands.NewCreateProductionOrderCommand(kernel.UUID{}, actor, "OP-1", "10", "PA-100", 1, production.FinalProduct, false)
	require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestCreateShipmentBatchCommandHandler_TakesCustomerFromERP(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()

	erp := new(portsmock.ERP)
	erp.On("GetOrder", mock.Anything, "10", "PV-88").Return(ports.ErpOrder{Number: "PV-88", Customer: "ACME"}, nil).Once()

	uow := portsmock.NewUnitOfWork()
	uow.ExpectTx(ctx)
	uow.Batches.On("Add", mock.Anything, mock.MatchedBy(func(b *shipment.Batch) bool {
		return b.ID() == id && b.Customer() == "ACME" && b.Volumes() == 3
	})).Return(nil).Once()
	uow.Events.On("Append", mock.Anything, eventsOfKind(event.StatusKind(shipment.Separacao))).Return(nil).Once()

	h := commands.NewCreateShipmentBatchCommandHandler(uowFactory{uow}, allowAll("expedicao"), erp, fixedClock(t0), nopLogger())
	cmd, err := commands.NewCreateShipmentBatchCommand(id, actor, "PV-88", "10", 3)
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)
}

func TestCreateShipmentBatchCommandHandler_UnknownOrder(t *testing.T) {
	ctx := t.Context()

	erp := new(portsmock.ERP)
	erp.On("GetOrder", mock.Anything, "10", "PV-0").Return(ports.ErpOrder{}, errs.NewObjectNotFoundError("erp order", "PV-0")).Once()

	h := commands.NewCreateShipmentBatchCommandHandler(uowFactory{portsmock.NewUnitOfWork()}, allowAll("expedicao"), erp, fixedClock(t0), nopLogger())
	cmd, _ := commands.NewCreateShipmentBatchCommand(kernel.NewUUID(), actor, "PV-0", "10", 1)

	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrObjectNotFound)
}

func TestOpenRepairTicketCommandHandler(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()

	uow := portsmock.NewUnitOfWork()
	uow.ExpectTx(ctx)
	uow.Tickets.On("Add", mock.Anything, mock.MatchedBy(func(tk *repair.Ticket) bool {
		return tk.ID() == id && tk.Status() == repair.Recebida && !tk.UnderWarranty()
	})).Return(nil).Once()
	uow.Events.On("Append", mock.Anything, eventsOfKind(event.StatusKind(repair.Recebida))).Return(nil).Once()

	h := commands.NewOpenRepairTicketCommandHandler(uowFactory{uow}, allowAll("assistencia"), fixedClock(t0), nopLogger())
	cmd, err := commands.NewOpenRepairTicketCommand(id, actor, "10", "PA-100", "SN-1", "ACME", false)
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))
	uow.AssertExpectations(t)

	_, err = commands.NewOpenRepairTicketCommand(id, actor, "10", "PA-100", "", "ACME", false)
	require.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestApproveRepairBudgetCommandHandler(t *testing.T) {
	ctx := t.Context()
	ticket, err := repair.RestoreTicket(kernel.NewUUID(), "10", "PA-100", "SN-1", "ACME", false, false,
		repair.AguardandoAprovacao, 3, t0)
	require.NoError(t, err)

	uow := portsmock.NewUnitOfWork()
	uow.Tickets.On("Get", mock.Anything, ticket.ID()).Return(ticket, nil).Once()
	uow.ExpectTx(ctx)
	uow.Store.On("Claim", mock.Anything, claimOf(ticket.Ref(), 3, repair.AguardandoAprovacao, "")).Return(nil).Once()
	uow.Tickets.On("UpdateBudget", mock.Anything, ticket).Return(nil).Once()
	uow.Events.On("Append", mock.Anything, eventsOfKind(event.OrcamentoAprovado)).Return(nil).Once()

	h := commands.NewApproveRepairBudgetCommandHandler(uowFactory{uow}, allowAll("assistencia"), fixedClock(t0), nopLogger())
	cmd, err := commands.NewApproveRepairBudgetCommand(ticket.ID(), actor, "approved by phone")
	require.NoError(t, err)

	require.NoError(t, h.Handle(ctx, cmd))
	assert.True(t, ticket.BudgetApproved())
	uow.AssertExpectations(t)
}

func TestApproveRepairBudgetCommandHandler_WrongStage(t *testing.T) {
	ctx := t.Context()
	ticket, err := repair.RestoreTicket(kernel.NewUUID(), "10", "PA-100", "SN-1", "ACME", false, false,
		repair.Diagnostico, 1, t0)
	require.NoError(t, err)

	uow := portsmock.NewUnitOfWork()
	uow.Tickets.On("Get", mock.Anything, ticket.ID()).Return(ticket, nil).Once()

	h := commands.NewApproveRepairBudgetCommandHandler(uowFactory{uow}, allowAll("assistencia"), fixedClock(t0), nopLogger())
	cmd, _ := commands.NewApproveRepairBudgetCommand(ticket.ID(), actor, "")

	require.ErrorIs(t, h.Handle(ctx, cmd), errs.ErrGuardViolation)
	uow.AssertExpectations(t)
}

func TestGenerateFinalUnitsCommandHandler(t *testing.T) {
	ctx := t.Context()
	order := restoreOrder(t, production.FinalProduct, production.Montagem, 5)
	existing, err := production.GenerateFinalUnits(order, 0, 1, t0)
	require.NoError(t, err)

	uow := portsmock.NewUnitOfWork()
	uow.Orders.On("Get", mock.Anything, order.ID()).Return(order, nil).Once()
	uow.Orders.On("ListFinalUnits", mock.Anything, order.ID()).Return(existing, nil).Once()
	uow.ExpectTx(ctx)
	uow.Store.On("Claim", mock.Anything, claimOf(order.Ref(), 5, production.Montagem, "")).Return(nil).Once()
	uow.Orders.On("AddFinalUnits", mock.Anything, mock.AnythingOfType("[]*production.FinalUnit")).Return(nil).Once()
	uow.Events.On("Append", mock.Anything, eventsOfKind(event.UnidadesGeradas)).Return(nil).Once()

	h := commands.NewGenerateFinalUnitsCommandHandler(uowFactory{uow}, allowAll("producao"), fixedClock(t0), nopLogger())
	cmd, err := commands.NewGenerateFinalUnitsCommand(order.ID(), 1, actor)
	require.NoError(t, err)

	units, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "OP-1042-002", units[0].Serial())
	uow.AssertExpectations(t)
}

func TestGenerateFinalUnitsCommandHandler_BeyondQuantity(t *testing.T) {
	ctx := t.Context()
	order := restoreOrder(t, production.FinalProduct, production.Montagem, 5)

	uow := portsmock.NewUnitOfWork()
	uow.Orders.On("Get", mock.Anything, order.ID()).Return(order, nil).Once()
	uow.Orders.On("ListFinalUnits", mock.Anything, order.ID()).Return(nil, nil).Once()

	h := commands.NewGenerateFinalUnitsCommandHandler(uowFactory{uow}, allowAll("producao"), fixedClock(t0), nopLogger())
	cmd, _ := commands.NewGenerateFinalUnitsCommand(order.ID(), 3, actor)

	_, err := h.Handle(ctx, cmd)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	uow.AssertExpectations(t)
}
