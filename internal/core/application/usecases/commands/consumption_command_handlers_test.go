package commands_test

import (
	"testing"
	"time"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/domain/model/bom"
	"shopfloor/internal/core/domain/model/consumption"
	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/production"
	"shopfloor/internal/core/domain/model/repair"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/core/ports/portsmock"
	"shopfloor/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type ConsumptionCommandsSuite struct {
	suite.Suite

	order *production.Order
	unit  *production.FinalUnit
	uow   *portsmock.UnitOfWork
	erp   *portsmock.ERP
}

func TestConsumptionCommandsSuite(t *testing.T) {
	suite.Run(t, new(ConsumptionCommandsSuite))
}

func (s *ConsumptionCommandsSuite) SetupTest() {
	s.order = restoreOrder(s.T(), production.FinalProduct, production.Montagem, 5)
	unit, err := production.NewFinalUnit(kernel.NewUUID(), s.order.ID(), "OP-1042-001", t0)
	s.Require().NoError(err)
	s.unit = unit

	s.uow = portsmock.NewUnitOfWork()
	s.erp = new(portsmock.ERP)
}

func (s *ConsumptionCommandsSuite) unitContext() consumption.Context {
	return consumption.Context{Kind: consumption.FinalUnitContext, Ref: s.unit.ID()}
}

func (s *ConsumptionCommandsSuite) expectUnitOwner() {
	s.uow.Orders.On("GetFinalUnit", mock.Anything, s.unit.ID()).Return(s.unit, nil).Once()
	s.uow.Orders.On("Get", mock.Anything, s.order.ID()).Return(s.order, nil).Once()
}

func (s *ConsumptionCommandsSuite) expectBOM(product string, items ...string) {
	b := bom.BOM{ProductCode: product}
	for _, item := range items {
		b.Lines = append(b.Lines, bom.Line{ItemCode: item, Quantity: decimal.NewFromInt(1), Unit: "UN"})
	}
	s.erp.On("GetBOM", mock.Anything, "10", product).Return(b, nil).Once()
}

func (s *ConsumptionCommandsSuite) activeRecord(in consumption.Context, item, identity string) *consumption.Record {
	r, err := consumption.RestoreRecord(kernel.NewUUID(), s.order.Ref(), in, item, identity,
		"L;"+item+";D;"+identity, actor, t0.Add(-time.Hour), nil, nil)
	s.Require().NoError(err)
	return r
}

func (s *ConsumptionCommandsSuite) consumeHandler() commands.ConsumePartCommandHandler {
	return commands.NewConsumePartCommandHandler(uowFactory{s.uow}, allowAll("producao"), s.erp, fixedClock(t0), nopLogger())
}

func (s *ConsumptionCommandsSuite) TestConsumeReplacesOccupiedSlot() {
	ctx := s.T().Context()
	previous := s.activeRecord(s.unitContext(), "MP-200", "000100")

	s.expectUnitOwner()
	s.expectBOM("PA-100", "MP-200", "MP-201")
	s.uow.SubAssembly.On("ListBoundToUnit", mock.Anything, s.unit.ID()).Return(nil, nil).Once()
	s.uow.Records.On("FindActiveByScanIdentity", mock.Anything, "000123").Return(nil, nil).Once()
	s.uow.Records.On("FindActive", mock.Anything, "MP-200", s.unitContext()).Return(previous, nil).Once()
	s.uow.ExpectTx(ctx)
	s.uow.Store.On("Claim", mock.Anything, claimOf(s.order.Ref(), 5, production.Montagem, "")).Return(nil).Once()
	s.uow.Records.On("Close", mock.Anything, previous).Return(nil).Once()
	s.uow.Records.On("Add", mock.Anything, mock.MatchedBy(func(r *consumption.Record) bool {
		return r.ItemCode() == "MP-200" && r.ScanIdentity() == "000123" && r.Owner() == s.order.Ref()
	})).Return(nil).Once()
	s.uow.Events.On("Append", mock.Anything, eventsOfKind(event.Consumo)).Return(nil).Once()

	cmd, err := commands.NewConsumePartCommand(s.unitContext(), "LOTE 7781;mp-200;2024-02-11;000123", nil, actor)
	s.Require().NoError(err)

	h := s.consumeHandler()
	res, err := h.Handle(ctx, cmd)
	s.Require().NoError(err)
	s.Equal("MP-200", res.ItemCode)
	s.Equal(s.unitContext(), res.Context)
	s.Require().NotNil(res.Replaced)
	s.Equal(previous.ID(), *res.Replaced)
	s.False(previous.IsActive())
	s.Equal(res.RecordID, *previous.ReplacedBy())
	s.uow.AssertExpectations(s.T())
	s.erp.AssertExpectations(s.T())
}

func (s *ConsumptionCommandsSuite) TestConsumeRoutesToBoundSubAssembly() {
	ctx := s.T().Context()
	unitID := s.unit.ID()
	boundAt := t0.Add(-time.Minute)
	sub, err := consumption.RestoreSubAssembly(kernel.NewUUID(), "RF-9", "SUB-9", kernel.NewUUID(), &unitID, t0.Add(-time.Hour), &boundAt)
	s.Require().NoError(err)

	s.expectUnitOwner()
	s.expectBOM("PA-100", "MP-200")
	s.expectBOM("SUB-9", "MP-300")
	s.uow.SubAssembly.On("ListBoundToUnit", mock.Anything, unitID).Return([]*consumption.SubAssembly{sub}, nil).Once()
	s.uow.Records.On("FindActiveByScanIdentity", mock.Anything, "ID9").Return(nil, nil).Once()
	s.uow.Records.On("FindActive", mock.Anything, "MP-300", sub.Context()).Return(nil, nil).Once()
	s.uow.ExpectTx(ctx)
	s.uow.Store.On("Claim", mock.Anything, claimOf(s.order.Ref(), 5, production.Montagem, "")).Return(nil).Once()
	s.uow.Records.On("Add", mock.Anything, mock.AnythingOfType("*consumption.Record")).Return(nil).Once()
	s.uow.Events.On("Append", mock.Anything, eventsOfKind(event.ConsumoSubproduto)).Return(nil).Once()

	cmd, err := commands.NewConsumePartCommand(s.unitContext(), "L;MP-300;D;ID9", nil, actor)
	s.Require().NoError(err)

	h := s.consumeHandler()
	res, err := h.Handle(ctx, cmd)
	s.Require().NoError(err)
	s.Equal(sub.Context(), res.Context)
	s.Nil(res.Replaced)
	s.uow.AssertExpectations(s.T())
	s.uow.Records.AssertNotCalled(s.T(), "Close", mock.Anything, mock.Anything)
}

func (s *ConsumptionCommandsSuite) TestConsumeRejectsActiveScanIdentity() {
	ctx := s.T().Context()
	elsewhere := s.activeRecord(consumption.Context{Kind: consumption.FinalUnitContext, Ref: kernel.NewUUID()}, "MP-200", "000123")

	s.expectUnitOwner()
	s.expectBOM("PA-100", "MP-200")
	s.uow.SubAssembly.On("ListBoundToUnit", mock.Anything, s.unit.ID()).Return(nil, nil).Once()
	s.uow.Records.On("FindActiveByScanIdentity", mock.Anything, "000123").Return(elsewhere, nil).Once()

	cmd, _ := commands.NewConsumePartCommand(s.unitContext(), "L;MP-200;D;000123", nil, actor)

	h := s.consumeHandler()
	_, err := h.Handle(ctx, cmd)
	s.Require().ErrorIs(err, consumption.ErrScanIdentityActive)
	s.Require().ErrorIs(err, errs.ErrValueIsInvalid)
	s.uow.AssertExpectations(s.T())
	s.uow.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *ConsumptionCommandsSuite) TestConsumeItemNotInBOMIsDescribed() {
	ctx := s.T().Context()

	s.expectUnitOwner()
	s.expectBOM("PA-100", "MP-200")
	s.uow.SubAssembly.On("ListBoundToUnit", mock.Anything, s.unit.ID()).Return(nil, nil).Once()
	s.erp.On("DescribeItem", mock.Anything, "10", "ZZ-1").Return("Parafuso M3", nil).Once()

	cmd, _ := commands.NewConsumePartCommand(s.unitContext(), "L;ZZ-1;D;X1", nil, actor)

	h := s.consumeHandler()
	_, err := h.Handle(ctx, cmd)

	var notInBOM *consumption.ItemNotInBOMError
	s.Require().ErrorAs(err, &notInBOM)
	s.Equal("Parafuso M3", notInBOM.Description)
	s.erp.AssertExpectations(s.T())
}

func (s *ConsumptionCommandsSuite) TestConsumeItemNotInBOMWithoutDescription() {
	ctx := s.T().Context()

	s.expectUnitOwner()
	s.expectBOM("PA-100", "MP-200")
	s.uow.SubAssembly.On("ListBoundToUnit", mock.Anything, s.unit.ID()).Return(nil, nil).Once()
	s.erp.On("DescribeItem", mock.Anything, "10", "ZZ-1").
		Return("", errs.NewExternalTransientError("erp", "DescribeItem", nil)).Once()

	cmd, _ := commands.NewConsumePartCommand(s.unitContext(), "L;ZZ-1;D;X1", nil, actor)

	h := s.consumeHandler()
	_, err := h.Handle(ctx, cmd)

	var notInBOM *consumption.ItemNotInBOMError
	s.Require().ErrorAs(err, &notInBOM)
	s.Empty(notInBOM.Description)
	s.NotErrorIs(err, errs.ErrExternalTransient)
}

func (s *ConsumptionCommandsSuite) TestConsumeIntoRepairTicket() {
	ctx := s.T().Context()
	ticket, err := repair.RestoreTicket(kernel.NewUUID(), "10", "PA-100", "SN-1", "ACME", true, false, repair.Reparo, 8, t0)
	s.Require().NoError(err)
	target := consumption.Context{Kind: consumption.RepairTicketContext, Ref: ticket.ID()}

	s.uow.Tickets.On("Get", mock.Anything, ticket.ID()).Return(ticket, nil).Once()
	s.expectBOM("PA-100", "MP-200")
	s.uow.Records.On("FindActiveByScanIdentity", mock.Anything, "R1").Return(nil, nil).Once()
	s.uow.Records.On("FindActive", mock.Anything, "MP-200", target).Return(nil, nil).Once()
	s.uow.ExpectTx(ctx)
	s.uow.Store.On("Claim", mock.Anything, claimOf(ticket.Ref(), 8, repair.Reparo, "")).Return(nil).Once()
	s.uow.Records.On("Add", mock.Anything, mock.AnythingOfType("*consumption.Record")).Return(nil).Once()
	s.uow.Events.On("Append", mock.Anything, eventsOfKind(event.Consumo)).Return(nil).Once()

	cmd, err := commands.NewConsumePartCommand(target, "L;MP-200;D;R1", nil, actor)
	s.Require().NoError(err)

	h := commands.NewConsumePartCommandHandler(uowFactory{s.uow}, allowAll("assistencia"), s.erp, fixedClock(t0), nopLogger())
	res, err := h.Handle(ctx, cmd)
	s.Require().NoError(err)
	s.Equal(target, res.Context)
	s.uow.AssertExpectations(s.T())
}

func (s *ConsumptionCommandsSuite) TestConsumeClosedOrder() {
	ctx := s.T().Context()
	closed := restoreOrder(s.T(), production.FinalProduct, production.Finalizada, 9)
	unit, err := production.NewFinalUnit(kernel.NewUUID(), closed.ID(), "OP-1042-001", t0)
	s.Require().NoError(err)

	s.uow.Orders.On("GetFinalUnit", mock.Anything, unit.ID()).Return(unit, nil).Once()
	s.uow.Orders.On("Get", mock.Anything, closed.ID()).Return(closed, nil).Once()

	cmd, _ := commands.NewConsumePartCommand(consumption.Context{Kind: consumption.FinalUnitContext, Ref: unit.ID()}, "L;MP-200;D;1", nil, actor)

	h := s.consumeHandler()
	_, err = h.Handle(ctx, cmd)
	s.Require().ErrorIs(err, errs.ErrEntityIsClosed)
}

func (s *ConsumptionCommandsSuite) substituteHandler() commands.SubstitutePartCommandHandler {
	return commands.NewSubstitutePartCommandHandler(uowFactory{s.uow}, allowAll("producao"), fixedClock(t0), nopLogger())
}

func (s *ConsumptionCommandsSuite) TestSubstitute() {
	ctx := s.T().Context()
	old := s.activeRecord(s.unitContext(), "MP-200", "000100")

	s.expectUnitOwner()
	s.uow.Records.On("ListActiveByContexts", mock.Anything, []consumption.Context{s.unitContext()}).
		Return([]*consumption.Record{old}, nil).Once()
	s.uow.Records.On("FindActiveByScanIdentity", mock.Anything, "000200").Return(nil, nil).Once()
	s.uow.ExpectTx(ctx)
	s.uow.Store.On("Claim", mock.Anything, claimOf(s.order.Ref(), 5, production.Montagem, "")).Return(nil).Once()
	s.uow.Records.On("Close", mock.Anything, old).Return(nil).Once()
	s.uow.Records.On("Add", mock.Anything, mock.MatchedBy(func(r *consumption.Record) bool {
		return r.ItemCode() == "MP-200" && r.ScanIdentity() == "000200"
	})).Return(nil).Once()
	s.uow.Events.On("Append", mock.Anything, eventsOfKind(event.Substituicao)).Return(nil).Once()

	cmd, err := commands.NewSubstitutePartCommand(s.unitContext(), "L;mp-200;D;000200", actor, "defective")
	s.Require().NoError(err)

	h := s.substituteHandler()
	res, err := h.Handle(ctx, cmd)
	s.Require().NoError(err)
	s.Equal(old.ID(), res.Replaced)
	s.False(old.IsActive())
	s.uow.AssertExpectations(s.T())
}

func (s *ConsumptionCommandsSuite) TestSubstituteSameIdentity() {
	ctx := s.T().Context()
	old := s.activeRecord(s.unitContext(), "MP-200", "000100")

	s.expectUnitOwner()
	s.uow.Records.On("ListActiveByContexts", mock.Anything, []consumption.Context{s.unitContext()}).
		Return([]*consumption.Record{old}, nil).Once()
	s.uow.Records.On("FindActiveByScanIdentity", mock.Anything, "000100").Return(old, nil).Once()

	cmd, _ := commands.NewSubstitutePartCommand(s.unitContext(), "L;MP-200;D;000100", actor, "")

	h := s.substituteHandler()
	_, err := h.Handle(ctx, cmd)
	s.Require().ErrorIs(err, consumption.ErrSameScanIdentity)
	s.True(old.IsActive())
}

func (s *ConsumptionCommandsSuite) TestSubstituteIdentityActiveElsewhere() {
	ctx := s.T().Context()
	old := s.activeRecord(s.unitContext(), "MP-200", "000100")
	other := s.activeRecord(consumption.Context{Kind: consumption.RepairTicketContext, Ref: kernel.NewUUID()}, "MP-200", "000200")

	s.expectUnitOwner()
	s.uow.Records.On("ListActiveByContexts", mock.Anything, []consumption.Context{s.unitContext()}).
		Return([]*consumption.Record{old}, nil).Once()
	s.uow.Records.On("FindActiveByScanIdentity", mock.Anything, "000200").Return(other, nil).Once()

	cmd, _ := commands.NewSubstitutePartCommand(s.unitContext(), "L;MP-200;D;000200", actor, "")

	h := s.substituteHandler()
	_, err := h.Handle(ctx, cmd)
	s.Require().ErrorIs(err, consumption.ErrScanIdentityActive)
}

func (s *ConsumptionCommandsSuite) TestSubstituteNothingToReplace() {
	ctx := s.T().Context()

	s.expectUnitOwner()
	s.uow.Records.On("ListActiveByContexts", mock.Anything, []consumption.Context{s.unitContext()}).Return(nil, nil).Once()

	cmd, _ := commands.NewSubstitutePartCommand(s.unitContext(), "L;MP-200;D;000200", actor, "")

	h := s.substituteHandler()
	_, err := h.Handle(ctx, cmd)
	s.Require().ErrorIs(err, consumption.ErrNothingToReplace)
}

func (s *ConsumptionCommandsSuite) registerHandler(labels ports.LabelRegistry) commands.RegisterSubAssemblyCommandHandler {
	return commands.NewRegisterSubAssemblyCommandHandler(uowFactory{s.uow}, allowAll("producao"), labels, fixedClock(t0), nopLogger())
}

func (s *ConsumptionCommandsSuite) TestRegisterSubAssembly() {
	ctx := s.T().Context()
	subOrder := restoreOrder(s.T(), production.SubAssembly, production.Montagem, 2)
	id := kernel.NewUUID()

	labels := new(portsmock.LabelRegistry)
	labels.On("GetLabelBySerial", mock.Anything, "RF-1").
		Return(ports.Label{Serial: "RF-1", ItemCode: "SUB-9", OrderNumber: "OP-1042", Company: "10"}, nil).Once()

	s.uow.Orders.On("Get", mock.Anything, subOrder.ID()).Return(subOrder, nil).Once()
	s.uow.SubAssembly.On("GetByLabel", mock.Anything, "RF-1").Return(nil, errs.NewObjectNotFoundError("sub-assembly", "RF-1")).Once()
	s.uow.SubAssembly.On("CountByOrder", mock.Anything, subOrder.ID()).Return(1, nil).Once()
	s.uow.ExpectTx(ctx)
	s.uow.Store.On("Claim", mock.Anything, claimOf(subOrder.Ref(), 2, production.Montagem, "")).Return(nil).Once()
	s.uow.SubAssembly.On("Add", mock.Anything, mock.MatchedBy(func(sub *consumption.SubAssembly) bool {
		return sub.ID() == id && sub.ItemCode() == "SUB-9" && !sub.IsBound()
	})).Return(nil).Once()
	s.uow.Events.On("Append", mock.Anything, eventsOfKind(event.SubprodutoRegistrado)).Return(nil).Once()

	cmd, err := commands.NewRegisterSubAssemblyCommand(id, subOrder.ID(), "RF-1", "sub-9", actor)
	s.Require().NoError(err)

	h := s.registerHandler(labels)
	s.Require().NoError(h.Handle(ctx, cmd))
	s.uow.AssertExpectations(s.T())
	labels.AssertExpectations(s.T())
}

func (s *ConsumptionCommandsSuite) TestRegisterSubAssemblyRejections() {
	subOrder := restoreOrder(s.T(), production.SubAssembly, production.Montagem, 2)

	testCases := []struct {
		name  string
		label ports.Label
		item  string
		want  error
	}{
		{"other_order", ports.Label{Serial: "RF-1", ItemCode: "SUB-9", OrderNumber: "OP-9"}, "SUB-9", consumption.ErrLabelNotInOrder},
		{"other_company", ports.Label{Serial: "RF-1", ItemCode: "SUB-9", OrderNumber: "OP-1042", Company: "20"}, "SUB-9", consumption.ErrLabelNotInOrder},
		{"item_mismatch", ports.Label{Serial: "RF-1", ItemCode: "SUB-8", OrderNumber: "OP-1042"}, "SUB-9", consumption.ErrLabelItemMismatch},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.uow = portsmock.NewUnitOfWork()
			s.uow.Orders.On("Get", mock.Anything, subOrder.ID()).Return(subOrder, nil).Once()
			labels := new(portsmock.LabelRegistry)
			labels.On("GetLabelBySerial", mock.Anything, "RF-1").Return(tc.label, nil).Once()

			cmd, _ := commands.NewRegisterSubAssemblyCommand(kernel.NewUUID(), subOrder.ID(), "RF-1", tc.item, actor)
			h := s.registerHandler(labels)
			s.Require().ErrorIs(h.Handle(s.T().Context(), cmd), tc.want)
		})
	}
}

func (s *ConsumptionCommandsSuite) TestRegisterSubAssemblyTwice() {
	subOrder := restoreOrder(s.T(), production.SubAssembly, production.Montagem, 2)
	existing, err := consumption.NewSubAssembly(kernel.NewUUID(), "RF-1", "SUB-9", subOrder.ID(), t0)
	s.Require().NoError(err)

	labels := new(portsmock.LabelRegistry)
	labels.On("GetLabelBySerial", mock.Anything, "RF-1").
		Return(ports.Label{Serial: "RF-1", ItemCode: "SUB-9", OrderNumber: "OP-1042"}, nil).Once()
	s.uow.Orders.On("Get", mock.Anything, subOrder.ID()).Return(subOrder, nil).Once()
	s.uow.SubAssembly.On("GetByLabel", mock.Anything, "RF-1").Return(existing, nil).Once()

	cmd, _ := commands.NewRegisterSubAssemblyCommand(kernel.NewUUID(), subOrder.ID(), "RF-1", "SUB-9", actor)
	h := s.registerHandler(labels)
	s.Require().ErrorIs(h.Handle(s.T().Context(), cmd), consumption.ErrLabelAlreadyRecorded)
}

func (s *ConsumptionCommandsSuite) bindHandler() commands.BindSubAssemblyCommandHandler {
	return commands.NewBindSubAssemblyCommandHandler(uowFactory{s.uow}, allowAll("producao"), fixedClock(t0), nopLogger())
}

func (s *ConsumptionCommandsSuite) TestBindSubAssembly() {
	ctx := s.T().Context()
	sub, err := consumption.NewSubAssembly(kernel.NewUUID(), "RF-1", "SUB-9", kernel.NewUUID(), t0)
	s.Require().NoError(err)

	s.expectUnitOwner()
	s.uow.SubAssembly.On("GetByLabel", mock.Anything, "RF-1").Return(sub, nil).Once()
	s.uow.SubAssembly.On("ListBoundToUnit", mock.Anything, s.unit.ID()).Return(nil, nil).Once()
	s.uow.ExpectTx(ctx)
	s.uow.Store.On("Claim", mock.Anything, claimOf(s.order.Ref(), 5, production.Montagem, "")).Return(nil).Once()
	s.uow.SubAssembly.On("Bind", mock.Anything, sub).Return(nil).Once()
	s.uow.Events.On("Append", mock.Anything, eventsOfKind(event.VinculoSubproduto)).Return(nil).Once()

	cmd, err := commands.NewBindSubAssemblyCommand(s.unit.ID(), "RF-1", actor)
	s.Require().NoError(err)

	h := s.bindHandler()
	res, err := h.Handle(ctx, cmd)
	s.Require().NoError(err)
	s.False(res.AlreadyBound)
	s.True(sub.IsBound())
	s.uow.AssertExpectations(s.T())
}

func (s *ConsumptionCommandsSuite) TestBindSubAssemblyAgainIsNoOp() {
	ctx := s.T().Context()
	unitID := s.unit.ID()
	boundAt := t0.Add(-time.Hour)
	sub, err := consumption.RestoreSubAssembly(kernel.NewUUID(), "RF-1", "SUB-9", kernel.NewUUID(), &unitID, t0, &boundAt)
	s.Require().NoError(err)

	s.expectUnitOwner()
	s.uow.SubAssembly.On("GetByLabel", mock.Anything, "RF-1").Return(sub, nil).Once()

	cmd, _ := commands.NewBindSubAssemblyCommand(unitID, "RF-1", actor)

	h := s.bindHandler()
	res, err := h.Handle(ctx, cmd)
	s.Require().NoError(err)
	s.True(res.AlreadyBound)
	s.uow.AssertExpectations(s.T())
	s.uow.AssertNotCalled(s.T(), "Begin", mock.Anything)
}

func (s *ConsumptionCommandsSuite) TestBindSubAssemblyRejections() {
	otherUnit := kernel.NewUUID()
	boundAt := t0

	s.Run("bound_elsewhere", func() {
		s.uow = portsmock.NewUnitOfWork()
		sub, err := consumption.RestoreSubAssembly(kernel.NewUUID(), "RF-1", "SUB-9", kernel.NewUUID(), &otherUnit, t0, &boundAt)
		s.Require().NoError(err)
		s.expectUnitOwner()
		s.uow.SubAssembly.On("GetByLabel", mock.Anything, "RF-1").Return(sub, nil).Once()

		cmd, _ := commands.NewBindSubAssemblyCommand(s.unit.ID(), "RF-1", actor)
		h := s.bindHandler()
		_, err = h.Handle(s.T().Context(), cmd)
		s.Require().ErrorIs(err, consumption.ErrBoundToAnotherUnit)
	})

	s.Run("slot_taken", func() {
		s.uow = portsmock.NewUnitOfWork()
		unitID := s.unit.ID()
		holder, err := consumption.RestoreSubAssembly(kernel.NewUUID(), "RF-2", "SUB-9", kernel.NewUUID(), &unitID, t0, &boundAt)
		s.Require().NoError(err)
		sub, err := consumption.NewSubAssembly(kernel.NewUUID(), "RF-1", "SUB-9", kernel.NewUUID(), t0)
		s.Require().NoError(err)

		s.expectUnitOwner()
		s.uow.SubAssembly.On("GetByLabel", mock.Anything, "RF-1").Return(sub, nil).Once()
		s.uow.SubAssembly.On("ListBoundToUnit", mock.Anything, unitID).Return([]*consumption.SubAssembly{holder}, nil).Once()

		cmd, _ := commands.NewBindSubAssemblyCommand(unitID, "RF-1", actor)
		h := s.bindHandler()
		_, err = h.Handle(s.T().Context(), cmd)
		s.Require().ErrorIs(err, consumption.ErrUnitSlotTaken)
	})
}

func TestNewConsumePartCommand(t *testing.T) {
	unit := consumption.Context{Kind: consumption.FinalUnitContext, Ref: kernel.NewUUID()}
	ticket := consumption.Context{Kind: consumption.RepairTicketContext, Ref: kernel.NewUUID()}
	preferred := kernel.NewUUID()

	cmd, err := commands.NewConsumePartCommand(unit, " a;MP-1;b;42 ", &preferred, actor)
	require.NoError(t, err)
	assert.Equal(t, "MP-1", cmd.Scan().ItemCode)
	assert.Equal(t, "42", cmd.Scan().Identity)

	_, err = commands.NewConsumePartCommand(ticket, "a;MP-1;b;42", &preferred, actor)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewConsumePartCommand(unit, "MP-1", nil, actor)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)

	_, err = commands.NewConsumePartCommand(consumption.Context{Ref: kernel.NewUUID()}, "a;MP-1;b;42", nil, actor)
	require.ErrorIs(t, err, errs.ErrValueIsInvalid)
}
