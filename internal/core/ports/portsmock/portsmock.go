// Package portsmock provides testify mocks of the core ports for use case and
// adapter tests.
package portsmock

import (
	"context"

	"shopfloor/internal/core/domain/model/bom"
	"shopfloor/internal/core/domain/model/consumption"
	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/production"
	"shopfloor/internal/core/domain/model/repair"
	"shopfloor/internal/core/domain/model/shipment"
	"shopfloor/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// UnitOfWork mocks the transaction calls. Repository accessors return the
// embedded mocks without recording a call.
type UnitOfWork struct {
	mock.Mock

	Store       *EntityStore
	Orders      *ProductionOrderRepository
	Batches     *ShipmentBatchRepository
	Tickets     *RepairTicketRepository
	Events      *EventRepository
	Records     *ConsumptionRepository
	SubAssembly *SubAssemblyRepository
}

func NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{
		Store:       new(EntityStore),
		Orders:      new(ProductionOrderRepository),
		Batches:     new(ShipmentBatchRepository),
		Tickets:     new(RepairTicketRepository),
		Events:      new(EventRepository),
		Records:     new(ConsumptionRepository),
		SubAssembly: new(SubAssemblyRepository),
	}
}

func (m *UnitOfWork) Begin(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *UnitOfWork) Commit(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *UnitOfWork) Rollback(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *UnitOfWork) EntityStore() ports.VersionedEntityStore { return m.Store }
func (m *UnitOfWork) ProductionOrderRepository() ports.ProductionOrderRepository {
	return m.Orders
}
func (m *UnitOfWork) ShipmentBatchRepository() ports.ShipmentBatchRepository { return m.Batches }
func (m *UnitOfWork) RepairTicketRepository() ports.RepairTicketRepository   { return m.Tickets }
func (m *UnitOfWork) EventRepository() ports.EventRepository                 { return m.Events }
func (m *UnitOfWork) ConsumptionRepository() ports.ConsumptionRepository     { return m.Records }
func (m *UnitOfWork) SubAssemblyRepository() ports.SubAssemblyRepository     { return m.SubAssembly }

// AssertExpectations checks the unit of work and every repository mock.
func (m *UnitOfWork) AssertExpectations(t mock.TestingT) bool {
	return m.Mock.AssertExpectations(t) &&
		m.Store.AssertExpectations(t) &&
		m.Orders.AssertExpectations(t) &&
		m.Batches.AssertExpectations(t) &&
		m.Tickets.AssertExpectations(t) &&
		m.Events.AssertExpectations(t) &&
		m.Records.AssertExpectations(t) &&
		m.SubAssembly.AssertExpectations(t)
}

// ExpectTx registers Begin, Commit and the deferred Rollback.
func (m *UnitOfWork) ExpectTx(ctx context.Context) {
	m.On("Begin", ctx).Return(nil).Once()
	m.On("Commit", ctx).Return(nil).Once()
	m.On("Rollback", ctx).Return(nil).Once()
}

// UnitOfWorkFactory hands out the same unit of work on every Create.
type UnitOfWorkFactory struct {
	UoW *UnitOfWork
}

func (f UnitOfWorkFactory) Create() ports.UnitOfWork { return f.UoW }

type EntityStore struct{ mock.Mock }

func (m *EntityStore) Load(ctx context.Context, entity kernel.EntityRef) (ports.EntitySnapshot, error) {
	args := m.Called(ctx, entity)
	return args.Get(0).(ports.EntitySnapshot), args.Error(1)
}

func (m *EntityStore) Claim(ctx context.Context, req ports.ClaimRequest) error {
	return m.Called(ctx, req).Error(0)
}

type ProductionOrderRepository struct{ mock.Mock }

func (m *ProductionOrderRepository) Add(ctx context.Context, order *production.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *ProductionOrderRepository) Get(ctx context.Context, id kernel.UUID) (*production.Order, error) {
	args := m.Called(ctx, id)
	o, _ := args.Get(0).(*production.Order)
	return o, args.Error(1)
}

func (m *ProductionOrderRepository) AddFinalUnits(ctx context.Context, units []*production.FinalUnit) error {
	return m.Called(ctx, units).Error(0)
}

func (m *ProductionOrderRepository) GetFinalUnit(ctx context.Context, id kernel.UUID) (*production.FinalUnit, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*production.FinalUnit)
	return u, args.Error(1)
}

func (m *ProductionOrderRepository) ListFinalUnits(ctx context.Context, orderID kernel.UUID) ([]*production.FinalUnit, error) {
	args := m.Called(ctx, orderID)
	units, _ := args.Get(0).([]*production.FinalUnit)
	return units, args.Error(1)
}

type ShipmentBatchRepository struct{ mock.Mock }

func (m *ShipmentBatchRepository) Add(ctx context.Context, batch *shipment.Batch) error {
	return m.Called(ctx, batch).Error(0)
}

func (m *ShipmentBatchRepository) Get(ctx context.Context, id kernel.UUID) (*shipment.Batch, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*shipment.Batch)
	return b, args.Error(1)
}

type RepairTicketRepository struct{ mock.Mock }

func (m *RepairTicketRepository) Add(ctx context.Context, ticket *repair.Ticket) error {
	return m.Called(ctx, ticket).Error(0)
}

func (m *RepairTicketRepository) Get(ctx context.Context, id kernel.UUID) (*repair.Ticket, error) {
	args := m.Called(ctx, id)
	t, _ := args.Get(0).(*repair.Ticket)
	return t, args.Error(1)
}

func (m *RepairTicketRepository) UpdateBudget(ctx context.Context, ticket *repair.Ticket) error {
	return m.Called(ctx, ticket).Error(0)
}

type EventRepository struct{ mock.Mock }

func (m *EventRepository) Append(ctx context.Context, events ...*event.Event) error {
	return m.Called(ctx, events).Error(0)
}

func (m *EventRepository) ListByEntity(ctx context.Context, entity kernel.EntityRef) ([]*event.Event, error) {
	args := m.Called(ctx, entity)
	events, _ := args.Get(0).([]*event.Event)
	return events, args.Error(1)
}

type ConsumptionRepository struct{ mock.Mock }

func (m *ConsumptionRepository) Add(ctx context.Context, record *consumption.Record) error {
	return m.Called(ctx, record).Error(0)
}

func (m *ConsumptionRepository) Close(ctx context.Context, record *consumption.Record) error {
	return m.Called(ctx, record).Error(0)
}

func (m *ConsumptionRepository) FindActiveByScanIdentity(ctx context.Context, scanIdentity string) (*consumption.Record, error) {
	args := m.Called(ctx, scanIdentity)
	r, _ := args.Get(0).(*consumption.Record)
	return r, args.Error(1)
}

func (m *ConsumptionRepository) FindActive(ctx context.Context, itemCode string, in consumption.Context) (*consumption.Record, error) {
	args := m.Called(ctx, itemCode, in)
	r, _ := args.Get(0).(*consumption.Record)
	return r, args.Error(1)
}

func (m *ConsumptionRepository) ListActiveByContexts(ctx context.Context, contexts []consumption.Context) ([]*consumption.Record, error) {
	args := m.Called(ctx, contexts)
	records, _ := args.Get(0).([]*consumption.Record)
	return records, args.Error(1)
}

type SubAssemblyRepository struct{ mock.Mock }

func (m *SubAssemblyRepository) Add(ctx context.Context, sub *consumption.SubAssembly) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *SubAssemblyRepository) Get(ctx context.Context, id kernel.UUID) (*consumption.SubAssembly, error) {
	args := m.Called(ctx, id)
	s, _ := args.Get(0).(*consumption.SubAssembly)
	return s, args.Error(1)
}

func (m *SubAssemblyRepository) GetByLabel(ctx context.Context, labelSerial string) (*consumption.SubAssembly, error) {
	args := m.Called(ctx, labelSerial)
	s, _ := args.Get(0).(*consumption.SubAssembly)
	return s, args.Error(1)
}

func (m *SubAssemblyRepository) Bind(ctx context.Context, sub *consumption.SubAssembly) error {
	return m.Called(ctx, sub).Error(0)
}

func (m *SubAssemblyRepository) CountByOrder(ctx context.Context, orderID kernel.UUID) (int, error) {
	args := m.Called(ctx, orderID)
	return args.Int(0), args.Error(1)
}

func (m *SubAssemblyRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*consumption.SubAssembly, error) {
	args := m.Called(ctx, orderID)
	subs, _ := args.Get(0).([]*consumption.SubAssembly)
	return subs, args.Error(1)
}

func (m *SubAssemblyRepository) ListBoundToUnit(ctx context.Context, unitID kernel.UUID) ([]*consumption.SubAssembly, error) {
	args := m.Called(ctx, unitID)
	subs, _ := args.Get(0).([]*consumption.SubAssembly)
	return subs, args.Error(1)
}

type ERP struct{ mock.Mock }

func (m *ERP) GetOrder(ctx context.Context, company, number string) (ports.ErpOrder, error) {
	args := m.Called(ctx, company, number)
	return args.Get(0).(ports.ErpOrder), args.Error(1)
}

func (m *ERP) GetStockLevel(ctx context.Context, company, itemCode string) (ports.StockLevel, error) {
	args := m.Called(ctx, company, itemCode)
	return args.Get(0).(ports.StockLevel), args.Error(1)
}

func (m *ERP) GetBOM(ctx context.Context, company, productCode string) (bom.BOM, error) {
	args := m.Called(ctx, company, productCode)
	return args.Get(0).(bom.BOM), args.Error(1)
}

func (m *ERP) ItemExists(ctx context.Context, company, itemCode string) (bool, error) {
	args := m.Called(ctx, company, itemCode)
	return args.Bool(0), args.Error(1)
}

func (m *ERP) DescribeItem(ctx context.Context, company, itemCode string) (string, error) {
	args := m.Called(ctx, company, itemCode)
	return args.String(0), args.Error(1)
}

type LabelRegistry struct{ mock.Mock }

func (m *LabelRegistry) GetLabelsForOrder(ctx context.Context, orderNumber string) ([]ports.Label, error) {
	args := m.Called(ctx, orderNumber)
	labels, _ := args.Get(0).([]ports.Label)
	return labels, args.Error(1)
}

func (m *LabelRegistry) GetLabelBySerial(ctx context.Context, serial string) (ports.Label, error) {
	args := m.Called(ctx, serial)
	return args.Get(0).(ports.Label), args.Error(1)
}

type Authorizer struct{ mock.Mock }

func (m *Authorizer) IsActiveInSector(ctx context.Context, actorID, sector string) (bool, error) {
	args := m.Called(ctx, actorID, sector)
	return args.Bool(0), args.Error(1)
}
