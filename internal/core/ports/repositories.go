package ports

import (
	"context"

	"shopfloor/internal/core/domain/model/consumption"
	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/production"
	"shopfloor/internal/core/domain/model/repair"
	"shopfloor/internal/core/domain/model/shipment"
)

// ProductionOrderRepository persists production orders and their final
// units. Status and version change only through VersionedEntityStore.Claim.
type ProductionOrderRepository interface {
	Add(ctx context.Context, order *production.Order) error
	Get(ctx context.Context, id kernel.UUID) (*production.Order, error)

	AddFinalUnits(ctx context.Context, units []*production.FinalUnit) error
	GetFinalUnit(ctx context.Context, id kernel.UUID) (*production.FinalUnit, error)
	ListFinalUnits(ctx context.Context, orderID kernel.UUID) ([]*production.FinalUnit, error)
}

type ShipmentBatchRepository interface {
	Add(ctx context.Context, batch *shipment.Batch) error
	Get(ctx context.Context, id kernel.UUID) (*shipment.Batch, error)
}

type RepairTicketRepository interface {
	Add(ctx context.Context, ticket *repair.Ticket) error
	Get(ctx context.Context, id kernel.UUID) (*repair.Ticket, error)

	// UpdateBudget persists the budget approval flag of ticket.
	UpdateBudget(ctx context.Context, ticket *repair.Ticket) error
}

// EventRepository is append-only. ListByEntity returns events in insertion
// order.
type EventRepository interface {
	Append(ctx context.Context, events ...*event.Event) error
	ListByEntity(ctx context.Context, entity kernel.EntityRef) ([]*event.Event, error)
}

// ConsumptionRepository persists consumption records. The adapter enforces
// that an active scan identity is unique across all contexts and that a
// context holds at most one active record per item code; violations surface
// as *errs.ConcurrencyConflictError.
type ConsumptionRepository interface {
	Add(ctx context.Context, record *consumption.Record) error
	Close(ctx context.Context, record *consumption.Record) error

	// FindActiveByScanIdentity returns nil, nil when no active record holds
	// the identity.
	FindActiveByScanIdentity(ctx context.Context, scanIdentity string) (*consumption.Record, error)

	// FindActive returns nil, nil when in has no active record for itemCode.
	FindActive(ctx context.Context, itemCode string, in consumption.Context) (*consumption.Record, error)

	ListActiveByContexts(ctx context.Context, contexts []consumption.Context) ([]*consumption.Record, error)
}

type SubAssemblyRepository interface {
	Add(ctx context.Context, sub *consumption.SubAssembly) error
	Get(ctx context.Context, id kernel.UUID) (*consumption.SubAssembly, error)
	GetByLabel(ctx context.Context, labelSerial string) (*consumption.SubAssembly, error)

	// Bind persists the binding of sub.
	Bind(ctx context.Context, sub *consumption.SubAssembly) error

	CountByOrder(ctx context.Context, orderID kernel.UUID) (int, error)
	ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*consumption.SubAssembly, error)
	ListBoundToUnit(ctx context.Context, unitID kernel.UUID) ([]*consumption.SubAssembly, error)
}
