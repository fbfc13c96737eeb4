// Package ports defines the contracts between the shopfloor application core
// and its adapters: persistence behind a unit of work, the versioned entity
// store, and the external ERP, label registry and employee directory.
package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories returned before
// Begin read committed data; repositories returned after Begin are bound to
// the transaction, so callers fetch them again after Begin.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	EntityStore() VersionedEntityStore
	ProductionOrderRepository() ProductionOrderRepository
	ShipmentBatchRepository() ShipmentBatchRepository
	RepairTicketRepository() RepairTicketRepository
	EventRepository() EventRepository
	ConsumptionRepository() ConsumptionRepository
	SubAssemblyRepository() SubAssemblyRepository
}
