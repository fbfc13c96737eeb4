// Package postgres provides the GORM-based Unit of Work for shopfloor.
//
// A unit of work wraps one business transaction. Commands read the entity,
// its events and any external data first, then Begin, claim the entity
// version through EntityStore, write dependent rows through the repositories
// and Commit. Repositories obtained after Begin share the transaction:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.EntityStore().Claim(ctx, req); err != nil {
//	    return err
//	}
//	if err := uow.EventRepository().Append(ctx, ev); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Each UnitOfWork instance holds its own transaction state and must not be
// shared between goroutines.
package postgres

import (
	"context"

	"shopfloor/internal/adapters/out/postgres/consumptionrepo"
	"shopfloor/internal/adapters/out/postgres/entitystore"
	"shopfloor/internal/adapters/out/postgres/eventrepo"
	"shopfloor/internal/adapters/out/postgres/productionrepo"
	"shopfloor/internal/adapters/out/postgres/repairrepo"
	"shopfloor/internal/adapters/out/postgres/shipmentrepo"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances over one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create returns a fresh unit of work with no open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and records the
// aggregates written inside it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []trackedAggregate
}

// Begin opens the transaction. Calling Begin twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit makes the transaction permanent. Returns gorm.ErrInvalidTransaction
// when no transaction is open.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction and the tracked aggregates. Returns
// gorm.ErrInvalidTransaction when no transaction is open, which makes a
// deferred Rollback after Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) EntityStore() ports.VersionedEntityStore {
	return entitystore.NewGormEntityStore(uow.conn())
}

func (uow *GormUnitOfWork) ProductionOrderRepository() ports.ProductionOrderRepository {
	return productionrepo.NewGormProductionOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ShipmentBatchRepository() ports.ShipmentBatchRepository {
	return shipmentrepo.NewGormShipmentBatchRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) RepairTicketRepository() ports.RepairTicketRepository {
	return repairrepo.NewGormRepairTicketRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) EventRepository() ports.EventRepository {
	return eventrepo.NewGormEventRepository(uow.conn())
}

func (uow *GormUnitOfWork) ConsumptionRepository() ports.ConsumptionRepository {
	return consumptionrepo.NewGormRecordRepository(uow.conn())
}

func (uow *GormUnitOfWork) SubAssemblyRepository() ports.SubAssemblyRepository {
	return consumptionrepo.NewGormSubAssemblyRepository(uow.conn())
}

// TrackAggregate records an aggregate written by a repository.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedIDs lists the IDs of aggregates written since the last rollback.
func (uow *GormUnitOfWork) TrackedIDs() []kernel.UUID {
	ids := make([]kernel.UUID, 0, len(uow.trackedAggregates))
	for _, t := range uow.trackedAggregates {
		ids = append(ids, t.ID)
	}
	return ids
}
