// Package commands contains business operations that modify system state.
// Every handler authorises the actor, performs external lookups, then claims
// the owning entity's version and appends its events in one transaction.
package commands

import (
	"context"
	"fmt"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/errs"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// EntityStoreFactory provides the claim store within a transaction.
	EntityStoreFactory interface {
		EntityStore() ports.VersionedEntityStore
	}

	// EventRepoFactory provides the event log within a transaction.
	EventRepoFactory interface {
		EventRepository() ports.EventRepository
	}

	ProductionOrderRepoFactory interface {
		ProductionOrderRepository() ports.ProductionOrderRepository
	}

	ShipmentBatchRepoFactory interface {
		ShipmentBatchRepository() ports.ShipmentBatchRepository
	}

	RepairTicketRepoFactory interface {
		RepairTicketRepository() ports.RepairTicketRepository
	}

	ConsumptionRepoFactory interface {
		ConsumptionRepository() ports.ConsumptionRepository
	}

	SubAssemblyRepoFactory interface {
		SubAssemblyRepository() ports.SubAssemblyRepository
	}

	// UoW manages transactions across every aggregate of the shop floor.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   err = uow.EntityStore().Claim(ctx, claim)
	//   err = uow.EventRepository().Append(ctx, e)
	//
	//   err = uow.Commit(ctx)
	UoW interface {
		TxManager
		EntityStoreFactory
		EventRepoFactory
		ProductionOrderRepoFactory
		ShipmentBatchRepoFactory
		RepairTicketRepoFactory
		ConsumptionRepoFactory
		SubAssemblyRepoFactory
	}

	// UoWFactory creates new unit of work instances.
	UoWFactory interface {
		Create() UoW
	}
)

// Clock returns the current instant. Handlers stamp events with it.
type Clock func() time.Time

// authorize fails with PermissionDeniedError unless actorID is active in the
// sector responsible for kind.
func authorize(ctx context.Context, auth ports.Authorizer, actorID string, kind kernel.EntityKind) error {
	ok, err := auth.IsActiveInSector(ctx, actorID, kind.Sector())
	if err != nil {
		return err
	}
	if !ok {
		return errs.NewPermissionDeniedError(actorID, kind.Sector())
	}
	return nil
}

// inTransaction claims the entity and runs write inside one transaction.
// Nothing is persisted when the claim or any write fails.
func inTransaction(ctx context.Context, uow UoW, claim ports.ClaimRequest, write func() error) error {
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := uow.EntityStore().Claim(ctx, claim); err != nil {
		return err
	}

	if err := write(); err != nil {
		return err
	}

	return uow.Commit(ctx)
}

func requireActor(actorID string) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorID")
	}
	return nil
}

func errEntityKindMismatch(want kernel.EntityKind, got kernel.EntityRef) error {
	return errs.NewValueIsInvalidErrorWithCause("entity kind is invalid",
		fmt.Errorf("%s is not a %s", got, want))
}

func required(param, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
