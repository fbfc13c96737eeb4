package commands

import (
	"context"
	"time"

	"shopfloor/internal/core/domain/model/consumption"
	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/production"
	"shopfloor/internal/core/domain/model/repair"
	"shopfloor/internal/core/domain/model/shipment"
	"shopfloor/internal/core/domain/model/workflow"
	"shopfloor/internal/core/ports"
)

// ConditionRetornoInBusinessHours is the guard applied to retorno when
// business hours are enforced.
const ConditionRetornoInBusinessHours = "retorno only allowed during business hours"

func isTerminal(kind kernel.EntityKind, stage workflow.Stage) bool {
	switch kind {
	case kernel.ProductionOrder:
		return production.Graph.IsTerminal(stage)
	case kernel.ShipmentBatch:
		return shipment.Graph.IsTerminal(stage)
	case kernel.RepairTicket:
		return repair.Graph.IsTerminal(stage)
	}
	return false
}

// ownerKind is the entity kind whose sector acts on a consumption context.
func ownerKind(kind consumption.ContextKind) kernel.EntityKind {
	if kind == consumption.RepairTicketContext {
		return kernel.RepairTicket
	}
	return kernel.ProductionOrder
}

// AdvanceResult reports a committed stage transition.
type AdvanceResult struct {
	From    workflow.Stage
	To      workflow.Stage
	Version int
}

// commitAdvance claims ref moving from -> to and appends the status event of
// the stage entered.
func commitAdvance(
	ctx context.Context,
	uow UoW,
	ref kernel.EntityRef,
	version int,
	from, to workflow.Stage,
	actorID, note string,
	at time.Time,
) (AdvanceResult, error) {
	e, err := event.NewEvent(ref, to, event.StatusKind(to), actorID, at, note)
	if err != nil {
		return AdvanceResult{}, err
	}

	claim := ports.ClaimRequest{Entity: ref, ExpectedVersion: version, ExpectedStatus: from, NextStatus: to}
	if err := inTransaction(ctx, uow, claim, func() error {
		return uow.EventRepository().Append(ctx, e)
	}); err != nil {
		return AdvanceResult{}, err
	}

	return AdvanceResult{From: from, To: to, Version: version + 1}, nil
}

// createWithStatusEvent persists a new entity through add and records the
// status event of its initial stage in the same transaction.
func createWithStatusEvent(
	ctx context.Context,
	uow UoW,
	ref kernel.EntityRef,
	initial workflow.Stage,
	actorID string,
	at time.Time,
	add func(UoW) error,
) error {
	e, err := event.NewEvent(ref, initial, event.StatusKind(initial), actorID, at, "")
	if err != nil {
		return err
	}

	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = add(uow); err != nil {
		return err
	}
	if err = uow.EventRepository().Append(ctx, e); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
