package commands

import (
	"context"

	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/ports"

	"github.com/rs/zerolog"
)

// AdvanceShipmentBatchCommandHandler moves a shipment batch from separacao
// through conferencia to expedida.
type AdvanceShipmentBatchCommandHandler struct {
	uowFactory UoWFactory
	authorizer ports.Authorizer
	now        Clock
	log        zerolog.Logger
}

func NewAdvanceShipmentBatchCommandHandler(
	uowFactory UoWFactory,
	authorizer ports.Authorizer,
	now Clock,
	log zerolog.Logger,
) AdvanceShipmentBatchCommandHandler {
	return AdvanceShipmentBatchCommandHandler{uowFactory: uowFactory, authorizer: authorizer, now: now, log: log}
}

func (h *AdvanceShipmentBatchCommandHandler) Handle(ctx context.Context, cmd AdvanceCommand) (AdvanceResult, error) {
	res, err := h.handle(ctx, cmd)
	logAdvance(h.log, cmd, res, err)
	return res, err
}

func (h *AdvanceShipmentBatchCommandHandler) handle(ctx context.Context, cmd AdvanceCommand) (AdvanceResult, error) {
	if err := cmd.validateFor(kernel.ShipmentBatch); err != nil {
		return AdvanceResult{}, err
	}
	if err := authorize(ctx, h.authorizer, cmd.ActorID(), kernel.ShipmentBatch); err != nil {
		return AdvanceResult{}, err
	}

	uow := h.uowFactory.Create()
	batch, err := uow.ShipmentBatchRepository().Get(ctx, cmd.Entity().ID)
	if err != nil {
		return AdvanceResult{}, err
	}
	history, err := uow.EventRepository().ListByEntity(ctx, batch.Ref())
	if err != nil {
		return AdvanceResult{}, err
	}

	version := batch.Version()
	from, err := batch.Advance(cmd.Target(), event.OpenStages(history))
	if err != nil {
		return AdvanceResult{}, err
	}

	return commitAdvance(ctx, uow, batch.Ref(), version, from, batch.Status(), cmd.ActorID(), cmd.Note(), h.now())
}
