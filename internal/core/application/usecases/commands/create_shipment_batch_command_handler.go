package commands

import (
	"context"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/shipment"
	"shopfloor/internal/core/ports"

	"github.com/rs/zerolog"
)

// CreateShipmentBatchCommandHandler persists a new batch in separacao. The
// ERP order must exist; a missing order surfaces as ObjectNotFoundError.
type CreateShipmentBatchCommandHandler struct {
	uowFactory UoWFactory
	authorizer ports.Authorizer
	erp        ports.ERP
	now        Clock
	log        zerolog.Logger
}

func NewCreateShipmentBatchCommandHandler(
	uowFactory UoWFactory,
	authorizer ports.Authorizer,
	erp ports.ERP,
	now Clock,
	log zerolog.Logger,
) CreateShipmentBatchCommandHandler {
	return CreateShipmentBatchCommandHandler{uowFactory: uowFactory, authorizer: authorizer, erp: erp, now: now, log: log}
}

func (h *CreateShipmentBatchCommandHandler) Handle(ctx context.Context, cmd CreateShipmentBatchCommand) error {
	if err := h.handle(ctx, cmd); err != nil {
		h.log.Warn().Err(err).
			Str("order_number", cmd.OrderNumber()).
			Str("actor", cmd.ActorID()).
			Msg("shipment batch rejected")
		return err
	}

	h.log.Info().
		Stringer("batch_id", cmd.BatchID()).
		Str("order_number", cmd.OrderNumber()).
		Str("actor", cmd.ActorID()).
		Msg("shipment batch created")
	return nil
}

func (h *CreateShipmentBatchCommandHandler) handle(ctx context.Context, cmd CreateShipmentBatchCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := authorize(ctx, h.authorizer, cmd.ActorID(), kernel.ShipmentBatch); err != nil {
		return err
	}

	erpOrder, err := h.erp.GetOrder(ctx, cmd.Company(), cmd.OrderNumber())
	if err != nil {
		return err
	}

	at := h.now()
	batch, err := shipment.NewBatch(cmd.BatchID(), cmd.OrderNumber(), cmd.Company(), erpOrder.Customer, cmd.Volumes(), at)
	if err != nil {
		return err
	}

	return createWithStatusEvent(ctx, h.uowFactory.Create(), batch.Ref(), batch.Status(), cmd.ActorID(), at,
		func(uow UoW) error { return uow.ShipmentBatchRepository().Add(ctx, batch) })
}
