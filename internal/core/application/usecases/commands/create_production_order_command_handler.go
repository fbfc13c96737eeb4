package commands

import (
	"context"
	"fmt"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/production"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/errs"

	"github.com/rs/zerolog"
)

// CreateProductionOrderCommandHandler persists a new order in aguardando at
// version 0 together with the status event of its initial stage. The product
// code must be an ERP item.
type CreateProductionOrderCommandHandler struct {
	uowFactory UoWFactory
	authorizer ports.Authorizer
	erp        ports.ERP
	now        Clock
	log        zerolog.Logger
}

func NewCreateProductionOrderCommandHandler(
	uowFactory UoWFactory,
	authorizer ports.Authorizer,
	erp ports.ERP,
	now Clock,
	log zerolog.Logger,
) CreateProductionOrderCommandHandler {
	return CreateProductionOrderCommandHandler{uowFactory: uowFactory, authorizer: authorizer, erp: erp, now: now, log: log}
}

func (h *CreateProductionOrderCommandHandler) Handle(ctx context.Context, cmd CreateProductionOrderCommand) error {
	if err := h.handle(ctx, cmd); err != nil {
		h.log.Warn().Err(err).
			Str("order_number", cmd.OrderNumber()).
			Str("product", cmd.ProductCode()).
			Str("actor", cmd.ActorID()).
			Msg("production order rejected")
		return err
	}

	h.log.Info().
		Stringer("order_id", cmd.OrderID()).
		Str("order_number", cmd.OrderNumber()).
		Str("actor", cmd.ActorID()).
		Msg("production order created")
	return nil
}

func (h *CreateProductionOrderCommandHandler) handle(ctx context.Context, cmd CreateProductionOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := authorize(ctx, h.authorizer, cmd.ActorID(), kernel.ProductionOrder); err != nil {
		return err
	}

	exists, err := h.erp.ItemExists(ctx, cmd.Company(), cmd.ProductCode())
	if err != nil {
		return err
	}
	if !exists {
		return errs.NewValueIsInvalidErrorWithCause("productCode",
			fmt.Errorf("%s is not an item of company %s", cmd.ProductCode(), cmd.Company()))
	}

	at := h.now()
	order, err := production.NewOrder(
		cmd.OrderID(), cmd.OrderNumber(), cmd.Company(), cmd.ProductCode(),
		cmd.Quantity(), cmd.Kind(), cmd.RequiresTesting(), at,
	)
	if err != nil {
		return err
	}

	return createWithStatusEvent(ctx, h.uowFactory.Create(), order.Ref(), order.Status(), cmd.ActorID(), at,
		func(uow UoW) error { return uow.ProductionOrderRepository().Add(ctx, order) })
}
