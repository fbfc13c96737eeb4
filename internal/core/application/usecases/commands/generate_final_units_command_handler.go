package commands

import (
	"context"
	"fmt"

	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/production"
	"shopfloor/internal/core/ports"

	"github.com/rs/zerolog"
)

// GenerateFinalUnitsCommandHandler numbers the next final units of an order.
// Serial numbers continue after the units already generated, so two
// concurrent requests would collide; the claim on the order serialises them.
type GenerateFinalUnitsCommandHandler struct {
	uowFactory UoWFactory
	authorizer ports.Authorizer
	now        Clock
	log        zerolog.Logger
}

func NewGenerateFinalUnitsCommandHandler(
	uowFactory UoWFactory,
	authorizer ports.Authorizer,
	now Clock,
	log zerolog.Logger,
) GenerateFinalUnitsCommandHandler {
	return GenerateFinalUnitsCommandHandler{uowFactory: uowFactory, authorizer: authorizer, now: now, log: log}
}

func (h *GenerateFinalUnitsCommandHandler) Handle(ctx context.Context, cmd GenerateFinalUnitsCommand) ([]*production.FinalUnit, error) {
	units, err := h.handle(ctx, cmd)
	if err != nil {
		h.log.Warn().Err(err).Stringer("order_id", cmd.OrderID()).Int("count", cmd.Count()).Msg("final units rejected")
		return nil, err
	}
	h.log.Info().Stringer("order_id", cmd.OrderID()).Int("count", len(units)).Str("actor", cmd.ActorID()).Msg("final units generated")
	return units, nil
}

func (h *GenerateFinalUnitsCommandHandler) handle(ctx context.Context, cmd GenerateFinalUnitsCommand) ([]*production.FinalUnit, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := authorize(ctx, h.authorizer, cmd.ActorID(), kernel.ProductionOrder); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	order, err := uow.ProductionOrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}
	existing, err := uow.ProductionOrderRepository().ListFinalUnits(ctx, order.ID())
	if err != nil {
		return nil, err
	}

	at := h.now()
	units, err := production.GenerateFinalUnits(order, len(existing), cmd.Count(), at)
	if err != nil {
		return nil, err
	}

	note := fmt.Sprintf("%d units %s..%s", len(units), units[0].Serial(), units[len(units)-1].Serial())
	e, err := event.NewEvent(order.Ref(), order.Status(), event.UnidadesGeradas, cmd.ActorID(), at, note)
	if err != nil {
		return nil, err
	}

	claim := ports.ClaimRequest{Entity: order.Ref(), ExpectedVersion: order.Version(), ExpectedStatus: order.Status()}
	if err := inTransaction(ctx, uow, claim, func() error {
		if err := uow.ProductionOrderRepository().AddFinalUnits(ctx, units); err != nil {
			return err
		}
		return uow.EventRepository().Append(ctx, e)
	}); err != nil {
		return nil, err
	}

	return units, nil
}
