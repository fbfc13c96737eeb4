package commands

import (
	"context"

	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/production"
	"shopfloor/internal/core/ports"

	"github.com/rs/zerolog"
)

// AdvanceProductionOrderCommandHandler moves a production order through its
// stage graph.
//
// The guards read progress derived at the time of the request: generated
// final units, registered sub-assemblies and stages whose control sequence is
// still open.
type AdvanceProductionOrderCommandHandler struct {
	uowFactory UoWFactory
	authorizer ports.Authorizer
	now        Clock
	log        zerolog.Logger
}

func NewAdvanceProductionOrderCommandHandler(
	uowFactory UoWFactory,
	authorizer ports.Authorizer,
	now Clock,
	log zerolog.Logger,
) AdvanceProductionOrderCommandHandler {
	return AdvanceProductionOrderCommandHandler{uowFactory: uowFactory, authorizer: authorizer, now: now, log: log}
}

func (h *AdvanceProductionOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceCommand) (AdvanceResult, error) {
	res, err := h.handle(ctx, cmd)
	logAdvance(h.log, cmd, res, err)
	return res, err
}

func (h *AdvanceProductionOrderCommandHandler) handle(ctx context.Context, cmd AdvanceCommand) (AdvanceResult, error) {
	if err := cmd.validateFor(kernel.ProductionOrder); err != nil {
		return AdvanceResult{}, err
	}
	if err := authorize(ctx, h.authorizer, cmd.ActorID(), kernel.ProductionOrder); err != nil {
		return AdvanceResult{}, err
	}

	uow := h.uowFactory.Create()
	order, err := uow.ProductionOrderRepository().Get(ctx, cmd.Entity().ID)
	if err != nil {
		return AdvanceResult{}, err
	}

	history, err := uow.EventRepository().ListByEntity(ctx, order.Ref())
	if err != nil {
		return AdvanceResult{}, err
	}
	units, err := uow.ProductionOrderRepository().ListFinalUnits(ctx, order.ID())
	if err != nil {
		return AdvanceResult{}, err
	}
	subs, err := uow.SubAssemblyRepository().CountByOrder(ctx, order.ID())
	if err != nil {
		return AdvanceResult{}, err
	}

	version := order.Version()
	from, err := order.Advance(cmd.Target(), production.Progress{
		FinalUnits:    len(units),
		SubAssemblies: subs,
		OpenStages:    event.OpenStages(history),
	})
	if err != nil {
		return AdvanceResult{}, err
	}

	return commitAdvance(ctx, uow, order.Ref(), version, from, order.Status(), cmd.ActorID(), cmd.Note(), h.now())
}

func logAdvance(log zerolog.Logger, cmd AdvanceCommand, res AdvanceResult, err error) {
	if err != nil {
		log.Warn().Err(err).
			Stringer("entity", cmd.Entity()).
			Str("target", cmd.Target().String()).
			Str("actor", cmd.ActorID()).
			Msg("stage transition rejected")
		return
	}
	log.Info().
		Stringer("entity", cmd.Entity()).
		Stringer("from", res.From).
		Stringer("to", res.To).
		Str("actor", cmd.ActorID()).
		Int("version", res.Version).
		Msg("stage transition committed")
}
