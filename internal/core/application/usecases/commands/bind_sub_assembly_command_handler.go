package commands

import (
	"context"
	"fmt"

	"shopfloor/internal/core/domain/model/consumption"
	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/ports"

	"github.com/rs/zerolog"
)

// BindSubAssemblyResult reports the binding. AlreadyBound is true when the
// sub-assembly was bound to the same unit before and nothing was written.
type BindSubAssemblyResult struct {
	SubAssemblyID kernel.UUID
	AlreadyBound  bool
}

// BindSubAssemblyCommandHandler binds a registered sub-assembly to a final
// unit of an open order.
//
// Business rules:
//   - A sub-assembly is bound once; binding again to the same unit is a no-op
//   - A sub-assembly bound to another unit is rejected
//   - A unit holds at most one sub-assembly per item code
type BindSubAssemblyCommandHandler struct {
	uowFactory UoWFactory
	authorizer ports.Authorizer
	now        Clock
	log        zerolog.Logger
}

func NewBindSubAssemblyCommandHandler(
	uowFactory UoWFactory,
	authorizer ports.Authorizer,
	now Clock,
	log zerolog.Logger,
) BindSubAssemblyCommandHandler {
	return BindSubAssemblyCommandHandler{uowFactory: uowFactory, authorizer: authorizer, now: now, log: log}
}

func (h *BindSubAssemblyCommandHandler) Handle(ctx context.Context, cmd BindSubAssemblyCommand) (BindSubAssemblyResult, error) {
	res, err := h.handle(ctx, cmd)
	if err != nil {
		h.log.Warn().Err(err).
			Stringer("unit_id", cmd.FinalUnitID()).
			Str("label", cmd.LabelSerial()).
			Str("actor", cmd.ActorID()).
			Msg("sub-assembly binding rejected")
		return BindSubAssemblyResult{}, err
	}
	h.log.Info().
		Stringer("unit_id", cmd.FinalUnitID()).
		Str("label", cmd.LabelSerial()).
		Bool("already_bound", res.AlreadyBound).
		Str("actor", cmd.ActorID()).
		Msg("sub-assembly bound")
	return res, nil
}

func (h *BindSubAssemblyCommandHandler) handle(ctx context.Context, cmd BindSubAssemblyCommand) (BindSubAssemblyResult, error) {
	if err := cmd.Validate(); err != nil {
		return BindSubAssemblyResult{}, err
	}
	if err := authorize(ctx, h.authorizer, cmd.ActorID(), kernel.ProductionOrder); err != nil {
		return BindSubAssemblyResult{}, err
	}

	uow := h.uowFactory.Create()
	unit, err := uow.ProductionOrderRepository().GetFinalUnit(ctx, cmd.FinalUnitID())
	if err != nil {
		return BindSubAssemblyResult{}, err
	}
	order, err := uow.ProductionOrderRepository().Get(ctx, unit.OrderID())
	if err != nil {
		return BindSubAssemblyResult{}, err
	}
	if err = order.EnsureOpen(); err != nil {
		return BindSubAssemblyResult{}, err
	}

	sub, err := uow.SubAssemblyRepository().GetByLabel(ctx, cmd.LabelSerial())
	if err != nil {
		return BindSubAssemblyResult{}, err
	}

	at := h.now()
	alreadyBound, err := sub.Bind(unit.ID(), at)
	if err != nil {
		return BindSubAssemblyResult{}, err
	}
	if alreadyBound {
		return BindSubAssemblyResult{SubAssemblyID: sub.ID(), AlreadyBound: true}, nil
	}

	bound, err := uow.SubAssemblyRepository().ListBoundToUnit(ctx, unit.ID())
	if err != nil {
		return BindSubAssemblyResult{}, err
	}
	if err = consumption.EnsureSlotFree(bound, sub); err != nil {
		return BindSubAssemblyResult{}, err
	}

	e, err := event.NewEvent(order.Ref(), order.Status(), event.VinculoSubproduto, cmd.ActorID(), at,
		fmt.Sprintf("%s -> %s", sub.LabelSerial(), unit.Serial()))
	if err != nil {
		return BindSubAssemblyResult{}, err
	}

	claim := ports.ClaimRequest{Entity: order.Ref(), ExpectedVersion: order.Version(), ExpectedStatus: order.Status()}
	if err := inTransaction(ctx, uow, claim, func() error {
		if err := uow.SubAssemblyRepository().Bind(ctx, sub); err != nil {
			return err
		}
		return uow.EventRepository().Append(ctx, e)
	}); err != nil {
		return BindSubAssemblyResult{}, err
	}

	return BindSubAssemblyResult{SubAssemblyID: sub.ID()}, nil
}
