package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shopfloor/internal/core/domain/model/consumption"
	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/errs"

	"github.com/rs/zerolog"
)

// RegisterSubAssemblyCommandHandler records an unbound sub-assembly against
// its production order.
//
// Business rules:
//   - The order must be an open sub-assembly order
//   - The RFID registry must know the label and place it in the same ERP order
//   - The label's item code must equal the declared item code
//   - A label is registered once
//   - An order never registers more sub-assemblies than its quantity
type RegisterSubAssemblyCommandHandler struct {
	uowFactory UoWFactory
	authorizer ports.Authorizer
	labels     ports.LabelRegistry
	now        Clock
	log        zerolog.Logger
}

func NewRegisterSubAssemblyCommandHandler(
	uowFactory UoWFactory,
	authorizer ports.Authorizer,
	labels ports.LabelRegistry,
	now Clock,
	log zerolog.Logger,
) RegisterSubAssemblyCommandHandler {
	return RegisterSubAssemblyCommandHandler{uowFactory: uowFactory, authorizer: authorizer, labels: labels, now: now, log: log}
}

func (h *RegisterSubAssemblyCommandHandler) Handle(ctx context.Context, cmd RegisterSubAssemblyCommand) error {
	if err := h.handle(ctx, cmd); err != nil {
		h.log.Warn().Err(err).
			Stringer("order_id", cmd.OrderID()).
			Str("label", cmd.LabelSerial()).
			Str("actor", cmd.ActorID()).
			Msg("sub-assembly registration rejected")
		return err
	}
	h.log.Info().
		Stringer("order_id", cmd.OrderID()).
		Str("label", cmd.LabelSerial()).
		Str("item", cmd.ItemCode()).
		Str("actor", cmd.ActorID()).
		Msg("sub-assembly registered")
	return nil
}

func (h *RegisterSubAssemblyCommandHandler) handle(ctx context.Context, cmd RegisterSubAssemblyCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := authorize(ctx, h.authorizer, cmd.ActorID(), kernel.ProductionOrder); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	order, err := uow.ProductionOrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}
	if err = order.EnsureAcceptsSubAssemblies(); err != nil {
		return err
	}

	label, err := h.labels.GetLabelBySerial(ctx, cmd.LabelSerial())
	if err != nil {
		return err
	}
	if label.OrderNumber != order.OrderNumber() || (label.Company != "" && label.Company != order.Company()) {
		return consumption.Invalid("labelSerial",
			fmt.Errorf("%w: %s belongs to order %s", consumption.ErrLabelNotInOrder, label.Serial, label.OrderNumber))
	}
	if !strings.EqualFold(label.ItemCode, cmd.ItemCode()) {
		return consumption.Invalid("itemCode",
			fmt.Errorf("%w: label %s is item %s", consumption.ErrLabelItemMismatch, label.Serial, label.ItemCode))
	}

	switch _, err = uow.SubAssemblyRepository().GetByLabel(ctx, cmd.LabelSerial()); {
	case err == nil:
		return consumption.Invalid("labelSerial", consumption.ErrLabelAlreadyRecorded)
	case !errors.Is(err, errs.ErrObjectNotFound):
		return err
	}

	registered, err := uow.SubAssemblyRepository().CountByOrder(ctx, order.ID())
	if err != nil {
		return err
	}
	if registered >= order.Quantity() {
		return errs.NewValueIsOutOfRangeError("sub-assemblies", registered+1, 1, order.Quantity())
	}

	at := h.now()
	sub, err := consumption.NewSubAssembly(cmd.SubAssemblyID(), cmd.LabelSerial(), label.ItemCode, order.ID(), at)
	if err != nil {
		return err
	}
	e, err := event.NewEvent(order.Ref(), order.Status(), event.SubprodutoRegistrado, cmd.ActorID(), at,
		fmt.Sprintf("%s %s", sub.LabelSerial(), sub.ItemCode()))
	if err != nil {
		return err
	}

	claim := ports.ClaimRequest{Entity: order.Ref(), ExpectedVersion: order.Version(), ExpectedStatus: order.Status()}
	return inTransaction(ctx, uow, claim, func() error {
		if err := uow.SubAssemblyRepository().Add(ctx, sub); err != nil {
			return err
		}
		return uow.EventRepository().Append(ctx, e)
	})
}
