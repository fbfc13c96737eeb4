package commands

import (
	"context"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/repair"
	"shopfloor/internal/core/ports"

	"github.com/rs/zerolog"
)

type OpenRepairTicketCommandHandler struct {
	uowFactory UoWFactory
	authorizer ports.Authorizer
	now        Clock
	log        zerolog.Logger
}

func NewOpenRepairTicketCommandHandler(
	uowFactory UoWFactory,
	authorizer ports.Authorizer,
	now Clock,
	log zerolog.Logger,
) OpenRepairTicketCommandHandler {
	return OpenRepairTicketCommandHandler{uowFactory: uowFactory, authorizer: authorizer, now: now, log: log}
}

func (h *OpenRepairTicketCommandHandler) Handle(ctx context.Context, cmd OpenRepairTicketCommand) error {
	if err := h.handle(ctx, cmd); err != nil {
		h.log.Warn().Err(err).
			Str("serial", cmd.SerialNumber()).
			Str("actor", cmd.ActorID()).
			Msg("repair ticket rejected")
		return err
	}

	h.log.Info().
		Stringer("ticket_id", cmd.TicketID()).
		Str("serial", cmd.SerialNumber()).
		Bool("warranty", cmd.UnderWarranty()).
		Str("actor", cmd.ActorID()).
		Msg("repair ticket opened")
	return nil
}

func (h *OpenRepairTicketCommandHandler) handle(ctx context.Context, cmd OpenRepairTicketCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := authorize(ctx, h.authorizer, cmd.ActorID(), kernel.RepairTicket); err != nil {
		return err
	}

	at := h.now()
	ticket, err := repair.NewTicket(cmd.TicketID(), cmd.Company(), cmd.ProductCode(), cmd.SerialNumber(),
		cmd.Customer(), cmd.UnderWarranty(), at)
	if err != nil {
		return err
	}

	return createWithStatusEvent(ctx, h.uowFactory.Create(), ticket.Ref(), ticket.Status(), cmd.ActorID(), at,
		func(uow UoW) error { return uow.RepairTicketRepository().Add(ctx, ticket) })
}
