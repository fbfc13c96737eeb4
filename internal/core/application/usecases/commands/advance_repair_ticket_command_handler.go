package commands

import (
	"context"

	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/ports"

	"github.com/rs/zerolog"
)

// AdvanceRepairTicketCommandHandler moves a repair ticket from recebida to
// one of its outcomes. Repairs outside warranty need an approved budget before
// reparo.
type AdvanceRepairTicketCommandHandler struct {
	uowFactory UoWFactory
	authorizer ports.Authorizer
	now        Clock
	log        zerolog.Logger
}

func NewAdvanceRepairTicketCommandHandler(
	uowFactory UoWFactory,
	authorizer ports.Authorizer,
	now Clock,
	log zerolog.Logger,
) AdvanceRepairTicketCommandHandler {
	return AdvanceRepairTicketCommandHandler{uowFactory: uowFactory, authorizer: authorizer, now: now, log: log}
}

func (h *AdvanceRepairTicketCommandHandler) Handle(ctx context.Context, cmd AdvanceCommand) (AdvanceResult, error) {
	res, err := h.handle(ctx, cmd)
	logAdvance(h.log, cmd, res, err)
	return res, err
}

func (h *AdvanceRepairTicketCommandHandler) handle(ctx context.Context, cmd AdvanceCommand) (AdvanceResult, error) {
	if err := cmd.validateFor(kernel.RepairTicket); err != nil {
		return AdvanceResult{}, err
	}
	if err := authorize(ctx, h.authorizer, cmd.ActorID(), kernel.RepairTicket); err != nil {
		return AdvanceResult{}, err
	}

	uow := h.uowFactory.Create()
	ticket, err := uow.RepairTicketRepository().Get(ctx, cmd.Entity().ID)
	if err != nil {
		return AdvanceResult{}, err
	}
	history, err := uow.EventRepository().ListByEntity(ctx, ticket.Ref())
	if err != nil {
		return AdvanceResult{}, err
	}

	version := ticket.Version()
	from, err := ticket.Advance(cmd.Target(), event.OpenStages(history))
	if err != nil {
		return AdvanceResult{}, err
	}

	return commitAdvance(ctx, uow, ticket.Ref(), version, from, ticket.Status(), cmd.ActorID(), cmd.Note(), h.now())
}
