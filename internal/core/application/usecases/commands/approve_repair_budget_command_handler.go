package commands

import (
	"context"

	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/ports"

	"github.com/rs/zerolog"
)

// ApproveRepairBudgetCommandHandler records the customer's budget approval on
// a ticket waiting in aguardando_aprovacao. The stage is unchanged; the claim
// still bumps the version so a concurrent transition fails.
type ApproveRepairBudgetCommandHandler struct {
	uowFactory UoWFactory
	authorizer ports.Authorizer
	now        Clock
	log        zerolog.Logger
}

func NewApproveRepairBudgetCommandHandler(
	uowFactory UoWFactory,
	authorizer ports.Authorizer,
	now Clock,
	log zerolog.Logger,
) ApproveRepairBudgetCommandHandler {
	return ApproveRepairBudgetCommandHandler{uowFactory: uowFactory, authorizer: authorizer, now: now, log: log}
}

func (h *ApproveRepairBudgetCommandHandler) Handle(ctx context.Context, cmd ApproveRepairBudgetCommand) error {
	if err := h.handle(ctx, cmd); err != nil {
		h.log.Warn().Err(err).Stringer("ticket_id", cmd.TicketID()).Str("actor", cmd.ActorID()).Msg("budget approval rejected")
		return err
	}
	h.log.Info().Stringer("ticket_id", cmd.TicketID()).Str("actor", cmd.ActorID()).Msg("budget approved")
	return nil
}

func (h *ApproveRepairBudgetCommandHandler) handle(ctx context.Context, cmd ApproveRepairBudgetCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := authorize(ctx, h.authorizer, cmd.ActorID(), kernel.RepairTicket); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	ticket, err := uow.RepairTicketRepository().Get(ctx, cmd.TicketID())
	if err != nil {
		return err
	}
	if err = ticket.ApproveBudget(); err != nil {
		return err
	}

	e, err := event.NewEvent(ticket.Ref(), ticket.Status(), event.OrcamentoAprovado, cmd.ActorID(), h.now(), cmd.Note())
	if err != nil {
		return err
	}

	claim := ports.ClaimRequest{Entity: ticket.Ref(), ExpectedVersion: ticket.Version(), ExpectedStatus: ticket.Status()}
	return inTransaction(ctx, uow, claim, func() error {
		if err := uow.RepairTicketRepository().UpdateBudget(ctx, ticket); err != nil {
			return err
		}
		return uow.EventRepository().Append(ctx, e)
	})
}
