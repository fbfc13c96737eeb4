package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrApproveRepairBudgetCommandIsNotConstructed = errors.New(
	"ApproveRepairBudgetCommand must be created via NewApproveRepairBudgetCommand constructor",
)

type ApproveRepairBudgetCommand struct { //nolint:recvcheck //using for validation
	ticketID kernel.UUID
	actorID  string
	note     string

	guard guard.ConstructorGuard
}

func NewApproveRepairBudgetCommand(ticketID kernel.UUID, actorID, note string) (ApproveRepairBudgetCommand, error) {
	if err := errors.Join(ticketID.Validate(), requireActor(actorID)); err != nil {
		return ApproveRepairBudgetCommand{}, err
	}
	return ApproveRepairBudgetCommand{
		ticketID: ticketID,
		actorID:  actorID,
		note:     note,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c ApproveRepairBudgetCommand) Validate() error {
	return c.guard.Validate(ErrApproveRepairBudgetCommandIsNotConstructed)
}

func (c ApproveRepairBudgetCommand) TicketID() kernel.UUID { return c.ticketID }
func (c ApproveRepairBudgetCommand) ActorID() string       { return c.actorID }
func (c ApproveRepairBudgetCommand) Note() string          { return c.note }
