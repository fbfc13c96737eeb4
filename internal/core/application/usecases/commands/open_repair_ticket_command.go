package commands

import (
	"errors"
	"strings"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrOpenRepairTicketCommandIsNotConstructed = errors.New(
	"OpenRepairTicketCommand must be created via NewOpenRepairTicketCommand constructor",
)

// OpenRepairTicketCommand registers a product received for repair.
type OpenRepairTicketCommand struct { //nolint:recvcheck //using for validation
	ticketID      kernel.UUID
	actorID       string
	company       string
	productCode   string
	serialNumber  string
	customer      string
	underWarranty bool

	guard guard.ConstructorGuard
}

func NewOpenRepairTicketCommand(
	ticketID kernel.UUID,
	actorID, company, productCode, serialNumber, customer string,
	underWarranty bool,
) (OpenRepairTicketCommand, error) {
	cmd := OpenRepairTicketCommand{
		company:       strings.TrimSpace(company),
		productCode:   strings.TrimSpace(productCode),
		serialNumber:  strings.TrimSpace(serialNumber),
		customer:      strings.TrimSpace(customer),
		underWarranty: underWarranty,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		ticketID.Validate(),
		requireActor(actorID),
		required("company", cmd.company),
		required("productCode", cmd.productCode),
		required("serialNumber", cmd.serialNumber),
		required("customer", cmd.customer),
	); err != nil {
		return OpenRepairTicketCommand{}, err
	}

	cmd.ticketID = ticketID
	cmd.actorID = actorID
	return cmd, nil
}

func (c OpenRepairTicketCommand) Validate() error {
	return c.guard.Validate(ErrOpenRepairTicketCommandIsNotConstructed)
}

func (c OpenRepairTicketCommand) TicketID() kernel.UUID { return c.ticketID }
func (c OpenRepairTicketCommand) ActorID() string       { return c.actorID }
func (c OpenRepairTicketCommand) Company() string       { return c.company }
func (c OpenRepairTicketCommand) ProductCode() string   { return c.productCode }
func (c OpenRepairTicketCommand) SerialNumber() string  { return c.serialNumber }
func (c OpenRepairTicketCommand) Customer() string      { return c.customer }
func (c OpenRepairTicketCommand) UnderWarranty() bool   { return c.underWarranty }
