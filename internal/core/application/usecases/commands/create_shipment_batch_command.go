package commands

import (
	"errors"
	"strings"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

var ErrCreateShipmentBatchCommandIsNotConstructed = errors.New(
	"CreateShipmentBatchCommand must be created via NewCreateShipmentBatchCommand constructor",
)

// CreateShipmentBatchCommand opens a shipment batch for an ERP sales order.
// The customer is taken from the ERP.
type CreateShipmentBatchCommand struct { //nolint:recvcheck //using for validation
	batchID     kernel.UUID
	actorID     string
	orderNumber string
	company     string
	volumes     int

	guard guard.ConstructorGuard
}

func NewCreateShipmentBatchCommand(batchID kernel.UUID, actorID, orderNumber, company string, volumes int) (CreateShipmentBatchCommand, error) {
	cmd := CreateShipmentBatchCommand{
		orderNumber: strings.TrimSpace(orderNumber),
		company:     strings.TrimSpace(company),
		guard:       guard.NewConstructorGuard(),
	}

	var volumesErr error
	if volumes <= 0 {
		volumesErr = errs.NewValueIsOutOfRangeError("volumes", volumes, 1, "unbounded")
	}

	if err := errors.Join(
		batchID.Validate(),
		requireActor(actorID),
		required("orderNumber", cmd.orderNumber),
		required("company", cmd.company),
		volumesErr,
	); err != nil {
		return CreateShipmentBatchCommand{}, err
	}

	cmd.batchID = batchID
	cmd.actorID = actorID
	cmd.volumes = volumes
	return cmd, nil
}

func (c CreateShipmentBatchCommand) Validate() error {
	return c.guard.Validate(ErrCreateShipmentBatchCommandIsNotConstructed)
}

func (c CreateShipmentBatchCommand) BatchID() kernel.UUID { return c.batchID }
func (c CreateShipmentBatchCommand) ActorID() string      { return c.actorID }
func (c CreateShipmentBatchCommand) OrderNumber() string  { return c.orderNumber }
func (c CreateShipmentBatchCommand) Company() string      { return c.company }
func (c CreateShipmentBatchCommand) Volumes() int         { return c.volumes }
