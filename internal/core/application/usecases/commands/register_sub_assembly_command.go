package commands

import (
	"errors"
	"strings"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrRegisterSubAssemblyCommandIsNotConstructed = errors.New(
	"RegisterSubAssemblyCommand must be created via NewRegisterSubAssemblyCommand constructor",
)

// RegisterSubAssemblyCommand records a labelled sub-assembly produced by a
// sub-assembly order.
type RegisterSubAssemblyCommand struct { //nolint:recvcheck //using for validation
	subAssemblyID kernel.UUID
	orderID       kernel.UUID
	labelSerial   string
	itemCode      string
	actorID       string

	guard guard.ConstructorGuard
}

func NewRegisterSubAssemblyCommand(
	subAssemblyID, orderID kernel.UUID,
	labelSerial, itemCode, actorID string,
) (RegisterSubAssemblyCommand, error) {
	cmd := RegisterSubAssemblyCommand{
		labelSerial: strings.TrimSpace(labelSerial),
		itemCode:    strings.TrimSpace(itemCode),
		guard:       guard.NewConstructorGuard(),
	}
	if err := errors.Join(
		subAssemblyID.Validate(),
		orderID.Validate(),
		required("labelSerial", cmd.labelSerial),
		required("itemCode", cmd.itemCode),
		requireActor(actorID),
	); err != nil {
		return RegisterSubAssemblyCommand{}, err
	}
	cmd.subAssemblyID = subAssemblyID
	cmd.orderID = orderID
	cmd.actorID = actorID
	return cmd, nil
}

func (c RegisterSubAssemblyCommand) Validate() error {
	return c.guard.Validate(ErrRegisterSubAssemblyCommandIsNotConstructed)
}

func (c RegisterSubAssemblyCommand) SubAssemblyID() kernel.UUID { return c.subAssemblyID }
func (c RegisterSubAssemblyCommand) OrderID() kernel.UUID       { return c.orderID }
func (c RegisterSubAssemblyCommand) LabelSerial() string        { return c.labelSerial }
func (c RegisterSubAssemblyCommand) ItemCode() string           { return c.itemCode }
func (c RegisterSubAssemblyCommand) ActorID() string            { return c.actorID }
