package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

var ErrGenerateFinalUnitsCommandIsNotConstructed = errors.New(
	"GenerateFinalUnitsCommand must be created via NewGenerateFinalUnitsCommand constructor",
)

// GenerateFinalUnitsCommand creates count serialised final units for a
// final-product order.
type GenerateFinalUnitsCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	count   int
	actorID string

	guard guard.ConstructorGuard
}

func NewGenerateFinalUnitsCommand(orderID kernel.UUID, count int, actorID string) (GenerateFinalUnitsCommand, error) {
	var countErr error
	if count <= 0 {
		countErr = errs.NewValueIsOutOfRangeError("count", count, 1, "order quantity")
	}
	if err := errors.Join(orderID.Validate(), countErr, requireActor(actorID)); err != nil {
		return GenerateFinalUnitsCommand{}, err
	}
	return GenerateFinalUnitsCommand{
		orderID: orderID,
		count:   count,
		actorID: actorID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c GenerateFinalUnitsCommand) Validate() error {
	return c.guard.Validate(ErrGenerateFinalUnitsCommandIsNotConstructed)
}

func (c GenerateFinalUnitsCommand) OrderID() kernel.UUID { return c.orderID }
func (c GenerateFinalUnitsCommand) Count() int           { return c.count }
func (c GenerateFinalUnitsCommand) ActorID() string      { return c.actorID }
