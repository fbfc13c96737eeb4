package commands

import (
	"errors"
	"fmt"

	"shopfloor/internal/core/domain/model/consumption"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

var ErrConsumePartCommandIsNotConstructed = errors.New(
	"ConsumePartCommand must be created via NewConsumePartCommand constructor",
)

// ConsumePartCommand records a scanned part as consumed into target. For a
// final unit target the part may land in one of its bound sub-assemblies;
// preferredSubAssembly names that sub-assembly when several list the item.
type ConsumePartCommand struct { //nolint:recvcheck //using for validation
	target               consumption.Context
	scan                 consumption.Scan
	preferredSubAssembly *kernel.UUID
	actorID              string

	guard guard.ConstructorGuard
}

func NewConsumePartCommand(
	target consumption.Context,
	rawScan string,
	preferredSubAssembly *kernel.UUID,
	actorID string,
) (ConsumePartCommand, error) {
	var targetErr, preferredErr error
	if _, err := consumption.NewContext(target.Kind, target.Ref); err != nil {
		targetErr = err
	}
	if preferredSubAssembly != nil && target.Kind != consumption.FinalUnitContext {
		preferredErr = errs.NewValueIsInvalidErrorWithCause("preferredSubAssembly",
			fmt.Errorf("only final unit targets hold sub-assemblies, target is %s", target.Kind))
	}
	scan, scanErr := consumption.ParseScan(rawScan)

	if err := errors.Join(targetErr, preferredErr, scanErr, requireActor(actorID)); err != nil {
		return ConsumePartCommand{}, err
	}

	return ConsumePartCommand{
		target:               target,
		scan:                 scan,
		preferredSubAssembly: preferredSubAssembly,
		actorID:              actorID,
		guard:                guard.NewConstructorGuard(),
	}, nil
}

func (c ConsumePartCommand) Validate() error {
	return c.guard.Validate(ErrConsumePartCommandIsNotConstructed)
}

func (c ConsumePartCommand) Target() consumption.Context        { return c.target }
func (c ConsumePartCommand) Scan() consumption.Scan             { return c.scan }
func (c ConsumePartCommand) PreferredSubAssembly() *kernel.UUID { return c.preferredSubAssembly }
func (c ConsumePartCommand) ActorID() string                    { return c.actorID }
