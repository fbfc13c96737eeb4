package commands

import (
	"errors"
	"strings"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrBindSubAssemblyCommandIsNotConstructed = errors.New(
	"BindSubAssemblyCommand must be created via NewBindSubAssemblyCommand constructor",
)

// BindSubAssemblyCommand links the sub-assembly carrying labelSerial to a
// final unit.
type BindSubAssemblyCommand struct { //nolint:recvcheck //using for validation
	finalUnitID kernel.UUID
	labelSerial string
	actorID     string

	guard guard.ConstructorGuard
}

func NewBindSubAssemblyCommand(finalUnitID kernel.UUID, labelSerial, actorID string) (BindSubAssemblyCommand, error) {
	labelSerial = strings.TrimSpace(labelSerial)
	if err := errors.Join(
		finalUnitID.Validate(),
		required("labelSerial", labelSerial),
		requireActor(actorID),
	); err != nil {
		return BindSubAssemblyCommand{}, err
	}
	return BindSubAssemblyCommand{
		finalUnitID: finalUnitID,
		labelSerial: labelSerial,
		actorID:     actorID,
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c BindSubAssemblyCommand) Validate() error {
	return c.guard.Validate(ErrBindSubAssemblyCommandIsNotConstructed)
}

func (c BindSubAssemblyCommand) FinalUnitID() kernel.UUID { return c.finalUnitID }
func (c BindSubAssemblyCommand) LabelSerial() string      { return c.labelSerial }
func (c BindSubAssemblyCommand) ActorID() string          { return c.actorID }
