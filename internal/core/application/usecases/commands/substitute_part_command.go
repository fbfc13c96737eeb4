package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/consumption"
	"shopfloor/internal/pkg/guard"
)

var ErrSubstitutePartCommandIsNotConstructed = errors.New(
	"SubstitutePartCommand must be created via NewSubstitutePartCommand constructor",
)

// SubstitutePartCommand replaces the active piece of the scanned item in
// context with the newly scanned piece.
type SubstitutePartCommand struct { //nolint:recvcheck //using for validation
	context consumption.Context
	scan    consumption.Scan
	actorID string
	note    string

	guard guard.ConstructorGuard
}

func NewSubstitutePartCommand(in consumption.Context, rawScan, actorID, note string) (SubstitutePartCommand, error) {
	_, contextErr := consumption.NewContext(in.Kind, in.Ref)
	scan, scanErr := consumption.ParseScan(rawScan)
	if err := errors.Join(contextErr, scanErr, requireActor(actorID)); err != nil {
		return SubstitutePartCommand{}, err
	}
	return SubstitutePartCommand{
		context: in,
		scan:    scan,
		actorID: actorID,
		note:    note,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

func (c SubstitutePartCommand) Validate() error {
	return c.guard.Validate(ErrSubstitutePartCommandIsNotConstructed)
}

func (c SubstitutePartCommand) Context() consumption.Context { return c.context }
func (c SubstitutePartCommand) Scan() consumption.Scan       { return c.scan }
func (c SubstitutePartCommand) ActorID() string              { return c.actorID }
func (c SubstitutePartCommand) Note() string                 { return c.note }
