package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/workflow"
	"shopfloor/internal/pkg/guard"
)

var ErrAdvanceCommandIsNotConstructed = errors.New(
	"AdvanceCommand must be created via NewAdvanceCommand constructor",
)

// AdvanceCommand asks an entity to leave its current stage. An empty target
// lets the entity's workflow pick the next stage from its facts.
type AdvanceCommand struct { //nolint:recvcheck //using for validation
	entity  kernel.EntityRef
	target  workflow.Stage
	actorID string
	note    string

	guard guard.ConstructorGuard
}

func NewAdvanceCommand(entity kernel.EntityRef, target workflow.Stage, actorID, note string) (AdvanceCommand, error) {
	cmd := AdvanceCommand{
		target: target,
		note:   note,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setEntity(entity),
		cmd.setActorID(actorID),
	); err != nil {
		return AdvanceCommand{}, err
	}

	return cmd, nil
}

func (c AdvanceCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceCommandIsNotConstructed)
}

// validateFor also checks that the command addresses an entity of kind.
func (c AdvanceCommand) validateFor(kind kernel.EntityKind) error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.entity.Kind != kind {
		return errEntityKindMismatch(kind, c.entity)
	}
	return nil
}

func (c AdvanceCommand) Entity() kernel.EntityRef { return c.entity }
func (c AdvanceCommand) Target() workflow.Stage   { return c.target }
func (c AdvanceCommand) ActorID() string          { return c.actorID }
func (c AdvanceCommand) Note() string             { return c.note }

func (c *AdvanceCommand) setEntity(entity kernel.EntityRef) error {
	ref, err := kernel.NewEntityRef(entity.Kind, entity.ID)
	if err != nil {
		return err
	}
	c.entity = ref
	return nil
}

func (c *AdvanceCommand) setActorID(actorID string) error {
	if err := requireActor(actorID); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}
