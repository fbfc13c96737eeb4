package commands

import (
	"errors"

	"shopfloor/internal/core/domain/model/control"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrRecordControlEventCommandIsNotConstructed = errors.New(
	"RecordControlEventCommand must be created via NewRecordControlEventCommand constructor",
)

// RecordControlEventCommand asks to record an operator action (inicio, pausa,
// retorno, fim) on the current stage of an entity.
//
// Example:
//
//	ref, _ := kernel.NewEntityRef(kernel.ProductionOrder, orderID)
//	cmd, err := NewRecordControlEventCommand(ref, control.Pausa, "op-17", "lunch")
//	if err != nil {
//	    return err
//	}
//	res, err := handler.Handle(ctx, cmd)
type RecordControlEventCommand struct { //nolint:recvcheck //using for validation
	entity  kernel.EntityRef
	kind    control.Kind
	actorID string
	note    string

	guard guard.ConstructorGuard
}

func NewRecordControlEventCommand(entity kernel.EntityRef, kind control.Kind, actorID, note string) (RecordControlEventCommand, error) {
	cmd := RecordControlEventCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setEntity(entity),
		cmd.setKind(kind),
		cmd.setActorID(actorID),
	); err != nil {
		return RecordControlEventCommand{}, err
	}

	return cmd, nil
}

func (c RecordControlEventCommand) Validate() error {
	return c.guard.Validate(ErrRecordControlEventCommandIsNotConstructed)
}

func (c RecordControlEventCommand) Entity() kernel.EntityRef { return c.entity }
func (c RecordControlEventCommand) Kind() control.Kind        { return c.kind }
func (c RecordControlEventCommand) ActorID() string           { return c.actorID }
func (c RecordControlEventCommand) Note() string              { return c.note }

func (c *RecordControlEventCommand) setEntity(entity kernel.EntityRef) error {
	ref, err := kernel.NewEntityRef(entity.Kind, entity.ID)
	if err != nil {
		return err
	}
	c.entity = ref
	return nil
}

func (c *RecordControlEventCommand) setKind(kind control.Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	c.kind = kind
	return nil
}

func (c *RecordControlEventCommand) setActorID(actorID string) error {
	if err := requireActor(actorID); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}
