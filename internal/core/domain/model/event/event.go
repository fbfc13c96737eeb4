package event

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shopfloor/internal/core/domain/model/control"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/workflow"
	"shopfloor/internal/pkg/errs"
)

var ErrEventIsNotConstructed = errors.New("Event must be created via NewEvent or RestoreEvent")

// Kind is either a control action code or an audit marker.
type Kind string

const (
	Consumo              Kind = "consumo"
	Substituicao         Kind = "substituicao"
	ConsumoSubproduto    Kind = "consumo_subproduto"
	VinculoSubproduto    Kind = "vinculo_subproduto"
	OrcamentoAprovado    Kind = "orcamento_aprovado"
	UnidadesGeradas      Kind = "unidades_geradas"
	SubprodutoRegistrado Kind = "subproduto_registrado"
)

var auditKinds = map[Kind]bool{
	Consumo:              true,
	Substituicao:         true,
	ConsumoSubproduto:    true,
	VinculoSubproduto:    true,
	OrcamentoAprovado:    true,
	UnidadesGeradas:      true,
	SubprodutoRegistrado: true,
}

const statusPrefix = "status_"

// ControlKind is the event kind recording a control action.
func ControlKind(k control.Kind) Kind {
	return Kind(k.String())
}

// StatusKind is the audit marker for entering stage.
func StatusKind(stage workflow.Stage) Kind {
	return Kind(workflow.StatusEventKind(stage))
}

func (k Kind) String() string {
	return string(k)
}

// Control returns the action a control event records.
func (k Kind) Control() (control.Kind, bool) {
	c, err := control.ParseKind(string(k))
	if err != nil {
		return control.None, false
	}
	return c, true
}

func (k Kind) Validate() error {
	if _, ok := k.Control(); ok {
		return nil
	}
	if auditKinds[k] {
		return nil
	}
	if strings.HasPrefix(string(k), statusPrefix) && len(k) > len(statusPrefix) {
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("event kind is invalid", fmt.Errorf("%q is not a known event kind", k))
}

// Event is an immutable, append-only fact about an entity. Events are never
// updated or deleted; the timeline of an entity is its events in insertion
// order.
type Event struct {
	id        kernel.UUID
	entity    kernel.EntityRef
	stage     workflow.Stage
	kind      Kind
	actorID   string
	createdAt time.Time
	note      string

	isConstructed bool
}

// NewEvent creates an event with a fresh identifier.
//
// Parameters:
//   - entity: the entity the event belongs to
//   - stage: the stage the event is recorded against
//   - kind: control action code or audit marker
//   - actorID: the operator who performed the action
//   - createdAt: the instant the action happened
//   - note: optional free text
func NewEvent(entity kernel.EntityRef, stage workflow.Stage, kind Kind, actorID string, createdAt time.Time, note string) (*Event, error) {
	return RestoreEvent(kernel.NewUUID(), entity, stage, kind, actorID, createdAt, note)
}

// RestoreEvent rebuilds an event loaded from persistence.
func RestoreEvent(id kernel.UUID, entity kernel.EntityRef, stage workflow.Stage, kind Kind, actorID string, createdAt time.Time, note string) (*Event, error) {
	e := &Event{
		id:            id,
		entity:        entity,
		stage:         stage,
		kind:          kind,
		actorID:       strings.TrimSpace(actorID),
		createdAt:     createdAt,
		note:          note,
		isConstructed: true,
	}

	if err := errors.Join(
		id.Validate(),
		entity.Kind.Validate(),
		entity.ID.Validate(),
		e.validateStage(),
		kind.Validate(),
		e.validateActor(),
		e.validateCreatedAt(),
	); err != nil {
		return nil, err
	}
	return e, nil
}

func (e *Event) Validate() error {
	if e == nil || !e.isConstructed {
		return ErrEventIsNotConstructed
	}
	return nil
}

func (e *Event) ID() kernel.UUID          { return e.id }
func (e *Event) Entity() kernel.EntityRef { return e.entity }
func (e *Event) Stage() workflow.Stage    { return e.stage }
func (e *Event) Kind() Kind               { return e.kind }
func (e *Event) ActorID() string          { return e.actorID }
func (e *Event) CreatedAt() time.Time     { return e.createdAt }
func (e *Event) Note() string             { return e.note }

// Control returns the action of a control event; ok is false for audit events.
func (e *Event) Control() (control.Kind, bool) {
	return e.kind.Control()
}

func (e *Event) validateStage() error {
	if strings.TrimSpace(e.stage.String()) == "" {
		return errs.NewValueIsRequiredError("stage")
	}
	return nil
}

func (e *Event) validateActor() error {
	if e.actorID == "" {
		return errs.NewValueIsRequiredError("actor")
	}
	return nil
}

func (e *Event) validateCreatedAt() error {
	if e.createdAt.IsZero() {
		return errs.NewValueIsRequiredError("createdAt")
	}
	return nil
}
