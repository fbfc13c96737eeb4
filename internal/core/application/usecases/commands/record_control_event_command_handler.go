package commands

import (
	"context"

	"shopfloor/internal/core/domain/model/control"
	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/workflow"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/errs"

	"github.com/rs/zerolog"
)

// RecordControlEventResult describes the appended control event.
type RecordControlEventResult struct {
	EventID kernel.UUID
	Stage   workflow.Stage
	// Version is the entity version after the claim.
	Version int
}

// RecordControlEventCommandHandler validates an operator action against the
// stage's control sequence and appends it while claiming the entity.
//
// Business rules:
//   - Terminal entities accept no control events
//   - The action must follow the sequence rules of the entity kind
//   - retorno is rejected outside business hours when enforced
//   - A concurrent change of the entity fails the claim and nothing is appended
type RecordControlEventCommandHandler struct {
	uowFactory UoWFactory
	authorizer ports.Authorizer
	hours      *services.BusinessHoursAccountant
	// enforceHours enables the retorno business hours guard.
	enforceHours bool
	now          Clock
	log          zerolog.Logger
}

func NewRecordControlEventCommandHandler(
	uowFactory UoWFactory,
	authorizer ports.Authorizer,
	hours *services.BusinessHoursAccountant,
	enforceHours bool,
	now Clock,
	log zerolog.Logger,
) RecordControlEventCommandHandler {
	return RecordControlEventCommandHandler{
		uowFactory:   uowFactory,
		authorizer:   authorizer,
		hours:        hours,
		enforceHours: enforceHours,
		now:          now,
		log:          log,
	}
}

func (h *RecordControlEventCommandHandler) Handle(ctx context.Context, cmd RecordControlEventCommand) (RecordControlEventResult, error) {
	res, err := h.handle(ctx, cmd)
	if err != nil {
		h.log.Warn().Err(err).
			Stringer("entity", cmd.Entity()).
			Stringer("kind", cmd.Kind()).
			Str("actor", cmd.ActorID()).
			Msg("control event rejected")
		return RecordControlEventResult{}, err
	}

	h.log.Info().
		Stringer("entity", cmd.Entity()).
		Stringer("stage", res.Stage).
		Stringer("kind", cmd.Kind()).
		Str("actor", cmd.ActorID()).
		Int("version", res.Version).
		Msg("control event recorded")
	return res, nil
}

func (h *RecordControlEventCommandHandler) handle(ctx context.Context, cmd RecordControlEventCommand) (RecordControlEventResult, error) {
	if err := cmd.Validate(); err != nil {
		return RecordControlEventResult{}, err
	}

	ref := cmd.Entity()
	if err := authorize(ctx, h.authorizer, cmd.ActorID(), ref.Kind); err != nil {
		return RecordControlEventResult{}, err
	}

	uow := h.uowFactory.Create()
	snapshot, err := uow.EntityStore().Load(ctx, ref)
	if err != nil {
		return RecordControlEventResult{}, err
	}
	if isTerminal(ref.Kind, snapshot.Status) {
		return RecordControlEventResult{}, errs.ErrEntityIsClosed
	}

	history, err := uow.EventRepository().ListByEntity(ctx, ref)
	if err != nil {
		return RecordControlEventResult{}, err
	}

	seq := control.Sequence{Stage: snapshot.Status.String(), Last: event.LastControl(history, snapshot.Status)}
	if _, err := seq.Accept(cmd.Kind(), control.PolicyFor(ref.Kind)); err != nil {
		return RecordControlEventResult{}, err
	}

	at := h.now()
	if cmd.Kind() == control.Retorno && h.enforceHours && !h.hours.Contains(at) {
		return RecordControlEventResult{}, errs.NewGuardViolationError(ref.String(), "", "", ConditionRetornoInBusinessHours)
	}

	e, err := event.NewEvent(ref, snapshot.Status, event.ControlKind(cmd.Kind()), cmd.ActorID(), at, cmd.Note())
	if err != nil {
		return RecordControlEventResult{}, err
	}

	claim := ports.ClaimRequest{Entity: ref, ExpectedVersion: snapshot.Version, ExpectedStatus: snapshot.Status}
	if err := inTransaction(ctx, uow, claim, func() error {
		return uow.EventRepository().Append(ctx, e)
	}); err != nil {
		return RecordControlEventResult{}, err
	}

	return RecordControlEventResult{EventID: e.ID(), Stage: snapshot.Status, Version: snapshot.Version + 1}, nil
}
