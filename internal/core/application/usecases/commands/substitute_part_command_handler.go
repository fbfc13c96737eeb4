package commands

import (
	"context"
	"fmt"
	"strings"

	"shopfloor/internal/core/application/usecases/owners"
	"shopfloor/internal/core/domain/model/consumption"
	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/ports"

	"github.com/rs/zerolog"
)

// SubstitutePartResult names the closed and the opened record.
type SubstitutePartResult struct {
	Replaced kernel.UUID
	RecordID kernel.UUID
}

// SubstitutePartCommandHandler swaps a consumed piece for another piece of
// the same item, keeping the item code of the replaced record.
type SubstitutePartCommandHandler struct {
	uowFactory UoWFactory
	authorizer ports.Authorizer
	now        Clock
	log        zerolog.Logger
}

func NewSubstitutePartCommandHandler(
	uowFactory UoWFactory,
	authorizer ports.Authorizer,
	now Clock,
	log zerolog.Logger,
) SubstitutePartCommandHandler {
	return SubstitutePartCommandHandler{uowFactory: uowFactory, authorizer: authorizer, now: now, log: log}
}

func (h *SubstitutePartCommandHandler) Handle(ctx context.Context, cmd SubstitutePartCommand) (SubstitutePartResult, error) {
	res, err := h.handle(ctx, cmd)
	if err != nil {
		h.log.Warn().Err(err).
			Stringer("context", cmd.Context()).
			Str("item", cmd.Scan().ItemCode).
			Str("scan_identity", cmd.Scan().Identity).
			Str("actor", cmd.ActorID()).
			Msg("part substitution rejected")
		return SubstitutePartResult{}, err
	}
	h.log.Info().
		Stringer("context", cmd.Context()).
		Stringer("replaced", res.Replaced).
		Stringer("record", res.RecordID).
		Str("actor", cmd.ActorID()).
		Msg("part substituted")
	return res, nil
}

func (h *SubstitutePartCommandHandler) handle(ctx context.Context, cmd SubstitutePartCommand) (SubstitutePartResult, error) {
	if err := cmd.Validate(); err != nil {
		return SubstitutePartResult{}, err
	}
	if err := authorize(ctx, h.authorizer, cmd.ActorID(), ownerKind(cmd.Context().Kind)); err != nil {
		return SubstitutePartResult{}, err
	}

	uow := h.uowFactory.Create()
	owner, err := owners.Resolve(ctx, uow, cmd.Context())
	if err != nil {
		return SubstitutePartResult{}, err
	}

	scan := cmd.Scan()
	active, err := uow.ConsumptionRepository().ListActiveByContexts(ctx, []consumption.Context{cmd.Context()})
	if err != nil {
		return SubstitutePartResult{}, err
	}
	var replaced *consumption.Record
	for _, r := range active {
		if strings.EqualFold(r.ItemCode(), scan.ItemCode) {
			replaced = r
			break
		}
	}
	if replaced == nil {
		return SubstitutePartResult{}, consumption.Invalid("itemCode",
			fmt.Errorf("%w: %s in %s", consumption.ErrNothingToReplace, scan.ItemCode, cmd.Context()))
	}

	elsewhere, err := uow.ConsumptionRepository().FindActiveByScanIdentity(ctx, scan.Identity)
	if err != nil {
		return SubstitutePartResult{}, err
	}
	if elsewhere != nil && !elsewhere.ID().IsEqual(replaced.ID()) {
		return SubstitutePartResult{}, consumption.Invalid("scan",
			fmt.Errorf("%w: %s in %s", consumption.ErrScanIdentityActive, scan.Identity, elsewhere.Context()))
	}

	at := h.now()
	next, err := replaced.Substitute(scan, cmd.ActorID(), at)
	if err != nil {
		return SubstitutePartResult{}, err
	}

	note := fmt.Sprintf("%s %s -> %s", next.ItemCode(), replaced.ScanIdentity(), next.ScanIdentity())
	if cmd.Note() != "" {
		note += ": " + cmd.Note()
	}
	e, err := event.NewEvent(owner.Ref, owner.Status, event.Substituicao, cmd.ActorID(), at, note)
	if err != nil {
		return SubstitutePartResult{}, err
	}

	claim := ports.ClaimRequest{Entity: owner.Ref, ExpectedVersion: owner.Version, ExpectedStatus: owner.Status}
	if err := inTransaction(ctx, uow, claim, func() error {
		if err := uow.ConsumptionRepository().Close(ctx, replaced); err != nil {
			return err
		}
		if err := uow.ConsumptionRepository().Add(ctx, next); err != nil {
			return err
		}
		return uow.EventRepository().Append(ctx, e)
	}); err != nil {
		return SubstitutePartResult{}, err
	}

	return SubstitutePartResult{Replaced: replaced.ID(), RecordID: next.ID()}, nil
}
