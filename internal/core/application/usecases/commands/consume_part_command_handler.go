package commands

import (
	"context"
	"errors"
	"fmt"

	"shopfloor/internal/core/application/usecases/owners"
	"shopfloor/internal/core/domain/model/bom"
	"shopfloor/internal/core/domain/model/consumption"
	"shopfloor/internal/core/domain/model/event"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/services"
	"shopfloor/internal/core/ports"

	"github.com/rs/zerolog"
)

// ConsumePartResult describes the opened consumption record.
type ConsumePartResult struct {
	RecordID kernel.UUID
	// Context is where the part landed, which differs from the target when
	// the part belongs to a bound sub-assembly.
	Context  consumption.Context
	ItemCode string
	// Replaced is the record closed because the slot was occupied.
	Replaced *kernel.UUID
}

// ConsumePartCommandHandler records a scanned part against the BOM of its
// context.
//
// Business rules:
//   - A scan identity is active in at most one context system-wide
//   - The item must be listed by the BOM of the target or of exactly one
//     bound sub-assembly, unless the caller names the sub-assembly
//   - A context holds one active record per item code; an occupied slot is
//     closed and replaced by the new record
//   - The owning entity is claimed, so concurrent changes to it conflict
type ConsumePartCommandHandler struct {
	uowFactory UoWFactory
	authorizer ports.Authorizer
	erp        ports.ERP
	resolver   services.ConsumptionContextResolver
	now        Clock
	log        zerolog.Logger
}

func NewConsumePartCommandHandler(
	uowFactory UoWFactory,
	authorizer ports.Authorizer,
	erp ports.ERP,
	now Clock,
	log zerolog.Logger,
) ConsumePartCommandHandler {
	return ConsumePartCommandHandler{
		uowFactory: uowFactory,
		authorizer: authorizer,
		erp:        erp,
		resolver:   services.NewConsumptionContextResolver(),
		now:        now,
		log:        log,
	}
}

func (h *ConsumePartCommandHandler) Handle(ctx context.Context, cmd ConsumePartCommand) (ConsumePartResult, error) {
	res, err := h.handle(ctx, cmd)
	if err != nil {
		h.log.Warn().Err(err).
			Stringer("target", cmd.Target()).
			Str("item", cmd.Scan().ItemCode).
			Str("scan_identity", cmd.Scan().Identity).
			Str("actor", cmd.ActorID()).
			Msg("part consumption rejected")
		return ConsumePartResult{}, err
	}

	h.log.Info().
		Stringer("context", res.Context).
		Str("item", res.ItemCode).
		Str("scan_identity", cmd.Scan().Identity).
		Bool("replaced", res.Replaced != nil).
		Str("actor", cmd.ActorID()).
		Msg("part consumed")
	return res, nil
}

func (h *ConsumePartCommandHandler) handle(ctx context.Context, cmd ConsumePartCommand) (ConsumePartResult, error) {
	if err := cmd.Validate(); err != nil {
		return ConsumePartResult{}, err
	}
	if err := authorize(ctx, h.authorizer, cmd.ActorID(), ownerKind(cmd.Target().Kind)); err != nil {
		return ConsumePartResult{}, err
	}

	uow := h.uowFactory.Create()
	owner, err := owners.Resolve(ctx, uow, cmd.Target())
	if err != nil {
		return ConsumePartResult{}, err
	}

	primary, subs, err := h.candidates(ctx, uow, owner, cmd.Target())
	if err != nil {
		return ConsumePartResult{}, err
	}

	scan := cmd.Scan()
	resolved, err := h.resolver.Resolve(scan.ItemCode, primary, subs, cmd.PreferredSubAssembly())
	if err != nil {
		var notInBOM *consumption.ItemNotInBOMError
		if errors.As(err, &notInBOM) {
			// Best effort: the rejection stands without a description.
			if desc, derr := h.erp.DescribeItem(ctx, owner.Company, scan.ItemCode); derr == nil {
				notInBOM.Description = desc
			}
		}
		return ConsumePartResult{}, err
	}
	if line, ok := bomOf(resolved, primary, subs).Line(scan.ItemCode); ok {
		scan.ItemCode = line.ItemCode
	}

	active, err := uow.ConsumptionRepository().FindActiveByScanIdentity(ctx, scan.Identity)
	if err != nil {
		return ConsumePartResult{}, err
	}
	if active != nil {
		return ConsumePartResult{}, consumption.Invalid("scan",
			fmt.Errorf("%w: %s in %s", consumption.ErrScanIdentityActive, scan.Identity, active.Context()))
	}

	previous, err := uow.ConsumptionRepository().FindActive(ctx, scan.ItemCode, resolved)
	if err != nil {
		return ConsumePartResult{}, err
	}

	at := h.now()
	record, err := consumption.NewRecord(owner.Ref, resolved, scan, cmd.ActorID(), at)
	if err != nil {
		return ConsumePartResult{}, err
	}

	kind := event.Consumo
	if resolved.Kind == consumption.SubAssemblyContext {
		kind = event.ConsumoSubproduto
	}
	e, err := event.NewEvent(owner.Ref, owner.Status, kind, cmd.ActorID(), at,
		fmt.Sprintf("%s %s -> %s", scan.ItemCode, scan.Identity, resolved))
	if err != nil {
		return ConsumePartResult{}, err
	}

	res := ConsumePartResult{RecordID: record.ID(), Context: resolved, ItemCode: scan.ItemCode}
	if previous != nil {
		recordID := record.ID()
		if err = previous.Close(at, &recordID); err != nil {
			return ConsumePartResult{}, err
		}
		replaced := previous.ID()
		res.Replaced = &replaced
	}

	claim := ports.ClaimRequest{Entity: owner.Ref, ExpectedVersion: owner.Version, ExpectedStatus: owner.Status}
	if err := inTransaction(ctx, uow, claim, func() error {
		if previous != nil {
			if err := uow.ConsumptionRepository().Close(ctx, previous); err != nil {
				return err
			}
		}
		if err := uow.ConsumptionRepository().Add(ctx, record); err != nil {
			return err
		}
		return uow.EventRepository().Append(ctx, e)
	}); err != nil {
		return ConsumePartResult{}, err
	}

	return res, nil
}

// candidates loads the BOM of the target and, for a final unit, of every
// sub-assembly bound to it. BOMs come from the ERP before any transaction.
func (h *ConsumePartCommandHandler) candidates(
	ctx context.Context,
	uow UoW,
	owner owners.Owner,
	target consumption.Context,
) (services.ContextCandidate, []services.ContextCandidate, error) {
	productBOM, err := h.erp.GetBOM(ctx, owner.Company, owner.ProductCode)
	if err != nil {
		return services.ContextCandidate{}, nil, err
	}
	primary := services.ContextCandidate{Context: target, BOM: productBOM}

	if owner.FinalUnitID == nil {
		return primary, nil, nil
	}

	bound, err := uow.SubAssemblyRepository().ListBoundToUnit(ctx, *owner.FinalUnitID)
	if err != nil {
		return services.ContextCandidate{}, nil, err
	}
	subs := make([]services.ContextCandidate, 0, len(bound))
	for _, sub := range bound {
		subBOM, err := h.erp.GetBOM(ctx, owner.Company, sub.ItemCode())
		if err != nil {
			return services.ContextCandidate{}, nil, err
		}
		subs = append(subs, services.ContextCandidate{Context: sub.Context(), BOM: subBOM})
	}
	return primary, subs, nil
}

func bomOf(c consumption.Context, primary services.ContextCandidate, subs []services.ContextCandidate) bom.BOM {
	if c.IsEqual(primary.Context) {
		return primary.BOM
	}
	for _, s := range subs {
		if c.IsEqual(s.Context) {
			return s.BOM
		}
	}
	return bom.BOM{}
}
