// Package owners resolves the versioned entity that owns a consumption
// context, together with the product whose BOM governs it.
package owners

import (
	"context"
	"fmt"

	"shopfloor/internal/core/domain/model/consumption"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/workflow"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/errs"
)

// Readers is the subset of a unit of work the resolver reads from.
type Readers interface {
	ProductionOrderRepository() ports.ProductionOrderRepository
	RepairTicketRepository() ports.RepairTicketRepository
	SubAssemblyRepository() ports.SubAssemblyRepository
}

// Owner is the entity whose version is claimed when a context changes.
type Owner struct {
	Ref     kernel.EntityRef
	Version int
	Status  workflow.Stage
	Company string
	// ProductCode is the product whose BOM lists the items the context accepts.
	ProductCode string
	// FinalUnitID is set for final unit contexts; bound sub-assemblies of this
	// unit are candidate contexts too.
	FinalUnitID *kernel.UUID
}

// Resolve finds the owner of c and checks that it still accepts parts.
//
// A final unit is owned by its production order. A sub-assembly bound to a
// final unit is owned by that unit's order, an unbound one by the order it was
// registered against. A repair ticket owns itself and accepts parts only in
// reparo.
func Resolve(ctx context.Context, r Readers, c consumption.Context) (Owner, error) {
	return resolve(ctx, r, c, true)
}

// Lookup finds the owner of c without checking that it accepts parts. Read
// models use it to report on closed entities.
func Lookup(ctx context.Context, r Readers, c consumption.Context) (Owner, error) {
	return resolve(ctx, r, c, false)
}

func resolve(ctx context.Context, r Readers, c consumption.Context, open bool) (Owner, error) {
	switch c.Kind {
	case consumption.FinalUnitContext:
		unit, err := r.ProductionOrderRepository().GetFinalUnit(ctx, c.Ref)
		if err != nil {
			return Owner{}, err
		}
		owner, err := orderOwner(ctx, r, unit.OrderID(), open)
		if err != nil {
			return Owner{}, err
		}
		id := unit.ID()
		owner.FinalUnitID = &id
		return owner, nil

	case consumption.SubAssemblyContext:
		sub, err := r.SubAssemblyRepository().Get(ctx, c.Ref)
		if err != nil {
			return Owner{}, err
		}
		orderID := sub.ProductionOrderID()
		if sub.IsBound() {
			unit, err := r.ProductionOrderRepository().GetFinalUnit(ctx, *sub.FinalUnitID())
			if err != nil {
				return Owner{}, err
			}
			orderID = unit.OrderID()
		}
		owner, err := orderOwner(ctx, r, orderID, open)
		if err != nil {
			return Owner{}, err
		}
		owner.ProductCode = sub.ItemCode()
		return owner, nil

	case consumption.RepairTicketContext:
		ticket, err := r.RepairTicketRepository().Get(ctx, c.Ref)
		if err != nil {
			return Owner{}, err
		}
		if open {
			if err := ticket.EnsureAcceptsParts(); err != nil {
				return Owner{}, err
			}
		}
		return Owner{
			Ref:         ticket.Ref(),
			Version:     ticket.Version(),
			Status:      ticket.Status(),
			Company:     ticket.Company(),
			ProductCode: ticket.ProductCode(),
		}, nil
	}

	return Owner{}, errs.NewValueIsInvalidErrorWithCause("context kind is invalid", fmt.Errorf("%s has no owner", c))
}

func orderOwner(ctx context.Context, r Readers, orderID kernel.UUID, open bool) (Owner, error) {
	order, err := r.ProductionOrderRepository().Get(ctx, orderID)
	if err != nil {
		return Owner{}, err
	}
	if open {
		if err := order.EnsureOpen(); err != nil {
			return Owner{}, err
		}
	}
	return Owner{
		Ref:         order.Ref(),
		Version:     order.Version(),
		Status:      order.Status(),
		Company:     order.Company(),
		ProductCode: order.ProductCode(),
	}, nil
}
