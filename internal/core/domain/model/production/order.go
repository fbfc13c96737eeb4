package production

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/workflow"
	"shopfloor/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// Order is the production order aggregate: one ERP manufacturing order being
// assembled, tested and packed on the shop floor.
//
// Order follows these invariants:
//   - Quantity is positive
//   - Status is a stage of Graph and only changes through Advance
//   - A terminal order (finalizada, cancelada) never changes again
//
// Version is the optimistic-concurrency counter owned by the entity store.
// The aggregate carries the version it was loaded at; a successful claim
// leaves the persisted version one higher.
type Order struct {
	id              kernel.UUID
	orderNumber     string
	company         string
	productCode     string
	quantity        int
	kind            Kind
	requiresTesting bool
	status          workflow.Stage
	version         int
	createdAt       time.Time

	isConstructed bool
}

// NewOrder creates an order in the initial stage at version 0.
//
// Parameters:
//   - id: Unique identifier for the order
//   - orderNumber: The ERP manufacturing order number
//   - company: The ERP organisation the order belongs to
//   - productCode: The item being produced
//   - quantity: Units to produce (must be positive)
//   - kind: FinalProduct or SubAssembly
//   - requiresTesting: Whether the order passes through the teste stage
//   - createdAt: Creation instant
//
// Returns:
//   - *Order: The created order if all validations pass
//   - error: All validation errors joined
//
// Example:
//
//	o, err := production.NewOrder(kernel.NewUUID(), "OP-1042", "10", "PA-100", 5,
//	    production.FinalProduct, true, time.Now())
func NewOrder(
	id kernel.UUID,
	orderNumber, company, productCode string,
	quantity int,
	kind Kind,
	requiresTesting bool,
	createdAt time.Time,
) (*Order, error) {
	return RestoreOrder(id, orderNumber, company, productCode, quantity, kind, requiresTesting, Graph.Initial(), 0, createdAt)
}

// RestoreOrder rebuilds an order loaded from persistence.
func RestoreOrder(
	id kernel.UUID,
	orderNumber, company, productCode string,
	quantity int,
	kind Kind,
	requiresTesting bool,
	status workflow.Stage,
	version int,
	createdAt time.Time,
) (*Order, error) {
	o := &Order{
		requiresTesting: requiresTesting,
		createdAt:       createdAt,
		isConstructed:   true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCompany(company),
		o.setProductCode(productCode),
		o.setQuantity(quantity),
		o.setKind(kind),
		o.setStatus(status),
		o.setVersion(version),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the Order was built by NewOrder or RestoreOrder.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) ID() kernel.UUID        { return o.id }
func (o *Order) OrderNumber() string    { return o.orderNumber }
func (o *Order) Company() string        { return o.company }
func (o *Order) ProductCode() string    { return o.productCode }
func (o *Order) Quantity() int          { return o.quantity }
func (o *Order) Kind() Kind             { return o.kind }
func (o *Order) RequiresTesting() bool  { return o.requiresTesting }
func (o *Order) Status() workflow.Stage { return o.status }
func (o *Order) Version() int           { return o.version }
func (o *Order) CreatedAt() time.Time   { return o.createdAt }
func (o *Order) Ref() kernel.EntityRef  { return kernel.EntityRef{Kind: kernel.ProductionOrder, ID: o.id} }
func (o *Order) IsClosed() bool         { return Graph.IsTerminal(o.status) }

// Facts combines the order's own attributes with derived progress.
func (o *Order) Facts(p Progress) Facts {
	return Facts{
		Kind:            o.kind,
		Quantity:        o.quantity,
		RequiresTesting: o.requiresTesting,
		FinalUnits:      p.FinalUnits,
		SubAssemblies:   p.SubAssemblies,
		OpenStages:      p.OpenStages,
	}
}

// Advance moves the order to target, or to the resolved next stage when
// target is empty.
//
// Returns the stage the order left. On error the order is unchanged:
//   - errs.ErrEntityIsClosed if the order is terminal
//   - *errs.TransitionIsInvalidError if target is not reachable
//   - *errs.GuardViolationError if a guard does not hold
func (o *Order) Advance(target workflow.Stage, p Progress) (workflow.Stage, error) {
	from := o.status
	next, err := Graph.Advance(o.Ref().String(), from, target, o.Facts(p))
	if err != nil {
		return "", err
	}
	o.status = next
	return from, nil
}

// EnsureOpen returns errs.ErrEntityIsClosed for terminal orders.
func (o *Order) EnsureOpen() error {
	if o.IsClosed() {
		return errs.ErrEntityIsClosed
	}
	return nil
}

// EnsureCanGenerateUnits checks that count more final units may be created
// given existing ones. Units are generated in montagem for final-product
// orders, never beyond the order quantity.
func (o *Order) EnsureCanGenerateUnits(existing, count int) error {
	if err := o.EnsureOpen(); err != nil {
		return err
	}
	if o.kind != FinalProduct {
		return errs.NewValueIsInvalidErrorWithCause("order kind is invalid", fmt.Errorf("%s orders have no final units", o.kind))
	}
	if o.status != Montagem {
		return errs.NewGuardViolationError(o.Ref().String(), "", "", "final units are generated during montagem")
	}
	if count <= 0 || existing+count > o.quantity {
		return errs.NewValueIsOutOfRangeError("final unit count", count, 1, o.quantity-existing)
	}
	return nil
}

// EnsureAcceptsSubAssemblies checks that sub-assemblies may be registered
// against the order.
func (o *Order) EnsureAcceptsSubAssemblies() error {
	if err := o.EnsureOpen(); err != nil {
		return err
	}
	if o.kind != SubAssembly {
		return errs.NewValueIsInvalidErrorWithCause("order kind is invalid", fmt.Errorf("%s orders do not register sub-assemblies", o.kind))
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errs.NewValueIsRequiredError("orderNumber")
	}
	o.orderNumber = v
	return nil
}

func (o *Order) setCompany(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errs.NewValueIsRequiredError("company")
	}
	o.company = v
	return nil
}

func (o *Order) setProductCode(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return errs.NewValueIsRequiredError("productCode")
	}
	o.productCode = v
	return nil
}

func (o *Order) setQuantity(q int) error {
	if q <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("quantity is invalid", fmt.Errorf("%d is not greater than 0", q))
	}
	o.quantity = q
	return nil
}

func (o *Order) setKind(k Kind) error {
	if err := k.Validate(); err != nil {
		return err
	}
	o.kind = k
	return nil
}

func (o *Order) setStatus(s workflow.Stage) error {
	if !Graph.Contains(s) {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a production stage", s))
	}
	o.status = s
	return nil
}

func (o *Order) setVersion(v int) error {
	if v < 0 {
		return errs.NewValueIsInvalidErrorWithCause("version is invalid", fmt.Errorf("%d is negative", v))
	}
	o.version = v
	return nil
}
