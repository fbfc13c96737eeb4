package commands

import (
	"errors"
	"strings"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/production"
	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

var ErrCreateProductionOrderCommandIsNotConstructed = errors.New(
	"CreateProductionOrderCommand must be created via NewCreateProductionOrderCommand constructor",
)

// CreateProductionOrderCommand opens a production order for an ERP
// manufacturing order.
//
// Example:
//
//	cmd, err := NewCreateProductionOrderCommand(kernel.NewUUID(), "op-17",
//	    "OP-1042", "10", "PA-100", 5, production.FinalProduct, true)
type CreateProductionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID         kernel.UUID
	actorID         string
	orderNumber     string
	company         string
	productCode     string
	quantity        int
	kind            production.Kind
	requiresTesting bool

	guard guard.ConstructorGuard
}

func NewCreateProductionOrderCommand(
	orderID kernel.UUID,
	actorID, orderNumber, company, productCode string,
	quantity int,
	kind production.Kind,
	requiresTesting bool,
) (CreateProductionOrderCommand, error) {
	cmd := CreateProductionOrderCommand{
		orderNumber:     strings.TrimSpace(orderNumber),
		company:         strings.TrimSpace(company),
		productCode:     strings.TrimSpace(productCode),
		requiresTesting: requiresTesting,
		guard:           guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		orderID.Validate(),
		requireActor(actorID),
		required("orderNumber", cmd.orderNumber),
		required("company", cmd.company),
		required("productCode", cmd.productCode),
		cmd.setQuantity(quantity),
		kind.Validate(),
	); err != nil {
		return CreateProductionOrderCommand{}, err
	}

	cmd.orderID = orderID
	cmd.actorID = actorID
	cmd.kind = kind
	return cmd, nil
}

func (c CreateProductionOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateProductionOrderCommandIsNotConstructed)
}

func (c CreateProductionOrderCommand) OrderID() kernel.UUID  { return c.orderID }
func (c CreateProductionOrderCommand) ActorID() string       { return c.actorID }
func (c CreateProductionOrderCommand) OrderNumber() string   { return c.orderNumber }
func (c CreateProductionOrderCommand) Company() string       { return c.company }
func (c CreateProductionOrderCommand) ProductCode() string   { return c.productCode }
func (c CreateProductionOrderCommand) Quantity() int         { return c.quantity }
func (c CreateProductionOrderCommand) Kind() production.Kind { return c.kind }
func (c CreateProductionOrderCommand) RequiresTesting() bool { return c.requiresTesting }

func (c *CreateProductionOrderCommand) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "unbounded")
	}
	c.quantity = quantity
	return nil
}
