package queries

import (
	"errors"

	"shopfloor/internal/core/domain/model/consumption"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetConsumptionStatusQueryIsNotConstructed = errors.New(
	"GetConsumptionStatusQuery must be created via NewGetConsumptionStatusQuery constructor",
)

// GetConsumptionStatusQuery compares the parts consumed into a context with
// its BOM. For a final unit the sub-assemblies bound to it are reported too.
// WithStock adds the ERP stock level of every item still missing.
type GetConsumptionStatusQuery struct {
	context   consumption.Context
	withStock bool

	guard guard.ConstructorGuard
}

func NewGetConsumptionStatusQuery(target consumption.Context, withStock bool) (GetConsumptionStatusQuery, error) {
	if _, err := consumption.NewContext(target.Kind, target.Ref); err != nil {
		return GetConsumptionStatusQuery{}, err
	}
	return GetConsumptionStatusQuery{context: target, withStock: withStock, guard: guard.NewConstructorGuard()}, nil
}

func (q GetConsumptionStatusQuery) Context() consumption.Context { return q.context }
func (q GetConsumptionStatusQuery) WithStock() bool              { return q.withStock }

func (q GetConsumptionStatusQuery) Validate() error {
	return q.guard.Validate(ErrGetConsumptionStatusQueryIsNotConstructed)
}

// LineStatus is one BOM line of a context. A context holds at most one active
// record per item, so Consumed is 0 or 1.
type LineStatus struct {
	ItemCode     string
	Description  string
	Quantity     decimal.Decimal
	Unit         string
	Consumed     int
	ScanIdentity string
	// Available is set for missing items when stock was requested.
	Available *decimal.Decimal
}

type ContextStatus struct {
	Context     consumption.Context
	ProductCode string
	Lines       []LineStatus
	Complete    bool
}

type GetConsumptionStatusQueryResponse struct {
	Owner    kernel.EntityRef
	Contexts []ContextStatus
	// Complete is true when every reported context is complete.
	Complete bool
}
