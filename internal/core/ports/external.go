package ports

import (
	"context"

	"shopfloor/internal/core/domain/model/bom"

	"github.com/shopspring/decimal"
)

// ErpOrder is the ERP view of a sales or manufacturing order.
type ErpOrder struct {
	Number      string
	Company     string
	Customer    string
	ProductCode string
	Quantity    decimal.Decimal
	Status      string
}

type StockLevel struct {
	ItemCode  string
	Available decimal.Decimal
	Unit      string
}

// Label is an RFID/label registry entry for one physical piece.
type Label struct {
	Serial      string
	ItemCode    string
	OrderNumber string
	Company     string
}

// ERP is the system of record for orders, items, stock and BOMs.
//
// Implementations return *errs.ObjectNotFoundError for unknown keys and
// *errs.ExternalTransientError for failures that may succeed later.
type ERP interface {
	GetOrder(ctx context.Context, company, number string) (ErpOrder, error)
	GetStockLevel(ctx context.Context, company, itemCode string) (StockLevel, error)
	GetBOM(ctx context.Context, company, productCode string) (bom.BOM, error)
	ItemExists(ctx context.Context, company, itemCode string) (bool, error)
	DescribeItem(ctx context.Context, company, itemCode string) (string, error)
}

// LabelRegistry resolves physical labels.
type LabelRegistry interface {
	GetLabelsForOrder(ctx context.Context, orderNumber string) ([]Label, error)
	GetLabelBySerial(ctx context.Context, serial string) (Label, error)
}

// Authorizer answers whether an actor may act on entities of a sector.
type Authorizer interface {
	IsActiveInSector(ctx context.Context, actorID, sector string) (bool, error)
}
