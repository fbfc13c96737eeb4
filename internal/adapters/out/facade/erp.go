package facade

import (
	"context"
	"strings"
	"time"

	"shopfloor/internal/core/domain/model/bom"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/cache"

	"github.com/rs/zerolog"
)

// fetchTimeout bounds one shared lookup including its retries.
const fetchTimeout = 20 * time.Second

// ERPPolicies configures each cached ERP resource.
type ERPPolicies struct {
	Order       Policy
	Stock       Policy
	BOM         Policy
	ItemExists  Policy
	Description Policy
}

func DefaultERPPolicies() ERPPolicies {
	return ERPPolicies{
		Order:       Policy{TTL: 2 * time.Minute, Retries: 2, Timeout: fetchTimeout},
		Stock:       Policy{TTL: time.Minute, Retries: 2, Timeout: fetchTimeout},
		BOM:         Policy{TTL: 10 * time.Minute, Retries: 1, Timeout: fetchTimeout},
		ItemExists:  Policy{TTL: 10 * time.Minute, Retries: 2, Timeout: fetchTimeout},
		Description: Policy{TTL: 10 * time.Minute, Retries: 2, Timeout: fetchTimeout},
	}
}

// ERP implements ports.ERP over another ports.ERP.
type ERP struct {
	next     ports.ERP
	loader   *loader
	policies ERPPolicies
}

var _ ports.ERP = (*ERP)(nil)

func NewERP(next ports.ERP, store cache.Store, policies ERPPolicies, retry RetryConfig, log zerolog.Logger) *ERP {
	return &ERP{next: next, loader: newLoader("erp", store, retry, log), policies: policies}
}

func (f *ERP) GetOrder(ctx context.Context, company, number string) (ports.ErpOrder, error) {
	return load(ctx, f.loader, "GetOrder", key("erp", "order", company, number), f.policies.Order,
		func(ctx context.Context) (ports.ErpOrder, error) {
			return f.next.GetOrder(ctx, company, number)
		})
}

func (f *ERP) GetStockLevel(ctx context.Context, company, itemCode string) (ports.StockLevel, error) {
	return load(ctx, f.loader, "GetStockLevel", key("erp", "stock", company, itemCode), f.policies.Stock,
		func(ctx context.Context) (ports.StockLevel, error) {
			return f.next.GetStockLevel(ctx, company, itemCode)
		})
}

func (f *ERP) GetBOM(ctx context.Context, company, productCode string) (bom.BOM, error) {
	return load(ctx, f.loader, "GetBOM", key("erp", "bom", company, productCode), f.policies.BOM,
		func(ctx context.Context) (bom.BOM, error) {
			return f.next.GetBOM(ctx, company, productCode)
		})
}

func (f *ERP) ItemExists(ctx context.Context, company, itemCode string) (bool, error) {
	return load(ctx, f.loader, "ItemExists", key("erp", "item", company, itemCode), f.policies.ItemExists,
		func(ctx context.Context) (bool, error) {
			return f.next.ItemExists(ctx, company, itemCode)
		})
}

func (f *ERP) DescribeItem(ctx context.Context, company, itemCode string) (string, error) {
	return load(ctx, f.loader, "DescribeItem", key("erp", "description", company, itemCode), f.policies.Description,
		func(ctx context.Context) (string, error) {
			return f.next.DescribeItem(ctx, company, itemCode)
		})
}

func key(parts ...string) string {
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return strings.Join(parts, ":")
}
