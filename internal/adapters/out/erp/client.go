// Package erp reads orders, items, stock and bills of materials from the
// ERP's JSON API.
package erp

import (
	"context"
	"errors"

	"shopfloor/internal/adapters/out/httpclient"
	"shopfloor/internal/core/domain/model/bom"
	"shopfloor/internal/core/ports"
	"shopfloor/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

const System = "erp"

type orderResponse struct {
	Number      string          `json:"number"`
	Company     string          `json:"company"`
	Customer    string          `json:"customer"`
	ProductCode string          `json:"product_code"`
	Quantity    decimal.Decimal `json:"quantity"`
	Status      string          `json:"status"`
}

type stockResponse struct {
	ItemCode  string          `json:"item_code"`
	Available decimal.Decimal `json:"available"`
	Unit      string          `json:"unit"`
}

type bomLineResponse struct {
	ItemCode    string          `json:"item_code"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        string          `json:"unit"`
}

type bomResponse struct {
	ProductCode string            `json:"product_code"`
	Lines       []bomLineResponse `json:"lines"`
}

type itemResponse struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Client implements ports.ERP.
type Client struct {
	http *httpclient.Client
}

func NewClient(cfg httpclient.Config) (*Client, error) {
	c, err := httpclient.New(System, cfg, nil)
	if err != nil {
		return nil, err
	}
	return &Client{http: c}, nil
}

func (c *Client) GetOrder(ctx context.Context, company, number string) (ports.ErpOrder, error) {
	var resp orderResponse
	path := httpclient.PathEscape("companies", company, "orders", number)
	if err := c.http.Get(ctx, "GetOrder", "erp order", number, path, &resp); err != nil {
		return ports.ErpOrder{}, err
	}
	return ports.ErpOrder{
		Number:      resp.Number,
		Company:     resp.Company,
		Customer:    resp.Customer,
		ProductCode: resp.ProductCode,
		Quantity:    resp.Quantity,
		Status:      resp.Status,
	}, nil
}

func (c *Client) GetStockLevel(ctx context.Context, company, itemCode string) (ports.StockLevel, error) {
	var resp stockResponse
	path := httpclient.PathEscape("companies", company, "items", itemCode, "stock")
	if err := c.http.Get(ctx, "GetStockLevel", "item", itemCode, path, &resp); err != nil {
		return ports.StockLevel{}, err
	}
	return ports.StockLevel{ItemCode: resp.ItemCode, Available: resp.Available, Unit: resp.Unit}, nil
}

func (c *Client) GetBOM(ctx context.Context, company, productCode string) (bom.BOM, error) {
	var resp bomResponse
	path := httpclient.PathEscape("companies", company, "products", productCode, "bom")
	if err := c.http.Get(ctx, "GetBOM", "bill of materials", productCode, path, &resp); err != nil {
		return bom.BOM{}, err
	}

	b := bom.BOM{ProductCode: resp.ProductCode, Lines: make([]bom.Line, 0, len(resp.Lines))}
	for _, l := range resp.Lines {
		b.Lines = append(b.Lines, bom.Line{
			ItemCode:    l.ItemCode,
			Description: l.Description,
			Quantity:    l.Quantity,
			Unit:        l.Unit,
		})
	}
	return b, nil
}

// ItemExists maps a 404 to false.
func (c *Client) ItemExists(ctx context.Context, company, itemCode string) (bool, error) {
	_, err := c.item(ctx, "ItemExists", company, itemCode)
	if errors.Is(err, errs.ErrObjectNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (c *Client) DescribeItem(ctx context.Context, company, itemCode string) (string, error) {
	item, err := c.item(ctx, "DescribeItem", company, itemCode)
	if err != nil {
		return "", err
	}
	return item.Description, nil
}

func (c *Client) item(ctx context.Context, operation, company, itemCode string) (itemResponse, error) {
	var resp itemResponse
	path := httpclient.PathEscape("companies", company, "items", itemCode)
	err := c.http.Get(ctx, operation, "item", itemCode, path, &resp)
	return resp, err
}
