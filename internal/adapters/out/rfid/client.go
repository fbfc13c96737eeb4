// Package rfid reads physical labels from the RFID label registry.
package rfid

import (
	"context"

	"shopfloor/internal/adapters/out/httpclient"
	"shopfloor/internal/core/ports"
)

const System = "rfid"

type labelResponse struct {
	Serial      string `json:"serial"`
	ItemCode    string `json:"item_code"`
	OrderNumber string `json:"order_number"`
	Company     string `json:"company"`
}

func (l labelResponse) toPort() ports.Label {
	return ports.Label{Serial: l.Serial, ItemCode: l.ItemCode, OrderNumber: l.OrderNumber, Company: l.Company}
}

// Client implements ports.LabelRegistry.
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

// GetLabelsForOrder returns every label printed for an ERP order. An order
// without labels yields an empty slice.
func (c *Client) GetLabelsForOrder(ctx context.Context, orderNumber string) ([]ports.Label, error) {
	var resp []labelResponse
	path := httpclient.PathEscape("orders", orderNumber, "labels")
	if err := c.http.Get(ctx, "GetLabelsForOrder", "label order", orderNumber, path, &resp); err != nil {
		return nil, err
	}

	labels := make([]ports.Label, 0, len(resp))
	for _, l := range resp {
		labels = append(labels, l.toPort())
	}
	return labels, nil
}

func (c *Client) GetLabelBySerial(ctx context.Context, serial string) (ports.Label, error) {
	var resp labelResponse
	if err := c.http.Get(ctx, "GetLabelBySerial", "label", serial, httpclient.PathEscape("labels", serial), &resp); err != nil {
		return ports.Label{}, err
	}
	return resp.toPort(), nil
}
