package queries

import (
	"context"
	"strings"

	"shopfloor/internal/core/ports"
)

type GetPendingLabelsQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	labels     ports.LabelRegistry
}

func NewGetPendingLabelsQueryHandler(uowFactory ports.UnitOfWorkFactory, labels ports.LabelRegistry) GetPendingLabelsQueryHandler {
	return GetPendingLabelsQueryHandler{uowFactory: uowFactory, labels: labels}
}

// Handle keeps, in registry order, the labels issued to the order's company
// (or to no company) whose serial has no sub-assembly yet.
func (h GetPendingLabelsQueryHandler) Handle(
	ctx context.Context,
	query GetPendingLabelsQuery,
) (GetPendingLabelsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetPendingLabelsQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	order, err := uow.ProductionOrderRepository().Get(ctx, query.OrderID())
	if err != nil {
		return GetPendingLabelsQueryResponse{}, err
	}
	registered, err := uow.SubAssemblyRepository().ListByOrder(ctx, order.ID())
	if err != nil {
		return GetPendingLabelsQueryResponse{}, err
	}
	labels, err := h.labels.GetLabelsForOrder(ctx, order.OrderNumber())
	if err != nil {
		return GetPendingLabelsQueryResponse{}, err
	}

	seen := make(map[string]bool, len(registered))
	for _, sub := range registered {
		seen[strings.ToUpper(sub.LabelSerial())] = true
	}

	resp := GetPendingLabelsQueryResponse{
		OrderID:     order.ID(),
		OrderNumber: order.OrderNumber(),
		Quantity:    order.Quantity(),
		Registered:  len(registered),
		Pending:     make([]PendingLabel, 0),
	}
	for _, l := range labels {
		if (l.Company != "" && l.Company != order.Company()) || seen[strings.ToUpper(l.Serial)] {
			continue
		}
		resp.Pending = append(resp.Pending, PendingLabel{Serial: l.Serial, ItemCode: l.ItemCode})
	}
	return resp, nil
}
