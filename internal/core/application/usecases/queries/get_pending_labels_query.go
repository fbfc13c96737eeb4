package queries

import (
	"errors"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/pkg/guard"
)

var ErrGetPendingLabelsQueryIsNotConstructed = errors.New(
	"GetPendingLabelsQuery must be created via NewGetPendingLabelsQuery constructor",
)

// GetPendingLabelsQuery lists the labels the registry holds for a production
// order that were not yet registered as sub-assemblies.
type GetPendingLabelsQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetPendingLabelsQuery(orderID kernel.UUID) (GetPendingLabelsQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetPendingLabelsQuery{}, err
	}
	return GetPendingLabelsQuery{orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPendingLabelsQuery) OrderID() kernel.UUID { return q.orderID }

func (q GetPendingLabelsQuery) Validate() error {
	return q.guard.Validate(ErrGetPendingLabelsQueryIsNotConstructed)
}

type PendingLabel struct {
	Serial   string
	ItemCode string
}

type GetPendingLabelsQueryResponse struct {
	OrderID     kernel.UUID
	OrderNumber string
	Quantity    int
	Registered  int
	Pending     []PendingLabel
}
