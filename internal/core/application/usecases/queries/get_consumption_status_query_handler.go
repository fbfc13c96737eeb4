package queries

import (
	"context"
	"strings"

	"shopfloor/internal/core/application/usecases/owners"
	"shopfloor/internal/core/domain/model/bom"
	"shopfloor/internal/core/domain/model/consumption"
	"shopfloor/internal/core/ports"
)

// GetConsumptionStatusQueryHandler reads BOMs through the ERP facade and the
// active consumption records from the database.
type GetConsumptionStatusQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	erp        ports.ERP
}

func NewGetConsumptionStatusQueryHandler(uowFactory ports.UnitOfWorkFactory, erp ports.ERP) GetConsumptionStatusQueryHandler {
	return GetConsumptionStatusQueryHandler{uowFactory: uowFactory, erp: erp}
}

type reportedContext struct {
	context     consumption.Context
	productCode string
}

func (h GetConsumptionStatusQueryHandler) Handle(
	ctx context.Context,
	query GetConsumptionStatusQuery,
) (GetConsumptionStatusQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetConsumptionStatusQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	owner, err := owners.Lookup(ctx, uow, query.Context())
	if err != nil {
		return GetConsumptionStatusQueryResponse{}, err
	}

	reported := []reportedContext{{context: query.Context(), productCode: owner.ProductCode}}
	if owner.FinalUnitID != nil {
		bound, err := uow.SubAssemblyRepository().ListBoundToUnit(ctx, *owner.FinalUnitID)
		if err != nil {
			return GetConsumptionStatusQueryResponse{}, err
		}
		for _, sub := range bound {
			reported = append(reported, reportedContext{context: sub.Context(), productCode: sub.ItemCode()})
		}
	}

	contexts := make([]consumption.Context, 0, len(reported))
	for _, r := range reported {
		contexts = append(contexts, r.context)
	}
	records, err := uow.ConsumptionRepository().ListActiveByContexts(ctx, contexts)
	if err != nil {
		return GetConsumptionStatusQueryResponse{}, err
	}

	resp := GetConsumptionStatusQueryResponse{
		Owner:    owner.Ref,
		Contexts: make([]ContextStatus, 0, len(reported)),
		Complete: true,
	}
	for _, r := range reported {
		b, err := h.erp.GetBOM(ctx, owner.Company, r.productCode)
		if err != nil {
			return GetConsumptionStatusQueryResponse{}, err
		}
		status := compare(r, b, records)
		if query.WithStock() {
			if err := h.addStock(ctx, owner.Company, &status); err != nil {
				return GetConsumptionStatusQueryResponse{}, err
			}
		}
		resp.Contexts = append(resp.Contexts, status)
		resp.Complete = resp.Complete && status.Complete
	}
	return resp, nil
}

func compare(r reportedContext, b bom.BOM, records []*consumption.Record) ContextStatus {
	status := ContextStatus{
		Context:     r.context,
		ProductCode: r.productCode,
		Lines:       make([]LineStatus, 0, len(b.Lines)),
		Complete:    true,
	}
	for _, l := range b.Lines {
		line := LineStatus{ItemCode: l.ItemCode, Description: l.Description, Quantity: l.Quantity, Unit: l.Unit}
		for _, rec := range records {
			if rec.Context().IsEqual(r.context) && strings.EqualFold(rec.ItemCode(), l.ItemCode) {
				line.Consumed++
				line.ScanIdentity = rec.ScanIdentity()
			}
		}
		if line.Consumed == 0 {
			status.Complete = false
		}
		status.Lines = append(status.Lines, line)
	}
	return status
}

func (h GetConsumptionStatusQueryHandler) addStock(ctx context.Context, company string, status *ContextStatus) error {
	for i := range status.Lines {
		if status.Lines[i].Consumed > 0 {
			continue
		}
		level, err := h.erp.GetStockLevel(ctx, company, status.Lines[i].ItemCode)
		if err != nil {
			return err
		}
		available := level.Available
		status.Lines[i].Available = &available
	}
	return nil
}
