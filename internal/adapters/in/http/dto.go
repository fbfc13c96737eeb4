package http

import (
	"time"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/application/usecases/queries"
	"shopfloor/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type NewProductionOrder struct {
	OrderNumber     string `json:"orderNumber"`
	Company         string `json:"company"`
	ProductCode     string `json:"productCode"`
	Quantity        int    `json:"quantity"`
	Kind            string `json:"kind"`
	RequiresTesting bool   `json:"requiresTesting"`
}

type NewShipmentBatch struct {
	OrderNumber string `json:"orderNumber"`
	Company     string `json:"company"`
	Volumes     int    `json:"volumes"`
}

type NewRepairTicket struct {
	Company       string `json:"company"`
	ProductCode   string `json:"productCode"`
	SerialNumber  string `json:"serialNumber"`
	Customer      string `json:"customer"`
	UnderWarranty bool   `json:"underWarranty"`
}

type Created struct {
	ID kernel.UUID `json:"id"`
}

type ControlEvent struct {
	Kind string `json:"kind"`
	Note string `json:"note"`
}

type ControlEventRecorded struct {
	EventID kernel.UUID `json:"eventId"`
	Stage   string      `json:"stage"`
	Version int         `json:"version"`
}

// Advance leaves Target empty to let the stage graph pick the next stage.
type Advance struct {
	Target string `json:"target"`
	Note   string `json:"note"`
}

type Advanced struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Version int    `json:"version"`
}

type Note struct {
	Note string `json:"note"`
}

type FinalUnitsRequest struct {
	Count int `json:"count"`
}

type FinalUnit struct {
	ID     kernel.UUID `json:"id"`
	Serial string      `json:"serial"`
}

type SubAssemblyRegistration struct {
	LabelSerial string `json:"labelSerial"`
	ItemCode    string `json:"itemCode"`
}

type SubAssemblyBinding struct {
	LabelSerial string `json:"labelSerial"`
}

type SubAssemblyBound struct {
	SubAssemblyID kernel.UUID `json:"subAssemblyId"`
	AlreadyBound  bool        `json:"alreadyBound"`
}

type PartScan struct {
	Scan                 string       `json:"scan"`
	PreferredSubAssembly *kernel.UUID `json:"preferredSubAssemblyId,omitempty"`
	Note                 string       `json:"note,omitempty"`
}

type PartConsumed struct {
	RecordID    kernel.UUID  `json:"recordId"`
	ContextKind string       `json:"contextKind"`
	ContextID   kernel.UUID  `json:"contextId"`
	ItemCode    string       `json:"itemCode"`
	Replaced    *kernel.UUID `json:"replaced,omitempty"`
}

type PartSubstituted struct {
	RecordID kernel.UUID `json:"recordId"`
	Replaced kernel.UUID `json:"replaced"`
}

type StageDuration struct {
	Stage         string  `json:"stage"`
	ActiveSeconds float64 `json:"activeSeconds"`
	Open          bool    `json:"open"`
}

type StageDurations struct {
	Status       string          `json:"status"`
	Version      int             `json:"version"`
	Stages       []StageDuration `json:"stages"`
	TotalSeconds float64         `json:"totalSeconds"`
	MeasuredAt   time.Time       `json:"measuredAt"`
}

type TimelineEntry struct {
	ID        kernel.UUID `json:"id"`
	Stage     string      `json:"stage"`
	Kind      string      `json:"kind"`
	ActorID   string      `json:"actorId"`
	Note      string      `json:"note,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

type ConsumptionLine struct {
	ItemCode     string           `json:"itemCode"`
	Description  string           `json:"description,omitempty"`
	Quantity     decimal.Decimal  `json:"quantity"`
	Unit         string           `json:"unit"`
	Consumed     int              `json:"consumed"`
	ScanIdentity string           `json:"scanIdentity,omitempty"`
	Available    *decimal.Decimal `json:"available,omitempty"`
}

type ConsumptionContext struct {
	ContextKind string            `json:"contextKind"`
	ContextID   kernel.UUID       `json:"contextId"`
	ProductCode string            `json:"productCode"`
	Complete    bool              `json:"complete"`
	Lines       []ConsumptionLine `json:"lines"`
}

type ConsumptionStatus struct {
	OwnerKind string               `json:"ownerKind"`
	OwnerID   kernel.UUID          `json:"ownerId"`
	Complete  bool                 `json:"complete"`
	Contexts  []ConsumptionContext `json:"contexts"`
}

type PendingLabels struct {
	OrderNumber string         `json:"orderNumber"`
	Quantity    int            `json:"quantity"`
	Registered  int            `json:"registered"`
	Pending     []PendingLabel `json:"pending"`
}

type PendingLabel struct {
	Serial   string `json:"serial"`
	ItemCode string `json:"itemCode"`
}

func toAdvanced(r commands.AdvanceResult) Advanced {
	return Advanced{From: r.From.String(), To: r.To.String(), Version: r.Version}
}

func toStageDurations(r queries.GetStageDurationsQueryResponse) StageDurations {
	out := StageDurations{
		Status:       r.Status.String(),
		Version:      r.Version,
		Stages:       make([]StageDuration, 0, len(r.Stages)),
		TotalSeconds: r.Total.Seconds(),
		MeasuredAt:   r.MeasuredAt,
	}
	for _, s := range r.Stages {
		out.Stages = append(out.Stages, StageDuration{Stage: s.Stage.String(), ActiveSeconds: s.Active.Seconds(), Open: s.Open})
	}
	return out
}

func toTimeline(r queries.GetEntityTimelineQueryResponse) []TimelineEntry {
	out := make([]TimelineEntry, 0, len(r.Entries))
	for _, e := range r.Entries {
		out = append(out, TimelineEntry{
			ID:        e.ID,
			Stage:     e.Stage.String(),
			Kind:      e.Kind,
			ActorID:   e.ActorID,
			Note:      e.Note,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

func toConsumptionStatus(r queries.GetConsumptionStatusQueryResponse) ConsumptionStatus {
	out := ConsumptionStatus{
		OwnerKind: r.Owner.Kind.String(),
		OwnerID:   r.Owner.ID,
		Complete:  r.Complete,
		Contexts:  make([]ConsumptionContext, 0, len(r.Contexts)),
	}
	for _, c := range r.Contexts {
		cc := ConsumptionContext{
			ContextKind: c.Context.Kind.String(),
			ContextID:   c.Context.Ref,
			ProductCode: c.ProductCode,
			Complete:    c.Complete,
			Lines:       make([]ConsumptionLine, 0, len(c.Lines)),
		}
		for _, l := range c.Lines {
			cc.Lines = append(cc.Lines, ConsumptionLine{
				ItemCode:     l.ItemCode,
				Description:  l.Description,
				Quantity:     l.Quantity,
				Unit:         l.Unit,
				Consumed:     l.Consumed,
				ScanIdentity: l.ScanIdentity,
				Available:    l.Available,
			})
		}
		out.Contexts = append(out.Contexts, cc)
	}
	return out
}

func toPendingLabels(r queries.GetPendingLabelsQueryResponse) PendingLabels {
	out := PendingLabels{
		OrderNumber: r.OrderNumber,
		Quantity:    r.Quantity,
		Registered:  r.Registered,
		Pending:     make([]PendingLabel, 0, len(r.Pending)),
	}
	for _, l := range r.Pending {
		out.Pending = append(out.Pending, PendingLabel{Serial: l.Serial, ItemCode: l.ItemCode})
	}
	return out
}
