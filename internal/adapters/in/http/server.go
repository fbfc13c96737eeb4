// Package http exposes the shopfloor commands and queries as JSON endpoints.
// The acting operator is named by the X-Actor-ID header; authenticating it is
// left to the gateway in front of the service.
package http

import (
	"context"
	"net/http"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/application/usecases/queries"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/production"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const ActorHeader = "X-Actor-ID"

// Handler is a use case taking In and producing Out.
type Handler[In, Out any] interface {
	Handle(ctx context.Context, in In) (Out, error)
}

// VoidHandler is a use case that only reports failure.
type VoidHandler[In any] interface {
	Handle(ctx context.Context, in In) error
}

// Handlers groups every use case the server dispatches to.
type Handlers struct {
	CreateProductionOrder VoidHandler[commands.CreateProductionOrderCommand]
	CreateShipmentBatch   VoidHandler[commands.CreateShipmentBatchCommand]
	OpenRepairTicket      VoidHandler[commands.OpenRepairTicketCommand]
	ApproveRepairBudget   VoidHandler[commands.ApproveRepairBudgetCommand]
	RegisterSubAssembly   VoidHandler[commands.RegisterSubAssemblyCommand]

	RecordControlEvent Handler[commands.RecordControlEventCommand, commands.RecordControlEventResult]
	Advance            map[kernel.EntityKind]Handler[commands.AdvanceCommand, commands.AdvanceResult]
	GenerateFinalUnits Handler[commands.GenerateFinalUnitsCommand, []*production.FinalUnit]
	BindSubAssembly    Handler[commands.BindSubAssemblyCommand, commands.BindSubAssemblyResult]
	ConsumePart        Handler[commands.ConsumePartCommand, commands.ConsumePartResult]
	SubstitutePart     Handler[commands.SubstitutePartCommand, commands.SubstitutePartResult]

	StageDurations    Handler[queries.GetStageDurationsQuery, queries.GetStageDurationsQueryResponse]
	Timeline          Handler[queries.GetEntityTimelineQuery, queries.GetEntityTimelineQueryResponse]
	ConsumptionStatus Handler[queries.GetConsumptionStatusQuery, queries.GetConsumptionStatusQueryResponse]
	PendingLabels     Handler[queries.GetPendingLabelsQuery, queries.GetPendingLabelsQueryResponse]
}

// entityPaths is the collection segment of each entity kind.
var entityPaths = map[kernel.EntityKind]string{
	kernel.ProductionOrder: "production-orders",
	kernel.ShipmentBatch:   "shipment-batches",
	kernel.RepairTicket:    "repair-tickets",
}

type Server struct {
	h   Handlers
	log zerolog.Logger
}

func NewServer(h Handlers, log zerolog.Logger) *Server {
	return &Server{h: h, log: log}
}

// Register mounts the routes on e.
func (s *Server) Register(e *echo.Echo) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	v1 := e.Group("/api/v1")
	v1.POST("/production-orders", s.CreateProductionOrder)
	v1.POST("/shipment-batches", s.CreateShipmentBatch)
	v1.POST("/repair-tickets", s.OpenRepairTicket)

	for kind, path := range entityPaths {
		g := v1.Group("/" + path + "/:id")
		g.POST("/events", s.recordControlEvent(kind))
		g.POST("/advance", s.advance(kind))
		g.GET("/durations", s.stageDurations(kind))
		g.GET("/timeline", s.timeline(kind))
	}

	v1.POST("/repair-tickets/:id/budget-approval", s.ApproveRepairBudget)
	v1.POST("/production-orders/:id/final-units", s.GenerateFinalUnits)
	v1.POST("/production-orders/:id/sub-assemblies", s.RegisterSubAssembly)
	v1.GET("/production-orders/:id/pending-labels", s.PendingLabels)
	v1.POST("/final-units/:id/sub-assemblies", s.BindSubAssembly)

	v1.POST("/contexts/:kind/:id/parts", s.ConsumePart)
	v1.POST("/contexts/:kind/:id/substitutions", s.SubstitutePart)
	v1.GET("/contexts/:kind/:id/consumption", s.ConsumptionStatus)
}

func actor(c echo.Context) string {
	return c.Request().Header.Get(ActorHeader)
}

func pathID(c echo.Context) (kernel.UUID, error) {
	return kernel.UUIDFromString(c.Param("id"))
}

func entityRef(c echo.Context, kind kernel.EntityKind) (kernel.EntityRef, error) {
	id, err := pathID(c)
	if err != nil {
		return kernel.EntityRef{}, err
	}
	return kernel.NewEntityRef(kind, id)
}
