package http

import (
	"net/http"
	"strconv"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/application/usecases/queries"
	"shopfloor/internal/core/domain/model/control"
	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/production"
	"shopfloor/internal/core/domain/model/workflow"
	"shopfloor/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateProductionOrder handles POST /api/v1/production-orders.
func (s *Server) CreateProductionOrder(c echo.Context) error {
	var req NewProductionOrder
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	kind, err := production.ParseKind(req.Kind)
	if err != nil {
		return s.fail(c, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateProductionOrderCommand(id, actor(c), req.OrderNumber, req.Company,
		req.ProductCode, req.Quantity, kind, req.RequiresTesting)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.CreateProductionOrder.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, Created{ID: id})
}

// CreateShipmentBatch handles POST /api/v1/shipment-batches.
func (s *Server) CreateShipmentBatch(c echo.Context) error {
	var req NewShipmentBatch
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateShipmentBatchCommand(id, actor(c), req.OrderNumber, req.Company, req.Volumes)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.CreateShipmentBatch.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, Created{ID: id})
}

// OpenRepairTicket handles POST /api/v1/repair-tickets.
func (s *Server) OpenRepairTicket(c echo.Context) error {
	var req NewRepairTicket
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewOpenRepairTicketCommand(id, actor(c), req.Company, req.ProductCode,
		req.SerialNumber, req.Customer, req.UnderWarranty)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.OpenRepairTicket.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, Created{ID: id})
}

// recordControlEvent handles POST /api/v1/{entities}/:id/events.
func (s *Server) recordControlEvent(kind kernel.EntityKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req ControlEvent
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		ref, err := entityRef(c, kind)
		if err != nil {
			return s.fail(c, err)
		}
		action, err := control.ParseKind(req.Kind)
		if err != nil {
			return s.fail(c, err)
		}
		cmd, err := commands.NewRecordControlEventCommand(ref, action, actor(c), req.Note)
		if err != nil {
			return s.fail(c, err)
		}

		res, err := s.h.RecordControlEvent.Handle(c.Request().Context(), cmd)
		if err != nil {
			return s.fail(c, err)
		}
		return c.JSON(http.StatusCreated, ControlEventRecorded{EventID: res.EventID, Stage: res.Stage.String(), Version: res.Version})
	}
}

// advance handles POST /api/v1/{entities}/:id/advance.
func (s *Server) advance(kind kernel.EntityKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req Advance
		if err := c.Bind(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		ref, err := entityRef(c, kind)
		if err != nil {
			return s.fail(c, err)
		}
		cmd, err := commands.NewAdvanceCommand(ref, workflow.Stage(req.Target), actor(c), req.Note)
		if err != nil {
			return s.fail(c, err)
		}

		handler, ok := s.h.Advance[kind]
		if !ok {
			return s.fail(c, errs.NewValueIsInvalidError(kind.String()+" has no stage graph"))
		}
		res, err := handler.Handle(c.Request().Context(), cmd)
		if err != nil {
			return s.fail(c, err)
		}
		return c.JSON(http.StatusOK, toAdvanced(res))
	}
}

// ApproveRepairBudget handles POST /api/v1/repair-tickets/:id/budget-approval.
func (s *Server) ApproveRepairBudget(c echo.Context) error {
	var req Note
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	id, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewApproveRepairBudgetCommand(id, actor(c), req.Note)
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.ApproveRepairBudget.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// stageDurations handles GET /api/v1/{entities}/:id/durations.
func (s *Server) stageDurations(kind kernel.EntityKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		ref, err := entityRef(c, kind)
		if err != nil {
			return s.fail(c, err)
		}
		query, err := queries.NewGetStageDurationsQuery(ref)
		if err != nil {
			return s.fail(c, err)
		}

		res, err := s.h.StageDurations.Handle(c.Request().Context(), query)
		if err != nil {
			return s.fail(c, err)
		}
		return c.JSON(http.StatusOK, toStageDurations(res))
	}
}

// timeline handles GET /api/v1/{entities}/:id/timeline?limit=N.
func (s *Server) timeline(kind kernel.EntityKind) echo.HandlerFunc {
	return func(c echo.Context) error {
		ref, err := entityRef(c, kind)
		if err != nil {
			return s.fail(c, err)
		}

		limit := 0
		if raw := c.QueryParam("limit"); raw != "" {
			if limit, err = strconv.Atoi(raw); err != nil {
				return badRequest(c, "limit must be an integer")
			}
		}
		query, err := queries.NewGetEntityTimelineQuery(ref, limit)
		if err != nil {
			return s.fail(c, err)
		}

		res, err := s.h.Timeline.Handle(c.Request().Context(), query)
		if err != nil {
			return s.fail(c, err)
		}
		return c.JSON(http.StatusOK, toTimeline(res))
	}
}
