package http

import (
	"net/http"
	"strconv"

	"shopfloor/internal/core/application/usecases/commands"
	"shopfloor/internal/core/application/usecases/queries"
	"shopfloor/internal/core/domain/model/consumption"
	"shopfloor/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

func consumptionContext(c echo.Context) (consumption.Context, error) {
	kind, err := consumption.ParseContextKind(c.Param("kind"))
	if err != nil {
		return consumption.Context{}, err
	}
	id, err := pathID(c)
	if err != nil {
		return consumption.Context{}, err
	}
	return consumption.NewContext(kind, id)
}

// GenerateFinalUnits handles POST /api/v1/production-orders/:id/final-units.
func (s *Server) GenerateFinalUnits(c echo.Context) error {
	var req FinalUnitsRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	orderID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewGenerateFinalUnitsCommand(orderID, req.Count, actor(c))
	if err != nil {
		return s.fail(c, err)
	}

	units, err := s.h.GenerateFinalUnits.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	resp := make([]FinalUnit, 0, len(units))
	for _, u := range units {
		resp = append(resp, FinalUnit{ID: u.ID(), Serial: u.Serial()})
	}
	return c.JSON(http.StatusCreated, resp)
}

// RegisterSubAssembly handles POST /api/v1/production-orders/:id/sub-assemblies.
func (s *Server) RegisterSubAssembly(c echo.Context) error {
	var req SubAssemblyRegistration
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	orderID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	id := kernel.NewUUID()
	cmd, err := commands.NewRegisterSubAssemblyCommand(id, orderID, req.LabelSerial, req.ItemCode, actor(c))
	if err != nil {
		return s.fail(c, err)
	}
	if err := s.h.RegisterSubAssembly.Handle(c.Request().Context(), cmd); err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, Created{ID: id})
}

// PendingLabels handles GET /api/v1/production-orders/:id/pending-labels.
func (s *Server) PendingLabels(c echo.Context) error {
	orderID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	query, err := queries.NewGetPendingLabelsQuery(orderID)
	if err != nil {
		return s.fail(c, err)
	}

	res, err := s.h.PendingLabels.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toPendingLabels(res))
}

// BindSubAssembly handles POST /api/v1/final-units/:id/sub-assemblies.
// Binding an already bound label to the same unit answers 200 instead of 201.
func (s *Server) BindSubAssembly(c echo.Context) error {
	var req SubAssemblyBinding
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	unitID, err := pathID(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewBindSubAssemblyCommand(unitID, req.LabelSerial, actor(c))
	if err != nil {
		return s.fail(c, err)
	}

	res, err := s.h.BindSubAssembly.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	code := http.StatusCreated
	if res.AlreadyBound {
		code = http.StatusOK
	}
	return c.JSON(code, SubAssemblyBound{SubAssemblyID: res.SubAssemblyID, AlreadyBound: res.AlreadyBound})
}

// ConsumePart handles POST /api/v1/contexts/:kind/:id/parts.
func (s *Server) ConsumePart(c echo.Context) error {
	var req PartScan
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	target, err := consumptionContext(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewConsumePartCommand(target, req.Scan, req.PreferredSubAssembly, actor(c))
	if err != nil {
		return s.fail(c, err)
	}

	res, err := s.h.ConsumePart.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, PartConsumed{
		RecordID:    res.RecordID,
		ContextKind: res.Context.Kind.String(),
		ContextID:   res.Context.Ref,
		ItemCode:    res.ItemCode,
		Replaced:    res.Replaced,
	})
}

// SubstitutePart handles POST /api/v1/contexts/:kind/:id/substitutions.
func (s *Server) SubstitutePart(c echo.Context) error {
	var req PartScan
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	in, err := consumptionContext(c)
	if err != nil {
		return s.fail(c, err)
	}
	cmd, err := commands.NewSubstitutePartCommand(in, req.Scan, actor(c), req.Note)
	if err != nil {
		return s.fail(c, err)
	}

	res, err := s.h.SubstitutePart.Handle(c.Request().Context(), cmd)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusCreated, PartSubstituted{RecordID: res.RecordID, Replaced: res.Replaced})
}

// ConsumptionStatus handles GET /api/v1/contexts/:kind/:id/consumption?stock=true.
func (s *Server) ConsumptionStatus(c echo.Context) error {
	target, err := consumptionContext(c)
	if err != nil {
		return s.fail(c, err)
	}

	withStock := false
	if raw := c.QueryParam("stock"); raw != "" {
		if withStock, err = strconv.ParseBool(raw); err != nil {
			return badRequest(c, "stock must be a boolean")
		}
	}
	query, err := queries.NewGetConsumptionStatusQuery(target, withStock)
	if err != nil {
		return s.fail(c, err)
	}

	res, err := s.h.ConsumptionStatus.Handle(c.Request().Context(), query)
	if err != nil {
		return s.fail(c, err)
	}
	return c.JSON(http.StatusOK, toConsumptionStatus(res))
}
