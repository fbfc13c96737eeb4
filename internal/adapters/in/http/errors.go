package http

import (
	"errors"
	"net/http"

	"shopfloor/internal/core/domain/model/consumption"
	"shopfloor/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every failed request.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`

	// Rule is set for sequence errors, Condition for guard violations.
	Rule       string   `json:"rule,omitempty"`
	Condition  string   `json:"condition,omitempty"`
	Candidates []string `json:"candidates,omitempty"`
}

// classify maps err to a status code and a stable kind.
func classify(err error) (int, string) {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest, "validation"
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, errs.ErrConcurrencyConflict):
		return http.StatusConflict, "conflict"
	case errors.Is(err, errs.ErrSequenceIsInvalid):
		return http.StatusUnprocessableEntity, "sequence"
	case errors.Is(err, errs.ErrGuardViolation):
		return http.StatusUnprocessableEntity, "guard"
	case errors.Is(err, errs.ErrTransitionIsInvalid):
		return http.StatusUnprocessableEntity, "transition"
	case errors.Is(err, errs.ErrEntityIsClosed):
		return http.StatusUnprocessableEntity, "closed"
	case errors.Is(err, errs.ErrPermissionDenied):
		return http.StatusForbidden, "permission"
	case errors.Is(err, errs.ErrExternalTransient):
		return http.StatusBadGateway, "external"
	}
	return http.StatusInternalServerError, "internal"
}

func (s *Server) fail(c echo.Context, err error) error {
	code, kind := classify(err)
	body := Error{Code: code, Kind: kind, Message: err.Error()}

	if code == http.StatusInternalServerError {
		s.log.Error().Err(err).Str("path", c.Path()).Msg("request failed")
		body.Message = "internal error"
		return c.JSON(code, body)
	}

	var seq *errs.SequenceError
	if errors.As(err, &seq) {
		body.Rule = seq.Rule
	}
	var guard *errs.GuardViolationError
	if errors.As(err, &guard) {
		body.Condition = guard.Condition
	}
	var ambiguous *consumption.AmbiguousContextError
	if errors.As(err, &ambiguous) {
		for _, id := range ambiguous.Candidates {
			body.Candidates = append(body.Candidates, id.String())
		}
	}
	return c.JSON(code, body)
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: http.StatusBadRequest, Kind: "validation", Message: message})
}
