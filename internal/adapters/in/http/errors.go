package http

import (
	"errors"
	"fmt"
	"net/http"

	"podowl/internal/core/application/usecases/commands"
	"podowl/internal/core/application/usecases/queries"
	"podowl/internal/generated/servers"
	"podowl/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusCode maps domain errors to HTTP status codes.
func statusCode(err error) int {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrStateConflict):
		return http.StatusConflict
	case errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsOutOfRange),
		errors.Is(err, commands.ErrCreateJobCommandIsNotConstructed),
		errors.Is(err, commands.ErrUpdateJobStatusCommandIsNotConstructed),
		errors.Is(err, queries.ErrGetJobQueryIsNotConstructed):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorHandler renders errors raised outside the handlers, such as unknown
// routes and path binding failures, in the same shape as handler errors.
func errorHandler(err error, ctx echo.Context) {
	if ctx.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := http.StatusText(code)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code = he.Code
		message = fmt.Sprint(he.Message)
	}

	if ctx.Request().Method == http.MethodHead {
		_ = ctx.NoContent(code)
		return
	}
	_ = ctx.JSON(code, servers.Error{Code: code, Message: message})
}
