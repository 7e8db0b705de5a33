package http

import (
	"log/slog"
	"net/http"

	"podowl/internal/generated/servers"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// NewRouter mounts the API, the landing route, health and the swagger UI on
// a new echo instance.
func NewRouter(server *Server, doc *openapi3.T, logger *slog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = errorHandler

	validator, err := requestValidator(doc)
	if err != nil {
		return nil, err
	}

	e.Use(middleware.Recover())
	e.Use(requestLogger(logger.With("component", "HTTP")))
	e.Use(validator)

	servers.RegisterHandlers(e, server)

	e.GET("/", server.Landing)
	e.POST("/", server.ConfirmDelivery)
	e.GET("/health", server.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.Any("/swagger", func(ctx echo.Context) error {
		return ctx.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	return e, nil
}
