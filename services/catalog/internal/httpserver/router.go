package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	loggingmw "github.com/codecompiler69/SmartAppointmentBooking/pkg/middleware/logging"
)

type Deps struct {
	CatalogHandler *CatalogHTTP
	Logger         *slog.Logger
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.Use(loggingmw.RequestLogger(d.Logger))

	api := e.Group("/api/services")

	api.GET("/public", d.CatalogHandler.ListPublic)
	api.GET("/search", d.CatalogHandler.Search)
	api.GET("", d.CatalogHandler.List)
	api.POST("", d.CatalogHandler.Create)
	api.GET("/:id", d.CatalogHandler.Get)
	api.PATCH("/:id", d.CatalogHandler.Patch)
	api.DELETE("/:id", d.CatalogHandler.Delete)
}
