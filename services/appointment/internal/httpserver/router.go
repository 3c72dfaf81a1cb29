package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	loggingmw "github.com/codecompiler69/SmartAppointmentBooking/pkg/middleware/logging"
)

type Deps struct {
	AppointmentHandler *AppointmentHTTP
	Logger             *slog.Logger
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.Use(loggingmw.RequestLogger(d.Logger))

	api := e.Group("/api/appointments")

	api.POST("", d.AppointmentHandler.Create)
	api.GET("/patient/:id", d.AppointmentHandler.ListByPatient)
	api.GET("/doctor/:id", d.AppointmentHandler.ListByDoctor)
	api.GET("/:id", d.AppointmentHandler.Get)
	api.PUT("/:id", d.AppointmentHandler.Update)
	api.PUT("/:id/cancel", d.AppointmentHandler.Cancel)
}
