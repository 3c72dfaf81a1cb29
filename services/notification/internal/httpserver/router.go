package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	loggingmw "github.com/codecompiler69/SmartAppointmentBooking/pkg/middleware/logging"
)

type Deps struct {
	NotificationHandler *NotificationHTTP
	Logger              *slog.Logger
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.Use(loggingmw.RequestLogger(d.Logger))

	api := e.Group("/api/notifications")

	api.POST("/email", d.NotificationHandler.SendEmail)
	api.POST("/sms", d.NotificationHandler.SendSMS)
	api.GET("/user/:id", d.NotificationHandler.ListByUser)
	api.GET("/user/:id/unread", d.NotificationHandler.CountUnread)
	api.PUT("/:id/read", d.NotificationHandler.MarkRead)
}
