package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/codecompiler69/SmartAppointmentBooking/gateway/internal/metrics"
	"github.com/codecompiler69/SmartAppointmentBooking/gateway/internal/middleware"
	"github.com/codecompiler69/SmartAppointmentBooking/gateway/internal/routes"
	loggingmw "github.com/codecompiler69/SmartAppointmentBooking/pkg/middleware/logging"
	"github.com/codecompiler69/SmartAppointmentBooking/pkg/tokens"
)

type Deps struct {
	AuthURL         string
	UserURL         string
	AppointmentURL  string
	CatalogURL      string
	NotificationURL string

	Signer *tokens.Signer
	Table  *routes.Table
	Logger *slog.Logger
}

func Register(e *echo.Echo, d *Deps) error {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	registry := metrics.NewRegistry()
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(registry)))

	for _, m := range middleware.Common() {
		e.Use(m)
	}
	e.Use(loggingmw.RequestLogger(d.Logger))
	e.Use(metrics.Middleware())
	e.Use(middleware.EdgeAuth(d.Signer, d.Table))

	upstreams := []struct {
		url      string
		prefixes []string
	}{
		{d.AuthURL, []string{"/api/auth"}},
		{d.UserURL, []string{"/api/users"}},
		{d.AppointmentURL, []string{"/api/appointments"}},
		{d.CatalogURL, []string{"/api/services"}},
		{d.NotificationURL, []string{"/api/notifications"}},
	}

	for _, up := range upstreams {
		proxy, err := newProxy(up.url)
		if err != nil {
			return err
		}
		for _, prefix := range up.prefixes {
			e.Any(prefix, proxy)
			e.Any(prefix+"/*", proxy)
		}
	}

	return nil
}
