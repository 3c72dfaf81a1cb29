package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	loggingmw "github.com/codecompiler69/SmartAppointmentBooking/pkg/middleware/logging"
)

type Deps struct {
	UserHandler *UserHTTP
	Logger      *slog.Logger
}

// Register wires the profile routes. Role enforcement happens at the
// gateway; this service trusts the identity headers it receives.
func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.Use(loggingmw.RequestLogger(d.Logger))

	api := e.Group("/api/users")

	api.POST("", d.UserHandler.CreateProfile)
	api.GET("/admin/all", d.UserHandler.ListProfiles)
	api.GET("/doctors", d.UserHandler.ListDoctorProfiles)
	api.POST("/doctors/profile", d.UserHandler.CreateDoctorProfile)
	api.GET("/doctors/:id", d.UserHandler.GetDoctorProfile)
	api.GET("/email/:email", d.UserHandler.GetProfileByEmail)
	api.GET("/:id", d.UserHandler.GetProfile)
	api.PUT("/:id", d.UserHandler.UpdateProfile)
	api.DELETE("/:id", d.UserHandler.DeleteProfile)
}
