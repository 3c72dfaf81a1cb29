package httpserver

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	loggingmw "github.com/codecompiler69/SmartAppointmentBooking/pkg/middleware/logging"
	"github.com/codecompiler69/SmartAppointmentBooking/pkg/tokens"
	"github.com/codecompiler69/SmartAppointmentBooking/services/auth/internal/rate"
)

type Deps struct {
	AuthHandler *AuthHTTP
	Signer      *tokens.Signer
	Limiter     rate.Limiter
	Logger      *slog.Logger
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(http.StatusOK) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	e.Use(loggingmw.RequestLogger(d.Logger))

	api := e.Group("/api/auth")

	limited := api.Group("", rate.Middleware(d.Limiter))
	limited.POST("/register", d.AuthHandler.Register)
	limited.POST("/login", d.AuthHandler.Login)
	limited.POST("/forgot-password", d.AuthHandler.ForgotPassword)

	api.POST("/refresh", d.AuthHandler.Refresh)
	api.POST("/logout", d.AuthHandler.Logout)
	api.POST("/verify-email", d.AuthHandler.VerifyEmail)
	api.POST("/reset-password", d.AuthHandler.ResetPassword)

	private := api.Group("", requireBearer(d.Signer))
	private.GET("/me", d.AuthHandler.Me)
}
