package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/codecompiler69/SmartAppointmentBooking/gateway/internal/config"
	"github.com/codecompiler69/SmartAppointmentBooking/gateway/internal/httpserver"
	"github.com/codecompiler69/SmartAppointmentBooking/gateway/internal/routes"
	"github.com/codecompiler69/SmartAppointmentBooking/pkg/logging"
	"github.com/codecompiler69/SmartAppointmentBooking/pkg/tokens"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	// The gateway only verifies, so the TTLs here are never used to mint.
	signer := tokens.NewSigner(cfg.JWTSecret, 15*time.Minute, 7*24*time.Hour)

	if err := httpserver.Register(e, &httpserver.Deps{
		AuthURL:         cfg.AuthURL,
		UserURL:         cfg.UserURL,
		AppointmentURL:  cfg.AppointmentURL,
		CatalogURL:      cfg.CatalogURL,
		NotificationURL: cfg.NotificationURL,
		Signer:          signer,
		Table:           routes.Default(),
		Logger:          logger,
	}); err != nil {
		log.Fatal(err)
	}

	go func() {
		if err := e.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("shutdown: %v", err)
	}
}
