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

	"github.com/codecompiler69/SmartAppointmentBooking/pkg/db"
	"github.com/codecompiler69/SmartAppointmentBooking/pkg/logging"
	"github.com/codecompiler69/SmartAppointmentBooking/services/appointment/internal/config"
	"github.com/codecompiler69/SmartAppointmentBooking/services/appointment/internal/httpserver"
	"github.com/codecompiler69/SmartAppointmentBooking/services/appointment/internal/repo"
	"github.com/codecompiler69/SmartAppointmentBooking/services/appointment/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	gormDB, err := db.Open(initCtx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db init: %v", err)
	}

	gormRepo := repo.GormRepo{DB: gormDB}
	if err := gormRepo.Migrate(context.Background()); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	httpserver.Register(e, &httpserver.Deps{
		AppointmentHandler: &httpserver.AppointmentHTTP{Svc: service.New(gormRepo)},
		Logger:             logger,
	})

	go func() {
		if err := e.Start(cfg.ListenAddr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}
